package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/pysai/python/parser"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestLoadFromDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.py":      "x = 1\n",
		"pkg/b.py":  "y = 2\n",
		"notes.txt": "not python\n",
		"pkg/c.pyc": "",
	})

	p, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, parser.DefaultVersion, p.Version())
	assert.Equal(t, parser.SeverityWarning, p.Indentation())

	files, err := p.Files()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.py"),
		filepath.Join(dir, "pkg", "b.py"),
	}, files)
}

func TestLoadFromConfig(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		ConfigFile: `version = "3.3"
indentation = "error"
include = ["src/**/*.py"]
exclude = ["src/build/**"]
`,
		"src/app.py":       "",
		"src/build/gen.py": "",
		"tools/run.py":     "",
	})

	p, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, parser.V33, p.Version())
	assert.Equal(t, parser.SeverityError, p.Indentation())
	assert.Len(t, p.ParserOptions(), 2)

	files, err := p.Files()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "src", "app.py")}, files)
}

func TestLoadFromInvalidConfig(t *testing.T) {
	tests := map[string]string{
		"bad toml":     "version = \n",
		"bad version":  "version = \"4.0\"\n",
		"bad severity": "indentation = \"loud\"\n",
		"bad pattern":  "include = [\"[\"]\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeFiles(t, dir, map[string]string{ConfigFile: content})
			_, err := LoadFrom(dir)
			assert.Error(t, err)
		})
	}
}

func TestMatches(t *testing.T) {
	p, err := New(".", Config{
		Version:     "2.7",
		Indentation: "warning",
		Include:     []string{"**/*.py"},
		Exclude:     []string{"vendor/**", "**/test_*.py"},
	})
	require.NoError(t, err)

	tests := []struct {
		path string
		want bool
	}{
		{"a.py", true},
		{"pkg/mod.py", true},
		{"vendor/lib.py", false},
		{"pkg/test_mod.py", false},
		{"README.md", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Matches(tt.path), tt.path)
	}
}

func TestSetOverrides(t *testing.T) {
	p, err := New(".", DefaultConfig())
	require.NoError(t, err)

	require.NoError(t, p.SetVersion("3.1"))
	assert.Equal(t, parser.V31, p.Version())
	assert.Equal(t, "3.1", p.Config.Version)
	assert.Error(t, p.SetVersion("1.5"))

	require.NoError(t, p.SetIndentation("ignore"))
	assert.Equal(t, parser.SeverityIgnore, p.Indentation())
}

func TestWriteConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Version = "3.2"
	path, err := WriteConfig(dir, cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ConfigFile), path)

	p, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, parser.V32, p.Version())

	_, err = WriteConfig(dir, cfg)
	assert.Error(t, err, "existing file must not be overwritten")
}
