package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/pysai/project"
)

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestParseCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mod.py")
	writeFile(t, path, "x = f(1)\n")

	out, _, err := run(t, newParseCmd(), "-f", "tree", path)
	require.NoError(t, err)
	assert.Equal(t, "Suite\n  Assign\n    Name x\n    Call\n      Name f\n      Arg\n        Constant 1\n", out)
}

func TestParseCmdReportsErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.py")
	writeFile(t, path, "x = )\n")

	_, errOut, err := run(t, newParseCmd(), "-f", "line", path)
	require.Error(t, err)
	assert.Contains(t, errOut, "bad.py:1:5: fatal: unexpected token ')' [SyntaxError]")
}

func TestParseCmdVersionFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mod.py")
	writeFile(t, path, "print 'hi'\n")

	_, _, err := run(t, newParseCmd(), "--version", "2.7", path)
	assert.NoError(t, err)
	_, _, err = run(t, newParseCmd(), "--version", "3.3", path)
	assert.Error(t, err)
	_, _, err = run(t, newParseCmd(), "--version", "9.9", path)
	assert.Error(t, err)
}

func TestParseCmdUnknownMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mod.py")
	writeFile(t, path, "pass\n")

	_, _, err := run(t, newParseCmd(), "--mode", "bogus", path)
	assert.ErrorContains(t, err, "unknown mode")
}

func TestExprCmd(t *testing.T) {
	out, _, err := run(t, newExprCmd(), "1", "+", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Constant 1")
	assert.Contains(t, out, "Constant 2")
}

func TestTokensCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mod.py")
	writeFile(t, path, "x\n")

	out, _, err := run(t, newTokensCmd(), path)
	require.NoError(t, err)
	assert.Contains(t, out, "1:1\tName\t\"x\"")
}

func TestCheckCmd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ok.py"), "x = 1\n")
	writeFile(t, filepath.Join(dir, "pkg", "bad.py"), "x = )\n")

	out, errOut, err := run(t, newCheckCmd(), dir)
	require.Error(t, err)
	assert.Contains(t, out, "checked 2 files")
	assert.Contains(t, errOut, filepath.Join(dir, "pkg", "bad.py"))

	out, _, err = run(t, newCheckCmd(), filepath.Join(dir, "ok.py"))
	require.NoError(t, err)
	assert.Equal(t, "checked 1 files, 0 errors\n", out)
}

func TestInitCmd(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proj")

	out, _, err := run(t, newInitCmd(), "--version", "3.3", dir)
	require.NoError(t, err)
	assert.Contains(t, out, project.ConfigFile)

	p, err := project.LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "3.3", p.Config.Version)

	_, _, err = run(t, newInitCmd(), dir)
	assert.Error(t, err)
}
