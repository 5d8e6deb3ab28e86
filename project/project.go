package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/pysai/python/parser"
)

// ConfigFile is the name of the optional project configuration file.
const ConfigFile = "pysai.toml"

var log = commonlog.GetLogger("pysai.project")

// Config is the content of pysai.toml.
type Config struct {
	Version     string   `toml:"version"`
	Indentation string   `toml:"indentation"`
	Include     []string `toml:"include"`
	Exclude     []string `toml:"exclude"`
}

// DefaultConfig is used for every key pysai.toml leaves out.
func DefaultConfig() Config {
	return Config{
		Version:     parser.DefaultVersion.String(),
		Indentation: parser.SeverityWarning.String(),
		Include:     []string{"**/*.py"},
	}
}

// Project is a directory of Python sources parsed with one configuration.
type Project struct {
	RootDir string
	Config  Config

	version     parser.LanguageVersion
	indentation parser.Severity
}

// Load reads the project rooted at the current directory.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// LoadFrom reads pysai.toml from rootDir if it exists. A missing file
// yields the default configuration.
func LoadFrom(rootDir string) (*Project, error) {
	cfg := DefaultConfig()
	path := filepath.Join(rootDir, ConfigFile)
	meta, err := toml.DecodeFile(path, &cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Debugf("no %s in %s, using defaults", ConfigFile, rootDir)
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", path, err)
	default:
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			log.Warningf("%s: unknown keys %v", path, undecoded)
		}
	}
	return New(rootDir, cfg)
}

// New validates cfg and returns a project for rootDir.
func New(rootDir string, cfg Config) (*Project, error) {
	p := &Project{RootDir: rootDir, Config: cfg}
	if err := p.SetVersion(cfg.Version); err != nil {
		return nil, err
	}
	if err := p.SetIndentation(cfg.Indentation); err != nil {
		return nil, err
	}
	for _, pattern := range append(append([]string{}, cfg.Include...), cfg.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern %q", pattern)
		}
	}
	return p, nil
}

// SetVersion overrides the configured language version.
func (p *Project) SetVersion(s string) error {
	v, err := parser.ParseVersion(s)
	if err != nil {
		return err
	}
	p.version = v
	p.Config.Version = v.String()
	return nil
}

// SetIndentation overrides the severity of inconsistent tab usage.
func (p *Project) SetIndentation(s string) error {
	sev, err := parser.ParseSeverity(s)
	if err != nil {
		return err
	}
	p.indentation = sev
	p.Config.Indentation = sev.String()
	return nil
}

func (p *Project) Version() parser.LanguageVersion {
	return p.version
}

func (p *Project) Indentation() parser.Severity {
	return p.indentation
}

// ParserOptions returns the options every file of the project is parsed with.
func (p *Project) ParserOptions() []parser.Option {
	return []parser.Option{
		parser.WithVersion(p.version),
		parser.WithIndentationInconsistency(p.indentation),
	}
}

// Matches reports whether a slash-separated path relative to the root is
// selected by the include and exclude patterns.
func (p *Project) Matches(rel string) bool {
	rel = filepath.ToSlash(rel)
	included := false
	for _, pattern := range p.Config.Include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	for _, pattern := range p.Config.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}
	return true
}

// Files returns every source file selected by the configuration, joined to
// RootDir and sorted.
func (p *Project) Files() ([]string, error) {
	fsys := os.DirFS(p.RootDir)
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range p.Config.Include {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, rel := range matches {
			if seen[rel] || !p.Matches(rel) {
				continue
			}
			seen[rel] = true
			files = append(files, filepath.Join(p.RootDir, filepath.FromSlash(rel)))
		}
	}
	sort.Strings(files)
	log.Debugf("%d files selected in %s", len(files), p.RootDir)
	return files, nil
}

// WriteConfig writes cfg as pysai.toml into dir. An existing file is left
// untouched and reported as an error.
func WriteConfig(dir string, cfg Config) (string, error) {
	path := filepath.Join(dir, ConfigFile)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
