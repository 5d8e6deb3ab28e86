package codebase

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tidwall/btree"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/pysai/project"
	"github.com/dhamidi/pysai/python/parser"
)

var log = commonlog.GetLogger("pysai.codebase")

// Codebase keeps the parse results of every file of a project, ordered by
// path.
type Codebase struct {
	mu      sync.RWMutex
	project *project.Project
	files   btree.Map[string, *FileInfo]
}

type FileInfo struct {
	Path        string
	Content     []byte
	AST         *parser.AST
	Diagnostics []parser.Diagnostic
	Symbols     []Symbol
}

// HasErrors reports whether any diagnostic of the file is an error.
func (f *FileInfo) HasErrors() bool {
	for _, d := range f.Diagnostics {
		if d.Severity >= parser.SeverityError {
			return true
		}
	}
	return false
}

func New(p *project.Project) *Codebase {
	return &Codebase{project: p}
}

func (c *Codebase) RootDir() string {
	return c.project.RootDir
}

func (c *Codebase) Project() *project.Project {
	return c.project
}

// ScanAll parses every file selected by the project in parallel.
func (c *Codebase) ScanAll(ctx context.Context) error {
	paths, err := c.project.Files()
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	results := make([]*FileInfo, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			f, err := Parse(path, content, c.project.ParserOptions()...)
			results[i] = f
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, f := range results {
		c.files.Set(f.Path, f)
	}
	log.Infof("scanned %d files in %s", len(results), c.project.RootDir)
	return nil
}

func (c *Codebase) ScanFile(path string) (*FileInfo, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.UpdateFile(path, content)
}

// UpdateFile reparses path from content and replaces its entry.
func (c *Codebase) UpdateFile(path string, content []byte) (*FileInfo, error) {
	f, err := Parse(path, content, c.project.ParserOptions()...)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files.Set(path, f)
	log.Debugf("updated %s: %d diagnostics", path, len(f.Diagnostics))
	return f, nil
}

// Parse parses one file. Content is decoded the way a file on disk would
// be, honoring a byte order mark or coding comment.
func Parse(path string, content []byte, opts ...parser.Option) (*FileInfo, error) {
	collector := &parser.Collector{File: path}
	opts = append([]parser.Option{parser.WithFile(path)}, opts...)
	opts = append(opts, parser.WithErrorSink(collector))
	p := parser.New(bytes.NewReader(content), opts...)
	defer p.Close()

	ast, err := p.ParseFile()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &FileInfo{
		Path:        path,
		Content:     content,
		AST:         ast,
		Diagnostics: collector.Diagnostics,
		Symbols:     Symbols(ast),
	}, nil
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files.Delete(path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, _ := c.files.Get(path)
	return f
}

// Files returns every known file ordered by path.
func (c *Codebase) Files() []*FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*FileInfo, 0, c.files.Len())
	c.files.Scan(func(_ string, f *FileInfo) bool {
		out = append(out, f)
		return true
	})
	return out
}

// FilesUnder returns the files inside dir, ordered by path.
func (c *Codebase) FilesUnder(dir string) []*FileInfo {
	prefix := filepath.Clean(dir) + string(filepath.Separator)
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []*FileInfo
	c.files.Ascend(prefix, func(path string, f *FileInfo) bool {
		if !strings.HasPrefix(path, prefix) {
			return false
		}
		out = append(out, f)
		return true
	})
	return out
}

// FindSymbol looks a top-level or nested definition up by its dotted name
// across all files, such as "Class.method".
func (c *Codebase) FindSymbol(name string) (*FileInfo, *Symbol) {
	parts := strings.Split(name, ".")
	for _, f := range c.Files() {
		if s := findSymbol(f.Symbols, parts); s != nil {
			return f, s
		}
	}
	return nil, nil
}

func findSymbol(symbols []Symbol, parts []string) *Symbol {
	for i := range symbols {
		if symbols[i].Name != parts[0] {
			continue
		}
		if len(parts) == 1 {
			return &symbols[i]
		}
		if s := findSymbol(symbols[i].Children, parts[1:]); s != nil {
			return s
		}
	}
	return nil
}
