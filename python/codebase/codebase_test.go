package codebase

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/pysai/project"
	"github.com/dhamidi/pysai/python/parser"
)

func newTestCodebase(t *testing.T, files map[string]string) *Codebase {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	p, err := project.LoadFrom(dir)
	require.NoError(t, err)
	return New(p)
}

func TestScanAll(t *testing.T) {
	c := newTestCodebase(t, map[string]string{
		"a.py":      "x = 1\n",
		"pkg/b.py":  "x = )\n",
		"pkg/c.py":  "def f():\n    return 1\n",
		"other.txt": "ignored\n",
	})
	require.NoError(t, c.ScanAll(context.Background()))

	var names []string
	for _, f := range c.Files() {
		rel, err := filepath.Rel(c.RootDir(), f.Path)
		require.NoError(t, err)
		names = append(names, filepath.ToSlash(rel))
	}
	assert.Equal(t, []string{"a.py", "pkg/b.py", "pkg/c.py"}, names)

	under := c.FilesUnder(filepath.Join(c.RootDir(), "pkg"))
	require.Len(t, under, 2)
	assert.True(t, under[0].HasErrors())
	assert.False(t, under[1].HasErrors())

	a := c.GetFile(filepath.Join(c.RootDir(), "a.py"))
	require.NotNil(t, a)
	assert.Empty(t, a.Diagnostics)
	assert.Nil(t, c.GetFile(filepath.Join(c.RootDir(), "other.txt")))
}

func TestScanAllCanceled(t *testing.T) {
	c := newTestCodebase(t, map[string]string{"a.py": "x = 1\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, c.ScanAll(ctx), context.Canceled)
	assert.Empty(t, c.Files())
}

func TestUpdateAndRemoveFile(t *testing.T) {
	c := newTestCodebase(t, nil)
	path := filepath.Join(c.RootDir(), "mod.py")

	f, err := c.UpdateFile(path, []byte("class A:\n    pass\n"))
	require.NoError(t, err)
	assert.Same(t, f, c.GetFile(path))
	require.Len(t, f.Symbols, 1)
	assert.Equal(t, "A", f.Symbols[0].Name)

	c.RemoveFile(path)
	assert.Nil(t, c.GetFile(path))
}

const symbolSource = `from __future__ import division
import os.path, sys as system
from collections import OrderedDict as OD, deque
from helpers import *

X = 1
a, (b, c) = 1, (2, 3)
X = 2

def top(a, b):
    inner = 1

class Foo(Base, object):
    attr = 1
    def method(self):
        pass
`

func TestSymbols(t *testing.T) {
	f, err := Parse("mod.py", []byte(symbolSource))
	require.NoError(t, err)
	require.Empty(t, f.Diagnostics)

	type flat struct {
		Name   string
		Kind   SymbolKind
		Detail string
	}
	var got []flat
	for _, s := range f.Symbols {
		got = append(got, flat{s.Name, s.Kind, s.Detail})
	}
	assert.Equal(t, []flat{
		{"os", SymbolImport, "os.path"},
		{"system", SymbolImport, "sys"},
		{"OD", SymbolImport, "collections"},
		{"deque", SymbolImport, "collections"},
		{"X", SymbolVariable, ""},
		{"a", SymbolVariable, ""},
		{"b", SymbolVariable, ""},
		{"c", SymbolVariable, ""},
		{"top", SymbolFunction, "(a, b)"},
		{"Foo", SymbolClass, "Base, object"},
	}, got)

	foo := f.Symbols[len(f.Symbols)-1]
	require.Len(t, foo.Children, 2)
	assert.Equal(t, "attr", foo.Children[0].Name)
	assert.Equal(t, SymbolVariable, foo.Children[0].Kind)
	assert.Equal(t, "method", foo.Children[1].Name)
	assert.Equal(t, SymbolMethod, foo.Children[1].Kind)
	assert.Equal(t, "(self)", foo.Children[1].Detail)
	assert.Equal(t, "Foo", f.AST.Source(foo.NameSpan))
}

func TestFindSymbol(t *testing.T) {
	c := newTestCodebase(t, map[string]string{
		"a.py": "def helper():\n    pass\n",
		"b.py": symbolSource,
	})
	require.NoError(t, c.ScanAll(context.Background()))

	f, s := c.FindSymbol("Foo.method")
	require.NotNil(t, s)
	assert.Equal(t, filepath.Join(c.RootDir(), "b.py"), f.Path)
	assert.Equal(t, SymbolMethod, s.Kind)

	f, s = c.FindSymbol("helper")
	require.NotNil(t, s)
	assert.Equal(t, filepath.Join(c.RootDir(), "a.py"), f.Path)

	_, s = c.FindSymbol("Foo.missing")
	assert.Nil(t, s)
}

func TestFileWatcherScan(t *testing.T) {
	c := newTestCodebase(t, map[string]string{
		"a.py": "x = 1\n",
		"b.py": "y = 2\n",
	})
	changed := map[string]*FileInfo{}
	w := NewFileWatcher(c, WithOnChange(func(path string, f *FileInfo) {
		changed[filepath.Base(path)] = f
	}))

	w.scan()
	assert.Len(t, changed, 2)
	assert.Len(t, c.Files(), 2)

	clear(changed)
	w.scan()
	assert.Empty(t, changed, "unchanged files are not reparsed")

	a := filepath.Join(c.RootDir(), "a.py")
	require.NoError(t, os.WriteFile(a, []byte("x = )\n"), 0644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(a, later, later))
	require.NoError(t, os.Remove(filepath.Join(c.RootDir(), "b.py")))

	w.scan()
	require.Contains(t, changed, "a.py")
	assert.True(t, changed["a.py"].HasErrors())
	require.Contains(t, changed, "b.py")
	assert.Nil(t, changed["b.py"])
	assert.Len(t, c.Files(), 1)
}

func TestLSPPosition(t *testing.T) {
	text := "x = 'é'\ny = '😀' + z\n"
	f, err := parser.NewString(text).ParseFile()
	require.NoError(t, err)

	pos := lspPosition(text, f.Lines, strings.Index(text, "z"))
	assert.Equal(t, protocol.Position{Line: 1, Character: 11}, pos)

	pos = lspPosition(text, f.Lines, strings.Index(text, "'é'")+4)
	assert.Equal(t, protocol.Position{Line: 0, Character: 7}, pos)

	assert.Equal(t, lspPosition(text, f.Lines, len(text)), lspPosition(text, f.Lines, len(text)+10))
}

func TestToProtocolDiagnostics(t *testing.T) {
	f, err := Parse("bad.py", []byte("x = )\n"))
	require.NoError(t, err)

	diags := toProtocolDiagnostics(f)
	require.NotEmpty(t, diags)
	d := diags[0]
	assert.Equal(t, protocol.Position{Line: 0, Character: 4}, d.Range.Start)
	require.NotNil(t, d.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	assert.Equal(t, "SyntaxError", d.Code.Value)

	ok, err := Parse("ok.py", []byte("x = 1\n"))
	require.NoError(t, err)
	assert.NotNil(t, toProtocolDiagnostics(ok))
	assert.Empty(t, toProtocolDiagnostics(ok))
}

func TestToDocumentSymbols(t *testing.T) {
	f, err := Parse("mod.py", []byte("class A:\n    def m(self):\n        pass\n"))
	require.NoError(t, err)

	symbols := toDocumentSymbols(f.AST, f.Symbols)
	require.Len(t, symbols, 1)
	assert.Equal(t, protocol.SymbolKindClass, symbols[0].Kind)
	assert.Equal(t, protocol.Position{Line: 0, Character: 6}, symbols[0].SelectionRange.Start)
	require.Len(t, symbols[0].Children, 1)
	m := symbols[0].Children[0]
	assert.Equal(t, protocol.SymbolKindMethod, m.Kind)
	require.NotNil(t, m.Detail)
	assert.Equal(t, "(self)", *m.Detail)
	assert.Equal(t, protocol.Position{Line: 1, Character: 8}, m.SelectionRange.Start)
}

func TestURIToPath(t *testing.T) {
	path, err := uriToPath("file:///tmp/my%20project/a.py")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean("/tmp/my project/a.py"), path)

	path, err = uriToPath("relative/a.py")
	require.NoError(t, err)
	assert.Equal(t, "relative/a.py", path)
}
