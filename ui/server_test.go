package ui

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/pysai/project"
	"github.com/dhamidi/pysai/python/codebase"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"app.py":     "class App(object):\n    def run(self):\n        pass\n",
		"pkg/bad.py": "x = )\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	p, err := project.LoadFrom(dir)
	require.NoError(t, err)
	c := codebase.New(p)
	require.NoError(t, c.ScanAll(context.Background()))

	s, err := NewServer(c)
	require.NoError(t, err)
	return s
}

func get(t *testing.T, s *Server, target string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestIndex(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `href="/f/app.py"`)
	assert.Contains(t, body, `href="/f/pkg/bad.py"`)
	assert.Contains(t, body, "1 errors")
}

func TestSidebarFilter(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/sidebar?q=BAD", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pkg/bad.py")
	assert.NotContains(t, rec.Body.String(), "app.py")
}

func TestFilePage(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/f/app.py", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "App")
	assert.Contains(t, body, "run")
	assert.Contains(t, body, "ClassDef")
	assert.NotContains(t, body, "Diagnostics")

	rec = get(t, s, "/f/pkg/bad.py", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "unexpected token")

	rec = get(t, s, "/f/missing.py", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFileJSON(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/f/app.py", map[string]string{"Accept": "application/json"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Contains(t, doc, "body")
}

func TestStatic(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/static/style.css", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEmbeddedTemplates(t *testing.T) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"sub": func(a, b int) int { return a - b },
	}).ParseFS(mustSub(embeddedFS, "templates"), "*.html")
	require.NoError(t, err)
	for _, name := range []string{"index.html", "file.html", "sidebar.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}
