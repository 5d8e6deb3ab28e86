package ui

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/pysai/format"
	"github.com/dhamidi/pysai/python/codebase"
	"github.com/dhamidi/pysai/python/parser"
)

//go:embed static templates
var embeddedFS embed.FS

var log = commonlog.GetLogger("pysai.ui")

const maxResults = 50

// Server browses the files of a codebase: their diagnostics, symbols and
// syntax trees.
type Server struct {
	codebase   *codebase.Codebase
	staticFS   fs.FS
	mux        *http.ServeMux
	templateFS fs.FS
	funcMap    template.FuncMap
}

func NewServer(c *codebase.Codebase) (*Server, error) {
	staticFS := overlayFS("ui/static", mustSub(embeddedFS, "static"))
	templateFS := overlayFS("ui/templates", mustSub(embeddedFS, "templates"))

	funcMap := template.FuncMap{
		"sub": func(a, b int) int {
			return a - b
		},
	}

	if _, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "*.html"); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		codebase:   c,
		staticFS:   staticFS,
		mux:        http.NewServeMux(),
		templateFS: templateFS,
		funcMap:    funcMap,
	}

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	s.mux.HandleFunc("GET /f/{path...}", s.handleFile)
	s.mux.HandleFunc("GET /sidebar", s.handleSidebar)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// render parses the templates on every request so edits under ui/templates
// show up without a restart.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, err := template.New("").Funcs(s.funcMap).ParseFS(s.templateFS, "*.html")
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Errorf("render %s: %s", name, err)
	}
}

type fileEntry struct {
	Path   string
	Rel    string
	Errors int
}

type sidebarData struct {
	Files        []fileEntry
	Query        string
	Active       string
	TotalMatches int
	HasMore      bool
}

func (s *Server) sidebar(query, active string) sidebarData {
	query = strings.ToLower(query)
	data := sidebarData{Query: query, Active: active}
	for _, f := range s.codebase.Files() {
		rel := s.rel(f.Path)
		if query != "" && !strings.Contains(strings.ToLower(rel), query) {
			continue
		}
		data.TotalMatches++
		if len(data.Files) < maxResults {
			data.Files = append(data.Files, fileEntry{Path: f.Path, Rel: rel, Errors: errorCount(f)})
		}
	}
	data.HasMore = data.TotalMatches > len(data.Files)
	return data
}

func (s *Server) rel(path string) string {
	rel, err := filepath.Rel(s.codebase.RootDir(), path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func errorCount(f *codebase.FileInfo) int {
	n := 0
	for _, d := range f.Diagnostics {
		if d.Severity >= parser.SeverityError {
			n++
		}
	}
	return n
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	errors := 0
	for _, f := range s.codebase.Files() {
		errors += errorCount(f)
	}
	data := struct {
		Root    string
		Version parser.LanguageVersion
		Errors  int
		Sidebar sidebarData
	}{
		Root:    s.codebase.RootDir(),
		Version: s.codebase.Project().Version(),
		Errors:  errors,
		Sidebar: s.sidebar("", ""),
	}
	s.render(w, "index.html", data)
}

func (s *Server) handleSidebar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.render(w, "sidebar.html", s.sidebar(q.Get("q"), q.Get("active")))
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	rel := r.PathValue("path")
	path := filepath.Join(s.codebase.RootDir(), filepath.FromSlash(rel))
	f := s.codebase.GetFile(path)
	if f == nil {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}

	if r.Header.Get("Accept") == "application/json" {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(f.AST); err != nil {
			log.Errorf("encode %s: %s", path, err)
		}
		return
	}

	var diags bytes.Buffer
	enc := format.NewDiagnosticEncoder(&diags, f.AST.Text, f.AST.Lines)
	for _, d := range f.Diagnostics {
		if err := enc.Encode(d); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	data := struct {
		Rel         string
		File        *codebase.FileInfo
		Diagnostics string
		Tree        string
		Sidebar     sidebarData
	}{
		Rel:         rel,
		File:        f,
		Diagnostics: diags.String(),
		Tree:        parser.Dump(f.AST.Body),
		Sidebar:     s.sidebar("", path),
	}
	s.render(w, "file.html", data)
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

type overlayFSType struct {
	primary   fs.FS
	secondary fs.FS
}

// overlayFS serves files from primaryPath on disk when present and from
// secondary otherwise.
func overlayFS(primaryPath string, secondary fs.FS) fs.FS {
	return &overlayFSType{
		primary:   os.DirFS(primaryPath),
		secondary: secondary,
	}
}

func (o *overlayFSType) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	return o.secondary.Open(name)
}

func (o *overlayFSType) ReadDir(name string) ([]fs.DirEntry, error) {
	entries := make(map[string]fs.DirEntry)

	if rd, ok := o.secondary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	if rd, ok := o.primary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	result := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, e)
	}
	return result, nil
}
