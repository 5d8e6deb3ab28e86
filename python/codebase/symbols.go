package codebase

import (
	"strings"

	"github.com/dhamidi/pysai/python/parser"
)

type SymbolKind int

const (
	SymbolFunction SymbolKind = iota
	SymbolMethod
	SymbolClass
	SymbolVariable
	SymbolImport
)

var symbolKindNames = map[SymbolKind]string{
	SymbolFunction: "function",
	SymbolMethod:   "method",
	SymbolClass:    "class",
	SymbolVariable: "variable",
	SymbolImport:   "import",
}

func (k SymbolKind) String() string {
	if name, ok := symbolKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Symbol is a name a module or class body defines.
type Symbol struct {
	Name string
	Kind SymbolKind
	// Detail is the parameter list for functions and the bases for classes.
	Detail   string
	Span     parser.Span
	NameSpan parser.Span
	Children []Symbol
}

// Symbols lists the definitions of a module in source order. Class bodies
// contribute nested symbols; function bodies are not descended into.
func Symbols(ast *parser.AST) []Symbol {
	if ast == nil {
		return nil
	}
	return bodySymbols(ast, ast.Statements(), false)
}

func bodySymbols(ast *parser.AST, stmts []parser.Statement, inClass bool) []Symbol {
	var out []Symbol
	seen := make(map[string]bool)
	add := func(s Symbol) {
		if s.Kind == SymbolVariable && seen[s.Name] {
			return
		}
		seen[s.Name] = true
		out = append(out, s)
	}

	for _, stmt := range stmts {
		switch n := stmt.(type) {
		case *parser.Suite:
			for _, s := range bodySymbols(ast, n.Statements, inClass) {
				add(s)
			}
		case *parser.FunctionDef:
			kind := SymbolFunction
			if inClass {
				kind = SymbolMethod
			}
			add(Symbol{
				Name:     n.Name,
				Kind:     kind,
				Detail:   parameterList(ast, n),
				Span:     n.Span(),
				NameSpan: n.NameSpan,
			})
		case *parser.ClassDef:
			var bases []string
			for _, b := range n.Bases {
				bases = append(bases, ast.Source(b.Span()))
			}
			var body []parser.Statement
			if suite, ok := n.Body.(*parser.Suite); ok {
				body = suite.Statements
			} else if n.Body != nil {
				body = []parser.Statement{n.Body}
			}
			add(Symbol{
				Name:     n.Name,
				Kind:     SymbolClass,
				Detail:   strings.Join(bases, ", "),
				Span:     n.Span(),
				NameSpan: n.NameSpan,
				Children: bodySymbols(ast, body, true),
			})
		case *parser.Assign:
			for _, target := range n.Targets {
				for _, name := range targetNames(target) {
					add(Symbol{Name: name.Name, Kind: SymbolVariable, Span: n.Span(), NameSpan: name.Span()})
				}
			}
		case *parser.Import:
			for i, m := range n.Modules {
				name := n.AsNames[i]
				if name == "" && len(m.Names) > 0 {
					name = m.Names[0]
				}
				add(Symbol{Name: name, Kind: SymbolImport, Detail: m.String(), Span: n.Span(), NameSpan: m.Span()})
			}
		case *parser.FromImport:
			if n.IsStar || n.IsFuture {
				continue
			}
			for i, imported := range n.Names {
				name := imported
				if n.AsNames[i] != "" {
					name = n.AsNames[i]
				}
				add(Symbol{Name: name, Kind: SymbolImport, Detail: n.Module.String(), Span: n.Span(), NameSpan: n.Span()})
			}
		}
	}
	return out
}

func targetNames(e parser.Expression) []*parser.Name {
	switch e := e.(type) {
	case *parser.Name:
		return []*parser.Name{e}
	case *parser.Tuple:
		var out []*parser.Name
		for _, item := range e.Items {
			out = append(out, targetNames(item)...)
		}
		return out
	case *parser.List:
		var out []*parser.Name
		for _, item := range e.Items {
			out = append(out, targetNames(item)...)
		}
		return out
	case *parser.Paren:
		return targetNames(e.Inner)
	case *parser.Starred:
		return targetNames(e.Value)
	}
	return nil
}

// parameterList renders the parameters of fn as written.
func parameterList(ast *parser.AST, fn *parser.FunctionDef) string {
	params := make([]string, len(fn.Parameters))
	for i, p := range fn.Parameters {
		params[i] = ast.Source(p.Span())
	}
	return "(" + strings.Join(params, ", ") + ")"
}
