package parser

import (
	"fmt"
	"strings"
)

// Children returns the direct children of n in source order. The hidden
// function of a GeneratorExp is not a child; it is reachable through the
// Function field.
func Children(n Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, c := range nodes {
			if c == nil || isNilNode(c) {
				continue
			}
			out = append(out, c)
		}
	}
	addExprs := func(exprs []Expression) {
		for _, e := range exprs {
			add(e)
		}
	}
	addClauses := func(clauses []ComprehensionClause) {
		for _, c := range clauses {
			add(c)
		}
	}

	switch n := n.(type) {
	case *Suite:
		for _, s := range n.Statements {
			add(s)
		}
	case *If:
		for _, t := range n.Tests {
			add(t)
		}
		add(n.Else)
	case *IfTest:
		add(n.Test, n.Body)
	case *While:
		add(n.Test, n.Body, n.Else)
	case *For:
		add(n.Target, n.Iterable, n.Body, n.Else)
	case *Try:
		add(n.Body)
		for _, h := range n.Handlers {
			add(h)
		}
		add(n.Else, n.Finally)
	case *ExceptHandler:
		add(n.Test, n.Target, n.Body)
	case *With:
		for _, item := range n.Items {
			add(item)
		}
		add(n.Body)
	case *WithItem:
		add(n.Context, n.Target)
	case *FunctionDef:
		addExprs(n.Decorators)
		for _, p := range n.Parameters {
			add(p)
		}
		add(n.Returns, n.Body)
	case *Parameter:
		add(n.Sublist, n.Annotation, n.Default)
	case *ClassDef:
		addExprs(n.Decorators)
		addExprs(n.Bases)
		for _, k := range n.Keywords {
			add(k)
		}
		add(n.Body)
	case *Import:
		for _, m := range n.Modules {
			add(m)
		}
	case *FromImport:
		add(n.Module)
	case *Assign:
		addExprs(n.Targets)
		add(n.Value)
	case *AugAssign:
		add(n.Target, n.Value)
	case *Return:
		add(n.Value)
	case *ExprStmt:
		add(n.Expr)
	case *Raise:
		add(n.Type, n.Value, n.Traceback, n.Cause)
	case *Assert:
		add(n.Test, n.Message)
	case *Del:
		addExprs(n.Targets)
	case *Print:
		add(n.Dest)
		addExprs(n.Values)
	case *Exec:
		add(n.Code, n.Globals, n.Locals)
	case *ErrorStmt:
		add(n.Partial)

	case *BinaryOp:
		add(n.Left, n.Right)
	case *UnaryOp:
		add(n.Operand)
	case *BoolOp:
		add(n.Left, n.Right)
	case *Compare:
		add(n.Left)
		addExprs(n.Comparators)
	case *Call:
		add(n.Target)
		for _, a := range n.Args {
			add(a)
		}
	case *Arg:
		add(n.Value)
	case *Index:
		add(n.Target, n.Index)
	case *Slice:
		add(n.Lower, n.Upper, n.Step)
	case *Member:
		add(n.Target)
	case *Lambda:
		add(n.Function)
	case *Tuple:
		addExprs(n.Items)
	case *List:
		addExprs(n.Items)
	case *Set:
		addExprs(n.Items)
	case *Dict:
		for _, item := range n.Items {
			add(item)
		}
	case *DictItem:
		add(n.Key, n.Value)
	case *ListComp:
		add(n.Item)
		addClauses(n.Clauses)
	case *SetComp:
		add(n.Item)
		addClauses(n.Clauses)
	case *DictComp:
		add(n.Key, n.Value)
		addClauses(n.Clauses)
	case *GeneratorExp:
		add(n.Item)
		addClauses(n.Clauses)
	case *ComprehensionFor:
		add(n.Target, n.Iterable)
	case *ComprehensionIf:
		add(n.Test)
	case *Conditional:
		add(n.TrueExpr, n.Test, n.FalseExpr)
	case *Starred:
		add(n.Value)
	case *Yield:
		add(n.Value)
	case *Paren:
		add(n.Inner)
	case *BackQuote:
		add(n.Inner)
	}
	return out
}

func isNilNode(n Node) bool {
	switch n := n.(type) {
	case *Suite:
		return n == nil
	case *FunctionDef:
		return n == nil
	case *DottedName:
		return n == nil
	}
	return false
}

// Inspect walks the tree depth-first in source order. If f returns false
// the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}

// Kinds returns the pre-order sequence of node kinds under n.
func Kinds(n Node) []NodeKind {
	var kinds []NodeKind
	Inspect(n, func(n Node) bool {
		kinds = append(kinds, n.Kind())
		return true
	})
	return kinds
}

// Dump renders n as an indented tree, one node per line.
func Dump(n Node) string {
	var b strings.Builder
	dump(&b, n, 0)
	return b.String()
}

func dump(b *strings.Builder, n Node, indent int) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(n.Kind().String())
	if label := Label(n); label != "" {
		b.WriteString(" ")
		b.WriteString(label)
	}
	b.WriteString("\n")
	for _, c := range Children(n) {
		dump(b, c, indent+1)
	}
}

// Label is the short attribute text shown next to a node's kind.
func Label(n Node) string {
	switch n := n.(type) {
	case *Name:
		return n.Name
	case *Constant:
		return FormatValue(n.Value)
	case *BinaryOp:
		return n.Op.String()
	case *UnaryOp:
		return n.Op.String()
	case *BoolOp:
		return n.Op.String()
	case *AugAssign:
		return n.Op.String() + "="
	case *Compare:
		ops := make([]string, len(n.Ops))
		for i, op := range n.Ops {
			ops[i] = op.String()
		}
		return strings.Join(ops, " ")
	case *Member:
		return n.Name
	case *Arg:
		return n.Name
	case *FunctionDef:
		return n.Name
	case *ClassDef:
		return n.Name
	case *Parameter:
		prefix := ""
		switch n.ParamKind {
		case ParameterList:
			prefix = "*"
		case ParameterDict:
			prefix = "**"
		}
		return prefix + n.Name
	case *DottedName:
		return n.String()
	case *Import:
		names := make([]string, len(n.Modules))
		for i, m := range n.Modules {
			names[i] = m.String()
			if n.AsNames[i] != "" {
				names[i] += " as " + n.AsNames[i]
			}
		}
		return strings.Join(names, ", ")
	case *FromImport:
		if n.IsStar {
			return "*"
		}
		names := make([]string, len(n.Names))
		for i, name := range n.Names {
			names[i] = name
			if n.AsNames[i] != "" {
				names[i] += " as " + n.AsNames[i]
			}
		}
		return strings.Join(names, ", ")
	case *Global:
		return strings.Join(n.Names, ", ")
	case *Nonlocal:
		return strings.Join(n.Names, ", ")
	}
	return ""
}

// FormatValue renders a constant value the way it would be written.
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "None"
	case bool:
		if v {
			return "True"
		}
		return "False"
	case string:
		return fmt.Sprintf("%q", v)
	case Bytes:
		return fmt.Sprintf("b%q", string(v))
	case complex128:
		return fmt.Sprintf("%gj", imag(v))
	case Ellipsis:
		return "..."
	}
	return fmt.Sprint(v)
}
