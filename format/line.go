package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/pysai/python/parser"
)

// LineEncoder writes one tab-separated line per node in pre-order:
//
//	depth	kind	start	end	label
//
// where start and end are line:column positions.
type LineEncoder struct {
	w io.Writer
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(ast *parser.AST) error {
	text, err := e.MarshalText(ast)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText(ast *parser.AST) ([]byte, error) {
	var sb strings.Builder
	if ast.Body == nil {
		return nil, nil
	}
	var walk func(n parser.Node, depth int)
	walk = func(n parser.Node, depth int) {
		sp := n.Span()
		start, end := ast.Lines.Position(sp.Start), ast.Lines.Position(sp.End)
		fmt.Fprintf(&sb, "%d\t%s\t%d:%d\t%d:%d\t%s\n",
			depth,
			n.Kind(),
			start.Line, start.Column,
			end.Line, end.Column,
			parser.Label(n),
		)
		for _, c := range parser.Children(n) {
			walk(c, depth+1)
		}
	}
	walk(ast.Body, 0)
	return []byte(sb.String()), nil
}

// TreeEncoder writes the indented dump of the tree.
type TreeEncoder struct {
	w io.Writer
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

func (e *TreeEncoder) Encode(ast *parser.AST) error {
	if ast.Body == nil {
		return nil
	}
	_, err := io.WriteString(e.w, parser.Dump(ast.Body))
	return err
}

// TokenLineEncoder writes one line per token: position, kind and the
// quoted source text.
type TokenLineEncoder struct {
	w     io.Writer
	lines parser.LineTable
}

func NewTokenLineEncoder(w io.Writer, lines parser.LineTable) *TokenLineEncoder {
	return &TokenLineEncoder{w: w, lines: lines}
}

func (e *TokenLineEncoder) Encode(tok parser.Token) error {
	pos := e.lines.Position(tok.Span.Start)
	_, err := fmt.Fprintf(e.w, "%d:%d\t%s\t%q\n", pos.Line, pos.Column, tok.Kind, tok.Literal)
	return err
}
