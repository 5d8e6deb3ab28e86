package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dhamidi/pysai/python/parser"
)

// DiagnosticEncoder renders diagnostics the way compilers print them: a
// location line followed by the offending source line and a caret marker.
//
//	mod.py:1:5: fatal: unexpected token ')' [SyntaxError]
//	    x = )
//	        ^
type DiagnosticEncoder struct {
	w     io.Writer
	text  string
	lines parser.LineTable
}

func NewDiagnosticEncoder(w io.Writer, text string, lines parser.LineTable) *DiagnosticEncoder {
	return &DiagnosticEncoder{w: w, text: text, lines: lines}
}

func (e *DiagnosticEncoder) Encode(d parser.Diagnostic) error {
	text, err := e.MarshalText(d)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *DiagnosticEncoder) MarshalText(d parser.Diagnostic) ([]byte, error) {
	var sb strings.Builder
	if d.Start.File != "" {
		sb.WriteString(d.Start.File)
		sb.WriteString(":")
	}
	fmt.Fprintf(&sb, "%d:%d: %s: %s [%s]\n", d.Start.Line, d.Start.Column, d.Severity, d.Message, d.Code.Base())
	if d.Code&parser.NoCaret != 0 || e.text == "" {
		return []byte(sb.String()), nil
	}

	lineStart := e.lines.LineStart(d.Start.Line)
	if lineStart > len(e.text) || d.Span.Start < lineStart {
		return []byte(sb.String()), nil
	}
	lineEnd := strings.IndexAny(e.text[lineStart:], "\r\n")
	if lineEnd < 0 {
		lineEnd = len(e.text)
	} else {
		lineEnd += lineStart
	}
	line := e.text[lineStart:lineEnd]
	if strings.TrimSpace(line) == "" {
		return []byte(sb.String()), nil
	}

	col := min(d.Span.Start, lineEnd) - lineStart
	end := min(max(d.Span.End, d.Span.Start), lineEnd) - lineStart

	sb.WriteString(line)
	sb.WriteString("\n")
	sb.WriteString(caretPadding(line[:col]))
	sb.WriteString(strings.Repeat("^", max(1, uniseg.StringWidth(line[col:end]))))
	sb.WriteString("\n")
	return []byte(sb.String()), nil
}

// caretPadding returns whitespace as wide as prefix when displayed. Tabs
// are kept so the caret lines up whatever the tab width.
func caretPadding(prefix string) string {
	var sb strings.Builder
	g := uniseg.NewGraphemes(prefix)
	for g.Next() {
		if s := g.Str(); s == "\t" {
			sb.WriteByte('\t')
		} else {
			sb.WriteString(strings.Repeat(" ", g.Width()))
		}
	}
	return sb.String()
}
