package parser

import "encoding/json"

type jsonNode struct {
	Kind     string      `json:"kind" yaml:"kind"`
	Span     *jsonSpan   `json:"span,omitempty" yaml:"span,omitempty"`
	Label    string      `json:"label,omitempty" yaml:"label,omitempty"`
	Children []*jsonNode `json:"children,omitempty" yaml:"children,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start" yaml:"start,flow"`
	End   jsonPosition `json:"end" yaml:"end,flow"`
}

type jsonPosition struct {
	Offset int `json:"offset" yaml:"offset"`
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// ToJSON converts the tree into plain values suitable for the JSON and
// YAML encoders. Spans are resolved to line and column with lines.
func ToJSON(n Node, lines LineTable) any {
	return toJSON(n, lines)
}

func toJSON(n Node, lines LineTable) *jsonNode {
	jn := &jsonNode{
		Kind:  n.Kind().String(),
		Label: Label(n),
	}
	sp := n.Span()
	start, end := lines.Position(sp.Start), lines.Position(sp.End)
	jn.Span = &jsonSpan{
		Start: jsonPosition{Offset: sp.Start, Line: start.Line, Column: start.Column},
		End:   jsonPosition{Offset: sp.End, Line: end.Line, Column: end.Column},
	}
	children := Children(n)
	if len(children) > 0 {
		jn.Children = make([]*jsonNode, len(children))
		for i, child := range children {
			jn.Children[i] = toJSON(child, lines)
		}
	}
	return jn
}

func (a *AST) MarshalJSON() ([]byte, error) {
	out := struct {
		File      string    `json:"file,omitempty"`
		Version   string    `json:"version"`
		Encoding  string    `json:"encoding,omitempty"`
		ErrorCode string    `json:"errorCode,omitempty"`
		Body      *jsonNode `json:"body,omitempty"`
	}{
		File:     a.File,
		Version:  a.Version.String(),
		Encoding: a.Encoding.Name,
	}
	if a.ErrorCode != 0 {
		out.ErrorCode = a.ErrorCode.String()
	}
	if a.Body != nil {
		out.Body = toJSON(a.Body, a.Lines)
	}
	return json.Marshal(out)
}
