package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/pysai/python/parser"
)

type Encoder interface {
	Encode(ast *parser.AST) error
}

// Names lists the output formats accepted by NewEncoder.
var Names = []string{"json", "yaml", "line", "tree"}

// NewEncoder returns the encoder registered under name.
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewASTJSONEncoder(w), nil
	case "yaml":
		return NewASTYAMLEncoder(w), nil
	case "line":
		return NewLineEncoder(w), nil
	case "tree":
		return NewTreeEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q (want one of %v)", name, Names)
}
