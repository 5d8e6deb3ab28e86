package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/pysai/python/parser"
)

type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(ast *parser.AST) error {
	text, err := e.MarshalText(ast)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText(ast *parser.AST) ([]byte, error) {
	return json.MarshalIndent(ast, "", "  ")
}
