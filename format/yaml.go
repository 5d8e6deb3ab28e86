package format

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/pysai/python/parser"
)

type ASTYAMLEncoder struct {
	w io.Writer
}

func NewASTYAMLEncoder(w io.Writer) *ASTYAMLEncoder {
	return &ASTYAMLEncoder{w: w}
}

type yamlDocument struct {
	File      string   `yaml:"file,omitempty"`
	Version   string   `yaml:"version"`
	Encoding  string   `yaml:"encoding,omitempty"`
	Future    []string `yaml:"future,omitempty"`
	ErrorCode string   `yaml:"errorCode,omitempty"`
	Body      any      `yaml:"body,omitempty"`
}

var futureNames = []struct {
	option parser.FutureOptions
	name   string
}{
	{parser.FutureTrueDivision, "division"},
	{parser.FutureWithStatement, "with_statement"},
	{parser.FutureAbsoluteImports, "absolute_import"},
	{parser.FuturePrintFunction, "print_function"},
	{parser.FutureUnicodeLiterals, "unicode_literals"},
}

func (e *ASTYAMLEncoder) Encode(ast *parser.AST) error {
	doc := yamlDocument{
		File:     ast.File,
		Version:  ast.Version.String(),
		Encoding: ast.Encoding.Name,
	}
	for _, f := range futureNames {
		if ast.Future.Has(f.option) {
			doc.Future = append(doc.Future, f.name)
		}
	}
	if ast.ErrorCode != 0 {
		doc.ErrorCode = ast.ErrorCode.String()
	}
	if ast.Body != nil {
		doc.Body = parser.ToJSON(ast.Body, ast.Lines)
	}

	enc := yaml.NewEncoder(e.w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
