package parser

import (
	"bytes"
	"strings"
	"testing"
)

func TestResolveEncoding(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		encoding string
		text     string
	}{
		{"default", "x = 'caf\xe9'\n", "latin-1", "x = 'café'\n"},
		{"bom", "\xef\xbb\xbfx = 'caf\xc3\xa9'\n", "utf-8", "x = 'café'\n"},
		{"utf-8 declaration", "# -*- coding: utf-8 -*-\nx = 'caf\xc3\xa9'\n", "utf-8", "# -*- coding: utf-8 -*-\nx = 'café'\n"},
		{"latin-1 declaration", "# coding=latin-1\nx = '\xe9'\n", "latin-1", "# coding=latin-1\nx = 'é'\n"},
		{"second line", "#!/usr/bin/env python\n# vim: set fileencoding=utf8 :\n", "utf-8", "#!/usr/bin/env python\n# vim: set fileencoding=utf8 :\n"},
		{"third line ignored", "#\n#\n# coding: utf-8\nx = '\xe9'\n", "latin-1", "#\n#\n# coding: utf-8\nx = 'é'\n"},
		{"after code ignored", "x = 1\n# coding: utf-8\n", "latin-1", "x = 1\n# coding: utf-8\n"},
		{"emacs suffix", "# coding: utf-8-unix\n", "utf-8", "# coding: utf-8-unix\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Collector
			text, enc := ResolveEncoding([]byte(tt.input), &c)
			if enc.Name != tt.encoding {
				t.Errorf("encoding = %q, want %q", enc.Name, tt.encoding)
			}
			if text != tt.text {
				t.Errorf("text = %q, want %q", text, tt.text)
			}
			if len(c.Diagnostics) != 0 {
				t.Errorf("unexpected diagnostics: %v", c.Diagnostics)
			}
		})
	}
}

func TestResolveEncodingErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"bom conflict", "\xef\xbb\xbf# coding: latin-1\n", "file has both Unicode marker"},
		{"unknown codec", "# coding: no-such-codec\n", "unknown encoding: no-such-codec"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Collector
			ResolveEncoding([]byte(tt.input), &c)
			if len(c.Diagnostics) != 1 {
				t.Fatalf("got %d diagnostics, want 1: %v", len(c.Diagnostics), c.Diagnostics)
			}
			d := c.Diagnostics[0]
			if !strings.HasPrefix(d.Message, tt.message) {
				t.Errorf("message = %q, want prefix %q", d.Message, tt.message)
			}
			if d.Code != SyntaxError|NoCaret {
				t.Errorf("code = %v, want %v", d.Code, SyntaxError|NoCaret)
			}
			if d.Severity != SeverityFatal {
				t.Errorf("severity = %v, want %v", d.Severity, SeverityFatal)
			}
		})
	}
}

func TestParseReportsEncodingErrors(t *testing.T) {
	c := &Collector{}
	p := New(strings.NewReader("# coding: no-such-codec\nx = 1\n"), WithErrorSink(c))
	ast, err := p.ParseFile()
	if err != nil {
		t.Fatal(err)
	}
	if len(ast.Statements()) != 1 {
		t.Errorf("got %d statements, want 1", len(ast.Statements()))
	}
	if ast.ErrorCode.Base() != SyntaxError {
		t.Errorf("ErrorCode = %v, want %v", ast.ErrorCode, SyntaxError)
	}

	p.Reset()
	again, err := p.ParseFile()
	if err != nil {
		t.Fatal(err)
	}
	if again.ErrorCode != ast.ErrorCode {
		t.Errorf("ErrorCode after Reset = %v, want %v", again.ErrorCode, ast.ErrorCode)
	}
}

func TestNormalizeEncoding(t *testing.T) {
	tests := map[string]string{
		"UTF-8":       "utf-8",
		"utf_8":       "utf-8",
		"Latin-1":     "latin-1",
		"iso-8859-1":  "latin-1",
		"latin-1-dos": "latin-1",
		"cp1252":      "cp1252",
	}
	for in, want := range tests {
		if got := normalizeEncoding(in); got != want {
			t.Errorf("normalizeEncoding(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBytesLiteralKeepsSourceBytes(t *testing.T) {
	tests := []struct {
		name    string
		src     []byte
		version LanguageVersion
		want    Bytes
	}{
		{"latin-1 source", []byte("x = b'\xff\x80'\n"), V27, Bytes("\xff\x80")},
		{"escapes", []byte("x = b'\\xff\\x80'\n"), V33, Bytes("\xff\x80")},
		{"mixed", []byte("x = b'\xe9\\xe9'\n"), V27, Bytes("\xe9\xe9")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Collector{}
			ast, err := New(bytes.NewReader(tt.src), WithVersion(tt.version), WithErrorSink(c)).ParseFile()
			if err != nil {
				t.Fatal(err)
			}
			if c.HasErrors() {
				t.Fatalf("unexpected diagnostics: %v", c.Diagnostics)
			}
			value := ast.Statements()[0].(*Assign).Value.(*Constant).Value
			if value != tt.want {
				t.Errorf("value = %q, want %q", value, tt.want)
			}
		})
	}
}

func TestBytesLiteralRejectsWideCharacters(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		version LanguageVersion
	}{
		{"beyond latin-1", "x = b'\u65e5'\n", V27},
		{"non-ascii in 3.x", "x = b'\u00e9'\n", V33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c := parseSource(t, tt.src, WithVersion(tt.version))
			if len(c.Diagnostics) != 1 {
				t.Fatalf("got %d diagnostics, want 1: %v", len(c.Diagnostics), c.Diagnostics)
			}
			d := c.Diagnostics[0]
			if d.Message != "bytes can only contain ASCII literal characters" {
				t.Errorf("message = %q", d.Message)
			}
			if d.Code != SyntaxError {
				t.Errorf("code = %v, want %v", d.Code, SyntaxError)
			}
		})
	}
}
