package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func tokenKinds(src string, opts ...TokenizerOption) []TokenKind {
	var kinds []TokenKind
	for _, tok := range NewTokenizer(src, opts...).All() {
		kinds = append(kinds, tok.Kind)
	}
	return kinds
}

func TestTokenizer(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenKind
	}{
		{"empty", "", []TokenKind{TokenEOF}},
		{"assignment", "x = 1\n", []TokenKind{TokenName, TokenAssign, TokenNumber, TokenNewLine, TokenEOF}},
		{"missing final newline", "x", []TokenKind{TokenName, TokenNewLine, TokenEOF}},
		{"block", "if x:\n    y\n", []TokenKind{
			TokenIf, TokenName, TokenColon, TokenNewLine,
			TokenIndent, TokenName, TokenNewLine,
			TokenDedent, TokenEOF,
		}},
		{"nested dedent", "if a:\n  if b:\n    c\nd\n", []TokenKind{
			TokenIf, TokenName, TokenColon, TokenNewLine,
			TokenIndent, TokenIf, TokenName, TokenColon, TokenNewLine,
			TokenIndent, TokenName, TokenNewLine,
			TokenDedent, TokenDedent, TokenName, TokenNewLine, TokenEOF,
		}},
		{"newline inside brackets", "(1,\n 2)\n", []TokenKind{
			TokenLParen, TokenNumber, TokenComma, TokenNumber, TokenRParen, TokenNewLine, TokenEOF,
		}},
		{"blank and comment lines", "x\n\n# c\ny\n", []TokenKind{
			TokenName, TokenNewLine, TokenNL, TokenNL, TokenName, TokenNewLine, TokenEOF,
		}},
		{"leading comment", "# c\nx\n", []TokenKind{TokenName, TokenNewLine, TokenEOF}},
		{"line continuation", "x = \\\n  1\n", []TokenKind{TokenName, TokenAssign, TokenNumber, TokenNewLine, TokenEOF}},
		{"operators", "a **= b // c\n", []TokenKind{
			TokenName, TokenPowerAssign, TokenName, TokenFloorDivide, TokenName, TokenNewLine, TokenEOF,
		}},
		{"arrow and ellipsis", "-> ...", []TokenKind{TokenArrow, TokenEllipsis, TokenNewLine, TokenEOF}},
		{"string prefix", "b'x' u\"y\" r'z'", []TokenKind{TokenString, TokenString, TokenString, TokenNewLine, TokenEOF}},
		{"crlf", "x\r\ny\r\n", []TokenKind{TokenName, TokenNewLine, TokenName, TokenNewLine, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenKinds(tt.input)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenizerVersionKeywords(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		version LanguageVersion
		first   TokenKind
	}{
		{"print statement in 2.7", "print x", V27, TokenPrint},
		{"print call in 3.0", "print(x)", V30, TokenName},
		{"print statement in 3.0", "print x", V30, TokenPrint},
		{"print followed by operator in 3.0", "print + x", V30, TokenName},
		{"exec in 3.1", "exec code", V31, TokenExec},
		{"nonlocal in 3.0", "nonlocal x", V30, TokenNonlocal},
		{"nonlocal as name in 2.7", "nonlocal = 1", V27, TokenName},
		{"True in 2.7", "True", V27, TokenName},
		{"True in 3.2", "True", V32, TokenTrue},
		{"with in 2.5", "with = 1", V25, TokenName},
		{"with in 2.6", "with x", V26, TokenWith},
		{"None", "None", V24, TokenNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenKinds(tt.input, WithTokenizerVersion(tt.version))
			if got[0] != tt.first {
				t.Errorf("first token = %v, want %v", got[0], tt.first)
			}
		})
	}
}

func TestTokenizerPrintFunctionFuture(t *testing.T) {
	got := tokenKinds("print x", WithTokenizerVersion(V27), WithTokenizerFuture(FuturePrintFunction))
	// still a keyword at statement start so the parser can report it
	if got[0] != TokenPrint {
		t.Errorf("first token = %v, want %v", got[0], TokenPrint)
	}
	got = tokenKinds("print(x)", WithTokenizerVersion(V27), WithTokenizerFuture(FuturePrintFunction))
	if got[0] != TokenName {
		t.Errorf("first token = %v, want %v", got[0], TokenName)
	}
}

func TestTokenizerValues(t *testing.T) {
	tests := []struct {
		input string
		value any
	}{
		{"42", int64(42)},
		{"0x1f", int64(31)},
		{"1.5", 1.5},
		{"'a\\tb'", "a\tb"},
		{"r'a\\tb'", "a\\tb"},
		{"b'xy'", Bytes("xy")},
		{"'''multi\nline'''", "multi\nline"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := NewTokenizer(tt.input).NextToken()
			if tok.Value != tt.value {
				t.Errorf("value = %#v, want %#v", tok.Value, tt.value)
			}
		})
	}
}

func TestTokenizerSpans(t *testing.T) {
	tokens := NewTokenizer("ab = 12\n").All()
	want := []Span{{0, 2}, {3, 4}, {5, 7}, {7, 8}, {8, 8}}
	var got []Span
	for _, tok := range tokens {
		got = append(got, tok.Span)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("spans mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizerErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
		code    ErrorCode
	}{
		{"unterminated triple quote", "x = '''abc\n", "EOF while scanning triple-quoted string", SyntaxError | IncompleteToken},
		{"unterminated string", "x = 'abc\n", "EOL while scanning string literal", SyntaxError},
		{"bad character", "x = $\n", "unexpected character '$'", SyntaxError},
		{"bad continuation", "x = \\ 1\n", "unexpected character after line continuation character", SyntaxError},
		{"bad dedent", "if x:\n    a\n  b\n", "unindent does not match any outer indentation level", IndentationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Collector
			NewTokenizer(tt.input, WithTokenizerSink(&c)).All()
			if len(c.Diagnostics) == 0 {
				t.Fatalf("no diagnostics for %q", tt.input)
			}
			d := c.Diagnostics[0]
			if d.Message != tt.message {
				t.Errorf("message = %q, want %q", d.Message, tt.message)
			}
			if d.Code != tt.code {
				t.Errorf("code = %v, want %v", d.Code, tt.code)
			}
		})
	}
}

func TestTokenizerInconsistentTabs(t *testing.T) {
	src := "if x:\n\ty\n        z\n"

	var c Collector
	NewTokenizer(src, WithTokenizerSink(&c), WithTabCheck(SeverityError)).All()
	if len(c.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(c.Diagnostics), c.Diagnostics)
	}
	if c.Diagnostics[0].Code != TabError {
		t.Errorf("code = %v, want %v", c.Diagnostics[0].Code, TabError)
	}

	var quiet Collector
	NewTokenizer(src, WithTokenizerSink(&quiet), WithTabCheck(SeverityIgnore)).All()
	if len(quiet.Diagnostics) != 0 {
		t.Errorf("got %d diagnostics with the check disabled", len(quiet.Diagnostics))
	}
}

func TestTokenizerOpenConstructs(t *testing.T) {
	tests := []struct {
		input string
		open  bool
	}{
		{"x = (1,\n", true},
		{"x = '''abc\n", true},
		{"x = 1 + \\\n", true},
		{"x = (1)\n", false},
		{"if x:\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := NewTokenizer(tt.input)
			tok.All()
			if got := tok.EndsInsideOpenConstruct(); got != tt.open {
				t.Errorf("EndsInsideOpenConstruct() = %v, want %v", got, tt.open)
			}
		})
	}
}
