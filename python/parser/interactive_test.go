package parser

import "testing"

func TestParseInteractiveCode(t *testing.T) {
	tests := []struct {
		name    string
		version LanguageVersion
		input   string
		state   CompletionState
	}{
		{"empty", V27, "", StateEmpty},
		{"blank line", V27, "\n", StateEmpty},
		{"comment only", V27, "# nothing\n", StateEmpty},
		{"simple statement", V27, "x = 1\n", StateComplete},
		{"simple statement without newline", V27, "x = 1", StateComplete},
		{"compound header", V27, "if True:\n", StateIncompleteStatement},
		{"open bracket", V27, "x = (1,\n", StateIncompleteToken},
		{"compound body", V27, "if True:\n    x = 1\n", StateIncompleteStatement},
		{"compound closed by blank line", V27, "if True:\n    x = 1\n\n", StateComplete},
		{"open triple quote", V27, "x = '''abc\n", StateIncompleteToken},
		{"line continuation", V27, "x = 1 + \\\n", StateIncompleteToken},
		{"bad token", V27, "x = )\n", StateInvalid},
		{"function header", V27, "def f():\n", StateIncompleteStatement},
		{"decorator", V27, "@dec\n", StateIncompleteStatement},
		{"class header", V27, "class C:\n", StateIncompleteStatement},
		{"else pending", V27, "if x:\n    pass\nelse:\n", StateIncompleteStatement},
		{"version error", V30, "print 1\n", StateInvalid},
		{"error before open bracket", V27, "break\nx = (\n", StateInvalid},
		{"two statements", V27, "x = 1\ny = 2\n", StateInvalid},
		{"future import", V27, "from __future__ import division\n", StateComplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ast, state, err := NewString(tt.input, WithVersion(tt.version)).ParseInteractiveCode()
			if err != nil {
				t.Fatal(err)
			}
			if state != tt.state {
				t.Errorf("state = %v, want %v", state, tt.state)
			}
			if (ast != nil) != (state == StateComplete) {
				t.Errorf("tree returned = %v for state %v", ast != nil, state)
			}
		})
	}
}

func TestParseInteractiveCodeTree(t *testing.T) {
	ast, state, err := NewString("if x:\n    y = 1\n\n").ParseInteractiveCode()
	if err != nil {
		t.Fatal(err)
	}
	if state != StateComplete {
		t.Fatalf("state = %v, want %v", state, StateComplete)
	}
	if _, ok := ast.Body.(*If); !ok {
		t.Errorf("body = %T, want *If", ast.Body)
	}
}

func TestResetAfterInteractiveCode(t *testing.T) {
	src := "def f(a):\n    return a ** 2\n\n"
	p := NewString(src, WithVersion(V27))
	probed, state, err := p.ParseInteractiveCode()
	if err != nil {
		t.Fatal(err)
	}
	if state != StateComplete {
		t.Fatalf("state = %v, want %v", state, StateComplete)
	}

	c := &Collector{}
	p.Reset(WithErrorSink(c))
	ast, err := p.ParseSingleStatement()
	if err != nil {
		t.Fatal(err)
	}
	if c.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", c.Diagnostics)
	}
	if got, want := Dump(ast.Body), Dump(probed.Body); got != want {
		t.Errorf("tree after Reset:\n%s\nwant:\n%s", got, want)
	}

	fresh, err := NewString(src, WithVersion(V27)).ParseSingleStatement()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := Dump(ast.Body), Dump(fresh.Body); got != want {
		t.Errorf("tree after Reset:\n%s\nwant:\n%s", got, want)
	}
}

func TestCompletionStateNeedsMore(t *testing.T) {
	tests := []struct {
		state CompletionState
		more  bool
	}{
		{StateComplete, false},
		{StateInvalid, false},
		{StateEmpty, false},
		{StateIncompleteToken, true},
		{StateIncompleteStatement, true},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := tt.state.NeedsMore(); got != tt.more {
				t.Errorf("NeedsMore() = %v, want %v", got, tt.more)
			}
		})
	}
	if got := CompletionState(99).String(); got != "Unknown" {
		t.Errorf("String() = %q, want %q", got, "Unknown")
	}
}

func TestEndsWithBlankLine(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"x\n", false},
		{"x\n\n", true},
		{"x\n  \n", true},
		{"x\r\n\r\n", true},
		{"x", false},
	}
	for _, tt := range tests {
		if got := endsWithBlankLine(tt.input); got != tt.want {
			t.Errorf("endsWithBlankLine(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
