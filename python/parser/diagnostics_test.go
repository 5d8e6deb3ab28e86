package parser

import (
	"testing"
)

func findDiagnostic(c *Collector, message string) (Diagnostic, bool) {
	for _, d := range c.Diagnostics {
		if d.Message == message {
			return d, true
		}
	}
	return Diagnostic{}, false
}

func TestParseDiagnostics(t *testing.T) {
	tests := []struct {
		name    string
		version LanguageVersion
		input   string
		message string
		code    ErrorCode
	}{
		{"duplicate argument", V27, "def f(a, a):\n    pass\n", "duplicate argument 'a' in function definition", SyntaxError},
		{"positional after star args", V27, "def f(*a, b):\n    pass\n", "positional parameter after * args not allowed", SyntaxError},
		{"missing default", V27, "def f(a=1, b):\n    pass\n", "default value must be specified here", SyntaxError},
		{"break outside loop", V27, "break\n", "'break' outside loop", SyntaxError},
		{"continue in finally", V27, "while x:\n    try:\n        pass\n    finally:\n        continue\n", "'continue' not supported inside 'finally' clause", SyntaxError},
		{"return outside function", V27, "return 1\n", "'return' outside function", SyntaxError},
		{"return in class body", V27, "class C:\n    return 1\n", "'return' outside function", SyntaxError},
		{"yield outside function", V27, "yield 1\n", "misplaced yield", SyntaxError},
		{"assign to literal", V27, "1 = x\n", "can't assign to literal", SyntaxError},
		{"assign to call", V27, "f() = 1\n", "can't assign to function call", SyntaxError},
		{"assign to operator", V27, "a + b = 1\n", "can't assign to operator", SyntaxError},
		{"assign to None", V27, "None = 1\n", "cannot assign to None", SyntaxError},
		{"augmented tuple", V27, "a, b += 1\n", "illegal expression for augmented assignment", SyntaxError},
		{"delete call", V27, "del f()\n", "can't delete function call", SyntaxError},
		{"missing colon", V27, "if x\n    pass\n", "unexpected token '<newline>'", SyntaxError},
		{"unexpected indent", V27, "x = 1\n    y = 2\n", "unexpected indent", IndentationError},
		{"missing block", V27, "if x:\npass\n", "expected an indented block", IndentationError},
		{"future braces", V27, "from __future__ import braces\n", "not a chance", SyntaxError},
		{"unknown future", V27, "from __future__ import spam\n", "future feature is not defined: spam", SyntaxError},
		{"future too new", V25, "from __future__ import print_function\n", "future feature is not defined: print_function", SyntaxError},
		{"late future", V27, "x = 1\nfrom __future__ import division\n", "from __future__ imports must occur at the beginning of the file", SyntaxError},
		{"future star", V27, "from __future__ import *\n", "future statement does not support import *", SyntaxError},
		{"bytes mixing", V30, "x = b'a' 'b'\n", "cannot mix bytes and nonbytes literals", SyntaxError},
		{"default except", V27, "try:\n    pass\nexcept:\n    pass\nexcept E:\n    pass\n", "default 'except' must be last", SyntaxError},
		{"generator return", V27, "def g():\n    yield 1\n    return 2\n", "'return' with argument inside generator", SyntaxError},
		{"module nonlocal", V30, "nonlocal x\n", "nonlocal declaration not allowed at module level", SyntaxError},
		{"generator argument", V27, "f(x for x in y, 1)\n", "Generator expression must be parenthesized if not sole argument", SyntaxError},
		{"duplicate keyword", V27, "f(a=1, a=2)\n", "duplicate keyword argument", SyntaxError},
		{"positional after keyword", V27, "f(a=1, 2)\n", "non-keyword arg after keyword arg", SyntaxError},
		{"expression keyword", V27, "f(a + 1=2)\n", "keyword can't be an expression", SyntaxError},
		{"two starred", V30, "*a, *b = c\n", "two starred expressions in assignment", SyntaxError},
		{"bare star", V30, "def f(*):\n    pass\n", "named arguments must follow bare *", SyntaxError},
		{"import star in function", V30, "def f():\n    from m import *\n", "import * only allowed at module level", SyntaxError},
		{"print statement", V30, "print 1, 2\n", FeaturePrintStatement.requirement(), VersionError},
		{"exec statement", V30, "exec 'x'\n", FeatureExecStatement.requirement(), VersionError},
		{"less greater", V30, "a <> b\n", FeatureLessGreater.requirement(), VersionError},
		{"backquote", V30, "x = `a`\n", FeatureBackQuote.requirement(), VersionError},
		{"raise comma", V30, "raise E, 'x'\n", FeatureRaiseComma.requirement(), VersionError},
		{"except comma", V30, "try:\n    pass\nexcept E, e:\n    pass\n", FeatureExceptComma.requirement(), VersionError},
		{"sublist parameter", V30, "def f((a, b)):\n    pass\n", FeatureSublistParameters.requirement(), VersionError},
		{"class keywords", V27, "class C(metaclass=M):\n    pass\n", FeatureClassKeywords.requirement(), VersionError},
		{"set literal", V26, "x = {1, 2}\n", FeatureSetLiterals.requirement(), VersionError},
		{"annotations", V27, "def f(a: int):\n    pass\n", FeatureAnnotations.requirement(), VersionError},
		{"raise from", V27, "raise E from e\n", FeatureRaiseFrom.requirement(), VersionError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c := parseSource(t, tt.input, WithVersion(tt.version))
			d, ok := findDiagnostic(c, tt.message)
			if !ok {
				t.Fatalf("no %q diagnostic; got %v", tt.message, c.Diagnostics)
			}
			if d.Code != tt.code {
				t.Errorf("code = %v, want %v", d.Code, tt.code)
			}
			if d.Severity != SeverityFatal {
				t.Errorf("severity = %v, want %v", d.Severity, SeverityFatal)
			}
		})
	}
}

func TestParseVersionErrorsKeepTree(t *testing.T) {
	ast, c := parseSource(t, "print 1, 2\n", WithVersion(V30))
	if len(c.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(c.Diagnostics), c.Diagnostics)
	}
	if _, ok := ast.Statements()[0].(*Print); !ok {
		t.Errorf("statement = %T, want *Print", ast.Statements()[0])
	}
	if ast.ErrorCode.Base() != VersionError {
		t.Errorf("ErrorCode = %v, want %v", ast.ErrorCode, VersionError)
	}
}

func TestParseMissingColonReportsOnce(t *testing.T) {
	_, c := parseSource(t, "if x\n    pass\ny = 1\n")
	if len(c.Diagnostics) != 1 {
		t.Errorf("got %d diagnostics, want 1: %v", len(c.Diagnostics), c.Diagnostics)
	}
}

func TestParseCleanAcrossVersions(t *testing.T) {
	src := "import os\n\ndef f(a, b=1, *args, **kw):\n    if a:\n        return [x for x in args]\n    return {}\n\nclass C(object):\n    pass\n"
	for _, v := range []LanguageVersion{V24, V25, V26, V27, V30, V31, V32, V33} {
		t.Run(v.String(), func(t *testing.T) {
			parseClean(t, src, WithVersion(v))
		})
	}
}

func TestDiagnosticPosition(t *testing.T) {
	_, c := parseSource(t, "x = 1\n  break\n")
	if len(c.Diagnostics) == 0 {
		t.Fatal("no diagnostics")
	}
	d := c.Diagnostics[0]
	if d.Start.Line != 2 || d.Start.Column != 1 {
		t.Errorf("position = %d:%d, want 2:1", d.Start.Line, d.Start.Column)
	}
	if d.Code != IndentationError {
		t.Errorf("code = %v, want %v", d.Code, IndentationError)
	}
}

func TestFirstErrorCode(t *testing.T) {
	p := NewString("break\nreturn\n")
	if _, err := p.ParseFile(); err != nil {
		t.Fatal(err)
	}
	if p.ErrorCode() != SyntaxError {
		t.Errorf("ErrorCode() = %v, want %v", p.ErrorCode(), SyntaxError)
	}

	p = NewString("x = 1\n")
	if _, err := p.ParseFile(); err != nil {
		t.Fatal(err)
	}
	if p.ErrorCode() != 0 {
		t.Errorf("ErrorCode() = %v for clean input", p.ErrorCode())
	}
}
