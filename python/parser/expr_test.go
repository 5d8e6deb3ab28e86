package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseExpressionShapes(t *testing.T) {
	tests := []struct {
		input string
		kinds []NodeKind
	}{
		{"1 + 2 * 3", []NodeKind{KindBinaryOp, KindConstant, KindBinaryOp, KindConstant, KindConstant}},
		{"1 * 2 + 3", []NodeKind{KindBinaryOp, KindBinaryOp, KindConstant, KindConstant, KindConstant}},
		{"(1 + 2) * 3", []NodeKind{KindBinaryOp, KindParen, KindBinaryOp, KindConstant, KindConstant, KindConstant}},
		{"-x ** 2", []NodeKind{KindUnaryOp, KindBinaryOp, KindName, KindConstant}},
		{"not a", []NodeKind{KindUnaryOp, KindName}},
		{"a or b and c", []NodeKind{KindBoolOp, KindName, KindBoolOp, KindName, KindName}},
		{"a < b < c", []NodeKind{KindCompare, KindName, KindName, KindName}},
		{"a is not b", []NodeKind{KindCompare, KindName, KindName}},
		{"a if b else c", []NodeKind{KindConditional, KindName, KindName, KindName}},
		{"f(x)[0].y", []NodeKind{KindMember, KindIndex, KindCall, KindName, KindArg, KindName, KindConstant}},
		{"f(a, *b, **c)", []NodeKind{KindCall, KindName, KindArg, KindName, KindArg, KindName, KindArg, KindName}},
		{"f(x for x in y)", []NodeKind{
			KindCall, KindName, KindArg, KindGeneratorExp, KindName, KindComprehensionFor, KindName, KindName,
		}},
		{"a, b", []NodeKind{KindTuple, KindName, KindName}},
		{"()", []NodeKind{KindTuple}},
		{"[x for x in y]", []NodeKind{KindListComp, KindName, KindComprehensionFor, KindName, KindName}},
		{"[1, 2]", []NodeKind{KindList, KindConstant, KindConstant}},
		{"{1: 2}", []NodeKind{KindDict, KindDictItem, KindConstant, KindConstant}},
		{"{1, 2}", []NodeKind{KindSet, KindConstant, KindConstant}},
		{"{k: v for k in y}", []NodeKind{KindDictComp, KindName, KindName, KindComprehensionFor, KindName, KindName}},
		{"x[1:2]", []NodeKind{KindIndex, KindName, KindSlice, KindConstant, KindConstant}},
		{"x[::2]", []NodeKind{KindIndex, KindName, KindSlice, KindConstant}},
		{"lambda: 1", []NodeKind{KindLambda, KindFunctionDef, KindReturn, KindConstant}},
		{"lambda a, b=1: a", []NodeKind{
			KindLambda, KindFunctionDef, KindParameter, KindParameter, KindConstant, KindReturn, KindName,
		}},
		{"`x`", []NodeKind{KindBackQuote, KindName}},
		{"'a' 'b'", []NodeKind{KindConstant}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Kinds(parseExpression(t, tt.input))
			if diff := cmp.Diff(tt.kinds, got); diff != "" {
				t.Errorf("kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseExpressionValues(t *testing.T) {
	tests := []struct {
		input string
		value any
	}{
		{"'a' 'b'", "ab"},
		{"b'a' b'b'", Bytes("ab")},
		{"None", nil},
		{"True", true},
		{"0x10", int64(16)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, ok := parseExpression(t, tt.input, WithVersion(V32)).(*Constant)
			if !ok {
				t.Fatalf("not a constant")
			}
			if c.Value != tt.value {
				t.Errorf("value = %#v, want %#v", c.Value, tt.value)
			}
		})
	}
}

func TestParseDivision(t *testing.T) {
	tests := []struct {
		version LanguageVersion
		op      Operator
	}{
		{V27, OpDiv},
		{V30, OpTrueDiv},
	}
	for _, tt := range tests {
		t.Run(tt.version.String(), func(t *testing.T) {
			n := parseExpression(t, "a / b", WithVersion(tt.version)).(*BinaryOp)
			if n.Op != tt.op {
				t.Errorf("Op = %v, want %v", n.Op, tt.op)
			}
		})
	}

	n := parseExpression(t, "a / b", WithFutureOptions(FutureTrueDivision)).(*BinaryOp)
	if n.Op != OpTrueDiv {
		t.Errorf("Op with division future = %v, want true division", n.Op)
	}
}

func TestParseGeneratorExpression(t *testing.T) {
	src := "(x for x in y if x)"
	gen, ok := parseExpression(t, src).(*GeneratorExp)
	if !ok {
		t.Fatal("not a generator expression")
	}

	var clauses []NodeKind
	for _, c := range gen.Clauses {
		clauses = append(clauses, c.Kind())
	}
	if diff := cmp.Diff([]NodeKind{KindComprehensionFor, KindComprehensionIf}, clauses); diff != "" {
		t.Errorf("clause kinds mismatch (-want +got):\n%s", diff)
	}
	if name, ok := gen.Iterable.(*Name); !ok || name.Name != "y" {
		t.Errorf("Iterable = %#v, want the name y", gen.Iterable)
	}
	if gen.Span() != (Span{0, len(src)}) {
		t.Errorf("span = %v", gen.Span())
	}

	fn := gen.Function
	if fn == nil {
		t.Fatal("no hidden function")
	}
	if fn.Name != "<genexpr>" || !fn.IsGenerator {
		t.Errorf("function = %q generator=%v", fn.Name, fn.IsGenerator)
	}
	if len(fn.Parameters) != 1 || fn.Parameters[0].Name != "__gen_$_parm__" {
		t.Fatalf("parameters = %v", fn.Parameters)
	}
	if fn.Parameters[0].Span() != gen.Iterable.Span() {
		t.Errorf("parameter span = %v, want %v", fn.Parameters[0].Span(), gen.Iterable.Span())
	}

	want := []NodeKind{KindFor, KindName, KindName, KindIf, KindIfTest, KindName, KindExprStmt, KindYield, KindName}
	if diff := cmp.Diff(want, Kinds(fn.Body)); diff != "" {
		t.Errorf("hidden body mismatch (-want +got):\n%s", diff)
	}
	loop := fn.Body.(*For)
	if ref := loop.Iterable.(*Name); ref.Name != "__gen_$_parm__" {
		t.Errorf("loop iterates over %q", ref.Name)
	}

	for _, c := range Children(gen) {
		if c == Node(fn) {
			t.Error("hidden function listed among children")
		}
	}
}

func TestParseLambdaGenerator(t *testing.T) {
	n := parseExpression(t, "lambda: (yield)").(*Lambda)
	if !n.Function.IsGenerator {
		t.Error("lambda with yield is not a generator")
	}
	if _, ok := n.Function.Body.(*ExprStmt); !ok {
		t.Errorf("body = %T, want *ExprStmt", n.Function.Body)
	}
}
