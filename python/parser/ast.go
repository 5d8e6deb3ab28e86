package parser

// Node is implemented by every AST node. The set of implementations is
// closed; switch on the concrete type or on Kind.
type Node interface {
	Span() Span
	Kind() NodeKind
}

type Statement interface {
	Node
	stmtNode()
}

type Expression interface {
	Node
	exprNode()
}

// ComprehensionClause is a ComprehensionFor or a ComprehensionIf.
type ComprehensionClause interface {
	Node
	clauseNode()
}

// Spanned carries the source range of a node. It is stamped once, when the
// production that builds the node finishes.
type Spanned struct {
	Loc Span
}

func (s *Spanned) Span() Span {
	return s.Loc
}

type NodeKind int

const (
	KindErrorStmt NodeKind = iota
	KindErrorExpr

	// Statements
	KindSuite
	KindIf
	KindIfTest
	KindWhile
	KindFor
	KindTry
	KindExceptHandler
	KindWith
	KindWithItem
	KindFunctionDef
	KindClassDef
	KindParameter
	KindImport
	KindFromImport
	KindDottedName
	KindAssign
	KindAugAssign
	KindReturn
	KindExprStmt
	KindRaise
	KindAssert
	KindGlobal
	KindNonlocal
	KindDel
	KindPass
	KindBreak
	KindContinue
	KindPrint
	KindExec

	// Expressions
	KindName
	KindConstant
	KindBinaryOp
	KindUnaryOp
	KindBoolOp
	KindCompare
	KindCall
	KindArg
	KindIndex
	KindSlice
	KindMember
	KindLambda
	KindTuple
	KindList
	KindSet
	KindDict
	KindDictItem
	KindListComp
	KindSetComp
	KindDictComp
	KindGeneratorExp
	KindComprehensionFor
	KindComprehensionIf
	KindConditional
	KindStarred
	KindYield
	KindParen
	KindBackQuote
)

var nodeKindNames = map[NodeKind]string{
	KindErrorStmt:        "ErrorStmt",
	KindErrorExpr:        "ErrorExpr",
	KindSuite:            "Suite",
	KindIf:               "If",
	KindIfTest:           "IfTest",
	KindWhile:            "While",
	KindFor:              "For",
	KindTry:              "Try",
	KindExceptHandler:    "ExceptHandler",
	KindWith:             "With",
	KindWithItem:         "WithItem",
	KindFunctionDef:      "FunctionDef",
	KindClassDef:         "ClassDef",
	KindParameter:        "Parameter",
	KindImport:           "Import",
	KindFromImport:       "FromImport",
	KindDottedName:       "DottedName",
	KindAssign:           "Assign",
	KindAugAssign:        "AugAssign",
	KindReturn:           "Return",
	KindExprStmt:         "ExprStmt",
	KindRaise:            "Raise",
	KindAssert:           "Assert",
	KindGlobal:           "Global",
	KindNonlocal:         "Nonlocal",
	KindDel:              "Del",
	KindPass:             "Pass",
	KindBreak:            "Break",
	KindContinue:         "Continue",
	KindPrint:            "Print",
	KindExec:             "Exec",
	KindName:             "Name",
	KindConstant:         "Constant",
	KindBinaryOp:         "BinaryOp",
	KindUnaryOp:          "UnaryOp",
	KindBoolOp:           "BoolOp",
	KindCompare:          "Compare",
	KindCall:             "Call",
	KindArg:              "Arg",
	KindIndex:            "Index",
	KindSlice:            "Slice",
	KindMember:           "Member",
	KindLambda:           "Lambda",
	KindTuple:            "Tuple",
	KindList:             "List",
	KindSet:              "Set",
	KindDict:             "Dict",
	KindDictItem:         "DictItem",
	KindListComp:         "ListComp",
	KindSetComp:          "SetComp",
	KindDictComp:         "DictComp",
	KindGeneratorExp:     "GeneratorExp",
	KindComprehensionFor: "ComprehensionFor",
	KindComprehensionIf:  "ComprehensionIf",
	KindConditional:      "Conditional",
	KindStarred:          "Starred",
	KindYield:            "Yield",
	KindParen:            "Paren",
	KindBackQuote:        "BackQuote",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Operator int

const (
	OpInvalid Operator = iota
	OpAdd
	OpSub
	OpMul
	OpPow
	OpDiv
	OpFloorDiv
	OpMod
	OpLShift
	OpRShift
	OpBitAnd
	OpBitOr
	OpBitXor
	OpLt
	OpGt
	OpLtE
	OpGtE
	OpEq
	OpNotEq
	OpIn
	OpNotIn
	OpIs
	OpIsNot
	OpAnd
	OpOr
	OpNot
	OpPos
	OpNeg
	OpInvert
	// OpTrueDiv is "/" under true division.
	OpTrueDiv
)

var operatorNames = map[Operator]string{
	OpInvalid:  "?",
	OpAdd:      "+",
	OpSub:      "-",
	OpMul:      "*",
	OpPow:      "**",
	OpDiv:      "/",
	OpFloorDiv: "//",
	OpMod:      "%",
	OpLShift:   "<<",
	OpRShift:   ">>",
	OpBitAnd:   "&",
	OpBitOr:    "|",
	OpBitXor:   "^",
	OpLt:       "<",
	OpGt:       ">",
	OpLtE:      "<=",
	OpGtE:      ">=",
	OpEq:       "==",
	OpNotEq:    "!=",
	OpIn:       "in",
	OpNotIn:    "not in",
	OpIs:       "is",
	OpIsNot:    "is not",
	OpAnd:      "and",
	OpOr:       "or",
	OpNot:      "not",
	OpPos:      "+",
	OpNeg:      "-",
	OpInvert:   "~",
	OpTrueDiv:  "/",
}

func (o Operator) String() string {
	if name, ok := operatorNames[o]; ok {
		return name
	}
	return "?"
}

// AST is the result of one parse call.
type AST struct {
	File      string
	Text      string
	Body      Statement
	Version   LanguageVersion
	Future    FutureOptions
	Encoding  Encoding
	Lines     LineTable
	ErrorCode ErrorCode
}

// Source returns the text covered by a span.
func (a *AST) Source(s Span) string {
	if s.Start < 0 || s.End > len(a.Text) || s.Start > s.End {
		return ""
	}
	return a.Text[s.Start:s.End]
}

func (a *AST) Position(offset int) Position {
	pos := a.Lines.Position(offset)
	pos.File = a.File
	return pos
}

// Statements returns the top-level statements of the body.
func (a *AST) Statements() []Statement {
	switch body := a.Body.(type) {
	case *Suite:
		return body.Statements
	case nil:
		return nil
	default:
		return []Statement{body}
	}
}

// Docstring returns the module docstring, if the first statement is a
// string constant.
func (a *AST) Docstring() (string, bool) {
	return docstring(a.Statements())
}

func docstring(stmts []Statement) (string, bool) {
	if len(stmts) == 0 {
		return "", false
	}
	es, ok := stmts[0].(*ExprStmt)
	if !ok {
		return "", false
	}
	c, ok := es.Expr.(*Constant)
	if !ok {
		return "", false
	}
	switch v := c.Value.(type) {
	case string:
		return v, true
	case Bytes:
		return string(v), true
	}
	return "", false
}
