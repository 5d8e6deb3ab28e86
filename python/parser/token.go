package parser

import "sort"

// Position is a resolved location inside a source file. Line and Column are
// 1-based; Column counts bytes.
type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

// Span is a half-open byte range [Start, End) into the decoded source text.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// LineTable holds the offset at which every line after the first starts.
type LineTable []int

func (t LineTable) Position(offset int) Position {
	line := sort.Search(len(t), func(i int) bool { return t[i] > offset })
	start := 0
	if line > 0 {
		start = t[line-1]
	}
	return Position{Offset: offset, Line: line + 1, Column: offset - start + 1}
}

// LineStart returns the offset of the first byte of the 1-based line.
func (t LineTable) LineStart(line int) int {
	if line <= 1 || len(t) == 0 {
		return 0
	}
	if line-2 >= len(t) {
		return t[len(t)-1]
	}
	return t[line-2]
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenNewLine
	TokenNL
	TokenIndent
	TokenDedent

	// Literals
	TokenName
	TokenNumber
	TokenString

	// Keywords
	TokenAnd
	TokenAs
	TokenAssert
	TokenBreak
	TokenClass
	TokenContinue
	TokenDef
	TokenDel
	TokenElif
	TokenElse
	TokenExcept
	TokenExec
	TokenFalse
	TokenFinally
	TokenFor
	TokenFrom
	TokenGlobal
	TokenIf
	TokenImport
	TokenIn
	TokenIs
	TokenLambda
	TokenNone
	TokenNonlocal
	TokenNot
	TokenOr
	TokenPass
	TokenPrint
	TokenRaise
	TokenReturn
	TokenTrue
	TokenTry
	TokenWhile
	TokenWith
	TokenYield

	// Operators and punctuation
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenLBrace
	TokenRBrace
	TokenComma
	TokenColon
	TokenDot
	TokenEllipsis
	TokenSemicolon
	TokenAt
	TokenArrow
	TokenBackQuote
	TokenAssign

	TokenPlus
	TokenMinus
	TokenStar
	TokenPower
	TokenSlash
	TokenFloorDivide
	TokenPercent
	TokenLeftShift
	TokenRightShift
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenTilde

	TokenLess
	TokenGreater
	TokenLessEqual
	TokenGreaterEqual
	TokenEqual
	TokenNotEqual
	TokenLessGreater

	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenPowerAssign
	TokenSlashAssign
	TokenFloorDivideAssign
	TokenPercentAssign
	TokenLeftShiftAssign
	TokenRightShiftAssign
	TokenBitAndAssign
	TokenBitOrAssign
	TokenBitXorAssign
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:               "EOF",
	TokenError:             "Error",
	TokenNewLine:           "NewLine",
	TokenNL:                "NL",
	TokenIndent:            "Indent",
	TokenDedent:            "Dedent",
	TokenName:              "Name",
	TokenNumber:            "Number",
	TokenString:            "String",
	TokenAnd:               "and",
	TokenAs:                "as",
	TokenAssert:            "assert",
	TokenBreak:             "break",
	TokenClass:             "class",
	TokenContinue:          "continue",
	TokenDef:               "def",
	TokenDel:               "del",
	TokenElif:              "elif",
	TokenElse:              "else",
	TokenExcept:            "except",
	TokenExec:              "exec",
	TokenFalse:             "False",
	TokenFinally:           "finally",
	TokenFor:               "for",
	TokenFrom:              "from",
	TokenGlobal:            "global",
	TokenIf:                "if",
	TokenImport:            "import",
	TokenIn:                "in",
	TokenIs:                "is",
	TokenLambda:            "lambda",
	TokenNone:              "None",
	TokenNonlocal:          "nonlocal",
	TokenNot:               "not",
	TokenOr:                "or",
	TokenPass:              "pass",
	TokenPrint:             "print",
	TokenRaise:             "raise",
	TokenReturn:            "return",
	TokenTrue:              "True",
	TokenTry:               "try",
	TokenWhile:             "while",
	TokenWith:              "with",
	TokenYield:             "yield",
	TokenLParen:            "(",
	TokenRParen:            ")",
	TokenLBracket:          "[",
	TokenRBracket:          "]",
	TokenLBrace:            "{",
	TokenRBrace:            "}",
	TokenComma:             ",",
	TokenColon:             ":",
	TokenDot:               ".",
	TokenEllipsis:          "...",
	TokenSemicolon:         ";",
	TokenAt:                "@",
	TokenArrow:             "->",
	TokenBackQuote:         "`",
	TokenAssign:            "=",
	TokenPlus:              "+",
	TokenMinus:             "-",
	TokenStar:              "*",
	TokenPower:             "**",
	TokenSlash:             "/",
	TokenFloorDivide:       "//",
	TokenPercent:           "%",
	TokenLeftShift:         "<<",
	TokenRightShift:        ">>",
	TokenBitAnd:            "&",
	TokenBitOr:             "|",
	TokenBitXor:            "^",
	TokenTilde:             "~",
	TokenLess:              "<",
	TokenGreater:           ">",
	TokenLessEqual:         "<=",
	TokenGreaterEqual:      ">=",
	TokenEqual:             "==",
	TokenNotEqual:          "!=",
	TokenLessGreater:       "<>",
	TokenPlusAssign:        "+=",
	TokenMinusAssign:       "-=",
	TokenStarAssign:        "*=",
	TokenPowerAssign:       "**=",
	TokenSlashAssign:       "/=",
	TokenFloorDivideAssign: "//=",
	TokenPercentAssign:     "%=",
	TokenLeftShiftAssign:   "<<=",
	TokenRightShiftAssign:  ">>=",
	TokenBitAndAssign:      "&=",
	TokenBitOrAssign:       "|=",
	TokenBitXorAssign:      "^=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// keywords lists every word the tokenizer may turn into a keyword. Words
// that depend on the language version or on __future__ imports are
// filtered by Tokenizer.keyword.
var keywords = map[string]TokenKind{
	"and":      TokenAnd,
	"as":       TokenAs,
	"assert":   TokenAssert,
	"break":    TokenBreak,
	"class":    TokenClass,
	"continue": TokenContinue,
	"def":      TokenDef,
	"del":      TokenDel,
	"elif":     TokenElif,
	"else":     TokenElse,
	"except":   TokenExcept,
	"exec":     TokenExec,
	"False":    TokenFalse,
	"finally":  TokenFinally,
	"for":      TokenFor,
	"from":     TokenFrom,
	"global":   TokenGlobal,
	"if":       TokenIf,
	"import":   TokenImport,
	"in":       TokenIn,
	"is":       TokenIs,
	"lambda":   TokenLambda,
	"None":     TokenNone,
	"nonlocal": TokenNonlocal,
	"not":      TokenNot,
	"or":       TokenOr,
	"pass":     TokenPass,
	"print":    TokenPrint,
	"raise":    TokenRaise,
	"return":   TokenReturn,
	"True":     TokenTrue,
	"try":      TokenTry,
	"while":    TokenWhile,
	"with":     TokenWith,
	"yield":    TokenYield,
}

func (k TokenKind) IsKeyword() bool {
	return k >= TokenAnd && k <= TokenYield
}

// IsAugmentedAssign reports whether k is one of the in-place operators.
func (k TokenKind) IsAugmentedAssign() bool {
	return k >= TokenPlusAssign && k <= TokenBitXorAssign
}

// Precedence returns the binding strength of a binary arithmetic or bitwise
// operator, or 0 for every other token. Higher binds tighter.
func (k TokenKind) Precedence() int {
	switch k {
	case TokenBitOr:
		return 1
	case TokenBitXor:
		return 2
	case TokenBitAnd:
		return 3
	case TokenLeftShift, TokenRightShift:
		return 4
	case TokenPlus, TokenMinus:
		return 5
	case TokenStar, TokenSlash, TokenFloorDivide, TokenPercent:
		return 6
	}
	return 0
}

// Token is a single lexical unit. Literal holds the raw source text; Value
// holds the decoded value of Number and String tokens.
type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
	Value   any
}

// Operator converts an operator token into the AST operator it denotes.
func (k TokenKind) Operator() Operator {
	switch k {
	case TokenPlus, TokenPlusAssign:
		return OpAdd
	case TokenMinus, TokenMinusAssign:
		return OpSub
	case TokenStar, TokenStarAssign:
		return OpMul
	case TokenPower, TokenPowerAssign:
		return OpPow
	case TokenSlash, TokenSlashAssign:
		return OpDiv
	case TokenFloorDivide, TokenFloorDivideAssign:
		return OpFloorDiv
	case TokenPercent, TokenPercentAssign:
		return OpMod
	case TokenLeftShift, TokenLeftShiftAssign:
		return OpLShift
	case TokenRightShift, TokenRightShiftAssign:
		return OpRShift
	case TokenBitAnd, TokenBitAndAssign:
		return OpBitAnd
	case TokenBitOr, TokenBitOrAssign:
		return OpBitOr
	case TokenBitXor, TokenBitXorAssign:
		return OpBitXor
	case TokenTilde:
		return OpInvert
	case TokenLess:
		return OpLt
	case TokenGreater:
		return OpGt
	case TokenLessEqual:
		return OpLtE
	case TokenGreaterEqual:
		return OpGtE
	case TokenEqual:
		return OpEq
	case TokenNotEqual, TokenLessGreater:
		return OpNotEq
	case TokenIn:
		return OpIn
	case TokenIs:
		return OpIs
	case TokenAnd:
		return OpAnd
	case TokenOr:
		return OpOr
	case TokenNot:
		return OpNot
	}
	return OpInvalid
}
