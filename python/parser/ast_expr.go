package parser

type Name struct {
	Spanned
	Name string
}

// Constant holds a literal value: nil for None, bool, int64, *big.Int,
// float64, complex128, string, Bytes or Ellipsis.
type Constant struct {
	Spanned
	Value any
}

type BinaryOp struct {
	Spanned
	Op    Operator
	Left  Expression
	Right Expression
}

type UnaryOp struct {
	Spanned
	Op      Operator
	Operand Expression
}

type BoolOp struct {
	Spanned
	Op    Operator
	Left  Expression
	Right Expression
}

// Compare is a comparison chain: Left Ops[0] Comparators[0] Ops[1] ...
type Compare struct {
	Spanned
	Left        Expression
	Ops         []Operator
	Comparators []Expression
}

type Call struct {
	Spanned
	Target Expression
	Args   []*Arg
}

// Arg is a call argument. Name is empty for a positional argument, "*" for
// an unpacked sequence and "**" for an unpacked mapping.
type Arg struct {
	Spanned
	Name  string
	Value Expression
}

type Index struct {
	Spanned
	Target Expression
	Index  Expression
}

type Slice struct {
	Spanned
	Lower        Expression
	Upper        Expression
	Step         Expression
	StepProvided bool
}

type Member struct {
	Spanned
	Target Expression
	Name   string
}

type Lambda struct {
	Spanned
	Function *FunctionDef
}

type Tuple struct {
	Spanned
	Items         []Expression
	Parenthesized bool
}

type List struct {
	Spanned
	Items []Expression
}

type Set struct {
	Spanned
	Items []Expression
}

type Dict struct {
	Spanned
	Items []*DictItem
}

type DictItem struct {
	Spanned
	Key   Expression
	Value Expression
}

type ListComp struct {
	Spanned
	Item    Expression
	Clauses []ComprehensionClause
}

type SetComp struct {
	Spanned
	Item    Expression
	Clauses []ComprehensionClause
}

type DictComp struct {
	Spanned
	Key     Expression
	Value   Expression
	Clauses []ComprehensionClause
}

// GeneratorExp keeps the clause chain as written and a hidden generator
// function equivalent to it. The function takes a single parameter bound to
// Iterable, the iterable of the outermost clause, which is evaluated
// eagerly where the expression appears.
type GeneratorExp struct {
	Spanned
	Item     Expression
	Clauses  []ComprehensionClause
	Iterable Expression
	Function *FunctionDef
}

type ComprehensionFor struct {
	Spanned
	Target   Expression
	Iterable Expression
}

type ComprehensionIf struct {
	Spanned
	Test Expression
}

type Conditional struct {
	Spanned
	Test      Expression
	TrueExpr  Expression
	FalseExpr Expression
}

type Starred struct {
	Spanned
	Value Expression
}

type Yield struct {
	Spanned
	Value Expression
}

type Paren struct {
	Spanned
	Inner Expression
}

type BackQuote struct {
	Spanned
	Inner Expression
}

// ErrorExpr stands in for an expression that could not be parsed.
type ErrorExpr struct {
	Spanned
}

func (*Name) Kind() NodeKind             { return KindName }
func (*Constant) Kind() NodeKind         { return KindConstant }
func (*BinaryOp) Kind() NodeKind         { return KindBinaryOp }
func (*UnaryOp) Kind() NodeKind          { return KindUnaryOp }
func (*BoolOp) Kind() NodeKind           { return KindBoolOp }
func (*Compare) Kind() NodeKind          { return KindCompare }
func (*Call) Kind() NodeKind             { return KindCall }
func (*Arg) Kind() NodeKind              { return KindArg }
func (*Index) Kind() NodeKind            { return KindIndex }
func (*Slice) Kind() NodeKind            { return KindSlice }
func (*Member) Kind() NodeKind           { return KindMember }
func (*Lambda) Kind() NodeKind           { return KindLambda }
func (*Tuple) Kind() NodeKind            { return KindTuple }
func (*List) Kind() NodeKind             { return KindList }
func (*Set) Kind() NodeKind              { return KindSet }
func (*Dict) Kind() NodeKind             { return KindDict }
func (*DictItem) Kind() NodeKind         { return KindDictItem }
func (*ListComp) Kind() NodeKind         { return KindListComp }
func (*SetComp) Kind() NodeKind          { return KindSetComp }
func (*DictComp) Kind() NodeKind         { return KindDictComp }
func (*GeneratorExp) Kind() NodeKind     { return KindGeneratorExp }
func (*ComprehensionFor) Kind() NodeKind { return KindComprehensionFor }
func (*ComprehensionIf) Kind() NodeKind  { return KindComprehensionIf }
func (*Conditional) Kind() NodeKind      { return KindConditional }
func (*Starred) Kind() NodeKind          { return KindStarred }
func (*Yield) Kind() NodeKind            { return KindYield }
func (*Paren) Kind() NodeKind            { return KindParen }
func (*BackQuote) Kind() NodeKind        { return KindBackQuote }
func (*ErrorExpr) Kind() NodeKind        { return KindErrorExpr }

func (*Name) exprNode()         {}
func (*Constant) exprNode()     {}
func (*BinaryOp) exprNode()     {}
func (*UnaryOp) exprNode()      {}
func (*BoolOp) exprNode()       {}
func (*Compare) exprNode()      {}
func (*Call) exprNode()         {}
func (*Index) exprNode()        {}
func (*Slice) exprNode()        {}
func (*Member) exprNode()       {}
func (*Lambda) exprNode()       {}
func (*Tuple) exprNode()        {}
func (*List) exprNode()         {}
func (*Set) exprNode()          {}
func (*Dict) exprNode()         {}
func (*ListComp) exprNode()     {}
func (*SetComp) exprNode()      {}
func (*DictComp) exprNode()     {}
func (*GeneratorExp) exprNode() {}
func (*Conditional) exprNode()  {}
func (*Starred) exprNode()      {}
func (*Yield) exprNode()        {}
func (*Paren) exprNode()        {}
func (*BackQuote) exprNode()    {}
func (*ErrorExpr) exprNode()    {}

func (*ComprehensionFor) clauseNode() {}
func (*ComprehensionIf) clauseNode()  {}
