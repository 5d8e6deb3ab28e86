package parser

type Suite struct {
	Spanned
	Statements []Statement
}

type If struct {
	Spanned
	Tests []*IfTest
	Else  Statement
}

// IfTest is one "if" or "elif" arm.
type IfTest struct {
	Spanned
	Test   Expression
	Body   Statement
	Header int
}

type While struct {
	Spanned
	Test   Expression
	Body   Statement
	Else   Statement
	Header int
}

type For struct {
	Spanned
	Target   Expression
	Iterable Expression
	Body     Statement
	Else     Statement
	Header   int
}

type Try struct {
	Spanned
	Body     Statement
	Handlers []*ExceptHandler
	Else     Statement
	Finally  Statement
	Header   int
}

type ExceptHandler struct {
	Spanned
	Test   Expression
	Target Expression
	Body   Statement
	Header int
}

type With struct {
	Spanned
	Items  []*WithItem
	Body   Statement
	Header int
}

type WithItem struct {
	Spanned
	Context Expression
	Target  Expression
}

type FunctionDef struct {
	Spanned
	Name        string
	NameSpan    Span
	Parameters  []*Parameter
	Returns     Expression
	Body        Statement
	Decorators  []Expression
	IsGenerator bool
	IsLambda    bool
	// Header is the offset just past the closing parenthesis of the
	// parameter list.
	Header         int
	DecoratorStart int
}

// Span covers the decorators too, once they are attached.
func (f *FunctionDef) Span() Span {
	if len(f.Decorators) > 0 {
		return Span{Start: f.DecoratorStart, End: f.Loc.End}
	}
	return f.Loc
}

func (f *FunctionDef) attachDecorators(decorators []Expression, at int) {
	f.Decorators = decorators
	f.DecoratorStart = at
}

type ParameterKind int

const (
	ParameterNormal ParameterKind = iota
	ParameterList
	ParameterDict
	ParameterKeywordOnly
	ParameterSublist
)

var parameterKindNames = map[ParameterKind]string{
	ParameterNormal:      "normal",
	ParameterList:        "list",
	ParameterDict:        "dict",
	ParameterKeywordOnly: "keyword-only",
	ParameterSublist:     "sublist",
}

func (k ParameterKind) String() string {
	return parameterKindNames[k]
}

type Parameter struct {
	Spanned
	Name       string
	ParamKind  ParameterKind
	Default    Expression
	Annotation Expression
	// Sublist holds the unpacking pattern of a 2.x tuple parameter.
	Sublist Expression
}

type ClassDef struct {
	Spanned
	Name           string
	NameSpan       Span
	Bases          []Expression
	Keywords       []*Arg
	Body           Statement
	Decorators     []Expression
	Header         int
	DecoratorStart int
}

func (c *ClassDef) Span() Span {
	if len(c.Decorators) > 0 {
		return Span{Start: c.DecoratorStart, End: c.Loc.End}
	}
	return c.Loc
}

func (c *ClassDef) attachDecorators(decorators []Expression, at int) {
	c.Decorators = decorators
	c.DecoratorStart = at
}

// DottedName is a possibly relative module path such as "..pkg.mod".
type DottedName struct {
	Spanned
	Names []string
	Dots  int
}

func (d *DottedName) String() string {
	s := ""
	for i := 0; i < d.Dots; i++ {
		s += "."
	}
	for i, n := range d.Names {
		if i > 0 {
			s += "."
		}
		s += n
	}
	return s
}

type Import struct {
	Spanned
	Modules []*DottedName
	// AsNames is parallel to Modules; an empty string means no alias.
	AsNames       []string
	ForceAbsolute bool
}

type FromImport struct {
	Spanned
	Module        *DottedName
	Names         []string
	AsNames       []string
	IsStar        bool
	IsFuture      bool
	ForceAbsolute bool
}

type Assign struct {
	Spanned
	Targets []Expression
	Value   Expression
}

type AugAssign struct {
	Spanned
	Op     Operator
	Target Expression
	Value  Expression
}

type Return struct {
	Spanned
	Value Expression
}

type ExprStmt struct {
	Spanned
	Expr Expression
}

type Raise struct {
	Spanned
	Type      Expression
	Value     Expression
	Traceback Expression
	Cause     Expression
}

type Assert struct {
	Spanned
	Test    Expression
	Message Expression
}

type Global struct {
	Spanned
	Names []string
}

type Nonlocal struct {
	Spanned
	Names []string
}

type Del struct {
	Spanned
	Targets []Expression
}

type Pass struct {
	Spanned
}

type Break struct {
	Spanned
}

type Continue struct {
	Spanned
}

type Print struct {
	Spanned
	Dest          Expression
	Values        []Expression
	TrailingComma bool
}

type Exec struct {
	Spanned
	Code    Expression
	Globals Expression
	Locals  Expression
}

// ErrorStmt stands in for a statement that could not be parsed.
type ErrorStmt struct {
	Spanned
	Partial Expression
}

func (*Suite) Kind() NodeKind         { return KindSuite }
func (*If) Kind() NodeKind            { return KindIf }
func (*IfTest) Kind() NodeKind        { return KindIfTest }
func (*While) Kind() NodeKind         { return KindWhile }
func (*For) Kind() NodeKind           { return KindFor }
func (*Try) Kind() NodeKind           { return KindTry }
func (*ExceptHandler) Kind() NodeKind { return KindExceptHandler }
func (*With) Kind() NodeKind          { return KindWith }
func (*WithItem) Kind() NodeKind      { return KindWithItem }
func (*FunctionDef) Kind() NodeKind   { return KindFunctionDef }
func (*Parameter) Kind() NodeKind     { return KindParameter }
func (*ClassDef) Kind() NodeKind      { return KindClassDef }
func (*DottedName) Kind() NodeKind    { return KindDottedName }
func (*Import) Kind() NodeKind        { return KindImport }
func (*FromImport) Kind() NodeKind    { return KindFromImport }
func (*Assign) Kind() NodeKind        { return KindAssign }
func (*AugAssign) Kind() NodeKind     { return KindAugAssign }
func (*Return) Kind() NodeKind        { return KindReturn }
func (*ExprStmt) Kind() NodeKind      { return KindExprStmt }
func (*Raise) Kind() NodeKind         { return KindRaise }
func (*Assert) Kind() NodeKind        { return KindAssert }
func (*Global) Kind() NodeKind        { return KindGlobal }
func (*Nonlocal) Kind() NodeKind      { return KindNonlocal }
func (*Del) Kind() NodeKind           { return KindDel }
func (*Pass) Kind() NodeKind          { return KindPass }
func (*Break) Kind() NodeKind         { return KindBreak }
func (*Continue) Kind() NodeKind      { return KindContinue }
func (*Print) Kind() NodeKind         { return KindPrint }
func (*Exec) Kind() NodeKind          { return KindExec }
func (*ErrorStmt) Kind() NodeKind     { return KindErrorStmt }

func (*Suite) stmtNode()       {}
func (*If) stmtNode()          {}
func (*While) stmtNode()       {}
func (*For) stmtNode()         {}
func (*Try) stmtNode()         {}
func (*With) stmtNode()        {}
func (*FunctionDef) stmtNode() {}
func (*ClassDef) stmtNode()    {}
func (*Import) stmtNode()      {}
func (*FromImport) stmtNode()  {}
func (*Assign) stmtNode()      {}
func (*AugAssign) stmtNode()   {}
func (*Return) stmtNode()      {}
func (*ExprStmt) stmtNode()    {}
func (*Raise) stmtNode()       {}
func (*Assert) stmtNode()      {}
func (*Global) stmtNode()      {}
func (*Nonlocal) stmtNode()    {}
func (*Del) stmtNode()         {}
func (*Pass) stmtNode()        {}
func (*Break) stmtNode()       {}
func (*Continue) stmtNode()    {}
func (*Print) stmtNode()       {}
func (*Exec) stmtNode()        {}
func (*ErrorStmt) stmtNode()   {}
