package parser

import (
	"fmt"
	"io"
)

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

func WithVersion(v LanguageVersion) Option {
	return func(p *Parser) {
		p.version = v
	}
}

func WithErrorSink(sink ErrorSink) Option {
	return func(p *Parser) {
		if sink != nil {
			p.sink.next = sink
		}
	}
}

// WithFutureOptions starts parsing as if the given __future__ features
// had already been imported.
func WithFutureOptions(f FutureOptions) Option {
	return func(p *Parser) {
		p.initialFuture = f
	}
}

// WithIndentationInconsistency sets the severity of mixed tab and space
// indentation.
func WithIndentationInconsistency(s Severity) Option {
	return func(p *Parser) {
		p.tabCheck = s
	}
}

// WithMaxDepth bounds how deeply expressions and statements may nest.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

func WithBinder(b Binder) Option {
	return func(p *Parser) {
		p.binder = b
	}
}

// Binder resolves names on a finished tree. It runs once per parse call.
type Binder interface {
	Bind(version LanguageVersion, ast *AST, sink ErrorSink)
}

const DefaultMaxDepth = 300

// Parser is a recursive-descent parser with one token of lookahead. A
// Parser serves one parse call at a time and is not safe for concurrent use.
type Parser struct {
	file          string
	version       LanguageVersion
	initialFuture FutureOptions
	future        FutureOptions
	sink          *firstErrorSink
	tabCheck      Severity
	maxDepth      int
	binder        Binder

	reader      io.Reader
	text        string
	loaded      bool
	decode      bool
	encoding    Encoding
	loadErrCode ErrorCode
	started     bool
	closed      bool

	tokens    TokenSource
	lines     LineTable
	token     Token
	lookahead Token
	consumed  int
	prevEnd   int
	ctx       parseContext

	allowIncomplete bool
	compound        bool
}

// New creates a parser over a byte stream. The encoding is taken from a
// byte order mark or a coding comment.
func New(r io.Reader, opts ...Option) *Parser {
	p := newParser(opts)
	p.reader = r
	p.decode = true
	return p
}

// NewString creates a parser over already decoded text.
func NewString(src string, opts ...Option) *Parser {
	p := newParser(opts)
	p.text = src
	p.loaded = true
	p.encoding = Encoding{Name: "utf-8"}
	return p
}

func newParser(opts []Option) *Parser {
	p := &Parser{
		version:  DefaultVersion,
		sink:     &firstErrorSink{next: nullSink{}},
		tabCheck: SeverityWarning,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) readAll() error {
	if p.loaded {
		return nil
	}
	data, err := io.ReadAll(p.reader)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	p.text, p.encoding = ResolveEncoding(data, p.sink)
	p.loadErrCode = p.sink.first
	p.loaded = true
	return nil
}

// Reset makes the parser ready for another parse call over the same text.
// Options may adjust the configuration for the next call.
func (p *Parser) Reset(opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
	p.started = false
}

// Close releases the underlying reader. Closing twice is an error.
func (p *Parser) Close() error {
	if p.closed {
		return ErrClosed
	}
	p.closed = true
	if c, ok := p.reader.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// ErrorCode is the code of the first error reported by the last parse call.
func (p *Parser) ErrorCode() ErrorCode {
	return p.sink.first
}

func (p *Parser) Version() LanguageVersion {
	return p.version
}

func (p *Parser) begin() error {
	if p.closed {
		return ErrClosed
	}
	if p.started {
		return ErrAlreadyStarted
	}
	p.started = true
	p.sink.reset()
	if err := p.readAll(); err != nil {
		return err
	}
	p.sink.first = p.loadErrCode

	p.future = p.initialFuture
	p.ctx = parseContext{}
	p.allowIncomplete = false
	p.compound = false
	p.consumed = 0
	p.prevEnd = 0
	tokenizer := NewTokenizer(p.text,
		WithTokenizerVersion(p.version),
		WithTokenizerFuture(p.future),
		WithTokenizerSink(p.sink),
		WithTabCheck(p.tabCheck),
	)
	p.tokens = tokenizer
	p.lines = tokenizer.Lines()
	p.token = Token{Kind: TokenNewLine}
	p.lookahead = p.tokens.NextToken()
	return nil
}

// ParseFile parses a whole module.
func (p *Parser) ParseFile() (*AST, error) {
	if err := p.begin(); err != nil {
		return nil, err
	}
	return p.finishAST(p.parseFileBody()), nil
}

// ParseSingleStatement parses exactly one statement. Anything after it is
// reported as an error.
func (p *Parser) ParseSingleStatement() (*AST, error) {
	if err := p.begin(); err != nil {
		return nil, err
	}
	p.skipBlankLines()
	var body Statement
	if p.check(TokenEOF) {
		body = p.emptySuite()
	} else {
		body = p.parseStmt()
	}
	p.skipBlankLines()
	if !p.check(TokenEOF) {
		p.reportUnexpected(p.peek())
	}
	return p.finishAST(body), nil
}

// ParseTopExpression parses a bare expression and wraps it in an implicit
// return.
func (p *Parser) ParseTopExpression() (*AST, error) {
	if err := p.begin(); err != nil {
		return nil, err
	}
	p.skipBlankLines()
	p.maybeEat(TokenIndent)
	start := p.peek().Span.Start
	expr := p.parseTestListAsExpr()
	ret := &Return{Value: expr}
	p.finish(ret, start)
	p.skipBlankLines()
	for p.maybeEat(TokenDedent) {
	}
	if !p.check(TokenEOF) {
		p.reportUnexpected(p.peek())
	}
	return p.finishAST(ret), nil
}

func (p *Parser) parseFileBody() Statement {
	var stmts []Statement
	p.ctx.fromFutureAllowed = true
	for {
		if p.maybeEat(TokenEOF) {
			break
		}
		if p.maybeEatNewLine() || p.maybeEat(TokenNL) {
			continue
		}
		if p.maybeEat(TokenDedent) {
			// the tokenizer already reported the bad indentation
			continue
		}
		progressed := p.mustProgress()
		stmt := p.parseStmt()
		stmts = append(stmts, stmt)
		if p.ctx.fromFutureAllowed && !keepsFutureAllowed(stmt, len(stmts) == 1) {
			p.ctx.fromFutureAllowed = false
		}
		progressed()
	}
	suite := &Suite{Statements: stmts}
	suite.Loc = Span{0, len(p.text)}
	return suite
}

// keepsFutureAllowed reports whether a top-level statement leaves room for
// further __future__ imports.
func keepsFutureAllowed(s Statement, first bool) bool {
	switch s := s.(type) {
	case *FromImport:
		return s.IsFuture
	case *Suite:
		for _, inner := range s.Statements {
			if !keepsFutureAllowed(inner, false) {
				return false
			}
		}
		return true
	case *ExprStmt:
		if !first {
			return false
		}
		_, ok := docstring([]Statement{s})
		return ok
	}
	return false
}

func (p *Parser) emptySuite() *Suite {
	s := &Suite{}
	s.Loc = Span{p.peek().Span.Start, p.peek().Span.Start}
	return s
}

func (p *Parser) finishAST(body Statement) *AST {
	ast := &AST{
		File:      p.file,
		Text:      p.text,
		Body:      body,
		Version:   p.version,
		Future:    p.future,
		Encoding:  p.encoding,
		Lines:     p.lines,
		ErrorCode: p.sink.first,
	}
	if p.binder != nil {
		p.binder.Bind(p.version, ast, p.sink)
		ast.ErrorCode = p.sink.first
	}
	return ast
}

// Token handling

func (p *Parser) peek() Token {
	return p.lookahead
}

func (p *Parser) next() Token {
	p.token = p.lookahead
	p.lookahead = p.tokens.NextToken()
	p.consumed++
	switch p.token.Kind {
	case TokenNewLine, TokenNL, TokenIndent, TokenDedent, TokenEOF:
	default:
		p.prevEnd = p.token.Span.End
	}
	return p.token
}

func (p *Parser) check(kind TokenKind) bool {
	return p.lookahead.Kind == kind
}

func (p *Parser) maybeEat(kind TokenKind) bool {
	if p.lookahead.Kind == kind {
		p.next()
		return true
	}
	return false
}

// eat consumes a token of the given kind or reports the lookahead.
func (p *Parser) eat(kind TokenKind) bool {
	if p.maybeEat(kind) {
		return true
	}
	p.reportUnexpected(p.lookahead)
	return false
}

// maybeEatName consumes a name token with the given text. It is used for
// words that are keywords only in some versions.
func (p *Parser) maybeEatName(name string) bool {
	if p.lookahead.Kind == TokenName && p.lookahead.Literal == name {
		p.next()
		return true
	}
	return false
}

func (p *Parser) maybeEatAs() bool {
	return p.maybeEat(TokenAs) || p.maybeEatName("as")
}

func (p *Parser) checkAs() bool {
	return p.check(TokenAs) || p.lookahead.Kind == TokenName && p.lookahead.Literal == "as"
}

func (p *Parser) maybeEatNewLine() bool {
	if !p.maybeEat(TokenNewLine) {
		return false
	}
	for p.maybeEat(TokenNL) {
	}
	return true
}

func (p *Parser) skipBlankLines() {
	for p.maybeEat(TokenNewLine) || p.maybeEat(TokenNL) {
	}
}

// eatNewLine ends a simple statement. On anything else the rest of the
// line is reported and skipped.
func (p *Parser) eatNewLine() bool {
	if p.maybeEatNewLine() {
		return true
	}
	if p.check(TokenEOF) {
		return true
	}
	p.reportUnexpected(p.lookahead)
	for !p.check(TokenNewLine) && !p.check(TokenEOF) {
		p.next()
	}
	p.maybeEatNewLine()
	return false
}

// mustProgress returns a function that reports whether any token was
// consumed since it was created, consuming one token if none was.
func (p *Parser) mustProgress() func() bool {
	saved := p.consumed
	return func() bool {
		if p.consumed == saved {
			if !p.check(TokenEOF) {
				p.next()
			}
			return false
		}
		return true
	}
}

// stampable is implemented by every node through Spanned.
type stampable interface {
	setSpan(Span)
}

func (s *Spanned) setSpan(sp Span) {
	s.Loc = sp
}

// finish stamps the span of a node from start to the end of the last
// consumed token, not counting layout tokens. It is the last step of every
// production.
func (p *Parser) finish(n stampable, start int) {
	end := p.prevEnd
	if end < start {
		end = start
	}
	n.setSpan(Span{start, end})
}

func (p *Parser) finishSpan(n stampable, sp Span) {
	n.setSpan(sp)
}

// Diagnostics

func (p *Parser) addError(msg string, start, end int, code ErrorCode) {
	p.sink.Add(msg, p.lines, start, end, code, SeverityFatal)
}

func (p *Parser) errorAt(sp Span, msg string) {
	p.addError(msg, sp.Start, sp.End, SyntaxError)
}

// versionError reports a construct that the selected version does not
// support. The construct is still kept in the tree.
func (p *Parser) versionError(f Feature, sp Span) {
	p.addError(f.requirement(), sp.Start, sp.End, VersionError)
}

// requireFeature reports a VersionError unless the feature is enabled.
func (p *Parser) requireFeature(f Feature, sp Span) bool {
	if p.feature(f) {
		return true
	}
	p.versionError(f, sp)
	return false
}

func (p *Parser) feature(f Feature) bool {
	return f.Enabled(p.version, p.future)
}

func tokenImage(t Token) string {
	switch t.Kind {
	case TokenNewLine, TokenNL:
		return "<newline>"
	case TokenIndent:
		return "<indent>"
	case TokenDedent:
		return "<dedent>"
	case TokenEOF:
		return "<eof>"
	}
	if t.Literal != "" {
		return t.Literal
	}
	return t.Kind.String()
}

// reportUnexpected reports t as a syntax error. Running out of input marks
// the error as incomplete so interactive callers can ask for more.
func (p *Parser) reportUnexpected(t Token) {
	code := SyntaxError
	msg := fmt.Sprintf("unexpected token '%s'", tokenImage(t))
	switch t.Kind {
	case TokenError:
		// already reported by the tokenizer
		return
	case TokenEOF:
		code |= IncompleteStatement
		msg = "unexpected EOF while parsing"
	case TokenIndent:
		code = IndentationError
		msg = "unexpected indent"
	case TokenDedent, TokenNL, TokenNewLine:
		if p.allowIncomplete && p.tokens.AtEOF() {
			code |= IncompleteStatement
		}
	}
	p.addError(msg, t.Span.Start, t.Span.End, code)
}

// enter tracks nesting depth. It reports once and returns false when the
// limit is exceeded; callers must still call leave.
func (p *Parser) enter() bool {
	p.ctx.depth++
	if p.ctx.depth <= p.maxDepth {
		return true
	}
	if !p.ctx.depthReported {
		p.ctx.depthReported = true
		t := p.peek()
		p.addError("too many nested expressions", t.Span.Start, t.Span.End, SyntaxError)
	}
	return false
}

func (p *Parser) leave() {
	p.ctx.depth--
}

// errorExpr builds an error node over the lookahead token and consumes it
// unless it ends a line.
func (p *Parser) errorExpr() Expression {
	t := p.peek()
	e := &ErrorExpr{}
	switch t.Kind {
	case TokenEOF, TokenNewLine, TokenNL, TokenIndent, TokenDedent:
		e.Loc = Span{t.Span.Start, t.Span.Start}
	default:
		p.next()
		p.finish(e, t.Span.Start)
	}
	return e
}

func (p *Parser) mangle(name string) string {
	return p.ctx.mangle(name)
}
