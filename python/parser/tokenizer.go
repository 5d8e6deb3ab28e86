package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenSource is what the parser pulls tokens from.
type TokenSource interface {
	NextToken() Token
	// GroupingLevel is the current depth of open brackets of any kind.
	GroupingLevel() int
	// EndsInsideOpenConstruct reports whether the input ended inside an
	// open bracket, an unterminated triple-quoted string or a line
	// continuation. Only meaningful after EOF was returned.
	EndsInsideOpenConstruct() bool
	// AtEOF reports whether the end of the input has been reached.
	AtEOF() bool
	Lines() LineTable
	// SetFuture updates keyword recognition after a __future__ import.
	SetFuture(FutureOptions)
}

type indentLevel struct {
	col    int // tabs advance to the next multiple of 8
	altcol int // tabs count as a single column
}

// Tokenizer turns decoded source text into tokens, synthesizing NewLine,
// NL, Indent and Dedent from the physical layout.
type Tokenizer struct {
	src      string
	pos      int
	version  LanguageVersion
	future   FutureOptions
	sink     ErrorSink
	tabCheck Severity
	lines    LineTable

	indents        []indentLevel
	pendingDedents int
	parens         int
	brackets       int
	braces         int

	atLineStart  bool
	lineContent  bool
	sawNewLine   bool
	prev         TokenKind
	continuation bool
	openString   bool
	reachedEOF   bool
}

type TokenizerOption func(*Tokenizer)

func WithTokenizerVersion(v LanguageVersion) TokenizerOption {
	return func(t *Tokenizer) {
		t.version = v
	}
}

func WithTokenizerFuture(f FutureOptions) TokenizerOption {
	return func(t *Tokenizer) {
		t.future = f
	}
}

func WithTokenizerSink(sink ErrorSink) TokenizerOption {
	return func(t *Tokenizer) {
		if sink != nil {
			t.sink = sink
		}
	}
}

// WithTabCheck sets the severity used for inconsistent tab/space
// indentation. SeverityIgnore turns the check off.
func WithTabCheck(s Severity) TokenizerOption {
	return func(t *Tokenizer) {
		t.tabCheck = s
	}
}

func NewTokenizer(src string, opts ...TokenizerOption) *Tokenizer {
	t := &Tokenizer{
		src:         src,
		version:     DefaultVersion,
		sink:        nullSink{},
		tabCheck:    SeverityWarning,
		lines:       buildLineTable(src),
		indents:     []indentLevel{{}},
		atLineStart: true,
		prev:        TokenNewLine,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func buildLineTable(src string) LineTable {
	var lines LineTable
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\n':
			lines = append(lines, i+1)
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
			lines = append(lines, i+1)
		}
	}
	return lines
}

func (t *Tokenizer) Lines() LineTable {
	return t.lines
}

func (t *Tokenizer) GroupingLevel() int {
	return t.parens + t.brackets + t.braces
}

func (t *Tokenizer) EndsInsideOpenConstruct() bool {
	return t.reachedEOF && (t.GroupingLevel() > 0 || t.openString || t.continuation)
}

func (t *Tokenizer) AtEOF() bool {
	return t.reachedEOF
}

func (t *Tokenizer) SetFuture(f FutureOptions) {
	t.future = f
}

// All drains the tokenizer, including the final EOF token.
func (t *Tokenizer) All() []Token {
	var tokens []Token
	for {
		tok := t.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

func (t *Tokenizer) NextToken() Token {
	tok := t.next()
	t.prev = tok.Kind
	switch tok.Kind {
	case TokenNewLine, TokenNL, TokenIndent, TokenDedent, TokenEOF:
	default:
		t.lineContent = true
	}
	return tok
}

func (t *Tokenizer) report(msg string, start, end int, code ErrorCode, sev Severity) {
	t.sink.Add(msg, t.lines, start, end, code, sev)
}

func (t *Tokenizer) next() Token {
	if t.pendingDedents > 0 {
		t.pendingDedents--
		return Token{Kind: TokenDedent, Span: Span{t.pos, t.pos}}
	}
	if t.atLineStart && t.GroupingLevel() == 0 {
		if tok, ok := t.lineStart(); ok {
			return tok
		}
	}

	for {
		t.skipSpace()
		if t.pos >= len(t.src) {
			return t.eof()
		}
		c := t.src[t.pos]
		switch {
		case c == '#':
			t.skipComment()
			continue
		case c == '\\':
			start := t.pos
			t.pos++
			if n := t.newlineWidth(); n > 0 {
				t.pos += n
				if t.pos >= len(t.src) {
					t.continuation = true
				}
				continue
			}
			if t.pos >= len(t.src) {
				t.continuation = true
				continue
			}
			t.report("unexpected character after line continuation character", start, t.pos, SyntaxError, SeverityFatal)
			return Token{Kind: TokenError, Span: Span{start, t.pos}, Literal: "\\"}
		case c == '\n' || c == '\r':
			start := t.pos
			t.pos += t.newlineWidth()
			if t.GroupingLevel() > 0 {
				continue
			}
			if !t.lineContent {
				// a line holding only a continuation or comment
				t.atLineStart = true
				if tok, ok := t.lineStart(); ok {
					return tok
				}
				continue
			}
			return t.newLine(start, t.pos)
		}
		return t.scanToken()
	}
}

func (t *Tokenizer) newLine(start, end int) Token {
	t.atLineStart = true
	t.lineContent = false
	t.sawNewLine = true
	return Token{Kind: TokenNewLine, Span: Span{start, end}, Literal: t.src[start:end]}
}

func (t *Tokenizer) newlineWidth() int {
	if t.pos >= len(t.src) {
		return 0
	}
	switch t.src[t.pos] {
	case '\n':
		return 1
	case '\r':
		if t.pos+1 < len(t.src) && t.src[t.pos+1] == '\n' {
			return 2
		}
		return 1
	}
	return 0
}

func (t *Tokenizer) skipSpace() {
	for t.pos < len(t.src) {
		switch t.src[t.pos] {
		case ' ', '\t', '\f':
			t.pos++
		default:
			return
		}
	}
}

func (t *Tokenizer) skipComment() {
	for t.pos < len(t.src) && t.src[t.pos] != '\n' && t.src[t.pos] != '\r' {
		t.pos++
	}
}

// lineStart measures the indentation of the next non-blank line. Blank
// lines after the first logical line come back as NL tokens.
func (t *Tokenizer) lineStart() (Token, bool) {
	for {
		lineBegin := t.pos
		col, altcol := 0, 0
	measure:
		for t.pos < len(t.src) {
			switch t.src[t.pos] {
			case ' ':
				col++
				altcol++
			case '\t':
				col = (col/8 + 1) * 8
				altcol++
			case '\f':
				col, altcol = 0, 0
			default:
				break measure
			}
			t.pos++
		}
		if t.pos >= len(t.src) {
			t.atLineStart = false
			return Token{}, false
		}
		c := t.src[t.pos]
		if c == '#' || c == '\n' || c == '\r' {
			t.skipComment()
			start := t.pos
			t.pos += t.newlineWidth()
			if t.sawNewLine {
				return Token{Kind: TokenNL, Span: Span{start, t.pos}, Literal: t.src[start:t.pos]}, true
			}
			continue
		}
		if c == '\\' {
			// indentation of a continued line is taken from the line it continues
			t.atLineStart = false
			return Token{}, false
		}

		t.atLineStart = false
		top := t.indents[len(t.indents)-1]
		switch {
		case col > top.col:
			if altcol <= top.altcol {
				t.inconsistent(lineBegin)
			}
			t.indents = append(t.indents, indentLevel{col, altcol})
			return Token{Kind: TokenIndent, Span: Span{lineBegin, t.pos}, Literal: t.src[lineBegin:t.pos]}, true
		case col < top.col:
			dedents := 0
			for len(t.indents) > 1 && col < t.indents[len(t.indents)-1].col {
				t.indents = t.indents[:len(t.indents)-1]
				dedents++
			}
			top = t.indents[len(t.indents)-1]
			if col != top.col {
				t.report("unindent does not match any outer indentation level", lineBegin, t.pos, IndentationError, SeverityFatal)
				t.indents = append(t.indents, indentLevel{col, altcol})
				dedents--
			} else if altcol != top.altcol {
				t.inconsistent(lineBegin)
			}
			if dedents <= 0 {
				return Token{}, false
			}
			t.pendingDedents = dedents - 1
			return Token{Kind: TokenDedent, Span: Span{t.pos, t.pos}}, true
		default:
			if altcol != top.altcol {
				t.inconsistent(lineBegin)
			}
		}
		return Token{}, false
	}
}

func (t *Tokenizer) inconsistent(lineBegin int) {
	if t.tabCheck == SeverityIgnore {
		return
	}
	t.report("inconsistent whitespace", lineBegin, t.pos, TabError, t.tabCheck)
}

func (t *Tokenizer) eof() Token {
	t.reachedEOF = true
	if t.lineContent && t.GroupingLevel() == 0 {
		return t.newLine(t.pos, t.pos)
	}
	if len(t.indents) > 1 {
		t.indents = t.indents[:len(t.indents)-1]
		return Token{Kind: TokenDedent, Span: Span{t.pos, t.pos}}
	}
	return Token{Kind: TokenEOF, Span: Span{t.pos, t.pos}}
}

func (t *Tokenizer) scanToken() Token {
	start := t.pos
	c := t.src[start]

	switch {
	case c >= '0' && c <= '9', c == '.' && start+1 < len(t.src) && isDigit(t.src[start+1]):
		return t.scanNumber()
	case c == '"' || c == '\'':
		return t.scanString(start, stringPrefix{})
	case c < utf8.RuneSelf && (isLetter(c) || c == '_'):
		return t.scanName()
	case c >= utf8.RuneSelf:
		r, _ := utf8.DecodeRuneInString(t.src[start:])
		if unicode.IsLetter(r) {
			return t.scanName()
		}
	}
	return t.scanOperator()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isNameRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func (t *Tokenizer) scanName() Token {
	start := t.pos
	for t.pos < len(t.src) {
		r, size := utf8.DecodeRuneInString(t.src[t.pos:])
		if !isNameRune(r) {
			break
		}
		t.pos += size
	}
	name := t.src[start:t.pos]

	if t.pos < len(t.src) && (t.src[t.pos] == '"' || t.src[t.pos] == '\'') && len(name) <= 2 {
		if sp, ok := parseStringPrefix(name); ok {
			return t.scanString(start, sp)
		}
	}

	kind := t.keyword(name)
	return Token{Kind: kind, Span: Span{start, t.pos}, Literal: name}
}

// keyword decides whether name is a keyword for the current version and
// __future__ options. Words that are keywords only in other versions are
// still reported as keywords at the start of a statement when they are
// followed by an operand, so the parser can flag the construct instead of
// failing on the operand.
func (t *Tokenizer) keyword(name string) TokenKind {
	kind, ok := keywords[name]
	if !ok {
		return TokenName
	}
	enabled := true
	switch kind {
	case TokenPrint:
		enabled = FeaturePrintStatement.Enabled(t.version, t.future)
	case TokenExec:
		enabled = FeatureExecStatement.Enabled(t.version, t.future)
	case TokenNonlocal:
		enabled = FeatureNonlocal.Enabled(t.version, t.future)
	case TokenWith:
		enabled = FeatureWithStatement.Enabled(t.version, t.future)
	case TokenAs:
		return t.asKeyword()
	case TokenTrue, TokenFalse:
		if !FeatureTrueFalseKeywords.Enabled(t.version, t.future) {
			return TokenName
		}
	}
	if enabled {
		return kind
	}
	if t.atStatementStart() && t.operandFollows(kind == TokenPrint) {
		return kind
	}
	return TokenName
}

func (t *Tokenizer) asKeyword() TokenKind {
	if FeatureWithStatement.Enabled(t.version, t.future) {
		return TokenAs
	}
	return TokenName
}

func (t *Tokenizer) atStatementStart() bool {
	if t.GroupingLevel() > 0 {
		return false
	}
	switch t.prev {
	case TokenNewLine, TokenNL, TokenIndent, TokenDedent, TokenSemicolon, TokenColon:
		return true
	}
	return false
}

// operandFollows peeks at the characters after a word and reports whether
// they start an operand rather than continue an expression.
func (t *Tokenizer) operandFollows(allowRedirect bool) bool {
	i := t.pos
	for i < len(t.src) && (t.src[i] == ' ' || t.src[i] == '\t') {
		i++
	}
	if i == t.pos || i >= len(t.src) {
		return false
	}
	c := t.src[i]
	switch {
	case isDigit(c), c == '"', c == '\'':
		return true
	case c == '>' && allowRedirect:
		return i+1 < len(t.src) && t.src[i+1] == '>'
	}
	j := i
	for j < len(t.src) {
		r, size := utf8.DecodeRuneInString(t.src[j:])
		if !isNameRune(r) {
			break
		}
		j += size
	}
	if j == i {
		return false
	}
	switch t.src[i:j] {
	case "and", "or", "not", "in", "is", "if", "else", "for", "as":
		return false
	}
	return true
}

func (t *Tokenizer) scanNumber() Token {
	start := t.pos
	src := t.src
	if src[t.pos] == '0' && t.pos+1 < len(src) && strings.ContainsRune("xXoObB", rune(src[t.pos+1])) {
		t.pos += 2
		for t.pos < len(src) && (isHexDigit(src[t.pos]) || src[t.pos] == '_') {
			t.pos++
		}
	} else {
		t.digits()
		if t.pos < len(src) && src[t.pos] == '.' {
			t.pos++
			t.digits()
		}
		if t.pos < len(src) && (src[t.pos] == 'e' || src[t.pos] == 'E') {
			save := t.pos
			t.pos++
			if t.pos < len(src) && (src[t.pos] == '+' || src[t.pos] == '-') {
				t.pos++
			}
			if t.pos < len(src) && isDigit(src[t.pos]) {
				t.digits()
			} else {
				t.pos = save
			}
		}
		if t.pos < len(src) && (src[t.pos] == 'j' || src[t.pos] == 'J') {
			t.pos++
		}
	}
	if t.pos < len(src) && (src[t.pos] == 'l' || src[t.pos] == 'L') {
		t.pos++
	}
	lit := src[start:t.pos]
	value := parseNumber(lit, t.version)
	if value == nil {
		t.report(fmt.Sprintf("invalid token '%s'", lit), start, t.pos, SyntaxError, SeverityFatal)
		return Token{Kind: TokenError, Span: Span{start, t.pos}, Literal: lit}
	}
	return Token{Kind: TokenNumber, Span: Span{start, t.pos}, Literal: lit, Value: value}
}

func (t *Tokenizer) digits() {
	for t.pos < len(t.src) && (isDigit(t.src[t.pos]) || t.src[t.pos] == '_') {
		t.pos++
	}
}

func isHexDigit(c byte) bool {
	return isDigit(c) || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func (t *Tokenizer) scanString(start int, sp stringPrefix) Token {
	quote := t.src[t.pos]
	triple := strings.HasPrefix(t.src[t.pos:], strings.Repeat(string(quote), 3))
	width := 1
	if triple {
		width = 3
	}
	t.pos += width
	bodyStart := t.pos
	closing := strings.Repeat(string(quote), width)

	terminated := false
	bodyEnd := t.pos
	for t.pos < len(t.src) {
		c := t.src[t.pos]
		if c == '\\' {
			t.pos += 2
			continue
		}
		if !triple && (c == '\n' || c == '\r') {
			break
		}
		if strings.HasPrefix(t.src[t.pos:], closing) {
			bodyEnd = t.pos
			t.pos += width
			terminated = true
			break
		}
		t.pos++
	}
	if t.pos > len(t.src) {
		t.pos = len(t.src)
	}
	if !terminated {
		bodyEnd = t.pos
		switch {
		case triple:
			t.openString = true
			t.report("EOF while scanning triple-quoted string", start, t.pos, SyntaxError|IncompleteToken, SeverityFatal)
		case t.pos >= len(t.src) && t.pos > bodyStart && t.src[t.pos-1] == '\n' && t.pos-2 >= bodyStart && t.src[t.pos-2] == '\\':
			t.openString = true
			t.report("EOL while scanning string literal", start, t.pos, SyntaxError|IncompleteToken, SeverityFatal)
		default:
			t.report("EOL while scanning string literal", start, t.pos, SyntaxError, SeverityFatal)
		}
	}

	body := t.src[bodyStart:bodyEnd]
	unicodeEscapes := sp.unicode || FeatureUnicodeLiterals.Enabled(t.version, t.future)
	var value any
	if sp.bytes {
		raw, ok := literalBytes(body)
		if !ok || (t.version.Is3x() && !isASCII(raw)) {
			t.report("bytes can only contain ASCII literal characters", start, t.pos, SyntaxError, SeverityFatal)
		}
		value = Bytes(decodeString(raw, sp, false))
	} else {
		value = decodeString(body, sp, unicodeEscapes)
	}
	return Token{Kind: TokenString, Span: Span{start, t.pos}, Literal: t.src[start:t.pos], Value: value}
}

var operators3 = map[string]TokenKind{
	"**=": TokenPowerAssign,
	"//=": TokenFloorDivideAssign,
	">>=": TokenRightShiftAssign,
	"<<=": TokenLeftShiftAssign,
	"...": TokenEllipsis,
}

var operators2 = map[string]TokenKind{
	"**": TokenPower,
	"//": TokenFloorDivide,
	"<<": TokenLeftShift,
	">>": TokenRightShift,
	"<=": TokenLessEqual,
	">=": TokenGreaterEqual,
	"==": TokenEqual,
	"!=": TokenNotEqual,
	"<>": TokenLessGreater,
	"->": TokenArrow,
	"+=": TokenPlusAssign,
	"-=": TokenMinusAssign,
	"*=": TokenStarAssign,
	"/=": TokenSlashAssign,
	"%=": TokenPercentAssign,
	"&=": TokenBitAndAssign,
	"|=": TokenBitOrAssign,
	"^=": TokenBitXorAssign,
}

var operators1 = map[byte]TokenKind{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'/': TokenSlash,
	'%': TokenPercent,
	'&': TokenBitAnd,
	'|': TokenBitOr,
	'^': TokenBitXor,
	'~': TokenTilde,
	'<': TokenLess,
	'>': TokenGreater,
	'(': TokenLParen,
	')': TokenRParen,
	'[': TokenLBracket,
	']': TokenRBracket,
	'{': TokenLBrace,
	'}': TokenRBrace,
	',': TokenComma,
	':': TokenColon,
	'.': TokenDot,
	';': TokenSemicolon,
	'@': TokenAt,
	'=': TokenAssign,
	'`': TokenBackQuote,
}

func (t *Tokenizer) scanOperator() Token {
	start := t.pos
	rest := t.src[start:]
	if len(rest) >= 3 {
		if kind, ok := operators3[rest[:3]]; ok {
			t.pos += 3
			return Token{Kind: kind, Span: Span{start, t.pos}, Literal: rest[:3]}
		}
	}
	if len(rest) >= 2 {
		if kind, ok := operators2[rest[:2]]; ok {
			t.pos += 2
			return Token{Kind: kind, Span: Span{start, t.pos}, Literal: rest[:2]}
		}
	}
	if kind, ok := operators1[rest[0]]; ok {
		t.pos++
		t.track(kind)
		return Token{Kind: kind, Span: Span{start, t.pos}, Literal: rest[:1]}
	}

	_, size := utf8.DecodeRuneInString(rest)
	t.pos += size
	lit := rest[:size]
	t.report(fmt.Sprintf("unexpected character '%s'", lit), start, t.pos, SyntaxError, SeverityFatal)
	return Token{Kind: TokenError, Span: Span{start, t.pos}, Literal: lit}
}

func (t *Tokenizer) track(kind TokenKind) {
	switch kind {
	case TokenLParen:
		t.parens++
	case TokenRParen:
		if t.parens > 0 {
			t.parens--
		}
	case TokenLBracket:
		t.brackets++
	case TokenRBracket:
		if t.brackets > 0 {
			t.brackets--
		}
	case TokenLBrace:
		t.braces++
	case TokenRBrace:
		if t.braces > 0 {
			t.braces--
		}
	}
}
