// Package parser provides an error-tolerant parser for Python source code
// covering the language as it stood from 2.4 through 3.3.
//
// # Overview
//
// The parser turns source text into an abstract syntax tree whose nodes
// carry byte spans into the decoded text. It is designed for tooling that
// has to cope with broken input: every problem is reported to an ErrorSink
// and parsing continues, so a single call yields a tree plus a complete
// list of diagnostics.
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│  Tokenizer  │────▶│   Parser    │
//	│  (bytes)    │     │  (tokens)   │     │   (AST)     │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	       │                   │                   │
//	       ▼                   ▼                   ▼
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│  Encoding   │     │ Indentation │     │  ErrorSink  │
//	│ Resolution  │     │    Stack    │     │ Diagnostics │
//	└─────────────┘     └─────────────┘     └─────────────┘
//
// Bytes are decoded according to a byte order mark or a coding comment on
// one of the first two lines. The tokenizer turns indentation into Indent
// and Dedent tokens, ignores newlines inside brackets and reports
// inconsistent use of tabs. The parser is a recursive-descent parser with
// one token of lookahead.
//
// # Entry Points
//
//	// ParseFile parses a whole module.
//	func (p *Parser) ParseFile() (*AST, error)
//
//	// ParseInteractiveCode parses what a user typed at a prompt and
//	// classifies it: complete, empty, invalid, or waiting for more.
//	func (p *Parser) ParseInteractiveCode() (*AST, CompletionState, error)
//
//	// ParseSingleStatement parses exactly one statement.
//	func (p *Parser) ParseSingleStatement() (*AST, error)
//
//	// ParseTopExpression parses an expression and wraps it in a return.
//	func (p *Parser) ParseTopExpression() (*AST, error)
//
// A Parser serves one parse call. Call Reset before parsing the same text
// again; a second call without Reset returns ErrAlreadyStarted.
//
// # Versions
//
// The grammar accepted depends on the LanguageVersion and on the
// __future__ imports seen so far. Constructs from the wrong version, such
// as a print statement under 3.x, are parsed anyway and reported with the
// VersionError code so tools can still show a useful tree.
//
// # Diagnostics
//
// Every diagnostic carries an ErrorCode. The base code distinguishes
// SyntaxError, IndentationError, TabError and VersionError; modifier bits
// mark input that is merely incomplete:
//
//	SyntaxError | IncompleteStatement   // "if x:" with no body yet
//	SyntaxError | IncompleteToken       // unterminated triple-quoted string
//
// Interactive callers use these bits to decide whether to prompt for
// another line.
//
// # Generator Expressions
//
// A generator expression keeps its item and clauses for tools, and also
// records the hidden function it evaluates to:
//
//	(x * 2 for x in xs if x)
//
//	def <genexpr>(__gen_$_parm__):
//	    for x in __gen_$_parm__:
//	        if x:
//	            yield x * 2
//
// The hidden function is not part of Children; it is reached through the
// Function field.
//
// # Example Usage
//
//	p := parser.NewString("def f(a, b=1):\n    return a + b\n",
//	    parser.WithVersion(parser.V27),
//	    parser.WithErrorSink(&collector),
//	)
//	ast, err := p.ParseFile()
package parser
