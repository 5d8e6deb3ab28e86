package parser

import "strings"

// CompletionState tells an interactive caller what to do with the text
// typed so far.
type CompletionState int

const (
	// StateComplete input can be executed.
	StateComplete CompletionState = iota
	// StateInvalid input has an error that more text cannot fix.
	StateInvalid
	// StateIncompleteToken input ends inside a token or bracket.
	StateIncompleteToken
	// StateIncompleteStatement input is a compound statement that may
	// continue.
	StateIncompleteStatement
	// StateEmpty input holds only whitespace and comments.
	StateEmpty
)

var completionStateNames = map[CompletionState]string{
	StateComplete:            "Complete",
	StateInvalid:             "Invalid",
	StateIncompleteToken:     "IncompleteToken",
	StateIncompleteStatement: "IncompleteStatement",
	StateEmpty:               "Empty",
}

func (s CompletionState) String() string {
	if name, ok := completionStateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// NeedsMore reports whether the caller should read another line.
func (s CompletionState) NeedsMore() bool {
	return s == StateIncompleteToken || s == StateIncompleteStatement
}

// ParseInteractiveCode parses one statement typed at an interactive
// prompt. The tree is returned only when the state is StateComplete.
func (p *Parser) ParseInteractiveCode() (*AST, CompletionState, error) {
	if err := p.begin(); err != nil {
		return nil, StateInvalid, err
	}
	p.allowIncomplete = true
	p.ctx.fromFutureAllowed = true

	p.skipBlankLines()
	empty := p.check(TokenEOF)
	var body Statement
	if !empty {
		switch p.peek().Kind {
		case TokenIf, TokenWhile, TokenFor, TokenTry, TokenWith, TokenDef, TokenClass, TokenAt:
			p.compound = true
		}
		body = p.parseStmt()
		p.skipBlankLines()
		if !p.check(TokenEOF) {
			p.reportUnexpected(p.peek())
			for !p.check(TokenEOF) {
				p.next()
			}
		}
	}

	state := p.completionState(empty)
	if state != StateComplete {
		return nil, state, nil
	}
	return p.finishAST(body), state, nil
}

// completionState classifies the input once it has been parsed. The rules
// are tried in order:
//
//	input ends inside a bracket, string or continuation,
//	  and no earlier error rules it out          IncompleteToken
//	first error is incomplete inside a token      IncompleteToken
//	first error is an incomplete statement,
//	  input starts a compound statement           IncompleteStatement
//	first error is an incomplete statement        IncompleteToken
//	any other error                               Invalid
//	no statement                                  Empty
//	compound statement without a trailing
//	  blank line                                  IncompleteStatement
//	otherwise                                     Complete
func (p *Parser) completionState(empty bool) CompletionState {
	first := p.sink.first
	if p.tokens.EndsInsideOpenConstruct() &&
		(first == 0 || first.Incomplete() != 0 || p.sink.firstStart >= len(strings.TrimRight(p.text, " \t\r\n\f"))) {
		return StateIncompleteToken
	}
	switch {
	case first&IncompleteToken != 0:
		return StateIncompleteToken
	case first&IncompleteStatement != 0 && p.compound:
		return StateIncompleteStatement
	case first&IncompleteStatement != 0:
		return StateIncompleteToken
	case first != 0:
		return StateInvalid
	case empty:
		return StateEmpty
	case p.compound && !endsWithBlankLine(p.text):
		return StateIncompleteStatement
	}
	return StateComplete
}

// endsWithBlankLine reports whether the last line of text is blank, which
// is how an interactive user closes a compound statement.
func endsWithBlankLine(text string) bool {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	i := strings.LastIndexByte(text, '\n')
	if i < 0 {
		return false
	}
	return strings.TrimLeft(text[i+1:], " \t\f") == ""
}
