package parser

import "strings"

// test: or_test ['if' or_test 'else' test] | lambdef
func (p *Parser) parseTest() Expression {
	if !p.enter() {
		p.leave()
		return p.errorExpr()
	}
	defer p.leave()

	if p.check(TokenLambda) {
		return p.parseLambda(false)
	}
	start := p.peek().Span.Start
	ret := p.parseOrTest()
	if p.maybeEat(TokenIf) {
		n := &Conditional{TrueExpr: ret, Test: p.parseOrTest()}
		if p.eat(TokenElse) {
			n.FalseExpr = p.parseTest()
		} else {
			n.FalseExpr = p.errorExpr()
		}
		p.finish(n, start)
		return n
	}
	return ret
}

// old_test: or_test | old_lambdef
func (p *Parser) parseOldTest() Expression {
	if p.check(TokenLambda) {
		return p.parseLambda(true)
	}
	return p.parseOrTest()
}

func (p *Parser) parseOrTest() Expression {
	start := p.peek().Span.Start
	ret := p.parseAndTest()
	for p.maybeEat(TokenOr) {
		n := &BoolOp{Op: OpOr, Left: ret, Right: p.parseAndTest()}
		p.finish(n, start)
		ret = n
	}
	return ret
}

func (p *Parser) parseAndTest() Expression {
	start := p.peek().Span.Start
	ret := p.parseNotTest()
	for p.maybeEat(TokenAnd) {
		n := &BoolOp{Op: OpAnd, Left: ret, Right: p.parseNotTest()}
		p.finish(n, start)
		ret = n
	}
	return ret
}

func (p *Parser) parseNotTest() Expression {
	if !p.check(TokenNot) {
		return p.parseComparison()
	}
	if !p.enter() {
		p.leave()
		return p.errorExpr()
	}
	defer p.leave()
	t := p.next()
	n := &UnaryOp{Op: OpNot, Operand: p.parseNotTest()}
	p.finish(n, t.Span.Start)
	return n
}

// comparison: expr (comp_op expr)*
func (p *Parser) parseComparison() Expression {
	start := p.peek().Span.Start
	ret := p.parseExpr(0)
	var ops []Operator
	var comparators []Expression
	for {
		var op Operator
		switch t := p.peek(); t.Kind {
		case TokenLess, TokenGreater, TokenLessEqual, TokenGreaterEqual, TokenEqual, TokenNotEqual:
			p.next()
			op = t.Kind.Operator()
		case TokenLessGreater:
			p.next()
			p.requireFeature(FeatureLessGreater, t.Span)
			op = OpNotEq
		case TokenIn:
			p.next()
			op = OpIn
		case TokenIs:
			p.next()
			op = OpIs
			if p.maybeEat(TokenNot) {
				op = OpIsNot
			}
		case TokenNot:
			p.next()
			p.eat(TokenIn)
			op = OpNotIn
		default:
			if len(ops) == 0 {
				return ret
			}
			n := &Compare{Left: ret, Ops: ops, Comparators: comparators}
			p.finish(n, start)
			return n
		}
		ops = append(ops, op)
		comparators = append(comparators, p.parseExpr(0))
	}
}

// parseExpr parses binary arithmetic and bitwise operators by precedence
// climbing. Operators binding weaker than prec are left to the caller.
func (p *Parser) parseExpr(prec int) Expression {
	start := p.peek().Span.Start
	ret := p.parseFactor()
	for {
		t := p.peek()
		tp := t.Kind.Precedence()
		if tp == 0 || tp < prec {
			return ret
		}
		p.next()
		n := &BinaryOp{Op: p.binaryOperator(t.Kind), Left: ret, Right: p.parseExpr(tp + 1)}
		p.finish(n, start)
		ret = n
	}
}

// factor: ('+'|'-'|'~') factor | power
func (p *Parser) parseFactor() Expression {
	var op Operator
	switch p.peek().Kind {
	case TokenPlus:
		op = OpPos
	case TokenMinus:
		op = OpNeg
	case TokenTilde:
		op = OpInvert
	default:
		return p.parsePower()
	}
	if !p.enter() {
		p.leave()
		return p.errorExpr()
	}
	defer p.leave()
	t := p.next()
	n := &UnaryOp{Op: op, Operand: p.parseFactor()}
	p.finish(n, t.Span.Start)
	return n
}

// power: atom trailer* ['**' factor]
func (p *Parser) parsePower() Expression {
	start := p.peek().Span.Start
	ret := p.addTrailers(p.parseAtom(), start)
	if p.maybeEat(TokenPower) {
		if !p.enter() {
			p.leave()
			return p.errorExpr()
		}
		defer p.leave()
		n := &BinaryOp{Op: OpPow, Left: ret, Right: p.parseFactor()}
		p.finish(n, start)
		return n
	}
	return ret
}

func (p *Parser) parseAtom() Expression {
	t := p.peek()
	start := t.Span.Start
	switch t.Kind {
	case TokenLParen:
		p.next()
		return p.finishParenthesized(start)
	case TokenLBracket:
		p.next()
		return p.finishList(start)
	case TokenLBrace:
		p.next()
		return p.finishDictOrSet(start)
	case TokenBackQuote:
		p.next()
		p.requireFeature(FeatureBackQuote, t.Span)
		n := &BackQuote{Inner: p.parseTestListAsExpr()}
		p.eat(TokenBackQuote)
		p.finish(n, start)
		return n
	case TokenName:
		p.next()
		n := &Name{Name: p.mangle(t.Literal)}
		p.finish(n, start)
		return n
	case TokenNumber:
		p.next()
		n := &Constant{Value: t.Value}
		p.finish(n, start)
		return n
	case TokenString:
		return p.parseStrings()
	case TokenNone:
		p.next()
		n := &Constant{}
		p.finish(n, start)
		return n
	case TokenTrue, TokenFalse:
		p.next()
		n := &Constant{Value: t.Kind == TokenTrue}
		p.finish(n, start)
		return n
	case TokenEllipsis:
		p.next()
		p.requireFeature(FeatureEllipsisLiteral, t.Span)
		n := &Constant{Value: Ellipsis{}}
		p.finish(n, start)
		return n
	case TokenError:
		return p.errorExpr()
	}
	p.reportUnexpected(t)
	return p.errorExpr()
}

// parseStrings joins adjacent string literals into one constant.
func (p *Parser) parseStrings() Expression {
	start := p.peek().Span.Start
	var b strings.Builder
	sawBytes, sawText := false, false
	for p.check(TokenString) {
		t := p.next()
		switch v := t.Value.(type) {
		case Bytes:
			sawBytes = true
			b.WriteString(string(v))
		case string:
			sawText = true
			b.WriteString(v)
		}
	}
	n := &Constant{}
	p.finish(n, start)
	if sawBytes && sawText && !p.feature(FeatureBytesMixing) {
		p.errorAt(n.Loc, "cannot mix bytes and nonbytes literals")
	}
	if sawBytes && !sawText {
		n.Value = Bytes(b.String())
	} else {
		n.Value = b.String()
	}
	return n
}

// trailer: '(' [arglist] ')' | '[' subscriptlist ']' | '.' NAME
func (p *Parser) addTrailers(ret Expression, start int) Expression {
	for {
		switch p.peek().Kind {
		case TokenLParen:
			p.next()
			n := &Call{Target: ret, Args: p.finishArgs()}
			p.finish(n, start)
			ret = n
		case TokenLBracket:
			p.next()
			n := &Index{Target: ret, Index: p.parseSubscriptList()}
			p.eat(TokenRBracket)
			p.finish(n, start)
			ret = n
		case TokenDot:
			p.next()
			name, ok := p.readName()
			if !ok {
				return ret
			}
			n := &Member{Target: ret, Name: p.mangle(name)}
			p.finish(n, start)
			ret = n
		default:
			return ret
		}
	}
}

// subscriptlist: subscript (',' subscript)* [',']
func (p *Parser) parseSubscriptList() Expression {
	start := p.peek().Span.Start
	var items []Expression
	trailing := false
	for {
		items = append(items, p.parseSubscript())
		if !p.maybeEat(TokenComma) {
			trailing = false
			break
		}
		trailing = true
		if p.check(TokenRBracket) {
			break
		}
	}
	return p.makeTupleOrExpr(items, trailing, start, false)
}

// subscript: '...' | test | [test] ':' [test] [':' [test]]
func (p *Parser) parseSubscript() Expression {
	t := p.peek()
	switch t.Kind {
	case TokenEllipsis:
		p.next()
		n := &Constant{Value: Ellipsis{}}
		p.finish(n, t.Span.Start)
		return n
	case TokenColon:
		return p.finishSlice(nil, t.Span.Start)
	}
	e := p.parseTest()
	if p.check(TokenColon) {
		return p.finishSlice(e, t.Span.Start)
	}
	return e
}

func (p *Parser) finishSlice(lower Expression, start int) Expression {
	p.eat(TokenColon)
	n := &Slice{Lower: lower}
	if !p.check(TokenColon) && !p.check(TokenRBracket) && !p.check(TokenComma) {
		n.Upper = p.parseTest()
	}
	if p.maybeEat(TokenColon) {
		n.StepProvided = true
		if !p.check(TokenRBracket) && !p.check(TokenComma) {
			n.Step = p.parseTest()
		}
	}
	p.finish(n, start)
	return n
}

func (p *Parser) makeTupleOrExpr(items []Expression, trailing bool, start int, parenthesized bool) Expression {
	if len(items) == 1 && !trailing {
		return items[0]
	}
	n := &Tuple{Items: items, Parenthesized: parenthesized}
	p.finish(n, start)
	return n
}

// parseTestListAsExpr parses a comma separated list of tests, producing a
// tuple when there is more than one or a trailing comma.
func (p *Parser) parseTestListAsExpr() Expression {
	return p.parseTestList(false)
}

// parseTestList parses testlist, or testlist_star_expr when allowStar is
// set.
func (p *Parser) parseTestList(allowStar bool) Expression {
	start := p.peek().Span.Start
	first := p.parseTestOrStar(allowStar)
	if !p.maybeEat(TokenComma) {
		return first
	}
	items := []Expression{first}
	trailing := true
	for !neverTest(p.peek().Kind) {
		items = append(items, p.parseTestOrStar(allowStar))
		if !p.maybeEat(TokenComma) {
			trailing = false
			break
		}
	}
	return p.makeTupleOrExpr(items, trailing, start, false)
}

func (p *Parser) parseTestOrStar(allowStar bool) Expression {
	if allowStar && p.check(TokenStar) {
		return p.parseStarred()
	}
	return p.parseTest()
}

func (p *Parser) parseStarred() Expression {
	t := p.next()
	n := &Starred{Value: p.parseExpr(0)}
	p.finish(n, t.Span.Start)
	p.requireFeature(FeatureStarTargets, n.Loc)
	return n
}

// parseTargetList parses the exprlist of a for statement or comprehension.
// Items stop short of comparisons so that "in" is left for the caller.
func (p *Parser) parseTargetList() Expression {
	start := p.peek().Span.Start
	var items []Expression
	trailing := false
	for {
		if p.check(TokenStar) {
			items = append(items, p.parseStarred())
		} else {
			items = append(items, p.parseExpr(0))
		}
		if !p.maybeEat(TokenComma) {
			trailing = false
			break
		}
		trailing = true
		if neverTest(p.peek().Kind) {
			break
		}
	}
	return p.makeTupleOrExpr(items, trailing, start, false)
}

// parseExprList parses the targets of a del statement.
func (p *Parser) parseExprList() []Expression {
	var items []Expression
	for {
		items = append(items, p.parseExpr(0))
		if !p.maybeEat(TokenComma) || neverTest(p.peek().Kind) {
			return items
		}
	}
}

// parseOldTestList parses testlist_safe, the iterable of a 2.x list
// comprehension.
func (p *Parser) parseOldTestList() Expression {
	start := p.peek().Span.Start
	first := p.parseOldTest()
	if !p.check(TokenComma) {
		return first
	}
	items := []Expression{first}
	trailing := false
	for p.maybeEat(TokenComma) {
		trailing = true
		if neverTest(p.peek().Kind) {
			break
		}
		items = append(items, p.parseOldTest())
		trailing = false
	}
	return p.makeTupleOrExpr(items, trailing, start, false)
}

// finishParenthesized parses what follows '(': an empty tuple, a yield,
// a parenthesized expression, a tuple or a generator expression.
func (p *Parser) finishParenthesized(start int) Expression {
	if p.maybeEat(TokenRParen) {
		n := &Tuple{Parenthesized: true}
		p.finish(n, start)
		return n
	}
	if p.check(TokenYield) {
		n := &Paren{Inner: p.parseYieldExpr()}
		p.eat(TokenRParen)
		p.finish(n, start)
		return n
	}

	first := p.parseTestOrStar(true)
	if p.maybeEat(TokenComma) {
		items := []Expression{first}
		for !p.check(TokenRParen) && !neverTest(p.peek().Kind) {
			items = append(items, p.parseTestOrStar(true))
			if !p.maybeEat(TokenComma) {
				break
			}
		}
		p.eat(TokenRParen)
		n := &Tuple{Items: items, Parenthesized: true}
		p.finish(n, start)
		return n
	}
	if p.check(TokenFor) {
		clauses := p.parseComprehension(false)
		p.eat(TokenRParen)
		return p.makeGenerator(first, clauses, start)
	}
	p.eat(TokenRParen)
	n := &Paren{Inner: first}
	p.finish(n, start)
	return n
}

// finishList parses what follows '[': a list display or comprehension.
func (p *Parser) finishList(start int) Expression {
	if p.maybeEat(TokenRBracket) {
		n := &List{}
		p.finish(n, start)
		return n
	}
	first := p.parseTestOrStar(true)
	if p.check(TokenFor) {
		n := &ListComp{Item: first, Clauses: p.parseComprehension(true)}
		p.eat(TokenRBracket)
		p.finish(n, start)
		return n
	}
	items := []Expression{first}
	for p.maybeEat(TokenComma) {
		if p.check(TokenRBracket) {
			break
		}
		items = append(items, p.parseTestOrStar(true))
	}
	p.eat(TokenRBracket)
	n := &List{Items: items}
	p.finish(n, start)
	return n
}

// finishDictOrSet parses what follows '{'. The first item decides between
// a dict and a set.
func (p *Parser) finishDictOrSet(start int) Expression {
	if p.maybeEat(TokenRBrace) {
		n := &Dict{}
		p.finish(n, start)
		return n
	}
	first := p.parseTest()

	if p.maybeEat(TokenColon) {
		value := p.parseTest()
		if p.check(TokenFor) {
			p.requireFeature(FeatureDictComprehension, Span{start, value.Span().End})
			n := &DictComp{Key: first, Value: value, Clauses: p.parseComprehension(false)}
			p.eat(TokenRBrace)
			p.finish(n, start)
			return n
		}
		item := &DictItem{Key: first, Value: value}
		p.finish(item, first.Span().Start)
		items := []*DictItem{item}
		for p.maybeEat(TokenComma) {
			if p.check(TokenRBrace) {
				break
			}
			itemStart := p.peek().Span.Start
			item := &DictItem{Key: p.parseTest()}
			if p.eat(TokenColon) {
				item.Value = p.parseTest()
			} else {
				item.Value = p.errorExpr()
			}
			p.finish(item, itemStart)
			items = append(items, item)
		}
		p.eat(TokenRBrace)
		n := &Dict{Items: items}
		p.finish(n, start)
		return n
	}

	p.requireFeature(FeatureSetLiterals, Span{start, first.Span().End})
	if p.check(TokenFor) {
		n := &SetComp{Item: first, Clauses: p.parseComprehension(false)}
		p.eat(TokenRBrace)
		p.finish(n, start)
		return n
	}
	items := []Expression{first}
	for p.maybeEat(TokenComma) {
		if p.check(TokenRBrace) {
			break
		}
		items = append(items, p.parseTest())
	}
	p.eat(TokenRBrace)
	n := &Set{Items: items}
	p.finish(n, start)
	return n
}

// finishArgs parses an argument list after '(' up to and including ')'.
// A generator expression may appear as the sole argument without its own
// parentheses.
func (p *Parser) finishArgs() []*Arg {
	var args []*Arg
	sawKeyword, sawStar, sawDoubleStar := false, false, false
	keywords := make(map[string]bool)
	for !p.maybeEat(TokenRParen) {
		if p.check(TokenEOF) {
			p.reportUnexpected(p.peek())
			break
		}
		start := p.peek().Span.Start
		arg := &Arg{}
		switch {
		case p.maybeEat(TokenStar):
			if sawStar {
				p.errorAt(p.token.Span, "only one * allowed")
			}
			if sawDoubleStar {
				p.errorAt(p.token.Span, "* argument after ** argument")
			}
			sawStar = true
			arg.Name = "*"
			arg.Value = p.parseTest()
		case p.maybeEat(TokenPower):
			if sawDoubleStar {
				p.errorAt(p.token.Span, "only one ** allowed")
			}
			sawDoubleStar = true
			arg.Name = "**"
			arg.Value = p.parseTest()
		default:
			e := p.parseTest()
			switch {
			case p.maybeEat(TokenAssign):
				if _, ok := e.(*Name); ok {
					arg.Name = p.source(e.Span())
					if keywords[arg.Name] {
						p.errorAt(e.Span(), "duplicate keyword argument")
					}
					keywords[arg.Name] = true
				} else {
					p.errorAt(e.Span(), "keyword can't be an expression")
				}
				if sawDoubleStar {
					p.errorAt(e.Span(), "keywords must come before ** args")
				}
				sawKeyword = true
				arg.Value = p.parseTest()
			case p.check(TokenFor):
				arg.Value = p.makeGenerator(e, p.parseComprehension(false), start)
				if len(args) > 0 || !p.check(TokenRParen) {
					p.errorAt(arg.Value.Span(), "Generator expression must be parenthesized if not sole argument")
				}
			default:
				if sawKeyword || sawDoubleStar {
					p.errorAt(e.Span(), "non-keyword arg after keyword arg")
				} else if sawStar {
					p.errorAt(e.Span(), "only named arguments may follow *expression")
				}
				arg.Value = e
			}
		}
		p.finish(arg, start)
		args = append(args, arg)
		if !p.maybeEat(TokenComma) {
			p.eat(TokenRParen)
			break
		}
	}
	return args
}

// source returns the raw text of a span.
func (p *Parser) source(sp Span) string {
	if sp.Start < 0 || sp.End > len(p.text) || sp.Start > sp.End {
		return ""
	}
	return p.text[sp.Start:sp.End]
}
