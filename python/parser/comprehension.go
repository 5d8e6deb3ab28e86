package parser

const (
	generatorFunctionName  = "<genexpr>"
	generatorParameterName = "__gen_$_parm__"
)

// parseComprehension parses the clause chain after the item of a
// comprehension. list selects the 2.x list comprehension grammar, where
// the first iterable may be an unparenthesized tuple.
func (p *Parser) parseComprehension(list bool) []ComprehensionClause {
	clauses := []ComprehensionClause{p.parseCompFor(list)}
	for {
		switch p.peek().Kind {
		case TokenFor:
			clauses = append(clauses, p.parseCompFor(list))
		case TokenIf:
			clauses = append(clauses, p.parseCompIf())
		default:
			return clauses
		}
	}
}

// comp_for: 'for' exprlist 'in' or_test [comp_iter]
func (p *Parser) parseCompFor(list bool) ComprehensionClause {
	t := p.next()
	n := &ComprehensionFor{Target: p.parseTargetList()}
	p.checkAssign(n.Target)
	switch {
	case !p.eat(TokenIn):
		n.Iterable = p.errorExpr()
	case list && p.version.Is2x():
		n.Iterable = p.parseOldTestList()
	default:
		n.Iterable = p.parseOrTest()
	}
	p.finish(n, t.Span.Start)
	return n
}

// comp_if: 'if' old_test [comp_iter]
func (p *Parser) parseCompIf() ComprehensionClause {
	t := p.next()
	n := &ComprehensionIf{Test: p.parseOldTest()}
	p.finish(n, t.Span.Start)
	return n
}

// makeGenerator builds a generator expression ending at the last consumed
// token. Besides the clauses it records the hidden function the expression
// evaluates to: a generator taking the outermost iterable as its only
// parameter, whose body nests the clauses as for and if statements around
// a yield of the item.
func (p *Parser) makeGenerator(item Expression, clauses []ComprehensionClause, start int) *GeneratorExp {
	n := &GeneratorExp{Item: item, Clauses: clauses}
	p.finish(n, start)
	whole := n.Loc

	y := &Yield{Value: item}
	p.finishSpan(y, item.Span())
	inner := &ExprStmt{Expr: y}
	p.finishSpan(inner, item.Span())

	var body Statement = inner
	for i := len(clauses) - 1; i >= 0; i-- {
		switch c := clauses[i].(type) {
		case *ComprehensionFor:
			iterable := c.Iterable
			if i == 0 {
				n.Iterable = c.Iterable
				ref := &Name{Name: generatorParameterName}
				p.finishSpan(ref, c.Iterable.Span())
				iterable = ref
			}
			f := &For{Target: c.Target, Iterable: iterable, Body: body}
			p.finishSpan(f, whole)
			body = f
		case *ComprehensionIf:
			test := &IfTest{Test: c.Test, Body: body}
			p.finishSpan(test, whole)
			s := &If{Tests: []*IfTest{test}}
			p.finishSpan(s, whole)
			body = s
		}
	}

	param := &Parameter{Name: generatorParameterName}
	if n.Iterable != nil {
		p.finishSpan(param, n.Iterable.Span())
	}
	fn := &FunctionDef{
		Name:        generatorFunctionName,
		Parameters:  []*Parameter{param},
		Body:        body,
		IsGenerator: true,
		Header:      start,
	}
	p.finishSpan(fn, whole)
	n.Function = fn
	return n
}
