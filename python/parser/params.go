package parser

import "fmt"

// parseParameters parses a parameter list up to, but not including, the
// terminator: ')' for def and ':' for lambda. Annotations are only accepted
// in def.
func (p *Parser) parseParameters(terminator TokenKind, annotations bool) []*Parameter {
	var params []*Parameter
	seen := make(map[string]bool)
	needDefault := false
	sawList, sawDict := false, false
	var bareStar *Parameter
	keywordOnly := 0

	declare := func(name string, sp Span) {
		if name == "" {
			return
		}
		if seen[name] {
			p.errorAt(sp, fmt.Sprintf("duplicate argument '%s' in function definition", name))
		}
		seen[name] = true
	}

	for !p.check(terminator) && !p.check(TokenEOF) {
		start := p.peek().Span.Start
		param := &Parameter{}

		switch {
		case p.maybeEat(TokenStar):
			if sawList {
				p.errorAt(p.token.Span, "duplicate * args arguments")
			}
			if sawDict {
				p.errorAt(p.token.Span, "arguments cannot follow var-keyword argument")
			}
			sawList = true
			param.ParamKind = ParameterList
			if p.check(TokenComma) || p.check(terminator) {
				p.requireFeature(FeatureKeywordOnlyParameters, p.token.Span)
				bareStar = param
			} else {
				nameSpan := p.peek().Span
				name, _ := p.readName()
				param.Name = p.mangle(name)
				declare(param.Name, nameSpan)
				p.parseAnnotation(param, annotations)
			}
		case p.maybeEat(TokenPower):
			if sawDict {
				p.errorAt(p.token.Span, "duplicate ** args arguments")
			}
			sawDict = true
			param.ParamKind = ParameterDict
			nameSpan := p.peek().Span
			name, _ := p.readName()
			param.Name = p.mangle(name)
			declare(param.Name, nameSpan)
			p.parseAnnotation(param, annotations)
		case p.check(TokenLParen):
			p.requireFeature(FeatureSublistParameters, p.peek().Span)
			param.ParamKind = ParameterSublist
			param.Name = fmt.Sprintf(".%d", len(params))
			param.Sublist = p.parseSublist(declare)
			p.parseDefault(param, start, &needDefault)
		default:
			nameSpan := p.peek().Span
			name, ok := p.readName()
			if !ok {
				if !p.check(TokenComma) && !p.check(terminator) {
					p.next()
				}
				break
			}
			param.Name = p.mangle(name)
			if sawDict {
				p.errorAt(nameSpan, "arguments cannot follow var-keyword argument")
			}
			if sawList {
				param.ParamKind = ParameterKeywordOnly
				keywordOnly++
				if !p.feature(FeatureKeywordOnlyParameters) {
					p.errorAt(nameSpan, FeatureKeywordOnlyParameters.requirement())
				}
			}
			declare(param.Name, nameSpan)
			p.parseAnnotation(param, annotations)
			p.parseDefault(param, start, &needDefault)
		}

		p.finish(param, start)
		params = append(params, param)
		if !p.maybeEat(TokenComma) {
			break
		}
	}

	if bareStar != nil && keywordOnly == 0 && p.feature(FeatureKeywordOnlyParameters) {
		p.errorAt(bareStar.Loc, "named arguments must follow bare *")
	}
	return params
}

func (p *Parser) parseAnnotation(param *Parameter, allowed bool) {
	if !allowed || !p.maybeEat(TokenColon) {
		return
	}
	p.requireFeature(FeatureAnnotations, p.token.Span)
	param.Annotation = p.parseTest()
}

// parseDefault parses "= test". Once a positional parameter has a default,
// every later positional parameter needs one too.
func (p *Parser) parseDefault(param *Parameter, start int, needDefault *bool) {
	if p.maybeEat(TokenAssign) {
		param.Default = p.parseTest()
		if param.ParamKind != ParameterKeywordOnly {
			*needDefault = true
		}
		return
	}
	if *needDefault && param.ParamKind != ParameterKeywordOnly {
		p.errorAt(Span{start, p.token.Span.End}, "default value must be specified here")
	}
}

// parseSublist parses a parenthesized 2.x tuple parameter such as (a, (b, c)).
func (p *Parser) parseSublist(declare func(string, Span)) Expression {
	if !p.enter() {
		p.leave()
		return p.skipSublist()
	}
	defer p.leave()
	t := p.next()
	var items []Expression
	trailing := false
	for !p.check(TokenRParen) && !p.check(TokenEOF) {
		if p.check(TokenLParen) {
			items = append(items, p.parseSublist(declare))
		} else {
			start := p.peek().Span
			name, ok := p.readName()
			if !ok {
				break
			}
			n := &Name{Name: p.mangle(name)}
			p.finish(n, start.Start)
			declare(n.Name, start)
			items = append(items, n)
		}
		trailing = false
		if !p.maybeEat(TokenComma) {
			break
		}
		trailing = true
	}
	p.eat(TokenRParen)
	if len(items) == 1 && !trailing {
		return items[0]
	}
	n := &Tuple{Items: items, Parenthesized: true}
	p.finish(n, t.Span.Start)
	return n
}

// skipSublist consumes a sublist nested too deeply to parse, up to its
// matching parenthesis.
func (p *Parser) skipSublist() Expression {
	t := p.peek()
	e := &ErrorExpr{}
	level := 0
	for !p.check(TokenEOF) {
		switch p.next().Kind {
		case TokenLParen:
			level++
		case TokenRParen:
			level--
		}
		if level == 0 {
			break
		}
	}
	p.finish(e, t.Span.Start)
	return e
}

// lambdef: 'lambda' [varargslist] ':' test
//
// The body becomes a function whose only statement returns the expression,
// or yields it when the lambda contains a yield.
func (p *Parser) parseLambda(old bool) Expression {
	t := p.next()
	fn := &FunctionDef{Name: "<lambda>", IsLambda: true}
	fn.Parameters = p.parseParameters(TokenColon, false)
	fn.Header = p.token.Span.End
	p.eat(TokenColon)

	p.ctx.pushFunction(fn)
	saved := p.ctx.enterBody()
	var expr Expression
	if old {
		expr = p.parseOldTest()
	} else {
		expr = p.parseTest()
	}
	var body Statement
	if p.ctx.isGenerator {
		fn.IsGenerator = true
		y := &Yield{Value: expr}
		p.finishSpan(y, expr.Span())
		s := &ExprStmt{Expr: y}
		p.finishSpan(s, expr.Span())
		body = s
	} else {
		r := &Return{Value: expr}
		p.finishSpan(r, expr.Span())
		body = r
	}
	p.ctx.leaveBody(saved)
	p.ctx.popFunction()

	fn.Body = body
	p.finish(fn, t.Span.Start)
	n := &Lambda{Function: fn}
	p.finish(n, t.Span.Start)
	return n
}
