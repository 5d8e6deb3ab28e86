package parser

// neverTest reports whether a token can never start an expression. It is
// used to decide whether optional operands are present.
func neverTest(k TokenKind) bool {
	switch k {
	case TokenIndent, TokenDedent, TokenNewLine, TokenNL, TokenEOF,
		TokenSemicolon, TokenAssign, TokenRParen, TokenRBracket, TokenRBrace,
		TokenComma, TokenFor, TokenIn, TokenIf, TokenColon:
		return true
	}
	return k.IsAugmentedAssign()
}

// stmt: compound_stmt | simple_stmt
func (p *Parser) parseStmt() Statement {
	if !p.enter() {
		p.leave()
		return p.skipStatement()
	}
	defer p.leave()

	switch p.peek().Kind {
	case TokenIf:
		return p.parseIfStmt()
	case TokenWhile:
		return p.parseWhileStmt()
	case TokenFor:
		return p.parseForStmt()
	case TokenTry:
		return p.parseTryStmt()
	case TokenWith:
		return p.parseWithStmt()
	case TokenAt:
		return p.parseDecorated()
	case TokenDef:
		return p.parseFuncDef()
	case TokenClass:
		return p.parseClassDef()
	case TokenIndent:
		return p.parseUnexpectedBlock()
	}
	return p.parseSimpleStmt()
}

// skipStatement drops the rest of the logical line after a nesting error.
func (p *Parser) skipStatement() Statement {
	start := p.peek().Span.Start
	for !p.check(TokenNewLine) && !p.check(TokenEOF) {
		p.next()
	}
	e := &ErrorStmt{}
	p.finish(e, start)
	p.maybeEatNewLine()
	return e
}

// parseUnexpectedBlock reports an indented block that no statement
// introduced and parses its statements anyway.
func (p *Parser) parseUnexpectedBlock() Statement {
	t := p.next()
	p.addError("unexpected indent", t.Span.Start, t.Span.End, IndentationError)
	start := p.peek().Span.Start
	var stmts []Statement
	for !p.check(TokenDedent) && !p.check(TokenEOF) {
		if p.maybeEat(TokenNL) {
			continue
		}
		progressed := p.mustProgress()
		stmts = append(stmts, p.parseStmt())
		progressed()
	}
	suite := &Suite{Statements: stmts}
	p.finish(suite, start)
	p.maybeEat(TokenDedent)
	return suite
}

// simple_stmt: small_stmt (';' small_stmt)* [';'] NEWLINE
func (p *Parser) parseSimpleStmt() Statement {
	start := p.peek().Span.Start
	s := p.parseSmallStmt()
	if p.maybeEat(TokenSemicolon) {
		stmts := []Statement{s}
		for !p.check(TokenNewLine) && !p.check(TokenEOF) {
			progressed := p.mustProgress()
			stmts = append(stmts, p.parseSmallStmt())
			progressed()
			if !p.maybeEat(TokenSemicolon) {
				break
			}
		}
		suite := &Suite{Statements: stmts}
		p.finish(suite, start)
		s = suite
	}
	p.eatNewLine()
	return s
}

func (p *Parser) parseSmallStmt() Statement {
	switch p.peek().Kind {
	case TokenPrint:
		return p.parsePrintStmt()
	case TokenPass:
		n := &Pass{}
		t := p.next()
		p.finish(n, t.Span.Start)
		return n
	case TokenBreak:
		n := &Break{}
		t := p.next()
		p.finish(n, t.Span.Start)
		if !p.ctx.inLoop {
			p.errorAt(n.Loc, "'break' outside loop")
		}
		return n
	case TokenContinue:
		n := &Continue{}
		t := p.next()
		p.finish(n, t.Span.Start)
		if !p.ctx.inLoop {
			p.errorAt(n.Loc, "'continue' not properly in loop")
		} else if p.ctx.inFinally {
			p.errorAt(n.Loc, "'continue' not supported inside 'finally' clause")
		}
		return n
	case TokenReturn:
		return p.parseReturnStmt()
	case TokenFrom:
		return p.parseFromImportStmt()
	case TokenImport:
		return p.parseImportStmt()
	case TokenGlobal:
		return p.parseGlobalStmt()
	case TokenNonlocal:
		return p.parseNonlocalStmt()
	case TokenRaise:
		return p.parseRaiseStmt()
	case TokenAssert:
		return p.parseAssertStmt()
	case TokenExec:
		return p.parseExecStmt()
	case TokenDel:
		return p.parseDelStmt()
	case TokenYield:
		return p.parseYieldStmt()
	}
	return p.parseExprStmt()
}

// expr_stmt: testlist (augassign (yield_expr|testlist) | ('=' (yield_expr|testlist))*)
func (p *Parser) parseExprStmt() Statement {
	start := p.peek().Span.Start
	ret := p.parseTestList(true)

	if p.check(TokenAssign) {
		return p.finishAssignments(ret, start)
	}

	if p.peek().Kind.IsAugmentedAssign() {
		opTok := p.next()
		p.checkAugmentedTarget(ret)
		var value Expression
		if p.check(TokenYield) {
			value = p.parseYieldExpr()
		} else {
			value = p.parseTestListAsExpr()
		}
		n := &AugAssign{Op: p.binaryOperator(opTok.Kind), Target: ret, Value: value}
		p.finish(n, start)
		return n
	}

	p.checkNotStarred(ret)
	n := &ExprStmt{Expr: ret}
	p.finish(n, start)
	return n
}

func (p *Parser) finishAssignments(first Expression, start int) Statement {
	exprs := []Expression{first}
	for p.maybeEat(TokenAssign) {
		if p.check(TokenYield) {
			exprs = append(exprs, p.parseYieldExpr())
		} else {
			exprs = append(exprs, p.parseTestList(true))
		}
	}
	value := exprs[len(exprs)-1]
	targets := exprs[:len(exprs)-1]
	for _, t := range targets {
		p.checkAssign(t)
	}
	p.checkNotStarred(value)
	n := &Assign{Targets: targets, Value: value}
	p.finish(n, start)
	return n
}

// print_stmt: 'print' ( [ test (',' test)* [','] ] | '>>' test [ (',' test)+ [','] ] )
func (p *Parser) parsePrintStmt() Statement {
	t := p.next()
	start := t.Span.Start
	p.requireFeature(FeaturePrintStatement, t.Span)

	n := &Print{}
	if p.maybeEat(TokenRightShift) {
		n.Dest = p.parseTest()
		if p.maybeEat(TokenComma) {
			if neverTest(p.peek().Kind) {
				p.errorAt(p.token.Span, "print statement expected expression to be printed")
			} else {
				n.Values, n.TrailingComma = p.parsePrintValues()
			}
		}
	} else if !neverTest(p.peek().Kind) {
		n.Values, n.TrailingComma = p.parsePrintValues()
	}
	p.finish(n, start)
	return n
}

func (p *Parser) parsePrintValues() ([]Expression, bool) {
	values := []Expression{p.parseTest()}
	trailing := false
	for p.maybeEat(TokenComma) {
		trailing = true
		if neverTest(p.peek().Kind) {
			break
		}
		values = append(values, p.parseTest())
		trailing = false
	}
	return values, trailing
}

// exec_stmt: 'exec' expr ['in' test [',' test]]
func (p *Parser) parseExecStmt() Statement {
	t := p.next()
	p.requireFeature(FeatureExecStatement, t.Span)
	n := &Exec{Code: p.parseExpr(0)}
	if p.maybeEat(TokenIn) {
		n.Globals = p.parseTest()
		if p.maybeEat(TokenComma) {
			n.Locals = p.parseTest()
		}
	}
	p.finish(n, t.Span.Start)
	return n
}

func (p *Parser) parseDelStmt() Statement {
	t := p.next()
	n := &Del{}
	if neverTest(p.peek().Kind) {
		p.errorAt(t.Span, "expected expression after del")
	} else {
		n.Targets = p.parseExprList()
		for _, target := range n.Targets {
			p.checkDelete(target)
		}
	}
	p.finish(n, t.Span.Start)
	return n
}

func (p *Parser) parseReturnStmt() Statement {
	t := p.next()
	if p.ctx.currentFunction() == nil {
		p.errorAt(t.Span, "'return' outside function")
	}
	n := &Return{}
	if !neverTest(p.peek().Kind) {
		n.Value = p.parseTestListAsExpr()
	}
	p.finish(n, t.Span.Start)
	if n.Value != nil {
		p.ctx.returnsWithValue = append(p.ctx.returnsWithValue, n.Loc)
	}
	return n
}

func (p *Parser) parseYieldStmt() Statement {
	start := p.peek().Span.Start
	y := p.parseYieldExpr()
	n := &ExprStmt{Expr: y}
	p.finish(n, start)
	return n
}

// yield_expr: 'yield' [testlist]
func (p *Parser) parseYieldExpr() Expression {
	t := p.next()
	if fn := p.ctx.currentFunction(); fn == nil {
		p.errorAt(t.Span, "misplaced yield")
	} else {
		fn.IsGenerator = true
		p.ctx.isGenerator = true
	}
	n := &Yield{}
	if neverTest(p.peek().Kind) {
		p.requireFeature(FeatureBareYield, t.Span)
	} else {
		n.Value = p.parseTestListAsExpr()
	}
	p.finish(n, t.Span.Start)
	return n
}

func (p *Parser) parseGlobalStmt() Statement {
	t := p.next()
	n := &Global{Names: p.parseNameList()}
	p.finish(n, t.Span.Start)
	return n
}

func (p *Parser) parseNonlocalStmt() Statement {
	t := p.next()
	p.requireFeature(FeatureNonlocal, t.Span)
	n := &Nonlocal{Names: p.parseNameList()}
	p.finish(n, t.Span.Start)
	if p.ctx.atModuleLevel() {
		p.errorAt(n.Loc, "nonlocal declaration not allowed at module level")
	}
	return n
}

func (p *Parser) parseNameList() []string {
	var names []string
	for {
		name, ok := p.readName()
		if !ok {
			break
		}
		names = append(names, p.mangle(name))
		if !p.maybeEat(TokenComma) {
			break
		}
	}
	return names
}

// readName consumes a name token, reporting anything else.
func (p *Parser) readName() (string, bool) {
	if p.check(TokenName) {
		return p.next().Literal, true
	}
	p.reportUnexpected(p.peek())
	return "", false
}

// raise_stmt: 'raise' [test [',' test [',' test]] | test 'from' test]
func (p *Parser) parseRaiseStmt() Statement {
	t := p.next()
	n := &Raise{}
	if !neverTest(p.peek().Kind) {
		n.Type = p.parseTest()
		if p.maybeEat(TokenComma) {
			p.requireFeature(FeatureRaiseComma, p.token.Span)
			n.Value = p.parseTest()
			if p.maybeEat(TokenComma) {
				n.Traceback = p.parseTest()
			}
		} else if p.maybeEat(TokenFrom) {
			p.requireFeature(FeatureRaiseFrom, p.token.Span)
			n.Cause = p.parseTest()
		}
	}
	p.finish(n, t.Span.Start)
	return n
}

func (p *Parser) parseAssertStmt() Statement {
	t := p.next()
	n := &Assert{Test: p.parseTest()}
	if p.maybeEat(TokenComma) {
		n.Message = p.parseTest()
	}
	p.finish(n, t.Span.Start)
	return n
}

// import_name: 'import' dotted_as_name (',' dotted_as_name)*
func (p *Parser) parseImportStmt() Statement {
	t := p.next()
	n := &Import{ForceAbsolute: p.absoluteImports()}
	for {
		m := p.parseDottedName()
		as := ""
		if p.maybeEatAs() {
			as, _ = p.readName()
		}
		n.Modules = append(n.Modules, m)
		n.AsNames = append(n.AsNames, as)
		if !p.maybeEat(TokenComma) {
			break
		}
	}
	p.finish(n, t.Span.Start)
	return n
}

func (p *Parser) absoluteImports() bool {
	return p.version.Is3x() || p.future.Has(FutureAbsoluteImports)
}

func (p *Parser) parseDottedName() *DottedName {
	start := p.peek().Span.Start
	d := &DottedName{}
	if name, ok := p.readName(); ok {
		d.Names = append(d.Names, name)
		for p.maybeEat(TokenDot) {
			name, ok := p.readName()
			if !ok {
				break
			}
			d.Names = append(d.Names, name)
		}
	}
	p.finish(d, start)
	return d
}

// parseRelativeName parses the module of a from-import: leading dots and
// an optional dotted name. "..." counts as three dots.
func (p *Parser) parseRelativeName() *DottedName {
	start := p.peek().Span.Start
	d := &DottedName{}
	for {
		if p.maybeEat(TokenDot) {
			d.Dots++
		} else if p.maybeEat(TokenEllipsis) {
			d.Dots += 3
		} else {
			break
		}
	}
	if d.Dots == 0 || p.check(TokenName) {
		if name, ok := p.readName(); ok {
			d.Names = append(d.Names, name)
			for p.maybeEat(TokenDot) {
				name, ok := p.readName()
				if !ok {
					break
				}
				d.Names = append(d.Names, name)
			}
		}
	}
	if len(d.Names) == 0 && d.Dots == 0 {
		p.errorAt(Span{start, p.peek().Span.End}, "missing module name")
	}
	p.finish(d, start)
	return d
}

// import_from: 'from' module 'import' ('*' | '(' import_as_names ')' | import_as_names)
func (p *Parser) parseFromImportStmt() Statement {
	t := p.next()
	n := &FromImport{ForceAbsolute: p.absoluteImports()}
	n.Module = p.parseRelativeName()
	n.IsFuture = n.Module.Dots == 0 && len(n.Module.Names) == 1 && n.Module.Names[0] == "__future__"

	if !p.eat(TokenImport) {
		p.finish(n, t.Span.Start)
		return n
	}

	var starSpan Span
	var nameSpans []Span
	if p.maybeEat(TokenStar) {
		n.IsStar = true
		starSpan = p.token.Span
		if !p.ctx.atModuleLevel() && !p.feature(FeatureImportStarInFunction) {
			p.errorAt(starSpan, "import * only allowed at module level")
		}
	} else {
		paren := p.maybeEat(TokenLParen)
		for {
			if paren && p.check(TokenRParen) {
				break
			}
			nameStart := p.peek().Span
			name, ok := p.readName()
			if !ok {
				break
			}
			as := ""
			if p.maybeEatAs() {
				as, _ = p.readName()
			}
			n.Names = append(n.Names, name)
			n.AsNames = append(n.AsNames, as)
			nameSpans = append(nameSpans, nameStart)
			if !p.maybeEat(TokenComma) {
				break
			}
		}
		if paren {
			p.eat(TokenRParen)
		}
	}
	p.finish(n, t.Span.Start)

	if n.IsFuture {
		p.applyFuture(n, starSpan, nameSpans)
	}
	return n
}

// if_stmt: 'if' test ':' suite ('elif' test ':' suite)* ['else' ':' suite]
func (p *Parser) parseIfStmt() Statement {
	t := p.next()
	n := &If{}
	n.Tests = append(n.Tests, p.parseIfTest(t.Span.Start))
	for p.check(TokenElif) {
		elif := p.next()
		n.Tests = append(n.Tests, p.parseIfTest(elif.Span.Start))
	}
	if p.maybeEat(TokenElse) {
		n.Else, _ = p.parseSuite()
	}
	p.finish(n, t.Span.Start)
	return n
}

func (p *Parser) parseIfTest(start int) *IfTest {
	test := &IfTest{Test: p.parseTest()}
	test.Body, test.Header = p.parseSuite()
	p.finish(test, start)
	return test
}

func (p *Parser) parseLoopSuite() (Statement, int) {
	inLoop, inFinally := p.ctx.inLoop, p.ctx.inFinally
	p.ctx.inLoop = true
	p.ctx.inFinally = false
	body, header := p.parseSuite()
	p.ctx.inLoop, p.ctx.inFinally = inLoop, inFinally
	return body, header
}

func (p *Parser) parseWhileStmt() Statement {
	t := p.next()
	n := &While{Test: p.parseTest()}
	n.Body, n.Header = p.parseLoopSuite()
	if p.maybeEat(TokenElse) {
		n.Else, _ = p.parseSuite()
	}
	p.finish(n, t.Span.Start)
	return n
}

// for_stmt: 'for' exprlist 'in' testlist ':' suite ['else' ':' suite]
func (p *Parser) parseForStmt() Statement {
	t := p.next()
	n := &For{Target: p.parseTargetList()}
	p.checkAssign(n.Target)
	if p.eat(TokenIn) {
		n.Iterable = p.parseTestListAsExpr()
	} else {
		n.Iterable = p.errorExpr()
	}
	n.Body, n.Header = p.parseLoopSuite()
	if p.maybeEat(TokenElse) {
		n.Else, _ = p.parseSuite()
	}
	p.finish(n, t.Span.Start)
	return n
}

// try_stmt: 'try' ':' suite ((except_clause ':' suite)+ ['else' ':' suite] ['finally' ':' suite] | 'finally' ':' suite)
func (p *Parser) parseTryStmt() Statement {
	t := p.next()
	n := &Try{}
	n.Body, n.Header = p.parseSuite()

	if p.maybeEat(TokenFinally) {
		n.Finally = p.parseFinallySuite()
		p.finish(n, t.Span.Start)
		return n
	}

	var defaultHandler *ExceptHandler
	reported := false
	for p.check(TokenExcept) {
		h := p.parseExceptHandler()
		if defaultHandler != nil && !reported {
			p.errorAt(defaultHandler.Loc, "default 'except' must be last")
			reported = true
		}
		if h.Test == nil {
			defaultHandler = h
		}
		n.Handlers = append(n.Handlers, h)
	}
	if len(n.Handlers) == 0 {
		p.reportUnexpected(p.peek())
	}
	if p.maybeEat(TokenElse) {
		n.Else, _ = p.parseSuite()
	}
	if p.maybeEat(TokenFinally) {
		n.Finally = p.parseFinallySuite()
	}
	p.finish(n, t.Span.Start)
	return n
}

func (p *Parser) parseFinallySuite() Statement {
	inFinally := p.ctx.inFinally
	p.ctx.inFinally = true
	body, _ := p.parseSuite()
	p.ctx.inFinally = inFinally
	return body
}

// except_clause: 'except' [test [('as' | ',') test]]
func (p *Parser) parseExceptHandler() *ExceptHandler {
	t := p.next()
	h := &ExceptHandler{}
	if !p.check(TokenColon) {
		h.Test = p.parseTest()
		switch {
		case p.maybeEat(TokenComma):
			p.requireFeature(FeatureExceptComma, p.token.Span)
			h.Target = p.parseTest()
			p.checkAssign(h.Target)
		case p.maybeEatAs():
			p.requireFeature(FeatureExceptAs, p.token.Span)
			if p.version.Is3x() {
				start := p.peek().Span.Start
				if name, ok := p.readName(); ok {
					target := &Name{Name: p.mangle(name)}
					p.finish(target, start)
					h.Target = target
				}
			} else {
				h.Target = p.parseTest()
				p.checkAssign(h.Target)
			}
		}
	}
	h.Body, h.Header = p.parseSuite()
	p.finish(h, t.Span.Start)
	return h
}

// with_stmt: 'with' with_item (',' with_item)* ':' suite
func (p *Parser) parseWithStmt() Statement {
	t := p.next()
	p.requireFeature(FeatureWithStatement, t.Span)
	n := &With{}
	for {
		start := p.peek().Span.Start
		item := &WithItem{Context: p.parseTest()}
		if p.maybeEatAs() {
			item.Target = p.parseExpr(0)
			p.checkAssign(item.Target)
		}
		p.finish(item, start)
		n.Items = append(n.Items, item)
		if !p.maybeEat(TokenComma) {
			break
		}
	}
	n.Body, n.Header = p.parseSuite()
	p.finish(n, t.Span.Start)
	return n
}

// decorated: decorator+ (classdef | funcdef)
func (p *Parser) parseDecorated() Statement {
	start := p.peek().Span.Start
	var decorators []Expression
	for p.maybeEat(TokenAt) {
		decorators = append(decorators, p.parseDecorator())
		p.eatNewLine()
	}

	switch p.peek().Kind {
	case TokenDef:
		stmt := p.parseFuncDef()
		if fn, ok := stmt.(*FunctionDef); ok {
			fn.attachDecorators(decorators, start)
		}
		return stmt
	case TokenClass:
		stmt := p.parseClassDef()
		if cls, ok := stmt.(*ClassDef); ok {
			p.requireFeature(FeatureClassDecorators, Span{start, cls.NameSpan.End})
			cls.attachDecorators(decorators, start)
		}
		return stmt
	}
	p.reportUnexpected(p.peek())
	e := &ErrorStmt{}
	if len(decorators) > 0 {
		e.Partial = decorators[0]
	}
	p.finish(e, start)
	return e
}

// decorator: '@' dotted_name [ '(' [arglist] ')' ]
func (p *Parser) parseDecorator() Expression {
	start := p.peek().Span.Start
	name, ok := p.readName()
	if !ok {
		return p.errorExpr()
	}
	var expr Expression = &Name{Name: p.mangle(name)}
	p.finish(expr.(*Name), start)
	for p.maybeEat(TokenDot) {
		member, ok := p.readName()
		if !ok {
			break
		}
		m := &Member{Target: expr, Name: p.mangle(member)}
		p.finish(m, start)
		expr = m
	}
	if p.maybeEat(TokenLParen) {
		call := &Call{Target: expr, Args: p.finishArgs()}
		p.finish(call, start)
		expr = call
	}
	return expr
}

// funcdef: 'def' NAME parameters ['->' test] ':' suite
func (p *Parser) parseFuncDef() Statement {
	t := p.next()
	nameSpan := p.peek().Span
	name, ok := p.readName()
	if !ok || !p.eat(TokenLParen) {
		return p.skipStatementFrom(t.Span.Start)
	}

	fn := &FunctionDef{Name: p.mangle(name), NameSpan: nameSpan}
	fn.Parameters = p.parseParameters(TokenRParen, true)
	p.eat(TokenRParen)
	fn.Header = p.token.Span.End
	if p.maybeEat(TokenArrow) {
		p.requireFeature(FeatureAnnotations, p.token.Span)
		fn.Returns = p.parseTest()
	}

	p.ctx.pushFunction(fn)
	saved := p.ctx.enterBody()
	body, _ := p.parseSuite()
	p.checkGeneratorReturns()
	if p.ctx.isGenerator {
		fn.IsGenerator = true
	}
	p.ctx.leaveBody(saved)
	p.ctx.popFunction()

	fn.Body = body
	p.finish(fn, t.Span.Start)
	return fn
}

// checkGeneratorReturns reports returns with a value in a generator for
// versions that do not allow them.
func (p *Parser) checkGeneratorReturns() {
	if !p.ctx.isGenerator || p.feature(FeatureReturnInGenerator) {
		return
	}
	for _, sp := range p.ctx.returnsWithValue {
		p.errorAt(sp, "'return' with argument inside generator")
	}
}

// skipStatementFrom abandons a malformed header, skipping to the end of
// the line and over an indented block that may follow.
func (p *Parser) skipStatementFrom(start int) Statement {
	for !p.check(TokenNewLine) && !p.check(TokenEOF) {
		p.next()
	}
	p.maybeEatNewLine()
	if p.check(TokenIndent) {
		depth := 0
		for !p.check(TokenEOF) {
			t := p.next()
			if t.Kind == TokenIndent {
				depth++
			} else if t.Kind == TokenDedent {
				depth--
				if depth == 0 {
					break
				}
			}
		}
	}
	e := &ErrorStmt{}
	p.finish(e, start)
	return e
}

// classdef: 'class' NAME ['(' [arglist] ')'] ':' suite
func (p *Parser) parseClassDef() Statement {
	t := p.next()
	nameSpan := p.peek().Span
	name, ok := p.readName()
	if !ok {
		return p.skipStatementFrom(t.Span.Start)
	}
	cls := &ClassDef{Name: p.mangle(name), NameSpan: nameSpan}
	if p.maybeEat(TokenLParen) {
		for _, arg := range p.finishArgs() {
			if arg.Name == "" {
				cls.Bases = append(cls.Bases, arg.Value)
				continue
			}
			p.requireFeature(FeatureClassKeywords, arg.Loc)
			cls.Keywords = append(cls.Keywords, arg)
		}
	}

	prefix := p.ctx.enterClass(name)
	p.ctx.pushFunction(nil)
	saved := p.ctx.enterBody()
	cls.Body, cls.Header = p.parseSuite()
	p.ctx.leaveBody(saved)
	p.ctx.popFunction()
	p.ctx.leaveClass(prefix)

	p.finish(cls, t.Span.Start)
	return cls
}

// parseSuite parses ':' followed by either a simple statement on the same
// line or an indented block. It also returns the offset just past the
// colon.
func (p *Parser) parseSuite() (Statement, int) {
	if !p.maybeEat(TokenColon) {
		p.reportUnexpected(p.peek())
		for !p.check(TokenColon) && !p.check(TokenNewLine) && !p.check(TokenEOF) {
			p.next()
		}
		if !p.maybeEat(TokenColon) {
			start := p.peek().Span.Start
			if p.maybeEatNewLine() && p.check(TokenIndent) {
				return p.parseBlock(start), start
			}
			e := &ErrorStmt{}
			e.Loc = Span{start, start}
			return e, start
		}
	}
	header := p.token.Span.End

	if !p.check(TokenNewLine) {
		return p.parseSimpleStmt(), header
	}
	start := p.peek().Span.Start
	p.next()
	for p.maybeEat(TokenNL) {
	}
	if !p.check(TokenIndent) {
		t := p.peek()
		if t.Kind == TokenEOF {
			p.reportUnexpected(t)
		} else {
			code := IndentationError
			if p.allowIncomplete && p.tokens.AtEOF() {
				code |= IncompleteStatement
			}
			p.addError("expected an indented block", t.Span.Start, t.Span.End, code)
		}
		e := &ErrorStmt{}
		e.Loc = Span{start, p.token.Span.End}
		return e, header
	}
	return p.parseBlock(start), header
}

// parseBlock parses INDENT stmt+ DEDENT.
func (p *Parser) parseBlock(start int) Statement {
	p.eat(TokenIndent)
	var stmts []Statement
	for !p.maybeEat(TokenDedent) {
		if p.check(TokenEOF) {
			p.reportUnexpected(p.peek())
			break
		}
		if p.maybeEat(TokenNL) {
			continue
		}
		progressed := p.mustProgress()
		stmts = append(stmts, p.parseStmt())
		progressed()
	}
	suite := &Suite{Statements: stmts}
	p.finish(suite, start)
	return suite
}

func (p *Parser) binaryOperator(k TokenKind) Operator {
	op := k.Operator()
	if op == OpDiv && p.feature(FeatureTrueDivision) {
		return OpTrueDiv
	}
	return op
}
