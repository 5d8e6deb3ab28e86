package parser

// targetProblem describes why e cannot be bound, or returns "" when it can.
// The result completes messages such as "can't assign to ...".
func targetProblem(e Expression) string {
	switch e := e.(type) {
	case *Call:
		return "function call"
	case *Constant:
		if e.Value == nil {
			return "None"
		}
		if _, ok := e.Value.(bool); ok {
			return "keyword"
		}
		return "literal"
	case *Dict, *Set, *DictComp, *SetComp:
		return "literal"
	case *Lambda:
		return "lambda"
	case *GeneratorExp:
		return "generator expression"
	case *ListComp:
		return "list comprehension"
	case *BinaryOp, *UnaryOp, *BoolOp, *Compare:
		return "operator"
	case *Conditional:
		return "conditional expression"
	case *Yield:
		return "yield expression"
	case *BackQuote:
		return "repr"
	case *Name:
		if e.Name == "None" {
			return "None"
		}
	}
	return ""
}

// checkAssign reports targets that cannot be assigned to. Tuples and lists
// are checked item by item and may hold at most one starred target.
func (p *Parser) checkAssign(e Expression) {
	switch e := e.(type) {
	case nil, *ErrorExpr:
		return
	case *Paren:
		p.checkAssign(e.Inner)
		return
	case *Tuple:
		p.checkSequenceTarget(e.Items, e.Loc)
		return
	case *List:
		p.checkSequenceTarget(e.Items, e.Loc)
		return
	case *Starred:
		p.checkAssign(e.Value)
		return
	}
	if problem := targetProblem(e); problem != "" {
		if problem == "None" {
			p.errorAt(e.Span(), "cannot assign to None")
			return
		}
		p.errorAt(e.Span(), "can't assign to "+problem)
	}
}

func (p *Parser) checkSequenceTarget(items []Expression, sp Span) {
	starred := 0
	for _, item := range items {
		if _, ok := item.(*Starred); ok {
			starred++
		}
		p.checkAssign(item)
	}
	if starred > 1 {
		p.errorAt(sp, "two starred expressions in assignment")
	}
}

// checkAugmentedTarget allows only names, attributes and subscripts.
func (p *Parser) checkAugmentedTarget(e Expression) {
	switch e := e.(type) {
	case *Name, *Member, *Index, *ErrorExpr:
		if n, ok := e.(*Name); ok && n.Name == "None" {
			p.errorAt(e.Span(), "cannot assign to None")
		}
		return
	case *Paren:
		p.checkAugmentedTarget(e.Inner)
		return
	case *Tuple, *List, *Starred:
		p.errorAt(e.Span(), "illegal expression for augmented assignment")
		return
	}
	p.checkAssign(e)
}

func (p *Parser) checkDelete(e Expression) {
	switch e := e.(type) {
	case nil, *ErrorExpr:
		return
	case *Paren:
		p.checkDelete(e.Inner)
		return
	case *Tuple:
		for _, item := range e.Items {
			p.checkDelete(item)
		}
		return
	case *List:
		for _, item := range e.Items {
			p.checkDelete(item)
		}
		return
	case *Starred:
		p.errorAt(e.Loc, "can't use starred expression here")
		return
	}
	if problem := targetProblem(e); problem != "" {
		p.errorAt(e.Span(), "can't delete "+problem)
	}
}

// checkNotStarred reports a starred expression used as a value.
func (p *Parser) checkNotStarred(e Expression) {
	var items []Expression
	switch e := e.(type) {
	case *Starred:
		items = []Expression{e}
	case *Tuple:
		if !e.Parenthesized {
			items = e.Items
		}
	}
	for _, item := range items {
		if s, ok := item.(*Starred); ok {
			p.errorAt(s.Loc, "can use starred expression only as assignment target")
		}
	}
}
