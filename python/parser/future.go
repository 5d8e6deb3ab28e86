package parser

// applyFuture validates a "from __future__ import" statement and switches
// on the features it names for the rest of the parse. Future imports are
// only accepted at the top of a module, after an optional docstring and
// other future imports.
func (p *Parser) applyFuture(n *FromImport, starSpan Span, nameSpans []Span) {
	if !p.ctx.fromFutureAllowed || !p.ctx.atModuleLevel() {
		p.errorAt(n.Loc, "from __future__ imports must occur at the beginning of the file")
	}
	if n.IsStar {
		p.errorAt(starSpan, "future statement does not support import *")
		return
	}
	for i, name := range n.Names {
		sp := n.Loc
		if i < len(nameSpans) {
			sp = nameSpans[i]
		}
		if name == "braces" {
			p.errorAt(sp, "not a chance")
			continue
		}
		f, ok := futureFeatures[name]
		if !ok || p.version < f.minimum {
			p.errorAt(sp, "future feature is not defined: "+name)
			continue
		}
		p.future |= f.option
	}
	p.tokens.SetFuture(p.future)
}
