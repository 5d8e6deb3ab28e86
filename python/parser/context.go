package parser

import "strings"

// parseContext is the grammar state threaded through productions: what
// encloses the current position and what the current body has seen so far.
type parseContext struct {
	functions     []*FunctionDef
	classDepth    int
	privatePrefix string

	inLoop           bool
	inFinally        bool
	isGenerator      bool
	returnsWithValue []Span

	fromFutureAllowed bool
	depth             int
	depthReported     bool
}

// bodyState is the part of the context that is local to a function or
// class body.
type bodyState struct {
	inLoop           bool
	inFinally        bool
	isGenerator      bool
	returnsWithValue []Span
}

func (c *parseContext) enterBody() bodyState {
	saved := bodyState{
		inLoop:           c.inLoop,
		inFinally:        c.inFinally,
		isGenerator:      c.isGenerator,
		returnsWithValue: c.returnsWithValue,
	}
	c.inLoop = false
	c.inFinally = false
	c.isGenerator = false
	c.returnsWithValue = nil
	return saved
}

func (c *parseContext) leaveBody(s bodyState) {
	c.inLoop = s.inLoop
	c.inFinally = s.inFinally
	c.isGenerator = s.isGenerator
	c.returnsWithValue = s.returnsWithValue
}

func (c *parseContext) currentFunction() *FunctionDef {
	if len(c.functions) == 0 {
		return nil
	}
	return c.functions[len(c.functions)-1]
}

func (c *parseContext) pushFunction(f *FunctionDef) {
	c.functions = append(c.functions, f)
}

func (c *parseContext) popFunction() {
	if len(c.functions) > 0 {
		c.functions = c.functions[:len(c.functions)-1]
	}
}

// enterClass installs the mangling prefix for a class body and returns the
// prefix to restore afterwards.
func (c *parseContext) enterClass(name string) string {
	saved := c.privatePrefix
	c.privatePrefix = strings.TrimLeft(name, "_")
	c.classDepth++
	return saved
}

func (c *parseContext) leaveClass(saved string) {
	c.privatePrefix = saved
	c.classDepth--
}

// mangle applies private name mangling: inside class C, "__x" becomes
// "_C__x" unless it also ends with two underscores.
func (c *parseContext) mangle(name string) string {
	if c.privatePrefix == "" || !strings.HasPrefix(name, "__") || strings.HasSuffix(name, "__") {
		return name
	}
	return "_" + c.privatePrefix + name
}

func (c *parseContext) atModuleLevel() bool {
	return len(c.functions) == 0 && c.classDepth == 0
}
