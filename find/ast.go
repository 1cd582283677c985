/*
 *  MIT License
 *
 *  Copyright (c) 2020 Nicolas JUHEL
 *
 *  Permission is hereby granted, free of charge, to any person obtaining a copy
 *  of this software and associated documentation files (the "Software"), to deal
 *  in the Software without restriction, including without limitation the rights
 *  to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *  copies of the Software, and to permit persons to whom the Software is
 *  furnished to do so, subject to the following conditions:
 *
 *  The above copyright notice and this permission notice shall be included in all
 *  copies or substantial portions of the Software.
 *
 *  THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *  IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *  FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *  AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *  LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *  OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *  SOFTWARE.
 *
 */

// Package find implements the predicate grammar evaluated once per
// enumerated node: tests (-name, -type, -size, ...) and actions (-print,
// -exec, -delete, ...) composed with comma, -o/-or, -a/-and and negation,
// short-circuited left to right the way find(1)'s own expression does.
package find

// Expr is one node of a parsed find expression. eval runs it against one
// enumerated node and reports whether the expression's value is true.
type Expr interface {
	eval(c *evalContext) (bool, error)
}

// commaExpr evaluates left for its side effects only, then returns right's
// value — the same semantics as the C comma operator, and as find(1)'s own
// ',' operator.
type commaExpr struct {
	left, right Expr
}

func (e *commaExpr) eval(c *evalContext) (bool, error) {
	if _, err := e.left.eval(c); err != nil {
		return false, err
	}
	return e.right.eval(c)
}

// orExpr short-circuits: once any operand is true, later operands are not
// evaluated at all (so actions after a -o that already matched don't run).
type orExpr struct {
	terms []Expr
}

func (e *orExpr) eval(c *evalContext) (bool, error) {
	for _, t := range e.terms {
		ok, err := t.eval(c)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// andExpr short-circuits: once any operand is false, later operands are
// not evaluated.
type andExpr struct {
	terms []Expr
}

func (e *andExpr) eval(c *evalContext) (bool, error) {
	for _, t := range e.terms {
		ok, err := t.eval(c)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

type notExpr struct {
	inner Expr
}

func (e *notExpr) eval(c *evalContext) (bool, error) {
	ok, err := e.inner.eval(c)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// testExpr wraps a pure predicate: a test never has side effects and never
// sets actionRan.
type testExpr struct {
	fn func(c *evalContext) (bool, error)
}

func (e *testExpr) eval(c *evalContext) (bool, error) {
	return e.fn(c)
}

// actionExpr wraps a side-effecting action. Running it marks the
// expression as having an action, which suppresses the implicit -print.
type actionExpr struct {
	fn func(c *evalContext) (bool, error)
}

func (e *actionExpr) eval(c *evalContext) (bool, error) {
	c.actionRan = true
	return e.fn(c)
}
