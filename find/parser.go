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

package find

import (
	"fmt"

	"github.com/aunkrig/zz-sub002/nodepath"
)

// Parse compiles a find expression's already-tokenized argument list (the
// same shape as argv past the search roots) per the grammar:
//
//	expr  := comma
//	comma := or (',' comma)?
//	or    := and (('-o'|'-or'|'||') or)?
//	and   := prim (('-a'|'-and'|'&&')? and)?
//	prim  := '(' comma ')' | ('!'|'-not') prim | test | action
//
// hasAction reports whether the expression contains at least one action;
// Run uses this to decide whether an implicit -print applies.
func Parse(args []string) (expr Expr, hasAction bool, err error) {
	p := &parser{toks: args}
	expr, err = p.comma()
	if err != nil {
		return nil, false, err
	}
	if !p.atEnd() {
		return nil, false, ErrorParseExpression.Error(fmt.Errorf("unexpected token %q", p.toks[p.i]))
	}
	return expr, p.hasAction, nil
}

type parser struct {
	toks      []string
	i         int
	hasAction bool
}

func (p *parser) atEnd() bool { return p.i >= len(p.toks) }

func (p *parser) peek() (string, bool) {
	if p.atEnd() {
		return "", false
	}
	return p.toks[p.i], true
}

func (p *parser) next() (string, error) {
	t, ok := p.peek()
	if !ok {
		return "", ErrorParseExpression.Error(fmt.Errorf("unexpected end of expression"))
	}
	p.i++
	return t, nil
}

// takeUntil collects tokens up to (and consuming) a literal ";" terminator,
// for the -exec/-pipe/-printf/-disassemble argument lists.
func (p *parser) takeUntil(terminator string) ([]string, error) {
	var out []string
	for {
		t, err := p.next()
		if err != nil {
			return nil, ErrorUnterminatedAction.Error()
		}
		if t == terminator {
			return out, nil
		}
		out = append(out, t)
	}
}

func (p *parser) comma() (Expr, error) {
	left, err := p.or()
	if err != nil {
		return nil, err
	}
	if t, ok := p.peek(); ok && t == "," {
		p.i++
		right, err := p.comma()
		if err != nil {
			return nil, err
		}
		return &commaExpr{left: left, right: right}, nil
	}
	return left, nil
}

func isOrOp(t string) bool { return t == "-o" || t == "-or" || t == "||" }
func isAndOp(t string) bool { return t == "-a" || t == "-and" || t == "&&" }

func (p *parser) or() (Expr, error) {
	terms := []Expr{}
	first, err := p.and()
	if err != nil {
		return nil, err
	}
	terms = append(terms, first)

	for {
		t, ok := p.peek()
		if !ok || !isOrOp(t) {
			break
		}
		p.i++
		next, err := p.and()
		if err != nil {
			return nil, err
		}
		terms = append(terms, next)
	}

	if len(terms) == 1 {
		return terms[0], nil
	}
	return &orExpr{terms: terms}, nil
}

// stopsAnd reports whether t closes off the current 'and' chain: a
// closing paren, a comma, or an explicit -o/-or/|| operator.
func stopsAnd(t string) bool {
	return t == ")" || t == "," || isOrOp(t)
}

func (p *parser) and() (Expr, error) {
	terms := []Expr{}
	first, err := p.prim()
	if err != nil {
		return nil, err
	}
	terms = append(terms, first)

	for {
		t, ok := p.peek()
		if !ok || stopsAnd(t) {
			break
		}
		if isAndOp(t) {
			p.i++
		}
		next, err := p.prim()
		if err != nil {
			return nil, err
		}
		terms = append(terms, next)
	}

	if len(terms) == 1 {
		return terms[0], nil
	}
	return &andExpr{terms: terms}, nil
}

func (p *parser) prim() (Expr, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}

	switch t {
	case "(":
		inner, err := p.comma()
		if err != nil {
			return nil, err
		}
		closer, err := p.next()
		if err != nil || closer != ")" {
			return nil, ErrorParseExpression.Error(fmt.Errorf("missing closing ')'"))
		}
		return inner, nil

	case "!", "-not":
		inner, err := p.prim()
		if err != nil {
			return nil, err
		}
		return &notExpr{inner: inner}, nil

	case "-true":
		return testTrue(), nil
	case "-false":
		return testFalse(), nil
	case "-readable":
		return testReadable(), nil
	case "-writable":
		return testWritable(), nil
	case "-executable":
		return testExecutable(), nil

	case "-name", "-path":
		arg, err := p.next()
		if err != nil {
			return nil, err
		}
		g, err := nodepath.Parse(arg)
		if err != nil {
			return nil, err
		}
		if t == "-name" {
			return testName(g), nil
		}
		return testPath(g), nil

	case "-type":
		arg, err := p.next()
		if err != nil {
			return nil, err
		}
		if len(arg) != 1 {
			return nil, ErrorParseExpression.Error(fmt.Errorf("-type wants a single type code, got %q", arg))
		}
		return testType(arg[0]), nil

	case "-size", "-mtime", "-mmin":
		arg, err := p.next()
		if err != nil {
			return nil, err
		}
		n, err := parseNumeric(arg)
		if err != nil {
			return nil, err
		}
		switch t {
		case "-size":
			return testSize(n), nil
		case "-mtime":
			return testMtime(n), nil
		default:
			return testMmin(n), nil
		}

	case "-print":
		p.hasAction = true
		return actionPrint(), nil
	case "-cat":
		p.hasAction = true
		return actionCat(), nil
	case "-ls":
		p.hasAction = true
		return actionLs(), nil
	case "-prune":
		p.hasAction = true
		return actionPrune(), nil
	case "-delete":
		p.hasAction = true
		return actionDelete(), nil

	case "-echo":
		arg, err := p.next()
		if err != nil {
			return nil, err
		}
		p.hasAction = true
		return actionEcho(arg), nil

	case "-digest", "-checksum":
		arg, err := p.next()
		if err != nil {
			return nil, err
		}
		p.hasAction = true
		if t == "-digest" {
			return actionDigest(arg), nil
		}
		return actionChecksum(arg), nil

	case "-printf":
		format, err := p.next()
		if err != nil {
			return nil, err
		}
		args, err := p.takeUntil(";")
		if err != nil {
			return nil, err
		}
		p.hasAction = true
		return actionPrintf(format, args), nil

	case "-disassemble":
		args, err := p.takeUntil(";")
		if err != nil {
			return nil, err
		}
		p.hasAction = true
		return actionDisassemble(args), nil

	case "-exec", "-pipe":
		cmd, err := p.next()
		if err != nil {
			return nil, err
		}
		args, err := p.takeUntil(";")
		if err != nil {
			return nil, err
		}
		p.hasAction = true
		if t == "-exec" {
			return actionExec(cmd, args), nil
		}
		return actionPipe(cmd, args), nil

	case "-copy":
		next, err := p.next()
		if err != nil {
			return nil, err
		}
		archiveLayout := false
		dir := next
		if next == "-a" {
			archiveLayout = true
			dir, err = p.next()
			if err != nil {
				return nil, err
			}
		}
		p.hasAction = true
		return actionCopy(dir, archiveLayout), nil

	default:
		return nil, ErrorParseExpression.Error(fmt.Errorf("unknown test or action %q", t))
	}
}
