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
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/aunkrig/zz-sub002/node"
	"github.com/aunkrig/zz-sub002/nodepath"
)

// Run walks root and evaluates expr against every node reached: real
// filesystem directories (evaluated and descended into by this package
// directly, so -prune can actually stop descent — node.Walk's own Visitor
// contract has no such signal), and, at every regular file, delegates to
// node.Walk for compression/archive-aware descent into that one file.
//
// When hasAction is false, an implicit -print is AND-ed onto expr, per
// spec.md §4.6.
func Run(ctx context.Context, root string, expr Expr, hasAction bool, e *Evaluator, opts node.Options) error {
	if expr == nil {
		expr = testTrue()
	}
	effective := expr
	if !hasAction {
		effective = &andExpr{terms: []Expr{expr, actionPrint()}}
	}
	return e.walkDir(ctx, root, root, effective, opts)
}

func (e *Evaluator) walkDir(ctx context.Context, path, fsPath string, expr Expr, opts node.Options) error {
	if err := ctx.Err(); err != nil {
		return ErrorInterrupted.Error(err)
	}
	if !opts.Predicate.Match(path) {
		return nil
	}

	fi, err := os.Lstat(fsPath)
	if err != nil {
		return err
	}

	if !fi.IsDir() {
		return node.Walk(ctx, fsPath, &visitor{e: e, expr: expr}, opts)
	}

	c := newEvalContext(e, node.Node{Path: path, Name: nodepath.Base(path), Kind: node.Directory, Size: -1})
	if _, err := expr.eval(c); err != nil {
		return err
	}
	if c.pruned {
		return nil
	}

	entries, err := os.ReadDir(fsPath)
	if err != nil {
		return err
	}
	names := make([]string, len(entries))
	for i, de := range entries {
		names[i] = de.Name()
	}
	sort.Strings(names)

	for _, name := range names {
		if err := e.walkDir(ctx, nodepath.Join(path, name), filepath.Join(fsPath, name), expr, opts); err != nil {
			return err
		}
	}

	// -delete on a directory runs after its children have been visited
	// (and possibly deleted themselves), the same post-order dependency
	// find(1) enforces by implicitly turning on -depth whenever -delete
	// is used.
	if c.deleted {
		return os.Remove(fsPath)
	}
	return nil
}

// visitor adapts node.Walk's callbacks, reached once walkDir hands off to
// a single real file, into expr evaluations. -prune has no effect inside a
// container: an archive's membership isn't something this walk can skip
// around, only describe.
type visitor struct {
	e    *Evaluator
	expr Expr
}

func (v *visitor) OnDirectory(path string) error { return nil }

func (v *visitor) OnArchive(path, format string) error {
	c := newEvalContext(v.e, node.Node{Path: path, Name: nodepath.Base(path), Kind: node.ArchiveContainer, Size: -1, Format: format})
	if _, err := v.expr.eval(c); err != nil {
		return err
	}
	// Only a real, top-level archive file is an actual filesystem path
	// that -delete can remove; an archive nested inside another container
	// is described, not independently deletable.
	if c.deleted && c.real {
		return os.Remove(path)
	}
	return nil
}

func (v *visitor) OnEntry(n node.Node) error {
	c := newEvalContext(v.e, n)
	_, err := v.expr.eval(c)
	if err == nil && c.deleted {
		err = ErrorNotSupported.Error()
	}
	return err
}

func (v *visitor) OnFile(n node.Node) error {
	c := newEvalContext(v.e, n)
	_, err := v.expr.eval(c)
	if err != nil {
		return err
	}
	if c.deleted {
		return os.Remove(n.Path)
	}
	return nil
}
