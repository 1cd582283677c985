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
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/aunkrig/zz-sub002/node"
)

// Disassembler textualizes leaf content for the -disassemble action. The
// default returns ErrorNotSupported: this module carries no bytecode
// disassembler of its own, only the pluggable hook.
type Disassembler func(path string, content []byte) (string, error)

func noopDisassembler(string, []byte) (string, error) {
	return "", ErrorNotSupported.Error()
}

// Runner executes an external command for -exec/-pipe. The default uses
// os/exec.
type Runner func(ctx *evalContext, name string, args []string, stdin []byte, capture bool) ([]byte, error)

// Evaluator runs one parsed Expr over every node a walk produces, wiring in
// the host tool's output sink and the pluggable hooks actions need.
type Evaluator struct {
	// Stdout receives -print/-echo/-printf/-ls/-cat/-pipe output.
	Stdout io.Writer
	// Stderr receives -exec/-pipe command stderr.
	Stderr io.Writer
	// Disassemble backs -disassemble; nil selects the no-op default.
	Disassemble Disassembler
	// Run backs -exec/-pipe; nil selects an os/exec-backed default.
	Run Runner
	// Now is used to compute -mtime/-mmin ages; the zero value selects
	// time.Now at evaluation time.
	Now time.Time
}

func (e *Evaluator) disassembler() Disassembler {
	if e.Disassemble != nil {
		return e.Disassemble
	}
	return noopDisassembler
}

func (e *Evaluator) runner() Runner {
	if e.Run != nil {
		return e.Run
	}
	return runExternal
}

func (e *Evaluator) now() time.Time {
	if e.Now.IsZero() {
		return time.Now()
	}
	return e.Now
}

// evalContext carries the per-node mutable state one Expr.eval call needs:
// the node being tested, lazily-materialized content and filesystem info,
// and the three signals an action can raise (it ran at all, it asked for
// pruning, it asked for deletion).
type evalContext struct {
	eval *Evaluator

	n    node.Node
	real bool // true when n.Path names an actual, stat-able filesystem path

	actionRan bool
	pruned    bool
	deleted   bool

	content    []byte
	contentErr error
	contentSet bool

	info    fs.FileInfo
	infoErr error
	infoSet bool
}

func newEvalContext(ev *Evaluator, n node.Node) *evalContext {
	return &evalContext{eval: ev, n: n, real: !strings.ContainsAny(n.Path, "!%")}
}

// content lazily reads this node's full bytes via n.Open. A node without
// an Open func (a directory) yields ErrorNotSupported; the result is
// computed once and cached.
func (c *evalContext) content() ([]byte, error) {
	if c.contentSet {
		return c.content, c.contentErr
	}
	c.contentSet = true

	if c.n.Open == nil {
		c.contentErr = ErrorNotSupported.Error()
		return nil, c.contentErr
	}

	rc, err := c.n.Open()
	if err != nil {
		c.contentErr = err
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	c.content, c.contentErr = io.ReadAll(rc)
	return c.content, c.contentErr
}

// size reports this node's byte length, from the node's own Size field
// when known, falling back to reading the full content otherwise (an
// archive entry's framing rarely carries a usable size up front).
func (c *evalContext) size() (int64, error) {
	if c.n.Size >= 0 {
		return c.n.Size, nil
	}
	b, err := c.content()
	if err != nil {
		return 0, err
	}
	return int64(len(b)), nil
}

// fileInfo lazily stats this node's real filesystem path. Nodes reached
// through an archive or compression boundary (real is false) have no
// filesystem permission bits at all, so fileInfo reports os.ErrNotExist
// for them rather than guessing.
func (c *evalContext) fileInfo() (fs.FileInfo, error) {
	if c.infoSet {
		return c.info, c.infoErr
	}
	c.infoSet = true

	if !c.real {
		c.infoErr = os.ErrNotExist
		return nil, c.infoErr
	}

	c.info, c.infoErr = os.Lstat(c.n.Path)
	return c.info, c.infoErr
}

// modTime reports this node's modification time, from the node itself
// when the producing format supplied one, else from a filesystem stat.
func (c *evalContext) modTime() (time.Time, bool) {
	if c.n.HasModTime {
		return c.n.ModTime, true
	}
	fi, err := c.fileInfo()
	if err != nil {
		return time.Time{}, false
	}
	return fi.ModTime(), true
}
