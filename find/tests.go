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
	"io/fs"
	"time"

	"github.com/aunkrig/zz-sub002/node"
	"github.com/aunkrig/zz-sub002/nodepath"
)

func testTrue() Expr {
	return &testExpr{fn: func(*evalContext) (bool, error) { return true, nil }}
}

func testFalse() Expr {
	return &testExpr{fn: func(*evalContext) (bool, error) { return false, nil }}
}

func testName(g nodepath.Glob) Expr {
	return &testExpr{fn: func(c *evalContext) (bool, error) {
		return g.Match(c.n.Name), nil
	}}
}

func testPath(g nodepath.Glob) Expr {
	return &testExpr{fn: func(c *evalContext) (bool, error) {
		return g.Match(c.n.Path), nil
	}}
}

// testType implements -type T. Recognized codes: 'f' (leaf), 'd'
// (directory), 'a' (archive or compression container). 'l' (symlink) is
// only detectable for a real filesystem path, via its Lstat mode bits;
// inside an archive, a format's own entry metadata rarely distinguishes a
// symlink from a regular entry, so it reports false there rather than
// guessing.
func testType(code byte) Expr {
	return &testExpr{fn: func(c *evalContext) (bool, error) {
		switch code {
		case 'f':
			return c.n.Kind == node.Leaf, nil
		case 'd':
			return c.n.Kind == node.Directory, nil
		case 'a':
			return c.n.Kind == node.ArchiveContainer, nil
		case 'l':
			fi, err := c.fileInfo()
			if err != nil {
				return false, nil
			}
			return fi.Mode()&fs.ModeSymlink != 0, nil
		default:
			return false, ErrorUnknownTest.Error()
		}
	}}
}

func testReadable() Expr {
	return &testExpr{fn: func(c *evalContext) (bool, error) {
		fi, err := c.fileInfo()
		if err != nil {
			return false, nil
		}
		return fi.Mode().Perm()&0o444 != 0, nil
	}}
}

func testWritable() Expr {
	return &testExpr{fn: func(c *evalContext) (bool, error) {
		fi, err := c.fileInfo()
		if err != nil {
			return false, nil
		}
		return fi.Mode().Perm()&0o222 != 0, nil
	}}
}

func testExecutable() Expr {
	return &testExpr{fn: func(c *evalContext) (bool, error) {
		fi, err := c.fileInfo()
		if err != nil {
			return false, nil
		}
		return fi.Mode().Perm()&0o111 != 0, nil
	}}
}

func testSize(n numericArg) Expr {
	return &testExpr{fn: func(c *evalContext) (bool, error) {
		sz, err := c.size()
		if err != nil {
			return false, err
		}
		return n.match(sz), nil
	}}
}

func testMtime(n numericArg) Expr {
	return &testExpr{fn: func(c *evalContext) (bool, error) {
		mt, ok := c.modTime()
		if !ok {
			return false, nil
		}
		days := int64(c.eval.now().Sub(mt) / (24 * time.Hour))
		return n.match(days), nil
	}}
}

func testMmin(n numericArg) Expr {
	return &testExpr{fn: func(c *evalContext) (bool, error) {
		mt, ok := c.modTime()
		if !ok {
			return false, nil
		}
		minutes := int64(c.eval.now().Sub(mt) / time.Minute)
		return n.match(minutes), nil
	}}
}
