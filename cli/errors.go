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

package cli

import (
	"fmt"
	"io"

	"github.com/aunkrig/zz-sub002/node"
)

// ErrorSink implements the propagation policy every tool shares: print
// every node-level error prefixed with its full nested path (so a user can
// narrow a --look-into or predicate rule to exclude it), then either
// re-raise (the default, aborting the walk) or, when KeepGoing is set,
// swallow it and remember that at least one error occurred so the host
// tool's exit code can reflect it.
type ErrorSink struct {
	Stderr    io.Writer
	KeepGoing bool

	occurred bool
}

// Handler builds the node.ExceptionHandler this sink backs.
func (s *ErrorSink) Handler() node.ExceptionHandler {
	report := func(path string, err error) {
		s.occurred = true
		fmt.Fprintf(s.Stderr, "%s: %s\n", path, err)
	}
	if s.KeepGoing {
		return node.KeepGoing(report)
	}
	return func(path string, err error) error {
		report(path, err)
		return err
	}
}

// Occurred reports whether any error was handled so far, regardless of
// whether KeepGoing suppressed it.
func (s *ErrorSink) Occurred() bool { return s.occurred }
