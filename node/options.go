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

package node

import (
	"runtime"

	"github.com/aunkrig/zz-sub002/nodepath"
)

// defaultMaxDepth bounds container-crossing recursion so a maliciously or
// accidentally self-referential archive chain cannot recurse forever.
const defaultMaxDepth = 64

// Options configures one Walk call.
type Options struct {
	// Predicate restricts which full paths are visited at all; zero value
	// (an empty Glob) visits everything. Exclusions use the glob's own
	// '~'-prefixed alternatives.
	Predicate nodepath.Glob

	// LookInto decides, for a recognized container, whether it is descended
	// into (Path/Format glob matches) or visited as a leaf (it doesn't).
	// The zero value matches every format against every path, i.e. "always
	// descend", since an empty Glob.Match always returns true.
	LookInto nodepath.LookInto

	// NoSort disables lexicographic ordering of directory children, for
	// callers that only care about throughput.
	NoSort bool

	// Workers bounds directory fan-out concurrency. Zero or less selects
	// runtime.GOMAXPROCS(0); one means sequential traversal, guaranteed
	// byte-identical to any parallel run.
	Workers int

	// MaxDepth bounds container-crossing recursion. Zero selects
	// defaultMaxDepth.
	MaxDepth int

	// OnError is consulted for every I/O or decode error; nil selects
	// AbortOnError.
	OnError ExceptionHandler
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return defaultMaxDepth
	}
	return o.MaxDepth
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Workers
}

func (o Options) onError() ExceptionHandler {
	if o.OnError == nil {
		return AbortOnError
	}
	return o.OnError
}

func (o Options) included(path string) bool {
	return o.Predicate.Match(path)
}
