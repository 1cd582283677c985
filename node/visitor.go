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

// Visitor receives callbacks from Walk in deterministic child order. A
// non-nil return aborts the walk and is propagated to Walk's caller. In a
// parallel walk the callbacks are replayed from per-child buffers once every
// sibling branch has finished, so the walk stops at the failing replayed call
// rather than at the moment the node was first reached.
type Visitor interface {
	// OnDirectory is called for a filesystem directory, before any of its
	// children.
	OnDirectory(path string) error

	// OnArchive is called for a recognized archive or compression container
	// that is being descended into, before any of its children. format is
	// the archive.Algorithm or compress.Algorithm name that was matched.
	OnArchive(path string, format string) error

	// OnEntry is called for a leaf found inside a container (an archive
	// entry, or the single decompressed stream of a compression wrapper).
	OnEntry(n Node) error

	// OnFile is called for a plain filesystem leaf, one not reached through
	// any container crossing.
	OnFile(n Node) error
}

// ExceptionHandler receives I/O or decode errors encountered while probing
// or reading a node, tagged with its full nested path. Returning a non-nil
// error aborts the walk; returning nil swallows the error and lets the walk
// continue with the next sibling.
type ExceptionHandler func(path string, err error) error

// AbortOnError is the default ExceptionHandler: it re-raises every error,
// aborting the walk.
func AbortOnError(_ string, err error) error { return err }

// KeepGoing builds an ExceptionHandler that swallows every error (after
// passing it to report, if non-nil) and lets the walk continue. report is
// typically the host tool's error sink.
func KeepGoing(report func(path string, err error)) ExceptionHandler {
	return func(path string, err error) error {
		if report != nil {
			report(path, err)
		}
		return nil
	}
}
