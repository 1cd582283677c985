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

// Package transform implements the contents-transformation pipeline at the
// core of zzpatch: given a nested path and a byte stream, it recognizes
// whether the stream is a leaf, a compressed wrapper or an archive, and
// rewrites it accordingly, recursing through every container boundary it
// crosses.
package transform

import (
	"regexp"

	"github.com/aunkrig/zz-sub002/diff"
	"github.com/aunkrig/zz-sub002/format/compress"
	"github.com/aunkrig/zz-sub002/node"
	"github.com/aunkrig/zz-sub002/nodepath"
)

// Condition gates one application of a substitute rule. path is the nested
// path of the leaf being rewritten, match is the text that matched, count
// is the 1-based index of this match within the current leaf.
type Condition func(path, match string, count int) bool

// Always is the ALWAYS condition: every match is substituted.
func Always(string, string, int) bool { return true }

// LeafKind tags which of the leaf transformer kinds a LeafRule runs.
type LeafKind uint8

const (
	NoOp LeafKind = iota
	Substitute
	Patch
	Update
	RenameLeaf
)

// SubstituteRule is a regex/replacement leaf transformation. Regexp should
// normally be compiled with the multiline flag (CompileSubstitute does
// this); Replacement may use regexp back-reference syntax ($1, ${name}).
type SubstituteRule struct {
	Regexp                    *regexp.Regexp
	Replacement               string
	Condition                 Condition
	CheckBeforeTransformation bool
}

// CompileSubstitute compiles pattern in multiline mode, the default the
// substitute semantics require so that '^'/'$' bind to individual lines of
// the decoded text rather than the whole leaf.
func CompileSubstitute(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("(?m)" + pattern)
}

// LeafRule is one entry of the ordered leaf transformer chain. Rules whose
// Predicate matches a leaf's nested path run in declaration order, each
// one's output feeding the next one's input.
type LeafRule struct {
	Predicate nodepath.Glob
	Kind      LeafKind

	// Substitute fields, used when Kind == Substitute.
	Substitute SubstituteRule

	// Patch fields, used when Kind == Patch.
	Patch diff.Differential

	// Source is the external file behind Update (replace contents wholesale).
	Source node.Opener

	// NewName computes a new entry name from the current one when Kind ==
	// RenameLeaf. It never touches the leaf's bytes, only the name an
	// enclosing archive writes the entry back under.
	NewName func(name string) string
}

// RemoveRule drops a matching archive entry entirely, before rename or
// recursion is considered.
type RemoveRule struct {
	Predicate nodepath.Glob
}

// AddRule inserts a new entry into every archive whose own nested path
// matches Target, after all of that archive's input entries have been
// processed. When Rules is non-nil, Source's content is itself run through
// Transform with those rules before being written, so an addition can be
// parameterized the same way an existing entry can be rewritten.
type AddRule struct {
	Target nodepath.Glob
	Name   string
	Source node.Opener
	Rules  *Rules
}

// Rules bundles every rule list one Transform call consults.
type Rules struct {
	Leaf   []LeafRule
	Remove []RemoveRule
	Add    []AddRule
}

// Options configures details of one Transform call that are not rule data:
// text decoding and an optional override of the compression codec used to
// re-encode a compressed stream.
type Options struct {
	// Charset names the text encoding substitute rules decode against.
	// Only "" (the platform default) and "utf-8" are supported: no charset
	// conversion library appears anywhere in this module's dependency
	// set, and Go's native string type is already a UTF-8 byte sequence,
	// so there is nothing to convert for the one encoding that is
	// supported.
	Charset string

	// CompressionOverride replaces the compression codec used to re-encode
	// a compressed stream on output. nil means "same algorithm as the
	// input", matching the spec's default; compress.None re-encodes as a
	// plain, uncompressed stream.
	CompressionOverride *compress.Algorithm
}
