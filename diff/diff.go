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

// Package diff computes and renders line-level differences between two texts,
// in the traditional, context and unified GNU diff dialects, and applies a
// parsed Differential back onto a text to reconstruct the other side.
package diff

import (
	"fmt"

	"github.com/aunkrig/zz-sub002/nodepath"
)

// Difference is one contiguous change between two line sequences. DelStart/
// DelEnd index into the left (A) side, AddStart/AddEnd into the right (B)
// side; -1 for both Start and End on one side means that side is empty (a
// pure addition or pure deletion).
type Difference struct {
	DelStart, DelEnd int
	AddStart, AddEnd int
}

// Kind classifies a Difference the way the traditional dialect's verb does.
func (d Difference) Kind() byte {
	switch {
	case d.DelStart < 0:
		return 'a'
	case d.AddStart < 0:
		return 'd'
	default:
		return 'c'
	}
}

// Differential is the ordered list of Differences between two line
// sequences, together with the line contents needed to render or reapply
// them (A and B are the full original line slices; Differences only ever
// reference them by index). HasContext is true when A/B are fully populated
// at every index, including the unchanged gaps between Differences — true
// for a Differential produced by Diff; false for one parsed from any of the
// three dialects, which only capture a bounded window around each change,
// so ApplyTo does not verify the gaps there and trusts line numbers instead.
type Differential struct {
	A, B       []string
	Diffs      []Difference
	HasContext bool
}

// Comparator decides whether two lines, found at lineA/lineB (0-based line
// numbers within their respective texts), are equal for diffing purposes.
// path is the nested path the text came from, used to select per-path
// line-equivalence rules.
type Comparator func(path string, lineA int, a string, lineB int, b string) bool

// Options configures Diff's line comparison semantics.
type Options struct {
	// LineEquivalence reduces a line to a canonical key before comparison;
	// the zero value performs no reduction.
	LineEquivalence []nodepath.Equivalence
	// IgnoreWhitespace collapses runs of whitespace to a single space
	// before comparison.
	IgnoreWhitespace bool
	// JavaTokenization re-tokenizes both sides as Java source and compares
	// token streams instead of raw text.
	JavaTokenization        bool
	IgnoreCStyleComments    bool
	IgnoreCPlusPlusComments bool
	IgnoreDocComments       bool
	// PathA/PathB are the nested paths the two texts came from, used to
	// select line-equivalence rules that are restricted by path glob.
	PathA, PathB string
}

func (o Options) normalize(s string) string {
	if o.JavaTokenization {
		return tokenizeJava(s, o.IgnoreCStyleComments, o.IgnoreCPlusPlusComments, o.IgnoreDocComments)
	}
	if o.IgnoreWhitespace {
		s = collapseWhitespace(s)
	}
	return s
}

func (o Options) equal(lineA int, a string, lineB int, b string) bool {
	for _, eq := range o.LineEquivalence {
		ka, oka := eq.Key(o.PathA, a)
		kb, okb := eq.Key(o.PathB, b)
		if oka || okb {
			return oka && okb && ka == kb
		}
	}
	return o.normalize(a) == o.normalize(b)
}

func collapseWhitespace(s string) string {
	var b []byte
	inWs := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || c == '\t' {
			if !inWs {
				b = append(b, ' ')
				inWs = true
			}
			continue
		}
		inWs = false
		b = append(b, c)
	}
	return string(b)
}

// Diff computes the Differential between two line sequences using longest
// common subsequence backtracking, the same algorithm GNU diff is built on.
func Diff(a, b []string, opts Options) Differential {
	n, m := len(a), len(b)

	// lcsLen[i][j] = length of the LCS of a[i:] and b[j:].
	lcsLen := make([][]int, n+1)
	for i := range lcsLen {
		lcsLen[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if opts.equal(i, a[i], j, b[j]) {
				lcsLen[i][j] = lcsLen[i+1][j+1] + 1
			} else if lcsLen[i+1][j] >= lcsLen[i][j+1] {
				lcsLen[i][j] = lcsLen[i+1][j]
			} else {
				lcsLen[i][j] = lcsLen[i][j+1]
			}
		}
	}

	var diffs []Difference
	i, j := 0, 0
	delStart, addStart := -1, -1

	flush := func(iEnd, jEnd int) {
		if delStart < 0 && addStart < 0 {
			return
		}
		d := Difference{DelStart: -1, DelEnd: -1, AddStart: -1, AddEnd: -1}
		if delStart >= 0 {
			d.DelStart, d.DelEnd = delStart, iEnd
		}
		if addStart >= 0 {
			d.AddStart, d.AddEnd = addStart, jEnd
		}
		diffs = append(diffs, d)
		delStart, addStart = -1, -1
	}

	for i < n && j < m {
		if opts.equal(i, a[i], j, b[j]) {
			flush(i, j)
			i++
			j++
			continue
		}
		if lcsLen[i+1][j] >= lcsLen[i][j+1] {
			if delStart < 0 {
				delStart = i
			}
			i++
		} else {
			if addStart < 0 {
				addStart = j
			}
			j++
		}
	}
	for i < n {
		if delStart < 0 {
			delStart = i
		}
		i++
	}
	for j < m {
		if addStart < 0 {
			addStart = j
		}
		j++
	}
	flush(i, j)

	return Differential{A: a, B: b, Diffs: diffs, HasContext: true}
}

// Patch reapplies d onto its recorded A, reconstructing B.
func Patch(d Differential) []string {
	out, _ := ApplyTo(d, d.A)
	return out
}

// ApplyTo reapplies d's Differences onto an arbitrary input line sequence,
// which must agree with d.A on every context (unchanged) line and every
// deleted line; this is what zzpatch uses to apply a parsed patch file to
// the real input. Returns ErrorPatchRejected, naming the offending 1-based
// input line number, on the first mismatch.
func ApplyTo(d Differential, input []string) ([]string, error) {
	var out []string
	cursor := 0

	checkRange := func(from, to int) error {
		for k := from; k < to; k++ {
			if k >= len(input) || k >= len(d.A) || input[k] != d.A[k] {
				return ErrorPatchRejected.Error(fmt.Errorf("line %d does not match patch context", k+1))
			}
		}
		return nil
	}
	// checkContext verifies an unchanged gap between hunks; skipped for a
	// parsed Differential (HasContext false), which does not hold the full
	// gap text to verify it against.
	checkContext := func(from, to int) error {
		if !d.HasContext {
			return nil
		}
		return checkRange(from, to)
	}

	// shift is the B index minus the A index at the cursor: the net number
	// of lines added by the Differences applied so far.
	shift := 0
	for _, diff := range d.Diffs {
		start := diff.DelStart
		if start < 0 {
			// pure addition: nothing is consumed from the input, it is
			// inserted at the A position its B position maps to.
			start = diff.AddStart - shift
		}
		if err := checkContext(cursor, start); err != nil {
			return nil, err
		}
		out = append(out, input[cursor:min(start, len(input))]...)
		cursor = start

		if diff.DelStart >= 0 {
			if err := checkRange(diff.DelStart, diff.DelEnd); err != nil {
				return nil, err
			}
			cursor = diff.DelEnd
			shift -= diff.DelEnd - diff.DelStart
		}
		if diff.AddStart >= 0 {
			out = append(out, d.B[diff.AddStart:diff.AddEnd]...)
			shift += diff.AddEnd - diff.AddStart
		}
	}
	tailEnd := len(d.A)
	if !d.HasContext {
		tailEnd = len(input)
	}
	if err := checkContext(cursor, tailEnd); err != nil {
		return nil, err
	}
	out = append(out, input[cursor:min(tailEnd, len(input))]...)

	return out, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
