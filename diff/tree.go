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

package diff

import (
	"sort"

	"github.com/aunkrig/zz-sub002/nodepath"
)

// AbsentMode controls how a tree diff treats a path that exists on only one
// side of the comparison.
type AbsentMode uint8

const (
	// Report lists the path as purely added or deleted, without comparing
	// its content against anything.
	Report AbsentMode = iota
	// CompareWithEmpty diffs the present side's content against an empty
	// file, so every one of its lines shows up as a Difference.
	CompareWithEmpty
	// Ignore keeps the path in the result with no Differential and without
	// marking it added or deleted, so it is never reported as a difference.
	Ignore
)

// TreeEntry is one leaf in a tree diff, keyed by its nested path on each
// side (PathA/PathB can differ under an Equivalence pairing).
type TreeEntry struct {
	PathA, PathB string
	// Differential is nil when both sides' content is identical, or when
	// AbsentMode is Ignore and one side is missing.
	Differential *Differential
	// AddedOnly/DeletedOnly mark a path present on only one side when
	// AbsentMode is Report or CompareWithEmpty.
	AddedOnly, DeletedOnly bool
}

// Leaf is one file's path and content, as handed to TreeDiff by a caller
// that has already walked both trees.
type Leaf struct {
	Path  string
	Lines []string
}

// TreeDiff walks two sorted leaf sets in lock-step by path, classifying
// paths present on only one side per mode, and pairing the rest either by
// identical path or by an Equivalence rule when one is supplied.
func TreeDiff(a, b []Leaf, mode AbsentMode, pathEquivalence *nodepath.Equivalence, opts Options) []TreeEntry {
	sort.Slice(a, func(i, j int) bool { return a[i].Path < a[j].Path })
	sort.Slice(b, func(i, j int) bool { return b[i].Path < b[j].Path })

	bKey := make(map[string]int, len(b))
	bCanon := make(map[string]int, len(b))
	for i, leaf := range b {
		bKey[leaf.Path] = i
		if pathEquivalence != nil {
			if k, ok := pathEquivalence.Key("", leaf.Path); ok {
				bCanon[k] = i
			}
		}
	}

	var out []TreeEntry
	matched := make([]bool, len(b))

	for _, la := range a {
		bi, ok := bKey[la.Path]
		if !ok && pathEquivalence != nil {
			if k, keyOk := pathEquivalence.Key("", la.Path); keyOk {
				bi, ok = bCanon[k]
			}
		}
		if !ok {
			out = append(out, absentEntry(la.Path, "", true, mode, la.Lines, opts))
			continue
		}
		matched[bi] = true
		lb := b[bi]
		d := Diff(la.Lines, lb.Lines, withPaths(opts, la.Path, lb.Path))
		var dp *Differential
		if len(d.Diffs) > 0 {
			dp = &d
		}
		out = append(out, TreeEntry{PathA: la.Path, PathB: lb.Path, Differential: dp})
	}

	for i, lb := range b {
		if matched[i] {
			continue
		}
		out = append(out, absentEntry(lb.Path, "", false, mode, lb.Lines, opts))
	}

	return out
}

func withPaths(opts Options, pathA, pathB string) Options {
	opts.PathA, opts.PathB = pathA, pathB
	return opts
}

func absentEntry(path, other string, deletedOnly bool, mode AbsentMode, lines []string, opts Options) TreeEntry {
	switch mode {
	case Ignore:
		return TreeEntry{PathA: path, PathB: other}
	case CompareWithEmpty:
		var d Differential
		if deletedOnly {
			d = Diff(lines, nil, opts)
		} else {
			d = Diff(nil, lines, opts)
		}
		return TreeEntry{PathA: path, PathB: other, Differential: &d, DeletedOnly: deletedOnly, AddedOnly: !deletedOnly}
	default:
		return TreeEntry{PathA: path, PathB: other, DeletedOnly: deletedOnly, AddedOnly: !deletedOnly}
	}
}
