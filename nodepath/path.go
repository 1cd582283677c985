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

package nodepath

import "strings"

const (
	DirSep  = '/'
	ArcSep  = '!'
	ZipSep  = '%'
	dirSepS = "/"
	arcSepS = "!"
	zipSepS = "%"
)

// Join appends a directory segment to a nested path.
func Join(base, name string) string {
	if base == "" {
		return name
	}
	return base + dirSepS + name
}

// JoinEntry appends an archive-entry crossing to a nested path.
func JoinEntry(base, name string) string {
	return base + arcSepS + name
}

// JoinCompression marks base as wrapped by a compression codec; the
// decompressed stream, if itself an archive, is followed by its own '!'.
func JoinCompression(base string) string {
	return base + zipSepS
}

// Segment is one element of a parsed nested path, tagged by the separator
// that preceded it (Kind is zero for the first segment, which has none).
type Segment struct {
	Kind byte // 0, DirSep, ArcSep or ZipSep
	Name string
}

// Parse splits a nested path into its separator-tagged segments. '/' binds
// tighter than '!' and '%': a segment run between container crossings may
// itself contain '/' and is emitted as one Segment per directory step.
func Parse(path string) []Segment {
	var (
		segs    []Segment
		cur     strings.Builder
		kind    byte
		started bool
	)

	flush := func(nextKind byte) {
		if !started && cur.Len() == 0 {
			return
		}
		segs = append(segs, Segment{Kind: kind, Name: cur.String()})
		cur.Reset()
		kind = nextKind
		started = true
	}

	for _, r := range path {
		switch r {
		case DirSep:
			flush(DirSep)
		case ArcSep:
			flush(ArcSep)
		case ZipSep:
			flush(ZipSep)
		default:
			started = true
			cur.WriteRune(r)
		}
	}
	if started {
		segs = append(segs, Segment{Kind: kind, Name: cur.String()})
	}

	return segs
}

// Base returns the final segment's name, the local name of the node the
// path refers to.
func Base(path string) string {
	segs := Parse(path)
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1].Name
}

// IsContainerCrossing reports whether path descends through at least one
// archive or compression boundary.
func IsContainerCrossing(path string) bool {
	return strings.ContainsAny(path, arcSepS+zipSepS)
}
