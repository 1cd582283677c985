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

package transform

import (
	"bytes"
	"fmt"

	"github.com/aunkrig/zz-sub002/diff"
)

// lineEnding is one input line plus the exact terminator it was found with,
// so a patch application can hand every retained line back with its
// original CR/LF/CRLF style intact.
type lineEnding struct {
	text   string
	ending string
}

// splitLines breaks data into lines without stripping their terminators
// from the record of what they were; the final line carries an empty
// ending when the file does not end with one.
func splitLines(data []byte) []lineEnding {
	var (
		lines []lineEnding
		s     = string(data)
		start = 0
	)

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			lines = append(lines, lineEnding{text: s[start:i], ending: "\n"})
			start = i + 1
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				lines = append(lines, lineEnding{text: s[start:i], ending: "\r\n"})
				i++
				start = i + 1
			} else {
				lines = append(lines, lineEnding{text: s[start:i], ending: "\r"})
				start = i + 1
			}
		}
	}
	if start < len(s) {
		lines = append(lines, lineEnding{text: s[start:], ending: ""})
	}

	return lines
}

func dominantEnding(lines []lineEnding) string {
	counts := map[string]int{}
	for _, l := range lines {
		if l.ending != "" {
			counts[l.ending]++
		}
	}
	best, bestN := "\n", 0
	for e, n := range counts {
		if n > bestN {
			best, bestN = e, n
		}
	}
	return best
}

// applyPatch reapplies d onto data, preserving each retained line's own
// terminator and giving every injected (ADDED) line the file's dominant
// terminator. This mirrors diff.ApplyTo's own context-check/splice walk
// (diff/diff.go) line for line, the one difference being that it carries a
// lineEnding alongside each string so line-ending style survives the
// splice; diff.ApplyTo itself only has strings to work with; duplicating
// its short traversal here is simpler than threading ending metadata back
// out of it after the fact.
func applyPatch(data []byte, d diff.Differential) ([]byte, error) {
	lines := splitLines(data)
	plain := make([]string, len(lines))
	for i, l := range lines {
		plain[i] = l.text
	}
	dominant := dominantEnding(lines)

	checkRange := func(from, to int) error {
		for k := from; k < to; k++ {
			if k >= len(plain) || k >= len(d.A) || plain[k] != d.A[k] {
				return ErrorPatchRejected.Error(fmt.Errorf("line %d does not match patch context", k+1))
			}
		}
		return nil
	}
	checkContext := func(from, to int) error {
		if !d.HasContext {
			return nil
		}
		return checkRange(from, to)
	}

	var out []lineEnding
	cursor := 0

	for _, entry := range d.Diffs {
		start := entry.DelStart
		if start < 0 {
			start = cursor
		}
		if err := checkContext(cursor, start); err != nil {
			return nil, err
		}
		out = append(out, lines[cursor:minInt(start, len(lines))]...)
		cursor = start

		if entry.DelStart >= 0 {
			if err := checkRange(entry.DelStart, entry.DelEnd); err != nil {
				return nil, err
			}
			cursor = entry.DelEnd
		}
		if entry.AddStart >= 0 {
			for _, s := range d.B[entry.AddStart:entry.AddEnd] {
				out = append(out, lineEnding{text: s, ending: dominant})
			}
		}
	}

	tailEnd := len(d.A)
	if !d.HasContext {
		tailEnd = len(plain)
	}
	if err := checkContext(cursor, tailEnd); err != nil {
		return nil, err
	}
	out = append(out, lines[cursor:minInt(tailEnd, len(lines))]...)

	var buf bytes.Buffer
	for _, l := range out {
		buf.WriteString(l.text)
		if l.ending != "" {
			buf.WriteString(l.ending)
		}
	}
	return buf.Bytes(), nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
