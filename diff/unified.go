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
	"fmt"
	"strings"
)

// emitUnified renders the unified ("@@ -l,n +l,n @@") dialect. Like
// emitContext, each Difference becomes its own hunk bounded by up to
// context lines of unchanged text, requiring d.A/d.B to be fully populated
// (true for anything produced by Diff).
func emitUnified(d Differential, context int) string {
	var b strings.Builder

	for _, c := range d.Diffs {
		delFrom := c.DelStart
		if delFrom < 0 {
			delFrom = posBefore(d, c)
		}
		delTo := c.DelEnd
		if delTo < 0 {
			delTo = delFrom
		}
		addFrom := c.AddStart
		if addFrom < 0 {
			addFrom = addPosBefore(d, c)
		}
		addTo := c.AddEnd
		if addTo < 0 {
			addTo = addFrom
		}

		lead := max(0, delFrom-context)
		trail := min2(len(d.A), delTo+context)
		leadLen := delFrom - lead
		trailLen := trail - delTo

		hunkOldStart := lead
		hunkOldLen := trail - lead
		hunkNewStart := addFrom - leadLen
		hunkNewLen := (addTo - addFrom) + leadLen + trailLen

		fmt.Fprintf(&b, "@@ -%s +%s @@\n", unifiedRange(hunkOldStart, hunkOldLen), unifiedRange(hunkNewStart, hunkNewLen))

		for i := lead; i < delFrom; i++ {
			fmt.Fprintf(&b, " %s\n", d.A[i])
		}
		for i := delFrom; i < delTo; i++ {
			fmt.Fprintf(&b, "-%s\n", d.A[i])
		}
		for i := addFrom; i < addTo; i++ {
			fmt.Fprintf(&b, "+%s\n", d.B[i])
		}
		for i := delTo; i < trail; i++ {
			fmt.Fprintf(&b, " %s\n", d.A[i])
		}
	}

	return b.String()
}

// unifiedRange renders a 0-based start and length as unified diff's
// "l,n" (1-based start), dropping ",n" when n==1.
func unifiedRange(start, length int) string {
	if length == 1 {
		return fmt.Sprintf("%d", start+1)
	}
	if length == 0 {
		return fmt.Sprintf("%d,0", start)
	}
	return fmt.Sprintf("%d,%d", start+1, length)
}

// parseUnified parses the unified dialect. Context (' ') lines populate both
// d.A and d.B at their respective positions; '-' lines populate d.A only,
// '+' lines populate d.B only. HasContext stays false: only the bounded
// window each hunk shows is ever captured, not the whole file.
func parseUnified(lines []string) (Differential, error) {
	var d Differential

	i := 0
	for i < len(lines) {
		if !strings.HasPrefix(lines[i], "@@") {
			return d, ErrorInvalidDiff.Error(fmt.Errorf("expected '@@ ... @@' hunk header, got %q", lines[i]))
		}
		oldStart, newStart, err := parseHunkHeader(lines[i])
		if err != nil {
			return d, err
		}
		i++

		posA, posB := oldStart, newStart
		delStart, delEnd := -1, -1
		addStart, addEnd := -1, -1

		flush := func() {
			if delStart < 0 && addStart < 0 {
				return
			}
			diff := Difference{DelStart: -1, DelEnd: -1, AddStart: -1, AddEnd: -1}
			if delStart >= 0 {
				diff.DelStart, diff.DelEnd = delStart, delEnd
			}
			if addStart >= 0 {
				diff.AddStart, diff.AddEnd = addStart, addEnd
			}
			d.Diffs = append(d.Diffs, diff)
			delStart, delEnd, addStart, addEnd = -1, -1, -1, -1
		}

		for i < len(lines) && !strings.HasPrefix(lines[i], "@@") {
			line := lines[i]
			if line == "" {
				i++
				continue
			}
			switch line[0] {
			case ' ':
				flush()
				growTo(&d.A, posA+1)
				growTo(&d.B, posB+1)
				d.A[posA] = line[1:]
				d.B[posB] = line[1:]
				posA++
				posB++
			case '-':
				if delStart < 0 {
					delStart = posA
				}
				growTo(&d.A, posA+1)
				d.A[posA] = line[1:]
				posA++
				delEnd = posA
			case '+':
				if addStart < 0 {
					addStart = posB
				}
				growTo(&d.B, posB+1)
				d.B[posB] = line[1:]
				posB++
				addEnd = posB
			default:
				return d, ErrorInvalidDiff.Error(fmt.Errorf("unrecognized unified diff line %q", line))
			}
			i++
		}
		flush()
	}

	return d, nil
}

// parseHunkHeader extracts the 0-based old/new start lines from a
// "@@ -l,n +l,n @@" header.
func parseHunkHeader(line string) (oldStart, newStart int, err error) {
	body := strings.TrimPrefix(line, "@@")
	body = strings.TrimSuffix(strings.TrimSpace(body), "@@")
	fields := strings.Fields(body)
	if len(fields) != 2 || !strings.HasPrefix(fields[0], "-") || !strings.HasPrefix(fields[1], "+") {
		return 0, 0, ErrorInvalidDiff.Error(fmt.Errorf("malformed hunk header %q", line))
	}
	oldStart, _, err = parseRange(strings.TrimPrefix(fields[0], "-"))
	if err != nil {
		return 0, 0, err
	}
	newStart, _, err = parseRange(strings.TrimPrefix(fields[1], "+"))
	if err != nil {
		return 0, 0, err
	}
	return oldStart, newStart, nil
}
