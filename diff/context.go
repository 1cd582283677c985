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

// emitContext renders the context ("*** / --- / ***************") dialect.
// Each Difference becomes its own hunk, bracketed by up to context lines of
// unchanged text pulled from the full A/B sequences, which requires d to
// carry HasContext (true for anything produced by Diff).
func emitContext(d Differential, context int) string {
	var b strings.Builder

	for _, c := range d.Diffs {
		leadFrom := c.DelStart
		if leadFrom < 0 {
			leadFrom = posBefore(d, c)
		}
		lead := max(0, leadFrom-context)

		trailTo := c.DelEnd
		if trailTo < 0 {
			trailTo = leadFrom
		}
		trail := min2(len(d.A), trailTo+context)

		addLeadFrom := c.AddStart
		if addLeadFrom < 0 {
			addLeadFrom = addPosBefore(d, c)
		}
		addTrailTo := c.AddEnd
		if addTrailTo < 0 {
			addTrailTo = addLeadFrom
		}
		addTrail := min2(len(d.B), addTrailTo+context)
		addLead := max(0, addLeadFrom-context)

		b.WriteString("***************\n")
		fmt.Fprintf(&b, "*** %s ****\n", rangeText(lead, trail))
		if c.DelStart >= 0 || c.AddStart < 0 {
			for i := lead; i < trail; i++ {
				switch {
				case c.DelStart >= 0 && i >= c.DelStart && i < c.DelEnd && c.AddStart >= 0:
					fmt.Fprintf(&b, "! %s\n", d.A[i])
				case c.DelStart >= 0 && i >= c.DelStart && i < c.DelEnd:
					fmt.Fprintf(&b, "- %s\n", d.A[i])
				default:
					fmt.Fprintf(&b, "  %s\n", d.A[i])
				}
			}
		}
		fmt.Fprintf(&b, "--- %s ----\n", rangeText(addLead, addTrail))
		for i := addLead; i < addTrail; i++ {
			switch {
			case c.AddStart >= 0 && i >= c.AddStart && i < c.AddEnd && c.DelStart >= 0:
				fmt.Fprintf(&b, "! %s\n", d.B[i])
			case c.AddStart >= 0 && i >= c.AddStart && i < c.AddEnd:
				fmt.Fprintf(&b, "+ %s\n", d.B[i])
			default:
				fmt.Fprintf(&b, "  %s\n", d.B[i])
			}
		}
	}

	return b.String()
}

func posBefore(d Differential, c Difference) int {
	idx := indexOfDiff(d, c)
	for i := idx - 1; i >= 0; i-- {
		if d.Diffs[i].DelStart >= 0 {
			return d.Diffs[i].DelEnd
		}
	}
	return 0
}

func addPosBefore(d Differential, c Difference) int {
	idx := indexOfDiff(d, c)
	for i := idx - 1; i >= 0; i-- {
		if d.Diffs[i].AddStart >= 0 {
			return d.Diffs[i].AddEnd
		}
	}
	return 0
}

func indexOfDiff(d Differential, c Difference) int {
	for i, x := range d.Diffs {
		if x == c {
			return i
		}
	}
	return 0
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min2(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// parseContext parses the context dialect. Each hunk's "- "/"! " lines on
// the first block populate d.A, "+ "/"! " lines on the second block
// populate d.B; HasContext stays false since only a bounded window around
// each hunk is ever captured, not the whole file.
func parseContext(lines []string) (Differential, error) {
	var d Differential

	i := 0
	for i < len(lines) {
		if strings.TrimSpace(lines[i]) != "***************" {
			return d, ErrorInvalidDiff.Error(fmt.Errorf("expected hunk separator, got %q", lines[i]))
		}
		i++
		if i >= len(lines) || !strings.HasPrefix(lines[i], "*** ") {
			return d, ErrorInvalidDiff.Error(fmt.Errorf("expected '*** range ****' line"))
		}
		r1, err := extractRange(lines[i], "*** ", " ****")
		if err != nil {
			return d, err
		}
		i++

		var delLines, oldMarked []string
		for i < len(lines) && !strings.HasPrefix(lines[i], "--- ") {
			switch {
			case strings.HasPrefix(lines[i], "- "):
				delLines = append(delLines, strings.TrimPrefix(lines[i], "- "))
				oldMarked = append(oldMarked, "d")
			case strings.HasPrefix(lines[i], "! "):
				delLines = append(delLines, strings.TrimPrefix(lines[i], "! "))
				oldMarked = append(oldMarked, "c")
			case strings.HasPrefix(lines[i], "  "):
				delLines = append(delLines, strings.TrimPrefix(lines[i], "  "))
				oldMarked = append(oldMarked, " ")
			}
			i++
		}
		if i >= len(lines) {
			return d, ErrorInvalidDiff.Error(fmt.Errorf("unterminated hunk: missing '--- range ----' line"))
		}
		r2, err := extractRange(lines[i], "--- ", " ----")
		if err != nil {
			return d, err
		}
		i++

		var addLines, newMarked []string
		for i < len(lines) && (strings.HasPrefix(lines[i], "+ ") || strings.HasPrefix(lines[i], "! ") || strings.HasPrefix(lines[i], "  ")) {
			switch {
			case strings.HasPrefix(lines[i], "+ "):
				addLines = append(addLines, strings.TrimPrefix(lines[i], "+ "))
				newMarked = append(newMarked, "a")
			case strings.HasPrefix(lines[i], "! "):
				addLines = append(addLines, strings.TrimPrefix(lines[i], "! "))
				newMarked = append(newMarked, "c")
			default:
				addLines = append(addLines, strings.TrimPrefix(lines[i], "  "))
				newMarked = append(newMarked, " ")
			}
			i++
		}

		if err := foldContextHunk(&d, r1, delLines, oldMarked, r2, addLines, newMarked); err != nil {
			return d, err
		}
	}

	return d, nil
}

// extractRange pulls the "lo,hi" text out of a "*** lo,hi ****" or
// "--- lo,hi ----" line.
func extractRange(line, prefix, suffix string) (string, error) {
	if !strings.HasPrefix(line, prefix) || !strings.HasSuffix(line, suffix) {
		return "", ErrorInvalidDiff.Error(fmt.Errorf("malformed context range line %q", line))
	}
	return line[len(prefix) : len(line)-len(suffix)], nil
}

// foldContextHunk reconciles one hunk's two marked blocks into Differences,
// pairing each run of non-context lines on the old side with the matching
// run on the new side and collapsing adjacent non-context markers into
// single ranges. An empty old block (a pure addition) is aligned by the new
// block's context lines alone.
func foldContextHunk(d *Differential, r1 string, delLines, delMarks []string, r2 string, addLines, addMarks []string) error {
	start1, _, err := parseRange(r1)
	if err != nil {
		return err
	}
	start2, _, err := parseRange(r2)
	if err != nil {
		return err
	}

	growTo(&d.A, start1+len(delLines))
	growTo(&d.B, start2+len(addLines))
	for k, s := range delLines {
		d.A[start1+k] = s
	}
	for k, s := range addLines {
		d.B[start2+k] = s
	}

	i, j := 0, 0
	for i < len(delMarks) || j < len(addMarks) {
		for (i < len(delMarks) && delMarks[i] == " ") || (i >= len(delMarks) && j < len(addMarks) && addMarks[j] == " ") {
			i++
			j++
		}
		if i >= len(delMarks) && j >= len(addMarks) {
			break
		}

		ds := i
		for i < len(delMarks) && delMarks[i] != " " {
			i++
		}
		as := j
		for j < len(addMarks) && addMarks[j] != " " {
			j++
		}

		diff := Difference{DelStart: -1, DelEnd: -1, AddStart: -1, AddEnd: -1}
		if i > ds {
			diff.DelStart, diff.DelEnd = start1+ds, start1+i
		}
		if j > as {
			diff.AddStart, diff.AddEnd = start2+as, start2+j
		}
		if i > ds || j > as {
			d.Diffs = append(d.Diffs, diff)
		}
	}

	return nil
}
