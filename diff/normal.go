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
	"strconv"
	"strings"
)

// parseRange reads a GNU diff range, either "N" or "N,M", returning
// 0-based start/exclusive-end.
func parseRange(s string) (int, int, error) {
	parts := strings.SplitN(s, ",", 2)
	lo, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, ErrorInvalidDiff.Error(fmt.Errorf("bad range %q: %w", s, err))
	}
	if len(parts) == 1 {
		return lo - 1, lo, nil
	}
	hi, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, ErrorInvalidDiff.Error(fmt.Errorf("bad range %q: %w", s, err))
	}
	return lo - 1, hi, nil
}

// parseVerbLine splits a traditional header line "R1{a,d,c}R2" into its
// verb and two range strings.
func parseVerbLine(line string) (r1, verb, r2 string, ok bool) {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case 'a', 'd', 'c':
			return line[:i], string(line[i]), line[i+1:], true
		}
	}
	return "", "", "", false
}

// emitNormal renders the traditional ("Na/d/cM") dialect. A pure addition
// or pure deletion's "other side" line number is the position implied by
// how many A/B lines have been consumed so far: the end of the previous
// Difference on that side (posA/posB) plus the unchanged lines since, which
// are equally many on both sides. A Difference with an empty side stores -1
// there rather than a usable line number.
func emitNormal(d Differential) string {
	var b strings.Builder
	posA, posB := 0, 0

	for _, c := range d.Diffs {
		atA, atB := c.DelStart, c.AddStart
		if atA < 0 {
			atA = posA + (c.AddStart - posB)
		}
		if atB < 0 {
			atB = posB + (c.DelStart - posA)
		}

		switch c.Kind() {
		case 'a':
			fmt.Fprintf(&b, "%da%s\n", atA, rangeText(atB, c.AddEnd))
		case 'd':
			fmt.Fprintf(&b, "%sd%d\n", rangeText(c.DelStart, c.DelEnd), atB)
		case 'c':
			fmt.Fprintf(&b, "%sc%s\n", rangeText(c.DelStart, c.DelEnd), rangeText(c.AddStart, c.AddEnd))
		}

		for i := c.DelStart; i < c.DelEnd; i++ {
			fmt.Fprintf(&b, "< %s\n", d.A[i])
		}
		if c.DelStart >= 0 && c.AddStart >= 0 {
			b.WriteString("---\n")
		}
		for i := c.AddStart; i < c.AddEnd; i++ {
			fmt.Fprintf(&b, "> %s\n", d.B[i])
		}

		posA, posB = atA, atB
		if c.DelStart >= 0 {
			posA = c.DelEnd
		}
		if c.AddStart >= 0 {
			posB = c.AddEnd
		}
	}

	return b.String()
}

func growTo(sl *[]string, n int) {
	for len(*sl) < n {
		*sl = append(*sl, "")
	}
}

// parseNormal parses the traditional ("Na/d/cM") dialect. It never repeats
// context lines, so the resulting Differential only has A/B populated at
// the indices its deleted/added ranges cover; HasContext is false.
func parseNormal(lines []string) (Differential, error) {
	var d Differential

	i := 0
	for i < len(lines) {
		r1s, verb, r2s, ok := parseVerbLine(lines[i])
		if !ok {
			return d, ErrorInvalidDiff.Error(fmt.Errorf("expected a traditional-diff header, got %q", lines[i]))
		}
		i++

		delStart, delEnd, addStart, addEnd := -1, -1, -1, -1

		switch verb {
		case "a":
			as, ae, err := parseRange(r2s)
			if err != nil {
				return d, err
			}
			addStart, addEnd = as, ae
		case "d":
			ds, de, err := parseRange(r1s)
			if err != nil {
				return d, err
			}
			delStart, delEnd = ds, de
		case "c":
			ds, de, err := parseRange(r1s)
			if err != nil {
				return d, err
			}
			as, ae, err := parseRange(r2s)
			if err != nil {
				return d, err
			}
			delStart, delEnd, addStart, addEnd = ds, de, as, ae
		}

		if delStart >= 0 {
			growTo(&d.A, delEnd)
			for k := delStart; k < delEnd; k++ {
				if i >= len(lines) || !strings.HasPrefix(lines[i], "< ") {
					return d, ErrorInvalidDiff.Error(fmt.Errorf("expected %d deleted lines after header", delEnd-delStart))
				}
				d.A[k] = strings.TrimPrefix(lines[i], "< ")
				i++
			}
		}
		if delStart >= 0 && addStart >= 0 {
			if i >= len(lines) || lines[i] != "---" {
				return d, ErrorInvalidDiff.Error(fmt.Errorf("expected '---' separator in change hunk"))
			}
			i++
		}
		if addStart >= 0 {
			growTo(&d.B, addEnd)
			for k := addStart; k < addEnd; k++ {
				if i >= len(lines) || !strings.HasPrefix(lines[i], "> ") {
					return d, ErrorInvalidDiff.Error(fmt.Errorf("expected %d added lines after header", addEnd-addStart))
				}
				d.B[k] = strings.TrimPrefix(lines[i], "> ")
				i++
			}
		}

		d.Diffs = append(d.Diffs, Difference{DelStart: delStart, DelEnd: delEnd, AddStart: addStart, AddEnd: addEnd})
	}

	return d, nil
}
