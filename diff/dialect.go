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

// Dialect names one of the three textual representations a Differential can
// be rendered as or parsed from.
type Dialect uint8

const (
	Normal Dialect = iota
	Context
	Unified
)

func (d Dialect) String() string {
	switch d {
	case Context:
		return "context"
	case Unified:
		return "unified"
	default:
		return "normal"
	}
}

// rangeText renders a 0-based, exclusive-end range as GNU diff's 1-based
// range text: a single number when the range covers one line, "lo,hi"
// otherwise. An empty range (start==end) reports the insertion point.
func rangeText(start, end int) string {
	if start >= end {
		// insertion point: GNU diff reports the 1-based line *after* which
		// the insertion happens, i.e. start itself (already 1-based once
		// the caller offsets it), using exclusive end to mean "before".
		return strconv.Itoa(start)
	}
	lo, hi := start+1, end
	if lo == hi {
		return strconv.Itoa(lo)
	}
	return fmt.Sprintf("%d,%d", lo, hi)
}

// Emit renders d in the requested dialect. context is the number of
// unchanged lines shown around each change for Context/Unified; ignored for
// Normal.
func Emit(d Differential, dialect Dialect, context int) string {
	switch dialect {
	case Context:
		return emitContext(d, context)
	case Unified:
		return emitUnified(d, context)
	default:
		return emitNormal(d)
	}
}

// Parse auto-detects the dialect of text by peeking its first structural
// line and parses it into a Differential.
func Parse(text string) (Differential, Dialect, error) {
	lines := splitKeepEmpty(text)
	if len(lines) == 0 {
		return Differential{}, Normal, nil
	}

	first := lines[0]
	switch {
	case strings.HasPrefix(first, "@@"):
		d, err := parseUnified(lines)
		return d, Unified, err
	case strings.HasPrefix(first, "***") || strings.HasPrefix(first, "---"):
		d, err := parseContext(lines)
		return d, Context, err
	default:
		d, err := parseNormal(lines)
		return d, Normal, err
	}
}

func splitKeepEmpty(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
