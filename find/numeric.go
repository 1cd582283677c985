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

package find

import (
	"strconv"
)

// cmp is the comparison a numeric argument requests against a measured
// value: exact match, greater-than, or less-than.
type cmp byte

const (
	cmpExact cmp = 0
	cmpGT    cmp = '+'
	cmpLT    cmp = '-'
)

// numericArg is one parsed `-size`/`-mtime`/`-mmin` argument: an optional
// leading '+'/'-' selecting greater/less-than, and an optional trailing
// 'k'/'M'/'G' multiplier.
type numericArg struct {
	op    cmp
	value int64
}

// parseNumeric parses a numeric find argument of the form
// [+-]?[0-9]+[kMG]?.
func parseNumeric(s string) (numericArg, error) {
	if s == "" {
		return numericArg{}, ErrorBadNumericArgument.Error()
	}

	op := cmpExact
	switch s[0] {
	case '+':
		op = cmpGT
		s = s[1:]
	case '-':
		op = cmpLT
		s = s[1:]
	}

	mult := int64(1)
	if len(s) > 0 {
		switch s[len(s)-1] {
		case 'k', 'K':
			mult = 1024
			s = s[:len(s)-1]
		case 'M', 'm':
			mult = 1024 * 1024
			s = s[:len(s)-1]
		case 'G', 'g':
			mult = 1024 * 1024 * 1024
			s = s[:len(s)-1]
		}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return numericArg{}, ErrorBadNumericArgument.Error(err)
	}

	return numericArg{op: op, value: n * mult}, nil
}

// match reports whether measured satisfies this argument's comparison.
func (n numericArg) match(measured int64) bool {
	switch n.op {
	case cmpGT:
		return measured > n.value
	case cmpLT:
		return measured < n.value
	default:
		return measured == n.value
	}
}
