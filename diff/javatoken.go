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
	"strings"
	"unicode"
)

// tokenizeJava reduces a line of Java source to a space-joined token stream,
// optionally dropping comment tokens, so that two lines differing only in
// whitespace or comment text compare equal. It is line-oriented: a
// /*...*/ comment spanning multiple lines is not reconstructed across line
// boundaries, since the diff/patch engine always compares single lines.
func tokenizeJava(s string, stripC, stripCPlusPlus, stripDoc bool) string {
	var tokens []string
	r := []rune(s)
	n := len(r)

	for i := 0; i < n; {
		switch {
		case unicode.IsSpace(r[i]):
			i++

		case i+1 < n && r[i] == '/' && r[i+1] == '/':
			if stripCPlusPlus {
				return strings.Join(tokens, " ")
			}
			tokens = append(tokens, string(r[i:]))
			i = n

		case i+2 < n && r[i] == '/' && r[i+1] == '*' && r[i+2] == '*':
			end := indexOf(r, i+3, "*/")
			if end < 0 {
				end = n
			} else {
				end += 2
			}
			if !stripDoc {
				tokens = append(tokens, string(r[i:end]))
			}
			i = end

		case i+1 < n && r[i] == '/' && r[i+1] == '*':
			end := indexOf(r, i+2, "*/")
			if end < 0 {
				end = n
			} else {
				end += 2
			}
			if !stripC {
				tokens = append(tokens, string(r[i:end]))
			}
			i = end

		case isJavaIdentStart(r[i]):
			start := i
			for i < n && isJavaIdentPart(r[i]) {
				i++
			}
			tokens = append(tokens, string(r[start:i]))

		case unicode.IsDigit(r[i]):
			start := i
			for i < n && (unicode.IsDigit(r[i]) || r[i] == '.') {
				i++
			}
			tokens = append(tokens, string(r[start:i]))

		default:
			tokens = append(tokens, string(r[i]))
			i++
		}
	}

	return strings.Join(tokens, " ")
}

func isJavaIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '$'
}

func isJavaIdentPart(r rune) bool {
	return isJavaIdentStart(r) || unicode.IsDigit(r)
}

func indexOf(r []rune, from int, lit string) int {
	lr := []rune(lit)
	for i := from; i+len(lr) <= len(r); i++ {
		match := true
		for j, c := range lr {
			if r[i+j] != c {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
