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
	"fmt"
	"strings"
)

// decodeText validates the configured charset and hands back data as text.
// Only the platform default (UTF-8) is supported: Go's string type is
// already a UTF-8 byte sequence, so decoding it is the identity function;
// any other charset name is rejected rather than silently mishandled.
func decodeText(data []byte, charset string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return string(data), nil
	default:
		return "", ErrorUnsupportedCharset.Error(fmt.Errorf("charset %q is not supported", charset))
	}
}

// applySubstitute runs one regex/replacement rule against a leaf's decoded
// text. Replacement is expanded per match via ExpandString so back-
// references ($1, ${name}) resolve against that match's own capture
// groups, and Condition (defaulting to Always) can veto individual matches
// without touching the rest of the text.
func applySubstitute(path string, data []byte, rule SubstituteRule, charset string) ([]byte, error) {
	if rule.Regexp == nil {
		return data, nil
	}

	text, err := decodeText(data, charset)
	if err != nil {
		return nil, err
	}

	if rule.CheckBeforeTransformation && !rule.Regexp.MatchString(text) {
		return data, nil
	}

	cond := rule.Condition
	if cond == nil {
		cond = Always
	}

	count := 0
	result := rule.Regexp.ReplaceAllStringFunc(text, func(match string) string {
		count++
		if !cond(path, match, count) {
			return match
		}
		idx := rule.Regexp.FindStringSubmatchIndex(match)
		if idx == nil {
			return match
		}
		return string(rule.Regexp.ExpandString(nil, rule.Replacement, match, idx))
	})

	return []byte(result), nil
}
