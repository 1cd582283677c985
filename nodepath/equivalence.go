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

import "regexp"

// Equivalence is a regex whose capturing groups reduce a string to a
// canonical key. Two strings are equivalent under it iff the regex matches
// both and their captured groups are identical; a string the regex does not
// match has no key and is never equivalent to anything under this rule.
//
// Used two ways: a path-equivalence pairs differently-named files across two
// trees (zzdiff's --path-equivalence), a line-equivalence reduces a line to
// its significant parts before the line-diff comparator runs (zzdiff's
// --line-equivalence / "-I" family), e.g. "version=\d+" makes "version=1.2"
// and "version=1.3" compare equal.
type Equivalence struct {
	pathGlob Glob
	re       *regexp.Regexp
	raw      string
}

// ParseEquivalence compiles an equivalence rule of the form
// "<path-glob>:<regex>". The path glob restricts which paths/lines the rule
// applies to (an empty glob, "", matches everything); the regex supplies the
// reduction via its capturing groups.
func ParseEquivalence(spec string) (Equivalence, error) {
	idx := indexUnescapedColon(spec)
	if idx < 0 {
		return Equivalence{}, &InvalidGlobError{Spec: spec, Reason: "missing ':' separating path glob from equivalence regex"}
	}

	globSpec, reSpec := spec[:idx], spec[idx+1:]

	g, err := Parse(globSpec)
	if err != nil {
		return Equivalence{}, err
	}

	re, err := regexp.Compile(reSpec)
	if err != nil {
		return Equivalence{}, err
	}

	return Equivalence{pathGlob: g, re: re, raw: spec}, nil
}

func (e Equivalence) String() string { return e.raw }

// Key reduces value to its canonical form under this rule, applying only
// when path (the nested path the value is associated with) matches the
// rule's glob. ok is false when the glob doesn't apply or the regex fails to
// match, meaning value carries no equivalence key under this rule.
func (e Equivalence) Key(path, value string) (key string, ok bool) {
	if !e.pathGlob.Match(path) {
		return "", false
	}

	m := e.re.FindStringSubmatch(value)
	if m == nil {
		return "", false
	}
	if len(m) == 1 {
		return m[0], true
	}

	var total int
	for _, g := range m[1:] {
		total += len(g)
	}
	b := make([]byte, 0, total)
	for _, g := range m[1:] {
		b = append(b, g...)
	}
	return string(b), true
}

// Equal reports whether a and b (associated with pathA/pathB respectively)
// are equivalent under this rule: both must reduce to a key, and the keys
// must match identically.
func (e Equivalence) Equal(pathA, a, pathB, b string) bool {
	ka, oka := e.Key(pathA, a)
	kb, okb := e.Key(pathB, b)
	return oka && okb && ka == kb
}

func indexUnescapedColon(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == ':' {
			return i
		}
	}
	return -1
}
