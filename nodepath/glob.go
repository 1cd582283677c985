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

import (
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// alt is one compiled alternative of a Glob: a pattern translated to a
// matcher, tagged include or exclude ('~'-prefixed).
type alt struct {
	exclude bool
	source  string
	match   func(path string) bool
}

// Glob is a comma-separated list of wildcard alternatives matched against
// nested paths. Alternatives are evaluated left-to-right in declaration
// order and the last one that matches wins, so a later include can
// override an earlier exclude and vice versa. A Glob with no alternatives
// matches everything (the "no restriction configured" default).
type Glob struct {
	alts []alt
	raw  string
}

// Parse compiles a comma-separated glob expression. Empty segments (an
// empty spec, or a stray comma) are ignored.
func Parse(spec string) (Glob, error) {
	g := Glob{raw: spec}
	if spec == "" {
		return g, nil
	}

	for _, part := range strings.Split(spec, ",") {
		if part == "" {
			continue
		}

		exclude := false
		if strings.HasPrefix(part, "~") {
			exclude = true
			part = part[1:]
		}

		m, err := compilePattern(part)
		if err != nil {
			return Glob{}, err
		}

		g.alts = append(g.alts, alt{exclude: exclude, source: part, match: m})
	}

	return g, nil
}

// MustParse is Parse but panics on an invalid glob; for package-level
// constant globs built from trusted literals.
func MustParse(spec string) Glob {
	g, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return g
}

func (g Glob) String() string { return g.raw }

// Match reports whether path is selected by this glob, applying
// last-match-wins across the declared alternatives.
func (g Glob) Match(path string) bool {
	if len(g.alts) == 0 {
		return true
	}

	var (
		matched bool
		verdict bool
	)

	for _, a := range g.alts {
		if a.match(path) {
			matched = true
			verdict = !a.exclude
		}
	}

	return matched && verdict
}

// compilePattern builds a matcher for one glob alternative. Single-star
// patterns confined to one directory segment (no '!', '%', '**' or '***')
// are matched directly by doublestar.Match. doublestar only special-cases
// '**' when it is a whole path component of its own ('/**/' or string
// boundary); this grammar's '**' and '***' have no such restriction and
// are allowed mid-literal (e.g. "**special.zip"), so any pattern using
// them falls back to a small bespoke regex translator instead.
func compilePattern(pattern string) (func(string) bool, error) {
	if !strings.ContainsAny(pattern, "!%") && !strings.Contains(pattern, "**") {
		if _, err := doublestar.Match(pattern, ""); err != nil {
			return nil, err
		}
		return func(path string) bool {
			ok, _ := doublestar.Match(pattern, path)
			return ok
		}, nil
	}

	re, err := regexp.Compile("^" + translateWildcards(pattern) + "$")
	if err != nil {
		return nil, err
	}
	return re.MatchString, nil
}

// translateWildcards renders '?', '*', '**' and '***' as regex fragments:
// '?' one char that is not a separator, '*' any run except '/', '**' any
// run except '!'/'%', '***' anything at all.
func translateWildcards(pattern string) string {
	var b strings.Builder

	runes := []rune(pattern)
	for i := 0; i < len(runes); {
		switch {
		case matchesAt(runes, i, "***"):
			b.WriteString(".*")
			i += 3
		case matchesAt(runes, i, "**"):
			b.WriteString("[^!%]*")
			i += 2
		case runes[i] == '*':
			b.WriteString("[^/]*")
			i++
		case runes[i] == '?':
			b.WriteString("[^/!%]")
			i++
		default:
			b.WriteString(regexp.QuoteMeta(string(runes[i])))
			i++
		}
	}

	return b.String()
}

func matchesAt(runes []rune, i int, lit string) bool {
	lr := []rune(lit)
	if i+len(lr) > len(runes) {
		return false
	}
	for j, r := range lr {
		if runes[i+j] != r {
			return false
		}
	}
	return true
}

// LookInto is the "<fmt-glob>:<path-glob>" discriminator deciding whether a
// recognized container is descended into.
type LookInto struct {
	Format Glob
	Path   Glob
}

// ParseLookInto splits spec on its first unescaped ':' into a format glob
// and a path glob.
func ParseLookInto(spec string) (LookInto, error) {
	idx := strings.IndexByte(spec, ':')
	if idx < 0 {
		return LookInto{}, &InvalidGlobError{Spec: spec, Reason: "missing ':' separating format glob from path glob"}
	}

	fmtSpec, pathSpec := spec[:idx], spec[idx+1:]

	fg, err := Parse(fmtSpec)
	if err != nil {
		return LookInto{}, err
	}
	pg, err := Parse(pathSpec)
	if err != nil {
		return LookInto{}, err
	}

	return LookInto{Format: fg, Path: pg}, nil
}

// Match reports whether the named format at the given path should be
// descended into.
func (l LookInto) Match(format, path string) bool {
	return l.Format.Match(format) && l.Path.Match(path)
}

// InvalidGlobError reports a malformed glob or lookInto expression.
type InvalidGlobError struct {
	Spec   string
	Reason string
}

func (e *InvalidGlobError) Error() string {
	return "invalid glob " + strquote(e.Spec) + ": " + e.Reason
}

func strquote(s string) string {
	return "\"" + s + "\""
}
