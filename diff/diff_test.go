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

package diff_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aunkrig/zz-sub002/diff"
)

var _ = Describe("TC-DF-001: Diff and Patch", func() {
	a := []string{"one", "two", "three", "four", "five"}
	b := []string{"one", "TWO", "three", "four", "six", "five"}

	It("TC-DF-002: computes a Differential whose Patch reconstructs B", func() {
		d := diff.Diff(a, b, diff.Options{})
		Expect(diff.Patch(d)).To(Equal(b))
	})

	It("TC-DF-003: ApplyTo rejects input whose context does not match", func() {
		d := diff.Diff(a, b, diff.Options{})
		bogus := append([]string{}, a...)
		bogus[0] = "ONE"
		_, err := diff.ApplyTo(d, bogus)
		Expect(err).To(HaveOccurred())
	})

	DescribeTable("TC-DF-004: dialects round-trip through Emit/Parse",
		func(dialect diff.Dialect) {
			d := diff.Diff(a, b, diff.Options{})
			text := diff.Emit(d, dialect, 3)
			parsed, gotDialect, err := diff.Parse(text)
			Expect(err).ToNot(HaveOccurred())
			Expect(gotDialect).To(Equal(dialect))
			Expect(parsed.Diffs).To(HaveLen(len(d.Diffs)))
		},
		Entry("normal", diff.Normal),
		Entry("context", diff.Context),
		Entry("unified", diff.Unified),
	)

	It("TC-DF-005: a parsed normal-dialect patch still applies against matching input", func() {
		d := diff.Diff(a, b, diff.Options{})
		text := diff.Emit(d, diff.Normal, 0)
		parsed, _, err := diff.Parse(text)
		Expect(err).ToNot(HaveOccurred())
		out, err := diff.ApplyTo(parsed, a)
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(Equal(b))
	})

	It("TC-DF-006: a parsed unified-dialect patch still applies against matching input", func() {
		d := diff.Diff(a, b, diff.Options{})
		text := diff.Emit(d, diff.Unified, 3)
		parsed, _, err := diff.Parse(text)
		Expect(err).ToNot(HaveOccurred())
		out, err := diff.ApplyTo(parsed, a)
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(Equal(b))
	})

	It("TC-DF-007: IgnoreWhitespace treats differently-spaced lines as equal", func() {
		x := []string{"a  b"}
		y := []string{"a b"}
		d := diff.Diff(x, y, diff.Options{IgnoreWhitespace: true})
		Expect(d.Diffs).To(BeEmpty())
	})

	It("TC-DF-008: JavaTokenization ignores comment-only changes", func() {
		x := []string{"int a = 1; // old"}
		y := []string{"int a = 1; // new"}
		d := diff.Diff(x, y, diff.Options{JavaTokenization: true, IgnoreCPlusPlusComments: true})
		Expect(d.Diffs).To(BeEmpty())
	})
})

var _ = Describe("TC-DF-010: TreeDiff", func() {
	It("TC-DF-011: classifies paths present on only one side as added or deleted", func() {
		a := []diff.Leaf{{Path: "keep.txt", Lines: []string{"x"}}, {Path: "gone.txt", Lines: []string{"y"}}}
		b := []diff.Leaf{{Path: "keep.txt", Lines: []string{"x"}}, {Path: "new.txt", Lines: []string{"z"}}}

		entries := diff.TreeDiff(a, b, diff.Report, nil, diff.Options{})

		var added, deleted int
		for _, e := range entries {
			if e.AddedOnly {
				added++
			}
			if e.DeletedOnly {
				deleted++
			}
		}
		Expect(added).To(Equal(1))
		Expect(deleted).To(Equal(1))
	})

	It("TC-DF-012: Ignore mode drops absent-side entries from comparison", func() {
		a := []diff.Leaf{{Path: "only-a.txt", Lines: []string{"x"}}}
		b := []diff.Leaf{{Path: "only-b.txt", Lines: []string{"y"}}}

		entries := diff.TreeDiff(a, b, diff.Ignore, nil, diff.Options{})
		for _, e := range entries {
			Expect(e.Differential).To(BeNil())
		}
	})
})
