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

package transform_test

import (
	"bytes"
	"context"
	"io"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aunkrig/zz-sub002/diff"
	"github.com/aunkrig/zz-sub002/nodepath"
	"github.com/aunkrig/zz-sub002/transform"
)

func run(path string, content []byte, rules *transform.Rules) ([]byte, error) {
	var out bytes.Buffer
	err := transform.Transform(context.Background(), path, io.NopCloser(bytes.NewReader(content)), &out, rules, transform.Options{})
	return out.Bytes(), err
}

var _ = Describe("TC-TX-001: archive entry substitution", func() {
	It("TC-TX-002: rewrites a matching entry's content in place", func() {
		src := buildZip(map[string]string{
			"hello.txt": "foo bar foo\n",
			"other.txt": "untouched\n",
		})

		rules := &transform.Rules{
			Leaf: []transform.LeafRule{
				{
					Predicate: nodepath.MustParse("*!hello.txt"),
					Kind:      transform.Substitute,
					Substitute: transform.SubstituteRule{
						Regexp:      mustCompile(`foo`),
						Replacement: "baz",
					},
				},
			},
		}

		out, err := run("bundle.zip", src, rules)
		Expect(err).ToNot(HaveOccurred())

		files := readZip(out)
		Expect(files["hello.txt"]).To(Equal("baz bar baz\n"))
		Expect(files["other.txt"]).To(Equal("untouched\n"))
	})

	It("TC-TX-003: checkBeforeTransformation leaves a non-matching entry byte-identical", func() {
		src := buildZip(map[string]string{"hello.txt": "nothing to see\n"})

		rules := &transform.Rules{
			Leaf: []transform.LeafRule{
				{
					Predicate: nodepath.MustParse("*!hello.txt"),
					Kind:      transform.Substitute,
					Substitute: transform.SubstituteRule{
						Regexp:                    mustCompile(`foo`),
						Replacement:               "baz",
						CheckBeforeTransformation: true,
					},
				},
			},
		}

		out, err := run("bundle.zip", src, rules)
		Expect(err).ToNot(HaveOccurred())
		Expect(readZip(out)["hello.txt"]).To(Equal("nothing to see\n"))
	})
})

var _ = Describe("TC-TX-010: archive entry rules", func() {
	It("TC-TX-011: a remove rule drops the matching entry", func() {
		src := buildZip(map[string]string{
			"keep.txt":   "a\n",
			"remove.txt": "b\n",
		})

		rules := &transform.Rules{
			Remove: []transform.RemoveRule{
				{Predicate: nodepath.MustParse("*!remove.txt")},
			},
		}

		out, err := run("bundle.zip", src, rules)
		Expect(err).ToNot(HaveOccurred())

		files := readZip(out)
		Expect(files).To(HaveKey("keep.txt"))
		Expect(files).ToNot(HaveKey("remove.txt"))
	})

	It("TC-TX-012: a rename rule changes the written entry name, not its bytes", func() {
		src := buildZip(map[string]string{"old.txt": "content\n"})

		rules := &transform.Rules{
			Leaf: []transform.LeafRule{
				{
					Predicate: nodepath.MustParse("*!old.txt"),
					Kind:      transform.RenameLeaf,
					NewName:   func(string) string { return "new.txt" },
				},
			},
		}

		out, err := run("bundle.zip", src, rules)
		Expect(err).ToNot(HaveOccurred())

		files := readZip(out)
		Expect(files).To(HaveKey("new.txt"))
		Expect(files["new.txt"]).To(Equal("content\n"))
		Expect(files).ToNot(HaveKey("old.txt"))
	})

	It("TC-TX-013: two entries renamed to the same name raise DuplicateEntry", func() {
		src := buildZip(map[string]string{
			"a.txt": "1\n",
			"b.txt": "2\n",
		})

		rules := &transform.Rules{
			Leaf: []transform.LeafRule{
				{
					Predicate: nodepath.MustParse("*!a.txt"),
					Kind:      transform.RenameLeaf,
					NewName:   func(string) string { return "x.txt" },
				},
				{
					Predicate: nodepath.MustParse("*!b.txt"),
					Kind:      transform.RenameLeaf,
					NewName:   func(string) string { return "x.txt" },
				},
			},
		}

		_, err := run("bundle.zip", src, rules)
		Expect(err).To(HaveOccurred())
	})

	It("TC-TX-014: an add rule targeting this archive inserts a new entry", func() {
		src := buildZip(map[string]string{"existing.txt": "x\n"})

		rules := &transform.Rules{
			Add: []transform.AddRule{
				{
					Target: nodepath.MustParse("bundle.zip"),
					Name:   "added.txt",
					Source: func() (io.ReadCloser, error) {
						return io.NopCloser(bytes.NewReader([]byte("inserted\n"))), nil
					},
				},
			},
		}

		out, err := run("bundle.zip", src, rules)
		Expect(err).ToNot(HaveOccurred())

		files := readZip(out)
		Expect(files["existing.txt"]).To(Equal("x\n"))
		Expect(files["added.txt"]).To(Equal("inserted\n"))
	})
})

var _ = Describe("TC-TX-020: container recursion", func() {
	It("TC-TX-021: recurses through a compressed stream and re-wraps it", func() {
		src := buildGzip("foo value\n")

		rules := &transform.Rules{
			Leaf: []transform.LeafRule{
				{
					Kind: transform.Substitute,
					Substitute: transform.SubstituteRule{
						Regexp:      mustCompile(`foo`),
						Replacement: "bar",
					},
				},
			},
		}

		out, err := run("config.txt.gz", src, rules)
		Expect(err).ToNot(HaveOccurred())
		Expect(readGzip(out)).To(Equal("bar value\n"))
	})

	It("TC-TX-022: rewrites an entry nested inside an archive inside an archive", func() {
		inner := buildZip(map[string]string{"deep.txt": "foo deep\n"})
		outer := buildZip(map[string]string{"inner.zip": string(inner)})

		rules := &transform.Rules{
			Leaf: []transform.LeafRule{
				{
					Predicate: nodepath.MustParse("***deep.txt"),
					Kind:      transform.Substitute,
					Substitute: transform.SubstituteRule{
						Regexp:      mustCompile(`foo`),
						Replacement: "baz",
					},
				},
			},
		}

		out, err := run("outer.zip", outer, rules)
		Expect(err).ToNot(HaveOccurred())

		outerFiles := readZip(out)
		innerFiles := readZip([]byte(outerFiles["inner.zip"]))
		Expect(innerFiles["deep.txt"]).To(Equal("baz deep\n"))
	})
})

var _ = Describe("TC-TX-030: patch leaf rule", func() {
	It("TC-TX-031: applies a parsed Differential and preserves untouched line endings", func() {
		a := []string{"one", "two", "three"}
		b := []string{"one", "TWO", "three"}
		d := diff.Diff(a, b, diff.Options{})

		src := buildZip(map[string]string{"file.txt": "one\r\ntwo\r\nthree\r\n"})

		rules := &transform.Rules{
			Leaf: []transform.LeafRule{
				{
					Predicate: nodepath.MustParse("*!file.txt"),
					Kind:      transform.Patch,
					Patch:     d,
				},
			},
		}

		out, err := run("bundle.zip", src, rules)
		Expect(err).ToNot(HaveOccurred())
		Expect(readZip(out)["file.txt"]).To(Equal("one\r\nTWO\r\nthree\r\n"))
	})

	It("TC-TX-032: a context mismatch raises a patch-rejected error", func() {
		a := []string{"one", "two", "three"}
		b := []string{"one", "TWO", "three"}
		d := diff.Diff(a, b, diff.Options{})

		src := buildZip(map[string]string{"file.txt": "one\nWRONG\nthree\n"})

		rules := &transform.Rules{
			Leaf: []transform.LeafRule{
				{
					Predicate: nodepath.MustParse("*!file.txt"),
					Kind:      transform.Patch,
					Patch:     d,
				},
			},
		}

		_, err := run("bundle.zip", src, rules)
		Expect(err).To(HaveOccurred())
	})
})
