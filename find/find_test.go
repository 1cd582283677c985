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

package find_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aunkrig/zz-sub002/find"
	"github.com/aunkrig/zz-sub002/node"
)

func runFind(root string, args []string) (string, error) {
	expr, hasAction, err := find.Parse(args)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	ev := &find.Evaluator{Stdout: &out}
	err = find.Run(context.Background(), root, expr, hasAction, ev, node.Options{})
	return out.String(), err
}

var _ = Describe("TC-FD-001: S6 scenario", func() {
	var root string

	BeforeEach(func() {
		var err error
		root, err = os.MkdirTemp("", "find-*")
		Expect(err).ToNot(HaveOccurred())
		DeferCleanup(func() { _ = os.RemoveAll(root) })

		Expect(os.MkdirAll(filepath.Join(root, "src", "pkg"), 0o755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(root, "src", "Main.java"), []byte("class Main {}"), 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(root, "src", "pkg", "Util.java"), []byte("class Util {}"), 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(root, "README.md"), []byte("readme"), 0o644)).To(Succeed())
	})

	It("TC-FD-002: '-name *.java -and -print' prints only .java paths, in deterministic order", func() {
		out, err := runFind(root, []string{"-name", "*.java", "-and", "-print"})
		Expect(err).ToNot(HaveOccurred())

		lines := strings.Split(strings.TrimSpace(out), "\n")
		Expect(lines).To(Equal([]string{
			filepath.Join(root, "src", "Main.java"),
			filepath.Join(root, "src", "pkg", "Util.java"),
		}))
	})

	It("TC-FD-003: an implicit -print applies when the expression names no action", func() {
		out, err := runFind(root, []string{"-name", "*.java"})
		Expect(err).ToNot(HaveOccurred())
		Expect(strings.TrimSpace(out)).To(ContainSubstring("Main.java"))
	})
})

var _ = Describe("TC-FD-010: boolean composition", func() {
	var root string

	BeforeEach(func() {
		var err error
		root, err = os.MkdirTemp("", "find-*")
		Expect(err).ToNot(HaveOccurred())
		DeferCleanup(func() { _ = os.RemoveAll(root) })

		Expect(os.WriteFile(filepath.Join(root, "a.txt"), []byte("a"), 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(root, "b.log"), []byte("b"), 0o644)).To(Succeed())
	})

	It("TC-FD-011: -o evaluates the right side only when the left side is false", func() {
		out, err := runFind(root, []string{"-name", "*.txt", "-o", "-name", "*.log"})
		Expect(err).ToNot(HaveOccurred())
		Expect(strings.TrimSpace(out)).To(And(ContainSubstring("a.txt"), ContainSubstring("b.log")))
	})

	It("TC-FD-012: '!' negates the following primary", func() {
		out, err := runFind(root, []string{"!", "-name", "*.txt"})
		Expect(err).ToNot(HaveOccurred())
		Expect(out).ToNot(ContainSubstring("a.txt"))
		Expect(out).To(ContainSubstring("b.log"))
	})

	It("TC-FD-013: parentheses group a sub-expression", func() {
		out, err := runFind(root, []string{"(", "-name", "*.txt", "-o", "-name", "*.log", ")", "-and", "-print"})
		Expect(err).ToNot(HaveOccurred())
		Expect(strings.TrimSpace(out)).To(And(ContainSubstring("a.txt"), ContainSubstring("b.log")))
	})
})

var _ = Describe("TC-FD-020: -prune and -delete", func() {
	var root string

	BeforeEach(func() {
		var err error
		root, err = os.MkdirTemp("", "find-*")
		Expect(err).ToNot(HaveOccurred())
		DeferCleanup(func() { _ = os.RemoveAll(root) })

		Expect(os.MkdirAll(filepath.Join(root, "skip"), 0o755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(root, "skip", "hidden.txt"), []byte("x"), 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(root, "visible.txt"), []byte("x"), 0o644)).To(Succeed())
	})

	It("TC-FD-021: -prune on a directory stops descent into it", func() {
		out, err := runFind(root, []string{"-name", "skip", "-prune", "-o", "-print"})
		Expect(err).ToNot(HaveOccurred())
		Expect(out).ToNot(ContainSubstring("hidden.txt"))
		Expect(out).To(ContainSubstring("visible.txt"))
	})

	It("TC-FD-022: -delete removes the matching file", func() {
		_, err := runFind(root, []string{"-name", "visible.txt", "-delete"})
		Expect(err).ToNot(HaveOccurred())

		_, statErr := os.Stat(filepath.Join(root, "visible.txt"))
		Expect(os.IsNotExist(statErr)).To(BeTrue())
	})
})

var _ = Describe("TC-FD-030: size and type tests", func() {
	var root string

	BeforeEach(func() {
		var err error
		root, err = os.MkdirTemp("", "find-*")
		Expect(err).ToNot(HaveOccurred())
		DeferCleanup(func() { _ = os.RemoveAll(root) })

		Expect(os.WriteFile(filepath.Join(root, "small.bin"), []byte("12345"), 0o644)).To(Succeed())
		Expect(os.MkdirAll(filepath.Join(root, "adir"), 0o755)).To(Succeed())
	})

	It("TC-FD-031: -size matches an exact byte count", func() {
		out, err := runFind(root, []string{"-name", "small.bin", "-size", "5"})
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(ContainSubstring("small.bin"))
	})

	It("TC-FD-032: -type d matches only directories", func() {
		out, err := runFind(root, []string{"-type", "d"})
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(ContainSubstring("adir"))
		Expect(out).ToNot(ContainSubstring("small.bin"))
	})
})
