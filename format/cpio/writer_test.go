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

package cpio_test

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aunkrig/zz-sub002/format/cpio"
)

var _ = Describe("TC-WR-001: Cpio Writer", func() {
	It("TC-WR-002: writes entries readable back through NewReader", func() {
		files := map[string]string{"a.txt": "aaa", "b.txt": "bb"}
		buf := createTestArchive(files)

		reader, err := cpio.NewReader(newResetableReader(buf.Bytes()))
		Expect(err).ToNot(HaveOccurred())
		defer reader.Close()

		names, err := reader.List()
		Expect(err).ToNot(HaveOccurred())
		Expect(names).To(ConsistOf("a.txt", "b.txt"))
	})

	It("TC-WR-003: pads odd-sized entries so the next header stays 4-byte aligned", func() {
		files := map[string]string{"odd.txt": "five!", "even.txt": "four"}
		buf := createTestArchive(files)

		reader, err := cpio.NewReader(newResetableReader(buf.Bytes()))
		Expect(err).ToNot(HaveOccurred())
		defer reader.Close()

		rc, err := reader.Get("even.txt")
		Expect(err).ToNot(HaveOccurred())
		content, err := io.ReadAll(rc)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(content)).To(Equal("four"))
	})

	It("TC-WR-004: writes a trailer so an empty archive lists no entries", func() {
		buf := createEmptyArchive()

		reader, err := cpio.NewReader(newResetableReader(buf.Bytes()))
		Expect(err).ToNot(HaveOccurred())
		defer reader.Close()

		names, err := reader.List()
		Expect(err).ToNot(HaveOccurred())
		Expect(names).To(BeEmpty())
	})

	Describe("TC-WR-005: FromPath", func() {
		It("TC-WR-006: adds every regular file matching the filter, renamed", func() {
			tmp, err := os.MkdirTemp("", "cpio-frompath-*")
			Expect(err).ToNot(HaveOccurred())
			defer os.RemoveAll(tmp)

			Expect(os.WriteFile(filepath.Join(tmp, "keep.txt"), []byte("keep"), 0644)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(tmp, "skip.bin"), []byte("skip"), 0644)).To(Succeed())

			var buf bytes.Buffer
			writer, err := cpio.NewWriter(&nopWriteCloser{&buf})
			Expect(err).ToNot(HaveOccurred())

			err = writer.FromPath(tmp, "*.txt", func(source string) string {
				return filepath.Base(source)
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(writer.Close()).To(Succeed())

			reader, err := cpio.NewReader(newResetableReader(buf.Bytes()))
			Expect(err).ToNot(HaveOccurred())
			defer reader.Close()

			names, err := reader.List()
			Expect(err).ToNot(HaveOccurred())
			Expect(names).To(ConsistOf("keep.txt"))
		})

		It("TC-WR-007: recurses into subdirectories", func() {
			tmp, err := os.MkdirTemp("", "cpio-frompath-*")
			Expect(err).ToNot(HaveOccurred())
			defer os.RemoveAll(tmp)

			Expect(os.MkdirAll(filepath.Join(tmp, "sub"), 0755)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(tmp, "top.txt"), []byte("top"), 0644)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(tmp, "sub", "nested.txt"), []byte("nested"), 0644)).To(Succeed())

			var buf bytes.Buffer
			writer, err := cpio.NewWriter(&nopWriteCloser{&buf})
			Expect(err).ToNot(HaveOccurred())

			Expect(writer.FromPath(tmp, "*", nil)).To(Succeed())
			Expect(writer.Close()).To(Succeed())

			reader, err := cpio.NewReader(newResetableReader(buf.Bytes()))
			Expect(err).ToNot(HaveOccurred())
			defer reader.Close()

			dirFound := false
			count := 0
			reader.Walk(func(info fs.FileInfo, rc io.ReadCloser, name string, _ string) bool {
				if info.IsDir() {
					dirFound = true
				} else {
					count++
				}
				return true
			})
			Expect(dirFound).To(BeFalse())
			Expect(count).To(Equal(2))
		})
	})
})
