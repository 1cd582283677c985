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

package sevenzip_test

import (
	"errors"
	"io"
	"io/fs"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aunkrig/zz-sub002/format/sevenzip"
)

// plainReadCloser implements only io.ReadCloser, lacking both Size() and
// ReadAt, to exercise NewReader's type-assertion guards.
type plainReadCloser struct{}

func (plainReadCloser) Read(p []byte) (int, error) { return 0, io.EOF }
func (plainReadCloser) Close() error                { return nil }

// sizedNoReaderAt reports a Size but still doesn't implement io.ReaderAt.
type sizedNoReaderAt struct{ plainReadCloser }

func (sizedNoReaderAt) Size() int64 { return 128 }

// fakeRandomAccess implements Size, ReaderAt and Close over an in-memory
// byte slice, satisfying NewReader's structural requirements without being
// a valid 7z container.
type fakeRandomAccess struct {
	data []byte
}

func (f *fakeRandomAccess) Read(p []byte) (int, error)                 { return 0, io.EOF }
func (f *fakeRandomAccess) Close() error                               { return nil }
func (f *fakeRandomAccess) Size() int64                                { return int64(len(f.data)) }
func (f *fakeRandomAccess) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.data[off:])
	return n, nil
}

var _ = Describe("TC-RD-001: Sevenzip Reader", func() {
	Describe("TC-RD-002: NewReader structural guards", func() {
		It("TC-RD-003: rejects a stream with neither Size nor ReaderAt", func() {
			_, err := sevenzip.NewReader(plainReadCloser{})
			Expect(err).To(MatchError(fs.ErrInvalid))
		})

		It("TC-RD-004: rejects a stream with Size but no ReaderAt", func() {
			_, err := sevenzip.NewReader(sizedNoReaderAt{})
			Expect(err).To(MatchError(fs.ErrInvalid))
		})

		It("TC-RD-005: rejects a zero-length stream", func() {
			_, err := sevenzip.NewReader(&fakeRandomAccess{data: nil})
			Expect(err).To(MatchError(fs.ErrInvalid))
		})

		It("TC-RD-006: rejects a stream that isn't a valid 7z container", func() {
			_, err := sevenzip.NewReader(&fakeRandomAccess{data: []byte("not a seven-zip archive, just text")})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("TC-RD-007: NewWriter", func() {
		It("TC-RD-008: always reports archive creation as unsupported", func() {
			_, err := sevenzip.NewWriter(nil)
			Expect(errors.Is(err, sevenzip.ErrWriteNotSupported)).To(BeTrue())
		})
	})
})
