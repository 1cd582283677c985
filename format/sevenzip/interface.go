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

package sevenzip

import (
	"errors"
	"io"
	"io/fs"

	"github.com/bodgit/sevenzip"

	arctps "github.com/aunkrig/zz-sub002/format/types"
)

// ErrWriteNotSupported is returned by NewWriter: the upstream decoder has no
// encoder, so 7z archives can only ever be read here, never produced.
var ErrWriteNotSupported = errors.New("sevenzip: archive creation is not supported, 7z is read-only")

type readerSize interface {
	Size() int64
}

type readerAt interface {
	io.ReadCloser
	io.ReaderAt
}

// NewReader requires r to also implement io.ReaderAt and report its total
// Size, the same random-access contract the sibling zip package needs,
// since 7z stores its metadata catalog at the end of the stream.
func NewReader(r io.ReadCloser) (arctps.Reader, error) {
	s, k := r.(readerSize)
	if !k {
		return nil, fs.ErrInvalid
	}
	ra, ok := r.(readerAt)
	if !ok {
		return nil, fs.ErrInvalid
	}

	siz := s.Size()
	if siz <= 0 {
		return nil, fs.ErrInvalid
	}

	z, err := sevenzip.NewReader(ra, siz)
	if err != nil {
		return nil, err
	}

	return &rdr{r: r, z: z}, nil
}

func NewWriter(_ io.WriteCloser) (arctps.Writer, error) {
	return nil, ErrWriteNotSupported
}
