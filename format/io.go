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

package format

import (
	"errors"
	"io"

	arcar "github.com/aunkrig/zz-sub002/format/ar"
	arccpio "github.com/aunkrig/zz-sub002/format/cpio"
	arcsevenzip "github.com/aunkrig/zz-sub002/format/sevenzip"
	arctar "github.com/aunkrig/zz-sub002/format/tar"
	arctps "github.com/aunkrig/zz-sub002/format/types"
	arczip "github.com/aunkrig/zz-sub002/format/zip"
)

var (
	ErrInvalidAlgorithm = errors.New("invalid algorithm")
)

func (a Algorithm) Reader(r io.ReadCloser) (arctps.Reader, error) {
	switch a {
	case Tar:
		return arctar.NewReader(r)
	case Zip, Jar:
		return arczip.NewReader(r)
	case SevenZip:
		return arcsevenzip.NewReader(r)
	case Cpio:
		return arccpio.NewReader(r)
	case Ar:
		return arcar.NewReader(r)
	default:
		return nil, ErrInvalidAlgorithm
	}
}

func (a Algorithm) Writer(w io.WriteCloser) (arctps.Writer, error) {
	switch a {
	case Tar:
		return arctar.NewWriter(w)
	case Zip, Jar:
		return arczip.NewWriter(w)
	case SevenZip:
		return arcsevenzip.NewWriter(w)
	case Cpio:
		return arccpio.NewWriter(w)
	case Ar:
		return arcar.NewWriter(w)
	default:
		return nil, ErrInvalidAlgorithm
	}
}
