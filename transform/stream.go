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
	"bytes"
	"io"
	"io/fs"
	"time"
)

// byteReadCloser adapts a fully buffered []byte to io.ReadCloser while
// still exposing ReadAt and Seek through the embedded *bytes.Reader, the
// capabilities format.Detect needs to probe a zip or 7z catalog. Archive
// entry streams are one-shot (most backends hand back a sequential
// io.ReadCloser with no way to rewind), so nested containers inside an
// entry can only be probed this way: buffer the entry once, then let both
// detection passes and the eventual leaf/archive rewrite work off the same
// in-memory copy.
type byteReadCloser struct {
	*bytes.Reader
}

func (byteReadCloser) Close() error { return nil }

func newByteReadCloser(b []byte) io.ReadCloser {
	return byteReadCloser{bytes.NewReader(b)}
}

// nopWriteCloser adapts an io.Writer the caller still owns (and will close
// itself) to the io.WriteCloser a compressor or archive writer expects.
// Every archive Writer's Close also closes the stream it was built from, so
// without this the caller's own writer would be closed out from under it
// as soon as one nested Transform call finished.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// fileInfo is a minimal fs.FileInfo for synthetic entries this package
// writes itself (additions inserted by an AddRule), in the same shape as
// the headerFileInfo adapters the format backends build from their own
// on-disk headers.
type fileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func newFileInfo(name string, size int64, mode fs.FileMode, modTime time.Time) fileInfo {
	return fileInfo{name: name, size: size, mode: mode, modTime: modTime}
}

func (f fileInfo) Name() string       { return f.name }
func (f fileInfo) Size() int64        { return f.size }
func (f fileInfo) Mode() fs.FileMode  { return f.mode }
func (f fileInfo) ModTime() time.Time { return f.modTime }
func (f fileInfo) IsDir() bool        { return f.mode.IsDir() }
func (f fileInfo) Sys() interface{}   { return nil }
