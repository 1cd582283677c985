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

package ar

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"time"
)

const (
	globalMagic = "!<arch>\n"
	headerSize  = 60
	endMagic    = "`\n"
)

var ErrHeader = errors.New("ar: corrupt member header")

type Header struct {
	Name    string
	Mode    fs.FileMode
	Uid     int
	Gid     int
	Size    int64
	ModTime time.Time
}

func (h *Header) FileInfo() fs.FileInfo {
	return headerFileInfo{h}
}

type headerFileInfo struct{ h *Header }

func (f headerFileInfo) Name() string       { return f.h.Name }
func (f headerFileInfo) Size() int64        { return f.h.Size }
func (f headerFileInfo) Mode() fs.FileMode  { return f.h.Mode }
func (f headerFileInfo) ModTime() time.Time { return f.h.ModTime }
func (f headerFileInfo) IsDir() bool        { return false }
func (f headerFileInfo) Sys() interface{}   { return f.h }

func FileInfoHeader(fi fs.FileInfo) (*Header, error) {
	if fi == nil || fi.IsDir() {
		return nil, fs.ErrInvalid
	}
	return &Header{
		Name:    fi.Name(),
		Mode:    fi.Mode(),
		Size:    fi.Size(),
		ModTime: fi.ModTime(),
	}, nil
}

func padField(s string, width int) string {
	if len(s) > width {
		s = s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

// Reader reads ar members sequentially. The global magic is read and
// checked when the Reader is created, before the first Next call.
type Reader struct {
	r       *bufio.Reader
	started bool
	cur     *Header
	read    int64
	pad     int64
}

func newStreamReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	magic := make([]byte, len(globalMagic))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, err
	}
	if string(magic) != globalMagic {
		return nil, ErrHeader
	}
	return &Reader{r: br, started: true}, nil
}

func (z *Reader) Next() (*Header, error) {
	if z.cur != nil {
		remaining := z.cur.Size - z.read
		if remaining > 0 {
			if _, err := io.CopyN(io.Discard, z.r, remaining); err != nil {
				return nil, err
			}
		}
		if z.pad > 0 {
			if _, err := io.CopyN(io.Discard, z.r, z.pad); err != nil {
				return nil, err
			}
		}
	}
	z.cur = nil
	z.read = 0
	z.pad = 0

	raw := make([]byte, headerSize)
	if _, err := io.ReadFull(z.r, raw); err != nil {
		return nil, err
	}

	if string(raw[58:60]) != endMagic {
		return nil, ErrHeader
	}

	name := strings.TrimRight(string(raw[0:16]), " ")
	name = strings.TrimSuffix(name, "/") // GNU short-name terminator

	mtimeStr := strings.TrimSpace(string(raw[16:28]))
	uidStr := strings.TrimSpace(string(raw[28:34]))
	gidStr := strings.TrimSpace(string(raw[34:40]))
	modeStr := strings.TrimSpace(string(raw[40:48]))
	sizeStr := strings.TrimSpace(string(raw[48:58]))

	mtime, err := strconv.ParseInt(orZero(mtimeStr), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: mtime %q: %v", ErrHeader, mtimeStr, err)
	}
	uid, err := strconv.Atoi(orZero(uidStr))
	if err != nil {
		return nil, fmt.Errorf("%w: uid %q: %v", ErrHeader, uidStr, err)
	}
	gid, err := strconv.Atoi(orZero(gidStr))
	if err != nil {
		return nil, fmt.Errorf("%w: gid %q: %v", ErrHeader, gidStr, err)
	}
	mode, err := strconv.ParseUint(orZero(modeStr), 8, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: mode %q: %v", ErrHeader, modeStr, err)
	}
	size, err := strconv.ParseInt(orZero(sizeStr), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: size %q: %v", ErrHeader, sizeStr, err)
	}

	h := &Header{
		Name:    name,
		Mode:    fs.FileMode(mode) & fs.ModePerm,
		Uid:     uid,
		Gid:     gid,
		Size:    size,
		ModTime: time.Unix(mtime, 0),
	}

	z.cur = h
	if size%2 != 0 {
		z.pad = 1
	}

	return h, nil
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

func (z *Reader) Read(p []byte) (int, error) {
	if z.cur == nil {
		return 0, io.EOF
	}
	remaining := z.cur.Size - z.read
	if remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}
	n, err := z.r.Read(p)
	z.read += int64(n)
	return n, err
}

// Writer encodes an ar archive. Close flushes any pad byte for the last
// member; it does not write a trailer (ar has none) or close the underlying
// writer.
type Writer struct {
	w        io.Writer
	cur      *Header
	written  int64
	wroteHdr bool
}

func newStreamWriter(w io.Writer) (*Writer, error) {
	if _, err := io.WriteString(w, globalMagic); err != nil {
		return nil, err
	}
	return &Writer{w: w}, nil
}

func (z *Writer) WriteHeader(h *Header) error {
	if z.cur != nil {
		if err := z.pad(); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	buf.WriteString(padField(h.Name+"/", 16))
	buf.WriteString(padField(strconv.FormatInt(h.ModTime.Unix(), 10), 12))
	buf.WriteString(padField(strconv.Itoa(h.Uid), 6))
	buf.WriteString(padField(strconv.Itoa(h.Gid), 6))
	buf.WriteString(padField(strconv.FormatUint(uint64(h.Mode.Perm()), 8), 8))
	buf.WriteString(padField(strconv.FormatInt(h.Size, 10), 10))
	buf.WriteString(endMagic)

	if _, err := z.w.Write(buf.Bytes()); err != nil {
		return err
	}

	z.cur = h
	z.written = 0
	return nil
}

func (z *Writer) Write(p []byte) (int, error) {
	if z.cur == nil {
		return 0, fmt.Errorf("ar: Write called with no open entry")
	}
	n, err := z.w.Write(p)
	z.written += int64(n)
	return n, err
}

func (z *Writer) pad() error {
	if z.written%2 != 0 {
		_, err := z.w.Write([]byte{'\n'})
		return err
	}
	return nil
}

func (z *Writer) Close() error {
	if z.cur == nil {
		return nil
	}
	err := z.pad()
	z.cur = nil
	return err
}
