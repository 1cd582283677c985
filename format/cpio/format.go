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

package cpio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"
)

const (
	magic      = "070701"
	headerSize = 6 + 13*8
	trailer    = "TRAILER!!!"
)

var ErrHeader = errors.New("cpio: corrupt newc header")

// Header mirrors the fields of a single newc entry, analogous to tar.Header.
type Header struct {
	Name     string
	Mode     fs.FileMode
	Uid      int
	Gid      int
	Size     int64
	ModTime  time.Time
	Linkname string
}

func (h *Header) FileInfo() fs.FileInfo {
	return headerFileInfo{h}
}

type headerFileInfo struct{ h *Header }

func (f headerFileInfo) Name() string       { return f.h.Name }
func (f headerFileInfo) Size() int64        { return f.h.Size }
func (f headerFileInfo) Mode() fs.FileMode  { return f.h.Mode }
func (f headerFileInfo) ModTime() time.Time { return f.h.ModTime }
func (f headerFileInfo) IsDir() bool        { return f.h.Mode.IsDir() }
func (f headerFileInfo) Sys() interface{}   { return f.h }

// FileInfoHeader builds a newc Header from an fs.FileInfo, in the style of
// tar.FileInfoHeader / zip.FileInfoHeader.
func FileInfoHeader(fi fs.FileInfo, link string) (*Header, error) {
	if fi == nil {
		return nil, fs.ErrInvalid
	}

	mode := fi.Mode()
	if mode&os.ModeSymlink != 0 {
		mode = (mode &^ os.ModeSymlink) | fs.ModeSymlink
	}

	return &Header{
		Name:     fi.Name(),
		Mode:     mode,
		Size:     fi.Size(),
		ModTime:  fi.ModTime(),
		Linkname: link,
	}, nil
}

func readHex8(b []byte) (uint32, error) {
	if len(b) != 8 {
		return 0, ErrHeader
	}
	v, err := strconv.ParseUint(string(b), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrHeader, err)
	}
	return uint32(v), nil
}

func writeHex8(v uint32) []byte {
	return []byte(fmt.Sprintf("%08x", v))
}

// pad4 returns the number of bytes needed to round n up to a multiple of 4.
func pad4(n int64) int64 {
	if r := n % 4; r != 0 {
		return 4 - r
	}
	return 0
}

// Reader reads a newc cpio stream entry by entry, the same sequential-only
// contract tar.Reader exposes: Next advances past any unread bytes of the
// previous entry, Read streams the current entry's body.
type Reader struct {
	r       *bufio.Reader
	read    int64
	cur     *Header
	skipPad int64
}

func newStreamReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

func (z *Reader) Next() (*Header, error) {
	if z.cur != nil {
		remaining := z.cur.Size - z.read
		if remaining > 0 {
			if _, err := io.CopyN(io.Discard, z.r, remaining); err != nil {
				return nil, err
			}
		}
		if z.skipPad > 0 {
			if _, err := io.CopyN(io.Discard, z.r, z.skipPad); err != nil {
				return nil, err
			}
		}
	}
	z.cur = nil
	z.read = 0
	z.skipPad = 0

	raw := make([]byte, headerSize)
	if _, err := io.ReadFull(z.r, raw); err != nil {
		return nil, err
	}

	if string(raw[0:6]) != magic {
		return nil, ErrHeader
	}

	fields := make([]uint32, 13)
	for i := 0; i < 13; i++ {
		v, err := readHex8(raw[6+i*8 : 6+(i+1)*8])
		if err != nil {
			return nil, err
		}
		fields[i] = v
	}

	mode := fields[1]
	uid := fields[2]
	gid := fields[3]
	mtime := fields[5]
	fileSize := int64(fields[6])
	nameSize := int64(fields[11])

	nameBuf := make([]byte, nameSize)
	if _, err := io.ReadFull(z.r, nameBuf); err != nil {
		return nil, err
	}
	name := ""
	if nameSize > 0 {
		name = string(nameBuf[:nameSize-1]) // drop trailing NUL
	}

	if pad := pad4(int64(headerSize) + nameSize); pad > 0 {
		if _, err := io.CopyN(io.Discard, z.r, pad); err != nil {
			return nil, err
		}
	}

	if name == trailer {
		return nil, io.EOF
	}

	h := &Header{
		Name:    name,
		Mode:    cpioModeToFS(mode),
		Uid:     int(uid),
		Gid:     int(gid),
		Size:    fileSize,
		ModTime: time.Unix(int64(mtime), 0),
	}

	if h.Mode&fs.ModeSymlink != 0 {
		link := make([]byte, fileSize)
		if _, err := io.ReadFull(z.r, link); err != nil {
			return nil, err
		}
		h.Linkname = string(link)
		z.skipPad = pad4(fileSize)
		z.read = fileSize
		z.cur = h
		return h, nil
	}

	z.cur = h
	z.skipPad = pad4(fileSize)
	return h, nil
}

func (z *Reader) Read(p []byte) (int, error) {
	if z.cur == nil {
		return 0, io.EOF
	}
	if z.cur.Mode&fs.ModeSymlink != 0 {
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

const (
	modeFmt   = 0170000
	modeSock  = 0140000
	modeLink  = 0120000
	modeFile  = 0100000
	modeBlock = 0060000
	modeDir   = 0040000
	modeChar  = 0020000
	modeFifo  = 0010000
)

func cpioModeToFS(m uint32) fs.FileMode {
	perm := fs.FileMode(m & 0777)
	switch m & modeFmt {
	case modeDir:
		return perm | fs.ModeDir
	case modeLink:
		return perm | fs.ModeSymlink
	case modeFifo:
		return perm | fs.ModeNamedPipe
	case modeSock:
		return perm | fs.ModeSocket
	case modeBlock:
		return perm | fs.ModeDevice
	case modeChar:
		return perm | fs.ModeDevice | fs.ModeCharDevice
	default:
		return perm
	}
}

func fsModeToCpio(m fs.FileMode) uint32 {
	perm := uint32(m.Perm())
	switch {
	case m&fs.ModeDir != 0:
		return perm | modeDir
	case m&fs.ModeSymlink != 0:
		return perm | modeLink
	case m&fs.ModeNamedPipe != 0:
		return perm | modeFifo
	case m&fs.ModeSocket != 0:
		return perm | modeSock
	case m&fs.ModeCharDevice != 0:
		return perm | modeChar
	case m&fs.ModeDevice != 0:
		return perm | modeBlock
	default:
		return perm | modeFile
	}
}

// Writer encodes a newc cpio stream, terminated by the TRAILER!!! record on
// Close (Writer.Close does not close the underlying io.Writer).
type Writer struct {
	w       io.Writer
	cur     *Header
	written int64
	ino     uint32
}

func newStreamWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (z *Writer) WriteHeader(h *Header) error {
	if z.cur != nil {
		if err := z.finishEntry(); err != nil {
			return err
		}
	}

	z.ino++
	nameSize := int64(len(h.Name) + 1)
	fileSize := h.Size
	if h.Mode&fs.ModeSymlink != 0 {
		fileSize = int64(len(h.Linkname))
	}

	fields := [13]uint32{
		z.ino,
		fsModeToCpio(h.Mode),
		uint32(h.Uid),
		uint32(h.Gid),
		1,
		uint32(h.ModTime.Unix()),
		uint32(fileSize),
		0, 0, 0, 0,
		uint32(nameSize),
		0,
	}

	if err := z.writeRaw(magic, fields, h.Name); err != nil {
		return err
	}

	z.cur = h
	z.written = 0

	if h.Mode&fs.ModeSymlink != 0 {
		if _, err := io.WriteString(z.w, h.Linkname); err != nil {
			return err
		}
		if err := z.writePad(int64(len(h.Linkname))); err != nil {
			return err
		}
		z.cur = nil
	}

	return nil
}

func (z *Writer) writeRaw(mg string, fields [13]uint32, name string) error {
	buf := make([]byte, 0, headerSize+len(name)+1)
	buf = append(buf, []byte(mg)...)
	for _, f := range fields {
		buf = append(buf, writeHex8(f)...)
	}
	buf = append(buf, []byte(name)...)
	buf = append(buf, 0)

	if _, err := z.w.Write(buf); err != nil {
		return err
	}

	return z.writePad(int64(len(buf)))
}

func (z *Writer) writePad(n int64) error {
	if pad := pad4(n); pad > 0 {
		_, err := z.w.Write(make([]byte, pad))
		return err
	}
	return nil
}

func (z *Writer) Write(p []byte) (int, error) {
	if z.cur == nil {
		return 0, fmt.Errorf("cpio: Write called with no open entry")
	}
	n, err := z.w.Write(p)
	z.written += int64(n)
	return n, err
}

func (z *Writer) finishEntry() error {
	if z.cur == nil {
		return nil
	}
	if err := z.writePad(z.written); err != nil {
		return err
	}
	z.cur = nil
	return nil
}

// Close writes the trailer record. It does not close the underlying writer.
func (z *Writer) Close() error {
	if err := z.finishEntry(); err != nil {
		return err
	}

	z.ino++
	fields := [13]uint32{z.ino, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, uint32(len(trailer) + 1), 0}
	return z.writeRaw(magic, fields, trailer)
}
