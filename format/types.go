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

import "bytes"

type Algorithm uint8

const (
	None Algorithm = iota
	Tar
	Zip
	// Jar is a plain alias of Zip: same container codec, selected only by
	// name or filename extension, never by magic-byte probe (its bytes are
	// indistinguishable from a Zip archive).
	Jar
	// SevenZip is read-only, backed by github.com/bodgit/sevenzip.
	SevenZip
	Cpio
	Ar
)

func (a Algorithm) IsNone() bool {
	return a == None
}

// CanWrite reports whether this algorithm supports archive creation.
// SevenZip is decode-only: no maintained Go module implements a 7z encoder.
func (a Algorithm) CanWrite() bool {
	return a != None && a != SevenZip
}

func (a Algorithm) String() string {
	switch a {
	case Tar:
		return "tar"
	case Zip:
		return "zip"
	case Jar:
		return "jar"
	case SevenZip:
		return "7z"
	case Cpio:
		return "cpio"
	case Ar:
		return "ar"
	default:
		return "none"
	}
}

func (a Algorithm) Extension() string {
	switch a {
	case Tar:
		return ".tar"
	case Zip:
		return ".zip"
	case Jar:
		return ".jar"
	case SevenZip:
		return ".7z"
	case Cpio:
		return ".cpio"
	case Ar:
		return ".a"
	default:
		return ""
	}
}

// DetectHeader reports whether the given leading bytes match this
// algorithm's magic signature. Jar is deliberately excluded: its bytes are
// identical to Zip's, so probing can only ever resolve to Zip, and callers
// must fall back to the ".jar" filename extension to pick Jar instead.
func (a Algorithm) DetectHeader(h []byte) bool {
	switch a {
	case Tar:
		if len(h) < 263 {
			return false
		}
		exp := append([]byte("ustar"), 0x00)
		val := h[257:263]
		return bytes.Equal(val, exp)
	case Zip:
		if len(h) < 4 {
			return false
		}
		exp := []byte{0x50, 0x4b, 0x03, 0x04}
		return bytes.Equal(h[0:4], exp)
	case SevenZip:
		if len(h) < 6 {
			return false
		}
		exp := []byte{'7', 'z', 0xBC, 0xAF, 0x27, 0x1C}
		return bytes.Equal(h[0:6], exp)
	case Cpio:
		if len(h) < 6 {
			return false
		}
		return bytes.Equal(h[0:6], []byte("070701")) || bytes.Equal(h[0:6], []byte("070702"))
	case Ar:
		exp := []byte("!<arch>\n")
		return len(h) >= len(exp) && bytes.Equal(h[0:len(exp)], exp)
	default:
		return false
	}
}
