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

package node

import (
	"io"
	"time"
)

// Kind tags which of the three node flavors a Node represents.
type Kind uint8

const (
	Directory Kind = iota
	ArchiveContainer
	Leaf
)

func (k Kind) String() string {
	switch k {
	case Directory:
		return "directory"
	case ArchiveContainer:
		return "archive"
	case Leaf:
		return "leaf"
	default:
		return "unknown"
	}
}

// FileFormat is the tag used for a leaf whose bytes are not themselves a
// recognized archive or compression format.
const FileFormat = "FILE"

// Opener produces a fresh, independent byte stream each time it is called.
// A content-opener must be safe to invoke more than once and must reproduce
// the same bytes on every call; for an archive entry this is satisfied by
// re-reading the enclosing archive, for a plain file by reopening the path.
type Opener func() (io.ReadCloser, error)

// Node is one element yielded by Walk. Nodes are ephemeral: they carry
// enough information for a Visitor to act on them, then their resources
// (if any were held open) are released before the next sibling is produced.
type Node struct {
	// Path is the full nested path, using '/', '!' and '%' separators.
	Path string
	// Name is the local name: the final segment of Path.
	Name string
	Kind Kind
	// Size is -1 when unknown (e.g. a compressed stream whose length isn't
	// known without fully decoding it).
	Size int64
	// ModTime and HasModTime report the node's modification time, when the
	// producing format carries one.
	ModTime    time.Time
	HasModTime bool
	// Format names the producing format (an archive.Algorithm or
	// compress.Algorithm String()), or FileFormat for a plain file.
	Format string
	// Open is nil for Directory nodes; for ArchiveContainer and Leaf nodes
	// it reopens the node's raw content.
	Open Opener
	// CRC32 and HasCRC32 report a checksum, when the producing format
	// supplies one directly (e.g. zip); absent otherwise.
	CRC32    uint32
	HasCRC32 bool
}
