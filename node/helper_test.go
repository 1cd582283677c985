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

package node_test

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/aunkrig/zz-sub002/format/compress"
	"github.com/aunkrig/zz-sub002/format/zip"
	"github.com/aunkrig/zz-sub002/node"
)

type testFileInfo struct {
	name string
	size int64
}

func (t *testFileInfo) Name() string       { return t.name }
func (t *testFileInfo) Size() int64        { return t.size }
func (t *testFileInfo) Mode() os.FileMode  { return 0644 }
func (t *testFileInfo) ModTime() time.Time { return time.Now() }
func (t *testFileInfo) IsDir() bool        { return false }
func (t *testFileInfo) Sys() interface{}   { return nil }

// writeZip creates path as a zip archive holding files (name -> content).
func writeZip(path string, files map[string]string) error {
	b, err := zipBytes(files)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// zipBytes builds a zip archive holding files (name -> content) in memory.
func zipBytes(files map[string]string) ([]byte, error) {
	buf := &nopWriteCloser{Buffer: &bytes.Buffer{}}

	w, err := zip.NewWriter(buf)
	if err != nil {
		return nil, err
	}
	for name, content := range files {
		info := &testFileInfo{name: name, size: int64(len(content))}
		rc := io.NopCloser(bytes.NewReader([]byte(content)))
		if err := w.Add(info, rc, name, ""); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type nopWriteCloser struct {
	*bytes.Buffer
}

func (n *nopWriteCloser) Close() error { return nil }

// writeGzip creates path as a gzip-compressed file holding content.
func writeGzip(path string, content string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	gw, err := compress.Gzip.Writer(f)
	if err != nil {
		return err
	}
	if _, err := gw.Write([]byte(content)); err != nil {
		return err
	}
	return gw.Close()
}

// recordingVisitor records every callback it receives, in call order, as a
// flat slice of human-readable tags.
type recordingVisitor struct {
	events []string
	nodes  []node.Node
}

func (r *recordingVisitor) OnDirectory(path string) error {
	r.events = append(r.events, "dir:"+path)
	return nil
}

func (r *recordingVisitor) OnArchive(path string, format string) error {
	r.events = append(r.events, "archive:"+path+":"+format)
	return nil
}

func (r *recordingVisitor) OnEntry(n node.Node) error {
	r.events = append(r.events, "entry:"+n.Path)
	r.nodes = append(r.nodes, n)
	return nil
}

func (r *recordingVisitor) OnFile(n node.Node) error {
	r.events = append(r.events, "file:"+n.Path)
	r.nodes = append(r.nodes, n)
	return nil
}

func readAll(o node.Opener) (string, error) {
	rc, err := o()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	return string(b), err
}

