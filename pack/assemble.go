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

// Package pack assembles an ordered list of filesystem inputs into one
// archive, optionally wrapped in a single top-level compression codec.
package pack

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/aunkrig/zz-sub002/format"
	"github.com/aunkrig/zz-sub002/format/compress"
)

// Rename rewrites a computed archive-relative entry name before it is
// written; nil leaves every name unchanged.
type Rename func(name string) string

// Options configures one Assemble call.
type Options struct {
	// Archive selects the archive format written. It must support writing
	// (format.Algorithm.CanWrite).
	Archive format.Algorithm
	// Compression, when not compress.None, wraps the whole archive stream
	// in a single top-level codec, applied once around the archive writer
	// rather than per entry.
	Compression compress.Algorithm
	// NoSort disables lexicographic ordering of a directory input's
	// members; inputs are otherwise always emitted in the caller's order,
	// and a directory's own descendants are sorted by relative path.
	NoSort bool
	// Rename, when non-nil, is applied to every computed entry name.
	Rename Rename
}

// Assemble packs roots, in order, into out. Each root is either a regular
// file (becoming one entry named by its base name) or a directory (every
// regular file beneath it becoming one entry named by its path relative to
// that root, with '/' separators, sorted unless opts.NoSort). Two inputs
// that resolve to the same final entry name raise ErrorDuplicateEntry.
func Assemble(ctx context.Context, roots []string, out io.Writer, opts Options) error {
	if !opts.Archive.CanWrite() {
		return ErrorUnsupportedWrite.Error(fmt.Errorf("%s archives cannot be written", opts.Archive.String()))
	}

	dest := out
	var wrapper io.WriteCloser
	if !opts.Compression.IsNone() {
		cw, err := opts.Compression.Writer(nopWriteCloser{out})
		if err != nil {
			return ErrorUnsupportedWrite.Error(err)
		}
		wrapper = cw
		dest = cw
	}

	writer, err := opts.Archive.Writer(nopWriteCloser{dest})
	if err != nil {
		return ErrorUnsupportedWrite.Error(err)
	}

	written := make(map[string]bool)

	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return ErrorInterrupted.Error(err)
		}

		entries, err := collect(root, opts.NoSort)
		if err != nil {
			return ErrorUnreadableSource.Error(err)
		}

		for _, e := range entries {
			if err := ctx.Err(); err != nil {
				return ErrorInterrupted.Error(err)
			}

			name := e.name
			if opts.Rename != nil {
				name = opts.Rename(name)
			}
			if written[name] {
				return ErrorDuplicateEntry.Error(fmt.Errorf("entry name %q written more than once", name))
			}
			written[name] = true

			f, err := os.Open(e.fsPath)
			if err != nil {
				return ErrorUnreadableSource.Error(err)
			}
			addErr := writer.Add(e.info, f, name, "")
			if addErr != nil {
				return addErr
			}
		}
	}

	if err := writer.Close(); err != nil {
		return err
	}
	if wrapper != nil {
		return wrapper.Close()
	}
	return nil
}

// entry is one file collected from an input root, paired with the
// archive-relative name it is written under absent any rename rule.
type entry struct {
	name   string
	fsPath string
	info   fs.FileInfo
}

// collect walks one input root and returns its member files in
// deterministic order. A plain file root yields a single entry named by
// its base name; a directory root yields one entry per regular file
// beneath it, named by its slash-separated path relative to root.
func collect(root string, noSort bool) ([]entry, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, err
	}

	if !fi.IsDir() {
		return []entry{{name: filepath.Base(root), fsPath: root, info: fi}}, nil
	}

	var out []entry
	err = filepath.Walk(root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out = append(out, entry{name: filepath.ToSlash(rel), fsPath: path, info: info})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !noSort {
		sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	}
	return out, nil
}

// nopWriteCloser adapts a caller-owned io.Writer (the ultimate destination,
// e.g. an output file managed by a CLI command) so that closing a
// compression or archive writer built on top of it never closes that
// destination out from under the caller. Mirrors transform/stream.go's
// identical need for the same reason: every format.Writer's Close also
// closes its underlying io.WriteCloser.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
