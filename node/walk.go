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
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/aunkrig/zz-sub002/format"
	"github.com/aunkrig/zz-sub002/format/compress"
	"github.com/aunkrig/zz-sub002/nodepath"
)

// Walk enumerates every node reachable under root, subject to opts, and
// delivers them to visitor in deterministic order.
func Walk(ctx context.Context, root string, visitor Visitor, opts Options) error {
	w := &walker{ctx: ctx, opts: opts}
	return w.visitPath(root, root, visitor)
}

type walker struct {
	ctx  context.Context
	opts Options
}

func osOpener(path string) Opener {
	return func() (io.ReadCloser, error) { return os.Open(path) }
}

// visitPath handles one filesystem path: a directory recurses into its
// children, a regular file runs the container descent policy.
func (w *walker) visitPath(path, fsPath string, v Visitor) error {
	if err := w.ctx.Err(); err != nil {
		return ErrorInterrupted.Error(err)
	}
	if !w.opts.included(path) {
		return nil
	}

	fi, err := os.Lstat(fsPath)
	if err != nil {
		return w.opts.onError()(path, ErrorUnreadableFile.Error(err))
	}

	switch {
	case fi.IsDir():
		return w.visitDirectory(path, fsPath, fi, v)
	case fi.Mode().IsRegular():
		return w.visitLeafCandidate(path, nodepath.Base(path), osOpener(fsPath), 0, true, v)
	default:
		// symlinks, devices, sockets etc. are reported as plain leaves with
		// no content-opener rather than followed or skipped silently.
		return v.OnFile(Node{Path: path, Name: nodepath.Base(path), Kind: Leaf, Size: -1, Format: FileFormat})
	}
}

func (w *walker) visitDirectory(path, fsPath string, fi fs.FileInfo, v Visitor) error {
	if err := v.OnDirectory(path); err != nil {
		return err
	}

	entries, err := os.ReadDir(fsPath)
	if err != nil {
		return w.opts.onError()(path, ErrorUnreadableFile.Error(err))
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	if !w.opts.NoSort {
		sort.Strings(names)
	}

	if w.opts.workers() <= 1 {
		for _, name := range names {
			if err := w.visitPath(nodepath.Join(path, name), filepath.Join(fsPath, name), v); err != nil {
				return err
			}
		}
		return nil
	}

	return w.visitDirectoryParallel(path, fsPath, names, v)
}

// visitDirectoryParallel fans child visits out across a bounded worker
// pool, buffering each child's visitor calls into its own recorder so that,
// once every child completes, results replay to v in the same sorted order
// a sequential walk would have produced.
func (w *walker) visitDirectoryParallel(path, fsPath string, names []string, v Visitor) error {
	recs := make([]*recorder, len(names))

	g, ctx := errgroup.WithContext(w.ctx)
	g.SetLimit(w.opts.workers())

	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			rec := &recorder{}
			recs[i] = rec
			sub := &walker{ctx: ctx, opts: w.opts}
			return sub.visitPath(nodepath.Join(path, name), filepath.Join(fsPath, name), rec)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, rec := range recs {
		if rec == nil {
			continue
		}
		if err := rec.replay(v); err != nil {
			return err
		}
	}

	return nil
}

// visitLeafCandidate runs the descent policy on a file-like object: probe
// for a compression wrapper, then (on the raw bytes, to keep any ReaderAt
// capability intact for formats like zip/7z) for an archive format.
func (w *walker) visitLeafCandidate(path, name string, open Opener, depth int, root bool, v Visitor) error {
	if err := w.ctx.Err(); err != nil {
		return ErrorInterrupted.Error(err)
	}
	if depth >= w.opts.maxDepth() {
		if err := w.opts.onError()(path, ErrorMaxDepthExceeded.Error()); err != nil {
			return err
		}
		return w.emitLeaf(path, name, open, FileFormat, root, v)
	}

	peek, err := open()
	if err != nil {
		return w.opts.onError()(path, err)
	}
	compAlg, _, cerr := compress.DetectOnly(peek)
	_ = peek.Close()
	if cerr != nil {
		return w.opts.onError()(path, cerr)
	}

	if compAlg != compress.None && w.opts.LookInto.Match(compAlg.String(), path) {
		childOpen := func() (io.ReadCloser, error) {
			rc, e := open()
			if e != nil {
				return nil, e
			}
			drc, e := compAlg.Reader(rc)
			if e != nil {
				_ = rc.Close()
				return nil, e
			}
			return closeBoth(drc, rc), nil
		}
		if err := v.OnArchive(path, compAlg.String()); err != nil {
			return err
		}
		return w.visitLeafCandidate(nodepath.JoinCompression(path), name, childOpen, depth+1, false, v)
	}

	rc, err := open()
	if err != nil {
		return w.opts.onError()(path, err)
	}

	archAlg, reader, bfr, err := format.Detect(rc)
	if err != nil {
		_ = rc.Close()
		if errors.Is(err, io.EOF) {
			// too short for format.Detect's 265-byte probe: no archive
			// header fits, so this is a plain leaf
			return w.emitLeaf(path, name, open, FileFormat, root, v)
		}
		return w.opts.onError()(path, err)
	}

	if archAlg == format.None || !w.opts.LookInto.Match(archAlg.String(), path) {
		_ = bfr.Close()
		return w.emitLeaf(path, name, open, FileFormat, root, v)
	}

	defer func() { _ = reader.Close() }()

	// Archive entries are visited in the reader's native order, not sorted:
	// re-writers preserve input order unless rename/remove changes membership.
	names, err := reader.List()
	if err != nil {
		return w.opts.onError()(path, err)
	}

	if err := v.OnArchive(path, archAlg.String()); err != nil {
		return err
	}

	for _, entryName := range names {
		if err := w.ctx.Err(); err != nil {
			return ErrorInterrupted.Error(err)
		}
		entryPath := nodepath.JoinEntry(path, entryName)
		entryName := entryName
		entryOpen := func() (io.ReadCloser, error) { return reader.Get(entryName) }
		if err := w.visitLeafCandidate(entryPath, nodepath.Base(entryPath), entryOpen, depth+1, false, v); err != nil {
			return err
		}
	}

	return nil
}

func (w *walker) emitLeaf(path, name string, open Opener, tag string, root bool, v Visitor) error {
	n := Node{Path: path, Name: name, Kind: Leaf, Size: -1, Format: tag, Open: open}
	if root {
		return v.OnFile(n)
	}
	return v.OnEntry(n)
}

// closeBoth wraps drc so that closing it also closes the underlying raw
// stream rc it was built from.
func closeBoth(drc io.ReadCloser, rc io.ReadCloser) io.ReadCloser {
	return &doubleCloser{ReadCloser: drc, rc: rc}
}

type doubleCloser struct {
	io.ReadCloser
	rc io.ReadCloser
}

func (d *doubleCloser) Close() error {
	err := d.ReadCloser.Close()
	if e := d.rc.Close(); err == nil {
		err = e
	}
	return err
}

// recorder buffers Visitor calls so a parallel branch's output can be
// replayed, in order, once every sibling branch has finished.
type recorder struct {
	events []func(Visitor) error
}

func (r *recorder) OnDirectory(path string) error {
	r.events = append(r.events, func(v Visitor) error { return v.OnDirectory(path) })
	return nil
}

func (r *recorder) OnArchive(path string, fmtName string) error {
	r.events = append(r.events, func(v Visitor) error { return v.OnArchive(path, fmtName) })
	return nil
}

func (r *recorder) OnEntry(n Node) error {
	r.events = append(r.events, func(v Visitor) error { return v.OnEntry(n) })
	return nil
}

func (r *recorder) OnFile(n Node) error {
	r.events = append(r.events, func(v Visitor) error { return v.OnFile(n) })
	return nil
}

func (r *recorder) replay(v Visitor) error {
	for _, ev := range r.events {
		if err := ev(v); err != nil {
			return err
		}
	}
	return nil
}

