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
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aunkrig/zz-sub002/format"
	"github.com/aunkrig/zz-sub002/format/compress"
	arctps "github.com/aunkrig/zz-sub002/format/types"
	"github.com/aunkrig/zz-sub002/nodepath"
)

// Transform rewrites the byte stream in, whose full nested path is path,
// into out, per rules and opts. It runs the same three-way dispatch at
// every container boundary it finds along the way: a plain leaf runs the
// matching leaf rules, a compressed stream is unwrapped/recursed/re-wrapped,
// and an archive is rewritten entry by entry.
//
// in is read to completion and closed before Transform returns, regardless
// of outcome.
func Transform(ctx context.Context, path string, in io.ReadCloser, out io.Writer, rules *Rules, opts Options) error {
	if rules == nil {
		rules = &Rules{}
	}
	if err := ctx.Err(); err != nil {
		_ = in.Close()
		return ErrorInterrupted.Error(err)
	}

	content, err := io.ReadAll(in)
	closeErr := in.Close()
	if err != nil {
		return ErrorUnreadableSource.Error(err)
	}
	if closeErr != nil {
		return ErrorUnreadableSource.Error(closeErr)
	}

	compAlg, _, cerr := compress.DetectOnly(bytes.NewReader(content))
	if cerr != nil {
		return ErrorUnreadableSource.Error(cerr)
	}

	if compAlg != compress.None {
		return transformCompressed(ctx, path, content, compAlg, out, rules, opts)
	}

	archAlg, reader, bfr, derr := format.Detect(newByteReadCloser(content))
	if derr != nil {
		return ErrorUnreadableSource.Error(derr)
	}

	if archAlg == format.None {
		_ = bfr.Close()
		return transformLeaf(path, content, out, rules, opts)
	}
	defer func() { _ = reader.Close() }()

	return transformArchive(ctx, path, reader, archAlg, out, rules, opts)
}

// transformCompressed unwraps a compression codec, recurses on the
// decompressed stream, then re-wraps the result with the same codec
// unless opts.CompressionOverride names a different one.
func transformCompressed(ctx context.Context, path string, content []byte, alg compress.Algorithm, out io.Writer, rules *Rules, opts Options) error {
	dr, err := alg.Reader(bytes.NewReader(content))
	if err != nil {
		return ErrorUnreadableSource.Error(err)
	}

	var buf bytes.Buffer
	if err := Transform(ctx, nodepath.JoinCompression(path), dr, &buf, rules, opts); err != nil {
		return err
	}

	writeAlg := alg
	if opts.CompressionOverride != nil {
		writeAlg = *opts.CompressionOverride
	}

	cw, err := writeAlg.Writer(nopWriteCloser{out})
	if err != nil {
		return ErrorUnreadableSource.Error(err)
	}
	if _, err := cw.Write(buf.Bytes()); err != nil {
		_ = cw.Close()
		return err
	}
	return cw.Close()
}

// transformLeaf runs every leaf rule whose predicate matches path, in
// declaration order, chaining each rule's output into the next.
func transformLeaf(path string, content []byte, out io.Writer, rules *Rules, opts Options) error {
	data := content
	for _, rule := range rules.Leaf {
		if !rule.Predicate.Match(path) {
			continue
		}
		next, err := applyLeafRule(path, data, rule, opts)
		if err != nil {
			return err
		}
		data = next
	}
	_, err := out.Write(data)
	return err
}

func applyLeafRule(path string, data []byte, rule LeafRule, opts Options) ([]byte, error) {
	switch rule.Kind {
	case Substitute:
		return applySubstitute(path, data, rule.Substitute, opts.Charset)
	case Patch:
		return applyPatch(data, rule.Patch)
	case Update:
		if rule.Source == nil {
			return data, nil
		}
		rc, err := rule.Source()
		if err != nil {
			return nil, ErrorUnreadableSource.Error(err)
		}
		defer func() { _ = rc.Close() }()
		replaced, err := io.ReadAll(rc)
		if err != nil {
			return nil, ErrorUnreadableSource.Error(err)
		}
		return replaced, nil
	case RenameLeaf, NoOp:
		// RenameLeaf changes only the entry name an enclosing archive
		// writes this leaf back under; its bytes pass through unchanged.
		// The name itself is computed by renamedName, consulted by the
		// archive case before it recurses into this entry.
		return data, nil
	default:
		return data, nil
	}
}

// renamedName folds every matching RenameLeaf rule's NewName over name, in
// declaration order, so a chain of rename rules composes the same way a
// chain of substitute rules does.
func renamedName(leaf []LeafRule, entryPath, name string) string {
	out := name
	for _, r := range leaf {
		if r.Kind != RenameLeaf || r.NewName == nil {
			continue
		}
		if !r.Predicate.Match(entryPath) {
			continue
		}
		out = r.NewName(out)
	}
	return out
}

func removed(rules []RemoveRule, path string) bool {
	for _, r := range rules {
		if r.Predicate.Match(path) {
			return true
		}
	}
	return false
}

// transformArchive rewrites an archive entry by entry: input entries keep
// their native order (dropped ones aside), renamed or not, each recursed
// through Transform; add rules whose target matches this archive's own
// path are appended afterward, in declaration order.
func transformArchive(ctx context.Context, path string, reader arctps.Reader, alg format.Algorithm, out io.Writer, rules *Rules, opts Options) error {
	if !alg.CanWrite() {
		return ErrorUnsupportedWrite.Error(fmt.Errorf("%s archives cannot be re-encoded", alg.String()))
	}

	writer, err := alg.Writer(nopWriteCloser{out})
	if err != nil {
		return ErrorUnreadableSource.Error(err)
	}

	names, err := reader.List()
	if err != nil {
		return ErrorUnreadableSource.Error(err)
	}

	written := make(map[string]bool, len(names)+len(rules.Add))

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return ErrorInterrupted.Error(err)
		}

		entryPath := nodepath.JoinEntry(path, name)
		if removed(rules.Remove, entryPath) {
			continue
		}

		targetName := renamedName(rules.Leaf, entryPath, name)
		if written[targetName] {
			return ErrorDuplicateEntry.Error(fmt.Errorf("entry name %q written more than once", targetName))
		}
		written[targetName] = true

		info, err := reader.Info(name)
		if err != nil {
			return ErrorUnreadableSource.Error(err)
		}
		content, err := reader.Get(name)
		if err != nil {
			return ErrorUnreadableSource.Error(err)
		}

		var entryOut bytes.Buffer
		if err := Transform(ctx, entryPath, content, &entryOut, rules, opts); err != nil {
			return err
		}

		forcePath := ""
		if targetName != name {
			forcePath = targetName
		}
		if err := writer.Add(info, io.NopCloser(&entryOut), forcePath, ""); err != nil {
			return err
		}
	}

	for _, add := range rules.Add {
		if err := ctx.Err(); err != nil {
			return ErrorInterrupted.Error(err)
		}
		if !add.Target.Match(path) {
			continue
		}
		if written[add.Name] {
			return ErrorDuplicateEntry.Error(fmt.Errorf("added entry name %q collides with an existing entry", add.Name))
		}
		written[add.Name] = true

		if add.Source == nil {
			continue
		}
		src, err := add.Source()
		if err != nil {
			return ErrorUnreadableSource.Error(err)
		}

		var added bytes.Buffer
		if add.Rules != nil {
			if err := Transform(ctx, nodepath.JoinEntry(path, add.Name), src, &added, add.Rules, opts); err != nil {
				return err
			}
		} else {
			if _, err := io.Copy(&added, src); err != nil {
				_ = src.Close()
				return ErrorUnreadableSource.Error(err)
			}
			if err := src.Close(); err != nil {
				return ErrorUnreadableSource.Error(err)
			}
		}

		fi := newFileInfo(add.Name, int64(added.Len()), 0o644, time.Now())
		if err := writer.Add(fi, io.NopCloser(&added), "", ""); err != nil {
			return err
		}
	}

	return writer.Close()
}
