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

package find

import (
	"bytes"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

func actionPrint() Expr {
	return &actionExpr{fn: func(c *evalContext) (bool, error) {
		_, err := fmt.Fprintln(c.eval.Stdout, c.n.Path)
		return true, err
	}}
}

func actionEcho(s string) Expr {
	return &actionExpr{fn: func(c *evalContext) (bool, error) {
		_, err := fmt.Fprintln(c.eval.Stdout, s)
		return true, err
	}}
}

// actionPrintf implements -printf F args...;. F is interpolated with %p
// (path), %f (name), %s (size), %m (mtime, RFC 3339). The trailing args are
// accepted, per the grammar, but carry no further meaning of their own: the
// format string alone already names every field this action exposes.
func actionPrintf(format string, args []string) Expr {
	return &actionExpr{fn: func(c *evalContext) (bool, error) {
		out := format
		out = strings.ReplaceAll(out, "%p", c.n.Path)
		out = strings.ReplaceAll(out, "%f", c.n.Name)
		if strings.Contains(out, "%s") {
			sz, err := c.size()
			if err != nil {
				return false, err
			}
			out = strings.ReplaceAll(out, "%s", fmt.Sprintf("%d", sz))
		}
		if strings.Contains(out, "%m") {
			mt, _ := c.modTime()
			out = strings.ReplaceAll(out, "%m", mt.Format("2006-01-02T15:04:05Z07:00"))
		}
		_, err := fmt.Fprint(c.eval.Stdout, out)
		return true, err
	}}
}

func actionLs() Expr {
	return &actionExpr{fn: func(c *evalContext) (bool, error) {
		sz, err := c.size()
		if err != nil {
			sz = -1
		}
		mt, _ := c.modTime()
		_, err = fmt.Fprintf(c.eval.Stdout, "%10d %s %s %s\n", sz, c.n.Kind, mt.Format(time.RFC3339), c.n.Path)
		return true, err
	}}
}

func actionCat() Expr {
	return &actionExpr{fn: func(c *evalContext) (bool, error) {
		b, err := c.content()
		if err != nil {
			return false, err
		}
		_, err = c.eval.Stdout.Write(b)
		return true, err
	}}
}

// substituteSelf replaces every "{}" with path, the same placeholder
// find(1) itself uses, wherever it occurs inside each argument.
func substituteSelf(args []string, path string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = strings.ReplaceAll(a, "{}", path)
	}
	return out
}

func runExternal(c *evalContext, name string, args []string, stdin []byte, capture bool) ([]byte, error) {
	cmd := exec.Command(name, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	if c.eval.Stderr != nil {
		cmd.Stderr = c.eval.Stderr
	}
	if capture {
		return cmd.Output()
	}
	if c.eval.Stdout != nil {
		cmd.Stdout = c.eval.Stdout
	}
	return nil, cmd.Run()
}

func actionExec(name string, args []string) Expr {
	return &actionExpr{fn: func(c *evalContext) (bool, error) {
		resolved := substituteSelf(args, c.n.Path)
		_, err := c.eval.runner()(c, name, resolved, nil, false)
		if err != nil {
			return false, ErrorExecFailed.Error(err)
		}
		return true, nil
	}}
}

func actionPipe(name string, args []string) Expr {
	return &actionExpr{fn: func(c *evalContext) (bool, error) {
		content, err := c.content()
		if err != nil {
			return false, err
		}
		resolved := substituteSelf(args, c.n.Path)
		out, err := c.eval.runner()(c, name, resolved, content, true)
		if err != nil {
			return false, ErrorExecFailed.Error(err)
		}
		if c.eval.Stdout != nil {
			_, err = c.eval.Stdout.Write(out)
		}
		return true, err
	}}
}

// actionCopy implements -copy [-a] DIR. Without -a the entry is flattened
// to dir/basename; with -a its full nested path (archive boundaries
// rendered as nested directories) is reproduced under dir, mirroring how
// a pack assembler lays out directory members.
func actionCopy(dir string, archiveLayout bool) Expr {
	return &actionExpr{fn: func(c *evalContext) (bool, error) {
		content, err := c.content()
		if err != nil {
			return false, err
		}

		rel := c.n.Name
		if archiveLayout {
			rel = strings.NewReplacer("!", string(filepath.Separator), "%", string(filepath.Separator)).Replace(strings.TrimPrefix(c.n.Path, "/"))
		}
		dest := filepath.Join(dir, filepath.FromSlash(rel))

		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return false, err
		}
		return true, os.WriteFile(dest, content, 0o644)
	}}
}

func actionDisassemble(args []string) Expr {
	return &actionExpr{fn: func(c *evalContext) (bool, error) {
		content, err := c.content()
		if err != nil {
			return false, err
		}
		text, err := c.eval.disassembler()(c.n.Path, content)
		if err != nil {
			return false, err
		}
		_, err = fmt.Fprintln(c.eval.Stdout, text)
		return true, err
	}}
}

func newHash(alg string) (hash.Hash, error) {
	switch strings.ToLower(alg) {
	case "md5":
		return md5.New(), nil
	case "sha1":
		return sha1.New(), nil
	case "sha256":
		return sha256.New(), nil
	default:
		return nil, ErrorUnknownAction.Error(fmt.Errorf("unsupported hash algorithm %q", alg))
	}
}

// actionDigest and actionChecksum are the same mechanism under two names
// (spec.md lists both -digest and -checksum as distinct actions, but
// neither is given a differing meaning beyond the hash selected by ALG).
func actionDigest(alg string) Expr { return hashAction(alg) }

func actionChecksum(alg string) Expr { return hashAction(alg) }

func hashAction(alg string) Expr {
	return &actionExpr{fn: func(c *evalContext) (bool, error) {
		h, err := newHash(alg)
		if err != nil {
			return false, err
		}
		content, err := c.content()
		if err != nil {
			return false, err
		}
		h.Write(content)
		_, err = fmt.Fprintf(c.eval.Stdout, "%s  %s\n", hex.EncodeToString(h.Sum(nil)), c.n.Path)
		return true, err
	}}
}

func actionPrune() Expr {
	return &actionExpr{fn: func(c *evalContext) (bool, error) {
		c.pruned = true
		return true, nil
	}}
}

func actionDelete() Expr {
	return &actionExpr{fn: func(c *evalContext) (bool, error) {
		c.deleted = true
		return true, nil
	}}
}
