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

// Command zzgrep searches file contents for a pattern, descending into
// recognized archives and compressed streams the same way the other zz
// tools do.
package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aunkrig/zz-sub002/cli"
	"github.com/aunkrig/zz-sub002/node"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

type grepFlags struct {
	common cli.Common

	patterns     []string
	ignoreCase   bool
	wholeWord    bool
	invert       bool
	count        bool
	listMatching bool
	listNonMatch bool
	lineNumber   bool
	withFilename bool
	noFilename   bool
}

func run(argv []string) int {
	f := &grepFlags{}
	v := cli.NewViper("zzgrep")

	var matched bool
	root := &cobra.Command{
		Use:           "zzgrep [flags] PATTERN [path...]",
		Short:         "Search file contents for a pattern",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			f.common.ApplyLogging(os.Stderr)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(f.patterns) == 0 {
				if len(args) == 0 {
					return cli.Usage(fmt.Errorf("missing PATTERN"))
				}
				f.patterns = []string{args[0]}
				paths = args[1:]
			}
			if len(paths) == 0 {
				paths = []string{"."}
			}

			re, err := compilePattern(f)
			if err != nil {
				return cli.Usage(err)
			}

			opts, err := f.common.NodeOptions()
			if err != nil {
				return cli.Usage(err)
			}

			m, err := search(cmd.OutOrStdout(), re, f, paths, opts)
			matched = m
			return err
		},
	}

	cli.AddFlags(root, v, &f.common)
	flags := root.Flags()
	flags.StringArrayVarP(&f.patterns, "regexp", "e", nil, "pattern to search for, repeatable")
	flags.BoolVarP(&f.ignoreCase, "ignore-case", "i", false, "case-insensitive match")
	flags.BoolVarP(&f.wholeWord, "word-regexp", "w", false, "match only whole words")
	flags.BoolVarP(&f.invert, "invert-match", "v", false, "select non-matching lines")
	flags.BoolVarP(&f.count, "count", "c", false, "print only a count of matching lines per file")
	flags.BoolVarP(&f.listMatching, "files-with-matches", "l", false, "print only names of files containing a match")
	flags.BoolVarP(&f.listNonMatch, "files-without-match", "L", false, "print only names of files with no match")
	flags.BoolVarP(&f.lineNumber, "line-number", "n", false, "prefix each matching line with its line number")
	flags.BoolVarP(&f.withFilename, "with-filename", "H", false, "always prefix matches with the file name")
	flags.BoolVarP(&f.noFilename, "no-filename", "h", false, "never prefix matches with the file name")

	root.SetArgs(argv)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "zzgrep:", err)
		return cli.ExitUsage
	}
	if matched {
		return cli.ExitOK
	}
	return cli.ExitSecondary
}

func compilePattern(f *grepFlags) (*regexp.Regexp, error) {
	alts := make([]string, len(f.patterns))
	for i, p := range f.patterns {
		if f.wholeWord {
			p = `\b(?:` + p + `)\b`
		}
		alts[i] = "(?:" + p + ")"
	}
	pattern := strings.Join(alts, "|")
	if f.ignoreCase {
		pattern = "(?i)" + pattern
	}
	return regexp.Compile(pattern)
}

// search walks every path, printing matching lines per GNU grep's output
// conventions, and reports whether any line matched across all inputs.
func search(out io.Writer, re *regexp.Regexp, f *grepFlags, paths []string, opts node.Options) (bool, error) {
	anyMatch := false
	multiplePaths := len(paths) > 1

	for _, root := range paths {
		v := &grepVisitor{out: out, re: re, f: f, showName: multiplePaths && !f.noFilename}
		if f.withFilename {
			v.showName = true
		}
		if err := node.Walk(context.Background(), root, v, opts); err != nil {
			return anyMatch, err
		}
		if v.matched {
			anyMatch = true
		}
	}
	return anyMatch, nil
}

type grepVisitor struct {
	out      io.Writer
	re       *regexp.Regexp
	f        *grepFlags
	showName bool
	matched  bool
}

func (v *grepVisitor) OnDirectory(path string) error { return nil }
func (v *grepVisitor) OnArchive(path, format string) error { return nil }

func (v *grepVisitor) OnEntry(n node.Node) error { return v.scan(n) }
func (v *grepVisitor) OnFile(n node.Node) error  { return v.scan(n) }

func (v *grepVisitor) scan(n node.Node) error {
	if n.Open == nil {
		return nil
	}
	rc, err := n.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return err
	}

	count := 0
	lineNo := 0
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<24)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		isMatch := v.re.MatchString(line)
		if v.f.invert {
			isMatch = !isMatch
		}
		if !isMatch {
			continue
		}
		count++
		if v.f.listMatching || v.f.listNonMatch || v.f.count {
			continue
		}
		v.matched = true
		v.printLine(n.Path, lineNo, line)
	}

	switch {
	case v.f.listMatching:
		if count > 0 {
			v.matched = true
			fmt.Fprintln(v.out, n.Path)
		}
	case v.f.listNonMatch:
		if count == 0 {
			v.matched = true
			fmt.Fprintln(v.out, n.Path)
		}
	case v.f.count:
		if count > 0 {
			v.matched = true
		}
		if v.showName {
			fmt.Fprintf(v.out, "%s:%d\n", n.Path, count)
		} else {
			fmt.Fprintf(v.out, "%d\n", count)
		}
	}
	return nil
}

func (v *grepVisitor) printLine(path string, lineNo int, line string) {
	var b strings.Builder
	if v.showName {
		b.WriteString(path)
		b.WriteByte(':')
	}
	if v.f.lineNumber {
		fmt.Fprintf(&b, "%d:", lineNo)
	}
	b.WriteString(line)
	fmt.Fprintln(v.out, b.String())
}
