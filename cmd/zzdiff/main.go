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

// Command zzdiff compares two files or two directory trees and reports
// their differences in GNU diff's normal, context or unified form.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aunkrig/zz-sub002/cli"
	"github.com/aunkrig/zz-sub002/diff"
	"github.com/aunkrig/zz-sub002/nodepath"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

type diffFlags struct {
	common cli.Common

	brief             bool
	context           int
	unified           int
	ignoreWhitespace  bool
	ignoreMatching    []string
	addedFileMode     string
	deletedFileMode   string
	newFile           bool
	pathEquivalence   string
	encoding          string
	sequential        bool
	javaTokenization  bool
	ignoreCComments   bool
	ignoreCPPComments bool
	ignoreDocComments bool
	out               string
}

func run(argv []string) int {
	f := &diffFlags{context: -1, unified: -1}
	v := cli.NewViper("zzdiff")

	var exitCode int
	root := &cobra.Command{
		Use:           "zzdiff [flags] fileA fileB",
		Short:         "Compare two files or two directory trees",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			f.common.ApplyLogging(os.Stderr)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := runDiff(f, args[0], args[1])
			exitCode = code
			return err
		},
	}

	cli.AddFlags(root, v, &f.common)
	flags := root.Flags()
	// --quiet/-q (the common flag group) doubles as --brief for zzdiff,
	// matching GNU diff's own -q convention; --brief is a long-only alias.
	flags.BoolVar(&f.brief, "brief", false, "report only whether the inputs differ")
	flags.IntVarP(&f.context, "context", "c", -1, "context diff, N lines of context (default 3)")
	flags.Lookup("context").NoOptDefVal = "3"
	flags.IntVarP(&f.unified, "unified", "u", -1, "unified diff, N lines of context (default 3)")
	flags.Lookup("unified").NoOptDefVal = "3"
	flags.BoolVarP(&f.ignoreWhitespace, "ignore-whitespace", "w", false, "collapse whitespace runs before comparing")
	flags.StringArrayVarP(&f.ignoreMatching, "ignore-matching", "I", nil, "<path-glob>:<regex> line-equivalence rule, repeatable")
	flags.StringVar(&f.addedFileMode, "added-file", "report", "report|empty|ignore: how to treat a file added on the right")
	flags.StringVar(&f.deletedFileMode, "deleted-file", "report", "report|empty|ignore: how to treat a file missing on the right")
	flags.BoolVarP(&f.newFile, "new-file", "N", false, "treat an absent file as empty instead of failing")
	flags.StringVar(&f.pathEquivalence, "path-equivalence", "", "regex pairing differently-named paths across the two trees")
	flags.StringVar(&f.encoding, "encoding", "", "text encoding (only \"\" and \"utf-8\" are supported)")
	flags.BoolVar(&f.sequential, "sequential", false, "accepted for compatibility; this diff engine is always exact")
	flags.BoolVar(&f.javaTokenization, "java-tokenization", false, "compare Java token streams instead of raw text")
	flags.BoolVar(&f.ignoreCComments, "ignore-c-style-comments", false, "ignore /* */ comments under Java tokenization")
	flags.BoolVar(&f.ignoreCPPComments, "ignore-c++-style-comments", false, "ignore // comments under Java tokenization")
	flags.BoolVar(&f.ignoreDocComments, "ignore-doc-comments", false, "ignore /** */ doc comments under Java tokenization")
	flags.StringVar(&f.out, "out", "", "write output to FILE instead of stdout")

	root.SetArgs(rewritePE(argv))
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "zzdiff:", err)
		return cli.ExitUsage
	}
	return exitCode
}

// rewritePE rewrites the spec's "-pe" alias (a two-letter shorthand pflag
// cannot register directly, since a shorthand must be exactly one rune)
// into its long form before cobra ever sees it.
func rewritePE(argv []string) []string {
	out := make([]string, 0, len(argv))
	for _, a := range argv {
		switch {
		case a == "-pe":
			out = append(out, "--path-equivalence")
		case strings.HasPrefix(a, "-pe="):
			out = append(out, "--path-equivalence="+strings.TrimPrefix(a, "-pe="))
		default:
			out = append(out, a)
		}
	}
	return out
}

func diffOptions(f *diffFlags) (diff.Options, error) {
	if f.encoding != "" && !strings.EqualFold(f.encoding, "utf-8") {
		return diff.Options{}, fmt.Errorf("unsupported --encoding %q: only utf-8 is supported", f.encoding)
	}

	opts := diff.Options{
		IgnoreWhitespace:        f.ignoreWhitespace,
		JavaTokenization:        f.javaTokenization,
		IgnoreCStyleComments:    f.ignoreCComments,
		IgnoreCPlusPlusComments: f.ignoreCPPComments,
		IgnoreDocComments:       f.ignoreDocComments,
	}
	for _, spec := range f.ignoreMatching {
		eq, err := nodepath.ParseEquivalence(spec)
		if err != nil {
			return diff.Options{}, err
		}
		opts.LineEquivalence = append(opts.LineEquivalence, eq)
	}
	return opts, nil
}

func dialectAndContext(f *diffFlags) (diff.Dialect, int) {
	switch {
	case f.unified >= 0:
		return diff.Unified, f.unified
	case f.context >= 0:
		return diff.Context, f.context
	default:
		return diff.Normal, 0
	}
}

func runDiff(f *diffFlags, pathA, pathB string) (int, error) {
	opts, err := diffOptions(f)
	if err != nil {
		return cli.ExitUsage, cli.Usage(err)
	}

	infoA, errA := os.Stat(pathA)
	infoB, errB := os.Stat(pathB)
	if errA != nil && !(f.newFile && os.IsNotExist(errA)) {
		return cli.ExitUsage, errA
	}
	if errB != nil && !(f.newFile && os.IsNotExist(errB)) {
		return cli.ExitUsage, errB
	}

	isDir := (infoA != nil && infoA.IsDir()) || (infoB != nil && infoB.IsDir())
	out := os.Stdout
	if f.out != "" {
		file, err := os.Create(f.out)
		if err != nil {
			return cli.ExitUsage, err
		}
		defer file.Close()
		out = file
	}

	if isDir {
		return runTreeDiff(f, pathA, pathB, opts, out)
	}
	return runFileDiff(f, pathA, pathB, opts, out)
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	text := string(data)
	if text == "" {
		return nil, nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	return lines, nil
}

func runFileDiff(f *diffFlags, pathA, pathB string, opts diff.Options, out *os.File) (int, error) {
	linesA, err := readLines(pathA)
	if err != nil {
		return cli.ExitUsage, err
	}
	linesB, err := readLines(pathB)
	if err != nil {
		return cli.ExitUsage, err
	}
	opts.PathA, opts.PathB = pathA, pathB

	d := diff.Diff(linesA, linesB, opts)
	if len(d.Diffs) == 0 {
		return cli.ExitOK, nil
	}
	if f.brief || f.common.Quiet {
		fmt.Fprintf(out, "Files %s and %s differ\n", pathA, pathB)
		return cli.ExitSecondary, nil
	}

	dialect, context := dialectAndContext(f)
	writeHeader(out, dialect, pathA, pathB)
	fmt.Fprint(out, diff.Emit(d, dialect, context))
	return cli.ExitSecondary, nil
}

func writeHeader(out *os.File, dialect diff.Dialect, pathA, pathB string) {
	switch dialect {
	case diff.Unified:
		fmt.Fprintf(out, "--- %s\n+++ %s\n", pathA, pathB)
	case diff.Context:
		fmt.Fprintf(out, "*** %s\n--- %s\n", pathA, pathB)
	}
}

func runTreeDiff(f *diffFlags, rootA, rootB string, opts diff.Options, out *os.File) (int, error) {
	leavesA, err := collectLeaves(rootA)
	if err != nil {
		return cli.ExitUsage, err
	}
	leavesB, err := collectLeaves(rootB)
	if err != nil {
		return cli.ExitUsage, err
	}

	mode := diff.Report
	if f.newFile {
		mode = diff.CompareWithEmpty
	} else if m, ok := parseAbsentMode(f.addedFileMode); ok {
		mode = m
	} else if m, ok := parseAbsentMode(f.deletedFileMode); ok {
		mode = m
	}

	var pe *nodepath.Equivalence
	if f.pathEquivalence != "" {
		eq, err := nodepath.ParseEquivalence("**:" + f.pathEquivalence)
		if err != nil {
			return cli.ExitUsage, err
		}
		pe = &eq
	}

	entries := diff.TreeDiff(leavesA, leavesB, mode, pe, opts)

	differs := false
	dialect, context := dialectAndContext(f)
	for _, e := range entries {
		if e.Differential == nil {
			continue
		}
		differs = true
		if f.brief || f.common.Quiet {
			fmt.Fprintf(out, "Files %s and %s differ\n", e.PathA, e.PathB)
			continue
		}
		writeHeader(out, dialect, e.PathA, e.PathB)
		fmt.Fprint(out, diff.Emit(*e.Differential, dialect, context))
	}
	if differs {
		return cli.ExitSecondary, nil
	}
	return cli.ExitOK, nil
}

func parseAbsentMode(name string) (diff.AbsentMode, bool) {
	switch name {
	case "empty":
		return diff.CompareWithEmpty, true
	case "ignore":
		return diff.Ignore, true
	case "report", "":
		return diff.Report, false
	default:
		return diff.Report, false
	}
}

func collectLeaves(root string) ([]diff.Leaf, error) {
	var out []diff.Leaf
	err := walkLeaves(root, root, &out)
	return out, err
}

func walkLeaves(root, path string, out *[]diff.Leaf) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		lines, err := readLines(path)
		if err != nil {
			return err
		}
		rel, err := relSlash(root, path)
		if err != nil {
			return err
		}
		*out = append(*out, diff.Leaf{Path: rel, Lines: lines})
		return nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	for _, de := range entries {
		if err := walkLeaves(root, path+string(os.PathSeparator)+de.Name(), out); err != nil {
			return err
		}
	}
	return nil
}

func relSlash(root, path string) (string, error) {
	rel := strings.TrimPrefix(path, root)
	rel = strings.TrimPrefix(rel, string(os.PathSeparator))
	return strings.ReplaceAll(rel, string(os.PathSeparator), "/"), nil
}
