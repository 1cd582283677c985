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

// Command zzfind evaluates a find(1)-style predicate expression against a
// tree, descending into recognized archives and compressed streams the
// same way the other zz tools do.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aunkrig/zz-sub002/cli"
	"github.com/aunkrig/zz-sub002/find"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	if wantsHelp(argv) {
		_ = manual().Help()
		return cli.ExitOK
	}

	rest, common := cli.ExtractCommonFlags(argv)
	common.ApplyLogging(os.Stderr)

	roots, exprArgs := cli.SplitRootsAndExpression(rest)
	// -keep-going is a plain token inside the expression argv, not part of
	// the predicate grammar itself; pull it out before handing the rest to
	// the parser.
	exprArgs, keepGoing := extractKeepGoing(exprArgs)
	if len(roots) == 0 {
		roots = []string{"."}
	}

	expr, hasAction, err := find.Parse(exprArgs)
	if err != nil {
		fmt.Fprintln(os.Stderr, "zzfind:", err)
		return cli.ExitUsage
	}

	opts, err := common.NodeOptions()
	if err != nil {
		fmt.Fprintln(os.Stderr, "zzfind:", err)
		return cli.ExitUsage
	}

	sink := &cli.ErrorSink{Stderr: os.Stderr, KeepGoing: keepGoing}
	opts.OnError = sink.Handler()

	ev := &find.Evaluator{Stdout: os.Stdout, Stderr: os.Stderr}

	ctx := context.Background()
	for _, r := range roots {
		if err := find.Run(ctx, r, expr, hasAction, ev, opts); err != nil {
			fmt.Fprintln(os.Stderr, "zzfind:", err)
			return cli.ExitUsage
		}
	}
	if sink.Occurred() {
		return cli.ExitSecondary
	}
	return cli.ExitOK
}

func extractKeepGoing(args []string) ([]string, bool) {
	out := make([]string, 0, len(args))
	found := false
	for _, a := range args {
		if a == "-keep-going" {
			found = true
			continue
		}
		out = append(out, a)
	}
	return out, found
}

func wantsHelp(argv []string) bool {
	for _, a := range argv {
		if a == "--help" || a == "-h" {
			return true
		}
	}
	return false
}

// manual builds a throwaway cobra command purely to render --help the way
// every other zz command does; zzfind's own expression argv bypasses
// cobra's flag parser entirely (see cli.SplitRootsAndExpression), so no
// live command tree is built for normal invocations.
func manual() *cobra.Command {
	return &cobra.Command{
		Use:   "zzfind [path...] [expression]",
		Short: "Evaluate a find-style predicate expression over a tree",
		Long: "zzfind walks one or more trees, descending into recognized archives\n" +
			"and compressed streams, and evaluates a predicate expression against\n" +
			"every node reached. With no action in the expression, -print is\n" +
			"implied.\n\n" +
			"Common flags: --nowarn, -q/--quiet, --verbose, --debug,\n" +
			"--look-into <fmt-glob>:<path-glob>.",
	}
}
