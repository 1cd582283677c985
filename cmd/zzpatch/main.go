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

// Command zzpatch rewrites a file (or archive, recursively) through a
// chain of substitution, patch, update, add, remove and rename rules.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aunkrig/zz-sub002/cli"
	"github.com/aunkrig/zz-sub002/diff"
	"github.com/aunkrig/zz-sub002/nodepath"
	"github.com/aunkrig/zz-sub002/transform"
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

	tokens, keepGoing, checkBefore := extractPatchFlags(rest)
	if len(tokens) < 2 {
		fmt.Fprintln(os.Stderr, "zzpatch: usage: zzpatch [rules...] IN OUT")
		return cli.ExitUsage
	}
	in, out := tokens[len(tokens)-2], tokens[len(tokens)-1]
	ruleTokens := tokens[:len(tokens)-2]

	rules, err := parseRules(ruleTokens, checkBefore)
	if err != nil {
		fmt.Fprintln(os.Stderr, "zzpatch:", err)
		return cli.ExitUsage
	}

	opts := transform.Options{}

	inFile, err := os.Open(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "zzpatch:", err)
		return cli.ExitUsage
	}

	outFile, err := os.Create(out)
	if err != nil {
		fmt.Fprintln(os.Stderr, "zzpatch:", err)
		return cli.ExitUsage
	}
	defer outFile.Close()

	// -keep-going is accepted but has no effect here: Transform has no
	// per-entry recovery hook of its own, so a rejected patch or a failed
	// read aborts the whole call atomically regardless.
	_ = keepGoing

	if err := transform.Transform(context.Background(), in, inFile, outFile, rules, opts); err != nil {
		fmt.Fprintln(os.Stderr, "zzpatch:", err)
		return cli.ExitSecondary
	}
	return cli.ExitOK
}

// extractPatchFlags pulls the two bare switches (-keep-going,
// -check-before-transformation) out of argv, leaving the rule tokens and
// the trailing IN/OUT paths in place.
func extractPatchFlags(args []string) (rest []string, keepGoing, checkBefore bool) {
	for _, a := range args {
		switch a {
		case "-keep-going":
			keepGoing = true
		case "-check-before-transformation":
			checkBefore = true
		default:
			rest = append(rest, a)
		}
	}
	return rest, keepGoing, checkBefore
}

// parseRules compiles the rule tokens (everything before IN/OUT) into a
// transform.Rules. Grammar, one rule per leading token:
//
//	-substitute PATTERN REPLACEMENT PATH-GLOB [-iff always|N]
//	-patch PATH-GLOB DIFF-FILE
//	-update TARGET=SOURCE
//	-add PATH-GLOB NAME SOURCE
//	-remove PATH-GLOB
//	-rename OLD-GLOB=NEW-NAME
func parseRules(tokens []string, checkBefore bool) (*transform.Rules, error) {
	rules := &transform.Rules{}

	next := func(i *int) (string, error) {
		*i++
		if *i >= len(tokens) {
			return "", fmt.Errorf("missing argument after %q", tokens[*i-1])
		}
		return tokens[*i], nil
	}

	for i := 0; i < len(tokens); i++ {
		switch tokens[i] {
		case "-substitute":
			pattern, err := next(&i)
			if err != nil {
				return nil, err
			}
			replacement, err := next(&i)
			if err != nil {
				return nil, err
			}
			globSpec, err := next(&i)
			if err != nil {
				return nil, err
			}
			glob, err := nodepath.Parse(globSpec)
			if err != nil {
				return nil, err
			}
			re, err := transform.CompileSubstitute(pattern)
			if err != nil {
				return nil, err
			}
			cond := transform.Always
			if i+1 < len(tokens) && tokens[i+1] == "-iff" {
				i++
				condSpec, err := next(&i)
				if err != nil {
					return nil, err
				}
				cond, err = parseCondition(condSpec)
				if err != nil {
					return nil, err
				}
			}
			rules.Leaf = append(rules.Leaf, transform.LeafRule{
				Predicate: glob,
				Kind:      transform.Substitute,
				Substitute: transform.SubstituteRule{
					Regexp:                    re,
					Replacement:               replacement,
					Condition:                 cond,
					CheckBeforeTransformation: checkBefore,
				},
			})

		case "-patch":
			globSpec, err := next(&i)
			if err != nil {
				return nil, err
			}
			file, err := next(&i)
			if err != nil {
				return nil, err
			}
			glob, err := nodepath.Parse(globSpec)
			if err != nil {
				return nil, err
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return nil, err
			}
			d, _, err := diff.Parse(string(data))
			if err != nil {
				return nil, err
			}
			rules.Leaf = append(rules.Leaf, transform.LeafRule{Predicate: glob, Kind: transform.Patch, Patch: d})

		case "-update":
			spec, err := next(&i)
			if err != nil {
				return nil, err
			}
			target, source, ok := cutEquals(spec)
			if !ok {
				return nil, fmt.Errorf("-update wants TARGET=SOURCE, got %q", spec)
			}
			glob, err := nodepath.Parse(target)
			if err != nil {
				return nil, err
			}
			rules.Leaf = append(rules.Leaf, transform.LeafRule{Predicate: glob, Kind: transform.Update, Source: fileOpener(source)})

		case "-add":
			globSpec, err := next(&i)
			if err != nil {
				return nil, err
			}
			name, err := next(&i)
			if err != nil {
				return nil, err
			}
			source, err := next(&i)
			if err != nil {
				return nil, err
			}
			glob, err := nodepath.Parse(globSpec)
			if err != nil {
				return nil, err
			}
			rules.Add = append(rules.Add, transform.AddRule{Target: glob, Name: name, Source: fileOpener(source)})

		case "-remove":
			globSpec, err := next(&i)
			if err != nil {
				return nil, err
			}
			glob, err := nodepath.Parse(globSpec)
			if err != nil {
				return nil, err
			}
			rules.Remove = append(rules.Remove, transform.RemoveRule{Predicate: glob})

		case "-rename":
			spec, err := next(&i)
			if err != nil {
				return nil, err
			}
			oldSpec, newName, ok := cutEquals(spec)
			if !ok {
				return nil, fmt.Errorf("-rename wants OLD=NEW, got %q", spec)
			}
			glob, err := nodepath.Parse(oldSpec)
			if err != nil {
				return nil, err
			}
			rules.Leaf = append(rules.Leaf, transform.LeafRule{
				Predicate: glob,
				Kind:      transform.RenameLeaf,
				NewName:   func(string) string { return newName },
			})

		default:
			return nil, fmt.Errorf("unrecognized rule %q", tokens[i])
		}
	}

	return rules, nil
}

// parseCondition compiles an -iff argument: "always" or a decimal match
// count that the rule applies to exclusively.
func parseCondition(spec string) (transform.Condition, error) {
	if spec == "always" {
		return transform.Always, nil
	}
	n, err := strconv.Atoi(spec)
	if err != nil {
		return nil, fmt.Errorf("bad -iff condition %q: want \"always\" or a match count", spec)
	}
	return func(_, _ string, count int) bool { return count == n }, nil
}

func cutEquals(s string) (before, after string, ok bool) {
	i := strings.IndexByte(s, '=')
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}

func fileOpener(path string) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return os.Open(path)
	}
}

func wantsHelp(argv []string) bool {
	for _, a := range argv {
		if a == "--help" || a == "-h" {
			return true
		}
	}
	return false
}

func manual() *cobra.Command {
	return &cobra.Command{
		Use:   "zzpatch [rules...] IN OUT",
		Short: "Rewrite a file or archive through a chain of transformation rules",
		Long: "zzpatch reads IN, applies -substitute/-patch/-update/-add/-remove/\n" +
			"-rename rules to every leaf and archive entry reached (recursing\n" +
			"through every container boundary), and writes the result to OUT.\n\n" +
			"Common flags: --nowarn, -q/--quiet, --verbose, --debug,\n" +
			"--look-into <fmt-glob>:<path-glob>.",
	}
}
