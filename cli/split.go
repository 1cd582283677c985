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

package cli

// SplitRootsAndExpression separates a find(1)-style argv into its leading
// plain paths and its trailing expression. zzfind and zzpatch both accept
// an expression made of single-dash, often multi-letter tokens (-name,
// -prune, -substitute...) that pflag would otherwise try, and fail, to
// parse as its own flags; these two commands never hand their argv to
// cobra's parser, and ExtractCommonFlags recovers the common logging
// flags by hand before this helper finds where the expression begins.
//
// The split point is the first argument that starts with '-' or is "(":
// every following argument, plus that one, belongs to the expression.
func SplitRootsAndExpression(args []string) (roots []string, expr []string) {
	for i, a := range args {
		if len(a) > 0 && (a[0] == '-' || a == "(") {
			return args[:i], args[i:]
		}
	}
	return args, nil
}

// ExtractCommonFlags scans args for the shared logging/look-into flags,
// removes them, and returns the remaining arguments alongside the
// populated Common. Flags recognized: --nowarn, -q/--quiet, --verbose,
// --debug, --look-into VALUE (or --look-into=VALUE).
func ExtractCommonFlags(args []string) (rest []string, c Common) {
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--nowarn":
			c.NoWarn = true
		case a == "-q" || a == "--quiet":
			c.Quiet = true
		case a == "--verbose":
			c.Verbose = true
		case a == "--debug":
			c.Debug = true
		case a == "--look-into":
			if i+1 < len(args) {
				c.LookInto = args[i+1]
				i++
			}
		case len(a) > len("--look-into=") && a[:len("--look-into=")] == "--look-into=":
			c.LookInto = a[len("--look-into="):]
		default:
			rest = append(rest, a)
		}
	}
	return rest, c
}
