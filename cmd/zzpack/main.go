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

// Command zzpack assembles one or more filesystem inputs into a single
// archive, optionally compressed as a whole.
package main

import (
	"context"
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/aunkrig/zz-sub002/cli"
	"github.com/aunkrig/zz-sub002/format"
	"github.com/aunkrig/zz-sub002/format/compress"
	"github.com/aunkrig/zz-sub002/pack"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	var (
		common       cli.Common
		archiveName  string
		compressName string
		renameSpec   string
		noSort       bool
	)

	v := cli.NewViper("zzpack")
	root := &cobra.Command{
		Use:   "zzpack [flags] input... output",
		Short: "Assemble filesystem inputs into a single archive",
		Long: "zzpack packs one or more files or directories, in the given order,\n" +
			"into a single archive written to the last positional argument,\n" +
			"optionally wrapped once in a top-level compression codec.",
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			common.ApplyLogging(os.Stderr)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, output := args[:len(args)-1], args[len(args)-1]

			archive := format.Parse(archiveName)
			if archiveName != "" && !archive.CanWrite() {
				return cli.Usage(fmt.Errorf("archive format %q cannot be written", archiveName))
			}
			if archiveName == "" {
				archive = format.Zip
			}

			var codec compress.Algorithm
			if compressName != "" {
				codec = compress.Parse(compressName)
			}

			var rename pack.Rename
			if renameSpec != "" {
				re, err := regexp.Compile(renameSpec)
				if err != nil {
					return cli.Usage(err)
				}
				rename = func(name string) string { return re.ReplaceAllString(name, "$1") }
			}

			out, err := os.Create(output)
			if err != nil {
				return err
			}
			defer out.Close()

			return pack.Assemble(context.Background(), inputs, out, pack.Options{
				Archive:     archive,
				Compression: codec,
				NoSort:      noSort,
				Rename:      rename,
			})
		},
	}

	cli.AddFlags(root, v, &common)
	flags := root.Flags()
	flags.StringVar(&archiveName, "archive-format", "", "archive format to write (default zip)")
	flags.StringVar(&compressName, "compression-format", "", "compression codec wrapping the whole archive")
	flags.StringVar(&renameSpec, "rename", "", "regexp applied to every entry name before it is written")
	flags.BoolVar(&noSort, "no-sort", false, "keep a directory input's members in filesystem order")

	root.SetArgs(argv)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "zzpack:", err)
		return cli.ExitUsage
	}
	return cli.ExitOK
}
