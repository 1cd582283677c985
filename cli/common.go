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

// Package cli holds the flag group, configuration precedence and error
// propagation policy shared by every zz command tree (zzfind, zzgrep,
// zzdiff, zzpatch, zzpack), built directly on spf13/cobra and spf13/viper
// the way the rest of the retrieved corpus wires its command-line tools.
package cli

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aunkrig/zz-sub002/logger"
	"github.com/aunkrig/zz-sub002/logger/level"
	"github.com/aunkrig/zz-sub002/node"
	"github.com/aunkrig/zz-sub002/nodepath"
)

// Common is the flag group spec.md §6 gives to every tool: the logging
// knobs and the container descent policy.
type Common struct {
	NoWarn   bool
	Quiet    bool
	Verbose  bool
	Debug    bool
	LookInto string
}

// AddFlags registers Common's fields as persistent flags on cmd and binds
// each through v, so that viper's own flag > env > config-file precedence
// applies uniformly across every tool.
func AddFlags(cmd *cobra.Command, v *viper.Viper, c *Common) {
	flags := cmd.PersistentFlags()
	flags.BoolVar(&c.NoWarn, "nowarn", false, "suppress warning-level log output")
	flags.BoolVarP(&c.Quiet, "quiet", "q", false, "suppress all non-essential output")
	flags.BoolVar(&c.Verbose, "verbose", false, "enable verbose (info-level) logging")
	flags.BoolVar(&c.Debug, "debug", false, "enable debug-level logging")
	flags.StringVar(&c.LookInto, "look-into", "", "<fmt-glob>:<path-glob> selecting which recognized containers are descended into")

	for _, name := range []string{"nowarn", "quiet", "verbose", "debug", "look-into"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}
}

// NewViper builds a viper instance reading, in ascending precedence,
// a config file named name (searched in the working directory and the
// user's home directory) and ZZ_-prefixed environment variables; flags
// bound via AddFlags take precedence over both once parsed.
func NewViper(name string) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("ZZ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(name)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	_ = v.ReadInConfig()

	return v
}

// level maps the common flag group to the logger level it selects:
// --debug and --verbose raise verbosity, -q/--quiet silences everything,
// --nowarn raises the floor to error-only. When several are given,
// -q/--quiet wins, then --debug, then --verbose, then --nowarn.
func (c *Common) level() level.Level {
	switch {
	case c.Quiet:
		return level.NilLevel
	case c.Debug:
		return level.DebugLevel
	case c.Verbose:
		return level.InfoLevel
	case c.NoWarn:
		return level.ErrorLevel
	default:
		return level.WarnLevel
	}
}

// ApplyLogging configures the shared logger per the common flag group.
func (c *Common) ApplyLogging(out io.Writer) {
	logger.Configure(out, c.level())
}

// NodeOptions parses --look-into, when given, into a node.Options'
// container descent policy. The zero value (flag unset) keeps the
// enumerator's own "always descend" default.
func (c *Common) NodeOptions() (node.Options, error) {
	var opts node.Options
	if c.LookInto == "" {
		return opts, nil
	}
	li, err := nodepath.ParseLookInto(c.LookInto)
	if err != nil {
		return node.Options{}, err
	}
	opts.LookInto = li
	return opts, nil
}
