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

// Package logger provides the small leveled-logging façade shared by every
// zz command. It wraps logrus the same way the rest of the family does:
// a package-level Level constant carries Log/Logf methods so call sites read
// as liblog.DebugLevel.Log("...") without threading a logger handle around.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/aunkrig/zz-sub002/logger/level"
)

var std = logrus.New()

func init() {
	std.SetOutput(os.Stderr)
	std.SetLevel(logrus.InfoLevel)
	std.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: false,
		FullTimestamp:    true,
	})
}

// Configure wires the shared logger to the options common to every zz CLI:
// --nowarn, -q/--quiet, --verbose and --debug.
func Configure(out io.Writer, lvl level.Level) {
	if out != nil {
		std.SetOutput(out)
	}
	if lvl == level.NilLevel {
		std.SetOutput(io.Discard)
		return
	}
	std.SetLevel(lvl.Logrus())
}

type Lvl level.Level

const (
	DebugLevel = Lvl(level.DebugLevel)
	InfoLevel  = Lvl(level.InfoLevel)
	WarnLevel  = Lvl(level.WarnLevel)
	ErrorLevel = Lvl(level.ErrorLevel)
)

func (l Lvl) Log(msg string) {
	std.Log(level.Level(l).Logrus(), msg)
}

func (l Lvl) Logf(format string, args ...interface{}) {
	std.Logf(level.Level(l).Logrus(), format, args...)
}
