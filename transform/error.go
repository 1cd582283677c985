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

import "github.com/aunkrig/zz-sub002/errors"

const (
	ErrorUnreadableSource errors.CodeError = iota + errors.MinPkgTransform
	ErrorUnsupportedWrite
	ErrorUnsupportedCharset
	ErrorPatchRejected
	ErrorDuplicateEntry
	ErrorInterrupted
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorUnreadableSource)
	errors.RegisterIdFctMessage(ErrorUnreadableSource, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UnknownError:
		return ""
	case ErrorUnreadableSource:
		return "cannot read the contents being transformed"
	case ErrorUnsupportedWrite:
		return "archive format has no writer, cannot re-encode on output"
	case ErrorUnsupportedCharset:
		return "requested charset is not supported"
	case ErrorPatchRejected:
		return "patch context does not match the input being transformed"
	case ErrorDuplicateEntry:
		return "rename or add rule produced a duplicate entry name"
	case ErrorInterrupted:
		return "transform was cancelled"
	}

	return ""
}
