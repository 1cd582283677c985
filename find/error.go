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

import "github.com/aunkrig/zz-sub002/errors"

const (
	ErrorParseExpression errors.CodeError = iota + errors.MinPkgFind
	ErrorUnknownTest
	ErrorUnknownAction
	ErrorBadNumericArgument
	ErrorUnterminatedAction
	ErrorExecFailed
	ErrorNotSupported
	ErrorInterrupted
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorParseExpression)
	errors.RegisterIdFctMessage(ErrorParseExpression, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UnknownError:
		return ""
	case ErrorParseExpression:
		return "malformed find expression"
	case ErrorUnknownTest:
		return "unknown test"
	case ErrorUnknownAction:
		return "unknown action"
	case ErrorBadNumericArgument:
		return "malformed numeric argument"
	case ErrorUnterminatedAction:
		return "action is missing its closing ';'"
	case ErrorExecFailed:
		return "exec or pipe action failed"
	case ErrorNotSupported:
		return "action is not supported in this build"
	case ErrorInterrupted:
		return "evaluation was cancelled"
	}

	return ""
}
