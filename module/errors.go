/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package module

import "github.com/nabbar/cage/errors"

const (
	ErrorModuleNotFound errors.CodeError = iota + errors.MinPkgCageModule
	ErrorNotExported
	ErrorPrivateAttribute
	ErrorNotCallable
	ErrorSentinelMissing
	ErrorLoadFailed
	ErrorAcquireTimeout
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorModuleNotFound)
	errors.RegisterIdFctMessage(ErrorModuleNotFound, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UnknownError:
		return ""
	case ErrorModuleNotFound:
		return "module: no artifact found in the search path"
	case ErrorNotExported:
		return "module: attribute not exported"
	case ErrorPrivateAttribute:
		return "module: attribute is private"
	case ErrorNotCallable:
		return "module: attribute is not callable"
	case ErrorSentinelMissing:
		return "module: source manifest missing its end-of-file sentinel"
	case ErrorLoadFailed:
		return "module: failed to load artifact"
	case ErrorAcquireTimeout:
		return "module: timed out acquiring module lock before the request deadline"
	}

	return ""
}
