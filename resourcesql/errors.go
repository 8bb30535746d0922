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

package resourcesql

import "github.com/nabbar/cage/errors"

const (
	ErrorDriverUnknown errors.CodeError = iota + errors.MinPkgCageResSQL
	ErrorOpenFailed
	ErrorPingFailed
	ErrorPoolFailed
	ErrorBeginFailed
	ErrorNotInTransaction
	ErrorCommitFailed
	ErrorRollbackFailed
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorDriverUnknown)
	errors.RegisterIdFctMessage(ErrorDriverUnknown, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UnknownError:
		return ""
	case ErrorDriverUnknown:
		return "resourcesql: unknown driver"
	case ErrorOpenFailed:
		return "resourcesql: gorm.Open failed"
	case ErrorPingFailed:
		return "resourcesql: ping failed"
	case ErrorPoolFailed:
		return "resourcesql: could not reach the underlying sql.DB"
	case ErrorBeginFailed:
		return "resourcesql: begin failed"
	case ErrorNotInTransaction:
		return "resourcesql: commit/rollback called outside a transaction"
	case ErrorCommitFailed:
		return "resourcesql: commit failed"
	case ErrorRollbackFailed:
		return "resourcesql: rollback failed"
	}

	return ""
}
