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

package txn

import (
	"fmt"

	"github.com/nabbar/cage/errors"
)

const (
	ErrorUnknownResource errors.CodeError = iota + errors.MinPkgCageTxn
	ErrorAllocateFailed
	ErrorDispatchFailed
	ErrorExecutionTimeout
	ErrorResultsRejected
	ErrorCommitTimeout
	ErrorCommitFailed
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorUnknownResource)
	errors.RegisterIdFctMessage(ErrorUnknownResource, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UnknownError:
		return ""
	case ErrorUnknownResource:
		return "txn: resource name not found in the resolver"
	case ErrorAllocateFailed:
		return "txn: participant failed to allocate a resource instance"
	case ErrorDispatchFailed:
		return "txn: participant call failed"
	case ErrorExecutionTimeout:
		return "txn: request deadline reached before all participants reported"
	case ErrorResultsRejected:
		return "txn: accept predicate rejected the final result set"
	case ErrorCommitTimeout:
		return "txn: request deadline reached waiting for a participant commit"
	case ErrorCommitFailed:
		return "txn: participant failed to report commit"
	}

	return ""
}

// ResourceError wraps a per-participant failure with the metadata the
// coordinator's error taxonomy carries: which participant, and whether the
// failure is recoverable (the resource politely declined, e.g. pool empty
// or min_time not met) versus terminal (the adapter call itself failed or
// panicked).
type ResourceError struct {
	Err              errors.Error
	ParticipantIndex int
	Recoverable      bool
	Terminal         bool
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("participant %d: %s", e.ParticipantIndex, e.Err.Error())
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError builds a ResourceError whose wrapped errors.Error already
// carries the participant index in its message, so returning Err alone (as
// Transaction.Execute does on the rollback path) still surfaces it.
func NewResourceError(code errors.CodeError, cause error, index int, recoverable, terminal bool) *ResourceError {
	var wrapped errors.Error
	if cause != nil {
		wrapped = code.Error(fmt.Errorf("participant %d: %w", index, cause))
	} else {
		wrapped = code.Error(fmt.Errorf("participant %d", index))
	}

	return &ResourceError{
		Err:              wrapped,
		ParticipantIndex: index,
		Recoverable:      recoverable,
		Terminal:         terminal,
	}
}

// buildErr is the coordinator-level equivalent of NewResourceError for
// errors raised directly by Execute rather than by a participant (execution
// timeout, commit timeout, results rejected). index < 0 omits the
// participant reference.
func buildErr(code errors.CodeError, index int, cause error) errors.Error {
	switch {
	case cause != nil && index >= 0:
		return code.Error(fmt.Errorf("participant %d: %w", index, cause))
	case index >= 0:
		return code.Error(fmt.Errorf("participant %d", index))
	case cause != nil:
		return code.Error(cause)
	default:
		return code.Error(nil)
	}
}
