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

// Package txn is the best-effort distributed transaction coordinator: N
// participants run in parallel against their own resource pools, the
// coordinator gathers intermediate results under a caller-supplied accept
// predicate, then broadcasts a single commit/rollback decision and
// optionally waits for every participant to report it actually happened.
//
// This is explicitly not two-phase commit: the decision is made from
// intermediate (pre-commit) results, and a participant that already failed
// never commits even when the overall decision is commit.
package txn

import (
	"time"

	liberr "github.com/nabbar/cage/errors"
	librwcache "github.com/nabbar/cage/rwcache"
	libpool "github.com/nabbar/cage/pool"
	libreq "github.com/nabbar/cage/request"
	libres "github.com/nabbar/cage/resource"
)

// Resolver maps a resource name to the pool (and optional cache overlay)
// backing it. The registry package is the production implementation; tests
// supply their own.
type Resolver interface {
	Pool(name string) (libpool.Pool, bool)
	Cache(name string) (librwcache.Cache, bool)
}

// Call is the per-participant dispatch closure. Go has no runtime
// attr_chain walk onto an arbitrary adapter, so the caller supplies the
// typed call directly: this plays the role the reference implementation
// gives to resolving `resource_name.attr_chain` at the call site.
type Call func(ctx libreq.Context, inst libres.Instance) (interface{}, error)

// Participant is one leg of a Transaction.
type Participant struct {
	ResourceName string
	Call         Call

	// CacheKey, when non-nil, is the pool__cache_key override. A nil
	// pointer disables the cache for this participant regardless of
	// whether its pool has one configured; an empty string is a valid key.
	CacheKey *string
	// TTL and Weight are cache-publish knobs. Weight, if zero, defaults to
	// the measured dispatch wall time.
	TTL    time.Duration
	Weight float64
	Group  string

	SourceModule string
	Options      map[string]interface{}
	ResArgs      []interface{}
	ResKwargs    map[string]interface{}
}

// Result is one participant's reported outcome.
type Result struct {
	ParticipantIndex int
	Value            interface{}
	Err              error
	// FromCache is true when Value was served from the cache overlay
	// without dispatching Call.
	FromCache bool
	// PendingTime is the wall time between transaction start and this
	// participant's worker picking up the unit.
	PendingTime time.Duration
}

// Decision is what an Accept predicate returns after inspecting the
// results reported so far.
type Decision struct {
	// Ready false means "wait for more results".
	Ready bool
	// Value, when Ready and Err is nil, becomes the transaction's result.
	Value interface{}
	// Err, when Ready, makes the transaction a rollback whose outcome is
	// this error.
	Err error
}

// Accept is called after every participant result arrives (indexed by
// ParticipantIndex, accumulating — earlier entries are never removed).
type Accept func(results map[int]Result) Decision

// DefaultAccept implements "if any result is an exception, raise it; else
// once all n results are present, return the ordered tuple of values".
func DefaultAccept(n int) Accept {
	return defaultAccept(n)
}

// FirstSuccessAccept returns as soon as one non-error result arrives,
// discarding slower participants. Only valid with SyncCommit=false, since
// the discarded participants still owe a commit/rollback report.
func FirstSuccessAccept() Accept {
	return firstSuccessAccept()
}

// AnyNonEmptyAccept returns as soon as one result is both non-error and
// non-nil.
func AnyNonEmptyAccept() Accept {
	return anyNonEmptyAccept()
}

// Transaction is a fan-out-fan-in unit of work over N participants.
type Transaction interface {
	// Attach appends a participant and returns its ParticipantIndex.
	Attach(p Participant) int

	// Execute runs every attached participant under ctx, applies Accept
	// after each arrival, and returns the accepted value or the rollback
	// error. ctx's deadline bounds the whole operation.
	Execute(ctx libreq.Context, resolver Resolver) (interface{}, liberr.Error)
}

// Config configures one Transaction.
type Config struct {
	XID          string
	SourceModule string
	Options      map[string]interface{}
	// Accept defaults to DefaultAccept(participant count) if nil.
	Accept Accept
	// SyncCommit defaults to true: Execute waits for every participant to
	// report its commit/rollback before returning.
	SyncCommit *bool
}

// New creates a Transaction with no participants attached yet.
func New(cfg Config) Transaction {
	return newTransaction(cfg)
}

// Call1 is sugar for a one-participant Transaction whose result is
// unwrapped from the singleton outcome — the "resource_name.attr_chain(args)
// executed directly" shortcut. It is a grammatical shortcut only, not a
// different execution path: internally it builds and executes a
// single-participant Transaction.
func Call1(ctx libreq.Context, resolver Resolver, p Participant) (interface{}, liberr.Error) {
	t := New(Config{})
	t.Attach(p)

	v, err := t.Execute(ctx, resolver)
	if err != nil {
		return nil, err
	}
	if tuple, ok := v.([]interface{}); ok && len(tuple) == 1 {
		return tuple[0], nil
	}
	return v, nil
}
