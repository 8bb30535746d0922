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

// Package request carries the per-operation ambient state a cage threads
// through every resource call and RPC hop: a deadline, a human description,
// auth tokens and a log-level override stack.
//
// Unlike the reference implementation, which stashes one Context per OS
// thread, this package makes the value explicit: callers receive a Context
// and pass it down (or attach it to a stdlib context.Context via NewParent /
// FromParent) instead of reading it from thread-local storage.
package request

import (
	"context"
	"time"

	libctx "github.com/nabbar/cage/context"
	trace "go.opentelemetry.io/otel/trace"
)

// Locker is the subset of sync.(RW)Mutex that supports non-blocking
// acquisition. Both sync.Mutex and sync.RWMutex satisfy it since Go 1.18.
type Locker interface {
	TryLock() bool
	Unlock()
}

// RLocker is the read-side counterpart of Locker, satisfied by sync.RWMutex.
type RLocker interface {
	TryRLock() bool
	RUnlock()
}

// Dict is the wire/round-trip form of a Context, used at RPC boundaries.
type Dict struct {
	UniqueID    string
	Interface   string
	Protocol    string
	Description string
	Deadline    time.Time
	Parameters  map[string]interface{}
	LogLevels   []int32
}

// Context is one logical operation's ambient state: deadline, description,
// auth tokens and a log-level override stack, propagated across goroutines
// and RPC hops by value (see Dict / ToDict / FromDict).
type Context interface {
	// UniqueID returns the opaque identifier stamped at creation.
	UniqueID() string
	Interface() string
	Protocol() string

	Description() string
	SetDescription(d string)

	// Deadline returns the absolute instant this operation must complete by.
	Deadline() time.Time

	// Remaining returns max(0, deadline-now()).
	Remaining() time.Duration

	// SetRemaining tightens the deadline to now()+d. It never extends it: if
	// the current remaining time is already shorter than d, this is a no-op.
	SetRemaining(d time.Duration)

	// Parameters is the mutable parameter bag, including the "auth_tokens"
	// sub-map conventionally stored under AuthTokensKey.
	Parameters() libctx.Config[string]

	// PushLogLevel / PopLogLevel maintain the LIFO log-level override. The
	// topmost pushed value overrides the process-default level passed to
	// EffectiveLogLevel.
	PushLogLevel(lvl int32)
	PopLogLevel()
	EffectiveLogLevel(processDefault int32) int32

	// Acquire attempts to take mu (or, if shared, to read-lock mu) before the
	// deadline elapses. It never panics and never blocks past Remaining():
	// it returns false on timeout instead of raising.
	Acquire(mu interface{}, shared bool) bool

	// Clone returns an independent copy: same deadline and description, a
	// deep copy of Parameters, used when fanning out a transaction so
	// participants cannot mutate the caller's view.
	Clone() Context

	// Span returns the OpenTelemetry span context propagated alongside the
	// deadline, if any was attached with WithSpan.
	Span() trace.SpanContext
	WithSpan(sc trace.SpanContext) Context

	// ToDict serializes the Context for an RPC hop.
	ToDict() Dict
}

// AuthTokensKey is the conventional Parameters() key for the auth-tokens
// sub-map.
const AuthTokensKey = "auth_tokens"

// New creates a Context at the edge: an interface accepting a message, or a
// synthetic boundary such as an RPC server. ctx, if non-nil, seeds the
// returned Context's Parameters with the stdlib context for cancellation
// propagation to I/O calls made under it.
func New(ctx context.Context, iface, protocol string, timeout time.Duration) Context {
	return newContext(ctx, iface, protocol, timeout)
}

// Fake returns a synthetic Context for background tasks (sweeper, warmer,
// module reload) that are not acting on behalf of any caller-supplied
// request.
func Fake(timeout time.Duration) Context {
	return newContext(context.Background(), "", "background", timeout)
}

// FromDict rebuilds a Context received over an RPC hop. The incoming
// deadline is clamped to min(incomingRemaining, overrideTimeout): this is
// how a downstream cage imposes its own ceiling while still honoring a
// shorter upstream deadline.
func FromDict(d Dict, overrideTimeout time.Duration) Context {
	return fromDict(d, overrideTimeout)
}
