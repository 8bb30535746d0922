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

// Package resource defines the connectable, expiring endpoint that every
// concrete adapter (SQL, SMTP, broker, …) wraps: a lifecycle state machine
// enforced once, generically, with connect/disconnect/begin/commit/rollback
// left as pure delegation points to a per-adapter Hooks implementation.
package resource

import (
	"context"
	"time"

	liberr "github.com/nabbar/cage/errors"
)

// State is one node of the instance lifecycle state machine.
type State uint8

const (
	StateCreated State = iota
	StateIdle
	StateInXA
	StateGone
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateIdle:
		return "idle"
	case StateInXA:
		return "in_xa"
	case StateGone:
		return "gone"
	default:
		return "unknown"
	}
}

// Hooks is implemented by a concrete resource adapter. Every method is a
// pure delegation point: the Instance enforces the state machine around
// these calls, the hooks never need to check or mutate lifecycle state.
type Hooks interface {
	// Connect opens the underlying endpoint. Any error leaves the instance
	// gone — it is never returned to the pool.
	Connect(ctx context.Context) error
	// Disconnect releases the underlying endpoint. Always called exactly
	// once, from any state but gone.
	Disconnect()
	// BeginTransaction records the transaction context on the underlying
	// endpoint. Implementations that have no network round-trip for a
	// begin should treat this as a no-op.
	BeginTransaction(xid string, sourceModule string, options map[string]interface{}, resArgs []interface{}, resKwargs map[string]interface{}) error
	// Commit is the best-effort final step of a transaction (see the txn
	// package for why this is not two-phase commit).
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Instance is one connectable, expiring endpoint with lifecycle hooks,
// checked out of exactly one ResourcePool at a time.
type Instance interface {
	// Name is pool_name + "/" + a monotonic per-pool counter.
	Name() string
	PoolName() string

	State() State

	// Expire is idempotent and irreversible; callable from any goroutine at
	// any state other than gone.
	Expire()
	// Expired is true if the latch was set, or idle_timeout elapsed since
	// the last reset, or max_age elapsed since creation.
	Expired() bool

	// TTL is min(idle_remaining, max_age_remaining).
	TTL() time.Duration

	MinTime() time.Duration
	MaxTime() time.Duration

	// Connect transitions created -> idle. Any error leaves the instance
	// gone.
	Connect(ctx context.Context) liberr.Error
	// Disconnect transitions any non-gone state -> gone.
	Disconnect()

	// BeginTransaction transitions idle -> in_xa.
	BeginTransaction(xid string, sourceModule string, options map[string]interface{}, resArgs []interface{}, resKwargs map[string]interface{}) liberr.Error
	// Commit / Rollback transition in_xa -> idle and reset the idle
	// timeout, unless the hook itself fails, in which case the instance is
	// expired.
	Commit(ctx context.Context) liberr.Error
	Rollback(ctx context.Context) liberr.Error

	// XID returns the transaction id recorded by the last BeginTransaction,
	// or "" if none is in progress.
	XID() string

	// Hooks returns the concrete Hooks backing this instance. A
	// Participant.Call type-asserts it to the adapter's own interface to
	// reach domain methods (run a query, send a message, …) the generic
	// Instance surface does not expose.
	Hooks() Hooks
}

// Config carries the lifecycle parameters a ResourcePool assigns to every
// instance it creates.
type Config struct {
	PoolName    string
	Counter     uint64
	IdleTimeout time.Duration
	MaxAge      time.Duration
	MinTime     time.Duration
	MaxTime     time.Duration
}

// New wraps hooks in an Instance enforcing the state machine described by
// the package doc.
func New(cfg Config, hooks Hooks) Instance {
	return newInstance(cfg, hooks)
}
