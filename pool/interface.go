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

// Package pool caps a logical resource name at a fixed instance count,
// with a LIFO free-list, a background sweeper that retires expired
// instances, and a warmer that keeps the free list near its standby
// target. Connect/disconnect calls never run under the pool's own mutex.
package pool

import (
	"context"
	"time"

	liberr "github.com/nabbar/cage/errors"
	libres "github.com/nabbar/cage/resource"
)

// DefaultSlack is the number of extra instances the sweeper and warmer are
// together allowed to hold outside of "size", covering the window where a
// background goroutine holds a busy slot for an instance not yet handed to
// a caller.
const DefaultSlack = 2

// FuncNewHooks builds the resource.Hooks for one new instance. Called
// outside the pool mutex.
type FuncNewHooks func() libres.Hooks

// Config describes one logical resource pool.
type Config struct {
	Name    string
	Size    int
	Standby int
	Slack   int

	IdleTimeout time.Duration
	MaxAge      time.Duration
	MinTime     time.Duration
	MaxTime     time.Duration

	// SweepPeriod is this pool's desired visit interval when registered
	// with a shared round-robin sweeper (see Register).
	SweepPeriod time.Duration

	New FuncNewHooks
}

// Stats is the performance-counter snapshot of one pool (spec.md's
// "performance_counters" hook, supplemented from original_source/).
type Stats struct {
	Free      int
	Busy      int
	Created   uint64
	Destroyed uint64
}

// Pool is a fixed-cap LIFO free-list of connectable instances for one
// logical resource name.
type Pool interface {
	Name() string

	// Allocate returns a connected, non-expired instance, or fails with
	// ErrorPoolEmpty (size reached, free list empty) or ErrorPoolStopped.
	Allocate(ctx context.Context) (libres.Instance, liberr.Error)
	// Release returns inst to the free list, or disconnects and drops it
	// if it is expired.
	Release(inst libres.Instance)

	// Sweep retires any expired instance currently sitting in the free
	// list, then triggers a warmup pass. A concurrent Sweep is skipped,
	// not queued.
	Sweep()
	// Warmup creates and connects instances, one at a time, until the free
	// list reaches Standby or the pool is full/stopped. A concurrent
	// Warmup is skipped, not queued.
	Warmup()
	// Stop latches the pool closed, marks every instance expired, and
	// runs a final sweep. Idempotent.
	Stop()
	Stopped() bool

	Stats() Stats
}

// New creates a Pool. Config.Slack defaults to DefaultSlack when zero.
func New(cfg Config) Pool {
	if cfg.Slack <= 0 {
		cfg.Slack = DefaultSlack
	}

	return newPool(cfg)
}
