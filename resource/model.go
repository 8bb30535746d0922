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

package resource

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	liberr "github.com/nabbar/cage/errors"
)

type instance struct {
	cfg   Config
	hooks Hooks

	name string

	createdAt time.Time

	mu    sync.Mutex
	state State
	xid   string

	expiredLatch atomic.Bool
	lastReset    atomic.Value // time.Time
}

func newInstance(cfg Config, hooks Hooks) *instance {
	i := &instance{
		cfg:       cfg,
		hooks:     hooks,
		name:      cfg.PoolName + "/" + strconv.FormatUint(cfg.Counter, 10),
		createdAt: time.Now(),
		state:     StateCreated,
	}

	i.lastReset.Store(i.createdAt)

	return i
}

func (i *instance) Name() string     { return i.name }
func (i *instance) PoolName() string { return i.cfg.PoolName }
func (i *instance) Hooks() Hooks     { return i.hooks }

func (i *instance) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

func (i *instance) XID() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.xid
}

func (i *instance) Expire() {
	i.expiredLatch.Store(true)
}

func (i *instance) Expired() bool {
	if i.expiredLatch.Load() {
		return true
	}

	if i.cfg.MaxAge > 0 && time.Since(i.createdAt) >= i.cfg.MaxAge {
		return true
	}

	if i.cfg.IdleTimeout > 0 {
		last, _ := i.lastReset.Load().(time.Time)
		if time.Since(last) >= i.cfg.IdleTimeout {
			return true
		}
	}

	return false
}

func (i *instance) TTL() time.Duration {
	idleRemaining := time.Duration(1<<63 - 1)
	ageRemaining := time.Duration(1<<63 - 1)

	if i.cfg.IdleTimeout > 0 {
		last, _ := i.lastReset.Load().(time.Time)
		idleRemaining = i.cfg.IdleTimeout - time.Since(last)
	}

	if i.cfg.MaxAge > 0 {
		ageRemaining = i.cfg.MaxAge - time.Since(i.createdAt)
	}

	if idleRemaining < ageRemaining {
		if idleRemaining < 0 {
			return 0
		}
		return idleRemaining
	}

	if ageRemaining < 0 {
		return 0
	}
	return ageRemaining
}

func (i *instance) MinTime() time.Duration { return i.cfg.MinTime }
func (i *instance) MaxTime() time.Duration { return i.cfg.MaxTime }

func (i *instance) resetIdle() {
	i.lastReset.Store(time.Now())
}

func (i *instance) Connect(ctx context.Context) liberr.Error {
	i.mu.Lock()
	if i.state != StateCreated {
		i.mu.Unlock()
		return ErrorInvalidState.Error(nil)
	}
	i.mu.Unlock()

	if err := i.hooks.Connect(ctx); err != nil {
		i.mu.Lock()
		i.state = StateGone
		i.mu.Unlock()
		i.expiredLatch.Store(true)
		return ErrorConnectFailed.Error(err)
	}

	i.mu.Lock()
	i.state = StateIdle
	i.mu.Unlock()
	i.resetIdle()

	return nil
}

func (i *instance) Disconnect() {
	i.mu.Lock()
	if i.state == StateGone {
		i.mu.Unlock()
		return
	}
	i.state = StateGone
	i.mu.Unlock()

	i.expiredLatch.Store(true)
	i.hooks.Disconnect()
}

func (i *instance) BeginTransaction(xid string, sourceModule string, options map[string]interface{}, resArgs []interface{}, resKwargs map[string]interface{}) liberr.Error {
	i.mu.Lock()
	if i.state != StateIdle {
		i.mu.Unlock()
		return ErrorInvalidState.Error(nil)
	}
	i.state = StateInXA
	i.xid = xid
	i.mu.Unlock()

	if err := i.hooks.BeginTransaction(xid, sourceModule, options, resArgs, resKwargs); err != nil {
		i.mu.Lock()
		i.state = StateIdle
		i.xid = ""
		i.mu.Unlock()
		return ErrorBeginTransactionFailed.Error(err)
	}

	return nil
}

func (i *instance) Commit(ctx context.Context) liberr.Error {
	i.mu.Lock()
	if i.state != StateInXA {
		i.mu.Unlock()
		return ErrorInvalidState.Error(nil)
	}
	i.mu.Unlock()

	err := i.hooks.Commit(ctx)

	i.mu.Lock()
	i.state = StateIdle
	i.xid = ""
	i.mu.Unlock()

	if err != nil {
		i.expiredLatch.Store(true)
		return ErrorCommitFailed.Error(err)
	}

	i.resetIdle()
	return nil
}

func (i *instance) Rollback(ctx context.Context) liberr.Error {
	i.mu.Lock()
	if i.state != StateInXA {
		i.mu.Unlock()
		return ErrorInvalidState.Error(nil)
	}
	i.mu.Unlock()

	err := i.hooks.Rollback(ctx)

	i.mu.Lock()
	i.state = StateIdle
	i.xid = ""
	i.mu.Unlock()

	if err != nil {
		i.expiredLatch.Store(true)
		return ErrorRollbackFailed.Error(err)
	}

	i.resetIdle()
	return nil
}
