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

package pool

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	liberr "github.com/nabbar/cage/errors"
	libres "github.com/nabbar/cage/resource"
)

type pool struct {
	cfg Config

	mu      sync.Mutex
	free    []libres.Instance
	busy    map[string]libres.Instance
	counter uint64

	created    uint64
	destroyed  uint64
	reserveSeq uint64

	stopped atomic.Bool

	sweepBusy  atomic.Bool
	warmupBusy atomic.Bool
	stopOnce   sync.Once
}

func newPool(cfg Config) *pool {
	p := &pool{
		cfg:  cfg,
		free: make([]libres.Instance, 0, cfg.Size),
		busy: make(map[string]libres.Instance, cfg.Size),
	}

	return p
}

func (p *pool) Name() string {
	return p.cfg.Name
}

func (p *pool) Stopped() bool {
	return p.stopped.Load()
}

func (p *pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Stats{
		Free:      len(p.free),
		Busy:      len(p.busy),
		Created:   atomic.LoadUint64(&p.created),
		Destroyed: atomic.LoadUint64(&p.destroyed),
	}
}

// newInstance builds one resource.Instance with the next counter value.
// Called outside the pool mutex.
func (p *pool) newInstance() libres.Instance {
	n := atomic.AddUint64(&p.counter, 1)

	inst := libres.New(libres.Config{
		PoolName:    p.cfg.Name,
		Counter:     n,
		IdleTimeout: p.cfg.IdleTimeout,
		MaxAge:      p.cfg.MaxAge,
		MinTime:     p.cfg.MinTime,
		MaxTime:     p.cfg.MaxTime,
	}, p.cfg.New())

	atomic.AddUint64(&p.created, 1)
	reportCreated(p.cfg.Name)

	return inst
}

// drop disconnects inst and counts it as destroyed. Called outside the
// pool mutex: Disconnect may block on network I/O.
func (p *pool) drop(inst libres.Instance) {
	inst.Disconnect()
	atomic.AddUint64(&p.destroyed, 1)
	reportDestroyed(p.cfg.Name)
}

func (p *pool) reportGauges() {
	p.mu.Lock()
	f, b := len(p.free), len(p.busy)
	p.mu.Unlock()

	reportGauges(p.cfg.Name, f, b)
}

// Allocate returns a connected, non-expired instance from the free list,
// creating one if there is room, or fails with ErrorPoolStopped /
// ErrorPoolEmpty.
func (p *pool) Allocate(ctx context.Context) (libres.Instance, liberr.Error) {
	if p.stopped.Load() {
		return nil, ErrorPoolStopped.Error(nil)
	}

	for {
		p.mu.Lock()

		if n := len(p.free); n > 0 {
			inst := p.free[n-1]
			p.free = p.free[:n-1]

			if inst.Expired() {
				p.mu.Unlock()
				p.drop(inst)
				continue
			}

			p.busy[inst.Name()] = inst
			p.mu.Unlock()

			go p.Warmup()
			p.reportGauges()

			return inst, nil
		}

		if len(p.busy) >= p.cfg.Size {
			p.mu.Unlock()
			return nil, ErrorPoolEmpty.Error(nil)
		}

		// reserve a busy slot before releasing the mutex so a concurrent
		// Allocate can't also see room for the same slot.
		placeholderName := p.reserveSlot()
		p.mu.Unlock()

		inst := p.newInstance()

		if err := inst.Connect(ctx); err != nil {
			p.mu.Lock()
			delete(p.busy, placeholderName)
			p.mu.Unlock()
			p.drop(inst)
			return nil, ErrorConnectFailed.Error(err)
		}

		p.mu.Lock()
		delete(p.busy, placeholderName)
		p.busy[inst.Name()] = inst
		p.mu.Unlock()

		p.reportGauges()
		return inst, nil
	}
}

// reserveSlot books a busy slot under a unique throwaway key so the
// free-vs-busy accounting stays correct while a new instance connects
// outside the mutex. Must be called with p.mu held.
func (p *pool) reserveSlot() string {
	p.reserveSeq++
	key := fmt.Sprintf("__reserved__%s__%d", p.cfg.Name, p.reserveSeq)
	p.busy[key] = nil
	return key
}

// Release returns inst to the free list, or disconnects and drops it if
// it is expired.
func (p *pool) Release(inst libres.Instance) {
	p.mu.Lock()
	delete(p.busy, inst.Name())

	if inst.Expired() {
		p.mu.Unlock()
		p.drop(inst)
		p.reportGauges()
		go p.Warmup()
		return
	}

	p.free = append(p.free, inst)
	p.mu.Unlock()

	p.reportGauges()
	go p.Warmup()
}

// Sweep retires expired instances sitting in the free list, then triggers
// a warmup pass. A concurrent Sweep is skipped, not queued.
func (p *pool) Sweep() {
	if !p.sweepBusy.CompareAndSwap(false, true) {
		return
	}
	defer p.sweepBusy.Store(false)

	for {
		p.mu.Lock()

		idx := -1
		for i, inst := range p.free {
			if inst.Expired() {
				idx = i
				break
			}
		}

		if idx < 0 {
			p.mu.Unlock()
			break
		}

		inst := p.free[idx]
		p.free = append(p.free[:idx], p.free[idx+1:]...)
		p.busy[inst.Name()] = inst
		p.mu.Unlock()

		p.drop(inst)

		p.mu.Lock()
		delete(p.busy, inst.Name())
		p.mu.Unlock()
	}

	p.reportGauges()
	p.Warmup()
}

// Warmup creates and connects instances, one at a time, until the free
// list reaches Standby or the pool is full/stopped. A concurrent Warmup is
// skipped, not queued.
func (p *pool) Warmup() {
	if !p.warmupBusy.CompareAndSwap(false, true) {
		return
	}
	defer p.warmupBusy.Store(false)

	for {
		if p.stopped.Load() {
			return
		}

		p.mu.Lock()
		if len(p.free) >= p.cfg.Standby || len(p.free)+len(p.busy) >= p.cfg.Size+p.cfg.Slack {
			p.mu.Unlock()
			return
		}
		placeholderName := p.reserveSlot()
		p.mu.Unlock()

		inst := p.newInstance()

		if err := inst.Connect(context.Background()); err != nil {
			p.mu.Lock()
			delete(p.busy, placeholderName)
			p.mu.Unlock()
			p.drop(inst)
			return
		}

		p.mu.Lock()
		delete(p.busy, placeholderName)
		p.free = append(p.free, inst)
		p.mu.Unlock()

		p.reportGauges()
	}
}

// Stop latches the pool closed, marks every instance expired, then runs a
// final sweep. Idempotent.
func (p *pool) Stop() {
	p.stopOnce.Do(func() {
		p.stopped.Store(true)

		p.mu.Lock()
		for _, inst := range p.free {
			inst.Expire()
		}
		for _, inst := range p.busy {
			if inst != nil {
				inst.Expire()
			}
		}
		p.mu.Unlock()

		p.Sweep()
	})
}
