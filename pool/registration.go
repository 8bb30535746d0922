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
	"sync"
	"time"
)

// registry is the single process-wide round-robin sweeper: one heavy thread
// visits every registered pool in turn, at sweep_period/len(pools) between
// visits of the same pool, so a slow Sweep on one pool never starves the
// others for longer than one full lap.
type registry struct {
	mu      sync.Mutex
	pools   []Pool
	period  time.Duration
	started bool
	stopCh  chan struct{}
}

var defaultRegistry = &registry{period: time.Minute}

// Register attaches p to the shared round-robin sweeper and starts the
// sweeper goroutine on first use. Safe to call from multiple pools.
func Register(p Pool) {
	defaultRegistry.register(p)
}

// SetSweepPeriod overrides the lap duration used by the shared sweeper
// before the first pool registers. Calling it after the sweeper has
// started has no effect on the current lap but takes effect on the next.
func SetSweepPeriod(d time.Duration) {
	defaultRegistry.mu.Lock()
	defaultRegistry.period = d
	defaultRegistry.mu.Unlock()
}

func (r *registry) register(p Pool) {
	r.mu.Lock()
	r.pools = append(r.pools, p)
	start := !r.started
	if start {
		r.started = true
		r.stopCh = make(chan struct{})
	}
	r.mu.Unlock()

	if start {
		go r.run()
	}
}

func (r *registry) run() {
	for {
		r.mu.Lock()
		pools := append([]Pool(nil), r.pools...)
		period := r.period
		stopCh := r.stopCh
		r.mu.Unlock()

		if len(pools) == 0 {
			select {
			case <-stopCh:
				return
			case <-time.After(period):
				continue
			}
		}

		visit := period / time.Duration(len(pools))
		if visit <= 0 {
			visit = time.Millisecond
		}

		for _, p := range pools {
			if p.Stopped() {
				continue
			}

			select {
			case <-stopCh:
				return
			case <-time.After(visit):
			}

			p.Sweep()
		}
	}
}
