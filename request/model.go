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

package request

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	libatm "github.com/nabbar/cage/atomic"
	libctx "github.com/nabbar/cage/context"
	trace "go.opentelemetry.io/otel/trace"
)

// acquirePollInterval bounds how often Acquire retries TryLock/TryRLock while
// waiting for the deadline. Short enough that a lock released just after a
// failed attempt is picked up quickly, long enough not to spin the CPU.
const acquirePollInterval = 500 * time.Microsecond

type reqCtx struct {
	id    string
	iface string
	proto string

	desc libatm.Value[string]
	dead libatm.Value[time.Time]
	span libatm.Value[trace.SpanContext]

	prm libctx.Config[string]

	mu  sync.Mutex
	lvl []int32
}

func newContext(ctx context.Context, iface, protocol string, timeout time.Duration) *reqCtx {
	if ctx == nil {
		ctx = context.Background()
	}

	o := &reqCtx{
		id:    uuid.NewString(),
		iface: iface,
		proto: protocol,
		desc:  libatm.NewValue[string](),
		dead:  libatm.NewValue[time.Time](),
		span:  libatm.NewValue[trace.SpanContext](),
		prm:   libctx.New[string](ctx),
	}

	o.dead.Store(time.Now().Add(timeout))

	return o
}

func (o *reqCtx) UniqueID() string  { return o.id }
func (o *reqCtx) Interface() string { return o.iface }
func (o *reqCtx) Protocol() string  { return o.proto }

func (o *reqCtx) Description() string     { return o.desc.Load() }
func (o *reqCtx) SetDescription(d string) { o.desc.Store(d) }

func (o *reqCtx) Deadline() time.Time { return o.dead.Load() }

func (o *reqCtx) Remaining() time.Duration {
	d := time.Until(o.dead.Load())
	if d < 0 {
		return 0
	}
	return d
}

func (o *reqCtx) SetRemaining(d time.Duration) {
	newDeadline := time.Now().Add(d)

	for {
		cur := o.dead.Load()
		if !cur.IsZero() && newDeadline.After(cur) {
			// never extends an existing, tighter deadline
			return
		}
		if o.dead.CompareAndSwap(cur, newDeadline) {
			return
		}
	}
}

func (o *reqCtx) Parameters() libctx.Config[string] { return o.prm }

func (o *reqCtx) PushLogLevel(v int32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lvl = append(o.lvl, v)
}

func (o *reqCtx) PopLogLevel() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if n := len(o.lvl); n > 0 {
		o.lvl = o.lvl[:n-1]
	}
}

func (o *reqCtx) EffectiveLogLevel(processDefault int32) int32 {
	o.mu.Lock()
	defer o.mu.Unlock()
	if n := len(o.lvl); n > 0 {
		return o.lvl[n-1]
	}
	return processDefault
}

// Acquire polls TryLock/TryRLock until it succeeds or the request's
// remaining time elapses, whichever comes first. A zero or negative
// Remaining() still attempts the lock exactly once before giving up, so a
// request right at its deadline can still take an uncontended lock.
func (o *reqCtx) Acquire(mu interface{}, shared bool) bool {
	deadline := o.Deadline()

	for {
		if shared {
			rl, ok := mu.(RLocker)
			if !ok {
				return false
			}
			if rl.TryRLock() {
				return true
			}
		} else {
			l, ok := mu.(Locker)
			if !ok {
				return false
			}
			if l.TryLock() {
				return true
			}
		}

		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return false
		}

		time.Sleep(acquirePollInterval)
	}
}

func (o *reqCtx) Clone() Context {
	n := &reqCtx{
		id:    o.id,
		iface: o.iface,
		proto: o.proto,
		desc:  libatm.NewValue[string](),
		dead:  libatm.NewValue[time.Time](),
		span:  libatm.NewValue[trace.SpanContext](),
		prm:   o.prm.Clone(nil),
	}

	n.desc.Store(o.desc.Load())
	n.dead.Store(o.dead.Load())
	n.span.Store(o.span.Load())

	o.mu.Lock()
	n.lvl = append([]int32(nil), o.lvl...)
	o.mu.Unlock()

	return n
}

func (o *reqCtx) Span() trace.SpanContext { return o.span.Load() }

func (o *reqCtx) WithSpan(sc trace.SpanContext) Context {
	n := o.Clone().(*reqCtx)
	n.span.Store(sc)
	return n
}

func (o *reqCtx) ToDict() Dict {
	params := make(map[string]interface{})
	o.prm.Walk(func(key string, val interface{}) bool {
		params[key] = val
		return true
	})

	o.mu.Lock()
	levels := append([]int32(nil), o.lvl...)
	o.mu.Unlock()

	return Dict{
		UniqueID:    o.id,
		Interface:   o.iface,
		Protocol:    o.proto,
		Description: o.desc.Load(),
		Deadline:    o.dead.Load(),
		Parameters:  params,
		LogLevels:   levels,
	}
}

func fromDict(d Dict, overrideTimeout time.Duration) Context {
	o := &reqCtx{
		id:    d.UniqueID,
		iface: d.Interface,
		proto: d.Protocol,
		desc:  libatm.NewValue[string](),
		dead:  libatm.NewValue[time.Time](),
		span:  libatm.NewValue[trace.SpanContext](),
		prm:   libctx.New[string](context.Background()),
	}

	if o.id == "" {
		o.id = uuid.NewString()
	}

	o.desc.Store(d.Description)

	incoming := time.Until(d.Deadline)
	local := time.Now().Add(overrideTimeout)

	if d.Deadline.IsZero() || overrideTimeout < incoming {
		o.dead.Store(local)
	} else {
		o.dead.Store(d.Deadline)
	}

	for k, v := range d.Parameters {
		o.prm.Store(k, v)
	}

	o.lvl = append([]int32(nil), d.LogLevels...)

	return o
}
