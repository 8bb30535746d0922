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
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	liberr "github.com/nabbar/cage/errors"
	librwcache "github.com/nabbar/cage/rwcache"
	libreq "github.com/nabbar/cage/request"
)

type ack struct {
	index int
	err   error
}

type transaction struct {
	cfg  Config
	mu   sync.Mutex
	part []Participant
}

func newTransaction(cfg Config) *transaction {
	return &transaction{cfg: cfg}
}

func (t *transaction) Attach(p Participant) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.part = append(t.part, p)
	return len(t.part) - 1
}

func positiveDuration(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Nanosecond
	}
	return d
}

func stdCtx(ctx libreq.Context) (context.Context, context.CancelFunc) {
	return context.WithDeadline(context.Background(), ctx.Deadline())
}

func firstMissing(results map[int]Result, n int) int {
	for i := 0; i < n; i++ {
		if _, ok := results[i]; !ok {
			return i
		}
	}
	return -1
}

func firstMissingAck(acks map[int]ack, n int) int {
	for i := 0; i < n; i++ {
		if _, ok := acks[i]; !ok {
			return i
		}
	}
	return -1
}

// waitDecision blocks on decisionCh up to ctx's remaining time. A timeout is
// indistinguishable from the coordinator deciding rollback: the caller
// always treats return as "proceed to commit/rollback per the commit flag".
func waitDecision(decisionCh <-chan struct{}, ctx libreq.Context) {
	timer := time.NewTimer(positiveDuration(ctx.Remaining()))
	defer timer.Stop()

	select {
	case <-decisionCh:
	case <-timer.C:
	}
}

func (t *transaction) Execute(ctx libreq.Context, resolver Resolver) (interface{}, liberr.Error) {
	t.mu.Lock()
	part := append([]Participant(nil), t.part...)
	accept := t.cfg.Accept
	syncCommit := true
	if t.cfg.SyncCommit != nil {
		syncCommit = *t.cfg.SyncCommit
	}
	t.mu.Unlock()

	n := len(part)
	if n == 0 {
		return nil, nil
	}
	if accept == nil {
		accept = defaultAccept(n)
	}

	start := time.Now()
	resultCh := make(chan Result, n)
	ackCh := make(chan ack, n)
	decisionCh := make(chan struct{})
	var commit atomic.Bool
	failed := make([]atomic.Bool, n)

	for i, p := range part {
		go t.runParticipant(i, p, ctx, resolver, start, resultCh, decisionCh, &commit, ackCh, &failed[i])
	}

	results := make(map[int]Result, n)
	timer := time.NewTimer(positiveDuration(ctx.Remaining()))
	defer timer.Stop()

	var decision Decision

drain:
	for len(results) < n {
		select {
		case r := <-resultCh:
			results[r.ParticipantIndex] = r
			if d := accept(results); d.Ready {
				decision = d
				break drain
			}
		case <-timer.C:
			idx := firstMissing(results, n)
			commit.Store(false)
			close(decisionCh)
			return nil, buildErr(ErrorExecutionTimeout, idx, nil)
		}
	}

	if !decision.Ready {
		// every participant reported and accept still wants more: "results
		// not accepted".
		commit.Store(false)
		close(decisionCh)
		return nil, buildErr(ErrorResultsRejected, -1, nil)
	}

	commit.Store(decision.Err == nil)
	close(decisionCh)

	if syncCommit {
		acks := make(map[int]ack, n)
		atimer := time.NewTimer(positiveDuration(ctx.Remaining()))
		defer atimer.Stop()

	ackdrain:
		for len(acks) < n {
			select {
			case a := <-ackCh:
				acks[a.index] = a
			case <-atimer.C:
				idx := firstMissingAck(acks, n)
				return nil, buildErr(ErrorCommitTimeout, idx, nil)
			}
		}

		if decision.Err == nil {
			for i := 0; i < n; i++ {
				if a := acks[i]; a.err != nil {
					return nil, buildErr(ErrorCommitFailed, i, a.err)
				}
			}
		}
	}

	if decision.Err != nil {
		if re, ok := decision.Err.(*ResourceError); ok {
			return nil, re.Err
		}
		return nil, buildErr(ErrorDispatchFailed, -1, decision.Err)
	}

	return decision.Value, nil
}

// runParticipant is the per-participant worker described by the package
// doc's thirteen-step data flow. It always reports exactly one Result
// (unless the late-arrival check fires) and, when the coordinator is
// configured for sync_commit, exactly one ack.
func (t *transaction) runParticipant(
	index int,
	p Participant,
	ctx libreq.Context,
	resolver Resolver,
	start time.Time,
	resultCh chan<- Result,
	decisionCh <-chan struct{},
	commit *atomic.Bool,
	ackCh chan<- ack,
	selfFailed *atomic.Bool,
) {
	pctx := ctx.Clone()
	pending := time.Since(start)

	// 1. late-arrival check.
	if pctx.Remaining() <= 0 {
		return
	}

	pl, ok := resolver.Pool(p.ResourceName)
	if !ok {
		selfFailed.Store(true)
		resultCh <- Result{ParticipantIndex: index, Err: NewResourceError(ErrorUnknownResource, nil, index, false, true), PendingTime: pending}
		ackCh <- ack{index: index}
		return
	}

	// 3. allocate.
	sctx, cancel := stdCtx(pctx)
	inst, aerr := pl.Allocate(sctx)
	cancel()
	if aerr != nil {
		selfFailed.Store(true)
		resultCh <- Result{ParticipantIndex: index, Err: NewResourceError(ErrorAllocateFailed, aerr, index, true, false), PendingTime: pending}
		ackCh <- ack{index: index}
		return
	}

	var released bool
	release := func() {
		if !released {
			released = true
			pl.Release(inst)
		}
	}
	defer release()

	// 4. deadline clamp. pctx is a throwaway clone used only by this
	// participant, so there is nothing left to widen back afterward.
	if mt := inst.MaxTime(); mt > 0 && pctx.Remaining() > mt {
		pctx.SetRemaining(mt)
	}

	// 5. cache probe.
	cache, hasCache := resolver.Cache(p.ResourceName)
	cacheEnabled := hasCache && p.CacheKey != nil
	var cacheKey string
	if cacheEnabled {
		cacheKey = *p.CacheKey
		txID := fmt.Sprintf("%s:%d", t.cfg.XID, index)
		if v, found := cache.Get(librwcache.GetRequest{
			TransactionID: txID,
			Key:           cacheKey,
			ReadKeys:      []string{cacheKey},
			Timeout:       pctx.Remaining(),
		}); found {
			// deregister the read claim a hit leaves behind; cache.Get has
			// no matching miss-then-compute call on this path to pair with
			// the usual post-dispatch Put, so this is that pairing.
			cache.Put(librwcache.PutRequest{TransactionID: txID})
			resultCh <- Result{ParticipantIndex: index, Value: v, FromCache: true, PendingTime: pending}
			waitDecision(decisionCh, pctx)
			// a cached-result commit is a no-op: nothing to commit.
			ackCh <- ack{index: index}
			return
		}
	}

	// 6. min-time check.
	if mint := inst.MinTime(); mint > 0 && pctx.Remaining() < mint {
		selfFailed.Store(true)
		resultCh <- Result{ParticipantIndex: index, Err: NewResourceError(ErrorAllocateFailed, nil, index, true, false), PendingTime: pending}
		ackCh <- ack{index: index}
		return
	}

	// 7. begin transaction.
	if err := inst.BeginTransaction(t.cfg.XID, p.SourceModule, p.Options, p.ResArgs, p.ResKwargs); err != nil {
		selfFailed.Store(true)
		resultCh <- Result{ParticipantIndex: index, Err: NewResourceError(ErrorDispatchFailed, err, index, false, true), PendingTime: pending}
		ackCh <- ack{index: index}
		return
	}

	// 8. dispatch.
	dispatchStart := time.Now()
	value, cerr := p.Call(pctx, inst)
	weight := p.Weight
	if weight == 0 {
		weight = time.Since(dispatchStart).Seconds()
	}

	// 9. cache publish.
	if cacheEnabled {
		txID := fmt.Sprintf("%s:%d", t.cfg.XID, index)
		pub := value
		if cerr != nil {
			pub = nil
		}
		cache.Put(librwcache.PutRequest{TransactionID: txID, Value: pub, TTL: p.TTL, Weight: weight, Group: p.Group})
	}

	// 10. push result.
	if cerr != nil {
		selfFailed.Store(true)
		resultCh <- Result{ParticipantIndex: index, Err: NewResourceError(ErrorDispatchFailed, cerr, index, false, true), PendingTime: pending}
	} else {
		resultCh <- Result{ParticipantIndex: index, Value: value, PendingTime: pending}
	}

	// 11. wait for decision.
	waitDecision(decisionCh, pctx)

	// 12. commit or rollback.
	sctx2, cancel2 := stdCtx(pctx)
	defer cancel2()

	if commit.Load() && !selfFailed.Load() {
		if err := inst.Commit(sctx2); err != nil {
			inst.Expire()
			ackCh <- ack{index: index, err: err}
			return
		}
		ackCh <- ack{index: index}
		return
	}

	// selfFailed only reaches this point via the step 10 dispatch failure,
	// which is always wrapped terminal: the instance must not return to the
	// free list even if this rollback itself succeeds cleanly.
	if selfFailed.Load() {
		inst.Expire()
	}

	if err := inst.Rollback(sctx2); err != nil {
		inst.Expire()
	}
	ackCh <- ack{index: index}
}
