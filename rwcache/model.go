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

package rwcache

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

var errCacheMiss = errors.New("rwcache: no value published")
var errClaimTimeout = errors.New("rwcache: timed out waiting for claim")

type entry struct {
	value    interface{}
	ttl      time.Duration
	deadline time.Time
	weight   float64
	group    string
	lastUsed time.Time
	hitCount uint64
}

func (e *entry) expired(now time.Time) bool {
	return e.ttl > 0 && now.After(e.deadline)
}

type claim struct {
	xid  string
	done chan struct{}
}

type cache struct {
	cfg Config

	mu     sync.Mutex
	values map[string]*entry

	// reads/writes are the currently registered per-transaction key sets.
	reads  map[string]map[uint32]struct{}
	writes map[string]map[uint32]struct{}

	// keyIndex maps a read-key hash to every cache key stored on its behalf,
	// so a conflicting write can find and drop them.
	keyIndex map[uint32]map[string]struct{}

	claims      map[string]*claim
	claimsByXid map[string]string

	groups map[string]*groupWindow

	sf singleflight.Group

	// lruTrack accelerates PolicyLRU eviction when GroupInterval is 0 (no
	// group-weighted ranking in effect, so pure recency order is correct).
	lruTrack *lru.Cache[string, struct{}]

	lastEvict time.Time
}

func newCache(cfg Config) *cache {
	trackSize := cfg.Size * 4
	if trackSize < 1024 {
		trackSize = 1024
	}

	track, _ := lru.New[string, struct{}](trackSize)

	return &cache{
		cfg:         cfg,
		values:      make(map[string]*entry),
		reads:       make(map[string]map[uint32]struct{}),
		writes:      make(map[string]map[uint32]struct{}),
		keyIndex:    make(map[uint32]map[string]struct{}),
		claims:      make(map[string]*claim),
		claimsByXid: make(map[string]string),
		groups:      make(map[string]*groupWindow),
		lruTrack:    track,
	}
}

func hashSet(keys []string) map[uint32]struct{} {
	out := make(map[uint32]struct{}, len(keys))
	for _, k := range keys {
		out[djb2(k)] = struct{}{}
	}
	return out
}

func intersects(a, b map[uint32]struct{}) bool {
	small, big := a, b
	if len(big) < len(small) {
		small, big = big, small
	}
	for h := range small {
		if _, ok := big[h]; ok {
			return true
		}
	}
	return false
}

func (c *cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.values)
}

// Get implements the package doc's write/read get() semantics.
func (c *cache) Get(req GetRequest) (interface{}, bool) {
	if len(req.WriteKeys) > 0 {
		return c.getWrite(req)
	}
	return c.getRead(req)
}

func (c *cache) getWrite(req GetRequest) (interface{}, bool) {
	whash := hashSet(req.WriteKeys)

	c.mu.Lock()
	for xid, rset := range c.reads {
		if intersects(rset, whash) {
			delete(c.reads, xid)
			if key, ok := c.claimsByXid[xid]; ok {
				delete(c.claimsByXid, xid)
				delete(c.claims, key)
			}
		}
	}
	c.writes[req.TransactionID] = whash
	c.mu.Unlock()

	return nil, false
}

func (c *cache) getRead(req GetRequest) (interface{}, bool) {
	rhash := hashSet(req.ReadKeys)

	c.mu.Lock()

	conflict := false
	for _, wset := range c.writes {
		if intersects(wset, rhash) {
			conflict = true
			break
		}
	}
	if !conflict {
		c.reads[req.TransactionID] = rhash
	}

	if ent, ok := c.values[req.Key]; ok {
		now := time.Now()
		if ent.expired(now) {
			c.removeLocked(req.Key)
		} else {
			ent.hitCount++
			ent.lastUsed = now
			if c.cfg.GroupInterval > 0 && ent.group != "" {
				c.groupFor(ent.group).record(now, req.Key, ent.weight)
			}
			if c.lruTrack != nil {
				c.lruTrack.Add(req.Key, struct{}{})
			}
			v := ent.value
			c.mu.Unlock()
			return deepCopy(v), true
		}
	}

	if cl, busy := c.claims[req.Key]; busy {
		c.mu.Unlock()
		return c.waitForClaim(req.Key, cl, req.Timeout)
	}

	cl := &claim{xid: req.TransactionID, done: make(chan struct{})}
	c.claims[req.Key] = cl
	c.claimsByXid[req.TransactionID] = req.Key
	c.mu.Unlock()

	return nil, false
}

// waitForClaim blocks the calling transaction until the claimant publishes
// a value or Timeout elapses, coalescing concurrent followers of the same
// key into a single timer via singleflight.
func (c *cache) waitForClaim(key string, cl *claim, timeout time.Duration) (interface{}, bool) {
	v, err, _ := c.sf.Do(key, func() (interface{}, error) {
		var timer <-chan time.Time
		if timeout > 0 {
			t := time.NewTimer(timeout)
			defer t.Stop()
			timer = t.C
		}

		select {
		case <-cl.done:
			c.mu.Lock()
			ent, ok := c.values[key]
			c.mu.Unlock()
			if ok && !ent.expired(time.Now()) {
				return ent.value, nil
			}
			return nil, errCacheMiss
		case <-timer:
			return nil, errClaimTimeout
		}
	})

	if err != nil {
		return nil, false
	}
	return deepCopy(v), true
}

// Put implements the matching put() half of a prior Get call.
func (c *cache) Put(req PutRequest) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if wset, ok := c.writes[req.TransactionID]; ok {
		for h := range wset {
			if keys, ok2 := c.keyIndex[h]; ok2 {
				for k := range keys {
					c.removeLocked(k)
				}
				delete(c.keyIndex, h)
			}
		}
		delete(c.writes, req.TransactionID)
		return
	}

	rset, isRead := c.reads[req.TransactionID]
	delete(c.reads, req.TransactionID)

	key, claimed := c.claimsByXid[req.TransactionID]
	if !claimed {
		return
	}

	delete(c.claimsByXid, req.TransactionID)
	cl := c.claims[key]
	delete(c.claims, key)

	if isRead && req.Value != nil {
		now := time.Now()
		ttl := req.TTL
		if ttl == 0 {
			ttl = c.cfg.DefaultTTL
		}

		ent := &entry{
			value:    deepCopy(req.Value),
			ttl:      ttl,
			weight:   req.Weight,
			group:    req.Group,
			lastUsed: now,
		}
		if ttl > 0 {
			ent.deadline = now.Add(ttl)
		}

		c.values[key] = ent
		if c.lruTrack != nil {
			c.lruTrack.Add(key, struct{}{})
		}

		for h := range rset {
			if c.keyIndex[h] == nil {
				c.keyIndex[h] = make(map[string]struct{})
			}
			c.keyIndex[h][key] = struct{}{}
		}
	}

	if cl != nil {
		close(cl.done)
	}
}

func (c *cache) groupFor(name string) *groupWindow {
	w, ok := c.groups[name]
	if !ok {
		w = &groupWindow{}
		c.groups[name] = w
	}
	return w
}

// removeLocked drops key from every index. Caller holds c.mu.
func (c *cache) removeLocked(key string) {
	delete(c.values, key)
	if c.lruTrack != nil {
		c.lruTrack.Remove(key)
	}
	for h, keys := range c.keyIndex {
		delete(keys, key)
		if len(keys) == 0 {
			delete(c.keyIndex, h)
		}
	}
}

// Evict discards the lowest-ranked |cache|-Size entries under cfg.Policy.
// A no-op when Size <= 0 (unbounded cache) or the cache is within budget.
func (c *cache) Evict() {
	if c.cfg.Size <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if c.cfg.EvictPeriod > 0 && !c.lastEvict.IsZero() && now.Sub(c.lastEvict) < c.cfg.EvictPeriod {
		return
	}
	c.lastEvict = now

	over := len(c.values) - c.cfg.Size
	if over <= 0 {
		return
	}

	if c.cfg.Policy == PolicyLRU && c.cfg.GroupInterval <= 0 {
		for i := 0; i < over; i++ {
			key, _, ok := c.lruTrack.RemoveOldest()
			if !ok {
				break
			}
			if _, present := c.values[key]; present {
				c.removeLocked(key)
			} else {
				i--
			}
		}
		return
	}

	type scored struct {
		key   string
		score float64
	}

	totalGroupWeight := 0.0
	groupWeights := make(map[string]float64, len(c.groups))
	if c.cfg.GroupInterval > 0 {
		for name, w := range c.groups {
			gw := w.groupWeight(now, c.cfg.GroupInterval)
			groupWeights[name] = gw
			totalGroupWeight += gw
		}
	}

	list := make([]scored, 0, len(c.values))
	for k, e := range c.values {
		base := c.policyKey(e, now)

		if c.cfg.GroupInterval > 0 && totalGroupWeight > 0 && e.group != "" {
			ratio := groupWeights[e.group] / totalGroupWeight
			base *= ratio
		}

		list = append(list, scored{key: k, score: base})
	}

	sort.Slice(list, func(i, j int) bool { return list[i].score < list[j].score })

	for i := 0; i < over && i < len(list); i++ {
		c.removeLocked(list[i].key)
	}
}

func (c *cache) policyKey(e *entry, now time.Time) float64 {
	switch c.cfg.Policy {
	case PolicyLFU:
		return float64(e.hitCount)
	case PolicyWeight:
		return e.weight
	case PolicyUseless:
		return e.weight * float64(e.hitCount)
	case PolicyOld:
		if e.ttl <= 0 {
			return math.Inf(1)
		}
		remain := e.deadline.Sub(now).Seconds()
		if remain < 0 {
			remain = 0
		}
		return remain
	case PolicyRandom:
		return rand.Float64()
	case PolicyLRU:
		fallthrough
	default:
		return float64(e.lastUsed.Unix())
	}
}
