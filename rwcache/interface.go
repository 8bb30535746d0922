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

// Package rwcache is the optional per-pool overlay that distinguishes read
// calls (cacheable) from write calls (never cached, and invalidating any
// cached read that conflicts with the keys being written). A single mutex
// guards the value map, the in-flight claim table and the read/write
// registrations; single-flight coalescing of followers waiting on a claim
// lives outside that mutex.
package rwcache

import "time"

// Policy selects which dimension the evictor ranks entries by when the
// cache holds more than Config.Size values.
type Policy string

const (
	// PolicyLRU evicts the entry with the smallest LastUsed.
	PolicyLRU Policy = "lru"
	// PolicyLFU evicts the entry with the smallest HitCount.
	PolicyLFU Policy = "lfu"
	// PolicyWeight evicts the entry with the smallest Weight (unset treated
	// as zero).
	PolicyWeight Policy = "weight"
	// PolicyUseless evicts the entry with the smallest Weight*HitCount.
	PolicyUseless Policy = "useless"
	// PolicyOld evicts the entry with the smallest remaining TTL
	// (never-expiring entries are treated as infinite).
	PolicyOld Policy = "old"
	// PolicyRandom evicts a uniformly random entry.
	PolicyRandom Policy = "random"
)

// Config describes one cache instance.
type Config struct {
	Size int
	Policy Policy

	DefaultTTL    time.Duration
	EvictPeriod   time.Duration
	GroupInterval time.Duration
}

// GetRequest is one get() call. A call is either a read (ReadKeys set) or a
// write (WriteKeys set) — never both.
type GetRequest struct {
	TransactionID string
	// Key is the cache entry key this call addresses.
	Key string
	// ReadKeys conflict against any currently registered WriteKeys. Empty
	// for a write request.
	ReadKeys []string
	// WriteKeys conflict against any currently registered ReadKeys and,
	// on Put, invalidate every cached entry keyed by any of them. Empty for
	// a read request.
	WriteKeys []string
	// Timeout bounds how long a read call blocks waiting for another
	// transaction's in-flight claim on the same Key.
	Timeout time.Duration
}

// PutRequest is the matching put() call for a prior Get with the same
// TransactionID.
type PutRequest struct {
	TransactionID string
	// Value is the result to publish. A nil Value unblocks waiters without
	// caching anything (failure path).
	Value interface{}
	TTL    time.Duration
	Weight float64
	Group  string
}

// Cache is the ReadWriteCache contract.
type Cache interface {
	// Get implements the write/read get() semantics of the package doc. It
	// returns (value, true) only when a read call finds an already-cached,
	// unexpired value for Key; every other case returns (nil, false) and the
	// caller is expected to compute the value and call Put.
	Get(req GetRequest) (value interface{}, found bool)

	// Put implements the matching put() half of a prior Get call sharing
	// TransactionID. Write calls invalidate; read calls store only if the
	// caller's transaction still holds the claim on Key.
	Put(req PutRequest)

	// Evict runs at most once per Config.EvictPeriod and discards the
	// lowest-ranked |cache|-Size entries under the configured Policy.
	Evict()

	Len() int
}

// New creates a Cache. Config.Size <= 0 disables eviction (unbounded cache).
func New(cfg Config) Cache {
	return newCache(cfg)
}
