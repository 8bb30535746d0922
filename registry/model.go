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

package registry

import (
	"context"
	"strings"
	"sync"

	libpool "github.com/nabbar/cage/pool"
	librwcache "github.com/nabbar/cage/rwcache"
	"golang.org/x/sync/semaphore"
)

type poolEntry struct {
	pool  libpool.Pool
	cache librwcache.Cache
}

type registry struct {
	mu  sync.Mutex
	cfg Config

	fct   map[string]Factory
	pools map[string]poolEntry
	gates map[string]ThreadPool
}

func newRegistry(cfg Config) *registry {
	return &registry{
		cfg:   cfg,
		fct:   make(map[string]Factory),
		pools: make(map[string]poolEntry),
		gates: make(map[string]ThreadPool),
	}
}

func (r *registry) Register(prefix string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.fct[prefix] = factory
}

// splitName resolves the reference implementation's double-underscore
// convention: "rpc__cagename" -> prefix "rpc", suffix "cagename". A name
// with no "__" is its own prefix and carries no suffix.
func splitName(name string) (prefix, suffix string) {
	if i := strings.Index(name, "__"); i >= 0 {
		return name[:i], name[i+2:]
	}
	return name, ""
}

func (r *registry) loadConfig(prefix, suffix string) (PoolConfig, bool) {
	var cfg PoolConfig

	if r.cfg.Load != nil {
		if err := r.cfg.Load(prefix, &cfg); err != nil {
			return PoolConfig{}, false
		}
	}

	cfg.ResourceName = suffix
	return cfg, true
}

func (r *registry) Pool(name string) (libpool.Pool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.pools[name]; ok {
		return e.pool, true
	}

	prefix, suffix := splitName(name)
	factory, ok := r.fct[prefix]
	if !ok {
		return nil, false
	}

	cfg, ok := r.loadConfig(prefix, suffix)
	if !ok {
		return nil, false
	}

	p := libpool.New(libpool.Config{
		Name:        name,
		Size:        cfg.Size,
		Standby:     cfg.Standby,
		Slack:       cfg.Slack,
		IdleTimeout: cfg.IdleTimeout,
		MaxAge:      cfg.MaxAge,
		MinTime:     cfg.MinTime,
		MaxTime:     cfg.MaxTime,
		SweepPeriod: cfg.SweepPeriod,
		New:         factory(name, cfg),
	})

	var c librwcache.Cache
	if cfg.CacheSize > 0 {
		c = librwcache.New(librwcache.Config{
			Size:          cfg.CacheSize,
			Policy:        cfg.CachePolicy,
			DefaultTTL:    cfg.CacheDefaultTTL,
			EvictPeriod:   cfg.CacheEvictPeriod,
			GroupInterval: cfg.CacheGroupInterval,
		})
	}

	r.pools[name] = poolEntry{pool: p, cache: c}
	return p, true
}

func (r *registry) Cache(name string) (librwcache.Cache, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.pools[name]
	if !ok || e.cache == nil {
		return nil, false
	}
	return e.cache, true
}

func (r *registry) ThreadPool(name string, weight int64) ThreadPool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g, ok := r.gates[name]; ok {
		return g
	}

	g := &gate{sem: semaphore.NewWeighted(weight)}
	r.gates[name] = g
	return g
}

// gate is a bounded concurrency limiter. The reference implementation's
// semaphore test suite describes a richer wrapper (progress bars, worker
// counting); registry only needs the plain weighted-acquire contract, so
// this wraps golang.org/x/sync/semaphore directly rather than that fuller
// surface.
type gate struct {
	sem *semaphore.Weighted
}

func (g *gate) Acquire(ctx context.Context) error {
	return g.sem.Acquire(ctx, 1)
}

func (g *gate) TryAcquire() bool {
	return g.sem.TryAcquire(1)
}

func (g *gate) Release() {
	g.sem.Release(1)
}
