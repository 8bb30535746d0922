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

// Package registry is the process-wide map from resource name to its pool
// (and optional cache overlay), created lazily on first access and immortal
// thereafter. It also dispenses named private worker limiters for
// components that need their own concurrency budget distinct from the
// pools they call into.
//
// A name containing a double underscore, e.g. "rpc__cagename", is split
// into a prefix ("rpc") and a suffix ("cagename"): the prefix selects which
// registered Factory builds the pool and which viper key its config is
// read from, and the suffix is handed to the Factory as the resolved
// resource name so one config section can back many per-target pools.
package registry

import (
	"context"
	"time"

	libpool "github.com/nabbar/cage/pool"
	libres "github.com/nabbar/cage/resource"
	librwcache "github.com/nabbar/cage/rwcache"
)

// PoolConfig is the typed stand-in for the reference implementation's
// pool__* keyword arguments. FuncConfigLoad fills it from one viper key.
type PoolConfig struct {
	Size    int
	Standby int
	Slack   int

	IdleTimeout time.Duration
	MaxAge      time.Duration
	MinTime     time.Duration
	MaxTime     time.Duration
	SweepPeriod time.Duration

	CacheSize          int
	CachePolicy        librwcache.Policy
	CacheDefaultTTL    time.Duration
	CacheEvictPeriod   time.Duration
	CacheGroupInterval time.Duration

	// ResourceName is injected for a double-underscored name: the suffix
	// after "__". Empty when the registered name carries no suffix.
	ResourceName string
}

// Factory builds the per-instance hooks constructor for one resolved
// resource name, given its loaded PoolConfig. It plays the role the
// reference implementation gives to a module-level class instantiated with
// pool__resource_name as a constructor parameter.
type Factory func(resourceName string, cfg PoolConfig) libpool.FuncNewHooks

// FuncConfigLoad fills out with the config section keyed by key. Grounded
// on viper.Viper.UnmarshalKey, the way config.Config.GetComponentConfig
// loads a component's section.
type FuncConfigLoad func(key string, out *PoolConfig) error

// Config configures one Registry.
type Config struct {
	// Load resolves a prefix's PoolConfig. A nil Load makes every Factory
	// receive a zero-value PoolConfig (only ResourceName is ever set by
	// the registry itself).
	Load FuncConfigLoad
}

// Registry is the shared pool-and-cache dispenser. It satisfies the
// transaction coordinator's Resolver so it can be handed directly to
// txn.Transaction.Execute.
type Registry interface {
	// Register binds factory to prefix. Calling Register again for the
	// same prefix replaces the factory for pools not yet created; pools
	// already created under that prefix are unaffected (immortal).
	Register(prefix string, factory Factory)

	// Pool lazily creates (on first access) and forever after returns the
	// same *libpool.Pool for name. The second return is false only when no
	// Factory is registered for name's prefix.
	Pool(name string) (libpool.Pool, bool)

	// Cache returns the rwcache overlay created alongside name's pool, if
	// its PoolConfig.CacheSize was positive.
	Cache(name string) (librwcache.Cache, bool)

	// ThreadPool lazily creates (on first access) and forever after returns
	// the same named private worker limiter. weight is only honored on the
	// creating call; later calls ignore it.
	ThreadPool(name string, weight int64) ThreadPool
}

// ThreadPool is a named, bounded concurrency gate independent of any
// resource pool, for components that need their own worker budget (e.g. an
// RPC listener's accept loop, kept distinct from the resource pools it
// dispatches into).
type ThreadPool interface {
	// Acquire blocks until a slot is free or ctx is done.
	Acquire(ctx context.Context) error
	// TryAcquire claims a slot without blocking.
	TryAcquire() bool
	Release()
}

// Hooks is re-exported for callers building a Factory without importing
// the resource package directly.
type Hooks = libres.Hooks

// New creates a Registry with no factories registered yet.
func New(cfg Config) Registry {
	return newRegistry(cfg)
}
