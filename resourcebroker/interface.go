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

// Package resourcebroker is a NATS-backed resource.Hooks adapter: one
// *nats.Conn per pool instance. The teacher's go.mod carries nats.go as a
// direct dependency but no surviving package in the retrieval pack wraps
// it as a client (config/components/natsServer only ever wrapped the
// embedded nats-server, and imports a sibling "nats" package absent from
// the pack) — this adapter is the first thing in the tree that actually
// exercises the client side of that dependency.
package resourcebroker

import (
	"time"

	"github.com/nats-io/nats.go"

	libpool "github.com/nabbar/cage/pool"
	libreg "github.com/nabbar/cage/registry"
	libres "github.com/nabbar/cage/resource"
)

// Config selects the NATS server shared by every instance of one pool.
type Config struct {
	URL  string
	Name string

	// ConnectTimeout bounds Connect when ctx carries no deadline of its
	// own. Zero falls back to nats.go's own default.
	ConnectTimeout time.Duration
}

// Broker is the adapter-specific surface a Participant.Call type-asserts
// libres.Instance.Hooks() into, to publish or subscribe over the
// connection this instance holds.
type Broker interface {
	libres.Hooks

	Conn() *nats.Conn
}

// New builds the resource.Hooks factory for one pool.
func New(cfg Config) libpool.FuncNewHooks {
	return func() libres.Hooks {
		return newHooks(cfg)
	}
}

// Factory adapts cfg into a registry.Factory.
func Factory(cfg Config) libreg.Factory {
	return func(resourceName string, poolCfg libreg.PoolConfig) libpool.FuncNewHooks {
		return New(cfg)
	}
}
