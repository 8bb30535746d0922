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

package resourcebroker

import (
	"context"
	"time"

	"github.com/nats-io/nats.go"
)

type hooks struct {
	cfg Config

	nc  *nats.Conn
	xid string
}

func newHooks(cfg Config) *hooks {
	return &hooks{cfg: cfg}
}

func (h *hooks) Connect(ctx context.Context) error {
	opts := []nats.Option{}

	if h.cfg.Name != "" {
		opts = append(opts, nats.Name(h.cfg.Name))
	}

	if dl, ok := ctx.Deadline(); ok {
		opts = append(opts, nats.Timeout(time.Until(dl)))
	} else if h.cfg.ConnectTimeout > 0 {
		opts = append(opts, nats.Timeout(h.cfg.ConnectTimeout))
	}

	nc, err := nats.Connect(h.cfg.URL, opts...)
	if err != nil {
		return ErrorConnectFailed.Error(err)
	}

	h.nc = nc
	return nil
}

func (h *hooks) Disconnect() {
	if h.nc != nil {
		h.nc.Close()
	}
	h.nc = nil
}

// BeginTransaction only records xid: NATS publishes are fire-and-forget,
// there is no server-side transaction to open.
func (h *hooks) BeginTransaction(xid, sourceModule string, options map[string]interface{}, resArgs []interface{}, resKwargs map[string]interface{}) error {
	h.xid = xid
	return nil
}

// Commit and Rollback are both no-ops, the same best-effort semantics txn
// already gives every participant: a message already published cannot be
// unpublished.
func (h *hooks) Commit(ctx context.Context) error {
	h.xid = ""
	return nil
}

func (h *hooks) Rollback(ctx context.Context) error {
	h.xid = ""
	return nil
}

func (h *hooks) Conn() *nats.Conn {
	return h.nc
}
