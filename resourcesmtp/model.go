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

package resourcesmtp

import (
	"context"

	libsmtp "github.com/nabbar/cage/mail/smtp"
	smtpcf "github.com/nabbar/cage/mail/smtp/config"
)

type hooks struct {
	cfg Config

	cli libsmtp.SMTP
	xid string
}

func newHooks(cfg Config) *hooks {
	return &hooks{cfg: cfg}
}

func (h *hooks) Connect(ctx context.Context) error {
	cfg, e := smtpcf.New(smtpcf.ConfigModel{DSN: h.cfg.DSN})
	if e != nil {
		return ErrorConfigInvalid.Error(e)
	}

	cli, err := libsmtp.New(cfg, h.cfg.TLS)
	if err != nil {
		return ErrorClientCreate.Error(err)
	}

	if err = cli.Check(ctx); err != nil {
		cli.Close()
		return ErrorCheckFailed.Error(err)
	}

	h.cli = cli
	return nil
}

func (h *hooks) Disconnect() {
	if h.cli != nil {
		h.cli.Close()
	}
	h.cli = nil
}

// BeginTransaction only records xid: SMTP has no server-side transaction to
// open, a message is either sent or it isn't.
func (h *hooks) BeginTransaction(xid, sourceModule string, options map[string]interface{}, resArgs []interface{}, resKwargs map[string]interface{}) error {
	h.xid = xid
	return nil
}

// Commit is a no-op: by the time Commit runs, Send has already happened or
// it hasn't, and there is nothing left to make durable.
func (h *hooks) Commit(ctx context.Context) error {
	h.xid = ""
	return nil
}

// Rollback is also a no-op, for the same reason: an email already
// delivered to the server cannot be recalled. This mirrors the best-effort
// semantics the txn package documents for every participant.
func (h *hooks) Rollback(ctx context.Context) error {
	h.xid = ""
	return nil
}

func (h *hooks) Client() libsmtp.SMTP {
	return h.cli
}
