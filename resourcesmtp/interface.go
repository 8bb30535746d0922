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

// Package resourcesmtp is an SMTP resource.Hooks adapter: one pooled client
// per instance, built on mail/smtp the same way mailPooler wraps it, minus
// mailPooler's own reuse/counter bookkeeping — the pool package already
// owns that concern for every adapter.
package resourcesmtp

import (
	"crypto/tls"

	libsmtp "github.com/nabbar/cage/mail/smtp"
	libpool "github.com/nabbar/cage/pool"
	libreg "github.com/nabbar/cage/registry"
	libres "github.com/nabbar/cage/resource"
)

// Config selects the SMTP server shared by every instance of one pool.
type Config struct {
	// DSN is mail/smtp/config's DSN syntax:
	// [user[:password]@][net[(addr)]]/tlsmode[?params].
	DSN string
	TLS *tls.Config
}

// Mailer is the adapter-specific surface a Participant.Call type-asserts
// libres.Instance.Hooks() into, to actually send a message over the
// connection this instance holds.
type Mailer interface {
	libres.Hooks

	Client() libsmtp.SMTP
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
