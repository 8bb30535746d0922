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

// Package resourcesql is a gorm-backed resource.Hooks adapter: one *gorm.DB
// (and the *sql.DB beneath it) per pool instance, transactions opened and
// closed through gorm's own Begin/Commit/Rollback.
package resourcesql

import (
	"time"

	libdrv "github.com/nabbar/cage/database/gorm"
	libpool "github.com/nabbar/cage/pool"
	libreg "github.com/nabbar/cage/registry"
	libres "github.com/nabbar/cage/resource"
	gormdb "gorm.io/gorm"
)

// Config selects the SQL engine and connection string shared by every
// instance of one pool.
type Config struct {
	Driver libdrv.Driver
	DSN    string

	// PingTimeout bounds the health check Connect runs right after Open.
	// Zero skips the check.
	PingTimeout time.Duration
}

// SQL is the adapter-specific surface a Participant.Call type-asserts
// libres.Instance.Hooks() into, to run an actual query against the
// transaction (or plain connection) the Instance currently holds.
type SQL interface {
	libres.Hooks

	// DB returns the current handle: the open transaction between
	// BeginTransaction and Commit/Rollback, the plain connection
	// otherwise.
	DB() *gormdb.DB
}

// New builds the resource.Hooks factory for one pool: every call opens its
// own *gorm.DB, following the pool package's one-hooks-per-instance
// contract.
func New(cfg Config) libpool.FuncNewHooks {
	return func() libres.Hooks {
		return newHooks(cfg)
	}
}

// Factory adapts cfg into a registry.Factory, ignoring the resource name
// and PoolConfig the registry passes in: the engine and DSN are fixed per
// Config, not per pool instance.
func Factory(cfg Config) libreg.Factory {
	return func(resourceName string, poolCfg libreg.PoolConfig) libpool.FuncNewHooks {
		return New(cfg)
	}
}
