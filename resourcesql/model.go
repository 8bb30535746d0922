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

package resourcesql

import (
	"context"
	"database/sql"

	gormdb "gorm.io/gorm"
)

type hooks struct {
	cfg Config

	db    *gormdb.DB
	sqlDB *sql.DB
	tx    *gormdb.DB
	xid   string
}

func newHooks(cfg Config) *hooks {
	return &hooks{cfg: cfg}
}

func (h *hooks) Connect(ctx context.Context) error {
	dial := h.cfg.Driver.Dialector(h.cfg.DSN)
	if dial == nil {
		return ErrorDriverUnknown.Error(nil)
	}

	db, err := gormdb.Open(dial, &gormdb.Config{})
	if err != nil {
		return ErrorOpenFailed.Error(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return ErrorPoolFailed.Error(err)
	}

	if h.cfg.PingTimeout > 0 {
		pctx, cancel := context.WithTimeout(ctx, h.cfg.PingTimeout)
		defer cancel()

		if err = sqlDB.PingContext(pctx); err != nil {
			_ = sqlDB.Close()
			return ErrorPingFailed.Error(err)
		}
	}

	h.db = db
	h.sqlDB = sqlDB
	return nil
}

func (h *hooks) Disconnect() {
	if h.sqlDB != nil {
		_ = h.sqlDB.Close()
	}
	h.db = nil
	h.sqlDB = nil
	h.tx = nil
}

func (h *hooks) BeginTransaction(xid, sourceModule string, options map[string]interface{}, resArgs []interface{}, resKwargs map[string]interface{}) error {
	tx := h.db.Begin()
	if tx.Error != nil {
		return ErrorBeginFailed.Error(tx.Error)
	}

	h.tx = tx
	h.xid = xid
	return nil
}

func (h *hooks) Commit(ctx context.Context) error {
	if h.tx == nil {
		return ErrorNotInTransaction.Error(nil)
	}

	err := h.tx.WithContext(ctx).Commit().Error
	h.tx = nil
	h.xid = ""

	if err != nil {
		return ErrorCommitFailed.Error(err)
	}
	return nil
}

func (h *hooks) Rollback(ctx context.Context) error {
	if h.tx == nil {
		return ErrorNotInTransaction.Error(nil)
	}

	err := h.tx.WithContext(ctx).Rollback().Error
	h.tx = nil
	h.xid = ""

	if err != nil {
		return ErrorRollbackFailed.Error(err)
	}
	return nil
}

// DB returns the open transaction, or the plain connection outside of one.
func (h *hooks) DB() *gormdb.DB {
	if h.tx != nil {
		return h.tx
	}
	return h.db
}
