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

// Package cage is the top-level wiring of one cage process: it owns the
// module loader, the shared pool registry, and the Start/Reload/Stop/
// Shutdown lifecycle that drives both of them, the same shape
// github.com/nabbar/cage/config gives a process built from many
// independently pluggable components.
package cage

import (
	"time"

	libmod "github.com/nabbar/cage/module"
	liberr "github.com/nabbar/cage/errors"
	liblog "github.com/nabbar/cage/logger"
	libreg "github.com/nabbar/cage/registry"
	libreq "github.com/nabbar/cage/request"
	libtxn "github.com/nabbar/cage/txn"
)

// FuncEvent is a lifecycle hook, the same shape config.FuncEvent gives its
// Register*Before/After callbacks.
type FuncEvent func() liberr.Error

// Config describes one Cage.
type Config struct {
	Module   libmod.Config
	Registry libreg.Config
	Log      liblog.FuncLog

	// WatchPaths are filesystem paths whose changes should trigger Reload.
	// Empty disables the watcher; Start never fails because of it.
	WatchPaths []string
	// WatchDebounce coalesces a burst of filesystem events into a single
	// Reload. Defaults to 200ms.
	WatchDebounce time.Duration
}

// Cage is one running process: its module loader, its shared resource
// registry, and the lifecycle tying them to the OS.
type Cage interface {
	Loader() libmod.Loader
	Registry() libreg.Registry

	// Call resolves moduleName.attrName through the Loader, the direct
	// single-hop request path (no transaction, no resource pool).
	Call(ctx libreq.Context, moduleName, attrName string, args ...interface{}) (interface{}, liberr.Error)

	// Execute runs t against this Cage's Registry, the entrypoint for any
	// request path that spans one or more resource pools.
	Execute(ctx libreq.Context, t libtxn.Transaction) (interface{}, liberr.Error)

	RegisterFuncStartBefore(fct FuncEvent)
	RegisterFuncStartAfter(fct FuncEvent)
	RegisterFuncReloadBefore(fct FuncEvent)
	RegisterFuncReloadAfter(fct FuncEvent)
	RegisterFuncStopBefore(fct FuncEvent)
	RegisterFuncStopAfter(fct FuncEvent)

	// Start brings the cage up: registers signal handling and, if
	// WatchPaths is non-empty, starts the config-reload watcher.
	Start() liberr.Error
	// Reload re-runs every RegisterFuncReload* hook. It never reloads
	// individual modules directly — module reload is driven lazily by
	// Loader.Invoke's own mtime check.
	Reload() liberr.Error
	// Stop runs every RegisterFuncStop* hook and stops the watcher.
	Stop()
	// Shutdown calls Stop then cancels the process context.
	Shutdown(code int)

	// WaitNotify blocks until SIGINT/SIGTERM/SIGQUIT, then calls
	// Shutdown(0). Grounded on config.WaitNotify.
	WaitNotify()
}

// New creates a Cage. The Loader and Registry it owns are built from cfg
// immediately; Start only wires the OS-facing lifecycle.
func New(cfg Config) Cage {
	return newCage(cfg)
}
