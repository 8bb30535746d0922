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

// Package module is the hot-reloadable business-logic registry: one record
// per module name, guarded by its own reader/writer lock, reloaded from a
// compiled plugin whenever its source mtime moves and the module is
// declared reloadable. Every wait (the writer lock taken to reload, the
// reader lock taken to invoke) is bounded by the caller's ambient
// request.Context deadline, never by an unbounded mutex wait.
package module

import (
	"time"

	liberr "github.com/nabbar/cage/errors"
	libreq "github.com/nabbar/cage/request"
)

// Image is a loaded module artifact: a named symbol table. The production
// implementation backs this with Go's plugin package; tests back it with an
// in-memory map.
type Image interface {
	Lookup(name string) (interface{}, bool)
}

// FuncOpen loads the compiled artifact at path into an Image.
type FuncOpen func(path string) (Image, error)

// Bindings are the ambient values a module receives on successful load,
// the Go-native equivalent of the injected pmnc/node/cage/module_name/
// cage_dir/log globals.
type Bindings struct {
	ModuleName string
	CageDir    string
	Log        func(lvl int32, msg string, args ...interface{})
}

// Config describes one Loader.
type Config struct {
	// Dirs is the fixed, ordered list of directories searched for a module's
	// artifact: cage-local directories first, then shared ones.
	Dirs []string

	// Open loads a module artifact. Defaults to a Go plugin.Open-backed
	// implementation when nil.
	Open FuncOpen

	// MinReloadInterval throttles the mtime stat()/reload check so a hot
	// attribute-access path doesn't stat() the filesystem on every call.
	MinReloadInterval time.Duration

	CageDir string
}

// Loader is the process-wide ModuleLoader: the ambient "pmnc" binding.
type Loader interface {
	// Invoke resolves moduleName, reloads it if due, then calls attrName
	// with args under the module's reader lock. ctx bounds every wait.
	Invoke(ctx libreq.Context, moduleName string, attrName string, args ...interface{}) (interface{}, liberr.Error)

	// Version returns the current load generation of moduleName, or 0 if it
	// has never successfully loaded.
	Version(moduleName string) uint64
}

// New creates a Loader.
func New(cfg Config) Loader {
	return newLoader(cfg)
}
