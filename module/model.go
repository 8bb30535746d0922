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

package module

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	liberr "github.com/nabbar/cage/errors"
	libreq "github.com/nabbar/cage/request"
)

// descriptor is the cached introspection result for one exported attribute.
type descriptor struct {
	isFunc bool
}

type moduleRecord struct {
	name       string
	reloadable bool

	// mu is the reader/writer lock guarding img/exports/dynamic/version.
	// Acquired only through the ambient RequestContext so every wait is
	// deadline-bounded.
	mu sync.RWMutex

	img      Image
	exports  map[string]struct{}
	dynamic  bool
	version  uint64
	artifact string

	lastMtime     time.Time
	lastCheck     atomic.Int64 // unix nano
	checkInterval time.Duration

	// descMu guards the descriptor cache independently of mu, per the
	// package doc: the cache is cleared on reload but looked up far more
	// often than modules reload.
	descMu sync.Mutex
	descs  map[string]*descriptor
}

type loader struct {
	cfg Config
	mu  sync.Mutex
	mod map[string]*moduleRecord
}

func newLoader(cfg Config) *loader {
	if cfg.Open == nil {
		cfg.Open = openGoPlugin
	}
	if cfg.MinReloadInterval <= 0 {
		cfg.MinReloadInterval = time.Second
	}

	return &loader{cfg: cfg, mod: make(map[string]*moduleRecord)}
}

func (l *loader) recordFor(name string) *moduleRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.mod[name]
	if !ok {
		rec = &moduleRecord{
			name:          name,
			reloadable:    true,
			checkInterval: l.cfg.MinReloadInterval,
			descs:         make(map[string]*descriptor),
		}
		l.mod[name] = rec
	}
	return rec
}

func (l *loader) Version(name string) uint64 {
	l.mu.Lock()
	rec, ok := l.mod[name]
	l.mu.Unlock()
	if !ok {
		return 0
	}
	return atomic.LoadUint64(&rec.version)
}

// resolve finds name's artifact by searching Dirs in order, cage-local
// first.
func (l *loader) resolve(name string) (string, error) {
	for _, dir := range l.cfg.Dirs {
		p := filepath.Join(dir, name+".so")
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", ErrorModuleNotFound.Error(nil)
}

// checkReload reports whether rec needs reloading: source mtime moved,
// reloadable is set, and MinReloadInterval elapsed since the last stat().
func (l *loader) checkReload(rec *moduleRecord) (artifact string, mtime time.Time, need bool) {
	now := time.Now()
	last := rec.lastCheck.Load()
	if last != 0 && now.Sub(time.Unix(0, last)) < rec.checkInterval {
		return "", time.Time{}, false
	}
	rec.lastCheck.Store(now.UnixNano())

	if !rec.reloadable && rec.img != nil {
		return "", time.Time{}, false
	}

	path, err := l.resolve(rec.name)
	if err != nil {
		return "", time.Time{}, false
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", time.Time{}, false
	}

	if rec.img != nil && !info.ModTime().After(rec.lastMtime) {
		return "", time.Time{}, false
	}

	return path, info.ModTime(), true
}

// reload parses the manifest, opens the artifact and commits it onto rec.
// A failed reload never replaces a working module, but rec.lastMtime is
// recorded eagerly regardless of outcome: a file that fails to load is not
// retried again until its mtime moves, per the same reasoning as
// module_loader.py's requires_reload bookkeeping ("if it fails, a file
// update will be required to cause a reload again").
func (l *loader) reload(rec *moduleRecord, path string, mtime time.Time) liberr.Error {
	rec.lastMtime = mtime

	exports, dynamic, err := parseManifest(manifestPath(path))
	if err != nil {
		if ce, ok := err.(liberr.Error); ok {
			return ce
		}
		return ErrorSentinelMissing.Error(err)
	}

	img, err := l.cfg.Open(path)
	if err != nil {
		return ErrorLoadFailed.Error(err)
	}

	exportSet := make(map[string]struct{}, len(exports))
	for _, e := range exports {
		exportSet[e] = struct{}{}
	}

	rec.img = img
	rec.exports = exportSet
	rec.dynamic = dynamic
	rec.artifact = path
	atomic.AddUint64(&rec.version, 1)

	rec.descMu.Lock()
	rec.descs = make(map[string]*descriptor)
	rec.descMu.Unlock()

	return nil
}

// Invoke resolves, reloads if due, and calls attrName under the module's
// reader lock.
func (l *loader) Invoke(ctx libreq.Context, moduleName string, attrName string, args ...interface{}) (interface{}, liberr.Error) {
	rec := l.recordFor(moduleName)

	if path, mtime, need := l.checkReload(rec); need {
		if !ctx.Acquire(&rec.mu, false) {
			return nil, ErrorAcquireTimeout.Error(nil)
		}
		// re-check inside the lock: another goroutine may have already
		// reloaded while we waited.
		if rec.img == nil || mtime.After(rec.lastMtime) {
			_ = l.reload(rec, path, mtime)
		}
		rec.mu.Unlock()
	}

	if !ctx.Acquire(&rec.mu, true) {
		return nil, ErrorAcquireTimeout.Error(nil)
	}
	defer rec.mu.RUnlock()

	if rec.img == nil {
		return nil, ErrorModuleNotFound.Error(nil)
	}

	if strings.HasPrefix(attrName, "_") {
		return nil, ErrorPrivateAttribute.Error(nil)
	}

	if _, ok := rec.exports[attrName]; !ok && !rec.dynamic {
		return nil, ErrorNotExported.Error(nil)
	}

	rec.descMu.Lock()
	desc, ok := rec.descs[attrName]
	rec.descMu.Unlock()

	sym, found := rec.img.Lookup(attrName)
	if !found {
		return nil, ErrorNotExported.Error(nil)
	}

	if !ok {
		desc = &descriptor{isFunc: reflect.ValueOf(sym).Kind() == reflect.Func}
		rec.descMu.Lock()
		rec.descs[attrName] = desc
		rec.descMu.Unlock()
	}

	if !desc.isFunc {
		return nil, ErrorNotCallable.Error(nil)
	}

	return callSymbol(sym, args)
}

// callSymbol invokes fn (a looked-up func symbol) with args via reflection.
func callSymbol(fn interface{}, args []interface{}) (interface{}, liberr.Error) {
	fv := reflect.ValueOf(fn)
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		if a == nil {
			in[i] = reflect.New(fv.Type().In(i)).Elem()
			continue
		}
		in[i] = reflect.ValueOf(a)
	}

	out := fv.Call(in)
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	default:
		vals := make([]interface{}, len(out))
		for i, v := range out {
			vals[i] = v.Interface()
		}
		return vals, nil
	}
}
