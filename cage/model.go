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

package cage

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	liberr "github.com/nabbar/cage/errors"
	liblog "github.com/nabbar/cage/logger"
	logent "github.com/nabbar/cage/logger/entry"
	loglvl "github.com/nabbar/cage/logger/level"
	libmod "github.com/nabbar/cage/module"
	libreg "github.com/nabbar/cage/registry"
	libreq "github.com/nabbar/cage/request"
	libtxn "github.com/nabbar/cage/txn"
)

type cage struct {
	mod libmod.Loader
	reg libreg.Registry
	log liblog.FuncLog

	watchPaths []string
	debounce   time.Duration

	mu          sync.Mutex
	startBefore []FuncEvent
	startAfter  []FuncEvent
	reloadBfr   []FuncEvent
	reloadAftr  []FuncEvent
	stopBefore  []FuncEvent
	stopAfter   []FuncEvent

	watcher *fsnotify.Watcher
	done    chan struct{}
}

func newCage(cfg Config) *cage {
	debounce := cfg.WatchDebounce
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}

	return &cage{
		mod:        libmod.New(cfg.Module),
		reg:        libreg.New(cfg.Registry),
		log:        cfg.Log,
		watchPaths: cfg.WatchPaths,
		debounce:   debounce,
	}
}

func (c *cage) Loader() libmod.Loader     { return c.mod }
func (c *cage) Registry() libreg.Registry { return c.reg }

func (c *cage) Call(ctx libreq.Context, moduleName, attrName string, args ...interface{}) (interface{}, liberr.Error) {
	return c.mod.Invoke(ctx, moduleName, attrName, args...)
}

func (c *cage) Execute(ctx libreq.Context, t libtxn.Transaction) (interface{}, liberr.Error) {
	return t.Execute(ctx, c.reg)
}

func (c *cage) RegisterFuncStartBefore(fct FuncEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startBefore = append(c.startBefore, fct)
}

func (c *cage) RegisterFuncStartAfter(fct FuncEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startAfter = append(c.startAfter, fct)
}

func (c *cage) RegisterFuncReloadBefore(fct FuncEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reloadBfr = append(c.reloadBfr, fct)
}

func (c *cage) RegisterFuncReloadAfter(fct FuncEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reloadAftr = append(c.reloadAftr, fct)
}

func (c *cage) RegisterFuncStopBefore(fct FuncEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopBefore = append(c.stopBefore, fct)
}

func (c *cage) RegisterFuncStopAfter(fct FuncEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopAfter = append(c.stopAfter, fct)
}

func (c *cage) logEntry(lvl loglvl.Level, msg string) logent.Entry {
	if c.log == nil || c.log() == nil {
		return nil
	}
	return c.log().Entry(lvl, msg)
}

func runHooks(code liberr.CodeError, hooks []FuncEvent) liberr.Error {
	err := code.Error(nil)

	for _, h := range hooks {
		if h == nil {
			continue
		}
		if e := h(); e != nil {
			err.Add(e)
		}
	}

	if err.HasParent() {
		return err
	}
	return nil
}

func (c *cage) Start() liberr.Error {
	c.mu.Lock()
	before := append([]FuncEvent(nil), c.startBefore...)
	after := append([]FuncEvent(nil), c.startAfter...)
	c.mu.Unlock()

	if err := runHooks(ErrorStartHook, before); err != nil {
		return err
	}

	if len(c.watchPaths) > 0 {
		c.startWatch()
	}

	return runHooks(ErrorStartHook, after)
}

func (c *cage) Reload() liberr.Error {
	c.mu.Lock()
	before := append([]FuncEvent(nil), c.reloadBfr...)
	after := append([]FuncEvent(nil), c.reloadAftr...)
	c.mu.Unlock()

	if err := runHooks(ErrorReloadHook, before); err != nil {
		return err
	}

	return runHooks(ErrorReloadHook, after)
}

func (c *cage) Stop() {
	c.mu.Lock()
	before := append([]FuncEvent(nil), c.stopBefore...)
	after := append([]FuncEvent(nil), c.stopAfter...)
	c.mu.Unlock()

	if err := runHooks(ErrorStopHook, before); err != nil {
		if e := c.logEntry(loglvl.ErrorLevel, "stop hook (before) failed"); e != nil {
			e.ErrorAdd(true, err)
			e.Log()
		}
	}

	c.stopWatch()

	if err := runHooks(ErrorStopHook, after); err != nil {
		if e := c.logEntry(loglvl.ErrorLevel, "stop hook (after) failed"); e != nil {
			e.ErrorAdd(true, err)
			e.Log()
		}
	}
}

func (c *cage) Shutdown(code int) {
	c.Stop()
	os.Exit(code)
}

// startWatch begins watching WatchPaths with fsnotify, debouncing a burst
// of events from a single file save into one Reload call. The teacher's
// config package never wires fsnotify itself despite carrying it in
// go.mod; this is that missing piece.
func (c *cage) startWatch() {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		if e := c.logEntry(loglvl.ErrorLevel, "config watcher init failed"); e != nil {
			e.ErrorAdd(true, err)
			e.Log()
		}
		return
	}

	for _, p := range c.watchPaths {
		if err = w.Add(p); err != nil {
			if e := c.logEntry(loglvl.WarnLevel, "config watcher could not add path"); e != nil {
				e.ErrorAdd(true, err)
				e.FieldAdd("path", p)
				e.Log()
			}
		}
	}

	c.watcher = w
	c.done = make(chan struct{})

	go c.watchLoop(w, c.done)
}

func (c *cage) watchLoop(w *fsnotify.Watcher, done chan struct{}) {
	var timer *time.Timer

	resetTimer := func() {
		if timer == nil {
			timer = time.NewTimer(c.debounce)
			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(c.debounce)
	}

	var timerC <-chan time.Time

	for {
		select {
		case <-done:
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			resetTimer()
			timerC = timer.C
		case <-timerC:
			if err := c.Reload(); err != nil {
				if e := c.logEntry(loglvl.ErrorLevel, "reload triggered by config watcher failed"); e != nil {
					e.ErrorAdd(true, err)
					e.Log()
				}
			}
		case _, ok := <-w.Errors:
			if !ok {
				return
			}
		}
	}
}

func (c *cage) stopWatch() {
	if c.watcher == nil {
		return
	}
	close(c.done)
	_ = c.watcher.Close()
	c.watcher = nil
}

// WaitNotify blocks until SIGINT/SIGTERM/SIGQUIT is received, then calls
// Shutdown(0). Grounded on config/interface.go's WaitNotify.
func (c *cage) WaitNotify() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	<-quit
	c.Shutdown(0)
}
