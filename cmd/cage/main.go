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

// Command cage starts one cage process: a module loader rooted at a set of
// plugin directories, a shared pool registry, and the Start/WaitNotify
// lifecycle that ties both to OS signals.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	spfcbr "github.com/spf13/cobra"

	libcage "github.com/nabbar/cage/cage"
	libcbr "github.com/nabbar/cage/cobra"
	liblog "github.com/nabbar/cage/logger"
	libmod "github.com/nabbar/cage/module"
	libreg "github.com/nabbar/cage/registry"
)

func main() {
	app := libcbr.New()
	app.SetLogger(func() liblog.Logger {
		return liblog.New(context.Background)
	})
	app.Init()

	var (
		moduleDirs []string
		cageDir    string
		watchPaths []string
		watchDebnc time.Duration
		minReload  time.Duration
	)

	run := app.NewCommand("run", "start the cage process", "loads modules and blocks until a shutdown signal", "", "")
	app.AddCommand(run)

	app.AddFlagStringArray(true, &moduleDirs, "module-dir", "m", nil, "directories searched for module artifacts, cage-local first")
	app.AddFlagString(true, &cageDir, "cage-dir", "", "", "this cage's own module directory, searched before module-dir")
	app.AddFlagStringArray(true, &watchPaths, "watch", "w", nil, "filesystem paths that trigger a reload when changed")
	app.AddFlagDuration(true, &watchDebnc, "watch-debounce", "", 200*time.Millisecond, "coalesces a burst of filesystem events into one reload")
	app.AddFlagDuration(true, &minReload, "min-reload-interval", "", time.Second, "minimum interval between a module's mtime checks")

	run.RunE = func(cmd *spfcbr.Command, args []string) error {
		cg := libcage.New(libcage.Config{
			Module: libmod.Config{
				Dirs:              moduleDirs,
				CageDir:           cageDir,
				MinReloadInterval: minReload,
			},
			Registry:      libreg.Config{},
			Log:           func() liblog.Logger { return liblog.New(context.Background) },
			WatchPaths:    watchPaths,
			WatchDebounce: watchDebnc,
		})

		if err := cg.Start(); err != nil {
			return fmt.Errorf("starting cage: %w", err)
		}

		cg.WaitNotify()
		return nil
	}

	if err := app.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
