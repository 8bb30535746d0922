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

import "plugin"

// pluginImage adapts a Go plugin.Plugin to Image. This is the "dynamic
// library reload" mechanism named as the sanctioned re-architecture for hot
// reload: each module compiles to its own buildmode=plugin .so, and a
// reload is simply opening a new one (plugin.Open caches by inode, so a
// rebuilt artifact at a fresh path is required — the companion manifest's
// sentinel line is what lets the loader trust that the new path is
// complete).
type pluginImage struct {
	p *plugin.Plugin
}

func (i *pluginImage) Lookup(name string) (interface{}, bool) {
	sym, err := i.p.Lookup(name)
	if err != nil {
		return nil, false
	}
	return sym, true
}

func openGoPlugin(path string) (Image, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}
	return &pluginImage{p: p}, nil
}
