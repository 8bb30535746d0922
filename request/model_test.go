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

package request_test

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libreq "github.com/nabbar/cage/request"
)

var _ = Describe("Context", func() {
	Describe("New", func() {
		It("stamps a unique id and the requested deadline", func() {
			c := libreq.New(nil, "rpc", "tcp", 5*time.Second)
			Expect(c.UniqueID()).ToNot(BeEmpty())
			Expect(c.Interface()).To(Equal("rpc"))
			Expect(c.Protocol()).To(Equal("tcp"))
			Expect(c.Remaining()).To(BeNumerically(">", 0))
			Expect(c.Remaining()).To(BeNumerically("<=", 5*time.Second))
		})
	})

	Describe("SetRemaining", func() {
		It("tightens but never extends the deadline", func() {
			c := libreq.New(nil, "", "", 10*time.Second)
			c.SetRemaining(1 * time.Second)
			Expect(c.Remaining()).To(BeNumerically("<=", 1*time.Second))

			before := c.Remaining()
			c.SetRemaining(5 * time.Second)
			Expect(c.Remaining()).To(BeNumerically("<=", before+10*time.Millisecond))
		})

		It("clamps Remaining to zero once the deadline has passed", func() {
			c := libreq.New(nil, "", "", 0)
			time.Sleep(1 * time.Millisecond)
			Expect(c.Remaining()).To(Equal(time.Duration(0)))
		})
	})

	Describe("log level stack", func() {
		It("is LIFO and falls back to the process default when empty", func() {
			c := libreq.New(nil, "", "", time.Second)
			Expect(c.EffectiveLogLevel(3)).To(Equal(int32(3)))

			c.PushLogLevel(7)
			c.PushLogLevel(9)
			Expect(c.EffectiveLogLevel(3)).To(Equal(int32(9)))

			c.PopLogLevel()
			Expect(c.EffectiveLogLevel(3)).To(Equal(int32(7)))

			c.PopLogLevel()
			Expect(c.EffectiveLogLevel(3)).To(Equal(int32(3)))
		})
	})

	Describe("Parameters", func() {
		It("stores and loads values in the parameter bag", func() {
			c := libreq.New(nil, "", "", time.Second)
			c.Parameters().Store(libreq.AuthTokensKey, map[string]interface{}{"user": "alice"})

			v, ok := c.Parameters().Load(libreq.AuthTokensKey)
			Expect(ok).To(BeTrue())
			Expect(v).To(HaveKeyWithValue("user", "alice"))
		})
	})

	Describe("Clone", func() {
		It("copies deadline, description and parameters independently", func() {
			c := libreq.New(nil, "", "", time.Second)
			c.SetDescription("original")
			c.Parameters().Store("k", "v")
			c.PushLogLevel(4)

			n := c.Clone()
			n.SetDescription("cloned")
			n.Parameters().Store("k", "changed")

			Expect(c.Description()).To(Equal("original"))
			Expect(n.Description()).To(Equal("cloned"))

			ov, _ := c.Parameters().Load("k")
			nv, _ := n.Parameters().Load("k")
			Expect(ov).To(Equal("v"))
			Expect(nv).To(Equal("changed"))

			Expect(n.EffectiveLogLevel(0)).To(Equal(int32(4)))
		})
	})

	Describe("ToDict / FromDict", func() {
		It("round-trips the essential fields", func() {
			c := libreq.New(nil, "iface", "proto", 2*time.Second)
			c.SetDescription("hello")
			c.Parameters().Store("k", "v")

			d := c.ToDict()
			Expect(d.UniqueID).To(Equal(c.UniqueID()))
			Expect(d.Description).To(Equal("hello"))
			Expect(d.Parameters).To(HaveKeyWithValue("k", "v"))

			rebuilt := libreq.FromDict(d, 10*time.Second)
			Expect(rebuilt.UniqueID()).To(Equal(c.UniqueID()))
			Expect(rebuilt.Description()).To(Equal("hello"))
		})

		It("clamps the deadline to the shorter of incoming and local override", func() {
			d := libreq.Dict{
				UniqueID: "abc",
				Deadline: time.Now().Add(100 * time.Millisecond),
			}

			rebuilt := libreq.FromDict(d, 10*time.Second)
			Expect(rebuilt.Remaining()).To(BeNumerically("<=", 150*time.Millisecond))
		})
	})

	Describe("Acquire", func() {
		It("succeeds immediately on an uncontended mutex", func() {
			var mu sync.Mutex
			c := libreq.New(nil, "", "", time.Second)
			Expect(c.Acquire(&mu, false)).To(BeTrue())
			mu.Unlock()
		})

		It("times out when the mutex stays held past the deadline", func() {
			var mu sync.Mutex
			mu.Lock()
			defer mu.Unlock()

			c := libreq.New(nil, "", "", 20*time.Millisecond)
			Expect(c.Acquire(&mu, false)).To(BeFalse())
		})

		It("supports shared (read) acquisition via RWMutex", func() {
			var mu sync.RWMutex
			c := libreq.New(nil, "", "", time.Second)
			Expect(c.Acquire(&mu, true)).To(BeTrue())
			mu.RUnlock()
		})
	})

	Describe("Fake", func() {
		It("returns a usable background context", func() {
			c := libreq.Fake(time.Second)
			Expect(c.UniqueID()).ToNot(BeEmpty())
			Expect(c.Protocol()).To(Equal("background"))
		})
	})
})
