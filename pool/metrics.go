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

package pool

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	metricsOnce sync.Once

	gaugeFree   *prometheus.GaugeVec
	gaugeBusy   *prometheus.GaugeVec
	counterMade *prometheus.CounterVec
	counterGone *prometheus.CounterVec
)

func initMetrics() {
	metricsOnce.Do(func() {
		gaugeFree = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "cage",
			Subsystem: "pool",
			Name:      "free_instances",
			Help:      "Number of idle, connected instances currently in the free list.",
		}, []string{"pool"})

		gaugeBusy = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "cage",
			Subsystem: "pool",
			Name:      "busy_instances",
			Help:      "Number of instances currently checked out or being connected.",
		}, []string{"pool"})

		counterMade = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cage",
			Subsystem: "pool",
			Name:      "instances_created_total",
			Help:      "Total instances created by this pool's factory.",
		}, []string{"pool"})

		counterGone = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cage",
			Subsystem: "pool",
			Name:      "instances_destroyed_total",
			Help:      "Total instances disconnected and dropped by this pool.",
		}, []string{"pool"})

		for _, c := range []prometheus.Collector{gaugeFree, gaugeBusy, counterMade, counterGone} {
			if err := prometheus.Register(c); err != nil {
				if _, dup := err.(prometheus.AlreadyRegisteredError); !dup {
					panic(err)
				}
			}
		}
	})
}

func reportGauges(name string, free, busy int) {
	initMetrics()
	gaugeFree.WithLabelValues(name).Set(float64(free))
	gaugeBusy.WithLabelValues(name).Set(float64(busy))
}

func reportCreated(name string) {
	initMetrics()
	counterMade.WithLabelValues(name).Inc()
}

func reportDestroyed(name string) {
	initMetrics()
	counterGone.WithLabelValues(name).Inc()
}
