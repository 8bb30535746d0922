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

package rwcache

import "time"

// groupHit is one weighted hit recorded against a group within the last
// GroupInterval.
type groupHit struct {
	at     time.Time
	key    string
	weight float64
}

// groupWindow is the sliding-window hit log for one group key.
type groupWindow struct {
	hits []groupHit
}

// record appends a hit and is always followed by prune under the same
// cache-wide mutex (groupWindow has no lock of its own).
func (w *groupWindow) record(now time.Time, key string, weight float64) {
	w.hits = append(w.hits, groupHit{at: now, key: key, weight: weight})
}

// prune drops hits older than interval and returns the sum of the
// remaining weights and the count of distinct keys contributing to it.
func (w *groupWindow) prune(now time.Time, interval time.Duration) (sum float64, distinct int) {
	cutoff := now.Add(-interval)

	kept := w.hits[:0]
	seen := make(map[string]struct{}, len(w.hits))

	for _, h := range w.hits {
		if h.at.Before(cutoff) {
			continue
		}
		kept = append(kept, h)
		sum += h.weight
		seen[h.key] = struct{}{}
	}

	w.hits = kept
	return sum, len(seen)
}

// groupWeight is sum/distinct for one group, or 0 if the group has had no
// hits within the window.
func (w *groupWindow) groupWeight(now time.Time, interval time.Duration) float64 {
	sum, distinct := w.prune(now, interval)
	if distinct == 0 {
		return 0
	}
	return sum / float64(distinct)
}
