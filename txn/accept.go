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

package txn

func defaultAccept(n int) Accept {
	return func(results map[int]Result) Decision {
		for _, r := range results {
			if r.Err != nil {
				return Decision{Ready: true, Err: r.Err}
			}
		}
		if len(results) < n {
			return Decision{}
		}

		vals := make([]interface{}, n)
		for i := 0; i < n; i++ {
			vals[i] = results[i].Value
		}
		return Decision{Ready: true, Value: vals}
	}
}

func firstSuccessAccept() Accept {
	return func(results map[int]Result) Decision {
		for _, r := range results {
			if r.Err == nil {
				return Decision{Ready: true, Value: r.Value}
			}
		}
		return Decision{}
	}
}

func anyNonEmptyAccept() Accept {
	return func(results map[int]Result) Decision {
		for _, r := range results {
			if r.Err == nil && r.Value != nil {
				return Decision{Ready: true, Value: r.Value}
			}
		}
		return Decision{}
	}
}
