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
	"bufio"
	"os"
	"strings"
)

// sentinelLine guards against picking up a half-written manifest: a .so
// build can finish writing while its companion manifest is still being
// flushed, so the loader trusts a manifest only if it ends in this exact
// line.
const sentinelLine = "// CAGE-MODULE-EOF"

// manifestPath is the sibling file next to a module's compiled artifact
// that declares its export whitelist and carries the sentinel line.
func manifestPath(artifactPath string) string {
	if strings.HasSuffix(artifactPath, ".so") {
		return strings.TrimSuffix(artifactPath, ".so") + ".manifest"
	}
	return artifactPath + ".manifest"
}

// parseManifest reads the export whitelist from path. __getattr__ as one of
// the declared names enables dynamic attribute lookup (spec's "__all__
// contains __getattr__"); this port has no dynamic-lookup path so the flag
// is parsed but unused beyond being exported via exportsDynamic.
func parseManifest(path string) (exports []string, dynamic bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, false, err
	}

	if len(lines) == 0 || lines[len(lines)-1] != sentinelLine {
		return nil, false, ErrorSentinelMissing.Error(nil)
	}

	for _, l := range lines[:len(lines)-1] {
		if l == "__getattr__" {
			dynamic = true
			continue
		}
		exports = append(exports, l)
	}

	return exports, dynamic, nil
}
