// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solverfmt

import (
	"bufio"
	"bytes"
	"regexp"
	"strconv"
	"strings"
)

// bytesAllocated matches the heap summary valgrind prints on exit:
//
//	==4242==   total heap usage: 1,024 allocs, 1,024 frees, 73,728 bytes allocated
var bytesAllocated = regexp.MustCompile(`([0-9][0-9,]*) bytes allocated`)

// ParseMemcheck scans memory profiler output for the total number of
// bytes allocated. ok is false if the profiler did not report it.
func ParseMemcheck(stderr []byte) (n float64, ok bool) {
	s := bufio.NewScanner(bytes.NewReader(stderr))
	for s.Scan() {
		m := bytesAllocated.FindSubmatch(s.Bytes())
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(string(m[1]), ",", ""), 64)
		if err != nil {
			continue
		}
		n, ok = v, true
	}
	return n, ok
}

// SetMemcheck stores the allocation total from stderr in rec, if the
// profiler reported one.
func SetMemcheck(rec *Record, stderr []byte) bool {
	n, ok := ParseMemcheck(stderr)
	if ok {
		rec.Set(PeakMemoryBytes, n)
	}
	return ok
}
