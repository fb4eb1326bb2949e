// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vrpbench/vrpbench/solverfmt"
)

func rec(size, time float64) solverfmt.Record {
	var r solverfmt.Record
	r.Set(solverfmt.InstanceSize, size)
	r.Set(solverfmt.ElapsedTime, time)
	return r
}

func TestExtractExclude(t *testing.T) {
	recs := []solverfmt.Record{rec(50, 5), rec(10, 1), rec(100, 10)}
	got := Extract(recs, Size, Time, Above(90))
	assert.Equal(t, Series{{10, 1}, {50, 5}}, got)
}

func TestExtractStable(t *testing.T) {
	recs := []solverfmt.Record{rec(20, 3), rec(10, 2), rec(20, 1), rec(10, 4)}
	got := Extract(recs, Size, Time, nil)
	assert.Equal(t, Series{{10, 2}, {10, 4}, {20, 3}, {20, 1}}, got)
}

func TestExtractMissing(t *testing.T) {
	noMem := rec(30, 7)
	withMem := rec(40, 8)
	withMem.Set(solverfmt.PeakMemoryBytes, 4096)
	var noSize solverfmt.Record
	noSize.Set(solverfmt.PeakMemoryBytes, 1)

	recs := []solverfmt.Record{noMem, withMem, noSize}
	assert.Equal(t, Series{{40, 4096}}, Extract(recs, Size, Memory, nil))
	// The same records feed an independent time series.
	assert.Equal(t, Series{{30, 7}, {40, 8}}, Extract(recs, Size, Time, nil))
}

func TestSeriesXY(t *testing.T) {
	s := Series{{1, 2}, {3, 4}}
	assert.Equal(t, 2, s.Len())
	x, y := s.XY(1)
	assert.Equal(t, 3.0, x)
	assert.Equal(t, 4.0, y)
}
