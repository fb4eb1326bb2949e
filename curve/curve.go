// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package curve extracts complexity curves from single-algorithm
// results: a metric plotted against the instance size.
package curve

import (
	"sort"

	"github.com/vrpbench/vrpbench/solverfmt"
)

// A Point is one (size, metric) observation.
type Point struct {
	Size, Value float64
}

// A Series is a sequence of points ordered by ascending size.
type Series []Point

// XY implements gonum's plotter.XYer.
func (s Series) XY(i int) (x, y float64) {
	return s[i].Size, s[i].Value
}

// Len returns the number of points in s.
func (s Series) Len() int { return len(s) }

// An Accessor extracts one value from a record and reports whether it
// was present.
type Accessor func(solverfmt.Record) (float64, bool)

// Field returns an Accessor for field f.
func Field(f solverfmt.Field) Accessor {
	return func(r solverfmt.Record) (float64, bool) { return r.Get(f) }
}

var (
	Size   = Field(solverfmt.InstanceSize)
	Time   = Field(solverfmt.ElapsedTime)
	Memory = Field(solverfmt.PeakMemoryBytes)
)

// Above returns an exclusion predicate that drops records whose
// instance size is greater than cutoff.
func Above(cutoff float64) func(solverfmt.Record) bool {
	return func(r solverfmt.Record) bool {
		v, ok := r.Get(solverfmt.InstanceSize)
		return ok && v > cutoff
	}
}

// Extract builds the series of metric against size over records. Records
// matching exclude, or lacking either value, are dropped before sorting.
// Points of equal size keep their relative order from records. exclude
// may be nil.
func Extract(records []solverfmt.Record, size, metric Accessor, exclude func(solverfmt.Record) bool) Series {
	s := make(Series, 0, len(records))
	for _, r := range records {
		if exclude != nil && exclude(r) {
			continue
		}
		x, ok := size(r)
		if !ok {
			continue
		}
		y, ok := metric(r)
		if !ok {
			continue
		}
		s = append(s, Point{x, y})
	}
	sort.SliceStable(s, func(i, j int) bool { return s[i].Size < s[j].Size })
	return s
}
