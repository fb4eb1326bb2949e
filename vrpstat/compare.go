// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vrpstat compares the results of two solver algorithms on the
// same sequence of instances.
//
// Every ratio is computed as a/b, where a is the first sequence passed
// to Compare. The vrpbench command passes savings as a and genetic as
// b, so a ratio below 1 means savings produced the smaller value.
package vrpstat

import (
	"errors"
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"

	"github.com/vrpbench/vrpbench/solverfmt"
)

// ErrMisalignedInputs is returned by Compare when the two result
// sequences have different lengths.
var ErrMisalignedInputs = errors.New("misaligned inputs")

// Confidence is the confidence level of Ratio.Lo and Ratio.Hi.
const Confidence = 0.95

// RatioFields are the metrics compared as per-instance ratios, in
// report order.
var RatioFields = []solverfmt.Field{
	solverfmt.TotalDistance,
	solverfmt.VehicleCount,
	solverfmt.AvgCustomersPerRoute,
	solverfmt.UnusedCapacity,
	solverfmt.ElapsedTime,
	solverfmt.PeakMemoryBytes,
}

// CountFields are the metrics summed per algorithm over every
// instance, in report order.
var CountFields = []solverfmt.Field{
	solverfmt.SingleCustomerRoutes,
	solverfmt.TwoCustomerRoutes,
}

// A Filter selects which instance pairs contribute to the averaged
// ratios. Count sums are accumulated over every pair regardless.
type Filter func(a, b solverfmt.Record) bool

// All is the Filter that accepts every pair.
func All(a, b solverfmt.Record) bool { return true }

// MinSize returns a Filter that accepts instances with at least n
// customers.
func MinSize(n int) Filter {
	return func(a, b solverfmt.Record) bool {
		return a.Has(solverfmt.InstanceSize) && a.Size() >= n
	}
}

// A Ratio summarizes the per-instance ratios of one metric.
type Ratio struct {
	Field solverfmt.Field

	// Considered is the number of pairs accepted by the filter.
	// Skipped is the number of those that had a zero denominator
	// or lacked the metric on either side.
	Considered, Skipped int

	// Values are the ratios of the used pairs, in input order.
	Values []float64

	// Mean and GeoMean average Values. Lo and Hi bound the
	// Confidence interval of Mean. They are NaN if no pair was
	// used.
	Mean, GeoMean float64
	Lo, Hi        float64
}

// Used returns the number of pairs that contributed to the average.
// It is always Considered - Skipped.
func (r *Ratio) Used() int {
	return r.Considered - r.Skipped
}

// A Tally classifies paired values of a count metric.
type Tally struct {
	Less, Greater, Equal int
}

// A Count sums a count metric per algorithm over every instance.
type Count struct {
	Field solverfmt.Field
	A, B  float64
	Tally Tally

	// Skipped is the number of pairs where either side lacked
	// the metric.
	Skipped int
}

// A Row is the comparison of one instance pair.
type Row struct {
	Index int
	Size  int

	// Selected reports whether the pair passed the filter.
	Selected bool

	// Ratios holds a/b for each of RatioFields, or NaN when the
	// ratio is undefined.
	Ratios []float64
}

// A Report is the result of comparing two result sequences.
type Report struct {
	// Names label the a and b sequences in formatted output.
	Names [2]string

	// Instances is the number of compared pairs and Selected the
	// number that passed the filter.
	Instances, Selected int

	Ratios []*Ratio
	Counts []*Count
	Rows   []Row
}

// Ratio returns the summary of field f, or nil if f is not one of
// RatioFields.
func (r *Report) Ratio(f solverfmt.Field) *Ratio {
	for _, rt := range r.Ratios {
		if rt.Field == f {
			return rt
		}
	}
	return nil
}

// Count returns the sum of field f, or nil if f is not one of
// CountFields.
func (r *Report) Count(f solverfmt.Field) *Count {
	for _, c := range r.Counts {
		if c.Field == f {
			return c
		}
	}
	return nil
}

// Compare compares two index-aligned result sequences. a[i] and b[i]
// must be the results of the two algorithms on the same instance;
// Compare can only check that the lengths agree.
func Compare(a, b []solverfmt.Record, filter Filter) (*Report, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d and %d results", ErrMisalignedInputs, len(a), len(b))
	}
	if filter == nil {
		filter = All
	}

	rep := &Report{Names: [2]string{"a", "b"}, Instances: len(a)}
	for _, f := range RatioFields {
		rep.Ratios = append(rep.Ratios, &Ratio{Field: f})
	}
	for _, f := range CountFields {
		rep.Counts = append(rep.Counts, &Count{Field: f})
	}

	for i := range a {
		ra, rb := a[i], b[i]
		for _, c := range rep.Counts {
			c.add(ra, rb)
		}

		row := Row{Index: i, Size: ra.Size(), Ratios: make([]float64, len(RatioFields))}
		row.Selected = filter(ra, rb)
		for j, rt := range rep.Ratios {
			row.Ratios[j] = ratio(ra, rb, rt.Field)
			if !row.Selected {
				continue
			}
			rt.Considered++
			if math.IsNaN(row.Ratios[j]) {
				rt.Skipped++
				continue
			}
			rt.Values = append(rt.Values, row.Ratios[j])
		}
		if row.Selected {
			rep.Selected++
		}
		rep.Rows = append(rep.Rows, row)
	}

	for _, rt := range rep.Ratios {
		rt.summarize()
	}
	return rep, nil
}

// ratio returns a/b for field f, or NaN if either side lacks the
// field or b is zero.
func ratio(a, b solverfmt.Record, f solverfmt.Field) float64 {
	va, oka := a.Get(f)
	vb, okb := b.Get(f)
	if !oka || !okb || vb == 0 {
		return math.NaN()
	}
	return va / vb
}

func (c *Count) add(a, b solverfmt.Record) {
	va, oka := a.Get(c.Field)
	vb, okb := b.Get(c.Field)
	if !oka || !okb {
		c.Skipped++
		return
	}
	c.A += va
	c.B += vb
	switch {
	case va < vb:
		c.Tally.Less++
	case va > vb:
		c.Tally.Greater++
	default:
		c.Tally.Equal++
	}
}

func (r *Ratio) summarize() {
	if len(r.Values) == 0 {
		nan := math.NaN()
		r.Mean, r.GeoMean, r.Lo, r.Hi = nan, nan, nan, nan
		return
	}
	// The divisor is the number of used pairs, never Considered.
	r.Mean = stats.Mean(r.Values)
	r.GeoMean = stats.GeoMean(r.Values)
	if len(r.Values) < 2 {
		r.Lo, r.Hi = math.NaN(), math.NaN()
		return
	}
	sample := stats.Sample{Xs: r.Values}
	_, r.Lo, r.Hi = sample.MeanCI(Confidence)
}
