// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solverfmt

import (
	"errors"
	"fmt"
	"path/filepath"
)

// An Algorithm is one of the solver strategies being compared.
type Algorithm int

const (
	Savings Algorithm = iota
	Genetic

	numAlgorithms
)

// Algorithms lists every valid Algorithm in the order the solver
// documents them.
var Algorithms = []Algorithm{Savings, Genetic}

var algorithmNames = [numAlgorithms]string{
	Savings: "savings",
	Genetic: "genetic",
}

// ErrInvalidAlgorithm is returned when an algorithm name is not one of
// the names the solver accepts.
var ErrInvalidAlgorithm = errors.New("invalid algorithm")

// ParseAlgorithm returns the Algorithm named s.
func ParseAlgorithm(s string) (Algorithm, error) {
	for i, name := range algorithmNames {
		if s == name {
			return Algorithm(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q: want one of savings, genetic", ErrInvalidAlgorithm, s)
}

// Valid reports whether a is a member of the algorithm enumeration.
func (a Algorithm) Valid() bool {
	return a >= 0 && a < numAlgorithms
}

func (a Algorithm) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
	return algorithmNames[a]
}

// A RunKey identifies one experiment: one algorithm executed on one
// instance file.
type RunKey struct {
	Algorithm Algorithm
	Instance  string
}

// String returns a form of k that is stable across runs.
func (k RunKey) String() string {
	return k.Algorithm.String() + ":" + filepath.Clean(k.Instance)
}

// A Field is one metric of a Record. Fields are numbered in the fixed
// order used by every persisted encoding.
type Field int

const (
	InstanceSize Field = iota
	TotalDistance
	VehicleCount
	AvgCustomersPerRoute
	SingleCustomerRoutes
	TwoCustomerRoutes
	UnusedCapacity
	ElapsedTime
	PeakMemoryBytes

	NumFields
)

var fieldNames = [NumFields]string{
	InstanceSize:         "instance_size",
	TotalDistance:        "total_distance",
	VehicleCount:         "vehicle_count",
	AvgCustomersPerRoute: "avg_customers_per_route",
	SingleCustomerRoutes: "single_customer_route_count",
	TwoCustomerRoutes:    "two_customer_route_count",
	UnusedCapacity:       "unused_capacity",
	ElapsedTime:          "elapsed_time",
	PeakMemoryBytes:      "peak_memory_bytes",
}

func (f Field) String() string {
	if f < 0 || f >= NumFields {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// A Record is the outcome of one experiment. Every field is absent
// until it is set.
//
// The zero Record has no fields set.
type Record struct {
	values [NumFields]float64
	set    uint16
}

// Set sets field f to v.
func (r *Record) Set(f Field, v float64) {
	r.values[f] = v
	r.set |= 1 << uint(f)
}

// Clear marks field f as absent.
func (r *Record) Clear(f Field) {
	r.values[f] = 0
	r.set &^= 1 << uint(f)
}

// Has reports whether field f is present.
func (r Record) Has(f Field) bool {
	return r.set&(1<<uint(f)) != 0
}

// Get returns the value of field f and whether it is present.
func (r Record) Get(f Field) (float64, bool) {
	if !r.Has(f) {
		return 0, false
	}
	return r.values[f], true
}

// Size returns the instance size, or 0 if it is absent.
func (r Record) Size() int {
	return int(r.values[InstanceSize])
}

// Complete reports whether every field in fields is present.
func (r Record) Complete(fields ...Field) bool {
	for _, f := range fields {
		if !r.Has(f) {
			return false
		}
	}
	return true
}

// MustGet is like Get, but reports an absent field as a
// *MissingFieldError so consumers can propagate it.
func (r Record) MustGet(f Field) (float64, error) {
	v, ok := r.Get(f)
	if !ok {
		return 0, &MissingFieldError{Field: f}
	}
	return v, nil
}

// A MissingFieldError reports that a consumer needed a field that was
// never parsed from the solver output.
type MissingFieldError struct {
	Field Field
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("malformed output: %s was not reported", e.Field)
}

// Routes is the ordered set of routes printed by one solver run. Each
// route is the ordered list of customer IDs it visits.
type Routes [][]int
