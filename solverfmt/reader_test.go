// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solverfmt

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const savingsOutput = `#1 2 5 9
#2 3 4
#3 6

#4 7 8
Overall distances 1523.45
Vehicles 4
Average number of customers 2
Number of routes linking only one customer 1
Number of routes linking only two customers 2
Unused capacity 35
Time of the algorithm 1211 microseconds
`

func TestParseSavings(t *testing.T) {
	out := Parse([]byte(savingsOutput), "savings")
	require.Empty(t, out.Errors)

	assert.Equal(t, Routes{{2, 5, 9}, {3, 4}, {6}, {7, 8}}, out.Routes)

	want := map[Field]float64{
		TotalDistance:        1523.45,
		VehicleCount:         4,
		AvgCustomersPerRoute: 2,
		SingleCustomerRoutes: 1,
		TwoCustomerRoutes:    2,
		UnusedCapacity:       35,
		ElapsedTime:          1211,
	}
	for f, v := range want {
		got, ok := out.Record.Get(f)
		if assert.True(t, ok, "%s missing", f) {
			assert.Equal(t, v, got, "%s", f)
		}
	}
	assert.False(t, out.Record.Has(PeakMemoryBytes))
	assert.False(t, out.Record.Has(InstanceSize))
}

func TestMetricLineTags(t *testing.T) {
	rec := ParseRecord([]byte("Overall distance: 123.45 km\nVehicles used: 7\n"))

	d, ok := rec.Get(TotalDistance)
	require.True(t, ok)
	assert.Equal(t, 123.45, d)

	v, ok := rec.Get(VehicleCount)
	require.True(t, ok)
	assert.Equal(t, 7.0, v)
}

func TestUnitSuffixInvariance(t *testing.T) {
	for _, line := range []string{
		"Time of the algorithm 1211",
		"Overall distances 0.5",
		"Unused capacity 12",
		"Vehicles 3",
	} {
		_, bare, ok := MetricValue(line)
		require.True(t, ok, line)
		for _, unit := range []string{"microseconds", "km", "units"} {
			label, withUnit, ok := MetricValue(line + " " + unit)
			require.True(t, ok, line)
			assert.Equal(t, bare, withUnit, "%q with unit %q", line, unit)
			assert.NotContains(t, label, unit)
		}
	}
}

func TestUnknownTagsIgnored(t *testing.T) {
	// The genetic solver prints its best fitness as a bare number.
	out := Parse([]byte("1523.4\nsomething else 5\nZ 4 things\n#1 2 3\n"), "genetic")
	assert.Empty(t, out.Errors)
	assert.Equal(t, Record{}, out.Record)
	assert.Equal(t, Routes{{2, 3}}, out.Routes)
}

func TestSyntaxErrors(t *testing.T) {
	out := Parse([]byte("Vehicles many\n#1 2 x 3\nUnused capacity 4\n"), "bad")
	require.Len(t, out.Errors, 2)
	assert.Equal(t, "bad:1: missing measurement", out.Errors[0].Error())
	assert.True(t, strings.HasPrefix(out.Errors[1].Error(), "bad:2: parsing customer id \"x\""))

	// Good lines are still parsed.
	u, ok := out.Record.Get(UnusedCapacity)
	assert.True(t, ok)
	assert.Equal(t, 4.0, u)
	assert.Empty(t, out.Routes)
}

func TestRouteOrderPreserved(t *testing.T) {
	routes := ParseRoutes([]byte("#3 9\n#1 1\n#2 5 4\n"))
	assert.Equal(t, Routes{{9}, {1}, {5, 4}}, routes)
}

func TestMissingField(t *testing.T) {
	var rec Record
	_, err := rec.MustGet(ElapsedTime)
	var mf *MissingFieldError
	require.True(t, errors.As(err, &mf))
	assert.Equal(t, ElapsedTime, mf.Field)

	rec.Set(ElapsedTime, 3)
	v, err := rec.MustGet(ElapsedTime)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)
	assert.True(t, rec.Complete(ElapsedTime))
	assert.False(t, rec.Complete(ElapsedTime, TotalDistance))

	rec.Clear(ElapsedTime)
	assert.False(t, rec.Has(ElapsedTime))
}
