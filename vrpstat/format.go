// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrpstat

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/vrpbench/vrpbench/internal/texttab"
	"github.com/vrpbench/vrpbench/solverfmt"
)

var fieldLabels = map[solverfmt.Field]string{
	solverfmt.TotalDistance:        "distance",
	solverfmt.VehicleCount:         "vehicles used",
	solverfmt.AvgCustomersPerRoute: "average count of customers on a route",
	solverfmt.UnusedCapacity:       "unused capacity",
	solverfmt.ElapsedTime:          "run-time",
	solverfmt.PeakMemoryBytes:      "memory",
	solverfmt.SingleCustomerRoutes: "One customer in a route",
	solverfmt.TwoCustomerRoutes:    "Two customers in a route",
}

// columnLabels are the short headers of the per-instance table.
var columnLabels = map[solverfmt.Field]string{
	solverfmt.TotalDistance:        "distance",
	solverfmt.VehicleCount:         "vehicles",
	solverfmt.AvgCustomersPerRoute: "customers/route",
	solverfmt.UnusedCapacity:       "unused",
	solverfmt.ElapsedTime:          "time",
	solverfmt.PeakMemoryBytes:      "memory",
}

// Label returns the human-readable name of f used in reports.
func Label(f solverfmt.Field) string {
	if l, ok := fieldLabels[f]; ok {
		return l
	}
	return f.String()
}

// formatNum formats v for a report. Undefined values print as "-".
func formatNum(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// FormatText writes the summary of r as labeled lines: the average
// ratio of each metric over the selected instances, followed by the
// per-algorithm sums of the short-route counts over all instances.
func FormatText(w io.Writer, r *Report) error {
	a, b := r.Names[0], r.Names[1]
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Average ratio of %s / %s for selected properties:\n", a, b)
	for _, rt := range r.Ratios {
		fmt.Fprintf(bw, "\t%s: %s", Label(rt.Field), formatNum(rt.Mean))
		if !math.IsNaN(rt.Lo) {
			fmt.Fprintf(bw, " [%s, %s]", formatNum(rt.Lo), formatNum(rt.Hi))
		}
		fmt.Fprintf(bw, " (n=%d", rt.Used())
		if rt.Skipped > 0 {
			fmt.Fprintf(bw, ", %d skipped", rt.Skipped)
		}
		fmt.Fprintf(bw, ")\n")
	}
	fmt.Fprintf(bw, "Selected %d of %d instances.\n", r.Selected, r.Instances)

	for _, c := range r.Counts {
		fmt.Fprintf(bw, "%s:\n", Label(c.Field))
		fmt.Fprintf(bw, "\t%s: %s\n", a, formatNum(c.A))
		fmt.Fprintf(bw, "\t%s: %s\n", b, formatNum(c.B))
		fmt.Fprintf(bw, "\t%s fewer on %d, more on %d, equal on %d\n", a, c.Tally.Less, c.Tally.Greater, c.Tally.Equal)
	}
	return bw.Flush()
}

// FormatInstances writes one table row per compared instance with the
// a/b ratio of each metric. Instances rejected by the filter are marked
// "excluded".
func FormatInstances(w io.Writer, r *Report) error {
	var tab texttab.Table
	tab.Row().Cell("#").Cell("size", texttab.Right)
	for _, f := range RatioFields {
		tab.Cell(columnLabels[f], texttab.Right)
	}
	tab.Cell("")

	for _, row := range r.Rows {
		tab.Row().Cell(strconv.Itoa(row.Index+1)).Cell(strconv.Itoa(row.Size), texttab.Right)
		for _, v := range row.Ratios {
			tab.Cell(formatNum(v), texttab.Right)
		}
		if row.Selected {
			tab.Cell("")
		} else {
			tab.Cell("excluded")
		}
	}
	return tab.Format(w)
}
