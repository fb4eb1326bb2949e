// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Vrpbench runs the routing solver on sets of instances and compares
// its savings and genetic algorithms.
//
// Usage:
//
//	vrpbench gather <algorithm> <instance-dir|file> <output>
//	vrpbench compare <instance-dir|file> <output>
//	vrpbench stat [-min-size n] [-html] [-instances] <savings-results> <genetic-results>
//	vrpbench curves [-cutoff n] <results> <out-dir>
//	vrpbench routes <algorithm> <instance.xml> <out.png>
//
// Gather runs one algorithm on every .xml instance of a directory, once
// directly and once under the memory profiler, and appends one line of
// results per instance to the output. Compare does the same for both
// algorithms at once, writing the savings and genetic results of each
// instance next to each other, and then prints the comparison.
//
// If the output already exists, neither command runs the solver again:
// the stored results are used instead. Delete the output to measure
// again.
//
// Instances on which the solver crashes or exceeds its time limit are
// left out of the results and listed at the end of the run.
//
// Stat prints the average ratio savings/genetic of every metric over
// the instances with at least -min-size customers, and the total
// number of routes serving one or two customers over all instances.
//
// Curves draws time and memory against instance size for one result
// file. Routes runs the solver once and draws the routes it found.
//
// Settings are read from vrpbench.yaml in the current directory, or the
// file named by -config:
//
//	executable: ./gal
//	profiler: valgrind
//	timeout: 120s
//	profile_factor: 5
//	min_size: 100
//	curve_cutoff: 100
//	store: sqlite3:results.db
//
// The store selects where results are kept: CSV files (the default),
// or a sqlite3 or mysql database, in which case outputs name result
// sets inside the database.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
