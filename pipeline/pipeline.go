// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pipeline drives experiment batches: it runs the solver on
// every instance, one at a time, and appends the parsed results to a
// result set.
//
// A batch whose result set already exists is not run again; its stored
// results are loaded instead. Instances on which the solver crashes or
// times out are reported in Result.Crashed and contribute no entries.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/vrpbench/vrpbench/resultstore"
	"github.com/vrpbench/vrpbench/runner"
	"github.com/vrpbench/vrpbench/solverfmt"
	"github.com/vrpbench/vrpbench/vrpstat"
)

// An Executor runs the solver. *runner.Runner is the production
// implementation.
type Executor interface {
	Run(ctx context.Context, alg solverfmt.Algorithm, instance string) (*runner.Output, error)
	RunProfiled(ctx context.Context, alg solverfmt.Algorithm, instance string) ([]byte, error)
}

// A Checker is an Executor that can tell up front whether it is able
// to run at all.
type Checker interface {
	Check() error
}

// A Pipeline runs experiment batches.
type Pipeline struct {
	Exec  Executor
	Store resultstore.Store

	// Progress receives one line per solver run. It may be nil.
	Progress io.Writer

	// HostInfo, if not nil, is written next to every new file result
	// set.
	HostInfo *HostInfo
}

// A Crash records an instance excluded from a batch.
type Crash struct {
	Instance  string
	Algorithm solverfmt.Algorithm
	Err       error
}

func (c Crash) String() string {
	return fmt.Sprintf("%s (%s): %v", c.Instance, c.Algorithm, c.Err)
}

// Result is the outcome of a batch.
type Result struct {
	Entries []resultstore.Entry
	Crashed []Crash

	// Cached reports that the result set already existed and was
	// loaded without running the solver.
	Cached bool
}

// Measure runs alg on instance, once directly and once under the
// memory profiler, and returns the parsed results. A failure of either
// run is returned as a *runner.Failure. Malformed output lines are
// logged and leave their fields absent.
func Measure(ctx context.Context, exec Executor, alg solverfmt.Algorithm, instance string) (*solverfmt.Output, error) {
	run, err := exec.Run(ctx, alg, instance)
	if err != nil {
		return nil, err
	}
	out := solverfmt.Parse(run.Stdout, instance)
	for _, se := range out.Errors {
		logrus.Warnf("%s output: %v", alg, se)
	}

	stderr, err := exec.RunProfiled(ctx, alg, instance)
	if err != nil {
		return nil, err
	}
	if !solverfmt.SetMemcheck(&out.Record, stderr) {
		logrus.Warnf("%s on %s: no heap summary in profiler output", alg, instance)
	}

	if n, ok := InstanceSize(instance); ok {
		out.Record.Set(solverfmt.InstanceSize, float64(n))
	} else {
		logrus.Warnf("%s: no customer count in file name", instance)
	}
	return out, nil
}

// open loads set if it exists. Otherwise it checks the executor and
// creates the set, returning an Appender for it.
func (p *Pipeline) open(set string) (*Result, resultstore.Appender, error) {
	has, err := p.Store.Has(set)
	if err != nil {
		return nil, nil, err
	}
	if has {
		entries, err := p.Store.Load(set)
		if err != nil {
			return nil, nil, err
		}
		logrus.Infof("%s exists, loaded %d results without running the solver", set, len(entries))
		return &Result{Entries: entries, Cached: true}, nil, nil
	}
	if c, ok := p.Exec.(Checker); ok {
		if err := c.Check(); err != nil {
			return nil, nil, err
		}
	}
	app, err := p.Store.Create(set)
	if err != nil {
		return nil, nil, err
	}
	if _, ok := p.Store.(*resultstore.FileStore); ok && p.HostInfo != nil {
		if err := p.HostInfo.WriteFile(set + HostInfoSuffix); err != nil {
			logrus.Warnf("writing host info: %v", err)
		}
	}
	return &Result{}, app, nil
}

// finish closes app, keeping the first error of the batch. A set left
// behind by a failed batch holds only the results saved so far and is
// loaded as-is by later runs.
func finish(app resultstore.Appender, set string, err *error) {
	cerr := app.Close()
	if *err == nil {
		*err = cerr
	}
	if *err != nil {
		logrus.Warnf("%s is incomplete; delete it to measure again", set)
	}
}

func (p *Pipeline) progress(i, n int, alg solverfmt.Algorithm, instance string) {
	if p.Progress == nil {
		return
	}
	size := "an unknown number of"
	if c, ok := InstanceSize(instance); ok {
		size = fmt.Sprint(c)
	}
	fmt.Fprintf(p.Progress, "[%d/%d] running %s on %s with %s customers.\n", i+1, n, alg, instance, size)
}

// crashed records a per-instance failure. Any other error ends the
// batch.
func (res *Result) crashed(instance string, alg solverfmt.Algorithm, err error) error {
	if !runner.IsFailure(err) {
		return err
	}
	logrus.Warnf("excluding %s: %v", instance, err)
	res.Crashed = append(res.Crashed, Crash{Instance: instance, Algorithm: alg, Err: err})
	return nil
}

// Gather runs alg on every instance and appends one entry per
// successful instance to set.
func (p *Pipeline) Gather(ctx context.Context, alg solverfmt.Algorithm, instances []string, set string) (res *Result, err error) {
	if !alg.Valid() {
		return nil, fmt.Errorf("%w: %v", solverfmt.ErrInvalidAlgorithm, alg)
	}
	res, app, err := p.open(set)
	if err != nil || app == nil {
		return res, err
	}
	defer finish(app, set, &err)

	for i, inst := range instances {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		p.progress(i, len(instances), alg, inst)
		out, err := Measure(ctx, p.Exec, alg, inst)
		if err != nil {
			if err := res.crashed(inst, alg, err); err != nil {
				return res, err
			}
			continue
		}
		e := resultstore.Entry{Key: solverfmt.RunKey{Algorithm: alg, Instance: inst}, Record: out.Record}
		if err := app.Append(e); err != nil {
			return res, fmt.Errorf("saving %s: %w", e.Key, err)
		}
		res.Entries = append(res.Entries, e)
	}
	return res, nil
}

// Compare runs every algorithm on each instance in turn. The entries of
// one instance are appended together, in solverfmt.Algorithms order,
// and only once all algorithms have succeeded, so set always holds
// complete groups. Set should be opened in a store that records the
// algorithm of each entry.
func (p *Pipeline) Compare(ctx context.Context, instances []string, set string) (res *Result, err error) {
	res, app, err := p.open(set)
	if err != nil || app == nil {
		return res, err
	}
	defer finish(app, set, &err)

	n := len(instances)
Instances:
	for i, inst := range instances {
		group := make([]resultstore.Entry, 0, len(solverfmt.Algorithms))
		for _, alg := range solverfmt.Algorithms {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			p.progress(i, n, alg, inst)
			out, err := Measure(ctx, p.Exec, alg, inst)
			if err != nil {
				if err := res.crashed(inst, alg, err); err != nil {
					return res, err
				}
				continue Instances
			}
			group = append(group, resultstore.Entry{
				Key:    solverfmt.RunKey{Algorithm: alg, Instance: inst},
				Record: out.Record,
			})
		}
		for _, e := range group {
			if err := app.Append(e); err != nil {
				return res, fmt.Errorf("saving %s: %w", e.Key, err)
			}
		}
		res.Entries = append(res.Entries, group...)
	}
	return res, nil
}

// ErrUnpaired is returned by Split when entries do not consist of
// complete savings, genetic pairs.
var ErrUnpaired = fmt.Errorf("unpaired results: %w", vrpstat.ErrMisalignedInputs)

// Split separates a result set written by Compare into index-aligned
// savings and genetic records.
func Split(entries []resultstore.Entry) (savings, genetic []solverfmt.Record, err error) {
	if len(entries)%2 != 0 {
		return nil, nil, fmt.Errorf("%w: odd number of entries (%d)", ErrUnpaired, len(entries))
	}
	for i := 0; i < len(entries); i += 2 {
		s, g := entries[i], entries[i+1]
		if s.Key.Algorithm != solverfmt.Savings || g.Key.Algorithm != solverfmt.Genetic {
			return nil, nil, fmt.Errorf("%w: entries %d and %d are %s and %s", ErrUnpaired, i+1, i+2, s.Key.Algorithm, g.Key.Algorithm)
		}
		savings = append(savings, s.Record)
		genetic = append(genetic, g.Record)
	}
	return savings, genetic, nil
}
