// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrpbench/vrpbench/internal/solvertest"
	"github.com/vrpbench/vrpbench/resultstore"
	"github.com/vrpbench/vrpbench/resultstore/storetest"
	"github.com/vrpbench/vrpbench/runner"
	"github.com/vrpbench/vrpbench/solverfmt"
	"github.com/vrpbench/vrpbench/vrpstat"
)

func newRunner(s *solvertest.Solver) *runner.Runner {
	return &runner.Runner{
		Executable: s.Executable,
		Profiler:   s.Profiler,
		Timeout:    time.Second,
	}
}

func savingsRecord(size int) solverfmt.Record {
	var r solverfmt.Record
	r.Set(solverfmt.InstanceSize, float64(size))
	r.Set(solverfmt.TotalDistance, 120.5)
	r.Set(solverfmt.VehicleCount, 2)
	r.Set(solverfmt.AvgCustomersPerRoute, 1.5)
	r.Set(solverfmt.SingleCustomerRoutes, 1)
	r.Set(solverfmt.TwoCustomerRoutes, 1)
	r.Set(solverfmt.UnusedCapacity, 10)
	r.Set(solverfmt.ElapsedTime, 400)
	r.Set(solverfmt.PeakMemoryBytes, 73728)
	return r
}

func TestGather(t *testing.T) {
	solver := solvertest.New(t)
	dir := solvertest.Instances(t, "A-n32-k5.xml", "B-n45-crash.xml", "C-n50-slow.xml", "D-n64-k9.xml")
	instances, err := ListInstances(dir)
	require.NoError(t, err)
	require.Len(t, instances, 4)

	var progress strings.Builder
	set := filepath.Join(t.TempDir(), "savings.csv")
	p := &Pipeline{
		Exec:     newRunner(solver),
		Store:    &resultstore.FileStore{},
		Progress: &progress,
		HostInfo: &HostInfo{Solver: solver.Executable},
	}
	res, err := p.Gather(context.Background(), solverfmt.Savings, instances, set)
	require.NoError(t, err)
	assert.False(t, res.Cached)
	require.Len(t, res.Entries, 2)
	assert.Equal(t, savingsRecord(32), res.Entries[0].Record)
	assert.Equal(t, savingsRecord(64), res.Entries[1].Record)
	assert.Equal(t, instances[3], res.Entries[1].Key.Instance)

	require.Len(t, res.Crashed, 2)
	var f *runner.Failure
	require.True(t, errors.As(res.Crashed[0].Err, &f))
	assert.Equal(t, runner.Crashed, f.Reason)
	require.True(t, errors.As(res.Crashed[1].Err, &f))
	assert.Equal(t, runner.Timeout, f.Reason)
	assert.Equal(t, instances[2], res.Crashed[1].Instance)

	lines := strings.Split(strings.TrimSpace(progress.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "[1/4] running savings on "+instances[0]+" with 32 customers.", lines[0])
	assert.True(t, strings.HasPrefix(lines[3], "[4/4] running savings on "))

	// Two runs per measured instance, one per failed one.
	calls := len(solver.Calls(t))
	assert.Equal(t, 6, calls)

	hi, err := ReadHostInfo(set + HostInfoSuffix)
	require.NoError(t, err)
	assert.Equal(t, solver.Executable, hi.Solver)

	// A second run loads the stored set and starts no process.
	progress.Reset()
	again, err := p.Gather(context.Background(), solverfmt.Savings, instances, set)
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.Equal(t, resultstore.Records(res.Entries), resultstore.Records(again.Entries))
	assert.Empty(t, again.Crashed)
	assert.Len(t, solver.Calls(t), calls)
	assert.Empty(t, progress.String())
}

func TestGatherInvalidAlgorithm(t *testing.T) {
	set := filepath.Join(t.TempDir(), "r.csv")
	p := &Pipeline{Exec: &failExec{}, Store: &resultstore.FileStore{}}
	_, err := p.Gather(context.Background(), solverfmt.Algorithm(7), []string{"a-n10.xml"}, set)
	assert.ErrorIs(t, err, solverfmt.ErrInvalidAlgorithm)
	_, err = os.Stat(set)
	assert.True(t, os.IsNotExist(err))
}

// failExec fails every run with an error that is not a per-instance
// failure.
type failExec struct{ runs int }

var errBroken = errors.New("broken executor")

func (e *failExec) Run(ctx context.Context, alg solverfmt.Algorithm, instance string) (*runner.Output, error) {
	e.runs++
	return nil, errBroken
}

func (e *failExec) RunProfiled(ctx context.Context, alg solverfmt.Algorithm, instance string) ([]byte, error) {
	return nil, errBroken
}

func TestGatherAbortsOnUnexpectedError(t *testing.T) {
	exec := &failExec{}
	p := &Pipeline{Exec: exec, Store: &resultstore.FileStore{}}
	set := filepath.Join(t.TempDir(), "r.csv")
	res, err := p.Gather(context.Background(), solverfmt.Genetic, []string{"a-n10.xml", "b-n20.xml"}, set)
	assert.ErrorIs(t, err, errBroken)
	assert.Empty(t, res.Crashed)
	assert.Equal(t, 1, exec.runs)
}

func TestGatherCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec := &failExec{}
	p := &Pipeline{Exec: exec, Store: &resultstore.FileStore{}}
	_, err := p.Gather(ctx, solverfmt.Savings, []string{"a-n10.xml"}, filepath.Join(t.TempDir(), "r.csv"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, exec.runs)
}

func TestGatherMissingSolver(t *testing.T) {
	solver := solvertest.New(t)
	dir := solvertest.Instances(t, "A-n32-k5.xml", "B-n45-k5.xml")
	instances, err := ListInstances(dir)
	require.NoError(t, err)

	for name, r := range map[string]*runner.Runner{
		"solver":   {Executable: "/nonexistent/gal", Profiler: solver.Profiler},
		"profiler": {Executable: solver.Executable, Profiler: filepath.Join(t.TempDir(), "valgrind")},
	} {
		t.Run(name, func(t *testing.T) {
			set := filepath.Join(t.TempDir(), "r.csv")
			p := &Pipeline{Exec: r, Store: &resultstore.FileStore{}}
			res, err := p.Gather(context.Background(), solverfmt.Savings, instances, set)
			assert.Error(t, err)
			assert.Nil(t, res)
			_, err = os.Stat(set)
			assert.True(t, os.IsNotExist(err), "no result set may be created")

			_, err = p.Compare(context.Background(), instances, set)
			assert.Error(t, err)
			_, err = os.Stat(set)
			assert.True(t, os.IsNotExist(err))
		})
	}
	assert.Empty(t, solver.Calls(t))
}

// startFailExec passes Check but can't start the solver.
type startFailExec struct{ failExec }

func (startFailExec) Check() error { return nil }

func (e *startFailExec) Run(ctx context.Context, alg solverfmt.Algorithm, instance string) (*runner.Output, error) {
	e.runs++
	_, err := (&runner.Runner{Executable: "/nonexistent/gal"}).Run(ctx, alg, instance)
	return nil, err
}

func TestGatherStartFailure(t *testing.T) {
	exec := &startFailExec{}
	p := &Pipeline{Exec: exec, Store: &resultstore.FileStore{}}
	set := filepath.Join(t.TempDir(), "r.csv")
	res, err := p.Gather(context.Background(), solverfmt.Savings, []string{"a-n10.xml", "b-n20.xml"}, set)
	require.Error(t, err)
	assert.False(t, runner.IsFailure(err))
	assert.Empty(t, res.Crashed)
	assert.Equal(t, 1, exec.runs)
}

func TestGatherInterrupted(t *testing.T) {
	solver := solvertest.New(t)
	dir := solvertest.Instances(t, "A-n32-k5.xml", "B-n40-slow.xml")
	instances, err := ListInstances(dir)
	require.NoError(t, err)

	r := newRunner(solver)
	r.Timeout = 10 * time.Second
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	time.AfterFunc(time.Second, cancel)

	set := filepath.Join(t.TempDir(), "r.csv")
	p := &Pipeline{Exec: r, Store: &resultstore.FileStore{}}
	res, err := p.Gather(ctx, solverfmt.Genetic, instances, set)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, res.Crashed, "an interrupted instance did not crash")
	assert.Len(t, res.Entries, 1)

	// The results saved before the interrupt stay loadable.
	loaded, err := p.Store.Load(set)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

// countingStore records how often its appenders are closed.
type countingStore struct {
	resultstore.FileStore
	closes int
}

type countingAppender struct {
	resultstore.Appender
	s *countingStore
}

func (s *countingStore) Create(set string) (resultstore.Appender, error) {
	app, err := s.FileStore.Create(set)
	if err != nil {
		return nil, err
	}
	return &countingAppender{app, s}, nil
}

func (a *countingAppender) Close() error {
	a.s.closes++
	return a.Appender.Close()
}

func TestAppenderClosedOnce(t *testing.T) {
	solver := solvertest.New(t)
	dir := solvertest.Instances(t, "A-n32-k5.xml")
	instances, err := ListInstances(dir)
	require.NoError(t, err)

	store := &countingStore{FileStore: resultstore.FileStore{Tagged: true}}
	p := &Pipeline{Exec: newRunner(solver), Store: store}
	_, err = p.Compare(context.Background(), instances, filepath.Join(t.TempDir(), "c.csv"))
	require.NoError(t, err)
	assert.Equal(t, 1, store.closes)

	_, err = p.Gather(context.Background(), solverfmt.Savings, instances, filepath.Join(t.TempDir(), "g.csv"))
	require.NoError(t, err)
	assert.Equal(t, 2, store.closes)

	exec := &failExec{}
	p.Exec = exec
	_, err = p.Gather(context.Background(), solverfmt.Savings, instances, filepath.Join(t.TempDir(), "f.csv"))
	assert.ErrorIs(t, err, errBroken)
	assert.Equal(t, 3, store.closes)
}

func TestCompare(t *testing.T) {
	solver := solvertest.New(t)
	dir := solvertest.Instances(t, "A-n32-k5.xml", "B-n40-crash.xml", "C-n120-k7.xml", "notes.txt")
	instances, err := ListInstances(dir)
	require.NoError(t, err)
	require.Len(t, instances, 3)

	for name, store := range map[string]resultstore.Store{
		"file":   &resultstore.FileStore{Tagged: true},
		"sqlite": storetest.NewSQLStore(t),
	} {
		t.Run(name, func(t *testing.T) {
			set := filepath.Join(t.TempDir(), "paired.csv")
			p := &Pipeline{Exec: newRunner(solver), Store: store}
			res, err := p.Compare(context.Background(), instances, set)
			require.NoError(t, err)

			// The crashed instance contributes no entries.
			require.Len(t, res.Entries, 4)
			require.Len(t, res.Crashed, 1)
			assert.Equal(t, instances[1], res.Crashed[0].Instance)
			assert.Equal(t, solverfmt.Savings, res.Crashed[0].Algorithm)

			loaded, err := store.Load(set)
			require.NoError(t, err)
			savings, genetic, err := Split(loaded)
			require.NoError(t, err)
			require.Len(t, savings, 2)
			require.Len(t, genetic, 2)
			assert.Equal(t, savingsRecord(120), savings[1])
			assert.Equal(t, 1600.0, must(t, genetic[1], solverfmt.ElapsedTime))

			rep, err := vrpstat.Compare(savings, genetic, vrpstat.MinSize(100))
			require.NoError(t, err)
			dist := rep.Ratio(solverfmt.TotalDistance)
			assert.Equal(t, 1, dist.Used())
			assert.InDelta(t, 1.205, dist.Mean, 1e-12)
			unused := rep.Ratio(solverfmt.UnusedCapacity)
			assert.Equal(t, 1, unused.Skipped)
			assert.Equal(t, 2.0, rep.Count(solverfmt.SingleCustomerRoutes).A)
		})
	}
}

func must(t *testing.T, r solverfmt.Record, f solverfmt.Field) float64 {
	t.Helper()
	v, err := r.MustGet(f)
	require.NoError(t, err)
	return v
}

func TestSplit(t *testing.T) {
	s := resultstore.Entry{Key: solverfmt.RunKey{Algorithm: solverfmt.Savings}, Record: savingsRecord(10)}
	g := resultstore.Entry{Key: solverfmt.RunKey{Algorithm: solverfmt.Genetic}}

	a, b, err := Split([]resultstore.Entry{s, g, s, g})
	require.NoError(t, err)
	assert.Len(t, a, 2)
	assert.Len(t, b, 2)

	_, _, err = Split([]resultstore.Entry{s, g, s})
	assert.ErrorIs(t, err, vrpstat.ErrMisalignedInputs)
	_, _, err = Split([]resultstore.Entry{g, s})
	assert.ErrorIs(t, err, ErrUnpaired)
}

func TestInstanceSize(t *testing.T) {
	for path, want := range map[string]int{
		"data/A-n32-k5.xml":        32,
		"/tmp/run5/X-n101-k25.xml": 101,
		"E-n13-k4.xml":             13,
	} {
		n, ok := InstanceSize(path)
		assert.True(t, ok, path)
		assert.Equal(t, want, n, path)
	}
	_, ok := InstanceSize("/data/n12/instance.xml")
	assert.False(t, ok)
}

func TestListInstancesFile(t *testing.T) {
	got, err := ListInstances("testdata/missing.xml")
	assert.Error(t, err)
	assert.Nil(t, got)

	path := filepath.Join(t.TempDir(), "P-n16-k8.xml")
	require.NoError(t, os.WriteFile(path, nil, 0666))
	got, err = ListInstances(path)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, got)
}
