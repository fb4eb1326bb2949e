// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runner invokes the routing solver, directly or under a
// memory profiler, as a child process with a bounded run time.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vrpbench/vrpbench/solverfmt"
)

// DefaultTimeout bounds a direct solver run.
const DefaultTimeout = 120 * time.Second

// DefaultProfileFactor is how much longer a profiled run may take
// than a direct one.
const DefaultProfileFactor = 5

// A Runner runs the solver on instance files.
type Runner struct {
	// Executable is the solver binary.
	Executable string

	// Profiler is the memory profiler that wraps the solver in
	// RunProfiled, typically "valgrind".
	Profiler string

	// Timeout bounds Run. Zero means DefaultTimeout.
	Timeout time.Duration

	// ProfileFactor multiplies Timeout for RunProfiled. It must be
	// greater than 1; smaller values mean DefaultProfileFactor.
	ProfileFactor int
}

// Output is the captured output of one solver run.
type Output struct {
	Stdout []byte
	Stderr []byte
	Dur    time.Duration
}

// A Reason classifies a failed run.
type Reason int

const (
	Crashed Reason = iota
	Timeout
)

func (r Reason) String() string {
	switch r {
	case Timeout:
		return "timeout"
	case Crashed:
		return "crashed"
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// A Failure reports a solver run that timed out or terminated
// abnormally. The instance should be excluded from aggregation; it is
// never retried.
//
// A process that could not be started, or a run interrupted by the
// caller's context, is not a Failure.
type Failure struct {
	Cmd    string
	Reason Reason
	Err    error

	// Stderr is whatever the process wrote before it failed.
	Stderr []byte
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("%s: %s", f.Cmd, f.Reason)
	}
	return fmt.Sprintf("%s: %s: %v", f.Cmd, f.Reason, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// IsFailure reports whether err is a per-instance *Failure.
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}

func (r *Runner) timeout() time.Duration {
	if r.Timeout <= 0 {
		return DefaultTimeout
	}
	return r.Timeout
}

// ProfileTimeout returns the time limit of RunProfiled.
func (r *Runner) ProfileTimeout() time.Duration {
	factor := r.ProfileFactor
	if factor <= 1 {
		factor = DefaultProfileFactor
	}
	return r.timeout() * time.Duration(factor)
}

func solverArgs(exe string, alg solverfmt.Algorithm, instance string) []string {
	return []string{exe, "--algorithm", alg.String(), instance}
}

// Run runs the solver with algorithm alg on instance. If alg is not a
// valid algorithm, Run fails with solverfmt.ErrInvalidAlgorithm without
// starting a process. If the run times out or exits abnormally, the
// error is a *Failure.
func (r *Runner) Run(ctx context.Context, alg solverfmt.Algorithm, instance string) (*Output, error) {
	if !alg.Valid() {
		return nil, fmt.Errorf("%w: %v", solverfmt.ErrInvalidAlgorithm, alg)
	}
	return r.exec(ctx, r.timeout(), solverArgs(r.Executable, alg, instance))
}

// RunProfiled runs the solver under the memory profiler and returns
// the profiler's standard error. The time limit is ProfileTimeout.
func (r *Runner) RunProfiled(ctx context.Context, alg solverfmt.Algorithm, instance string) ([]byte, error) {
	if !alg.Valid() {
		return nil, fmt.Errorf("%w: %v", solverfmt.ErrInvalidAlgorithm, alg)
	}
	args := append([]string{r.Profiler}, solverArgs(r.Executable, alg, instance)...)
	out, err := r.exec(ctx, r.ProfileTimeout(), args)
	if err != nil {
		return nil, err
	}
	return out.Stderr, nil
}

// Check reports whether the solver and the profiler can be found.
func (r *Runner) Check() error {
	for _, exe := range []string{r.Executable, r.Profiler} {
		if _, err := exec.LookPath(exe); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) exec(parent context.Context, limit time.Duration, args []string) (*Output, error) {
	if err := parent.Err(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(parent, limit)
	defer cancel()

	name := strings.Join(args, " ")
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Don't wait forever on pipes inherited by grandchildren.
	cmd.WaitDelay = time.Second

	logrus.Debugf("running %s (limit %v)", name, limit)
	start := time.Now()
	err := cmd.Run()
	dur := time.Since(start)
	if perr := parent.Err(); perr != nil {
		return nil, perr
	}
	if ctx.Err() == context.DeadlineExceeded {
		return nil, &Failure{Cmd: name, Reason: Timeout, Err: ctx.Err(), Stderr: stderr.Bytes()}
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) || errors.Is(err, exec.ErrWaitDelay) {
		return nil, &Failure{Cmd: name, Reason: Crashed, Err: err, Stderr: stderr.Bytes()}
	}
	if err != nil {
		return nil, fmt.Errorf("starting %s: %w", name, err)
	}
	return &Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes(), Dur: dur}, nil
}
