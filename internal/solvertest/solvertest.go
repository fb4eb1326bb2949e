// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solvertest provides a fake solver and memory profiler for
// tests that start real child processes.
package solvertest

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
)

// The fake solver prints a fixed set of routes and metrics. Instances
// whose file name contains "slow" sleep for a minute, and those
// containing "crash" exit with status 3. Every invocation appends one
// line to the calls file so tests can count executions.
const solverScript = `#!/bin/sh
echo "$@" >> {{CALLS}}
case "$3" in
*slow*) exec sleep 60 ;;
*crash*) echo "segmentation fault" >&2; exit 3 ;;
esac
if [ "$2" = "savings" ]; then
	echo "#1 2 3"
	echo "#2 4"
	echo "Overall distances 120.5"
	echo "Vehicles 2"
	echo "Average number of customers 1.5"
	echo "Number of routes linking only one customer 1"
	echo "Number of routes linking only two customers 1"
	echo "Unused capacity 10"
	echo "Time of the algorithm 400 microseconds"
else
	echo "98.25"
	echo "#1 4 3 2"
	echo "Overall distances 100"
	echo "Vehicles 1"
	echo "Average number of customers 3"
	echo "Number of routes linking only one customer 0"
	echo "Number of routes linking only two customers 0"
	echo "Unused capacity 0"
	echo "Time of the algorithm 1600 microseconds"
fi
`

// The fake profiler runs its arguments, discarding their output, and
// then reports a heap summary on stderr.
const profilerScript = `#!/bin/sh
"$@" > /dev/null 2>&1 || exit $?
echo "==1== HEAP SUMMARY:" >&2
echo "==1==   total heap usage: 10 allocs, 10 frees, 73,728 bytes allocated" >&2
`

// Solver is a fake solver installed in a temporary directory.
type Solver struct {
	Executable string
	Profiler   string
	calls      string
}

// New installs a fake solver and profiler. It skips the test on
// systems without a POSIX shell.
func New(t testing.TB) *Solver {
	t.Helper()
	if runtime.GOOS == "windows" || runtime.GOOS == "plan9" {
		t.Skipf("no /bin/sh on %s", runtime.GOOS)
	}
	dir := t.TempDir()
	s := &Solver{
		Executable: filepath.Join(dir, "gal"),
		Profiler:   filepath.Join(dir, "valgrind"),
		calls:      filepath.Join(dir, "calls"),
	}
	script := strings.ReplaceAll(solverScript, "{{CALLS}}", strconv.Quote(s.calls))
	if err := os.WriteFile(s.Executable, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.Profiler, []byte(profilerScript), 0755); err != nil {
		t.Fatal(err)
	}
	return s
}

// Calls returns the argument lists the solver has been invoked with,
// including invocations through the profiler.
func (s *Solver) Calls(t testing.TB) []string {
	t.Helper()
	data, err := os.ReadFile(s.calls)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

// Instances creates empty instance files with the given names in a
// new directory and returns the directory.
func Instances(t testing.TB, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("<instance/>\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}
