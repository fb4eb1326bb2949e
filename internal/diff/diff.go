// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff describes differences between expected and actual test
// output.
package diff

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Diff returns a human-readable description of the differences between
// want and got, or "" if they are equal. It uses the system diff command
// when available and a line-by-line listing otherwise.
func Diff(want, got string) string {
	if want == got {
		return ""
	}
	cmd := "diff"
	if runtime.GOOS == "plan9" {
		cmd = "/bin/ape/diff"
	}
	if _, err := exec.LookPath(cmd); err != nil {
		return lines(want, got)
	}

	dir, err := os.MkdirTemp("", "vrpbench-diff")
	if err != nil {
		return err.Error()
	}
	defer os.RemoveAll(dir)
	for name, s := range map[string]string{"want": want, "got": got} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(s), 0666); err != nil {
			return err.Error()
		}
	}

	c := exec.Command(cmd, "-u", "want", "got")
	c.Dir = dir
	data, err := c.CombinedOutput()
	// diff exits non-zero when the files differ. That's only a
	// failure if it printed nothing.
	if len(data) == 0 && err != nil {
		return fmt.Sprintf("%s: %v", cmd, err)
	}
	return string(data)
}

// lines lists the lines that differ at each position.
func lines(want, got string) string {
	w := strings.Split(want, "\n")
	g := strings.Split(got, "\n")
	var b strings.Builder
	for i := 0; i < len(w) || i < len(g); i++ {
		var wl, gl string
		if i < len(w) {
			wl = w[i]
		}
		if i < len(g) {
			gl = g[i]
		}
		if wl == gl {
			continue
		}
		fmt.Fprintf(&b, "line %d:\n-%s\n+%s\n", i+1, wl, gl)
	}
	return b.String()
}
