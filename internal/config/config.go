// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the vrpbench configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file read when none is named.
const DefaultFile = "vrpbench.yaml"

// Config is the full vrpbench.yaml structure. Unknown keys are errors.
type Config struct {
	// Executable is the solver binary.
	Executable string `yaml:"executable"`
	// Profiler is the memory profiler wrapping the solver.
	Profiler string `yaml:"profiler"`
	// Timeout bounds a single solver run. Profiled runs get
	// Timeout * ProfileFactor.
	Timeout       time.Duration `yaml:"timeout"`
	ProfileFactor int           `yaml:"profile_factor"`
	// MinSize is the smallest instance size included in averaged
	// ratios.
	MinSize int `yaml:"min_size"`
	// CurveCutoff is the largest instance size drawn on complexity
	// charts.
	CurveCutoff int `yaml:"curve_cutoff"`
	// Store selects the result store backend, see resultstore.Open.
	Store string `yaml:"store"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Executable:    "./gal",
		Profiler:      "valgrind",
		Timeout:       120 * time.Second,
		ProfileFactor: 5,
		MinSize:       100,
		CurveCutoff:   100,
	}
}

// Load reads the configuration at path on top of Default. A missing
// file is not an error if path is DefaultFile.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && path == DefaultFile {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a configuration from r on top of Default.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting of c.
func (c *Config) Validate() error {
	switch {
	case c.Executable == "":
		return errors.New("executable must be set")
	case c.Timeout <= 0:
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	case c.ProfileFactor <= 1:
		return fmt.Errorf("profile_factor must be greater than 1, got %d", c.ProfileFactor)
	case c.MinSize < 0:
		return fmt.Errorf("min_size must not be negative, got %d", c.MinSize)
	}
	return nil
}
