// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vrpbench/vrpbench/internal/config"
	"github.com/vrpbench/vrpbench/pipeline"
	"github.com/vrpbench/vrpbench/resultstore"
	"github.com/vrpbench/vrpbench/runner"
)

// cli holds the state shared by all subcommands.
type cli struct {
	stdout io.Writer

	configPath string
	logLevel   string
	store      string

	cfg *config.Config
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdout: stdout}
	root := &cobra.Command{
		Use:           "vrpbench",
		Short:         "Run and compare VRP solver experiments",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logrus.SetOutput(stderr)
			level, err := logrus.ParseLevel(c.logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q", c.logLevel)
			}
			logrus.SetLevel(level)

			c.cfg, err = config.Load(c.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("store") {
				c.cfg.Store = c.store
			}
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "configuration `file` (default "+config.DefaultFile+")")
	pf.StringVar(&c.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	pf.StringVar(&c.store, "store", "", "result store: file, sqlite3:DSN or mysql:DSN")

	root.AddCommand(
		c.gatherCmd(),
		c.compareCmd(),
		c.statCmd(),
		c.curvesCmd(),
		c.routesCmd(),
	)
	return root
}

func (c *cli) runner() *runner.Runner {
	return &runner.Runner{
		Executable:    c.cfg.Executable,
		Profiler:      c.cfg.Profiler,
		Timeout:       c.cfg.Timeout,
		ProfileFactor: c.cfg.ProfileFactor,
	}
}

// openStore opens the configured store. The returned function releases
// it.
func (c *cli) openStore(tagged bool) (resultstore.Store, func(), error) {
	s, err := resultstore.Open(c.cfg.Store, tagged)
	if err != nil {
		return nil, nil, err
	}
	release := func() {}
	if cl, ok := s.(io.Closer); ok {
		release = func() {
			if err := cl.Close(); err != nil {
				logrus.Warnf("closing store: %v", err)
			}
		}
	}
	return s, release, nil
}

func (c *cli) pipeline(store resultstore.Store) *pipeline.Pipeline {
	hi := pipeline.CollectHostInfo()
	hi.Solver = c.cfg.Executable
	hi.Profiler = c.cfg.Profiler
	hi.Timeout = c.cfg.Timeout
	return &pipeline.Pipeline{
		Exec:     c.runner(),
		Store:    store,
		Progress: c.stdout,
		HostInfo: hi,
	}
}

func (c *cli) summarize(res *pipeline.Result, set string) {
	if res.Cached {
		fmt.Fprintf(c.stdout, "Loaded %d results from %s.\n", len(res.Entries), set)
	} else {
		fmt.Fprintf(c.stdout, "Saved %d results to %s.\n", len(res.Entries), set)
	}
	if len(res.Crashed) == 0 {
		return
	}
	fmt.Fprintf(c.stdout, "Crashed instances:\n")
	for _, cr := range res.Crashed {
		fmt.Fprintf(c.stdout, "\t%s\n", cr)
	}
}
