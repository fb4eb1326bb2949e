// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vrpbench/vrpbench/chart"
	"github.com/vrpbench/vrpbench/curve"
	"github.com/vrpbench/vrpbench/instance"
	"github.com/vrpbench/vrpbench/pipeline"
	"github.com/vrpbench/vrpbench/resultstore"
	"github.com/vrpbench/vrpbench/solverfmt"
	"github.com/vrpbench/vrpbench/vrpstat"
)

func (c *cli) gatherCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gather <algorithm> <instance-dir|file> <output>",
		Short: "Measure one algorithm on a set of instances",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			alg, err := solverfmt.ParseAlgorithm(args[0])
			if err != nil {
				return err
			}
			instances, err := pipeline.ListInstances(args[1])
			if err != nil {
				return err
			}
			store, release, err := c.openStore(false)
			if err != nil {
				return err
			}
			defer release()

			res, err := c.pipeline(store).Gather(cmd.Context(), alg, instances, args[2])
			if res != nil {
				c.summarize(res, args[2])
			}
			return err
		},
	}
}

func (c *cli) compareCmd() *cobra.Command {
	var minSize int
	cmd := &cobra.Command{
		Use:   "compare <instance-dir|file> <output>",
		Short: "Measure both algorithms on a set of instances and compare them",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			instances, err := pipeline.ListInstances(args[0])
			if err != nil {
				return err
			}
			store, release, err := c.openStore(true)
			if err != nil {
				return err
			}
			defer release()

			res, err := c.pipeline(store).Compare(cmd.Context(), instances, args[1])
			if res != nil {
				c.summarize(res, args[1])
			}
			if err != nil {
				return err
			}
			savings, genetic, err := pipeline.Split(res.Entries)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("min-size") {
				minSize = c.cfg.MinSize
			}
			rep, err := vrpstat.Compare(savings, genetic, vrpstat.MinSize(minSize))
			if err != nil {
				return err
			}
			rep.Names = [2]string{solverfmt.Savings.String(), solverfmt.Genetic.String()}
			return vrpstat.FormatText(c.stdout, rep)
		},
	}
	cmd.Flags().IntVar(&minSize, "min-size", 0, "average ratios over instances with at least `n` customers (default from config)")
	return cmd
}

func (c *cli) statCmd() *cobra.Command {
	var (
		minSize   int
		html      bool
		instances bool
	)
	cmd := &cobra.Command{
		Use:   "stat <savings-results> <genetic-results>",
		Short: "Compare stored savings and genetic results",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := c.openStore(false)
			if err != nil {
				return err
			}
			defer release()

			var recs [2][]solverfmt.Record
			for i, set := range args {
				entries, err := store.Load(set)
				if err != nil {
					return err
				}
				recs[i] = resultstore.Records(entries)
			}
			if !cmd.Flags().Changed("min-size") {
				minSize = c.cfg.MinSize
			}
			rep, err := vrpstat.Compare(recs[0], recs[1], vrpstat.MinSize(minSize))
			if err != nil {
				return err
			}
			rep.Names = [2]string{solverfmt.Savings.String(), solverfmt.Genetic.String()}

			if html {
				return vrpstat.FormatHTML(c.stdout, rep)
			}
			if err := vrpstat.FormatText(c.stdout, rep); err != nil {
				return err
			}
			if instances {
				fmt.Fprintln(c.stdout)
				return vrpstat.FormatInstances(c.stdout, rep)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&minSize, "min-size", 0, "average ratios over instances with at least `n` customers (default from config)")
	f.BoolVar(&html, "html", false, "print the report as HTML")
	f.BoolVar(&instances, "instances", false, "also print the ratios of every instance")
	return cmd
}

func (c *cli) curvesCmd() *cobra.Command {
	var cutoff int
	cmd := &cobra.Command{
		Use:   "curves <results> <out-dir>",
		Short: "Chart time and memory against instance size",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("cutoff") {
				cutoff = c.cfg.CurveCutoff
			}
			store, release, err := c.openStore(false)
			if err != nil {
				return err
			}
			defer release()
			entries, err := store.Load(args[0])
			if err != nil {
				return err
			}
			recs := resultstore.Records(entries)
			if err := os.MkdirAll(args[1], 0777); err != nil {
				return err
			}

			name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			exclude := curve.Above(float64(cutoff))
			for _, m := range []struct {
				suffix, label string
				metric        curve.Accessor
			}{
				{"time", "Time in microseconds", curve.Time},
				{"memory", "Space in bytes", curve.Memory},
			} {
				s := curve.Extract(recs, curve.Size, m.metric, exclude)
				path := filepath.Join(args[1], name+"-"+m.suffix+".png")
				err := chart.Complexity(s, name+" "+m.suffix, "Nodes in graph", m.label, path)
				if errors.Is(err, chart.ErrEmpty) {
					logrus.Warnf("%s: no %s measurements up to %d customers", args[0], m.suffix, cutoff)
					continue
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(c.stdout, "Wrote %s (%d points).\n", path, s.Len())
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&cutoff, "cutoff", 0, "leave out instances with more than `n` customers (default from config)")
	return cmd
}

func (c *cli) routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes <algorithm> <instance.xml> <out.png>",
		Short: "Run the solver once and chart the routes it finds",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			alg, err := solverfmt.ParseAlgorithm(args[0])
			if err != nil {
				return err
			}
			inst, err := instance.Load(args[1])
			if err != nil {
				return err
			}
			out, err := c.runner().Run(cmd.Context(), alg, args[1])
			if err != nil {
				return err
			}
			routes := solverfmt.ParseRoutes(out.Stdout)
			title := fmt.Sprintf("%s on %s", alg, filepath.Base(args[1]))
			if err := chart.Routes(inst, routes, title, args[2]); err != nil {
				return err
			}
			fmt.Fprintf(c.stdout, "Wrote %s (%d routes).\n", args[2], len(routes))
			return nil
		},
	}
}
