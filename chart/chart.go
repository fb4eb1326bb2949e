// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart renders complexity curves and solver routes as images.
// The output format is chosen from the file extension of the path
// (png, svg, pdf...).
package chart

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/vrpbench/vrpbench/curve"
	"github.com/vrpbench/vrpbench/instance"
	"github.com/vrpbench/vrpbench/solverfmt"
)

// Width and Height are the dimensions of saved charts.
var (
	Width  = 8 * vg.Inch
	Height = 5 * vg.Inch
)

// ErrEmpty is returned when there is nothing to draw.
var ErrEmpty = errors.New("nothing to plot")

// Complexity saves a scatter plot of s to path.
func Complexity(s curve.Series, title, xLabel, yLabel, path string) error {
	if s.Len() == 0 {
		return fmt.Errorf("%s: %w", title, ErrEmpty)
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	sc, err := plotter.NewScatter(s)
	if err != nil {
		return err
	}
	sc.GlyphStyle.Color = plotutil.Color(0)
	sc.GlyphStyle.Radius = vg.Points(2.5)
	p.Add(sc)
	return p.Save(Width, Height, path)
}

// Routes saves a plot of every route of a solution to path. Each route
// is drawn from the depot through its customers and back.
func Routes(inst *instance.Instance, routes solverfmt.Routes, title, path string) error {
	if len(routes) == 0 {
		return fmt.Errorf("%s: %w", title, ErrEmpty)
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	for i, route := range routes {
		xs, ys, err := inst.Positions(route)
		if err != nil {
			return fmt.Errorf("route #%d: %w", i+1, err)
		}
		pts := make(plotter.XYs, len(xs))
		for j := range xs {
			pts[j].X, pts[j].Y = xs[j], ys[j]
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(0)
		p.Add(line, points)
		p.Legend.Add(fmt.Sprintf("#%d", i+1), line, points)
	}

	depot, err := plotter.NewScatter(plotter.XYs{{X: inst.Depot.X, Y: inst.Depot.Y}})
	if err != nil {
		return err
	}
	depot.Shape = plotutil.Shape(1)
	depot.Radius = vg.Points(5)
	p.Add(depot)
	p.Legend.Add(inst.Depot.Kind.String(), depot)
	p.Legend.Top = true
	return p.Save(Width, Height, path)
}
