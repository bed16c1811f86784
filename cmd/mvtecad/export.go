// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"math"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/gomlx/mvtecad/pkg/mvtecad"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ExportCSV writes the samples of all indices to a CSV file, one row per sample.
// Categories without samples are skipped.
func ExportCSV(indices []*mvtecad.CategoryIndex, filePath string) error {
	var df dataframe.DataFrame
	haveRows := false
	for _, idx := range indices {
		if idx.Len() == 0 {
			continue
		}
		idxDF := idx.DataFrame()
		if idxDF.Err != nil {
			return errors.Wrapf(idxDF.Err, "failed to create data frame for %s", idx.Name())
		}
		if !haveRows {
			df = idxDF
			haveRows = true
			continue
		}
		df = df.RBind(idxDF)
		if df.Err != nil {
			return errors.Wrapf(df.Err, "failed to concatenate data frame for %s", idx.Name())
		}
	}
	if !haveRows {
		return errors.New("no samples to export")
	}

	f, err := os.Create(filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to create %q", filePath)
	}
	if err = df.WriteCSV(f); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "failed to write CSV to %q", filePath)
	}
	return errors.Wrapf(f.Close(), "failed to close %q", filePath)
}

// PlotCounts saves a bar chart with the number of samples per category and label to filePath.
// The format is given by the file extension.
func PlotCounts(indices []*mvtecad.CategoryIndex, filePath string) error {
	var values plotter.Values
	var names []string
	for _, idx := range indices {
		for _, count := range idx.Counts() {
			values = append(values, float64(count.Count))
			names = append(names, idx.Category()+"/"+count.Label)
		}
	}
	if len(values) == 0 {
		return errors.New("no labels to plot")
	}

	p := plot.New()
	p.Title.Text = "Samples per label"
	p.Y.Label.Text = "# samples"
	bars, err := plotter.NewBarChart(values, vg.Points(10))
	if err != nil {
		return errors.Wrap(err, "failed to create bar chart")
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 2

	width := vg.Points(14)*vg.Length(len(values)) + 2*vg.Inch
	return errors.Wrapf(p.Save(width, 5*vg.Inch, filePath), "failed to save plot to %q", filePath)
}
