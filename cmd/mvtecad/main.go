// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// mvtecad inspects a local copy of the MVTec AD dataset (or any dataset with the same layout).
//
//  1. With `mvtecad -data=<dir>`: prints the number of samples per category and label.
//  2. With `-verify`: reads every image and mask, and reports missing or broken files.
//  3. With `-csv=<file>`: writes one row per sample (paths, label and label index).
//  4. With `-plot=<file>`: saves a bar chart with the number of samples per label.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/mvtecad/pkg/mvtecad"
	"github.com/gomlx/mvtecad/pkg/support/fsutil"
	"github.com/gomlx/mvtecad/pkg/support/sets"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"k8s.io/klog/v2"
)

var (
	flagDataDir = flag.String("data", "~/tmp/mvtec_anomaly_detection",
		"Directory with the MVTec AD dataset, already downloaded and extracted.")
	flagCategories = flag.String("categories", "",
		"Comma-separated list of categories to inspect. If empty, all categories found under --data are used.")
	flagSplit       = flag.String("split", "test", "Split to index: \"train\" or \"test\".")
	flagExt         = flag.String("ext", mvtecad.DefaultImageExtension, "Extension of the image and mask files.")
	flagSummary     = flag.Bool("summary", true, "Display the number of samples per category and label.")
	flagVerify      = flag.Bool("verify", false, "Read every image and mask, and report the problems found.")
	flagParallelism = flag.Int("parallelism", runtime.NumCPU(), "Number of images read in parallel by --verify.")
	flagCSV         = flag.String("csv", "", "If set, write one row per sample to this CSV file.")
	flagPlot        = flag.String("plot", "",
		"If set, save a bar chart of the number of samples per label to this file. "+
			"The format is given by the extension: .png, .svg, .pdf, ...")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err := exceptions.TryCatch[error](func() { run(ctx) })
	cancel()
	if err != nil {
		klog.Errorf("Error:\n%+v", err)
		klog.Flush()
		os.Exit(1)
	}
	klog.Flush()
}

func run(ctx context.Context) {
	root := fsutil.MustReplaceTildeInDir(*flagDataDir)
	split := must.M1(mvtecad.ParseSplit(*flagSplit))
	categories := must.M1(selectCategories(afero.NewOsFs(), root, *flagCategories))

	indices := make([]*mvtecad.CategoryIndex, 0, len(categories))
	for _, category := range categories {
		idx := must.M1(mvtecad.Build(root, category).
			WithSplit(split).
			WithImageExtension(*flagExt).
			Done())
		klog.V(1).Infof("%s: %d samples, labels %v", idx.Name(), idx.Len(), idx.Labels())
		indices = append(indices, idx)
	}

	if *flagSummary {
		Summary(indices)
	}
	if *flagVerify {
		numProblems := must.M1(Verify(ctx, indices, *flagParallelism))
		if numProblems > 0 {
			panic(errors.Wrapf(mvtecad.ErrIntegrity, "%d problems found in %q", numProblems, root))
		}
		klog.Infof("No problems found in %d categories", len(indices))
	}
	if *flagCSV != "" {
		must.M(ExportCSV(indices, *flagCSV))
		klog.Infof("Samples written to %s", *flagCSV)
	}
	if *flagPlot != "" {
		must.M(PlotCounts(indices, *flagPlot))
		klog.Infof("Plot saved to %s", *flagPlot)
	}
}

// selectCategories returns the comma-separated categories in list, or all categories under root if list is empty.
// It fails if a category in list is not found under root.
func selectCategories(fs afero.Fs, root, list string) ([]string, error) {
	found, err := mvtecad.ListCategories(fs, root)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(list) == "" {
		return found, nil
	}
	wanted := sets.Make[string]()
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			wanted.Insert(name)
		}
	}
	missing := wanted.Sub(sets.MakeWith(found...))
	if len(missing) > 0 {
		return nil, errors.Wrapf(mvtecad.ErrNotFound, "categories %v not found in %q", sets.Sorted(missing), root)
	}
	return sets.Sorted(wanted), nil
}
