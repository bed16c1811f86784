// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"

	"github.com/gomlx/mvtecad/pkg/mvtecad"
	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"
)

// Verify reads all samples of all indices, displaying a progress bar, and prints the problems found.
// It returns the total number of problems.
func Verify(ctx context.Context, indices []*mvtecad.CategoryIndex, parallelism int) (int, error) {
	var numSamples int
	for _, idx := range indices {
		numSamples += idx.Len()
	}
	bar := progressbar.NewOptions(numSamples,
		progressbar.OptionSetDescription("Verifying"),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("samples"),
		progressbar.OptionSetTheme(progressbar.ThemeUnicode),
	)
	progress := func() { _ = bar.Add(1) }

	numProblems := 0
	problemsPerCategory := make(map[string][]mvtecad.Problem)
	for _, idx := range indices {
		problems, err := idx.Verify(ctx, parallelism, progress)
		if err != nil {
			_ = bar.Exit()
			return numProblems, err
		}
		for _, p := range problems {
			klog.V(1).Infof("%s: %s", idx.Name(), p)
		}
		numProblems += len(problems)
		problemsPerCategory[idx.Category()] = problems
	}
	_ = bar.Close()
	fmt.Println()

	for _, idx := range indices {
		if problems := problemsPerCategory[idx.Category()]; len(problems) > 0 {
			problemsTable(idx.Category(), problems)
		}
	}
	return numProblems, nil
}
