// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package mvtecad

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/gomlx/mvtecad/internal/workerspool"
	"github.com/pkg/errors"
)

// Problem found by Verify with one sample.
type Problem struct {
	Index  int
	Sample Sample
	Err    error
}

// String implements fmt.Stringer.
func (p Problem) String() string {
	return fmt.Sprintf("#%d %s: %v", p.Index, p.Sample.ImagePath, p.Err)
}

// Verify reads every sample (image and mask) and returns the problems found, sorted by sample index:
// images or masks that can't be read or decoded, defect samples without mask (ErrIntegrity), and masks
// whose size differs from the size of their image (also ErrIntegrity).
//
// Samples are read by up to parallelism goroutines: if parallelism is 0 it reads them sequentially,
// and if negative parallelism is unlimited.
// If progress is not nil, it is called (possibly concurrently) after each sample is checked.
//
// If ctx is cancelled, it stops reading new samples and returns ctx.Err().
func (idx *CategoryIndex) Verify(ctx context.Context, parallelism int, progress func()) ([]Problem, error) {
	pool := workerspool.New().SetMaxParallelism(parallelism)
	var mu sync.Mutex
	var problems []Problem
	for ii := range idx.samples {
		if ctx.Err() != nil {
			break
		}
		pool.WaitToStart(func() {
			err := idx.verifySample(ii)
			if progress != nil {
				progress()
			}
			if err == nil {
				return
			}
			mu.Lock()
			problems = append(problems, Problem{Index: ii, Sample: idx.samples[ii], Err: err})
			mu.Unlock()
		})
	}
	pool.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	slices.SortFunc(problems, func(a, b Problem) int { return a.Index - b.Index })
	return problems, nil
}

func (idx *CategoryIndex) verifySample(i int) error {
	img, mask, _, maskFromFile, err := idx.load(i)
	if err != nil {
		return err
	}
	if !maskFromFile {
		return nil
	}
	imgSize, maskSize := img.Bounds().Size(), mask.Bounds().Size()
	if imgSize != maskSize {
		return errors.Wrapf(ErrIntegrity, "mask %q has size %v, but image has size %v",
			idx.samples[i].MaskPath, maskSize, imgSize)
	}
	return nil
}
