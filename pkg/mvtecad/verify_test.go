// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package mvtecad

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	for _, parallelism := range []int{0, 1, 4, -1} {
		t.Run(fmt.Sprintf("parallelism=%d", parallelism), func(t *testing.T) {
			fs := newFixture(t)
			bottle := filepath.Join(fixtureRoot, "bottle")
			// Mask with the wrong size.
			writePNG(t, fs, filepath.Join(bottle, GroundTruthDir, "contamination", "000_mask.png"), testMask(3, 3))
			// Defect without mask.
			writePNG(t, fs, filepath.Join(bottle, "test", "contamination", "001.png"), testImage(fixtureWidth, fixtureHeight))
			// Not an image.
			require.NoError(t, afero.WriteFile(fs, filepath.Join(bottle, "test", "good", "009.png"), []byte("garbage"), 0644))

			idx, err := Build(fixtureRoot, "bottle").WithSplit(Test).WithFS(fs).Done()
			require.NoError(t, err)
			require.Equal(t, 6, idx.Len())

			var count atomic.Int32
			problems, err := idx.Verify(context.Background(), parallelism, func() { count.Add(1) })
			require.NoError(t, err)
			assert.Equal(t, int32(idx.Len()), count.Load())
			require.Len(t, problems, 3)
			for ii := 1; ii < len(problems); ii++ {
				assert.Less(t, problems[ii-1].Index, problems[ii].Index)
			}

			byPath := make(map[string]Problem)
			for _, p := range problems {
				byPath[p.Sample.ImagePath] = p
				assert.Contains(t, p.String(), p.Sample.ImagePath)
			}
			splitDir := idx.SplitDir()
			assert.ErrorIs(t, byPath[filepath.Join(splitDir, "contamination", "000.png")].Err, ErrIntegrity)
			assert.ErrorIs(t, byPath[filepath.Join(splitDir, "contamination", "001.png")].Err, ErrIntegrity)
			assert.ErrorIs(t, byPath[filepath.Join(splitDir, "good", "009.png")].Err, ErrDecode)
		})
	}
}

func TestVerifyClean(t *testing.T) {
	fs := newFixture(t)
	idx, err := Build(fixtureRoot, "bottle").WithSplit(Test).WithFS(fs).Done()
	require.NoError(t, err)
	problems, err := idx.Verify(context.Background(), 2, nil)
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestVerifyCancelled(t *testing.T) {
	fs := newFixture(t)
	idx, err := Build(fixtureRoot, "bottle").WithSplit(Test).WithFS(fs).Done()
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	problems, err := idx.Verify(ctx, 2, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, problems)
}
