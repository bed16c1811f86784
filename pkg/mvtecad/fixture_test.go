// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package mvtecad

import (
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const (
	fixtureRoot   = "/mvtec"
	fixtureWidth  = 8
	fixtureHeight = 6
)

// writePNG encodes img as a PNG file in path, creating the parent directories.
func writePNG(t *testing.T, fs afero.Fs, path string, img image.Image) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	f, err := fs.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func testImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			img.Set(x, y, color.RGBA{R: uint8(10 * x), G: uint8(10 * y), B: 128, A: 255})
		}
	}
	return img
}

// testMask has the top-left pixel set as defective.
func testMask(width, height int) image.Image {
	mask := image.NewGray(image.Rect(0, 0, width, height))
	mask.SetGray(0, 0, color.Gray{Y: 255})
	return mask
}

// buildFixture creates under root:
//
//	license.txt
//	bottle/test/{broken_large/000,001, contamination/000, good/000}.png (+ good/notes.txt)
//	bottle/ground_truth/{broken_large/000_mask,001_mask, contamination/000_mask}.png
//	bottle/train/good/{000,001,002}.png
//	cable/train/bent_wire/000.png: no "good" label.
//	cable/ground_truth/bent_wire/000_mask.png
func buildFixture(t *testing.T, fs afero.Fs, root string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(root, 0755))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(root, "license.txt"), []byte("CC BY-NC-SA 4.0"), 0644))
	bottle := filepath.Join(root, "bottle")
	for _, p := range []string{"test/broken_large/000.png", "test/broken_large/001.png",
		"test/contamination/000.png", "test/good/000.png",
		"train/good/000.png", "train/good/001.png", "train/good/002.png"} {
		writePNG(t, fs, filepath.Join(bottle, p), testImage(fixtureWidth, fixtureHeight))
	}
	for _, p := range []string{"broken_large/000_mask.png", "broken_large/001_mask.png", "contamination/000_mask.png"} {
		writePNG(t, fs, filepath.Join(bottle, GroundTruthDir, p), testMask(fixtureWidth, fixtureHeight))
	}
	require.NoError(t, afero.WriteFile(fs, filepath.Join(bottle, "test/good/notes.txt"), []byte("not an image"), 0644))

	cable := filepath.Join(root, "cable")
	writePNG(t, fs, filepath.Join(cable, "train/bent_wire/000.png"), testImage(fixtureWidth, fixtureHeight))
	writePNG(t, fs, filepath.Join(cable, GroundTruthDir, "bent_wire/000_mask.png"), testMask(fixtureWidth, fixtureHeight))
}

// newFixture returns an in-memory filesystem with the fixture under fixtureRoot.
func newFixture(t *testing.T) afero.Fs {
	fs := afero.NewMemMapFs()
	buildFixture(t, fs, fixtureRoot)
	return fs
}

// sampleByPath returns the position of the sample with the given image path relative to the split directory.
func sampleByPath(t *testing.T, idx *CategoryIndex, relPath string) int {
	t.Helper()
	want := filepath.Join(idx.SplitDir(), relPath)
	for ii, sample := range idx.Samples() {
		if sample.ImagePath == want {
			return ii
		}
	}
	require.Failf(t, "sample not found", "no sample with image path %q", want)
	return -1
}
