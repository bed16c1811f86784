// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package mvtecad indexes and loads samples of datasets laid out like the MVTec AD anomaly detection
// dataset (https://www.mvtec.com/company/research/datasets/mvtec-ad):
//
//	<root>/
//	  <category>/
//	    train/<label>/<file><ext>
//	    test/<label>/<file><ext>
//	    ground_truth/<label>/<file>_mask<ext>
//
// Each label (defect class) is a subdirectory of the split. The label "good" marks samples without
// anomalies, which have no ground-truth mask: a blank (all zeros) mask of the same size as the image
// is generated for them.
//
// Usage example:
//
//	idx, err := mvtecad.New("~/tmp/mvtec_anomaly_detection", "bottle", mvtecad.Test)
//	if err != nil { ... }
//	for ii := range idx.Len() {
//		img, mask, label, err := idx.Get(ii)
//		...
//	}
//
// The dataset itself is not downloaded by this package: the root directory must already exist.
package mvtecad

import (
	"strings"

	"github.com/gomlx/mvtecad/pkg/support/fsutil"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const (
	// GoodLabel is the label of samples without anomalies. It always has label index 0.
	GoodLabel = "good"

	// GroundTruthDir is the subdirectory of a category holding the masks, one subdirectory per label.
	GroundTruthDir = "ground_truth"

	// MaskSuffix is appended to the image file name (before the extension) to form the mask file name.
	MaskSuffix = "_mask"

	// DefaultImageExtension of the image and mask files.
	DefaultImageExtension = ".png"
)

// KnownCategories of the public MVTec AD release.
var KnownCategories = []string{
	"bottle",
	"cable",
	"capsule",
	"carpet",
	"grid",
	"hazelnut",
	"leather",
	"metal_nut",
	"pill",
	"screw",
	"tile",
	"toothbrush",
	"transistor",
	"wood",
	"zipper",
}

// Split selects the train or test partition of a category.
type Split int

const (
	Train Split = iota
	Test
)

// String returns the name of the split subdirectory.
func (s Split) String() string {
	switch s {
	case Train:
		return "train"
	case Test:
		return "test"
	}
	return "Unknown"
}

// ParseSplit converts "train" or "test" (case-insensitive) to a Split.
func ParseSplit(name string) (Split, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "train":
		return Train, nil
	case "test":
		return Test, nil
	}
	return Train, errors.Errorf("invalid split %q, valid values are \"train\" or \"test\"", name)
}

// ListCategories returns the categories found under root: its (non-hidden) subdirectories, sorted by name.
// Plain files under root (e.g. the license or readme of the dataset) are ignored.
//
// If fs is nil, the OS filesystem is used.
func ListCategories(fs afero.Fs, root string) ([]string, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	categories, err := fsutil.Subdirs(fs, root)
	if err != nil {
		return nil, notFoundIfMissing(err, "dataset root %q", root)
	}
	return categories, nil
}
