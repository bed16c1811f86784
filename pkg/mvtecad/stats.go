// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package mvtecad

import (
	"github.com/go-gota/gota/dataframe"
)

// LabelCount is the number of samples of a label.
type LabelCount struct {
	Label string
	Index int
	Count int
}

// Counts returns the number of samples per label, in label index order.
// Labels without samples are included with a count of 0.
func (idx *CategoryIndex) Counts() []LabelCount {
	counts := make([]LabelCount, len(idx.labels))
	for ii, label := range idx.labels {
		counts[ii] = LabelCount{Label: label, Index: ii}
	}
	for _, sample := range idx.samples {
		counts[idx.labelToIndex[sample.Label]].Count++
	}
	return counts
}

// sampleRow is one row of the DataFrame: the field names are the column names.
type sampleRow struct {
	Category   string `dataframe:"category"`
	Split      string `dataframe:"split"`
	Label      string `dataframe:"label"`
	LabelIndex int    `dataframe:"label_index"`
	ImagePath  string `dataframe:"image_path"`
	MaskPath   string `dataframe:"mask_path"`
}

// DataFrame returns one row per sample, in sample order, with the columns category, split, label, label_index,
// image_path and mask_path.
//
// If there are no samples, the returned DataFrame has its Err field set (gota doesn't create empty frames).
func (idx *CategoryIndex) DataFrame() dataframe.DataFrame {
	rows := make([]sampleRow, len(idx.samples))
	for ii, sample := range idx.samples {
		rows[ii] = sampleRow{
			Category:   idx.category,
			Split:      idx.split.String(),
			Label:      sample.Label,
			LabelIndex: idx.labelToIndex[sample.Label],
			ImagePath:  sample.ImagePath,
			MaskPath:   sample.MaskPath,
		}
	}
	return dataframe.LoadStructs(rows)
}
