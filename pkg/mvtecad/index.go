// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package mvtecad

import (
	"image"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gomlx/mvtecad/pkg/support/fsutil"
	"github.com/gomlx/mvtecad/pkg/support/sets"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Transform is an optional function applied to images or masks returned by CategoryIndex.Get.
// See Map for transformations that change the returned type.
type Transform func(img image.Image) image.Image

// Sample is one indexed image of a category split.
type Sample struct {
	// ImagePath is the path to the image: <root>/<category>/<split>/<label>/<file><ext>.
	ImagePath string

	// MaskPath is the path where the mask is expected: <root>/<category>/ground_truth/<label>/<file>_mask<ext>.
	// For "good" samples it usually doesn't exist.
	MaskPath string

	// Label is the name of the label (defect class) directory of the image.
	Label string
}

// Config for a CategoryIndex, created with Build. Once configured, call Done to build the index.
type Config struct {
	root, category string
	split          Split
	imageExt       string
	fs             afero.Fs
	codec          Codec

	imageTransform, maskTransform Transform
}

// Build a CategoryIndex for the given dataset root directory and category.
// It returns a Config that can be further configured with the With* methods, and then call Done
// to build the index.
//
// It defaults to the Train split, ".png" images, the OS filesystem and the ImageCodec.
//
// Example:
//
//	idx, err := mvtecad.Build(root, "bottle").WithSplit(mvtecad.Test).Done()
func Build(root, category string) *Config {
	return &Config{
		root:     root,
		category: category,
		split:    Train,
		imageExt: DefaultImageExtension,
	}
}

// WithSplit selects the split (Train or Test) to index.
func (c *Config) WithSplit(split Split) *Config {
	c.split = split
	return c
}

// WithImageExtension sets the extension (including the ".") of images and masks. Default is ".png".
func (c *Config) WithImageExtension(ext string) *Config {
	c.imageExt = ext
	return c
}

// WithFS sets the filesystem used to list directories. If no Codec is set, it is also used to read
// the images. Default is the OS filesystem.
func (c *Config) WithFS(fs afero.Fs) *Config {
	c.fs = fs
	return c
}

// WithCodec sets the Codec used to decode images and to create blank masks.
func (c *Config) WithCodec(codec Codec) *Config {
	c.codec = codec
	return c
}

// WithImageTransform sets a function applied to each image returned by Get.
func (c *Config) WithImageTransform(fn Transform) *Config {
	c.imageTransform = fn
	return c
}

// WithMaskTransform sets a function applied to each mask returned by Get.
func (c *Config) WithMaskTransform(fn Transform) *Config {
	c.maskTransform = fn
	return c
}

// CategoryIndex holds the samples of one split of a category, and the mapping of labels to label indices.
//
// It is built once from the state of the filesystem (see Build or New), and it is immutable afterwards:
// it is safe to call Get concurrently, as long as the Codec is.
type CategoryIndex struct {
	root, category string
	split          Split
	imageExt       string
	fs             afero.Fs
	codec          Codec

	imageTransform, maskTransform Transform

	labels       []string
	labelToIndex map[string]int
	samples      []Sample
}

var _ Dataset[image.Image, image.Image] = (*CategoryIndex)(nil)

// New creates a CategoryIndex for the category and split under root, with the default configuration.
// See Build for more options.
func New(root, category string, split Split) (*CategoryIndex, error) {
	return Build(root, category).WithSplit(split).Done()
}

// Done builds the CategoryIndex by scanning the filesystem.
//
// It returns an error matching ErrNotFound if the category doesn't exist under root, or if the split
// doesn't have a "good" label directory.
func (c *Config) Done() (*CategoryIndex, error) {
	if c.split != Train && c.split != Test {
		return nil, errors.Errorf("invalid split %d", c.split)
	}
	if c.imageExt == "" {
		return nil, errors.New("image extension must not be empty")
	}
	idx := &CategoryIndex{
		root:           c.root,
		category:       c.category,
		split:          c.split,
		imageExt:       c.imageExt,
		fs:             c.fs,
		codec:          c.codec,
		imageTransform: c.imageTransform,
		maskTransform:  c.maskTransform,
	}
	if idx.fs == nil {
		idx.fs = afero.NewOsFs()
	}
	if idx.codec == nil {
		idx.codec = NewImageCodec(idx.fs)
	}

	categories, err := ListCategories(idx.fs, idx.root)
	if err != nil {
		return nil, err
	}
	if !sets.MakeWith(categories...).Has(idx.category) {
		return nil, errors.Wrapf(ErrNotFound, "category %q not found in %q", idx.category, idx.root)
	}

	splitDir := idx.SplitDir()
	labelDirs, err := fsutil.Subdirs(idx.fs, splitDir)
	if err != nil {
		return nil, notFoundIfMissing(err, "split %q of category %q", idx.split, idx.category)
	}
	idx.labels, err = goodFirst(labelDirs)
	if err != nil {
		return nil, errors.WithMessagef(err, "in %q", splitDir)
	}
	idx.labelToIndex = make(map[string]int, len(idx.labels))
	for ii, label := range idx.labels {
		idx.labelToIndex[label] = ii
	}

	categoryDir := idx.CategoryDir()
	for _, label := range labelDirs {
		labelDir := filepath.Join(splitDir, label)
		names, err := fsutil.FilesWithSuffix(idx.fs, labelDir, idx.imageExt)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			idx.samples = append(idx.samples, Sample{
				ImagePath: filepath.Join(labelDir, name),
				MaskPath:  MaskPath(categoryDir, label, name, idx.imageExt),
				Label:     label,
			})
		}
	}
	return idx, nil
}

// goodFirst returns the labels with GoodLabel moved to the front, preserving the order of the others.
// It returns an error matching ErrNotFound if GoodLabel is not present.
func goodFirst(labels []string) ([]string, error) {
	pos := slices.Index(labels, GoodLabel)
	if pos < 0 {
		return nil, errors.Wrapf(ErrNotFound, "label %q not found in %v", GoodLabel, labels)
	}
	ordered := make([]string, 0, len(labels))
	ordered = append(ordered, GoodLabel)
	ordered = append(ordered, labels[:pos]...)
	ordered = append(ordered, labels[pos+1:]...)
	return ordered, nil
}

// MaskPath returns the path of the mask for the image fileName with the given label:
// the split directory is replaced by GroundTruthDir, and MaskSuffix is inserted before the extension ext.
//
// E.g.: MaskPath("root/bottle", "broken_large", "003.png", ".png") returns
// "root/bottle/ground_truth/broken_large/003_mask.png".
func MaskPath(categoryDir, label, fileName, ext string) string {
	stem := strings.TrimSuffix(fileName, ext)
	return filepath.Join(categoryDir, GroundTruthDir, label, stem+MaskSuffix+ext)
}

// Name of the index, e.g. "MVTec AD bottle/test".
func (idx *CategoryIndex) Name() string {
	return "MVTec AD " + idx.category + "/" + idx.split.String()
}

// Root directory of the dataset.
func (idx *CategoryIndex) Root() string { return idx.root }

// Category indexed.
func (idx *CategoryIndex) Category() string { return idx.category }

// Split indexed.
func (idx *CategoryIndex) Split() Split { return idx.split }

// ImageExtension of the images and masks.
func (idx *CategoryIndex) ImageExtension() string { return idx.imageExt }

// CategoryDir returns <root>/<category>.
func (idx *CategoryIndex) CategoryDir() string {
	return filepath.Join(idx.root, idx.category)
}

// SplitDir returns <root>/<category>/<split>.
func (idx *CategoryIndex) SplitDir() string {
	return filepath.Join(idx.CategoryDir(), idx.split.String())
}

// Len returns the number of samples indexed.
func (idx *CategoryIndex) Len() int {
	return len(idx.samples)
}

// Labels returns a copy of the labels of the split. Labels[0] is always GoodLabel, and the position of
// each label is its label index.
func (idx *CategoryIndex) Labels() []string {
	return slices.Clone(idx.labels)
}

// LabelIndex returns the label index of label, and whether it is a label of the split.
func (idx *CategoryIndex) LabelIndex(label string) (int, bool) {
	labelIdx, found := idx.labelToIndex[label]
	return labelIdx, found
}

// LabelToIndex returns a copy of the mapping of labels to label indices.
func (idx *CategoryIndex) LabelToIndex() map[string]int {
	return maps.Clone(idx.labelToIndex)
}

// Samples returns a copy of all samples indexed.
func (idx *CategoryIndex) Samples() []Sample {
	return slices.Clone(idx.samples)
}

// Sample returns the sample at position i, or an error matching ErrOutOfRange.
func (idx *CategoryIndex) Sample(i int) (Sample, error) {
	if i < 0 || i >= len(idx.samples) {
		return Sample{}, errors.Wrapf(ErrOutOfRange, "sample index %d invalid: there are only %d samples in %s",
			i, len(idx.samples), idx.Name())
	}
	return idx.samples[i], nil
}

// Get loads the image and the mask of the sample i, and returns them along with its label index.
//
// If the mask file doesn't exist and the label is "good", a blank mask of the size of the image is returned.
// If the label is not "good" it returns an error matching ErrIntegrity.
//
// The image and mask transforms, if configured, are applied before returning.
func (idx *CategoryIndex) Get(i int) (img, mask image.Image, label int, err error) {
	img, mask, label, _, err = idx.load(i)
	if err != nil {
		return nil, nil, 0, err
	}
	if idx.imageTransform != nil {
		img = idx.imageTransform(img)
	}
	if idx.maskTransform != nil {
		mask = idx.maskTransform(mask)
	}
	return img, mask, label, nil
}

// load returns the untransformed image and mask of sample i, and whether the mask was read from a file.
func (idx *CategoryIndex) load(i int) (img, mask image.Image, label int, maskFromFile bool, err error) {
	var sample Sample
	sample, err = idx.Sample(i)
	if err != nil {
		return
	}
	img, err = idx.codec.Decode(sample.ImagePath)
	if err != nil {
		err = errors.WithMessagef(err, "failed to read image of sample #%d", i)
		return
	}

	maskFromFile, err = fsutil.FileExists(idx.fs, sample.MaskPath)
	if err != nil {
		return
	}
	if maskFromFile {
		mask, err = idx.codec.Decode(sample.MaskPath)
		if err != nil {
			err = errors.WithMessagef(err, "failed to read mask of sample #%d", i)
			return
		}
	} else if sample.Label == GoodLabel {
		mask = idx.codec.NewBlank(img.Bounds().Size())
	} else {
		err = errors.Wrapf(ErrIntegrity, "mask %q of sample #%d (label %q) not found",
			sample.MaskPath, i, sample.Label)
		return
	}
	label = idx.labelToIndex[sample.Label]
	return
}
