// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package mvtecad

import (
	"image"

	"github.com/pkg/errors"
)

// Dataset is a random-access collection of (image, mask, label index) samples.
//
// *CategoryIndex implements Dataset[image.Image, image.Image], and Map converts it to other types.
type Dataset[I, M any] interface {
	// Len returns the number of samples.
	Len() int

	// Get returns the image, mask and label index of the sample idx, with 0 <= idx < Len().
	Get(idx int) (I, M, int, error)
}

// Mapped is a Dataset that converts the images and masks of a CategoryIndex. See Map.
type Mapped[I, M any] struct {
	idx     *CategoryIndex
	imageFn func(image.Image) (I, error)
	maskFn  func(image.Image) (M, error)
}

var _ Dataset[[]float32, []float32] = (*Mapped[[]float32, []float32])(nil)

// Map returns a Dataset that applies imageFn to the images and maskFn to the masks returned by idx.Get.
// The transforms configured in idx (if any) are applied first.
//
// A nil function means no conversion: in that case the corresponding type (I or M) must be
// image.Image (or an interface implemented by the returned image), otherwise Get returns an error.
func Map[I, M any](idx *CategoryIndex, imageFn func(image.Image) (I, error), maskFn func(image.Image) (M, error)) *Mapped[I, M] {
	return &Mapped[I, M]{idx: idx, imageFn: imageFn, maskFn: maskFn}
}

// Index returns the underlying CategoryIndex.
func (m *Mapped[I, M]) Index() *CategoryIndex { return m.idx }

// Len implements Dataset.
func (m *Mapped[I, M]) Len() int { return m.idx.Len() }

// Get implements Dataset.
func (m *Mapped[I, M]) Get(i int) (img I, mask M, label int, err error) {
	var rawImg, rawMask image.Image
	rawImg, rawMask, label, err = m.idx.Get(i)
	if err != nil {
		return
	}
	img, err = apply(rawImg, m.imageFn)
	if err != nil {
		err = errors.WithMessagef(err, "converting image of sample #%d", i)
		return
	}
	mask, err = apply(rawMask, m.maskFn)
	if err != nil {
		err = errors.WithMessagef(err, "converting mask of sample #%d", i)
	}
	return
}

func apply[T any](img image.Image, fn func(image.Image) (T, error)) (T, error) {
	if fn != nil {
		return fn(img)
	}
	converted, ok := any(img).(T)
	if !ok {
		var zero T
		return zero, errors.Errorf("no conversion function given to convert %T to %T", img, zero)
	}
	return converted, nil
}
