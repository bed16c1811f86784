// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package mvtecad

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Codec is used by CategoryIndex to read images and masks, and to create the blank masks of "good" samples.
//
// Implementations must be safe for concurrent use.
type Codec interface {
	// Decode reads the image in path.
	Decode(path string) (image.Image, error)

	// NewBlank creates a single channel (grayscale) image of the given size, with all pixels set to 0.
	NewBlank(size image.Point) image.Image
}

// ImageCodec is the default Codec: it reads files from an afero.Fs and decodes them with imaging.
// The EXIF orientation is not applied, so images keep the geometry of their ground-truth masks.
//
// PNG, JPEG, GIF, BMP, TIFF and WebP are supported.
type ImageCodec struct {
	fs afero.Fs
}

var _ Codec = (*ImageCodec)(nil)

// NewImageCodec returns an ImageCodec reading from fs. If fs is nil, the OS filesystem is used.
func NewImageCodec(fs afero.Fs) *ImageCodec {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &ImageCodec{fs: fs}
}

// Decode implements Codec. Errors opening the file are returned wrapped,
// and decoding errors are returned as *DecodeError.
func (c *ImageCodec) Decode(path string) (image.Image, error) {
	f, err := c.fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open image %q", path)
	}
	defer func() { _ = f.Close() }()
	img, err := imaging.Decode(f)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return img, nil
}

// NewBlank implements Codec.
func (c *ImageCodec) NewBlank(size image.Point) image.Image {
	return image.NewGray(image.Rect(0, 0, size.X, size.Y))
}
