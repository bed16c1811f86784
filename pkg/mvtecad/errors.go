// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package mvtecad

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// Kinds of errors returned by CategoryIndex. Test for them with errors.Is.
var (
	// ErrNotFound is returned when the root, the category, the split or the "good" label directories are missing.
	ErrNotFound = errors.New("not found")

	// ErrOutOfRange is returned when a sample index is not in [0, Len()).
	ErrOutOfRange = errors.New("sample index out of range")

	// ErrDecode is matched by DecodeError, returned when an image file can't be decoded.
	ErrDecode = errors.New("failed to decode image")

	// ErrIntegrity is returned when the dataset is inconsistent, e.g. a defect sample has no mask.
	ErrIntegrity = errors.New("dataset integrity error")
)

// DecodeError is returned when an image (or mask) file exists but can't be decoded.
// It matches ErrDecode with errors.Is, and unwraps to the error returned by the decoder.
type DecodeError struct {
	Path string
	Err  error
}

// Error implements error.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode image %q: %v", e.Path, e.Err)
}

// Unwrap returns the decoder error.
func (e *DecodeError) Unwrap() error { return e.Err }

// Is makes DecodeError match ErrDecode.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// notFoundIfMissing converts errors matching os.ErrNotExist to ErrNotFound with the given message.
// Other errors are wrapped with the message.
func notFoundIfMissing(err error, format string, args ...any) error {
	if errors.Is(err, os.ErrNotExist) {
		return errors.Wrapf(ErrNotFound, format+": %v", append(args, err)...)
	}
	return errors.WithMessagef(err, format, args...)
}
