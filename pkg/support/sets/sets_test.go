// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := Make[string](4)
	assert.Len(t, s, 0)

	s.Insert("bottle", "cable")
	assert.Len(t, s, 2)
	assert.True(t, s.Has("bottle"))
	assert.False(t, s.Has("zipper"))

	s2 := MakeWith("zipper", "cable")
	diff := s.Sub(s2)
	assert.Len(t, diff, 1)
	assert.True(t, diff.Has("bottle"))

	s.Insert("bottle") // Duplicates are ignored.
	assert.Len(t, s, 2)

	assert.Equal(t, []string{"bottle", "cable", "zipper"}, Sorted(MakeWith("zipper", "bottle", "cable")))
	assert.Empty(t, Sorted(Make[int]()))
}
