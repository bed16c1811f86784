// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package mvtecad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	assert.Equal(t, "train", Train.String())
	assert.Equal(t, "test", Test.String())
	assert.Equal(t, "Unknown", Split(3).String())

	for name, want := range map[string]Split{"train": Train, "TEST": Test, " test ": Test} {
		got, err := ParseSplit(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseSplit("validation")
	require.Error(t, err)
}

func TestListCategories(t *testing.T) {
	fs := newFixture(t)
	categories, err := ListCategories(fs, fixtureRoot)
	require.NoError(t, err)
	assert.Equal(t, []string{"bottle", "cable"}, categories)
	for _, category := range categories {
		assert.Contains(t, KnownCategories, category)
	}

	_, err = ListCategories(fs, "/nowhere")
	assert.ErrorIs(t, err, ErrNotFound)
}
