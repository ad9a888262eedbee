// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package seed

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateIsDeterministic(t *testing.T) {
	ids := []string{"alpha", "beta", "gamma"}
	a := Generate(ids)
	b := Generate(ids)
	require.Equal(t, a, b)
}

func TestGenerateProducesDistinctSeeds(t *testing.T) {
	seeds := Generate([]string{"alpha"})
	require.NotEqual(t, seeds[0], seeds[1])
}

func TestGenerateEmptyIdentifiersIsZeroed(t *testing.T) {
	seeds := Generate(nil)
	var zero [32]byte
	for _, s := range seeds {
		require.Equal(t, zero, s)
	}
}

func TestGenerateCyclesShortIdentifierLists(t *testing.T) {
	seeds := Generate([]string{"only-one"})
	require.Len(t, seeds, Count)
}

func TestEncodeCulturalPadsRight(t *testing.T) {
	out := EncodeCultural("ande")
	require.Equal(t, byte('a'), out[0])
	require.Equal(t, byte('e'), out[3])
	require.Equal(t, byte(0), out[31])
}

func TestEncodeCulturalTruncatesLongInput(t *testing.T) {
	long := make([]byte, 64)
	for i := range long {
		long[i] = 'x'
	}
	out := EncodeCultural(string(long))
	require.Len(t, out, 32)
}
