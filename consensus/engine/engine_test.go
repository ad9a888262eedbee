// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import (
	"testing"
	"time"

	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"
)

var (
	v1 = common.HexToAddress("0x0000000000000000000000000000000000001")
	v2 = common.HexToAddress("0x0000000000000000000000000000000000002")
)

func TestRegisterIsIdempotent(t *testing.T) {
	s := NewValidatorSet()
	s = s.Register(v1, 100)
	s = s.Register(v1, 150)
	require.Equal(t, uint64(150), s.totalActiveWeight)
	v, ok := s.Get(v1)
	require.True(t, ok)
	require.Equal(t, uint64(150), v.Weight)
}

func TestWeightedFairnessExactProportions(t *testing.T) {
	s := NewValidatorSet()
	s = s.Register(v1, 100)
	s = s.Register(v2, 300)

	counts := map[common.Address]int{}
	for i := 0; i < 400; i++ {
		var addr common.Address
		var err error
		addr, s, err = s.ProposeNext()
		require.NoError(t, err)
		counts[addr]++
	}

	require.Equal(t, 100, counts[v1])
	require.Equal(t, 300, counts[v2])
}

func TestProposeNextTieBreaksLexicographically(t *testing.T) {
	s := NewValidatorSet()
	s = s.Register(v1, 100)
	s = s.Register(v2, 100)

	addr, _, err := s.ProposeNext()
	require.NoError(t, err)
	require.Equal(t, v1, addr, "equal priority ties break to the lexicographically smaller address")
}

func TestProposeNextNoActiveValidators(t *testing.T) {
	s := NewValidatorSet()
	_, _, err := s.ProposeNext()
	require.ErrorIs(t, err, ErrNoActiveValidators)
}

func TestSlashDowntimeReducesAndJails(t *testing.T) {
	s := NewValidatorSet().Register(v1, 1000)
	s, err := s.SlashDowntime(v1)
	require.NoError(t, err)

	v, ok := s.Get(v1)
	require.True(t, ok)
	require.True(t, v.Jailed)
	require.False(t, v.Active)
	require.Equal(t, uint64(950), v.Weight)
	require.Equal(t, uint64(0), s.TotalActiveWeight())
}

func TestUnjailRestoresReducedWeight(t *testing.T) {
	s := NewValidatorSet().Register(v1, 1000)
	s, err := s.SlashDowntime(v1)
	require.NoError(t, err)
	s, err = s.Unjail(v1)
	require.NoError(t, err)

	v, ok := s.Get(v1)
	require.True(t, ok)
	require.False(t, v.Jailed)
	require.True(t, v.Active)
	require.Equal(t, uint64(950), v.Weight)
	require.Equal(t, uint64(950), s.TotalActiveWeight())
}

func TestUnjailRequiresJailed(t *testing.T) {
	s := NewValidatorSet().Register(v1, 1000)
	_, err := s.Unjail(v1)
	require.ErrorIs(t, err, ErrNotJailed)
}

func TestUpdatePowerRequiresActive(t *testing.T) {
	s := NewValidatorSet().Register(v1, 1000)
	s, _ = s.SlashDowntime(v1)
	_, err := s.UpdatePower(v1, 2000)
	require.ErrorIs(t, err, ErrValidatorInactive)
}

func TestEpochTransitionGatedOnElapsed(t *testing.T) {
	s := NewValidatorSet()
	_, err := s.TryAdvanceEpoch(time.Hour, 90*24*time.Hour)
	require.ErrorIs(t, err, ErrEpochNotEnded)

	next, err := s.TryAdvanceEpoch(91*24*time.Hour, 90*24*time.Hour)
	require.NoError(t, err)
	require.Equal(t, uint64(1), next.Epoch())
}

func TestThreshold(t *testing.T) {
	require.Equal(t, uint64(201), Threshold(300))
	require.Equal(t, uint64(1), Threshold(0))
}

func TestEngineProposerSerializesAcrossBlocks(t *testing.T) {
	e := New()
	e.RegisterValidator(v1, 100)
	e.RegisterValidator(v2, 100)

	first, err := e.ExpectedProposer()
	require.NoError(t, err)
	require.Equal(t, v1, first)

	second, err := e.ExpectedProposer()
	require.NoError(t, err)
	require.Equal(t, v2, second)
}
