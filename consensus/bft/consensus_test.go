// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bft

import (
	"errors"
	"math/big"
	"testing"

	"github.com/andelabs/ande-core/consensus/engine"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/types"
	"github.com/luxfi/geth/core/vm"
	"github.com/stretchr/testify/require"
)

var (
	v1      = common.HexToAddress("0x01")
	errBoom = errors.New("boom")
)

// stubInner is a no-op Inner that records whether each method was invoked,
// so tests can assert that Overlay delegates rather than reimplements.
type stubInner struct {
	verifyHeaderCalled bool
	verifyHeaderErr    error
}

func (s *stubInner) Author(header *types.Header) (common.Address, error) {
	return header.Coinbase, nil
}

func (s *stubInner) VerifyHeader(chain ChainHeaderReader, header *types.Header, seal bool) error {
	s.verifyHeaderCalled = true
	return s.verifyHeaderErr
}

func (s *stubInner) VerifyUncles(chain ChainHeaderReader, block *types.Block) error { return nil }

func (s *stubInner) Prepare(chain ChainHeaderReader, header *types.Header) error { return nil }

func (s *stubInner) Finalize(chain ChainHeaderReader, block *types.Block, parent *types.Header, state vm.StateDB, receipts []*types.Receipt) error {
	return nil
}

func (s *stubInner) FinalizeAndAssemble(chain ChainHeaderReader, header *types.Header, parent *types.Header, state vm.StateDB, txs []*types.Transaction, uncles []*types.Header, receipts []*types.Receipt) (*types.Block, error) {
	return types.NewBlockWithHeader(header), nil
}

func (s *stubInner) CalcDifficulty(chain ChainHeaderReader, time uint64, parent *types.Header) *big.Int {
	return big.NewInt(1)
}

func (s *stubInner) Close() error { return nil }

func TestOverlayDisabledPassesThrough(t *testing.T) {
	inner := &stubInner{}
	o := New(inner, nil)
	require.False(t, o.Enabled())

	header := &types.Header{Coinbase: common.HexToAddress("0xdead")}
	err := o.VerifyHeader(nil, header, false)
	require.NoError(t, err)
	require.True(t, inner.verifyHeaderCalled)
}

func TestOverlayRejectsWrongProposer(t *testing.T) {
	inner := &stubInner{}
	e := engine.New()
	e.RegisterValidator(v1, 100)
	o := New(inner, e)

	header := &types.Header{Coinbase: common.HexToAddress("0xdead")}
	err := o.VerifyHeader(nil, header, false)
	require.ErrorIs(t, err, ErrInvalidProposer)
}

func TestOverlayRejectsInsufficientAttestation(t *testing.T) {
	inner := &stubInner{}
	e := engine.New()
	e.RegisterValidator(v1, 100)
	o := New(inner, e)

	header := &types.Header{Coinbase: v1}
	err := o.VerifyHeader(nil, header, false)
	require.ErrorIs(t, err, ErrInsufficientAttestation)
}

func TestOverlayAcceptsValidProposerAndAttestation(t *testing.T) {
	inner := &stubInner{}
	e := engine.New()
	e.RegisterValidator(v1, 100)
	o := New(inner, e)

	header := &types.Header{Coinbase: v1}
	e.Attestations().Add(header.Hash(), v1, nil)

	err := o.VerifyHeader(nil, header, false)
	require.NoError(t, err)
}

func TestOverlayPropagatesInnerVerifyHeaderError(t *testing.T) {
	inner := &stubInner{verifyHeaderErr: errBoom}
	o := New(inner, nil)

	err := o.VerifyHeader(nil, &types.Header{}, false)
	require.ErrorIs(t, err, errBoom)
}

func TestOverlayDelegatesAuthor(t *testing.T) {
	inner := &stubInner{}
	o := New(inner, nil)
	header := &types.Header{Coinbase: v1}

	addr, err := o.Author(header)
	require.NoError(t, err)
	require.Equal(t, v1, addr)
}
