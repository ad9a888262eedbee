// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package bft implements the BFT multi-proposer consensus overlay: a
// decorator around the framework's standard beacon-style consensus engine
// that additionally enforces proposer authority and an attestation-weight
// threshold, backed by consensus/engine's validator set. Grounded on
// consensus/dummy.DummyEngine's delegate-then-extend shape: hold an inner
// engine, forward every method to it, override only VerifyHeader.
package bft

import (
	"math/big"

	"github.com/andelabs/ande-core/consensus/engine"
	"github.com/andelabs/ande-core/metrics"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/types"
	"github.com/luxfi/geth/core/vm"
)

// ChainHeaderReader is the subset of the framework's chain-reader capability
// Inner's VerifyHeader needs to look up ancestors.
type ChainHeaderReader interface {
	GetHeader(hash common.Hash, number uint64) *types.Header
}

// Inner is the framework's standard beacon-style consensus capability that
// Overlay wraps. Every method not overridden here is a straight
// pass-through.
type Inner interface {
	Author(header *types.Header) (common.Address, error)
	VerifyHeader(chain ChainHeaderReader, header *types.Header, seal bool) error
	VerifyUncles(chain ChainHeaderReader, block *types.Block) error
	Prepare(chain ChainHeaderReader, header *types.Header) error
	Finalize(chain ChainHeaderReader, block *types.Block, parent *types.Header, state vm.StateDB, receipts []*types.Receipt) error
	FinalizeAndAssemble(chain ChainHeaderReader, header *types.Header, parent *types.Header, state vm.StateDB, txs []*types.Transaction, uncles []*types.Header, receipts []*types.Receipt) (*types.Block, error)
	CalcDifficulty(chain ChainHeaderReader, time uint64, parent *types.Header) *big.Int
	Close() error
}

// Overlay is present-or-absent: an Overlay with BFT disabled carries a
// nil *engine.Engine, never a zero-initialized-but-inhabited one. A
// zero-initialized Engine would embed a live atomic.Pointer and mutex that
// were never seeded with an initial snapshot — silently wrong, not merely
// empty — so the absence is represented structurally instead.
type Overlay struct {
	inner  Inner
	engine *engine.Engine // nil means BFT is disabled; stock consensus only.
}

// New wraps inner with BFT proposer/attestation enforcement backed by eng.
// Pass a nil eng to get a pure pass-through overlay (BFT disabled).
func New(inner Inner, eng *engine.Engine) *Overlay {
	return &Overlay{inner: inner, engine: eng}
}

// Enabled reports whether the BFT overlay is active for this instance.
func (c *Overlay) Enabled() bool { return c.engine != nil }

func (c *Overlay) Author(header *types.Header) (common.Address, error) {
	return c.inner.Author(header)
}

// VerifyHeader delegates standard validation to the inner consensus, then —
// if BFT is enabled — checks proposer authority and attestation weight.
func (c *Overlay) VerifyHeader(chain ChainHeaderReader, header *types.Header, seal bool) error {
	if err := c.inner.VerifyHeader(chain, header, seal); err != nil {
		return err
	}
	if c.engine == nil {
		return nil
	}

	expected, err := c.engine.ExpectedProposer()
	if err != nil {
		return err
	}
	if header.Coinbase != expected {
		metrics.RecordConsensusValidation(metrics.ConsensusValidationInvalidProposer)
		return ErrInvalidProposer
	}

	if !c.engine.AttestationMeetsThreshold(header.Hash()) {
		metrics.RecordConsensusValidation(metrics.ConsensusValidationInsufficientAttestation)
		return ErrInsufficientAttestation
	}

	metrics.RecordConsensusValidation(metrics.ConsensusValidationAccepted)
	return nil
}

func (c *Overlay) VerifyUncles(chain ChainHeaderReader, block *types.Block) error {
	return c.inner.VerifyUncles(chain, block)
}

func (c *Overlay) Prepare(chain ChainHeaderReader, header *types.Header) error {
	return c.inner.Prepare(chain, header)
}

// Finalize delegates unconditionally: proposer authority and attestation
// are header-level properties, checked only in VerifyHeader.
func (c *Overlay) Finalize(chain ChainHeaderReader, block *types.Block, parent *types.Header, state vm.StateDB, receipts []*types.Receipt) error {
	return c.inner.Finalize(chain, block, parent, state, receipts)
}

func (c *Overlay) FinalizeAndAssemble(chain ChainHeaderReader, header *types.Header, parent *types.Header, state vm.StateDB, txs []*types.Transaction, uncles []*types.Header, receipts []*types.Receipt) (*types.Block, error) {
	return c.inner.FinalizeAndAssemble(chain, header, parent, state, txs, uncles, receipts)
}

func (c *Overlay) CalcDifficulty(chain ChainHeaderReader, time uint64, parent *types.Header) *big.Int {
	return c.inner.CalcDifficulty(chain, time, parent)
}

func (c *Overlay) Close() error { return c.inner.Close() }
