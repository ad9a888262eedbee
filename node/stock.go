// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package node

import (
	"fmt"
	"math/big"

	"github.com/andelabs/ande-core/consensus/bft"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/types"
	"github.com/luxfi/geth/core/vm"
)

// stockConsensus is the framework's standard beacon-style consensus
// engine stand-in that bft.Overlay wraps. Grounded on
// consensus/dummy.DummyEngine: header fields it does not itself need to
// check (difficulty, timestamp monotonicity, gas accounting) are left to
// the framework's own block-import path, which runs this same check ahead
// of any custom engine; this stand-in only needs to satisfy bft.Inner's
// shape so the overlay has something concrete to delegate to in tests and
// local development.
type stockConsensus struct{}

func (stockConsensus) Author(header *types.Header) (common.Address, error) {
	return header.Coinbase, nil
}

func (stockConsensus) VerifyHeader(chain bft.ChainHeaderReader, header *types.Header, seal bool) error {
	if header.Number == nil {
		return fmt.Errorf("node: header has no number")
	}
	return nil
}

func (stockConsensus) VerifyUncles(chain bft.ChainHeaderReader, block *types.Block) error {
	if len(block.Uncles()) != 0 {
		return fmt.Errorf("node: uncles are not supported")
	}
	return nil
}

func (stockConsensus) Prepare(chain bft.ChainHeaderReader, header *types.Header) error { return nil }

func (stockConsensus) Finalize(chain bft.ChainHeaderReader, block *types.Block, parent *types.Header, state vm.StateDB, receipts []*types.Receipt) error {
	return nil
}

func (stockConsensus) FinalizeAndAssemble(chain bft.ChainHeaderReader, header *types.Header, parent *types.Header, state vm.StateDB, txs []*types.Transaction, uncles []*types.Header, receipts []*types.Receipt) (*types.Block, error) {
	return types.NewBlockWithHeader(header), nil
}

func (stockConsensus) CalcDifficulty(chain bft.ChainHeaderReader, time uint64, parent *types.Header) *big.Int {
	return big.NewInt(1)
}

func (stockConsensus) Close() error { return nil }
