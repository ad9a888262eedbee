// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package params

import (
	"fmt"

	gethparams "github.com/luxfi/geth/params"
)

// ChainSpec is the node's resolved, immutable chain identity: the genesis
// allocation plus the fork schedule it activates. Constructed once at
// startup from the on-disk genesis file and never mutated afterward —
// builders and the consensus overlay hold a reference to the same spec for
// the lifetime of the process.
type ChainSpec struct {
	genesis *Genesis
}

// NewChainSpec validates genesis and wraps it as an immutable ChainSpec.
func NewChainSpec(genesis *Genesis) (*ChainSpec, error) {
	if genesis.Config.ChainID == nil || genesis.Config.ChainID.Int64() != ChainID {
		return nil, fmt.Errorf("params: genesis chain id must be %d, got %v", ChainID, genesis.Config.ChainID)
	}
	return &ChainSpec{genesis: genesis}, nil
}

// Genesis returns the chain spec's underlying genesis definition.
func (s *ChainSpec) Genesis() *Genesis { return s.genesis }

// ChainConfig returns the fork-schedule configuration genesis activated.
func (s *ChainSpec) ChainConfig() *gethparams.ChainConfig { return s.genesis.Config }
