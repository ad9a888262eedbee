// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package node

import (
	"fmt"

	"github.com/andelabs/ande-core/config"
	"github.com/andelabs/ande-core/params"
)

// DefaultGenesisPath is used when GENESIS_PATH is unset, mirroring the
// teacher's own init command defaulting to a path relative to the
// datadir rather than requiring an operator to always specify one.
const DefaultGenesisPath = "./specs/genesis.json"

// LoadChainSpec reads the genesis file named by cfg (or DefaultGenesisPath
// if unset), decodes it, and builds the chain spec — the "read file,
// json.Unmarshal, build chain spec" sequence of chaincmd.initGenesis. This
// fully populates the genesis alloc, including any seed-carrier storage
// slots, before the node's first block executes.
func LoadChainSpec(cfg *config.Config) (*params.ChainSpec, error) {
	path := cfg.GenesisPath
	if path == "" {
		path = DefaultGenesisPath
	}

	genesis, err := params.LoadGenesis(path)
	if err != nil {
		return nil, fmt.Errorf("node: load genesis: %w", err)
	}

	spec, err := params.NewChainSpec(genesis)
	if err != nil {
		return nil, fmt.Errorf("node: build chain spec: %w", err)
	}
	return spec, nil
}
