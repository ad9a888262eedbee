// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package params holds the chain's identity: the genesis JSON shape, the
// derived chain spec, and the precompile configuration carried in genesis.
// Mirrors evmcore.Genesis's JSON handling
// (cmd/evm-node/chaincmd/chaincmd.go's initGenesis) and core/genesis_test.go.
package params

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/andelabs/ande-core/precompile/precompileconfig"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/common/hexutil"
	gethparams "github.com/luxfi/geth/params"
)

// ChainID is the canonical chain id for this network.
const ChainID = 6174

// GenesisAccount is one entry of the genesis allocation: a balance, optional
// contract code, and optional storage — the same shape evmcore.Genesis
// decodes its `alloc` map into.
type GenesisAccount struct {
	Balance *hexutil.Big                `json:"balance"`
	Code    hexutil.Bytes               `json:"code,omitempty"`
	Storage map[common.Hash]common.Hash `json:"storage,omitempty"`
	Nonce   uint64                      `json:"nonce,omitempty"`
}

// GenesisAlloc is the genesis allocation, keyed by address.
type GenesisAlloc map[common.Address]GenesisAccount

// Genesis is the on-disk genesis file shape: chain config, precompile
// activation configs, and the initial account allocation (including the
// seed-carrier and cultural-identifier storage slots at address 0x…01 and
// the 520 seeds at slots 0x100..0x307).
type Genesis struct {
	Config      *gethparams.ChainConfig     `json:"config"`
	Precompiles map[string]json.RawMessage  `json:"precompiles,omitempty"`
	Alloc       GenesisAlloc                `json:"alloc"`
	GasLimit    uint64                      `json:"gasLimit"`
	Timestamp   uint64                      `json:"timestamp"`
	ExtraData   hexutil.Bytes               `json:"extraData,omitempty"`
}

// LoadGenesis reads and decodes a genesis file from disk.
func LoadGenesis(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("params: read genesis file %s: %w", path, err)
	}
	var g Genesis
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("params: parse genesis file %s: %w", path, err)
	}
	if g.Config == nil {
		return nil, fmt.Errorf("params: genesis file %s has no config section", path)
	}
	return &g, nil
}

// DecodePrecompileConfigs decodes each precompile's raw JSON block against
// the Configurator it registered under the same key, returning a
// ready-to-verify Config per key. Keys with no matching registered module
// are reported as an error rather than silently ignored — a typo in a
// genesis file's precompile key should not pass silently.
func (g *Genesis) DecodePrecompileConfigs(makeConfig func(key string) (precompileconfig.Config, bool)) (map[string]precompileconfig.Config, error) {
	out := make(map[string]precompileconfig.Config, len(g.Precompiles))
	for key, raw := range g.Precompiles {
		cfg, ok := makeConfig(key)
		if !ok {
			return nil, fmt.Errorf("params: genesis precompile key %q has no registered module", key)
		}
		if err := json.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("params: decode precompile config %q: %w", key, err)
		}
		out[key] = cfg
	}
	return out, nil
}

// chainConfigAdapter exposes gethparams.ChainConfig as
// precompileconfig.ChainConfig so precompile Config.Verify can run against
// genesis-loaded configuration without importing the geth params package
// directly.
type chainConfigAdapter struct {
	config *gethparams.ChainConfig
}

// AsPrecompileChainConfig wraps g.Config for precompile config verification.
func (g *Genesis) AsPrecompileChainConfig() precompileconfig.ChainConfig {
	return &chainConfigAdapter{config: g.Config}
}

func (c *chainConfigAdapter) ChainID() *big.Int { return c.config.ChainID }

func (c *chainConfigAdapter) IsDurango(timestamp uint64) bool {
	if c.config.SubnetEVMTimestamp == nil {
		return false
	}
	return timestamp >= *c.config.SubnetEVMTimestamp
}
