// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config binds the node's startup configuration to environment
// variables via viper, following cmd/simulator's own BuildViper/BuildFlagSet
// pattern for binding env-backed flags. This package is env-only (no CLI
// flags of its own) since every knob here has a sane zero value; cmd/ande-core
// defines no flags that override it either.
package config

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/luxfi/geth/common"
	"github.com/spf13/viper"
)

const (
	genesisPathKey      = "GENESIS_PATH"
	adminAddressKey     = "ANDE_ADMIN_ADDRESS"
	perCallCapKey       = "ANDE_PER_CALL_CAP"
	perBlockCapKey      = "ANDE_PER_BLOCK_CAP"
	consensusEnabledKey = "ANDE_CONSENSUS_ENABLED"
	validatorsKey       = "ANDE_VALIDATORS"
)

// ValidatorBootstrap is one entry of ANDE_VALIDATORS: address:weight,
// used only to seed a local/dev validator set. Production validator sets
// are learned from contract events, not environment variables.
type ValidatorBootstrap struct {
	Address common.Address
	Weight  uint64
}

// Config is the node's fully-resolved startup configuration.
type Config struct {
	GenesisPath      string
	AdminAddress     *common.Address
	PerCallCap       *big.Int
	PerBlockCap      *big.Int
	ConsensusEnabled bool
	Validators       []ValidatorBootstrap
}

// Load binds the ANDE_*/GENESIS_PATH environment variables through viper
// and resolves them into a Config. Malformed values (a non-hex address, a
// non-numeric cap) are reported as errors rather than silently ignored.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	for _, key := range []string{genesisPathKey, adminAddressKey, perCallCapKey, perBlockCapKey, consensusEnabledKey, validatorsKey} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	cfg := &Config{
		GenesisPath: v.GetString(genesisPathKey),
	}

	if raw := v.GetString(consensusEnabledKey); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("config: %s is not a valid boolean: %q", consensusEnabledKey, raw)
		}
		cfg.ConsensusEnabled = enabled
	}

	if raw := v.GetString(adminAddressKey); raw != "" {
		if !common.IsHexAddress(raw) {
			return nil, fmt.Errorf("config: %s is not a valid address: %q", adminAddressKey, raw)
		}
		addr := common.HexToAddress(raw)
		cfg.AdminAddress = &addr
	}

	var err error
	if cfg.PerCallCap, err = parseOptionalBigInt(v.GetString(perCallCapKey), perCallCapKey); err != nil {
		return nil, err
	}
	if cfg.PerBlockCap, err = parseOptionalBigInt(v.GetString(perBlockCapKey), perBlockCapKey); err != nil {
		return nil, err
	}

	if cfg.Validators, err = parseValidators(v.GetString(validatorsKey)); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseOptionalBigInt(raw, key string) (*big.Int, error) {
	if raw == "" {
		return nil, nil
	}
	n, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, fmt.Errorf("config: %s is not a valid integer: %q", key, raw)
	}
	return n, nil
}

// parseValidators parses a comma-separated address:weight list, e.g.
// "0xabc...:100,0xdef...:50".
func parseValidators(raw string) ([]ValidatorBootstrap, error) {
	if raw == "" {
		return nil, nil
	}
	entries := strings.Split(raw, ",")
	out := make([]ValidatorBootstrap, 0, len(entries))
	for _, entry := range entries {
		parts := strings.SplitN(strings.TrimSpace(entry), ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("config: %s entry %q must be address:weight", validatorsKey, entry)
		}
		if !common.IsHexAddress(parts[0]) {
			return nil, fmt.Errorf("config: %s entry %q has an invalid address", validatorsKey, entry)
		}
		weight, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("config: %s entry %q has an invalid weight: %w", validatorsKey, entry, err)
		}
		out = append(out, ValidatorBootstrap{Address: common.HexToAddress(parts[0]), Weight: weight})
	}
	return out, nil
}
