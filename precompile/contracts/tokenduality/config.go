// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tokenduality

import (
	"math/big"

	"github.com/andelabs/ande-core/precompile/allowlist"
	"github.com/andelabs/ande-core/precompile/precompileconfig"
)

// ConfigKey is the JSON config key for this precompile, used by
// params.Precompiles' genesis/upgrade decoding.
const ConfigKey = "tokenDualityConfig"

// Config is the genesis/upgrade-time configuration for the Token-Duality
// precompile: whether transfers are allowlist-gated, and the optional
// per-call / per-block value caps. The per-block cap counter is global
// across all callers, not per-account — see DESIGN.md for the rationale.
type Config struct {
	precompileconfig.Upgrade
	allowlist.AllowListConfig

	PerCallCap  *big.Int `json:"perCallCap,omitempty"`
	PerBlockCap *big.Int `json:"perBlockCap,omitempty"`
}

// Key implements precompileconfig.Config.
func (c *Config) Key() string { return ConfigKey }

// Verify implements precompileconfig.Config.
func (c *Config) Verify(chainConfig precompileconfig.ChainConfig) error {
	if err := c.AllowListConfig.Verify(chainConfig, c.Upgrade); err != nil {
		return err
	}
	if c.PerCallCap != nil && c.PerCallCap.Sign() < 0 {
		return errNegativeCap
	}
	if c.PerBlockCap != nil && c.PerBlockCap.Sign() < 0 {
		return errNegativeCap
	}
	return nil
}

// Equal implements precompileconfig.Config.
func (c *Config) Equal(other precompileconfig.Config) bool {
	o, ok := other.(*Config)
	if !ok {
		return false
	}
	if !c.Upgrade.Equal(&o.Upgrade) {
		return false
	}
	if !c.AllowListConfig.Equal(&o.AllowListConfig) {
		return false
	}
	return bigEqual(c.PerCallCap, o.PerCallCap) && bigEqual(c.PerBlockCap, o.PerBlockCap)
}

func bigEqual(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
}

var errNegativeCap = configError("negative cap configured")

type configError string

func (e configError) Error() string { return string(e) }
