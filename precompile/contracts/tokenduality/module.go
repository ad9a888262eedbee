// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tokenduality

import (
	"fmt"

	"github.com/andelabs/ande-core/precompile/contract"
	"github.com/andelabs/ande-core/precompile/precompileconfig"
	"github.com/andelabs/ande-core/precompile/registry"
)

var _ contract.Configurator = &configurator{}

// Module is the registrable unit tying ConfigKey, ContractAddress, the
// Precompile singleton and its configurator together. Registered into the
// process-wide registry at package init.
var Module = registry.NewModule(
	ConfigKey,
	ContractAddress,
	Precompile,
	&configurator{},
)

type configurator struct{}

func init() {
	if err := registry.RegisterModule(Module); err != nil {
		panic(err)
	}
}

// MakeConfig returns a new, zero-valued Config for genesis/upgrade JSON to
// decode into.
func (*configurator) MakeConfig() precompileconfig.Config {
	return new(Config)
}

// Configure applies a decoded Config to freshly-activated state: persists
// the allowlist layout (if enabled) and installs the admin/cap policy onto
// the process-wide Precompile singleton. Called once per activation, never
// on the hot path.
func (*configurator) Configure(chainConfig precompileconfig.ChainConfig, cfg precompileconfig.Config, state contract.StateDB, blockContext contract.ConfigurationBlockContext) error {
	config, ok := cfg.(*Config)
	if !ok {
		return fmt.Errorf("tokenduality: expected config type %T, got %T", &Config{}, cfg)
	}

	if err := config.AllowListConfig.Configure(ContractAddress, state); err != nil {
		return err
	}

	Precompile.mu.Lock()
	Precompile.admin = config.AllowListConfig.Admin
	Precompile.perCallCap = config.PerCallCap
	Precompile.perBlockCap = config.PerBlockCap
	Precompile.mu.Unlock()

	return nil
}
