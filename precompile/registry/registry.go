// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package registry is the process-wide catalog of precompile modules. Every
// precompile self-registers via init() so that genesis JSON decoding and the
// EVM factory wrapper can look modules up by config key or address without a
// hand-maintained switch statement.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/andelabs/ande-core/precompile/contract"
	"github.com/luxfi/geth/common"
)

// Module ties a precompile's config key, reserved address, runtime contract
// and configurator together as a single registrable unit.
type Module struct {
	ConfigKey string
	Address   common.Address
	Contract  contract.StatefulPrecompiledContract
	Configurator contract.Configurator
}

// NewModule constructs a Module. It does not register it; call
// RegisterModule explicitly (normally from an init() in the module's own
// package).
func NewModule(configKey string, address common.Address, c contract.StatefulPrecompiledContract, configurator contract.Configurator) *Module {
	return &Module{
		ConfigKey:    configKey,
		Address:      address,
		Contract:     c,
		Configurator: configurator,
	}
}

var (
	mu          sync.RWMutex
	byKey       = map[string]*Module{}
	byAddress   = map[common.Address]*Module{}
)

// RegisterModule adds [m] to the process-wide registry. It is an error to
// register the same config key or address twice.
func RegisterModule(m *Module) error {
	mu.Lock()
	defer mu.Unlock()

	if _, ok := byKey[m.ConfigKey]; ok {
		return fmt.Errorf("precompile config key %q already registered", m.ConfigKey)
	}
	if _, ok := byAddress[m.Address]; ok {
		return fmt.Errorf("precompile address %s already registered", m.Address)
	}
	byKey[m.ConfigKey] = m
	byAddress[m.Address] = m
	return nil
}

// GetModule returns the module registered under [key], if any.
func GetModule(key string) (*Module, bool) {
	mu.RLock()
	defer mu.RUnlock()
	m, ok := byKey[key]
	return m, ok
}

// GetModuleByAddress returns the module registered at [addr], if any.
func GetModuleByAddress(addr common.Address) (*Module, bool) {
	mu.RLock()
	defer mu.RUnlock()
	m, ok := byAddress[addr]
	return m, ok
}

// RegisteredModules returns all registered modules, sorted by config key for
// determinism (genesis-config marshaling must be reproducible across nodes).
func RegisteredModules() []*Module {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]*Module, 0, len(byKey))
	for _, m := range byKey {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ConfigKey < out[j].ConfigKey })
	return out
}
