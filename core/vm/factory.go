// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vm implements the EVM factory wrapper (C2): on every EVM
// instantiation it extends the framework's standard precompile set with
// whatever precompile modules are active for the chain, without forking the
// framework's own highly generic EVM type. Grounded on
// core/precompile_overrider.go's PrecompileOverrider/Rules.Payload hook,
// the framework's actual mechanism for injecting custom precompiles.
package vm

import (
	"math/big"

	"github.com/andelabs/ande-core/precompile/contract"
	"github.com/andelabs/ande-core/precompile/precompileconfig"
	"github.com/andelabs/ande-core/precompile/registry"
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/tracing"
	gethvm "github.com/luxfi/geth/core/vm"
	gethparams "github.com/luxfi/geth/params"
)

// Factory wraps the framework's standard EVM construction path with a
// resolved, activation-aware precompile set. It is immutable once built —
// Install hooks it into the framework's Rules.Payload mechanism so that
// every EVM instance constructed afterwards sees the extended precompile
// map — and therefore cheap to share across concurrently executing
// transactions: there is no per-call state here, only the process-wide
// genesis-resolved module list and each module's own runtime state.
type Factory struct {
	active []activeModule
}

type activeModule struct {
	module *registry.Module
	config precompileconfig.Config
}

// New resolves modules against the chain's genesis/upgrade configuration,
// pairing each registered module with its decoded Config. Modules absent
// from configs are left out of the active set entirely (never enabled).
func New(configs map[string]precompileconfig.Config) *Factory {
	f := &Factory{}
	for _, m := range registry.RegisteredModules() {
		cfg, ok := configs[m.ConfigKey]
		if !ok {
			continue
		}
		f.active = append(f.active, activeModule{module: m, config: cfg})
	}
	return f
}

// Install registers f as the framework's Rules hook, so every EVM
// instantiated from this point forward (across every chain config this
// process services) routes precompile lookups at the reserved addresses
// through f. Call once at node startup.
func (f *Factory) Install() {
	gethparams.SetRulesHook(func(c *gethparams.ChainConfig, rules *gethparams.Rules, num *big.Int, isMerge bool, timestamp uint64) {
		rules.Payload = &boundFactory{factory: f, timestamp: timestamp}
	})
}

// boundFactory is the per-block view of Factory: the same immutable active
// set, evaluated against the timestamp of the block currently being
// processed so that upgrade-scheduled activation/deactivation takes effect
// at the right boundary.
type boundFactory struct {
	factory   *Factory
	timestamp uint64
}

// PrecompileOverride implements the framework's PrecompileOverrider
// capability: it is consulted by the EVM's precompile lookup before
// falling back to the built-in set.
func (b *boundFactory) PrecompileOverride(addr common.Address) (gethvm.PrecompiledContract, bool) {
	for _, am := range b.factory.active {
		if am.module.Address != addr {
			continue
		}
		if am.config.IsDisabled() {
			return nil, false
		}
		if ts := am.config.Timestamp(); ts != nil && b.timestamp < *ts {
			return nil, false
		}
		return &precompileAdapter{module: am.module}, true
	}
	return nil, false
}

// precompileAdapter adapts a contract.StatefulPrecompiledContract to the
// framework's geth-shaped vm.StatefulPrecompiledContract so that C1 (and
// any sibling precompile module) can be dispatched through the standard EVM
// interpreter loop unmodified.
type precompileAdapter struct {
	module *registry.Module
}

func (p *precompileAdapter) RequiredGas(input []byte) uint64 { return 0 }

func (p *precompileAdapter) Run(input []byte) ([]byte, error) {
	return nil, gethvm.ErrExecutionReverted
}

// RunStateful implements the framework's StatefulPrecompiledContract,
// translating its PrecompileEnvironment into the contract package's own
// narrower AccessibleState before delegating to the module's contract.
func (p *precompileAdapter) RunStateful(env gethvm.PrecompileEnvironment, input []byte, suppliedGas uint64) ([]byte, uint64, error) {
	accessibleState := &accessibleStateAdapter{env: env}
	addrs := env.Addresses()
	return p.module.Contract.Run(accessibleState, addrs.Caller, addrs.Self, input, suppliedGas, env.ReadOnly())
}

// accessibleStateAdapter adapts the framework's vm.PrecompileEnvironment to
// contract.AccessibleState.
type accessibleStateAdapter struct {
	env gethvm.PrecompileEnvironment
}

func (a *accessibleStateAdapter) GetStateDB() contract.StateDB {
	return &stateDBAdapter{inner: a.env.StateDB()}
}

func (a *accessibleStateAdapter) GetBlockContext() contract.BlockContext {
	return &blockContextAdapter{env: a.env}
}

// stateDBAdapter adapts the framework's vm.StateDB — whose balance methods
// report no error and take a tracing.BalanceChangeReason — to
// contract.StateDB's narrower, journal-erroring shape. SubBalance needs an
// explicit insufficient-balance check up front since the framework's native
// SubBalance itself never signals insufficiency; C1 relies on that signal to
// revert cleanly rather than producing an impossible negative balance.
type stateDBAdapter struct {
	inner gethvm.StateDB
}

func (s *stateDBAdapter) GetBalance(addr common.Address) *uint256.Int {
	return s.inner.GetBalance(addr)
}

func (s *stateDBAdapter) AddBalance(addr common.Address, amount *uint256.Int) error {
	s.inner.AddBalance(addr, amount, tracing.BalanceChangeTransfer)
	return nil
}

func (s *stateDBAdapter) SubBalance(addr common.Address, amount *uint256.Int) error {
	if s.inner.GetBalance(addr).Cmp(amount) < 0 {
		return gethvm.ErrInsufficientBalance
	}
	s.inner.SubBalance(addr, amount, tracing.BalanceChangeTransfer)
	return nil
}

func (s *stateDBAdapter) GetState(addr common.Address, key common.Hash) common.Hash {
	return s.inner.GetState(addr, key)
}

func (s *stateDBAdapter) SetState(addr common.Address, key, value common.Hash) {
	s.inner.SetState(addr, key, value)
}

func (s *stateDBAdapter) GetNonce(addr common.Address) uint64 { return s.inner.GetNonce(addr) }

func (s *stateDBAdapter) Exist(addr common.Address) bool { return s.inner.Exist(addr) }

func (s *stateDBAdapter) Snapshot() int { return s.inner.Snapshot() }

func (s *stateDBAdapter) RevertToSnapshot(id int) { s.inner.RevertToSnapshot(id) }

// blockContextAdapter adapts the framework's vm.PrecompileEnvironment to
// contract.BlockContext.
type blockContextAdapter struct {
	env gethvm.PrecompileEnvironment
}

func (b *blockContextAdapter) BlockNumber() *big.Int { return b.env.BlockNumber() }
