// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package contract defines the interfaces a stateful precompiled contract
// needs against the executing EVM: access to the journaled state database,
// the block context it is running in, and its own gas/return-data contract
// with the interpreter.
package contract

import (
	"math/big"

	"github.com/andelabs/ande-core/precompile/precompileconfig"
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

// StateDB is the subset of the EVM's journaled state that precompiles are
// allowed to touch. Every mutation goes through the active transaction's
// journal so that a revert of the calling frame undoes it.
type StateDB interface {
	GetBalance(common.Address) *uint256.Int
	AddBalance(common.Address, *uint256.Int) error
	SubBalance(common.Address, *uint256.Int) error

	GetState(common.Address, common.Hash) common.Hash
	SetState(common.Address, common.Hash, common.Hash)

	GetNonce(common.Address) uint64
	Exist(common.Address) bool

	Snapshot() int
	RevertToSnapshot(int)
}

// BlockContext exposes the subset of block metadata available to a
// precompile: the number is needed for per-block accounting (e.g. a
// per-block cap), nothing else is required on the hot path.
type BlockContext interface {
	BlockNumber() *big.Int
}

// ConfigurationBlockContext is passed to a Configurator at precompile
// activation time (i.e. genesis or an upgrade boundary), separate from
// BlockContext because activation runs outside of any single transaction.
type ConfigurationBlockContext interface {
	Number() *big.Int
	Timestamp() uint64
}

// AccessibleState is what a StatefulPrecompiledContract's Run method
// receives: the journaled state plus the block it is executing in.
type AccessibleState interface {
	GetStateDB() StateDB
	GetBlockContext() BlockContext
}

// StatefulPrecompiledContract is the interface implemented by precompiles
// that need access to the executing EVM's journaled state, as opposed to
// pure stateless precompiles (ecrecover, the hash functions, ...).
type StatefulPrecompiledContract interface {
	// Run executes the precompile. readOnly is true inside a STATICCALL (or
	// any call frame nested under one); implementations that mutate state
	// MUST fail when readOnly is true.
	Run(accessibleState AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error)
}

// Configurator configures a freshly-activated precompile's state (e.g.
// seeding an allowlist) from its JSON-decoded Config. Called once per
// activation, never on the hot path.
type Configurator interface {
	MakeConfig() precompileconfig.Config
	Configure(chainConfig precompileconfig.ChainConfig, cfg precompileconfig.Config, state StateDB, blockContext ConfigurationBlockContext) error
}
