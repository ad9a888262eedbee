// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package tokenduality implements the Token-Duality precompile (C1): a
// stateful precompile exposing the chain's native balance as an
// ERC-20-shaped transfer primitive, dispatched at a fixed address instead of
// through deployed bytecode.
package tokenduality

import (
	"math/big"
	"sync"

	"github.com/andelabs/ande-core/metrics"
	"github.com/andelabs/ande-core/precompile/allowlist"
	"github.com/andelabs/ande-core/precompile/contract"
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

// ContractAddress is the reserved address the precompile is dispatched at
// 0x…00FD.
var ContractAddress = common.HexToAddress("0x00000000000000000000000000000000000000FD")

// GasCost is the fixed gas charge for a successful or precondition-failing
// call that reaches the gas check: 3000 base + 100 per 32-byte input word,
// 3 words (from, to, value) = 3300.
const GasCost uint64 = 3300

// TokenDuality is the stateful precompile singleton. Its policy fields are
// set once at startup as process-wide immutable state; the
// per-block cap counter is the only mutable state it carries, and block
// execution serializes writers to it.
type TokenDuality struct {
	admin       *common.Address
	perCallCap  *big.Int
	perBlockCap *big.Int

	mu           sync.Mutex
	capBlock     uint64
	capBlockSeen bool
	capSpent     *big.Int
}

var _ contract.StatefulPrecompiledContract = (*TokenDuality)(nil)

// New constructs a TokenDuality precompile with the given admin and
// per-call / per-block caps (nil means no admin, or no cap). The registered
// Precompile singleton is built with all three nil and takes its policy only
// from the module's Configure; the ANDE_ADMIN_ADDRESS / ANDE_PER_CALL_CAP /
// ANDE_PER_BLOCK_CAP values that config.Load resolves are not passed to it.
func New(admin *common.Address, perCallCap, perBlockCap *big.Int) *TokenDuality {
	return &TokenDuality{
		admin:       admin,
		perCallCap:  perCallCap,
		perBlockCap: perBlockCap,
		capSpent:    new(big.Int),
	}
}

// Precompile is the process-wide singleton instance registered into the
// EVM factory's precompile map (C2). Tests construct their own instances via
// New so cap/allowlist configuration can vary per test.
var Precompile = New(nil, nil, nil)

// Run implements contract.StatefulPrecompiledContract. Preconditions are
// checked in a fixed order and each fails immediately.
func (t *TokenDuality) Run(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	defer func() { metrics.RecordPrecompileCall(callOutcome(err)) }()

	// 1. Static-call rejection.
	if readOnly {
		return nil, suppliedGas, ErrStaticCall
	}

	// 2. Input length.
	if len(input) != 96 {
		return nil, suppliedGas, ErrInvalidInputLength
	}

	// 3. Gas check, charged before any side effect.
	if suppliedGas < GasCost {
		return nil, suppliedGas, ErrInsufficientGas
	}
	remainingGas = suppliedGas - GasCost

	from := common.BytesToAddress(input[0:32])
	to := common.BytesToAddress(input[32:64])
	value := new(big.Int).SetBytes(input[64:96])

	// 4. Zero-destination rejection.
	if to == (common.Address{}) {
		return nil, remainingGas, ErrZeroDestination
	}

	state := accessibleState.GetStateDB()

	if allowlist.IsEnabled(ContractAddress, state) {
		if !allowlist.IsMember(ContractAddress, from, state) || !allowlist.IsMember(ContractAddress, to, state) {
			return nil, remainingGas, ErrNotAllowlisted
		}
	}

	if t.perCallCap != nil && value.Cmp(t.perCallCap) > 0 {
		return nil, remainingGas, ErrCapExceeded
	}

	blockNumber := accessibleState.GetBlockContext().BlockNumber()
	if t.perBlockCap != nil {
		if err := t.chargeBlockCap(blockNumber, value); err != nil {
			return nil, remainingGas, err
		}
	}

	// 5. Zero-value shortcut: charge gas, succeed, skip the journal touch.
	if value.Sign() == 0 {
		return successReturnData(), remainingGas, nil
	}

	valueU256, overflow := uint256.FromBig(value)
	if overflow {
		return nil, remainingGas, ErrInsufficientBalance
	}

	snapshot := state.Snapshot()
	if err := state.SubBalance(from, valueU256); err != nil {
		state.RevertToSnapshot(snapshot)
		return nil, remainingGas, ErrInsufficientBalance
	}
	if err := state.AddBalance(to, valueU256); err != nil {
		state.RevertToSnapshot(snapshot)
		return nil, remainingGas, err
	}

	return successReturnData(), remainingGas, nil
}

// successReturnData is the single byte 0x01 left-padded to a 32-byte EVM
// return word.
func successReturnData() []byte {
	out := make([]byte, 32)
	out[31] = 0x01
	return out
}

// chargeBlockCap accumulates [value] against the configured per-block cap,
// resetting the counter on block-number change (the counter is
// global across callers, not per-account — see DESIGN.md for why that
// resolution of the open question was chosen).
func (t *TokenDuality) chargeBlockCap(blockNumber *big.Int, value *big.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := blockNumber.Uint64()
	if !t.capBlockSeen || n != t.capBlock {
		t.capBlock = n
		t.capBlockSeen = true
		t.capSpent.SetInt64(0)
	}

	next := new(big.Int).Add(t.capSpent, value)
	if next.Cmp(t.perBlockCap) > 0 {
		return ErrCapExceeded
	}
	t.capSpent = next
	return nil
}

// AdminSetMember allows the configured admin to toggle allowlist membership
// via a dedicated path distinct from the raw 96-byte transfer shape. Not
// reachable through Run's raw transfer input; wired by an implementer that
// multiplexes selectors, kept here as the canonical non-transfer admin
// operation the precompile exposes.
func (t *TokenDuality) AdminSetMember(accessibleState contract.AccessibleState, caller, who common.Address, member bool) error {
	if t.admin == nil || caller != *t.admin {
		return ErrNotAdmin
	}
	allowlist.SetMember(ContractAddress, who, member, accessibleState.GetStateDB())
	return nil
}
