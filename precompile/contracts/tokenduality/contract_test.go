// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tokenduality

import (
	"math/big"
	"testing"

	"github.com/andelabs/ande-core/precompile/allowlist"
	"github.com/andelabs/ande-core/precompile/contract"
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"
)

// fakeStateDB is a minimal in-memory contract.StateDB sufficient to drive
// the precompile's Run method without a full EVM.
type fakeStateDB struct {
	balances  map[common.Address]*uint256.Int
	storage   map[common.Address]map[common.Hash]common.Hash
	snapshots []map[common.Address]*uint256.Int
}

func newFakeStateDB() *fakeStateDB {
	return &fakeStateDB{
		balances: make(map[common.Address]*uint256.Int),
		storage:  make(map[common.Address]map[common.Hash]common.Hash),
	}
}

func (s *fakeStateDB) GetBalance(addr common.Address) *uint256.Int {
	if b, ok := s.balances[addr]; ok {
		return b.Clone()
	}
	return uint256.NewInt(0)
}

func (s *fakeStateDB) AddBalance(addr common.Address, amount *uint256.Int) error {
	s.balances[addr] = new(uint256.Int).Add(s.GetBalance(addr), amount)
	return nil
}

func (s *fakeStateDB) SubBalance(addr common.Address, amount *uint256.Int) error {
	bal := s.GetBalance(addr)
	if bal.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	s.balances[addr] = new(uint256.Int).Sub(bal, amount)
	return nil
}

func (s *fakeStateDB) GetState(addr common.Address, slot common.Hash) common.Hash {
	if m, ok := s.storage[addr]; ok {
		return m[slot]
	}
	return common.Hash{}
}

func (s *fakeStateDB) SetState(addr common.Address, slot common.Hash, val common.Hash) {
	m, ok := s.storage[addr]
	if !ok {
		m = make(map[common.Hash]common.Hash)
		s.storage[addr] = m
	}
	m[slot] = val
}

func (s *fakeStateDB) GetNonce(common.Address) uint64 { return 0 }
func (s *fakeStateDB) Exist(addr common.Address) bool { _, ok := s.balances[addr]; return ok }

func (s *fakeStateDB) Snapshot() int {
	clone := make(map[common.Address]*uint256.Int, len(s.balances))
	for k, v := range s.balances {
		clone[k] = v.Clone()
	}
	s.snapshots = append(s.snapshots, clone)
	return len(s.snapshots) - 1
}

func (s *fakeStateDB) RevertToSnapshot(id int) {
	s.balances = s.snapshots[id]
	s.snapshots = s.snapshots[:id]
}

type fakeBlockContext struct{ number *big.Int }

func (b fakeBlockContext) BlockNumber() *big.Int { return b.number }

type fakeAccessibleState struct {
	state contract.StateDB
	block contract.BlockContext
}

func (f fakeAccessibleState) GetStateDB() contract.StateDB        { return f.state }
func (f fakeAccessibleState) GetBlockContext() contract.BlockContext { return f.block }

func newAccessibleState(state contract.StateDB, blockNumber int64) contract.AccessibleState {
	return fakeAccessibleState{state: state, block: fakeBlockContext{number: big.NewInt(blockNumber)}}
}

var (
	alice = common.HexToAddress("0x0000000000000000000000000000000000A11CE")
	bob   = common.HexToAddress("0x0000000000000000000000000000000000000B0B")
)

func transferInput(from, to common.Address, value *big.Int) []byte {
	input := make([]byte, 96)
	copy(input[0:32], from.Hash().Bytes())
	copy(input[32:64], to.Hash().Bytes())
	value.FillBytes(input[64:96])
	return input
}

func TestRunGasExactness(t *testing.T) {
	state := newFakeStateDB()
	require.NoError(t, state.AddBalance(alice, uint256.NewInt(100)))
	tc := New(nil, nil, nil)

	_, remaining, err := tc.Run(newAccessibleState(state, 1), alice, ContractAddress, transferInput(alice, bob, big.NewInt(10)), GasCost+500, false)
	require.NoError(t, err)
	require.Equal(t, uint64(500), remaining)
}

func TestRunConservativeTransfer(t *testing.T) {
	state := newFakeStateDB()
	require.NoError(t, state.AddBalance(alice, uint256.NewInt(100)))
	tc := New(nil, nil, nil)

	_, _, err := tc.Run(newAccessibleState(state, 1), alice, ContractAddress, transferInput(alice, bob, big.NewInt(40)), GasCost, false)
	require.NoError(t, err)
	require.Equal(t, uint256.NewInt(60), state.GetBalance(alice))
	require.Equal(t, uint256.NewInt(40), state.GetBalance(bob))
}

func TestRunRevertOnInsufficientBalanceLeavesNoTrace(t *testing.T) {
	state := newFakeStateDB()
	require.NoError(t, state.AddBalance(alice, uint256.NewInt(5)))
	tc := New(nil, nil, nil)

	_, _, err := tc.Run(newAccessibleState(state, 1), alice, ContractAddress, transferInput(alice, bob, big.NewInt(10)), GasCost, false)
	require.ErrorIs(t, err, ErrInsufficientBalance)
	require.Equal(t, uint256.NewInt(5), state.GetBalance(alice))
	require.Equal(t, uint256.NewInt(0), state.GetBalance(bob))
}

func TestRunStaticCallRejected(t *testing.T) {
	state := newFakeStateDB()
	tc := New(nil, nil, nil)

	_, remaining, err := tc.Run(newAccessibleState(state, 1), alice, ContractAddress, transferInput(alice, bob, big.NewInt(1)), GasCost, true)
	require.ErrorIs(t, err, ErrStaticCall)
	require.Equal(t, GasCost, remaining, "static-call rejection must not charge gas")
}

func TestRunZeroValueShortcutSkipsJournal(t *testing.T) {
	state := newFakeStateDB()
	tc := New(nil, nil, nil)

	ret, remaining, err := tc.Run(newAccessibleState(state, 1), alice, ContractAddress, transferInput(alice, bob, big.NewInt(0)), GasCost, false)
	require.NoError(t, err)
	require.Equal(t, uint64(0), remaining)
	require.Equal(t, successReturnData(), ret)
	require.Empty(t, state.snapshots, "zero-value transfer must not touch the journal")
}

func TestRunZeroDestinationRejected(t *testing.T) {
	state := newFakeStateDB()
	tc := New(nil, nil, nil)

	_, _, err := tc.Run(newAccessibleState(state, 1), alice, ContractAddress, transferInput(alice, common.Address{}, big.NewInt(1)), GasCost, false)
	require.ErrorIs(t, err, ErrZeroDestination)
}

func TestRunSelfTransferSucceeds(t *testing.T) {
	state := newFakeStateDB()
	require.NoError(t, state.AddBalance(alice, uint256.NewInt(100)))
	tc := New(nil, nil, nil)

	_, _, err := tc.Run(newAccessibleState(state, 1), alice, ContractAddress, transferInput(alice, alice, big.NewInt(30)), GasCost, false)
	require.NoError(t, err)
	require.Equal(t, uint256.NewInt(100), state.GetBalance(alice))
}

func TestRunInvalidInputLengths(t *testing.T) {
	for _, n := range []int{0, 95, 97, 128} {
		n := n
		t.Run("", func(t *testing.T) {
			state := newFakeStateDB()
			tc := New(nil, nil, nil)
			_, remaining, err := tc.Run(newAccessibleState(state, 1), alice, ContractAddress, make([]byte, n), GasCost, false)
			require.ErrorIs(t, err, ErrInvalidInputLength)
			require.Equal(t, GasCost, remaining)
		})
	}
}

func TestRunInsufficientGas(t *testing.T) {
	state := newFakeStateDB()
	tc := New(nil, nil, nil)
	_, remaining, err := tc.Run(newAccessibleState(state, 1), alice, ContractAddress, transferInput(alice, bob, big.NewInt(1)), GasCost-1, false)
	require.ErrorIs(t, err, ErrInsufficientGas)
	require.Equal(t, GasCost-1, remaining)
}

func TestRunPerCallCapExceeded(t *testing.T) {
	state := newFakeStateDB()
	require.NoError(t, state.AddBalance(alice, uint256.NewInt(1000)))
	tc := New(nil, big.NewInt(50), nil)

	_, _, err := tc.Run(newAccessibleState(state, 1), alice, ContractAddress, transferInput(alice, bob, big.NewInt(51)), GasCost, false)
	require.ErrorIs(t, err, ErrCapExceeded)
}

func TestRunPerBlockCapResetsAcrossBlocks(t *testing.T) {
	state := newFakeStateDB()
	require.NoError(t, state.AddBalance(alice, uint256.NewInt(1000)))
	tc := New(nil, nil, big.NewInt(100))

	_, _, err := tc.Run(newAccessibleState(state, 1), alice, ContractAddress, transferInput(alice, bob, big.NewInt(80)), GasCost, false)
	require.NoError(t, err)

	_, _, err = tc.Run(newAccessibleState(state, 1), alice, ContractAddress, transferInput(alice, bob, big.NewInt(30)), GasCost, false)
	require.ErrorIs(t, err, ErrCapExceeded, "second transfer in same block should push spend past the cap")

	_, _, err = tc.Run(newAccessibleState(state, 2), alice, ContractAddress, transferInput(alice, bob, big.NewInt(30)), GasCost, false)
	require.NoError(t, err, "cap counter resets on a new block number")
}

func TestRunAllowlistGating(t *testing.T) {
	state := newFakeStateDB()
	require.NoError(t, state.AddBalance(alice, uint256.NewInt(1000)))
	admin := common.HexToAddress("0x00000000000000000000000000000000000AD1")
	cfg := allowlist.AllowListConfig{Enabled: true, Admin: &admin, Members: []common.Address{alice}}
	require.NoError(t, cfg.Configure(ContractAddress, state))

	tc := New(nil, nil, nil)
	_, _, err := tc.Run(newAccessibleState(state, 1), alice, ContractAddress, transferInput(alice, bob, big.NewInt(1)), GasCost, false)
	require.ErrorIs(t, err, ErrNotAllowlisted, "bob is not a member")

	allowlist.SetMember(ContractAddress, bob, true, state)
	_, _, err = tc.Run(newAccessibleState(state, 1), alice, ContractAddress, transferInput(alice, bob, big.NewInt(1)), GasCost, false)
	require.NoError(t, err)
}

func TestAdminSetMemberRequiresAdmin(t *testing.T) {
	state := newFakeStateDB()
	admin := alice
	tc := New(&admin, nil, nil)

	err := tc.AdminSetMember(newAccessibleState(state, 1), bob, bob, true)
	require.ErrorIs(t, err, ErrNotAdmin)

	err = tc.AdminSetMember(newAccessibleState(state, 1), alice, bob, true)
	require.NoError(t, err)
	require.True(t, allowlist.IsMember(ContractAddress, bob, state))
}
