// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package allowlist is a shared role-based access primitive that any
// precompile can embed in its Config. Roles are persisted as 32-byte storage
// slots under the precompile's own address so that they survive restarts
// and are queryable via eth_getStorageAt like any other contract storage.
package allowlist

import (
	"fmt"

	"github.com/andelabs/ande-core/precompile/precompileconfig"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/luxfi/geth/common"
)

// Role is a role a address can hold with respect to an allowlisted
// precompile.
type Role byte

const (
	// RoleNone means the address has no special permissions.
	RoleNone Role = iota
	// RoleMember means the address passes the allowlist check.
	RoleMember
	// RoleAdmin means the address may additionally modify the allowlist.
	RoleAdmin
)

// storage slot layout, mirroring the reserved metadata range carved out in
// the genesis layout: slot 0 is the enabled flag, slot 1 is the
// admin address, slots >= 2 are reserved should additional roles be added.
var (
	enabledSlot = common.Hash{31: 0x00}
	adminSlot   = common.Hash{31: 0x01}
)

// AllowListConfig is the JSON-embeddable configuration for the allowlist:
// whether it is enforced at all, the initial admin, and initial members.
type AllowListConfig struct {
	Enabled bool             `json:"enabled"`
	Admin   *common.Address  `json:"admin,omitempty"`
	Members []common.Address `json:"members,omitempty"`
}

// Equal reports whether two AllowListConfigs are identical.
func (c *AllowListConfig) Equal(other *AllowListConfig) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.Enabled != other.Enabled {
		return false
	}
	if (c.Admin == nil) != (other.Admin == nil) {
		return false
	}
	if c.Admin != nil && *c.Admin != *other.Admin {
		return false
	}
	return memberSet(c.Members).Equal(memberSet(other.Members))
}

// memberSet treats a member list as the unordered set it actually represents
// on-chain: two configs listing the same members in different orders are
// the same allowlist.
func memberSet(members []common.Address) mapset.Set[common.Address] {
	return mapset.NewThreadUnsafeSet(members...)
}

// Verify validates the config: an enabled allowlist requires an admin.
func (c *AllowListConfig) Verify(_ precompileconfig.ChainConfig, _ precompileconfig.Upgrade) error {
	if c.Enabled && c.Admin == nil {
		return fmt.Errorf("allowlist enabled but no admin configured")
	}
	return nil
}

// StateWriter is the minimal state mutation surface Configure needs; it is
// satisfied by contract.StateDB.
type StateWriter interface {
	SetState(common.Address, common.Hash, common.Hash)
}

// Configure persists [c] into [address]'s reserved storage slots. Called
// once at precompile activation (genesis, or an upgrade boundary).
func (c *AllowListConfig) Configure(address common.Address, state StateWriter) error {
	if c.Enabled {
		state.SetState(address, enabledSlot, common.Hash{31: 0x01})
	}
	if c.Admin != nil {
		var h common.Hash
		copy(h[12:], c.Admin.Bytes())
		state.SetState(address, adminSlot, h)
	}
	for _, m := range c.Members {
		state.SetState(address, memberSlot(m), common.Hash{31: 0x01})
	}
	return nil
}

// memberSlot derives the storage slot a given address's membership flag is
// stored at: keccak-free, address-keyed by direct byte embedding since the
// allowlist population here is small and enumerable (unlike a general ERC-20
// balance mapping, which would need a real hashed-slot scheme).
func memberSlot(addr common.Address) common.Hash {
	var h common.Hash
	h[0] = 0x4d // 'M' marker byte distinguishes member slots from enabled/admin slots
	copy(h[12:], addr.Bytes())
	return h
}

// IsEnabled reports whether the allowlist is enforced, reading back from
// state rather than trusting the in-memory Config (so that it reflects any
// on-chain admin changes made after genesis).
func IsEnabled(address common.Address, state interface {
	GetState(common.Address, common.Hash) common.Hash
}) bool {
	return state.GetState(address, enabledSlot) != (common.Hash{})
}

// IsMember reports whether addr currently holds RoleMember or higher.
func IsMember(address common.Address, addr common.Address, state interface {
	GetState(common.Address, common.Hash) common.Hash
}) bool {
	if IsAdmin(address, addr, state) {
		return true
	}
	return state.GetState(address, memberSlot(addr)) != (common.Hash{})
}

// IsAdmin reports whether addr is the configured allowlist admin.
func IsAdmin(address common.Address, addr common.Address, state interface {
	GetState(common.Address, common.Hash) common.Hash
}) bool {
	stored := state.GetState(address, adminSlot)
	var want common.Hash
	copy(want[12:], addr.Bytes())
	return stored == want
}

// SetMember grants or revokes membership. Only callable by the admin; the
// caller is responsible for that check (see tokenduality's admin-selector
// handling).
func SetMember(address common.Address, addr common.Address, member bool, state StateWriter) {
	slot := memberSlot(addr)
	if member {
		state.SetState(address, slot, common.Hash{31: 0x01})
	} else {
		state.SetState(address, slot, common.Hash{})
	}
}
