// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package precompileconfig defines the configuration contract every
// precompile module must satisfy: a JSON-decodable, upgrade-scheduled,
// equality-comparable config object. Kept dependency-free of
// precompile/contract so that both packages can import it without a cycle.
package precompileconfig

import "math/big"

// ChainConfig is the subset of the chain's configuration a precompile's
// Config needs to validate itself against (fork schedule, chain id).
type ChainConfig interface {
	ChainID() *big.Int
	IsDurango(timestamp uint64) bool
}

// Upgrade carries the block-timestamp at which a precompile activates or is
// disabled, shared by every precompile config via embedding.
type Upgrade struct {
	BlockTimestamp *uint64 `json:"blockTimestamp"`
	Disable        bool    `json:"disable,omitempty"`
}

// Timestamp returns the activation timestamp, or nil if unset.
func (u *Upgrade) Timestamp() *uint64 { return u.BlockTimestamp }

// IsDisabled reports whether this upgrade entry disables the precompile.
func (u *Upgrade) IsDisabled() bool { return u.Disable }

// Equal reports whether two Upgrades activate/disable at the same point.
func (u *Upgrade) Equal(other *Upgrade) bool {
	if u == nil || other == nil {
		return u == other
	}
	if u.Disable != other.Disable {
		return false
	}
	switch {
	case u.BlockTimestamp == nil && other.BlockTimestamp == nil:
		return true
	case u.BlockTimestamp == nil || other.BlockTimestamp == nil:
		return false
	default:
		return *u.BlockTimestamp == *other.BlockTimestamp
	}
}

// Config is the interface every precompile's JSON configuration type must
// implement so the registry can validate and compare it uninterpreted.
type Config interface {
	// Key returns the registry key this config was registered under.
	Key() string
	// IsDisabled reports whether this config disables the precompile at its
	// activation point.
	IsDisabled() bool
	// Timestamp returns the activation timestamp of this config, or nil if
	// it activates at genesis.
	Timestamp() *uint64
	// Verify validates the config is well formed given the chain it is
	// being loaded into.
	Verify(chainConfig ChainConfig) error
	// Equal reports whether this config is identical to another.
	Equal(Config) bool
}
