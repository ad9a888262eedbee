// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import "github.com/luxfi/geth/common"

// downtimeSlashPercent is the fraction of stake removed on a downtime
// slash, expressed as a whole-number percentage.
const downtimeSlashPercent = 5

// SlashDowntime penalizes addr for missing its proposer/attestation duty:
// reduces its stake by 5%, jails it, and deactivates it. total active
// weight drops accordingly. Idempotent only in the sense that slashing an
// already-jailed validator further reduces its (inactive) stake — callers
// should check Jailed first if that is not desired.
func (s *ValidatorSet) SlashDowntime(addr common.Address) (*ValidatorSet, error) {
	_, ok := s.validators[addr]
	if !ok {
		return nil, ErrUnknownValidator
	}

	next := s.clone()
	nv := next.validators[addr]
	if nv.Active {
		next.totalActiveWeight -= nv.Weight
	}
	slashAmount := nv.stake * downtimeSlashPercent / 100
	nv.stake -= slashAmount
	nv.Weight = nv.stake
	nv.Jailed = true
	nv.Active = false
	return next, nil
}

// Unjail restores a jailed validator to active status with weight equal to
// its remaining (post-slash) stake. Only callable through an administrative
// capability — the caller is responsible for that authorization check.
func (s *ValidatorSet) Unjail(addr common.Address) (*ValidatorSet, error) {
	v, ok := s.validators[addr]
	if !ok {
		return nil, ErrUnknownValidator
	}
	if !v.Jailed {
		return nil, ErrNotJailed
	}

	next := s.clone()
	nv := next.validators[addr]
	nv.Jailed = false
	nv.Active = true
	nv.Weight = nv.stake
	next.totalActiveWeight += nv.Weight
	return next, nil
}
