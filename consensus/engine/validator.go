// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package engine implements the validator set, weighted proposer rotation,
// attestation-threshold check and downtime slashing that back the BFT
// consensus overlay. It is a sibling library consumed by consensus/bft, not
// a consensus.Engine implementation itself — it holds no opinion about
// header verification beyond the single yes/no queries the overlay needs.
package engine

import (
	"bytes"
	"sort"

	"github.com/luxfi/geth/common"
)

// Validator is one member of the weighted proposer set.
type Validator struct {
	Address common.Address
	Weight  uint64
	Active  bool
	Jailed  bool

	// stake backs Weight when the validator is active; it survives a
	// slash even after the validator is jailed, so Unjail can restore a
	// reduced weight instead of the original one.
	stake uint64
}

func (v *Validator) clone() *Validator {
	c := *v
	return &c
}

// ValidatorSet is an immutable snapshot of the validator population plus
// the running proposer-priority tally. A new snapshot replaces the old one
// wholesale on every mutation (registration, slash, power update, epoch
// transition); readers never observe a partially-updated set.
type ValidatorSet struct {
	validators        map[common.Address]*Validator
	priority          map[common.Address]int64
	totalActiveWeight uint64
	epoch             uint64
}

// NewValidatorSet returns an empty set at epoch 0.
func NewValidatorSet() *ValidatorSet {
	return &ValidatorSet{
		validators: make(map[common.Address]*Validator),
		priority:   make(map[common.Address]int64),
	}
}

func (s *ValidatorSet) clone() *ValidatorSet {
	c := &ValidatorSet{
		validators:        make(map[common.Address]*Validator, len(s.validators)),
		priority:          make(map[common.Address]int64, len(s.priority)),
		totalActiveWeight: s.totalActiveWeight,
		epoch:             s.epoch,
	}
	for addr, v := range s.validators {
		c.validators[addr] = v.clone()
	}
	for addr, p := range s.priority {
		c.priority[addr] = p
	}
	return c
}

// Get returns the validator at addr, if any.
func (s *ValidatorSet) Get(addr common.Address) (Validator, bool) {
	v, ok := s.validators[addr]
	if !ok {
		return Validator{}, false
	}
	return *v, true
}

// TotalActiveWeight is the sum of weight across all active validators.
func (s *ValidatorSet) TotalActiveWeight() uint64 { return s.totalActiveWeight }

// Epoch is the current epoch number.
func (s *ValidatorSet) Epoch() uint64 { return s.epoch }

// Active returns the active validators sorted by address, for deterministic
// iteration (used by ProposeNext's priority-bump and selection passes).
func (s *ValidatorSet) Active() []Validator {
	out := make([]Validator, 0, len(s.validators))
	for _, v := range s.validators {
		if v.Active {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].Address.Bytes(), out[j].Address.Bytes()) < 0
	})
	return out
}

// Register adds a new validator active with the given weight, or updates
// the weight of one already registered (idempotent, update-or-insert).
// priority starts at 0 for a never-seen address; an existing validator's
// running priority is left untouched.
func (s *ValidatorSet) Register(addr common.Address, weight uint64) *ValidatorSet {
	next := s.clone()
	if existing, ok := next.validators[addr]; ok {
		next.totalActiveWeight -= activeWeight(existing)
		existing.Weight = weight
		existing.stake = weight
		existing.Active = true
		existing.Jailed = false
		next.totalActiveWeight += weight
		return next
	}
	next.validators[addr] = &Validator{Address: addr, Weight: weight, stake: weight, Active: true}
	next.priority[addr] = 0
	next.totalActiveWeight += weight
	return next
}

func activeWeight(v *Validator) uint64 {
	if v.Active {
		return v.Weight
	}
	return 0
}

// UpdatePower adjusts an active validator's weight, recomputing the set's
// total active weight. Fails if the validator is unknown or inactive.
func (s *ValidatorSet) UpdatePower(addr common.Address, newWeight uint64) (*ValidatorSet, error) {
	v, ok := s.validators[addr]
	if !ok {
		return nil, ErrUnknownValidator
	}
	if !v.Active {
		return nil, ErrValidatorInactive
	}
	next := s.clone()
	nv := next.validators[addr]
	next.totalActiveWeight = next.totalActiveWeight - nv.Weight + newWeight
	nv.Weight = newWeight
	nv.stake = newWeight
	return next, nil
}
