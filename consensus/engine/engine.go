// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/luxfi/geth/common"
)

// Engine is the mutable handle around an immutable ValidatorSet snapshot.
// Readers (Snapshot, the attestation-threshold check) take a shared snapshot
// via an atomic pointer load — no lock contention on the hot path. Writers
// (registration, slashing, epoch transitions) serialize through writeMu and
// publish a new snapshot with a single atomic store.
//
// Proposer selection is the one exception among queries: ExpectedProposer
// advances the running priority tally on every call, so it is a writer and
// takes writeMu. Concurrent calls are serialized by that lock but in no
// defined order; the importer calls it once per block in block-number
// order, matching the framework's own single-threaded block import.
type Engine struct {
	current atomic.Pointer[ValidatorSet]
	writeMu sync.Mutex

	attestations *AttestationSet
	epochStart   time.Time
}

// New constructs an Engine with an empty validator set.
func New() *Engine {
	e := &Engine{attestations: NewAttestationSet(), epochStart: time.Now()}
	e.current.Store(NewValidatorSet())
	return e
}

// Snapshot returns the current immutable validator set. Safe for concurrent
// use; the returned value is never mutated in place.
func (e *Engine) Snapshot() *ValidatorSet {
	return e.current.Load()
}

// RegisterValidator adds or updates a validator, publishing a new snapshot.
func (e *Engine) RegisterValidator(addr common.Address, weight uint64) {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	e.current.Store(e.current.Load().Register(addr, weight))
}

// UpdatePower adjusts an active validator's weight.
func (e *Engine) UpdatePower(addr common.Address, newWeight uint64) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	next, err := e.current.Load().UpdatePower(addr, newWeight)
	if err != nil {
		return err
	}
	e.current.Store(next)
	return nil
}

// SlashDowntime jails addr and reduces its stake by 5%.
func (e *Engine) SlashDowntime(addr common.Address) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	next, err := e.current.Load().SlashDowntime(addr)
	if err != nil {
		return err
	}
	e.current.Store(next)
	return nil
}

// Unjail restores a jailed validator. Callers must enforce their own
// administrative-authority check before invoking this.
func (e *Engine) Unjail(addr common.Address) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	next, err := e.current.Load().Unjail(addr)
	if err != nil {
		return err
	}
	e.current.Store(next)
	return nil
}

// TryAdvanceEpoch advances the epoch if EpochPeriod has elapsed since the
// last successful advance (or engine construction).
func (e *Engine) TryAdvanceEpoch() error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	elapsed := time.Since(e.epochStart)
	next, err := e.current.Load().TryAdvanceEpoch(elapsed, EpochPeriod)
	if err != nil {
		return err
	}
	e.current.Store(next)
	e.epochStart = time.Now()
	return nil
}

// ExpectedProposer runs one round of proposer selection and durably applies
// the resulting priority update. Must be called once per block, in
// block-number order; see the Engine doc comment on serialization.
func (e *Engine) ExpectedProposer() (common.Address, error) {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	addr, next, err := e.current.Load().ProposeNext()
	if err != nil {
		return common.Address{}, err
	}
	e.current.Store(next)
	return addr, nil
}

// AttestationMeetsThreshold reports whether blockHash has accumulated
// enough validator weight to clear the BFT threshold against the current
// snapshot.
func (e *Engine) AttestationMeetsThreshold(blockHash common.Hash) bool {
	return e.attestations.MeetsThreshold(blockHash, e.Snapshot())
}

// Attestations exposes the underlying AttestationSet for callers that need
// to record signatures directly (e.g. a p2p gossip handler).
func (e *Engine) Attestations() *AttestationSet { return e.attestations }
