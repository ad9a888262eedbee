// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import (
	"sync"

	blst "github.com/supranational/blst/bindings/go"
	"github.com/luxfi/geth/common"
)

// minPK is the min-pubkey-size BLS12-381 ciphersuite: G1 public keys, G2
// signatures. This is the variant the Ethereum consensus stack uses, which
// is why it is the one wired here.
type minPK = blst.P1Affine

// Attestation is one validator's signature over a block hash. It carries no
// weight; AttestationSet.Weight looks weights up in a ValidatorSet.
type Attestation struct {
	Validator common.Address
	Signature *blst.P2Affine
}

// AttestationSet accumulates per-block attestations and answers the single
// yes/no query header validation needs: does the aggregated weight behind
// [blockHash] clear the BFT threshold.
type AttestationSet struct {
	mu      sync.Mutex
	byBlock map[common.Hash]map[common.Address]*blst.P2Affine
}

// NewAttestationSet returns an empty attestation tracker.
func NewAttestationSet() *AttestationSet {
	return &AttestationSet{byBlock: make(map[common.Hash]map[common.Address]*blst.P2Affine)}
}

// Add records a validator's BLS signature over blockHash. Signature
// validity against the validator's registered public key is the caller's
// responsibility (via VerifySignature) before calling Add.
func (a *AttestationSet) Add(blockHash common.Hash, validator common.Address, sig *blst.P2Affine) {
	a.mu.Lock()
	defer a.mu.Unlock()
	m, ok := a.byBlock[blockHash]
	if !ok {
		m = make(map[common.Address]*blst.P2Affine)
		a.byBlock[blockHash] = m
	}
	m[validator] = sig
}

// Weight returns the combined weight of validators that have attested to
// blockHash, evaluated against [set].
func (a *AttestationSet) Weight(blockHash common.Hash, set *ValidatorSet) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	var total uint64
	for addr := range a.byBlock[blockHash] {
		if v, ok := set.Get(addr); ok && v.Active {
			total += v.Weight
		}
	}
	return total
}

// Threshold is the minimum attested weight required for a block to be
// considered finalized by the overlay: strictly more than two-thirds of
// total active weight.
func Threshold(totalActiveWeight uint64) uint64 {
	return 2*totalActiveWeight/3 + 1
}

// MeetsThreshold reports whether blockHash's aggregated attestation weight
// clears the BFT threshold for [set].
func (a *AttestationSet) MeetsThreshold(blockHash common.Hash, set *ValidatorSet) bool {
	return a.Weight(blockHash, set) >= Threshold(set.TotalActiveWeight())
}

// VerifySignature checks a single BLS signature against a validator's
// min-pubkey-size public key over blockHash, using it as the domain-
// separated message.
func VerifySignature(pubKey []byte, blockHash common.Hash, sig *blst.P2Affine) bool {
	var pk minPK
	if pk.Deserialize(pubKey) == nil {
		return false
	}
	return sig.Verify(true, &pk, true, blockHash.Bytes(), nil)
}

// AggregateSignatures combines multiple validator signatures over the same
// message into a single aggregate signature, avoiding O(n) individual
// verification on the hot header-validation path.
func AggregateSignatures(sigs []*blst.P2Affine) *blst.P2Affine {
	if len(sigs) == 0 {
		return nil
	}
	agg := new(blst.P2Aggregate)
	agg.Aggregate(sigs, false)
	return agg.ToAffine()
}
