// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import (
	"bytes"

	"github.com/luxfi/geth/common"
)

// ProposeNext runs one round of the weighted round-robin priority-queue
// discipline and returns the selected proposer along with the resulting
// snapshot (priority bookkeeping mutates, so the caller must swap its
// pointer to the returned set to make the selection durable).
//
// Algorithm: bump every active validator's priority by its weight, pick the
// highest-priority validator (ties broken by address, lexicographically),
// then subtract total active weight from the winner's priority. Run to
// convergence this yields exact proportional selection whenever
// N*weight/total is integral.
func (s *ValidatorSet) ProposeNext() (common.Address, *ValidatorSet, error) {
	active := s.Active()
	if len(active) == 0 || s.totalActiveWeight == 0 {
		return common.Address{}, nil, ErrNoActiveValidators
	}

	next := s.clone()
	for _, v := range active {
		next.priority[v.Address] += int64(v.Weight)
	}

	var winner common.Address
	best := int64(0)
	first := true
	for _, v := range active {
		p := next.priority[v.Address]
		switch {
		case first:
			winner, best, first = v.Address, p, false
		case p > best:
			winner, best = v.Address, p
		case p == best && bytes.Compare(v.Address.Bytes(), winner.Bytes()) < 0:
			winner = v.Address
		}
	}

	next.priority[winner] -= int64(next.totalActiveWeight)
	return winner, next, nil
}
