// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import "time"

// EpochPeriod is the default wall-clock span an epoch must span before it
// may advance. Callers of ValidatorSet.TryAdvanceEpoch may override it via
// the period parameter (a non-positive period falls back to this value);
// this is a sane default for a chain with no explicit governance override.
const EpochPeriod = 90 * 24 * time.Hour

// TryAdvanceEpoch advances the set to the next epoch if elapsed has reached
// period (validator-set changes normally only land at epoch boundaries;
// this is the gate that enforces that). Registration/slash/power-update
// calls elsewhere in this package are NOT restricted to epoch boundaries
// themselves — the boundary discipline belongs to the caller. Advancing only
// increments the epoch number; it applies no queued validator changes.
func (s *ValidatorSet) TryAdvanceEpoch(elapsed, period time.Duration) (*ValidatorSet, error) {
	if period <= 0 {
		period = EpochPeriod
	}
	if elapsed < period {
		return nil, ErrEpochNotEnded
	}
	next := s.clone()
	next.epoch++
	return next, nil
}
