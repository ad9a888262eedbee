// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import "errors"

var (
	ErrUnknownValidator    = errors.New("engine: unknown validator")
	ErrValidatorInactive   = errors.New("engine: validator is not active")
	ErrNoActiveValidators  = errors.New("engine: no active validators")
	ErrEpochNotEnded       = errors.New("engine: epoch not ended")
	ErrNotJailed           = errors.New("engine: validator is not jailed")
	ErrNegativeWeight      = errors.New("engine: negative weight")
	ErrInsufficientWeight  = errors.New("engine: attestation weight below threshold")
	ErrInvalidProposer     = errors.New("engine: header beneficiary does not match expected proposer")
)
