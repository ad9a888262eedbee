// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bft

import "errors"

var (
	ErrInvalidProposer         = errors.New("bft: header beneficiary does not match expected proposer")
	ErrInsufficientAttestation = errors.New("bft: attestation weight below threshold")
)
