// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tokenduality

import (
	"errors"

	"github.com/andelabs/ande-core/metrics"
)

// Precompile-local errors. Each reverts the calling frame without halting
// the node.
var (
	ErrStaticCall          = errors.New("tokenduality: state change during static call")
	ErrInvalidInputLength  = errors.New("tokenduality: invalid input length")
	ErrInsufficientGas     = errors.New("tokenduality: insufficient gas")
	ErrZeroDestination     = errors.New("tokenduality: zero destination")
	ErrInsufficientBalance = errors.New("tokenduality: insufficient balance")
	ErrCapExceeded         = errors.New("tokenduality: transfer value exceeds configured cap")
	ErrNotAllowlisted      = errors.New("tokenduality: from or to not allowlisted")
	ErrNotAdmin            = errors.New("tokenduality: caller is not the allowlist admin")
	ErrUnknownSelector     = errors.New("tokenduality: unknown selector")
)

// callOutcome maps a Run error (or nil) to its metrics label.
func callOutcome(err error) metrics.PrecompileCallOutcome {
	switch {
	case err == nil:
		return metrics.PrecompileCallSuccess
	case errors.Is(err, ErrStaticCall):
		return metrics.PrecompileCallStaticCallRejected
	case errors.Is(err, ErrInvalidInputLength):
		return metrics.PrecompileCallInvalidInput
	case errors.Is(err, ErrInsufficientGas):
		return metrics.PrecompileCallInsufficientGas
	case errors.Is(err, ErrZeroDestination):
		return metrics.PrecompileCallZeroDestination
	case errors.Is(err, ErrNotAllowlisted):
		return metrics.PrecompileCallNotAllowlisted
	case errors.Is(err, ErrCapExceeded):
		return metrics.PrecompileCallCapExceeded
	case errors.Is(err, ErrInsufficientBalance):
		return metrics.PrecompileCallInsufficientBalance
	default:
		return metrics.PrecompileCallOther
	}
}
