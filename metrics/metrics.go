// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics exposes Prometheus counters for the two things worth
// dashboards on a small sovereign rollup node: how often the Token-Duality
// precompile is called (and why it fails), and how consensus header
// validation resolves. Uses github.com/prometheus/client_golang directly
// (metrics/prometheus/prometheus.go's library of choice), via the plain
// counter API rather than a geth-registry-to-Prometheus gatherer bridge,
// since this node has no pre-existing geth-style metrics registry to adapt.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// PrecompileCallOutcome labels a single Token-Duality invocation's result.
type PrecompileCallOutcome string

const (
	PrecompileCallSuccess             PrecompileCallOutcome = "success"
	PrecompileCallStaticCallRejected  PrecompileCallOutcome = "static_call_rejected"
	PrecompileCallInvalidInput        PrecompileCallOutcome = "invalid_input"
	PrecompileCallInsufficientGas     PrecompileCallOutcome = "insufficient_gas"
	PrecompileCallZeroDestination     PrecompileCallOutcome = "zero_destination"
	PrecompileCallNotAllowlisted      PrecompileCallOutcome = "not_allowlisted"
	PrecompileCallCapExceeded         PrecompileCallOutcome = "cap_exceeded"
	PrecompileCallInsufficientBalance PrecompileCallOutcome = "insufficient_balance"
	PrecompileCallOther               PrecompileCallOutcome = "other"
)

// ConsensusValidationOutcome labels how a single header's BFT validation
// resolved.
type ConsensusValidationOutcome string

const (
	ConsensusValidationAccepted                ConsensusValidationOutcome = "accepted"
	ConsensusValidationInvalidProposer         ConsensusValidationOutcome = "invalid_proposer"
	ConsensusValidationInsufficientAttestation ConsensusValidationOutcome = "insufficient_attestation"
)

var (
	// PrecompileCalls counts Token-Duality invocations by outcome.
	PrecompileCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ande",
		Subsystem: "tokenduality",
		Name:      "calls_total",
		Help:      "Token-Duality precompile invocations, by outcome.",
	}, []string{"outcome"})

	// ConsensusValidations counts BFT header validations by outcome.
	ConsensusValidations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ande",
		Subsystem: "consensus",
		Name:      "header_validations_total",
		Help:      "BFT overlay header validations, by outcome.",
	}, []string{"outcome"})
)

// Register adds this package's collectors to reg. Call once at startup;
// registering the same collector twice is a startup-fatal programmer error
// that prometheus.Registry.Register reports on its own.
func Register(reg prometheus.Registerer) error {
	if err := reg.Register(PrecompileCalls); err != nil {
		return err
	}
	return reg.Register(ConsensusValidations)
}

// RecordPrecompileCall increments the counter for a single outcome.
func RecordPrecompileCall(outcome PrecompileCallOutcome) {
	PrecompileCalls.WithLabelValues(string(outcome)).Inc()
}

// RecordConsensusValidation increments the counter for a single outcome.
func RecordConsensusValidation(outcome ConsensusValidationOutcome) {
	ConsensusValidations.WithLabelValues(string(outcome)).Inc()
}
