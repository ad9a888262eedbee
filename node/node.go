// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package node implements the node type and component composition (C5):
// the node's type declarations (it asserts standard Ethereum primitives,
// chain spec, storage and payload types throughout, so every standard
// framework tool keeps working unmodified) and the assembly of the
// executor builder (C3) and consensus builder (C4) with stock pool,
// payload and network stand-ins into one running set of components.
// Shaped after consensus/dummy and chaincmd.initGenesis's genesis
// loading sequence.
package node

import (
	"context"
	"fmt"

	"github.com/andelabs/ande-core/builder"
	"github.com/andelabs/ande-core/config"
	"github.com/andelabs/ande-core/consensus/bft"
	"github.com/andelabs/ande-core/consensus/engine"
	"github.com/andelabs/ande-core/params"
)

// Type declares this node's type family. Every field here is the standard
// Ethereum-shaped one; nothing about the node's primitives, storage, or
// payload types diverges from the framework's own, which is what keeps
// RPC, mempool, and networking tooling working against this node
// unmodified.
type Type struct {
	ChainSpec *params.ChainSpec
}

// Components is the fully assembled set of components a running node
// holds: the executor (C3), the consensus engine and its BFT overlay (C4),
// and the stock pool/payload/network stand-ins exercised alongside them.
type Components struct {
	Type      *Type
	EVMConfig *builder.EVMConfig
	Engine    *engine.Engine
	Consensus *bft.Overlay
	Pool      *TxPoolStub
	Network   *NetworkStub
	Payload   *PayloadStub
}

// ComponentsBuilder assembles a Components from a loaded chain spec and
// startup configuration. It mirrors the framework's own composition root:
// stock pool/payload/network builders plus the two custom extension points,
// C3 and C4.
type ComponentsBuilder struct {
	executor *builder.ExecutorBuilder
}

// NewComponentsBuilder constructs a ComponentsBuilder.
func NewComponentsBuilder() *ComponentsBuilder {
	return &ComponentsBuilder{executor: builder.NewExecutorBuilder()}
}

// Build runs C3 and C4 against chainSpec and cfg and assembles the running
// component set. The consensus engine (and BFT overlay) is present or
// absent depending on cfg.ConsensusEnabled: when disabled, Components.Engine
// is nil and Components.Consensus wraps a nil engine handle, i.e. pure
// stock consensus — the absent-variant pattern, not a zero-initialized
// engine silently doing nothing.
func (b *ComponentsBuilder) Build(ctx context.Context, chainSpec *params.ChainSpec, cfg *config.Config) (*Components, error) {
	evmConfig, err := b.executor.BuildEVM(ctx, chainSpec)
	if err != nil {
		return nil, fmt.Errorf("node: build executor: %w", err)
	}

	var eng *engine.Engine
	if cfg.ConsensusEnabled {
		eng = engine.New()
		for _, v := range cfg.Validators {
			eng.RegisterValidator(v.Address, v.Weight)
		}
	}

	overlay := bft.New(stockConsensus{}, eng)

	return &Components{
		Type:      &Type{ChainSpec: chainSpec},
		EVMConfig: evmConfig,
		Engine:    eng,
		Consensus: overlay,
		Pool:      NewTxPoolStub(),
		Network:   NewNetworkStub(),
		Payload:   NewPayloadStub(),
	}, nil
}
