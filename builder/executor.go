// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package builder implements the Executor Builder (C3): at node start it
// resolves the active precompile set for the chain spec, wraps the
// framework's standard EVM construction with the C2 factory wrapper, and
// installs it. Shaped after consensus/dummy + core/evm.go's block/tx-context
// wiring: a builder that is handed a chain spec and an inner construction
// path and hands back a ready-to-run configuration.
package builder

import (
	"context"
	"fmt"

	evmfactory "github.com/andelabs/ande-core/core/vm"
	"github.com/andelabs/ande-core/params"
	"github.com/andelabs/ande-core/precompile/precompileconfig"
	"github.com/andelabs/ande-core/precompile/registry"
)

// EVMConfig is the resolved output of building the executor: the chain
// spec it was built for and the installed precompile factory.
type EVMConfig struct {
	ChainSpec *params.ChainSpec
	Factory   *evmfactory.Factory
}

// ExecutorBuilder implements the framework's ExecutorBuilder<Node>
// extension point. It is asynchronous by contract (BuildEVM must not block
// on I/O) even though this implementation's own work is in-memory only —
// the chain spec has already been loaded from disk by the time the builder
// runs.
type ExecutorBuilder struct{}

// NewExecutorBuilder constructs an ExecutorBuilder. It carries no state of
// its own; every build is parameterized entirely by the context passed to
// BuildEVM.
func NewExecutorBuilder() *ExecutorBuilder { return &ExecutorBuilder{} }

// BuildEVM resolves chainSpec's genesis-declared precompile configuration,
// constructs the C2 factory wrapping the framework's standard EVM
// construction path, and installs it as the active precompile source for
// every EVM this process constructs from here on.
//
// ctx is accepted because the framework's ExecutorBuilder contract is
// asynchronous; it is checked once for cancellation before any work is
// done, and an already-cancelled ctx returns ctx.Err().
func (b *ExecutorBuilder) BuildEVM(ctx context.Context, chainSpec *params.ChainSpec) (*EVMConfig, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	configs, err := chainSpec.Genesis().DecodePrecompileConfigs(func(key string) (precompileconfig.Config, bool) {
		m, ok := registry.GetModule(key)
		if !ok {
			return nil, false
		}
		return m.Configurator.MakeConfig(), true
	})
	if err != nil {
		return nil, fmt.Errorf("builder: resolve precompile configs: %w", err)
	}

	factory := evmfactory.New(configs)
	factory.Install()

	return &EVMConfig{ChainSpec: chainSpec, Factory: factory}, nil
}
