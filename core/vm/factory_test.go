// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"testing"

	"github.com/andelabs/ande-core/precompile/contract"
	"github.com/andelabs/ande-core/precompile/precompileconfig"
	"github.com/andelabs/ande-core/precompile/registry"
	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"
)

type fakeContract struct{}

func (fakeContract) Run(accessibleState contract.AccessibleState, caller, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) ([]byte, uint64, error) {
	return nil, suppliedGas, nil
}

type fakeConfig struct {
	key       string
	disabled  bool
	timestamp *uint64
}

func (c *fakeConfig) Key() string                              { return c.key }
func (c *fakeConfig) IsDisabled() bool                         { return c.disabled }
func (c *fakeConfig) Timestamp() *uint64                       { return c.timestamp }
func (c *fakeConfig) Verify(precompileconfig.ChainConfig) error { return nil }
func (c *fakeConfig) Equal(other precompileconfig.Config) bool { return c.key == other.Key() }

var fakeAddr = common.HexToAddress("0xfeed")

func init() {
	_ = registry.RegisterModule(registry.NewModule("fakemodule", fakeAddr, fakeContract{}, nil))
}

func ts(v uint64) *uint64 { return &v }

func TestFactoryPrecompileOverrideActive(t *testing.T) {
	f := New(map[string]precompileconfig.Config{
		"fakemodule": &fakeConfig{key: "fakemodule"},
	})
	bf := &boundFactory{factory: f, timestamp: 1000}

	adapted, ok := bf.PrecompileOverride(fakeAddr)
	require.True(t, ok)
	require.NotNil(t, adapted)
}

func TestFactoryPrecompileOverrideUnconfiguredModuleAbsent(t *testing.T) {
	f := New(map[string]precompileconfig.Config{})
	bf := &boundFactory{factory: f, timestamp: 1000}

	_, ok := bf.PrecompileOverride(fakeAddr)
	require.False(t, ok)
}

func TestFactoryPrecompileOverrideDisabled(t *testing.T) {
	f := New(map[string]precompileconfig.Config{
		"fakemodule": &fakeConfig{key: "fakemodule", disabled: true},
	})
	bf := &boundFactory{factory: f, timestamp: 1000}

	_, ok := bf.PrecompileOverride(fakeAddr)
	require.False(t, ok)
}

func TestFactoryPrecompileOverrideBeforeActivation(t *testing.T) {
	f := New(map[string]precompileconfig.Config{
		"fakemodule": &fakeConfig{key: "fakemodule", timestamp: ts(5000)},
	})

	before := &boundFactory{factory: f, timestamp: 1000}
	_, ok := before.PrecompileOverride(fakeAddr)
	require.False(t, ok)

	after := &boundFactory{factory: f, timestamp: 5000}
	_, ok = after.PrecompileOverride(fakeAddr)
	require.True(t, ok)
}

func TestFactoryPrecompileOverrideUnknownAddress(t *testing.T) {
	f := New(map[string]precompileconfig.Config{
		"fakemodule": &fakeConfig{key: "fakemodule"},
	})
	bf := &boundFactory{factory: f, timestamp: 1000}

	_, ok := bf.PrecompileOverride(common.HexToAddress("0xbad"))
	require.False(t, ok)
}
