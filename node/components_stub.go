// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package node

import (
	"sync"

	"github.com/luxfi/geth/core/types"
)

// TxPoolStub stands in for the framework's stock transaction-pool builder:
// enough of a pending-transaction set to exercise Components end-to-end in
// tests, without reimplementing mempool admission/eviction policy (an
// explicit non-goal).
type TxPoolStub struct {
	mu      sync.Mutex
	pending []*types.Transaction
}

// NewTxPoolStub returns an empty pool stand-in.
func NewTxPoolStub() *TxPoolStub { return &TxPoolStub{} }

// Add appends tx to the pending set.
func (p *TxPoolStub) Add(tx *types.Transaction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, tx)
}

// Pending returns a snapshot of the pending set.
func (p *TxPoolStub) Pending() []*types.Transaction {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*types.Transaction, len(p.pending))
	copy(out, p.pending)
	return out
}

// NetworkStub stands in for the framework's stock network builder: tracks
// connected peer count only, enough to prove the composition root wires a
// network component without reimplementing p2p.
type NetworkStub struct {
	mu    sync.Mutex
	peers int
}

// NewNetworkStub returns a network stand-in with zero peers.
func NewNetworkStub() *NetworkStub { return &NetworkStub{} }

// AddPeer increments the connected-peer count.
func (n *NetworkStub) AddPeer() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.peers++
}

// PeerCount returns the current connected-peer count.
func (n *NetworkStub) PeerCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.peers
}

// PayloadStub stands in for the framework's stock payload-service builder
// wrapping the stock payload builder: it keeps the last block handed to
// RecordBlock. Nothing in this package calls RecordBlock; in particular
// stockConsensus.FinalizeAndAssemble does not.
type PayloadStub struct {
	mu   sync.Mutex
	last *types.Block
}

// NewPayloadStub returns an empty payload stand-in.
func NewPayloadStub() *PayloadStub { return &PayloadStub{} }

// RecordBlock stores block as the most recently assembled payload.
func (p *PayloadStub) RecordBlock(block *types.Block) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = block
}

// LastBlock returns the most recently assembled payload, or nil.
func (p *PayloadStub) LastBlock() *types.Block {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}
