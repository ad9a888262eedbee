// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package seed generates the deterministic seed-carrier data materialized
// into genesis: 520 32-byte seeds and the cultural-identifier slots that
// precede them in storage, filling the gap between "520 seeds exist at
// genesis" and how they are actually produced, in the style of the
// chaincmd genesis tooling this node otherwise follows.
package seed

import "github.com/luxfi/geth/crypto"

// Count is the number of seeds materialized at genesis (storage slots
// 0x100..0x307 of the seed-carrier address).
const Count = 520

// Generate deterministically derives Count seeds from identifiers:
// seed[i] = keccak256(identifiers[i % len(identifiers)], i). Reusing the
// identifier list cyclically when it is shorter than Count keeps the
// generator total rather than requiring exactly 520 names up front.
func Generate(identifiers []string) [Count][32]byte {
	var seeds [Count][32]byte
	if len(identifiers) == 0 {
		return seeds
	}
	for i := 0; i < Count; i++ {
		id := identifiers[i%len(identifiers)]
		seeds[i] = keccakSeed(id, i)
	}
	return seeds
}

func keccakSeed(identifier string, index int) [32]byte {
	buf := make([]byte, len(identifier)+8)
	copy(buf, identifier)
	putUint64(buf[len(identifier):], uint64(index))
	return crypto.Keccak256Hash(buf)
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[7-i] = byte(v)
		v >>= 8
	}
}

// EncodeCultural right-pads a UTF-8 cultural identifier into a 32-byte
// genesis storage slot. Identifiers longer than 32 bytes are truncated
// rather than rejected: genesis construction is offline tooling, not a
// chain-validity check.
func EncodeCultural(id string) [32]byte {
	var out [32]byte
	copy(out[:], id)
	return out
}
