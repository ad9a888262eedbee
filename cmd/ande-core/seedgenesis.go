// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/andelabs/ande-core/genesis/seed"
	"github.com/urfave/cli/v2"
)

var SeedGenesisCommand = &cli.Command{
	Action:    seedGenesis,
	Name:      "seed-genesis",
	Usage:     "Regenerate the seed-carrier genesis allocation",
	ArgsUsage: "<identifier> [<identifier>...]",
	Description: `
Deterministically regenerates the 520 32-byte seeds and the cultural
identifier slot materialized into specs/genesis.json's seed-carrier
storage, from one or more identifiers.`,
}

func seedGenesis(ctx *cli.Context) error {
	identifiers := ctx.Args().Slice()
	if len(identifiers) == 0 {
		return fmt.Errorf("seed-genesis: at least one identifier is required")
	}

	cultural := seed.EncodeCultural(identifiers[0])
	fmt.Printf("cultural: 0x%s\n", hex.EncodeToString(cultural[:]))

	seeds := seed.Generate(identifiers)
	lines := make([]string, len(seeds))
	for i, s := range seeds {
		lines[i] = fmt.Sprintf("0x%s", hex.EncodeToString(s[:]))
	}
	fmt.Println(strings.Join(lines, "\n"))
	return nil
}
