// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// ande-core is the sovereign rollup execution node: it loads genesis,
// assembles the executor and consensus components (C3-C5), and serves
// Prometheus metrics while the node runs.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/andelabs/ande-core/config"
	"github.com/andelabs/ande-core/metrics"
	"github.com/andelabs/ande-core/node"
	"github.com/luxfi/geth/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"go.uber.org/automaxprocs/maxprocs"
	"gopkg.in/natefinch/lumberjack.v2"
)

const clientIdentifier = "ande-core"

const metricsAddr = ":9090"

var app = &cli.App{
	Name:    clientIdentifier,
	Usage:   "sovereign rollup execution node",
	Version: "1.0.0",
}

func init() {
	app.Action = runNode
	app.Commands = []*cli.Command{
		SeedGenesisCommand,
	}
	app.Before = func(ctx *cli.Context) error {
		log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(logWriter(), log.LevelInfo, true)))
		if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			log.Info(fmt.Sprintf(format, args...))
		})); err != nil {
			log.Warn("failed to set GOMAXPROCS", "err", err)
		}
		return nil
	}
}

// logWriter mirrors evm-node's terminal handler but rotates the on-disk copy
// of the log through lumberjack rather than growing a single file forever.
func logWriter() *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   "ande-core.log",
		MaxSize:    100, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runNode(cliCtx *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("ande-core: load config: %w", err)
	}

	chainSpec, err := node.LoadChainSpec(cfg)
	if err != nil {
		return fmt.Errorf("ande-core: load chain spec: %w", err)
	}

	registry := prometheus.NewRegistry()
	if err := metrics.Register(registry); err != nil {
		return fmt.Errorf("ande-core: register metrics: %w", err)
	}

	ctx, stop := signal.NotifyContext(cliCtx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	components, err := node.NewComponentsBuilder().Build(ctx, chainSpec, cfg)
	if err != nil {
		return fmt.Errorf("ande-core: build components: %w", err)
	}

	log.Info("node components assembled",
		"chainID", components.Type.ChainSpec.ChainConfig().ChainID,
		"consensusEnabled", components.Consensus.Enabled(),
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &http.Server{Addr: metricsAddr, Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server stopped", "err", err)
		}
	}()
	defer server.Shutdown(context.Background())

	<-ctx.Done()
	return nil
}
