package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/crimson-sun/tally/internal/config"
	"github.com/crimson-sun/tally/internal/engine"
	"github.com/crimson-sun/tally/internal/engine/cache"
	"github.com/crimson-sun/tally/internal/logging"
	"github.com/crimson-sun/tally/internal/output"
	outfile "github.com/crimson-sun/tally/internal/output/file"
	"github.com/crimson-sun/tally/internal/output/stdout"
	"github.com/crimson-sun/tally/internal/pipeline"
	"github.com/crimson-sun/tally/internal/source"

	// Register frame source implementations.
	_ "github.com/crimson-sun/tally/internal/source/file"
	_ "github.com/crimson-sun/tally/internal/source/stdin"
)

func main() {
	cfg := config.Load()

	outputIsStdout := cfg.Output.Format != "file"
	logging.Init(outputIsStdout, logging.ParseLevel(cfg.LogLevel))

	// Consensus configuration.
	engineCfg := cache.Default(cfg.Engine.VideoFeed)
	engineCfg.SimilarityThreshold = cfg.Engine.SimilarityThreshold
	engineCfg.TrustworthyThreshold = cfg.Engine.TrustworthyThreshold
	engineCfg.MaxCacheSize = cfg.Engine.MaxCacheSize
	engineCfg.MinLongReceiptSize = cfg.Engine.MinLongReceiptSize
	engineCfg.MinDurationBeforeInvalidate = cfg.Engine.MinDurationBeforeInvalidate

	session := engine.NewSession(engineCfg, cfg.Engine.MinSkewSamples, slog.Default())

	// Snapshot output.
	verbosity := output.ParseVerbosity(cfg.Output.Verbosity)
	var out output.Output
	if cfg.Output.Format == "file" {
		f, err := outfile.New(cfg.Output.Path, verbosity)
		if err != nil {
			log.Fatalf("failed to open output: %v", err)
		}
		out = f
	} else {
		out = stdout.New(verbosity, cfg.Output.Pretty)
	}

	// Resolve frame source.
	ctor, err := source.Get(cfg.Source.Provider)
	if err != nil {
		log.Fatalf("failed to get frame source: %v", err)
	}
	src := ctor()

	// Build pipeline.
	p := pipeline.New(src, session, out, slog.Default())
	p.StopWhenValid = cfg.Engine.StopWhenValid
	defer p.Close()

	// Set up graceful shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(os.Stderr, "\nreceived %v, shutting down...\n", sig)
		cancel()
	}()

	srcCfg := source.Config{
		Path:     cfg.Source.Path,
		Interval: cfg.Source.Interval,
	}

	fmt.Fprintf(os.Stderr, "tally: starting with source=%s\n", cfg.Source.Provider)
	if err := p.Run(ctx, srcCfg); err != nil && err != context.Canceled {
		log.Fatalf("pipeline error: %v", err)
	}
}
