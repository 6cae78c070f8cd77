package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/iudanet/inkboard/internal/client/api"
	"github.com/iudanet/inkboard/internal/client/cli"
	"github.com/iudanet/inkboard/internal/client/iocli"
	"github.com/iudanet/inkboard/internal/client/realtime"
	"github.com/iudanet/inkboard/internal/client/storage/boltdb"
	clientsync "github.com/iudanet/inkboard/internal/client/sync"
	"github.com/iudanet/inkboard/internal/config"
	"github.com/iudanet/inkboard/internal/logger"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.ParseClient(os.Args[1:], os.LookupEnv, os.Stderr)
	if err != nil {
		if errors.Is(err, config.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if cfg.ShowVersion {
		printVersion()
		os.Exit(0)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	log := logger.New(level, os.Stderr)

	if err := run(context.Background(), cfg, log); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Client, log *slog.Logger) error {
	stdio := iocli.NewStdio()

	if len(cfg.Args) == 0 {
		cli.New(stdio, nil, log).PrintUsage()
		return errors.New("missing command")
	}

	// Открываем BoltDB storage
	local, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := local.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}()

	apiClient := api.NewClient(cfg.ServerURL)

	live, err := realtime.NewClient(cfg.ServerURL, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := live.Close(); err != nil {
			log.Warn("Failed to close realtime client", "error", err)
		}
	}()

	syncCfg := clientsync.DefaultConfig()
	syncCfg.FlushDelay = cfg.FlushDelay
	syncCfg.SnapshotInterval = cfg.SnapshotInterval

	service := clientsync.NewService(apiClient, local, log,
		clientsync.WithConfig(syncCfg),
		clientsync.WithBroadcaster(live),
		clientsync.WithMetadata(local))

	c := cli.New(stdio, service, log,
		cli.WithDocument(cfg.Document),
		cli.WithMetadata(local),
		cli.WithOutbox(local),
		cli.WithHealth(apiClient),
		cli.WithLive(live))

	return c.Run(ctx, cfg.Args[0], cfg.Args[1:])
}

func printVersion() {
	fmt.Printf("Inkboard Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
