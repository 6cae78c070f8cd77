package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/iudanet/inkboard/internal/config"
	"github.com/iudanet/inkboard/internal/logger"
	"github.com/iudanet/inkboard/internal/server/broadcast"
	"github.com/iudanet/inkboard/internal/server/handlers"
	"github.com/iudanet/inkboard/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.ParseServer(os.Args[1:], os.LookupEnv, os.Stderr)
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

	if err := run(cfg, log); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Server, log *slog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("Opening database", "path", cfg.DBPath)
	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}()

	hub := broadcast.NewHub(log)
	defer hub.Close()

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("invalid redis url: %w", err)
		}
		client := redis.NewClient(opts)
		defer func() {
			if err := client.Close(); err != nil {
				log.Warn("Failed to close redis client", "error", err)
			}
		}()

		relay, err := startRelay(ctx, client, hub, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := relay.Close(); err != nil {
				log.Warn("Failed to close redis relay", "error", err)
			}
		}()
		log.Info("Redis relay started", "addr", opts.Addr)
	}

	router := handlers.NewRouter(log,
		handlers.NewDocumentHandler(log, store, store, store),
		handlers.NewLiveHandler(log, hub, store),
		handlers.NewHealthHandler(log, store, Version))

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup
	serveErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("Server listening", "addr", cfg.Addr, "version", Version)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// буфер 1, чтобы notifier не блокировался
	exit := make(chan os.Signal, 1)
	signal.Notify(exit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-exit:
		log.Info("Signal caught", "signal", sig.String())
	case err := <-serveErr:
		return fmt.Errorf("server listen failed: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	// websocket соединения Shutdown не ждёт, их закрывает hub
	hub.Close()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("Graceful shutdown failed", "error", err)
		_ = httpServer.Close()
	}
	cancel()
	wg.Wait()

	log.Info("Server stopped")
	return nil
}

// startRelay подписывается на сообщения других экземпляров сервера.
func startRelay(ctx context.Context, client *redis.Client, hub *broadcast.Hub, log *slog.Logger) (*broadcast.RedisRelay, error) {
	relay, err := broadcast.NewRedisRelay(ctx, client, hub, log)
	if err != nil {
		return nil, err
	}
	if err := relay.Start(ctx); err != nil {
		_ = relay.Close()
		return nil, err
	}
	hub.SetRelay(relay)
	return relay, nil
}

func printVersion() {
	fmt.Printf("Inkboard Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
