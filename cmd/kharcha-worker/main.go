// The mirror worker consumes expense mutation events and keeps a local
// JSON file replica of the record store, resyncing the full snapshot on
// an interval to heal missed events.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"kharcha/internal/backend"
	"kharcha/internal/config"
	"kharcha/internal/event"
	"kharcha/internal/localstore"
	"kharcha/internal/worker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		slog.Error("AMQP_URL is required for the mirror worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storeCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		slog.Error("Invalid store configuration", "error", err)
		os.Exit(1)
	}

	factory := backend.NewFactory(logger)
	result, err := factory.CreateStore(ctx, storeCfg)
	if err != nil {
		slog.Error("Failed to create source store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer func() {
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				slog.Error("Failed to close source store", "error", err)
			}
		}
	}()

	mirror, err := localstore.Open(cfg.MirrorFile)
	if err != nil {
		slog.Error("Failed to open mirror file", "path", cfg.MirrorFile, "error", err)
		os.Exit(1)
	}

	client, err := event.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		slog.Error("Failed to connect to AMQP", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	w := worker.NewMirrorWorker(result.Store, mirror)

	// Start from a fresh snapshot so the mirror is usable before the
	// first event arrives.
	if err := w.Resync(ctx); err != nil {
		slog.Error("Initial resync failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Mirror worker started",
		"source", cfg.StoreBackend,
		"mirror_file", cfg.MirrorFile,
		"queue", cfg.AMQPQueue,
		"resync_interval", cfg.ResyncInterval)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return client.Consume(gctx, func(e event.Event) error {
			return w.HandleEvent(gctx, e)
		})
	})

	g.Go(func() error {
		return w.RunResyncLoop(gctx, cfg.ResyncInterval)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Mirror worker stopped with error", "error", err)
		os.Exit(1)
	}

	slog.Info("Mirror worker stopped")
}
