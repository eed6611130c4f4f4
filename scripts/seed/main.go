// Command seed upserts a fixed list of attractions into the store. It reads
// the JSON file configured under ingest.seedFile when present and falls back
// to the built-in New York City list otherwise.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	appLogger "github.com/FACorreiaa/usa-attractions/app/logger"
	"github.com/FACorreiaa/usa-attractions/config"
	"github.com/FACorreiaa/usa-attractions/internal/container"
	"github.com/FACorreiaa/usa-attractions/internal/ingest"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := appLogger.New(cfg.Mode, os.Stdout)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, &cfg, logger))
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) int {
	src, err := selectSource(cfg.Ingest.SeedFile)
	if err != nil {
		logger.Error("Cannot read seed file", slog.String("path", cfg.Ingest.SeedFile), slog.Any("error", err))
		return 1
	}

	c, err := container.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to build application container", slog.Any("error", err))
		return 1
	}
	defer c.Close()

	return seed(ctx, c.AttractionRepo, src, logger)
}

// selectSource prefers the seed file and falls back to the built-in list when
// the file does not exist.
func selectSource(path string) (ingest.Source, error) {
	if path == "" {
		return ingest.NewLiteralSource(), nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ingest.NewLiteralSource(), nil
		}
		return nil, err
	}
	return ingest.NewFileSource(path), nil
}

// seed returns the process exit code for one batch.
func seed(ctx context.Context, store ingest.Store, src ingest.Source, logger *slog.Logger) int {
	summary, err := ingest.NewRunner(store, logger).Run(ctx, src)
	if err != nil {
		logger.Error("Seed aborted", slog.String("source", src.Name()), slog.Any("error", err))
		return 1
	}
	if err := summary.Err(); err != nil {
		logger.Error("Seed finished with failures", slog.Any("error", err))
		return 1
	}

	logger.Info("Seed complete",
		slog.Int("updated", summary.Updated),
		slog.Int("inserted", summary.Inserted))
	return 0
}
