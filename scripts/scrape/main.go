// Command scrape pulls tourist attractions from the Apify Google Maps actor,
// keeps the New York results and upserts them by name.
package main

import (
	"context"
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
	"github.com/FACorreiaa/usa-attractions/internal/scraper"
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
	if cfg.Scraper.Token == "" {
		logger.Error("APIFY_TOKEN is not set", slog.Any("error", scraper.ErrMissingToken))
		return 1
	}

	c, err := container.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to build application container", slog.Any("error", err))
		return 1
	}
	defer c.Close()

	client := scraper.NewClient(cfg.Scraper, logger)
	return scrape(ctx, c.AttractionRepo, client, cfg.Scraper, logger)
}

// scrape returns the process exit code for one scrape-and-upsert batch.
func scrape(ctx context.Context, store ingest.Store, searcher ingest.PlaceSearcher, cfg config.ScraperConfig, logger *slog.Logger) int {
	src := ingest.NewScrapeSource(searcher, cfg.SearchStrings, cfg.MaxCrawledPlaces, logger)

	summary, err := ingest.NewRunner(store, logger).Run(ctx, src)
	if err != nil {
		logger.Error("Scrape aborted", slog.Any("error", err))
		return 1
	}

	logger.Info("Scrape complete",
		slog.Int("found", summary.Found),
		slog.Int("succeeded", summary.Succeeded()),
		slog.Int("failed", summary.Failed))
	if err := summary.Err(); err != nil {
		logger.Error("Some attractions could not be stored", slog.Any("error", err))
		return 1
	}
	return 0
}
