package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/usa-attractions/app/observability/metrics"
	"github.com/FACorreiaa/usa-attractions/internal/types"
)

var ErrMalformedItem = errors.New("malformed attraction")

// Store is the part of the attraction repository the runner writes through.
type Store interface {
	FindAttractionIDByName(ctx context.Context, name string) (uuid.UUID, bool, error)
	CreateAttraction(ctx context.Context, in types.AttractionInput) (*types.Attraction, error)
	UpdateAttraction(ctx context.Context, id uuid.UUID, patch types.AttractionPatch) error
}

// Summary counts the outcome of one batch.
type Summary struct {
	Found    int
	Updated  int
	Inserted int
	Failed   int
}

func (s Summary) Succeeded() int { return s.Updated + s.Inserted }

// Err is non-nil when at least one item failed.
func (s Summary) Err() error {
	if s.Failed == 0 {
		return nil
	}
	return fmt.Errorf("failed to process %d of %d attractions", s.Failed, s.Found)
}

type Runner struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.AppMetrics
}

func NewRunner(store Store, logger *slog.Logger) *Runner {
	return &Runner{
		store:   store,
		logger:  logger,
		metrics: metrics.Get(),
	}
}

// Run upserts every item from src by name, one at a time. Item failures are
// logged and counted; only a fetch failure aborts the batch.
func (r *Runner) Run(ctx context.Context, src Source) (Summary, error) {
	ctx, span := otel.Tracer("IngestRunner").Start(ctx, "Run")
	defer span.End()
	span.SetAttributes(attribute.String("ingest.source", src.Name()))

	l := r.logger.With(slog.String("source", src.Name()))
	start := time.Now()
	l.InfoContext(ctx, "Starting attraction data import")

	items, err := src.Fetch(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch attractions", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return Summary{}, err
	}

	summary := Summary{Found: len(items)}
	l.InfoContext(ctx, "Attractions found", slog.Int("count", summary.Found))

	for _, item := range items {
		outcome, err := r.upsert(ctx, item)
		if err != nil {
			summary.Failed++
			l.ErrorContext(ctx, "Error processing attraction", slog.String("name", item.Name), slog.Any("error", err))
		} else if outcome == "updated" {
			summary.Updated++
			l.InfoContext(ctx, "Updated existing attraction", slog.String("name", item.Name))
		} else {
			summary.Inserted++
			l.InfoContext(ctx, "Inserted new attraction", slog.String("name", item.Name))
		}
		r.metrics.IngestItemsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("source", src.Name()),
			attribute.String("outcome", outcome),
		))
	}

	r.metrics.IngestBatchDurationSecond.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("source", src.Name())))
	span.SetAttributes(
		attribute.Int("ingest.found", summary.Found),
		attribute.Int("ingest.updated", summary.Updated),
		attribute.Int("ingest.inserted", summary.Inserted),
		attribute.Int("ingest.failed", summary.Failed),
	)
	if summary.Failed > 0 {
		span.SetStatus(codes.Error, "some items failed")
	} else {
		span.SetStatus(codes.Ok, "")
	}

	l.InfoContext(ctx, "Import summary",
		slog.Int("found", summary.Found),
		slog.Int("updated", summary.Updated),
		slog.Int("inserted", summary.Inserted),
		slog.Int("failed", summary.Failed),
	)
	return summary, nil
}

// upsert returns "updated", "inserted" or "failed".
func (r *Runner) upsert(ctx context.Context, item types.AttractionInput) (string, error) {
	if strings.TrimSpace(item.Name) == "" {
		return "failed", fmt.Errorf("%w: name is empty", ErrMalformedItem)
	}

	id, found, err := r.store.FindAttractionIDByName(ctx, item.Name)
	if err != nil {
		return "failed", fmt.Errorf("lookup failed: %w", err)
	}

	if found {
		if err := r.store.UpdateAttraction(ctx, id, types.FullPatch(item)); err != nil {
			return "failed", fmt.Errorf("update failed: %w", err)
		}
		return "updated", nil
	}

	if _, err := r.store.CreateAttraction(ctx, item); err != nil {
		return "failed", fmt.Errorf("insert failed: %w", err)
	}
	return "inserted", nil
}
