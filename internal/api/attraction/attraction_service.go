package attraction

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/usa-attractions/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service is the attraction business layer used by the HTTP handlers.
type Service interface {
	ListAttractions(ctx context.Context, filter types.AttractionFilter) ([]types.Attraction, error)
	GetAttraction(ctx context.Context, id uuid.UUID) (*types.Attraction, error)
	CreateAttraction(ctx context.Context, in types.AttractionInput) (*types.Attraction, error)
	UpdateAttraction(ctx context.Context, id uuid.UUID, patch types.AttractionPatch) error
	DeleteAttraction(ctx context.Context, id uuid.UUID) error

	AddReview(ctx context.Context, attractionID uuid.UUID, userID *uuid.UUID, req types.ReviewRequest) (*types.Review, error)
	UpdateReview(ctx context.Context, reviewID uuid.UUID, req types.ReviewRequest) error
	DeleteReview(ctx context.Context, reviewID uuid.UUID) error
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
}

func NewService(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

// ListAttractions loads every attraction and narrows the result in memory.
func (s *ServiceImpl) ListAttractions(ctx context.Context, filter types.AttractionFilter) ([]types.Attraction, error) {
	ctx, span := otel.Tracer("AttractionService").Start(ctx, "ListAttractions")
	defer span.End()
	span.SetAttributes(
		attribute.String("filter.q", filter.Query),
		attribute.String("filter.category", filter.Category),
	)

	l := s.logger.With(slog.String("method", "ListAttractions"))
	l.DebugContext(ctx, "Listing attractions", slog.String("q", filter.Query), slog.String("category", filter.Category))

	all, err := s.repo.ListAttractions(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list attractions", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Repository list failed")
		return nil, err
	}

	filtered := FilterAttractions(all, filter)
	span.SetAttributes(attribute.Int("attractions.total", len(all)), attribute.Int("attractions.matched", len(filtered)))
	span.SetStatus(codes.Ok, "")
	return filtered, nil
}

// FilterAttractions keeps the attractions whose name, city or state contains
// filter.Query and whose category equals filter.Category, both ignoring case.
// The query is matched as typed, surrounding spaces included. Empty filter
// fields match everything. The result is never nil.
func FilterAttractions(all []types.Attraction, filter types.AttractionFilter) []types.Attraction {
	q := strings.ToLower(filter.Query)
	category := strings.TrimSpace(filter.Category)

	out := make([]types.Attraction, 0, len(all))
	for _, a := range all {
		if category != "" && !strings.EqualFold(a.Category, category) {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(a.Name), q) &&
			!strings.Contains(strings.ToLower(a.Location.City), q) &&
			!strings.Contains(strings.ToLower(a.Location.State), q) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (s *ServiceImpl) GetAttraction(ctx context.Context, id uuid.UUID) (*types.Attraction, error) {
	ctx, span := otel.Tracer("AttractionService").Start(ctx, "GetAttraction")
	defer span.End()

	a, err := s.repo.GetAttraction(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Repository get failed")
		return nil, err
	}
	return a, nil
}

func (s *ServiceImpl) CreateAttraction(ctx context.Context, in types.AttractionInput) (*types.Attraction, error) {
	ctx, span := otel.Tracer("AttractionService").Start(ctx, "CreateAttraction")
	defer span.End()
	span.SetAttributes(attribute.String("attraction.name", in.Name))

	a, err := s.repo.CreateAttraction(ctx, in)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to create attraction", slog.String("name", in.Name), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Repository create failed")
		return nil, err
	}
	return a, nil
}

func (s *ServiceImpl) UpdateAttraction(ctx context.Context, id uuid.UUID, patch types.AttractionPatch) error {
	ctx, span := otel.Tracer("AttractionService").Start(ctx, "UpdateAttraction")
	defer span.End()

	if err := s.repo.UpdateAttraction(ctx, id, patch); err != nil {
		s.logger.ErrorContext(ctx, "Failed to update attraction", slog.String("attractionID", id.String()), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Repository update failed")
		return err
	}
	return nil
}

func (s *ServiceImpl) DeleteAttraction(ctx context.Context, id uuid.UUID) error {
	ctx, span := otel.Tracer("AttractionService").Start(ctx, "DeleteAttraction")
	defer span.End()

	if err := s.repo.DeleteAttraction(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete attraction", slog.String("attractionID", id.String()), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Repository delete failed")
		return err
	}
	return nil
}

func (s *ServiceImpl) AddReview(ctx context.Context, attractionID uuid.UUID, userID *uuid.UUID, req types.ReviewRequest) (*types.Review, error) {
	ctx, span := otel.Tracer("AttractionService").Start(ctx, "AddReview")
	defer span.End()

	rv, err := s.repo.CreateReview(ctx, attractionID, userID, req.Rating, req.Comment)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to add review", slog.String("attractionID", attractionID.String()), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Repository create review failed")
		return nil, err
	}
	return rv, nil
}

func (s *ServiceImpl) UpdateReview(ctx context.Context, reviewID uuid.UUID, req types.ReviewRequest) error {
	ctx, span := otel.Tracer("AttractionService").Start(ctx, "UpdateReview")
	defer span.End()

	if err := s.repo.UpdateReview(ctx, reviewID, req.Rating, req.Comment); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Repository update review failed")
		return err
	}
	return nil
}

func (s *ServiceImpl) DeleteReview(ctx context.Context, reviewID uuid.UUID) error {
	ctx, span := otel.Tracer("AttractionService").Start(ctx, "DeleteReview")
	defer span.End()

	if err := s.repo.DeleteReview(ctx, reviewID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Repository delete review failed")
		return err
	}
	return nil
}
