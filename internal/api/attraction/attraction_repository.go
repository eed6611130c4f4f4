package attraction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/usa-attractions/app/observability/metrics"
	"github.com/FACorreiaa/usa-attractions/internal/api"
	"github.com/FACorreiaa/usa-attractions/internal/types"
)

var _ Repository = (*RepositoryImpl)(nil)

// DB is the subset of pgxpool.Pool used by the repository; pgxmock satisfies it too.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository interface {
	ListAttractions(ctx context.Context) ([]types.Attraction, error)
	GetAttraction(ctx context.Context, id uuid.UUID) (*types.Attraction, error)
	FindAttractionIDByName(ctx context.Context, name string) (uuid.UUID, bool, error)
	CreateAttraction(ctx context.Context, in types.AttractionInput) (*types.Attraction, error)
	UpdateAttraction(ctx context.Context, id uuid.UUID, patch types.AttractionPatch) error
	DeleteAttraction(ctx context.Context, id uuid.UUID) error

	CreateReview(ctx context.Context, attractionID uuid.UUID, userID *uuid.UUID, rating float64, comment string) (*types.Review, error)
	UpdateReview(ctx context.Context, reviewID uuid.UUID, rating float64, comment string) error
	DeleteReview(ctx context.Context, reviewID uuid.UUID) error
}

type RepositoryImpl struct {
	logger  *slog.Logger
	db      DB
	metrics *metrics.AppMetrics
}

func NewRepository(db DB, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger:  logger,
		db:      db,
		metrics: metrics.Get(),
	}
}

const foreignKeyViolation = "23503"

const selectAttractionsWithReviews = `
	SELECT a.id, a.name, a.description, a.image, a.latitude, a.longitude,
	       a.address, a.city, a.state, a.rating, a.category,
	       a.admission_fee, a.opening_hours, a.website,
	       COALESCE(
	           json_agg(json_build_object(
	               'id', r.id,
	               'attraction_id', r.attraction_id,
	               'user_id', r.user_id,
	               'rating', r.rating,
	               'comment', r.comment,
	               'created_at', r.created_at
	           ) ORDER BY r.created_at) FILTER (WHERE r.id IS NOT NULL),
	           '[]'::json
	       ) AS reviews
	FROM attractions a
	LEFT JOIN reviews r ON r.attraction_id = a.id`

func (r *RepositoryImpl) startSpan(ctx context.Context, name, operation, table string) (context.Context, trace.Span) {
	return otel.Tracer("AttractionRepo").Start(ctx, name, trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", operation),
		attribute.String("db.sql.table", table),
	))
}

func (r *RepositoryImpl) finish(ctx context.Context, span trace.Span, operation string, start time.Time, err error) {
	r.metrics.ObserveQuery(ctx, operation, start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}

func scanAttraction(row pgx.Row) (AttractionRow, error) {
	var a AttractionRow
	var reviewsJSON []byte
	if err := row.Scan(
		&a.ID, &a.Name, &a.Description, &a.Image, &a.Latitude, &a.Longitude,
		&a.Address, &a.City, &a.State, &a.Rating, &a.Category,
		&a.AdmissionFee, &a.OpeningHours, &a.Website,
		&reviewsJSON,
	); err != nil {
		return AttractionRow{}, err
	}
	if len(reviewsJSON) > 0 {
		if err := json.Unmarshal(reviewsJSON, &a.Reviews); err != nil {
			return AttractionRow{}, fmt.Errorf("failed to decode reviews for attraction %s: %w", a.ID, err)
		}
	}
	return a, nil
}

func (r *RepositoryImpl) ListAttractions(ctx context.Context) (attractions []types.Attraction, err error) {
	ctx, span := r.startSpan(ctx, "ListAttractions", "SELECT", "attractions")
	defer span.End()
	start := time.Now()
	defer func() { r.finish(ctx, span, "SELECT", start, err) }()

	query := selectAttractionsWithReviews + `
	GROUP BY a.id
	ORDER BY a.name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query attractions: %w", err)
	}
	defer rows.Close()

	attractions = make([]types.Attraction, 0)
	for rows.Next() {
		row, err := scanAttraction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attraction row: %w", err)
		}
		attractions = append(attractions, ToAttraction(row))
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attraction rows: %w", err)
	}

	if len(attractions) == 0 {
		r.logger.WarnContext(ctx, "No attractions found in the database")
	}
	span.SetAttributes(attribute.Int("attractions.count", len(attractions)))
	return attractions, nil
}

func (r *RepositoryImpl) GetAttraction(ctx context.Context, id uuid.UUID) (attraction *types.Attraction, err error) {
	ctx, span := r.startSpan(ctx, "GetAttraction", "SELECT", "attractions")
	defer span.End()
	span.SetAttributes(attribute.String("attraction.id", id.String()))
	start := time.Now()
	defer func() { r.finish(ctx, span, "SELECT", start, err) }()

	query := selectAttractionsWithReviews + `
	WHERE a.id = $1
	GROUP BY a.id`

	row, err := scanAttraction(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("attraction %s: %w", id, api.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get attraction: %w", err)
	}
	a := ToAttraction(row)
	return &a, nil
}

// FindAttractionIDByName returns the oldest attraction whose name matches exactly.
func (r *RepositoryImpl) FindAttractionIDByName(ctx context.Context, name string) (id uuid.UUID, found bool, err error) {
	ctx, span := r.startSpan(ctx, "FindAttractionIDByName", "SELECT", "attractions")
	defer span.End()
	start := time.Now()
	defer func() { r.finish(ctx, span, "SELECT", start, err) }()

	query := `SELECT id FROM attractions WHERE name = $1 ORDER BY created_at LIMIT 1`
	if err = r.db.QueryRow(ctx, query, name).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("failed to look up attraction by name: %w", err)
	}
	return id, true, nil
}

func (r *RepositoryImpl) CreateAttraction(ctx context.Context, in types.AttractionInput) (attraction *types.Attraction, err error) {
	ctx, span := r.startSpan(ctx, "CreateAttraction", "INSERT", "attractions")
	defer span.End()
	start := time.Now()
	defer func() { r.finish(ctx, span, "INSERT", start, err) }()

	row := ToRow(in)
	query := `
		INSERT INTO attractions (
			name, description, image, latitude, longitude, address, city, state,
			rating, category, admission_fee, opening_hours, website
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`

	if err = r.db.QueryRow(ctx, query,
		row.Name, row.Description, row.Image, row.Latitude, row.Longitude,
		row.Address, row.City, row.State, row.Rating, row.Category,
		row.AdmissionFee, row.OpeningHours, row.Website,
	).Scan(&row.ID); err != nil {
		return nil, fmt.Errorf("failed to insert attraction: %w", err)
	}

	r.logger.InfoContext(ctx, "Attraction created", slog.String("name", row.Name), slog.String("id", row.ID.String()))
	a := ToAttraction(row)
	return &a, nil
}

// UpdateAttraction patches only the columns present in patch. A missing row
// is not reported.
func (r *RepositoryImpl) UpdateAttraction(ctx context.Context, id uuid.UUID, patch types.AttractionPatch) (err error) {
	ctx, span := r.startSpan(ctx, "UpdateAttraction", "UPDATE", "attractions")
	defer span.End()
	span.SetAttributes(attribute.String("attraction.id", id.String()))

	l := r.logger.With(slog.String("method", "UpdateAttraction"), slog.String("attractionID", id.String()))

	cols := PatchColumns(patch)
	if len(cols) == 0 {
		l.DebugContext(ctx, "UpdateAttraction called with no fields to update")
		span.SetStatus(codes.Ok, "No update fields provided")
		return nil
	}

	start := time.Now()
	defer func() { r.finish(ctx, span, "UPDATE", start, err) }()

	setClauses := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", c.Column, i+1))
		args = append(args, c.Value)
		span.SetAttributes(attribute.Bool("update."+c.Column, true))
	}
	setClauses = append(setClauses, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE attractions SET %s WHERE id = $%d", strings.Join(setClauses, ", "), len(args))

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update attraction: %w", err)
	}
	l.DebugContext(ctx, "Attraction updated", slog.Int64("rows_affected", tag.RowsAffected()))
	return nil
}

func (r *RepositoryImpl) DeleteAttraction(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := r.startSpan(ctx, "DeleteAttraction", "DELETE", "attractions")
	defer span.End()
	start := time.Now()
	defer func() { r.finish(ctx, span, "DELETE", start, err) }()

	if _, err = r.db.Exec(ctx, `DELETE FROM attractions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete attraction: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) CreateReview(ctx context.Context, attractionID uuid.UUID, userID *uuid.UUID, rating float64, comment string) (review *types.Review, err error) {
	ctx, span := r.startSpan(ctx, "CreateReview", "INSERT", "reviews")
	defer span.End()
	start := time.Now()
	defer func() { r.finish(ctx, span, "INSERT", start, err) }()

	row := ReviewRow{AttractionID: attractionID, UserID: userID, Rating: rating, Comment: comment}
	query := `
		INSERT INTO reviews (attraction_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	if err = r.db.QueryRow(ctx, query, attractionID, userID, rating, comment).Scan(&row.ID, &row.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return nil, fmt.Errorf("attraction %s: %w", attractionID, api.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to insert review: %w", err)
	}

	rv := ToReview(row)
	return &rv, nil
}

func (r *RepositoryImpl) UpdateReview(ctx context.Context, reviewID uuid.UUID, rating float64, comment string) (err error) {
	ctx, span := r.startSpan(ctx, "UpdateReview", "UPDATE", "reviews")
	defer span.End()
	start := time.Now()
	defer func() { r.finish(ctx, span, "UPDATE", start, err) }()

	if _, err = r.db.Exec(ctx, `UPDATE reviews SET rating = $1, comment = $2 WHERE id = $3`, rating, comment, reviewID); err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) DeleteReview(ctx context.Context, reviewID uuid.UUID) (err error) {
	ctx, span := r.startSpan(ctx, "DeleteReview", "DELETE", "reviews")
	defer span.End()
	start := time.Now()
	defer func() { r.finish(ctx, span, "DELETE", start, err) }()

	if _, err = r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, reviewID); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}
