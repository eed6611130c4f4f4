package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/usa-attractions/internal/api"
	"github.com/FACorreiaa/usa-attractions/internal/types"
)

var _ AuthRepo = (*AuthRepoFactory)(nil)

// DB is the subset of pgxpool.Pool used by the auth repository.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type AuthRepo interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*types.UserAuth, error)
	GetUserByEmail(ctx context.Context, email string) (*types.UserAuth, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*types.UserAuth, error)
}

type AuthRepoFactory struct {
	logger *slog.Logger
	pgpool DB
}

func NewAuthRepoFactory(db DB, logger *slog.Logger) *AuthRepoFactory {
	return &AuthRepoFactory{
		logger: logger,
		pgpool: db,
	}
}

func startUserSpan(ctx context.Context, name, operation string) (context.Context, trace.Span) {
	return otel.Tracer("AuthRepo").Start(ctx, name, trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", operation),
		attribute.String("db.sql.table", "users"),
	))
}

func (r *AuthRepoFactory) CreateUser(ctx context.Context, email, passwordHash string) (*types.UserAuth, error) {
	ctx, span := startUserSpan(ctx, "CreateUser", "INSERT")
	defer span.End()
	l := r.logger.With(slog.String("method", "CreateUser"))

	user := types.UserAuth{Email: strings.ToLower(email), Password: passwordHash}
	err := r.pgpool.QueryRow(ctx,
		"INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id, created_at",
		user.Email, passwordHash).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			l.WarnContext(ctx, "Attempted to sign up with an existing email")
			span.SetStatus(codes.Error, "Duplicate email")
			return nil, fmt.Errorf("user with email %q already exists: %w", user.Email, api.ErrConflict)
		}
		l.ErrorContext(ctx, "Failed to insert user", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return nil, fmt.Errorf("database error creating user: %w", err)
	}

	span.SetStatus(codes.Ok, "User created")
	return &user, nil
}

func (r *AuthRepoFactory) GetUserByEmail(ctx context.Context, email string) (*types.UserAuth, error) {
	ctx, span := startUserSpan(ctx, "GetUserByEmail", "SELECT")
	defer span.End()

	var user types.UserAuth
	err := r.pgpool.QueryRow(ctx,
		"SELECT id, email, password_hash, created_at FROM users WHERE email = $1",
		strings.ToLower(email)).Scan(&user.ID, &user.Email, &user.Password, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "User not found")
			return nil, fmt.Errorf("user not found: %w", api.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("database error fetching user: %w", err)
	}
	span.SetStatus(codes.Ok, "")
	return &user, nil
}

func (r *AuthRepoFactory) GetUserByID(ctx context.Context, userID uuid.UUID) (*types.UserAuth, error) {
	ctx, span := startUserSpan(ctx, "GetUserByID", "SELECT")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID.String()))

	var user types.UserAuth
	err := r.pgpool.QueryRow(ctx,
		"SELECT id, email, password_hash, created_at FROM users WHERE id = $1",
		userID).Scan(&user.ID, &user.Email, &user.Password, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "User not found")
			return nil, fmt.Errorf("user %s: %w", userID, api.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("database error fetching user: %w", err)
	}
	span.SetStatus(codes.Ok, "")
	return &user, nil
}
