package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/crypto/bcrypt"

	"github.com/FACorreiaa/usa-attractions/app/observability/metrics"
	"github.com/FACorreiaa/usa-attractions/config"
	"github.com/FACorreiaa/usa-attractions/internal/api"
	"github.com/FACorreiaa/usa-attractions/internal/types"
)

var _ AuthService = (*AuthServiceImpl)(nil)

type AuthService interface {
	SignUp(ctx context.Context, email, password string) (*types.UserAuth, error)
	SignIn(ctx context.Context, email, password string) (*types.SessionResponse, error)
	SignOut(ctx context.Context, tokenID string) error
	GetSession(ctx context.Context, userID uuid.UUID) (*types.UserAuth, error)
	IsRevoked(tokenID string) bool
}

type AuthServiceImpl struct {
	logger  *slog.Logger
	repo    AuthRepo
	cfg     config.AuthConfig
	revoked *cache.Cache
	metrics *metrics.AppMetrics
	now     func() time.Time
}

func NewAuthService(repo AuthRepo, cfg config.AuthConfig, logger *slog.Logger) *AuthServiceImpl {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	return &AuthServiceImpl{
		logger:  logger,
		repo:    repo,
		cfg:     cfg,
		revoked: cache.New(cfg.TokenTTL, 10*time.Minute),
		metrics: metrics.Get(),
		now:     time.Now,
	}
}

func (s *AuthServiceImpl) SignUp(ctx context.Context, email, password string) (*types.UserAuth, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "SignUp")
	defer span.End()
	l := s.logger.With(slog.String("method", "SignUp"))

	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") || len(password) < minPasswordLength {
		span.SetStatus(codes.Error, "Invalid credentials format")
		return nil, fmt.Errorf("email must be valid and password at least %d characters: %w", minPasswordLength, api.ErrBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		l.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, email, string(hash))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Create user failed")
		return nil, err
	}
	l.InfoContext(ctx, "User signed up", slog.String("userID", user.ID.String()))
	span.SetStatus(codes.Ok, "")
	return user, nil
}

// SignIn checks the credentials and issues an HS256 access token carrying a
// fresh token id.
func (s *AuthServiceImpl) SignIn(ctx context.Context, email, password string) (session *types.SessionResponse, err error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "SignIn")
	defer span.End()
	defer func() {
		result := "success"
		if err != nil {
			result = "failure"
		}
		s.metrics.SignInsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
	}()
	l := s.logger.With(slog.String("method", "SignIn"))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			l.WarnContext(ctx, "Sign-in for unknown email")
			return nil, fmt.Errorf("invalid credentials: %w", api.ErrUnauthenticated)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Lookup failed")
		return nil, err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		l.WarnContext(ctx, "Sign-in with wrong password", slog.String("userID", user.ID.String()))
		return nil, fmt.Errorf("invalid credentials: %w", api.ErrUnauthenticated)
	}

	now := s.now()
	expiresAt := now.Add(s.cfg.TokenTTL)
	claims := types.Claims{
		UserID: user.ID.String(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.cfg.Issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		l.ErrorContext(ctx, "Failed to sign access token", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	l.InfoContext(ctx, "User signed in", slog.String("userID", user.ID.String()))
	span.SetStatus(codes.Ok, "")
	return &types.SessionResponse{AccessToken: signed, ExpiresAt: expiresAt}, nil
}

// SignOut revokes the token id until the longest possible token lifetime has passed.
func (s *AuthServiceImpl) SignOut(ctx context.Context, tokenID string) error {
	if tokenID == "" {
		return fmt.Errorf("missing token id: %w", api.ErrBadRequest)
	}
	s.revoked.Set(tokenID, struct{}{}, s.cfg.TokenTTL)
	s.logger.InfoContext(ctx, "Session revoked", slog.String("jti", tokenID))
	return nil
}

func (s *AuthServiceImpl) IsRevoked(tokenID string) bool {
	_, found := s.revoked.Get(tokenID)
	return found
}

func (s *AuthServiceImpl) GetSession(ctx context.Context, userID uuid.UUID) (*types.UserAuth, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "GetSession")
	defer span.End()

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Lookup failed")
		return nil, err
	}
	return user, nil
}
