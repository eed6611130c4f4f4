package auth

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appMiddleware "github.com/FACorreiaa/usa-attractions/app/middleware"
	"github.com/FACorreiaa/usa-attractions/internal/api"
	"github.com/FACorreiaa/usa-attractions/internal/types"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, email, password string) (*types.UserAuth, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAuth), args.Error(1)
}

func (m *MockAuthService) SignIn(ctx context.Context, email, password string) (*types.SessionResponse, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.SessionResponse), args.Error(1)
}

func (m *MockAuthService) SignOut(ctx context.Context, tokenID string) error {
	return m.Called(ctx, tokenID).Error(0)
}

func (m *MockAuthService) GetSession(ctx context.Context, userID uuid.UUID) (*types.UserAuth, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAuth), args.Error(1)
}

func (m *MockAuthService) IsRevoked(tokenID string) bool {
	return m.Called(tokenID).Bool(0)
}

func setupAuthHandlerTest() (*AuthHandler, *MockAuthService) {
	svc := new(MockAuthService)
	return NewAuthHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil))), svc
}

func TestAuthHandler_SignIn(t *testing.T) {
	body := `{"email":"visitor@example.com","password":"correct horse"}`

	t.Run("success", func(t *testing.T) {
		h, svc := setupAuthHandlerTest()
		expires := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
		svc.On("SignIn", mock.Anything, "visitor@example.com", "correct horse").
			Return(&types.SessionResponse{AccessToken: "token", ExpiresAt: expires}, nil).Once()

		w := httptest.NewRecorder()
		h.SignIn(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/signin", strings.NewReader(body)))

		require.Equal(t, http.StatusOK, w.Code)
		var got types.SessionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "token", got.AccessToken)
		assert.True(t, expires.Equal(got.ExpiresAt))
		svc.AssertExpectations(t)
	})

	t.Run("bad credentials", func(t *testing.T) {
		h, svc := setupAuthHandlerTest()
		svc.On("SignIn", mock.Anything, "visitor@example.com", "correct horse").
			Return(nil, api.ErrUnauthenticated).Once()

		w := httptest.NewRecorder()
		h.SignIn(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/signin", strings.NewReader(body)))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		h, svc := setupAuthHandlerTest()
		w := httptest.NewRecorder()
		h.SignIn(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/signin", strings.NewReader(`{"email":`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "SignIn", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthHandler_SignUp(t *testing.T) {
	body := `{"email":"visitor@example.com","password":"correct horse"}`

	t.Run("created", func(t *testing.T) {
		h, svc := setupAuthHandlerTest()
		id := uuid.New()
		svc.On("SignUp", mock.Anything, "visitor@example.com", "correct horse").
			Return(&types.UserAuth{ID: id, Email: "visitor@example.com"}, nil).Once()

		w := httptest.NewRecorder()
		h.SignUp(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(body)))

		require.Equal(t, http.StatusCreated, w.Code)
		var got SignUpResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, id.String(), got.ID)
	})

	t.Run("duplicate", func(t *testing.T) {
		h, svc := setupAuthHandlerTest()
		svc.On("SignUp", mock.Anything, mock.Anything, mock.Anything).Return(nil, api.ErrConflict).Once()

		w := httptest.NewRecorder()
		h.SignUp(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(body)))
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestAuthHandler_SessionAndSignOut(t *testing.T) {
	h, svc := setupAuthHandlerTest()
	userID := uuid.New()

	t.Run("no session in context", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.GetSession(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = httptest.NewRecorder()
		h.SignOut(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/signout", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("authenticated", func(t *testing.T) {
		ctx := appMiddleware.WithUserID(context.Background(), userID)
		ctx = context.WithValue(ctx, appMiddleware.TokenIDKey, "jti-1")

		svc.On("GetSession", mock.Anything, userID).
			Return(&types.UserAuth{ID: userID, Email: "visitor@example.com", Password: "secret-hash"}, nil).Once()
		svc.On("SignOut", mock.Anything, "jti-1").Return(nil).Once()

		w := httptest.NewRecorder()
		h.GetSession(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil).WithContext(ctx))
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "secret-hash")
		assert.Contains(t, w.Body.String(), "visitor@example.com")

		w = httptest.NewRecorder()
		h.SignOut(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/signout", nil).WithContext(ctx))
		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})
}
