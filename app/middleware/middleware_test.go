package appMiddleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/usa-attractions/internal/types"
)

var testSecret = []byte("test-secret")

const testIssuer = "usa-attractions"

type revokedSet map[string]bool

func (s revokedSet) IsRevoked(tokenID string) bool { return s[tokenID] }

func signToken(t *testing.T, secret []byte, userID, jti, issuer string, exp time.Time) string {
	t.Helper()
	claims := types.Claims{
		UserID: userID,
		Email:  "visitor@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return signed
}

func TestAuthenticate(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userID := uuid.New()
	revoked := revokedSet{"revoked-jti": true}

	var gotUser uuid.UUID
	var gotToken string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = GetUserIDFromContext(r.Context())
		gotToken, _ = GetTokenIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := Authenticate(logger, testSecret, testIssuer, revoked)(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid token", header: "Bearer " + signToken(t, testSecret, userID.String(), "jti-1", testIssuer, time.Now().Add(time.Hour)), wantStatus: http.StatusNoContent},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + signToken(t, testSecret, userID.String(), "jti-2", testIssuer, time.Now().Add(-time.Minute)), wantStatus: http.StatusUnauthorized},
		{name: "other secret", header: "Bearer " + signToken(t, []byte("nope"), userID.String(), "jti-3", testIssuer, time.Now().Add(time.Hour)), wantStatus: http.StatusUnauthorized},
		{name: "other issuer", header: "Bearer " + signToken(t, testSecret, userID.String(), "jti-4", "someone-else", time.Now().Add(time.Hour)), wantStatus: http.StatusUnauthorized},
		{name: "revoked", header: "Bearer " + signToken(t, testSecret, userID.String(), "revoked-jti", testIssuer, time.Now().Add(time.Hour)), wantStatus: http.StatusUnauthorized},
		{name: "bad user id", header: "Bearer " + signToken(t, testSecret, "not-a-uuid", "jti-5", testIssuer, time.Now().Add(time.Hour)), wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUser, gotToken = uuid.Nil, ""
			req := httptest.NewRequest(http.MethodGet, "/api/v1/attractions", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusNoContent {
				assert.Equal(t, userID, gotUser)
				assert.Equal(t, "jti-1", gotToken)
			} else {
				assert.Equal(t, uuid.Nil, gotUser)
			}
		})
	}
}

func TestAuthenticate_PanicsWithoutSecret(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.Panics(t, func() { Authenticate(logger, nil, testIssuer, nil) })
}

func TestGetUserIDFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetUserIDFromContext(req.Context())
	assert.False(t, ok)

	id := uuid.New()
	got, ok := GetUserIDFromContext(WithUserID(req.Context(), id))
	assert.True(t, ok)
	assert.Equal(t, id, got)
}
