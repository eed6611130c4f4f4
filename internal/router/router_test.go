package router

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/usa-attractions/internal/api/attraction"
	"github.com/FACorreiaa/usa-attractions/internal/api/auth"
)

func setupRouterTest(limit int) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	}
	return SetupRouter(&Config{
		AuthHandler:            auth.NewAuthHandler(nil, logger),
		AttractionHandler:      attraction.NewHandlerImpl(nil, logger),
		AuthenticateMiddleware: deny,
		SignInLimit:            limit,
	})
}

func TestSetupRouter_Ping(t *testing.T) {
	r := setupRouterTest(0)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestSetupRouter_ProtectedRoutes(t *testing.T) {
	r := setupRouterTest(0)
	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/v1/attractions"},
		{http.MethodPost, "/api/v1/attractions"},
		{http.MethodGet, "/api/v1/attractions/4b1c5e2a-8f3d-4c1e-9a57-0d2f6b7c8e91"},
		{http.MethodPatch, "/api/v1/attractions/4b1c5e2a-8f3d-4c1e-9a57-0d2f6b7c8e91"},
		{http.MethodDelete, "/api/v1/attractions/4b1c5e2a-8f3d-4c1e-9a57-0d2f6b7c8e91"},
		{http.MethodPost, "/api/v1/attractions/4b1c5e2a-8f3d-4c1e-9a57-0d2f6b7c8e91/reviews"},
		{http.MethodPut, "/api/v1/reviews/4b1c5e2a-8f3d-4c1e-9a57-0d2f6b7c8e91"},
		{http.MethodDelete, "/api/v1/reviews/4b1c5e2a-8f3d-4c1e-9a57-0d2f6b7c8e91"},
		{http.MethodPost, "/api/v1/auth/signout"},
		{http.MethodGet, "/api/v1/auth/session"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(rt.method, rt.path, nil))
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestSetupRouter_SignInRateLimit(t *testing.T) {
	r := setupRouterTest(2)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signin", strings.NewReader("{"))
		req.RemoteAddr = "203.0.113.7:4321"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusBadRequest, http.StatusBadRequest, http.StatusTooManyRequests}, codes)
}
