package auth

import (
	"errors"
	"log/slog"
	"net/http"

	appMiddleware "github.com/FACorreiaa/usa-attractions/app/middleware"
	"github.com/FACorreiaa/usa-attractions/internal/api"
	"github.com/FACorreiaa/usa-attractions/internal/types"
)

type AuthHandler struct {
	AuthService AuthService
	logger      *slog.Logger
}

func NewAuthHandler(authService AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		AuthService: authService,
	}
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "SignUp"))

	var req types.Credentials
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.AuthService.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, api.ErrBadRequest):
			api.ErrorResponse(w, r, http.StatusBadRequest, "Email must be valid and password at least 8 characters")
		case errors.Is(err, api.ErrConflict):
			api.ErrorResponse(w, r, http.StatusConflict, "An account with this email already exists")
		default:
			l.ErrorContext(ctx, "Sign-up failed", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create account")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, SignUpResponse{ID: user.ID.String(), Email: user.Email})
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "SignIn"))

	var req types.Credentials
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.AuthService.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		l.ErrorContext(ctx, "Sign-in failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, session)
}

// SignOut must run behind the Authenticate middleware.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tokenID, ok := appMiddleware.GetTokenIDFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	if err := h.AuthService.SignOut(ctx, tokenID); err != nil {
		h.logger.ErrorContext(ctx, "Sign-out failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to sign out")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, Response{Success: true, Message: "Signed out"})
}

// GetSession returns the signed-in user. It must run behind the Authenticate middleware.
func (h *AuthHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := appMiddleware.GetUserIDFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.AuthService.GetSession(ctx, userID)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusUnauthorized, "User no longer exists")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to load session user", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to load session")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, user)
}
