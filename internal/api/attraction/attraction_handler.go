package attraction

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	appMiddleware "github.com/FACorreiaa/usa-attractions/app/middleware"
	"github.com/FACorreiaa/usa-attractions/internal/api"
	"github.com/FACorreiaa/usa-attractions/internal/types"
)

// ListFailedMessage is shown when the listing cannot be loaded; the client retries manually.
const ListFailedMessage = "Failed to load attractions. Please try again later."

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	ListAttractions(w http.ResponseWriter, r *http.Request)
	GetAttraction(w http.ResponseWriter, r *http.Request)
	CreateAttraction(w http.ResponseWriter, r *http.Request)
	UpdateAttraction(w http.ResponseWriter, r *http.Request)
	DeleteAttraction(w http.ResponseWriter, r *http.Request)
	AddReview(w http.ResponseWriter, r *http.Request)
	UpdateReview(w http.ResponseWriter, r *http.Request)
	DeleteReview(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	service Service
	logger  *slog.Logger
}

func NewHandlerImpl(service Service, logger *slog.Logger) *HandlerImpl {
	if logger == nil {
		panic("PANIC: Attempting to create HandlerImpl with nil logger!")
	}
	return &HandlerImpl{
		service: service,
		logger:  logger,
	}
}

func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

func validateInput(in types.AttractionInput) string {
	if strings.TrimSpace(in.Name) == "" {
		return "name is required"
	}
	return validateCoordinates(&in.Location.Lat, &in.Location.Lng)
}

func validateCoordinates(lat, lng *float64) string {
	if lat != nil && (*lat < -90 || *lat > 90) {
		return "location.lat must be between -90 and 90"
	}
	if lng != nil && (*lng < -180 || *lng > 180) {
		return "location.lng must be between -180 and 180"
	}
	return ""
}

func validateReview(req types.ReviewRequest) string {
	if req.Rating < 0 || req.Rating > 5 {
		return "rating must be between 0 and 5"
	}
	return ""
}

// ListAttractions serves GET /attractions?q=&category=
func (h *HandlerImpl) ListAttractions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "ListAttractions"))

	filter := types.AttractionFilter{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
	}

	attractions, err := h.service.ListAttractions(ctx, filter)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list attractions", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, ListFailedMessage)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, attractions)
}

func (h *HandlerImpl) GetAttraction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "GetAttraction"))

	id, err := parseIDParam(r, "attractionID")
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid attraction ID format")
		return
	}

	attraction, err := h.service.GetAttraction(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Attraction not found")
			return
		}
		l.ErrorContext(ctx, "Failed to get attraction", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve attraction")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, attraction)
}

func (h *HandlerImpl) CreateAttraction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "CreateAttraction"))

	var in types.AttractionInput
	if err := api.DecodeJSONBody(w, r, &in); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateInput(in); msg != "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, msg)
		return
	}

	created, err := h.service.CreateAttraction(ctx, in)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create attraction", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create attraction")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, created)
}

func (h *HandlerImpl) UpdateAttraction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "UpdateAttraction"))

	id, err := parseIDParam(r, "attractionID")
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid attraction ID format")
		return
	}

	var patch types.AttractionPatch
	if err := api.DecodeJSONBody(w, r, &patch); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "name must not be empty")
		return
	}
	if patch.Location != nil {
		if msg := validateCoordinates(patch.Location.Lat, patch.Location.Lng); msg != "" {
			api.ErrorResponse(w, r, http.StatusBadRequest, msg)
			return
		}
	}

	if err := h.service.UpdateAttraction(ctx, id, patch); err != nil {
		l.ErrorContext(ctx, "Failed to update attraction", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to update attraction")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *HandlerImpl) DeleteAttraction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseIDParam(r, "attractionID")
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid attraction ID format")
		return
	}

	if err := h.service.DeleteAttraction(ctx, id); err != nil {
		h.logger.ErrorContext(ctx, "Failed to delete attraction", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to delete attraction")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddReview stores a review authored by the signed-in user.
func (h *HandlerImpl) AddReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "AddReview"))

	attractionID, err := parseIDParam(r, "attractionID")
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid attraction ID format")
		return
	}

	var req types.ReviewRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateReview(req); msg != "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, msg)
		return
	}

	var userID *uuid.UUID
	if id, ok := appMiddleware.GetUserIDFromContext(ctx); ok {
		userID = &id
	}

	review, err := h.service.AddReview(ctx, attractionID, userID, req)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Attraction not found")
			return
		}
		l.ErrorContext(ctx, "Failed to add review", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to add review")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, review)
}

func (h *HandlerImpl) UpdateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "UpdateReview"))

	reviewID, err := parseIDParam(r, "reviewID")
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid review ID format")
		return
	}

	var req types.ReviewRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateReview(req); msg != "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, msg)
		return
	}

	if err := h.service.UpdateReview(ctx, reviewID, req); err != nil {
		l.ErrorContext(ctx, "Failed to update review", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to update review")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *HandlerImpl) DeleteReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reviewID, err := parseIDParam(r, "reviewID")
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid review ID format")
		return
	}

	if err := h.service.DeleteReview(ctx, reviewID); err != nil {
		h.logger.ErrorContext(ctx, "Failed to delete review", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to delete review")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
