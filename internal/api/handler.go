// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/db-engineer-practice/backend/internal/auth"
	"github.com/db-engineer-practice/backend/internal/service"
	"github.com/db-engineer-practice/backend/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	store     *store.MySQLStore
	users     *service.UserService
	practice  *service.PracticeService
	review    *service.ReviewService
	analytics *service.AnalyticsService
	tokens    *auth.TokenIssuer
	logger    *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(
	s *store.MySQLStore,
	users *service.UserService,
	practice *service.PracticeService,
	review *service.ReviewService,
	analytics *service.AnalyticsService,
	tokens *auth.TokenIssuer,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		store:     s,
		users:     users,
		practice:  practice,
		review:    review,
		analytics: analytics,
		tokens:    tokens,
		logger:    logger,
	}
}

// MessageResponse is the error/confirmation body shape.
type MessageResponse struct {
	Message string `json:"message"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, MessageResponse{Message: message})
}

// decodeJSON decodes the request body into v. On failure it writes a 400
// and returns false (caller should return).
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// handleServiceError maps the service error taxonomy onto HTTP statuses
// and writes the response. Returns true if an error was handled (caller
// should return).
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidState):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err)
		respondError(w, status, "internal error")
	} else {
		respondError(w, status, err.Error())
	}
	return true
}

// handleStoreError covers handlers that read the store directly without
// a service in between.
func (h *Handler) handleStoreError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, entity+" not found")
		return true
	}
	h.logger.Error("store error", "error", err, "entity", entity)
	respondError(w, http.StatusInternalServerError, "internal error")
	return true
}

// pathID parses a numeric {id} path segment; a non-numeric id is reported
// as 404 since no resource can have it.
func pathID(w http.ResponseWriter, r *http.Request, name, entity string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusNotFound, entity+" not found")
		return 0, false
	}
	return id, true
}

// queryInt reads an integer query parameter, falling back on absent or
// unparsable values.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
