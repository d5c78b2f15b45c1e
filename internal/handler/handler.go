package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"vdcode/internal/domain"
	"vdcode/internal/logger"
	"vdcode/internal/service"
	"vdcode/internal/shortcode"
)

// CodeService defines the service interface.
// This allows testing handlers without real service implementation.
type CodeService interface {
	Issue(ctx context.Context, p service.IssueParams) (*domain.CodeRecord, error)
	Validate(raw string) (shortcode.Code, error)
	Lookup(ctx context.Context, raw string) (*domain.CodeRecord, error)
	Stats(ctx context.Context, raw string) (*domain.CodeRecord, error)
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	service CodeService
	baseURL string
	log     *slog.Logger
}

// New creates a new Handler with the given dependencies. A nil log discards output.
func New(service CodeService, baseURL string, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		service: service,
		baseURL: baseURL,
		log:     log.With(logger.Component("handler")),
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string) {
	h.writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: message,
	})
}

// writeServiceError maps errors from CodeService onto the error envelope.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case errors.Is(err, shortcode.ErrInvalidCharacter):
		h.writeError(w, http.StatusBadRequest, "invalid_character", err.Error())
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrExpired):
		h.writeError(w, http.StatusNotFound, "not_found", "code not found or expired")
	case errors.Is(err, shortcode.ErrLengthExceedsUniqueSet):
		h.writeError(w, http.StatusUnprocessableEntity, "length_exceeds_unique_set", err.Error())
	case errors.Is(err, shortcode.ErrInfeasibleConfiguration):
		h.writeError(w, http.StatusUnprocessableEntity, "infeasible_configuration", err.Error())
	case errors.Is(err, shortcode.ErrNegativeLength),
		errors.Is(err, service.ErrInvalidLength),
		errors.Is(err, service.ErrInvalidTTL):
		h.writeError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, service.ErrRetriesExhausted):
		h.writeError(w, http.StatusServiceUnavailable, "code_space_exhausted", "no free code available, try a longer length")
	default:
		h.log.ErrorContext(r.Context(), action, logger.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal_error", action)
	}
}
