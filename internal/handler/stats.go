package handler

import (
	"net/http"
	"time"
)

// Stats handles GET /codes/{code}/stats requests.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		h.writeError(w, http.StatusBadRequest, "validation_error", "code is required")
		return
	}

	record, err := h.service.Stats(r.Context(), code)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to get stats")
		return
	}

	resp := StatsResponse{
		Code:        record.Code.String(),
		Label:       record.Label,
		CreatedAt:   record.CreatedAt.Format(time.RFC3339),
		ExpiresAt:   record.ExpiresAt.Format(time.RFC3339),
		LookupCount: record.LookupCount,
	}

	// Only set LastLookupAt if it's not zero
	if !record.LastLookupAt.IsZero() {
		formatted := record.LastLookupAt.Format(time.RFC3339)
		resp.LastLookupAt = &formatted
	}

	h.writeJSON(w, http.StatusOK, resp)
}
