package handler

import (
	"net/http"
	"time"
)

// Lookup handles GET /codes/{code} requests. Every successful lookup is counted.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		h.writeError(w, http.StatusBadRequest, "validation_error", "code is required")
		return
	}

	record, err := h.service.Lookup(r.Context(), code)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to look up code")
		return
	}

	h.writeJSON(w, http.StatusOK, LookupResponse{
		Code:      record.Code.String(),
		Label:     record.Label,
		ExpiresAt: record.ExpiresAt.Format(time.RFC3339),
	})
}
