package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"vdcode/internal/service"
)

const groupSize = 3

// Issue handles POST /codes requests.
func (h *Handler) Issue(w http.ResponseWriter, r *http.Request) {
	var req IssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	if err := validateLabel(req.Label); err != nil {
		h.writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if err := validateLength(req.Length); err != nil {
		h.writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	params := service.IssueParams{
		Label:             req.Label,
		Length:            req.Length,
		NoRepeats:         req.NoRepeats,
		NoAdjacentRepeats: req.NoAdjacentRepeats,
	}
	if req.TTLSeconds != nil {
		params.TTL = time.Duration(*req.TTLSeconds) * time.Second
		if err := validateTTL(params.TTL); err != nil {
			h.writeError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
	}

	record, err := h.service.Issue(r.Context(), params)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to issue code")
		return
	}

	code := record.Code.String()
	h.writeJSON(w, http.StatusCreated, IssueResponse{
		Code:      code,
		Grouped:   record.Code.Group(groupSize, "-"),
		Label:     record.Label,
		CreatedAt: record.CreatedAt.Format(time.RFC3339),
		ExpiresAt: record.ExpiresAt.Format(time.RFC3339),
		QRURL:     h.baseURL + "/codes/" + code + "/qr.png",
	})
}
