package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"vdcode/internal/shortcode"
)

// Validate handles POST /validate requests. Nothing is stored or looked up.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	raw := req.Code
	if req.Normalize {
		raw = shortcode.Normalize(raw)
	}

	code, err := h.service.Validate(raw)
	if err != nil {
		var charErr *shortcode.InvalidCharacterError
		if !errors.As(err, &charErr) {
			h.writeServiceError(w, r, err, "failed to validate code")
			return
		}
		h.writeJSON(w, http.StatusUnprocessableEntity, ValidateResponse{
			Valid:     false,
			Error:     "invalid_character",
			Character: string(charErr.Char),
			Position:  &charErr.Position,
		})
		return
	}

	h.writeJSON(w, http.StatusOK, ValidateResponse{Valid: true, Code: code.String()})
}
