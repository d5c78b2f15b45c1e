package handler

import (
	"net/http"
	"strconv"

	"github.com/skip2/go-qrcode"

	"vdcode/internal/logger"
)

// QR handles GET /codes/{code}/qr.png requests. Only issued, unexpired codes
// are rendered.
func (h *Handler) QR(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		h.writeError(w, http.StatusBadRequest, "validation_error", "code is required")
		return
	}

	size, err := parseQRSize(r.URL.Query().Get("size"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	record, err := h.service.Stats(r.Context(), code)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to render code")
		return
	}

	png, err := qrcode.Encode(record.Code.String(), qrcode.Medium, size)
	if err != nil {
		h.log.ErrorContext(r.Context(), "encoding qr", logger.Code(record.Code), logger.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to render code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
