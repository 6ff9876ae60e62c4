package handlers

import (
	"net/http"

	qrcode "github.com/skip2/go-qrcode"
)

// handleQR returns a QR code PNG of the game URL so a phone on the same
// network can join without typing an address.
func (h *Handlers) handleQR(w http.ResponseWriter, r *http.Request) {
	baseURL := h.BaseURL()
	if baseURL == "" {
		respondError(w, NotFound("Base URL not configured"))
		return
	}

	png, err := qrcode.Encode(baseURL, qrcode.Medium, 256)
	if err != nil {
		respondError(w, InternalError(err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
