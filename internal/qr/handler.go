package qr

import (
	"log/slog"
	"net/http"

	"github.com/barangay/docucheck/internal/transport"
	"github.com/barangay/docucheck/pkg/logger"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	Gateway *Gateway
}

func NewHandler(gateway *Gateway) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Gateway:     gateway,
	}
}

// RenderQR handles GET /api/qr/{hash}: the QR PNG for a hash code.
func (h *Handler) RenderQR(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "hash")
	if hash == "" {
		h.WriteError(w, http.StatusBadRequest, "hash is required")
		return
	}

	png, err := h.Gateway.Render(r.Context(), hash)
	if err != nil {
		h.Logger.Error("RenderQR: render failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to render QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		h.Logger.Error("RenderQR: write failed", "error", err)
	}
}
