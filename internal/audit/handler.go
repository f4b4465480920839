package audit

import (
	"log/slog"
	"net/http"

	"github.com/barangay/docucheck/internal/transport"
	"github.com/barangay/docucheck/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(service *Service) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// ListLogs handles GET /api/audit-logs.
func (h *Handler) ListLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.Service.List(r.Context())
	if err != nil {
		h.Logger.Error("ListLogs: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"logs": logs,
	})
}
