package document

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/barangay/docucheck/internal/core/datamodel/document"
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

// IssueClearance handles POST /api/clearance.
func (h *Handler) IssueClearance(w http.ResponseWriter, r *http.Request) {
	h.issue(w, r, document.TypeClearance)
}

// IssueIndigency handles POST /api/indigency.
func (h *Handler) IssueIndigency(w http.ResponseWriter, r *http.Request) {
	h.issue(w, r, document.TypeIndigency)
}

// IssueBusinessPermit handles POST /api/businesspermit.
func (h *Handler) IssueBusinessPermit(w http.ResponseWriter, r *http.Request) {
	h.issue(w, r, document.TypeBusinessPermit)
}

func (h *Handler) issue(w http.ResponseWriter, r *http.Request, t document.Type) {
	var dto SubmissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("issue: invalid request body", "error", err, "document_type", t)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Issue(r.Context(), t, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("issue: document issued",
		"document_type", t,
		"document_id", resp.ID)

	h.WriteJSON(w, http.StatusOK, resp)
}

// RecentIssuance handles GET /api/recent-issuance.
func (h *Handler) RecentIssuance(w http.ResponseWriter, r *http.Request) {
	recent, err := h.Service.RecentIssuance(r.Context())
	if err != nil {
		h.Logger.Error("RecentIssuance: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, RecentIssuanceResponseDTO{Recent: recent})
}

// Stats handles GET /api/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		h.Logger.Error("Stats: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}
