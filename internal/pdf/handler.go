package pdf

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	datamodel "github.com/barangay/docucheck/internal/core/datamodel/document"
	"github.com/barangay/docucheck/internal/document"
	"github.com/barangay/docucheck/internal/transport"
	"github.com/barangay/docucheck/pkg/logger"
)

type CertificateRequestDTO struct {
	DocumentType string `json:"documentType"`
	ID           int64  `json:"id"`
}

// RecordLoader fetches the issued record a certificate is built from.
type RecordLoader interface {
	GetByID(ctx context.Context, t datamodel.Type, id int64) (*document.Record, error)
}

type Handler struct {
	*transport.BaseHandler
	Assembler *Assembler
	Records   RecordLoader
}

func NewHandler(assembler *Assembler, records RecordLoader) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Assembler:   assembler,
		Records:     records,
	}
}

// GenerateCertificate handles POST /api/certificate: a filled,
// stamped and flattened PDF for an issued document.
func (h *Handler) GenerateCertificate(w http.ResponseWriter, r *http.Request) {
	var dto CertificateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("GenerateCertificate: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Records.GetByID(r.Context(), datamodel.Type(dto.DocumentType), dto.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	// assembled fully in memory so a failure never writes partial bytes
	pdfBytes, err := h.Assembler.Assemble(r.Context(), rec)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	filename := fmt.Sprintf("%s-%d.pdf", dto.DocumentType, dto.ID)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdfBytes); err != nil {
		h.Logger.Error("GenerateCertificate: write failed", "error", err)
	}
}
