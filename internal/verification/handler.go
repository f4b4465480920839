package verification

import (
	"encoding/json"
	"log/slog"
	"net/http"

	datamodel "github.com/barangay/docucheck/internal/core/datamodel/document"
	"github.com/barangay/docucheck/internal/transport"
	"github.com/barangay/docucheck/pkg/logger"
)

const maxImageUploadBytes = 10 << 20

type ValidateQRDTO struct {
	Hash         string `json:"hash"`
	DocumentType string `json:"documentType"`
}

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

// ValidateQR handles POST /api/validate-qr: a hash typed or scanned by
// the checker.
func (h *Handler) ValidateQR(w http.ResponseWriter, r *http.Request) {
	var dto ValidateQRDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("ValidateQR: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Verify(r.Context(), dto.Hash, datamodel.Type(dto.DocumentType))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

// VerifyImage handles POST /api/verify-image: a multipart QR image
// upload under the "image" field, optional documentType form value.
func (h *Handler) VerifyImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		h.Logger.Error("VerifyImage: invalid multipart form", "error", err)
		h.WriteError(w, http.StatusBadRequest, "image upload is required")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		h.Logger.Error("VerifyImage: missing image file", "error", err)
		h.WriteError(w, http.StatusBadRequest, "image upload is required")
		return
	}
	defer file.Close()

	claimedType := datamodel.Type(r.FormValue("documentType"))

	result, err := h.Service.VerifyImage(r.Context(), file, claimedType)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}
