package verification

import (
	"context"
	"io"
	"log/slog"
	"strings"

	errors "github.com/barangay/docucheck/internal"
	datamodel "github.com/barangay/docucheck/internal/core/datamodel/document"
	"github.com/barangay/docucheck/internal/core/events"
	"github.com/barangay/docucheck/internal/document"
	"github.com/barangay/docucheck/internal/qr"
)

const (
	CheckerMethodHash    = "hash_input"
	CheckerMethodQRImage = "qr_upload"
)

// Result is the public verification response. The document summary is
// redacted: names, purpose and issue date only, never contact details
// or birthdates.
type Result struct {
	IsValid      bool             `json:"isValid"`
	DocumentType datamodel.Type   `json:"documentType,omitempty"`
	Document     *DocumentSummary `json:"document,omitempty"`
}

type DocumentSummary struct {
	Type     datamodel.Type `json:"type"`
	FullName string         `json:"fullName"`
	Purpose  string         `json:"purpose,omitempty"`
	IssuedOn string         `json:"issuedOn"`
}

// DocumentFinder is the slice of the document repository verification
// needs.
type DocumentFinder interface {
	GetByHash(ctx context.Context, t datamodel.Type, hash string) (*document.Record, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service answers public authenticity checks. Lookups are read-only and
// idempotent; a not-found and a type mismatch are indistinguishable in
// the response.
type Service struct {
	docs     DocumentFinder
	bus      EventPublisher
	demoMode bool
	logger   *slog.Logger
}

func NewService(docs DocumentFinder, bus EventPublisher, demoMode bool, logger *slog.Logger) *Service {
	return &Service{
		docs:     docs,
		bus:      bus,
		demoMode: demoMode,
		logger:   logger,
	}
}

// Verify checks a hash code against the issued-document tables. When a
// claimed type is supplied only that table is consulted, so a hash
// issued under a different type fails the check.
func (s *Service) Verify(ctx context.Context, hash string, claimedType datamodel.Type) (*Result, error) {
	return s.verify(ctx, hash, claimedType, CheckerMethodHash)
}

func (s *Service) verify(ctx context.Context, hash string, claimedType datamodel.Type, checkerMethod string) (*Result, error) {
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return nil, errors.NewValidationError("hash is required", errors.ErrCodeMissingField)
	}
	if claimedType != "" && !claimedType.Valid() {
		return nil, errors.ErrUnknownDocType
	}

	rec, found := s.lookup(ctx, hash, claimedType)

	if !found {
		s.logger.Info("verification failed: hash not found",
			"checker_method", checkerMethod,
			"claimed_type", claimedType)
		s.publishOutcome(ctx, nil, string(claimedType), checkerMethod, false, "hash not found")
		return &Result{IsValid: false}, nil
	}

	s.logger.Info("verification succeeded",
		"checker_method", checkerMethod,
		"document_type", rec.Type,
		"document_id", rec.ID)
	s.publishOutcome(ctx, &rec.ID, string(rec.Type), checkerMethod, true, "")

	return &Result{
		IsValid:      true,
		DocumentType: rec.Type,
		Document: &DocumentSummary{
			Type:     rec.Type,
			FullName: rec.FullName(),
			Purpose:  summaryPurpose(rec),
			IssuedOn: rec.IssuedOn.Format("2006-01-02"),
		},
	}, nil
}

// VerifyImage decodes an uploaded QR image and verifies the embedded
// hash. Decode failures are client errors asking for a clearer image.
func (s *Service) VerifyImage(ctx context.Context, image io.Reader, claimedType datamodel.Type) (*Result, error) {
	hash, err := qr.Decode(image)
	if err != nil {
		s.logger.Info("verification failed: QR decode error", "claimed_type", claimedType)
		s.publishOutcome(ctx, nil, string(claimedType), CheckerMethodQRImage, false, "no QR code in image")
		return nil, err
	}
	return s.verify(ctx, hash, claimedType, CheckerMethodQRImage)
}

func (s *Service) lookup(ctx context.Context, hash string, claimedType datamodel.Type) (*document.Record, bool) {
	if s.docs != nil {
		types := []datamodel.Type{datamodel.TypeClearance, datamodel.TypeIndigency, datamodel.TypeBusinessPermit}
		if claimedType != "" {
			types = []datamodel.Type{claimedType}
		}

		for _, t := range types {
			rec, err := s.docs.GetByHash(ctx, t, hash)
			if err == nil && rec != nil {
				return rec, true
			}
		}
	}

	// Sample documents for trying the public checker without issuing
	// anything. Off in real deployments.
	if s.demoMode {
		return demoLookup(hash, claimedType)
	}
	return nil, false
}

func (s *Service) publishOutcome(ctx context.Context, documentID *int64, documentType, checkerMethod string, isValid bool, failureReason string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.NewDocumentVerifiedEvent(documentID, documentType, checkerMethod, isValid, failureReason))
}

func summaryPurpose(rec *document.Record) string {
	if rec.Type == datamodel.TypeBusinessPermit {
		return rec.BusinessNature
	}
	return rec.Purpose
}
