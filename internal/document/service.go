package document

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"time"

	errors "github.com/barangay/docucheck/internal"
	"github.com/barangay/docucheck/internal/core/datamodel/document"
	"github.com/barangay/docucheck/internal/core/events"
)

// EventPublisher is the slice of the event bus the service needs.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// CheckCounter reports verification outcomes recorded in the audit
// trail, for the dashboard counters.
type CheckCounter interface {
	CountVerifications(status string) (int64, error)
}

const recentIssuanceLimit = 10

// Service handles document issuance business logic
type Service struct {
	repo     Repository
	bus      EventPublisher
	checks   CheckCounter
	hashSalt string
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(repo Repository, bus EventPublisher, checks CheckCounter, hashSalt string, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		bus:      bus,
		checks:   checks,
		hashSalt: hashSalt,
		logger:   logger,
		now:      time.Now,
	}
}

// Issue validates a submission, derives its hash code, persists the row
// and reports the issuance on the event bus. The hash is derived before
// the insert and stored with the row; it is never re-read or re-derived.
func (s *Service) Issue(ctx context.Context, t document.Type, dto *SubmissionDTO) (*IssueResponseDTO, error) {
	schema, ok := SchemaFor(t)
	if !ok {
		s.logger.Warn("issuance rejected: unknown document type", "document_type", t)
		return nil, errors.ErrUnknownDocType
	}

	if err := schema.Validate(dto); err != nil {
		s.logger.Warn("issuance rejected: validation failed",
			"document_type", t,
			"error", err.GetDetailedMessage())
		return nil, err
	}

	rec := schema.ToRecord(dto)
	rec.HashCode = DeriveHash(dto.Fields(), s.hashSalt, s.now())

	if err := s.repo.Insert(rec); err != nil {
		s.logger.Error("failed to insert document", "error", err, "document_type", t)
		return nil, errors.NewDatabaseError(err)
	}

	s.logger.Info("document issued",
		"document_type", t,
		"document_id", rec.ID,
		"hash_code", rec.HashCode)

	userID := int64(0)
	if id := errors.UserIDFromContext(ctx); id != "" {
		userID = parseUserID(id)
	}
	if s.bus != nil {
		s.bus.Publish(ctx, events.NewDocumentIssuedEvent(
			rec.ID, string(t), rec.HashCode,
			userID,
			errors.UserNameFromContext(ctx),
			errors.UserRoleFromContext(ctx),
		))
	}

	return &IssueResponseDTO{
		Message:  schema.SuccessMessage,
		ID:       rec.ID,
		HashCode: rec.HashCode,
	}, nil
}

// RecentIssuance merges the per-table top ten into a single feed sorted
// by issue date descending, capped at ten rows.
func (s *Service) RecentIssuance(ctx context.Context) ([]RecentEntry, error) {
	all := make([]RecentEntry, 0, 3*recentIssuanceLimit)
	for _, t := range []document.Type{document.TypeIndigency, document.TypeClearance, document.TypeBusinessPermit} {
		entries, err := s.repo.Recent(t, recentIssuanceLimit)
		if err != nil {
			s.logger.Error("failed to query recent issuances", "error", err, "document_type", t)
			return nil, errors.NewDatabaseError(err)
		}
		all = append(all, entries...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].IssuedOn.After(all[j].IssuedOn)
	})
	if len(all) > recentIssuanceLimit {
		all = all[:recentIssuanceLimit]
	}
	return all, nil
}

// Stats assembles the dashboard counters.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats

	counts := map[document.Type]*int64{
		document.TypeClearance:      &stats.Clearances,
		document.TypeIndigency:      &stats.Indigencies,
		document.TypeBusinessPermit: &stats.BusinessPermits,
	}
	for t, dst := range counts {
		n, err := s.repo.Count(t)
		if err != nil {
			s.logger.Error("failed to count documents", "error", err, "document_type", t)
			return nil, errors.NewDatabaseError(err)
		}
		*dst = n
	}
	stats.TotalIssued = stats.Clearances + stats.Indigencies + stats.BusinessPermits

	if s.checks != nil {
		ok, err := s.checks.CountVerifications("success")
		if err != nil {
			s.logger.Error("failed to count successful checks", "error", err)
			return nil, errors.NewDatabaseError(err)
		}
		failed, err := s.checks.CountVerifications("failed")
		if err != nil {
			s.logger.Error("failed to count failed checks", "error", err)
			return nil, errors.NewDatabaseError(err)
		}
		stats.SuccessfulChecks = ok
		stats.FailedChecks = failed
	}

	return &stats, nil
}

func parseUserID(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

// GetByID loads one record for certificate assembly.
func (s *Service) GetByID(ctx context.Context, t document.Type, id int64) (*Record, error) {
	if !t.Valid() {
		return nil, errors.ErrUnknownDocType
	}
	rec, err := s.repo.GetByID(t, id)
	if err != nil {
		s.logger.Warn("document lookup failed", "document_type", t, "document_id", id, "error", err)
		return nil, errors.ErrDocumentNotFound
	}
	return rec, nil
}

// GetByHash looks a record up by its verification token.
func (s *Service) GetByHash(ctx context.Context, t document.Type, hash string) (*Record, error) {
	if !t.Valid() {
		return nil, errors.ErrUnknownDocType
	}
	rec, err := s.repo.GetByHash(t, hash)
	if err != nil {
		return nil, errors.ErrDocumentNotFound
	}
	return rec, nil
}
