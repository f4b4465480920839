package audit

import (
	"context"
	"log/slog"

	errors "github.com/barangay/docucheck/internal"
	"github.com/barangay/docucheck/internal/core/datamodel/audit"
	"github.com/barangay/docucheck/internal/core/events"
)

const (
	ActionIssueDocument  = "issue_document"
	ActionVerifyDocument = "verify_document"
	ActionLogin          = "login"

	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Repository is the persistence boundary for the audit trail.
type Repository interface {
	Append(entry *audit.LogEntry) error
	List(limit int) ([]audit.LogEntry, error)
	CountVerifications(status string) (int64, error)
}

type Subscriber interface {
	Subscribe(eventType string, handler events.Handler)
}

// Service records issuance, verification and login activity and serves
// the audit screen.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// RegisterSubscribers wires the service into the event bus. The audit
// trail is the only consumer of these events.
func (s *Service) RegisterSubscribers(bus Subscriber) {
	bus.Subscribe(events.EventTypeDocumentIssued, s.handleDocumentIssued)
	bus.Subscribe(events.EventTypeDocumentVerified, s.handleDocumentVerified)
	bus.Subscribe(events.EventTypeLoginAttempt, s.handleLoginAttempt)
}

func (s *Service) handleDocumentIssued(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.DocumentIssuedEvent)
	if !ok {
		s.logger.Warn("audit: unexpected event payload", "event_type", event.EventType())
		return nil
	}

	entry := &audit.LogEntry{
		ActionType:   ActionIssueDocument,
		DocumentID:   &e.DocumentID,
		DocumentType: &e.DocumentType,
		UserID:       e.UserID,
		UserName:     e.UserName,
		UserRole:     e.UserRole,
		Status:       StatusSuccess,
	}
	return s.append(entry)
}

func (s *Service) handleDocumentVerified(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.DocumentVerifiedEvent)
	if !ok {
		s.logger.Warn("audit: unexpected event payload", "event_type", event.EventType())
		return nil
	}

	status := StatusSuccess
	if !e.IsValid {
		status = StatusFailed
	}

	entry := &audit.LogEntry{
		ActionType:    ActionVerifyDocument,
		DocumentID:    e.DocumentID,
		CheckerMethod: &e.CheckerMethod,
		Status:        status,
		FailureReason: e.FailureReason,
	}
	if e.DocumentType != "" {
		entry.DocumentType = &e.DocumentType
	}
	return s.append(entry)
}

func (s *Service) handleLoginAttempt(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.LoginAttemptEvent)
	if !ok {
		s.logger.Warn("audit: unexpected event payload", "event_type", event.EventType())
		return nil
	}

	status := StatusSuccess
	if !e.Success {
		status = StatusFailed
	}

	entry := &audit.LogEntry{
		ActionType:    ActionLogin,
		UserID:        e.UserID,
		UserName:      e.UserName,
		UserRole:      e.UserRole,
		Status:        status,
		FailureReason: e.FailureReason,
	}
	return s.append(entry)
}

func (s *Service) append(entry *audit.LogEntry) error {
	if err := s.repo.Append(entry); err != nil {
		s.logger.Error("audit: failed to append log entry",
			"error", err,
			"action_type", entry.ActionType)
		return err
	}
	return nil
}

const defaultListLimit = 500

// List returns the newest audit entries, newest first.
func (s *Service) List(ctx context.Context) ([]audit.LogEntry, error) {
	logs, err := s.repo.List(defaultListLimit)
	if err != nil {
		s.logger.Error("audit: failed to list log entries", "error", err)
		return nil, errors.NewDatabaseError(err)
	}
	return logs, nil
}

// CountVerifications reports how many checks ended in the given status.
func (s *Service) CountVerifications(status string) (int64, error) {
	return s.repo.CountVerifications(status)
}
