package postgres

import (
	domain "github.com/barangay/docucheck/internal/audit"
	"github.com/barangay/docucheck/internal/core/datamodel/audit"
	"gorm.io/gorm"
)

// AuditRepository implements audit.Repository using GORM
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) domain.Repository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(entry *audit.LogEntry) error {
	return r.db.Create(entry).Error
}

func (r *AuditRepository) List(limit int) ([]audit.LogEntry, error) {
	var logs []audit.LogEntry
	err := r.db.Order("timestamp DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

func (r *AuditRepository) CountVerifications(status string) (int64, error) {
	var n int64
	err := r.db.Model(&audit.LogEntry{}).
		Where("action_type = ? AND status = ?", domain.ActionVerifyDocument, status).
		Count(&n).Error
	return n, err
}
