package audit

import "time"

// LogEntry maps the audit_logs table. JSON tags keep the legacy
// PascalCase payload the audit screen expects.
type LogEntry struct {
	LogID         int64     `gorm:"column:log_id;primaryKey" json:"LogID"`
	Timestamp     time.Time `gorm:"column:timestamp;autoCreateTime" json:"Timestamp"`
	ActionType    string    `gorm:"column:action_type;not null" json:"ActionType"`
	DocumentID    *int64    `gorm:"column:document_id" json:"DocumentID"`
	DocumentType  *string   `gorm:"column:document_type" json:"DocumentType"`
	CheckerMethod *string   `gorm:"column:checker_method" json:"CheckerMethod"`
	UserID        int64     `gorm:"column:user_id" json:"UserID"`
	UserName      string    `gorm:"column:user_name" json:"UserName"`
	UserRole      string    `gorm:"column:user_role" json:"UserRole"`
	Status        string    `gorm:"column:status;not null" json:"Status"`
	FailureReason string    `gorm:"column:failure_reason" json:"FailureReason"`
}

func (LogEntry) TableName() string { return "audit_logs" }
