package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeDocumentIssued   = "document.issued"
	EventTypeDocumentVerified = "document.verified"
	EventTypeLoginAttempt     = "auth.login"
)

type DocumentIssuedEvent struct {
	BaseEvent
	DocumentID   int64  `json:"document_id"`
	DocumentType string `json:"document_type"`
	HashCode     string `json:"hash_code"`
	UserID       int64  `json:"user_id"`
	UserName     string `json:"user_name"`
	UserRole     string `json:"user_role"`
}

func NewDocumentIssuedEvent(documentID int64, documentType, hashCode string, userID int64, userName, userRole string) *DocumentIssuedEvent {
	return &DocumentIssuedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeDocumentIssued,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"document_id":   documentID,
				"document_type": documentType,
				"hash_code":     hashCode,
				"user_id":       userID,
				"user_name":     userName,
				"user_role":     userRole,
			},
		},
		DocumentID:   documentID,
		DocumentType: documentType,
		HashCode:     hashCode,
		UserID:       userID,
		UserName:     userName,
		UserRole:     userRole,
	}
}

type DocumentVerifiedEvent struct {
	BaseEvent
	DocumentID    *int64 `json:"document_id"`
	DocumentType  string `json:"document_type"`
	CheckerMethod string `json:"checker_method"`
	IsValid       bool   `json:"is_valid"`
	FailureReason string `json:"failure_reason"`
}

func NewDocumentVerifiedEvent(documentID *int64, documentType, checkerMethod string, isValid bool, failureReason string) *DocumentVerifiedEvent {
	return &DocumentVerifiedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeDocumentVerified,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"document_type":  documentType,
				"checker_method": checkerMethod,
				"is_valid":       isValid,
				"failure_reason": failureReason,
			},
		},
		DocumentID:    documentID,
		DocumentType:  documentType,
		CheckerMethod: checkerMethod,
		IsValid:       isValid,
		FailureReason: failureReason,
	}
}

type LoginAttemptEvent struct {
	BaseEvent
	UserID        int64  `json:"user_id"`
	UserName      string `json:"user_name"`
	UserRole      string `json:"user_role"`
	Success       bool   `json:"success"`
	FailureReason string `json:"failure_reason"`
}

func NewLoginAttemptEvent(userID int64, userName, userRole string, success bool, failureReason string) *LoginAttemptEvent {
	return &LoginAttemptEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLoginAttempt,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":        userID,
				"user_name":      userName,
				"user_role":      userRole,
				"success":        success,
				"failure_reason": failureReason,
			},
		},
		UserID:        userID,
		UserName:      userName,
		UserRole:      userRole,
		Success:       success,
		FailureReason: failureReason,
	}
}
