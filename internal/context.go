package internal

import (
	"context"
	"time"
)

type ctxKey string

const (
	ContextUserKey     ctxKey = "userID"
	ContextUserNameKey ctxKey = "userName"
	ContextUserRoleKey ctxKey = "userRole"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if userID, ok := ctx.Value(ContextUserKey).(string); ok {
		return userID
	}
	return ""
}

func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ContextUserKey, userID)
}

// ContextWithUser stores the authenticated staff identity for downstream
// handlers and the audit trail.
func ContextWithUser(ctx context.Context, userID, name, role string) context.Context {
	ctx = context.WithValue(ctx, ContextUserKey, userID)
	ctx = context.WithValue(ctx, ContextUserNameKey, name)
	return context.WithValue(ctx, ContextUserRoleKey, role)
}

func UserNameFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if name, ok := ctx.Value(ContextUserNameKey).(string); ok {
		return name
	}
	return ""
}

func UserRoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if role, ok := ctx.Value(ContextUserRoleKey).(string); ok {
		return role
	}
	return ""
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
