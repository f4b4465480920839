package middleware

import (
	"net/http"

	"github.com/barangay/docucheck/internal/auth"
	"github.com/barangay/docucheck/pkg/logger"
)

// UserContext enriches the request logger with the authenticated user.
// Must run after the auth middleware; anonymous requests pass through.
func UserContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, ok := auth.UserFromContext(r.Context()); ok && user != nil {
			ctx := logger.With(r.Context(), "user_id", user.ID, "user_name", user.Name)
			r = r.WithContext(ctx)
		}

		next.ServeHTTP(w, r)
	})
}
