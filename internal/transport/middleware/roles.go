package middleware

import (
	"log/slog"
	"net/http"

	"github.com/barangay/docucheck/internal/auth"
)

// RequireRole creates a middleware that checks whether the authenticated
// user holds one of the given roles. Must run after the auth middleware.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			allowed := false
			for _, role := range roles {
				if user.Role == role {
					allowed = true
					break
				}
			}

			if !allowed {
				slog.Warn("access denied: user lacks required role",
					"user_id", user.ID,
					"required_roles", roles,
					"user_role", user.Role)
				http.Error(w, "Forbidden: insufficient role", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
