package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/barangay/docucheck/internal/audit"
	"github.com/barangay/docucheck/internal/auth"
	"github.com/barangay/docucheck/internal/document"
	"github.com/barangay/docucheck/internal/pdf"
	"github.com/barangay/docucheck/internal/qr"
	"github.com/barangay/docucheck/internal/transport/middleware"
	"github.com/barangay/docucheck/internal/transport/swagger"
	"github.com/barangay/docucheck/internal/verification"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers bundles every REST handler the router mounts.
type Handlers struct {
	Auth         *auth.Handler
	Document     *document.Handler
	Verification *verification.Handler
	Audit        *audit.Handler
	QR           *qr.Handler
	PDF          *pdf.Handler
}

// RegisterAllRoutes wires the public verification surface and the
// staff-only issuance surface onto the router. Paths live directly
// under /api to stay compatible with the existing frontend.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, templateDir string, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db, templateDir)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Public routes: login and document verification
		if h.Auth != nil {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		}

		if h.Verification != nil {
			r.Post("/validate-qr", h.Verification.ValidateQR)
			r.Post("/verify-image", h.Verification.VerifyImage)
		}

		if h.QR != nil {
			r.Get("/qr/{hash}", h.QR.RenderQR)
		}

		// Staff routes: issuance, dashboards, certificates, audit trail
		if h.Auth != nil {
			r.Group(func(sr chi.Router) {
				sr.Use(h.Auth.AuthMiddleware)
				sr.Use(middleware.UserContext)
				sr.Use(middleware.RequireRole("staff", "admin"))

				if h.Document != nil {
					sr.Post("/clearance", h.Document.IssueClearance)
					sr.Post("/indigency", h.Document.IssueIndigency)
					sr.Post("/businesspermit", h.Document.IssueBusinessPermit)
					sr.Get("/recent-issuance", h.Document.RecentIssuance)
					sr.Get("/stats", h.Document.Stats)
				}

				if h.PDF != nil {
					sr.Post("/certificate", h.PDF.GenerateCertificate)
				}

				if h.Audit != nil {
					sr.Get("/audit-logs", h.Audit.ListLogs)
				}
			})
		}
	})
}
