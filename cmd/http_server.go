package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/barangay/docucheck/internal"
	"github.com/barangay/docucheck/internal/audit"
	auditpostgres "github.com/barangay/docucheck/internal/audit/postgres"
	"github.com/barangay/docucheck/internal/auth"
	authpostgres "github.com/barangay/docucheck/internal/auth/postgres"
	"github.com/barangay/docucheck/internal/core/events"
	"github.com/barangay/docucheck/internal/document"
	documentpostgres "github.com/barangay/docucheck/internal/document/postgres"
	"github.com/barangay/docucheck/internal/pdf"
	"github.com/barangay/docucheck/internal/qr"
	"github.com/barangay/docucheck/internal/transport/rest"
	"github.com/barangay/docucheck/internal/verification"
	"github.com/barangay/docucheck/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Router   *chi.Mux
	EventBus *events.EventBus
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		// let in-flight audit writes drain before closing the DB
		deps.EventBus.Wait()
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.InitWithOptions(config.Observability.Logging.Level, config.Observability.Logging.Format)
	slogger := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	eventBus := events.NewEventBus(slogger)

	// audit trail subscribes to every issuance, verification and login event
	auditRepo := auditpostgres.NewAuditRepository(gormDB)
	auditService := audit.NewService(auditRepo, slogger)
	auditService.RegisterSubscribers(eventBus)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authpostgres.NewRepository(gormDB), tokenGen, eventBus, config.Security.BCryptCost)
	authHandler := auth.NewHandler(authService)

	documentRepo := documentpostgres.NewDocumentRepository(gormDB)
	documentService := document.NewService(documentRepo, eventBus, auditService, config.Security.HashSalt, slogger)
	documentHandler := document.NewHandler(documentService)

	qrGateway := qr.NewGateway(qr.GatewayConfig{
		RenderAPIURL: config.QR.RenderAPIURL,
		Size:         config.QR.Size,
		Timeout:      config.QR.Timeout,
	}, slogger)
	qrHandler := qr.NewHandler(qrGateway)

	verificationService := verification.NewService(documentService, eventBus, config.DemoMode, slogger)
	verificationHandler := verification.NewHandler(verificationService)

	assembler := pdf.NewAssembler(config.PDF.TemplateDir, qrGateway, slogger)
	pdfHandler := pdf.NewHandler(assembler, documentService)

	auditHandler := audit.NewHandler(auditService)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, config.PDF.TemplateDir, rest.Handlers{
		Auth:         authHandler,
		Document:     documentHandler,
		Verification: verificationHandler,
		Audit:        auditHandler,
		QR:           qrHandler,
		PDF:          pdfHandler,
	}, slogger)

	return &Dependencies{
		Config:   config,
		Logger:   slogger,
		DB:       db,
		GormDB:   gormDB,
		Router:   router,
		EventBus: eventBus,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
