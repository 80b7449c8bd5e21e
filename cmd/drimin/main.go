// Copyright (c) 2025-2026 Drimin
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/drimin/drimin-go/internal/config"
	"github.com/drimin/drimin-go/internal/handler"
	"github.com/drimin/drimin-go/internal/logging"
	"github.com/drimin/drimin-go/internal/middleware"
	"github.com/drimin/drimin-go/internal/scheduler"
	"github.com/drimin/drimin-go/internal/service"
	"github.com/drimin/drimin-go/internal/store"
	"github.com/drimin/drimin-go/internal/token"
	"github.com/drimin/drimin-go/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Drimin - marketing site backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DRIMIN_JWT_SECRET        Session token signing key (required in production, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DRIMIN_DB_PATH           SQLite database path (default: ./data/drimin.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DRIMIN_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DRIMIN_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DRIMIN_CORS_ORIGINS      Comma-separated allowed frontend origins\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DRIMIN_DO_SEED           Seed the default admin account on startup (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("drimin %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := &version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize database
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	// Run migrations
	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the event log database
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	eventLogHandler := logging.NewEventLogHandler(textHandler, db)
	logger = slog.New(eventLogHandler)
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	// Seed default data
	ctx := context.Background()
	if err := store.Seed(ctx, db, cfg.DoSeed); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	// Session tokens
	codec := token.New(cfg.JWTSecret)
	if !cfg.IsDevelopment() {
		// Login is email-only pending a decision on a second factor; make
		// sure nobody deploys it unaware.
		slog.Warn("admin login requires only a known email; restrict network access to the admin API",
			"category", "auth")
	}

	// Services
	authService := service.NewAuthService(db)
	contentService := service.NewContentService(db)
	leadService := service.NewLeadService(db)

	// Initialize and start scheduler
	sched := scheduler.New(db, logger, cfg.EventRetentionDays)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	// Create router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))

	// Security headers middleware (HSTS, X-Frame-Options, etc.)
	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	r.Use(middleware.SecurityHeaders(securityConfig))
	slog.Info("security headers middleware initialized", "hsts", !cfg.IsDevelopment())

	// CORS for the decoupled marketing frontend
	if len(cfg.CORSOrigins) > 0 {
		r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins)))
		slog.Info("CORS initialized", "origins", cfg.CORSOrigins)
	}

	// CSRF protection; the public lead endpoints are called directly from the
	// marketing site without a prior token exchange and are exempt.
	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.JWTSecret), cfg.IsDevelopment())
	csrfConfig.TrustedOrigins = append(csrfConfig.TrustedOrigins, cfg.CORSOrigins...)
	r.Use(middleware.SkipCSRF(handler.RouteWaitlist, handler.RouteContact))
	r.Use(middleware.CSRF(csrfConfig))
	slog.Info("CSRF protection initialized")

	// Initialize login protection
	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	slog.Info("login protection initialized",
		"ip_rate_limit", "0.5 req/s",
		"max_failed_attempts", 5,
		"lockout_duration", "15m",
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, codec, loginProtection, cfg.IsDevelopment())
	contentHandler := handler.NewContentHandler(contentService)
	leadHandler := handler.NewLeadHandler(leadService)
	exportHandler := handler.NewExportHandler(leadService)
	healthHandler := handler.NewHealthHandler(db)

	// Health check route (public)
	r.Get(handler.RouteHealthz, healthHandler.Health)

	// Public lead capture routes
	r.Post(handler.RouteWaitlist, leadHandler.Waitlist)
	r.Post(handler.RouteContact, leadHandler.Contact)

	// Admin API routes (everything past login requires a valid session cookie)
	r.Route(handler.RouteAdmin, func(r chi.Router) {
		r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(codec))

			r.Post(handler.RouteLogout, authHandler.Logout)
			r.Get("/me", authHandler.Me)
			r.Get(handler.RouteContent, contentHandler.List)
			r.Put(handler.RouteContent, contentHandler.Upsert)
			r.Get(handler.RouteEmails, leadHandler.Emails)
			r.Get(handler.RouteEmailsExport, exportHandler.Export)
		})
	})

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			"addr", cfg.ServerAddr(),
			"env", cfg.Env,
			"version", versionInfo.Version,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
