// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/olegiv/pharmaconnect-go/internal/apiclient"
	"github.com/olegiv/pharmaconnect-go/internal/cache"
	"github.com/olegiv/pharmaconnect-go/internal/config"
	"github.com/olegiv/pharmaconnect-go/internal/gate"
	"github.com/olegiv/pharmaconnect-go/internal/handler"
	"github.com/olegiv/pharmaconnect-go/internal/i18n"
	"github.com/olegiv/pharmaconnect-go/internal/logging"
	"github.com/olegiv/pharmaconnect-go/internal/menu"
	"github.com/olegiv/pharmaconnect-go/internal/middleware"
	"github.com/olegiv/pharmaconnect-go/internal/render"
	"github.com/olegiv/pharmaconnect-go/internal/scheduler"
	"github.com/olegiv/pharmaconnect-go/internal/service"
	"github.com/olegiv/pharmaconnect-go/internal/session"
	"github.com/olegiv/pharmaconnect-go/internal/store"
	"github.com/olegiv/pharmaconnect-go/internal/version"
	"github.com/olegiv/pharmaconnect-go/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "PharmaConnect - administration console\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PC_SESSION_SECRET      Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PC_API_BASE_URL        PharmaConnect REST API base URL (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PC_DB_PATH             SQLite database path (default: ./data/pharmaconnect.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PC_SERVER_PORT         Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PC_ENV                 Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PC_DEMO_ENABLED        Allow demo sessions (default: true)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PC_REDIS_URL           Redis URL for the menu cache (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	if *showVersion {
		_, _ = fmt.Println(versionInfo.String())
		os.Exit(0)
	}

	if err := run(versionInfo); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(versionInfo version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := logging.ParseLevel(cfg.LogLevel)
	logger := logging.NewLogger(logLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(logger)

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}
	slog.Info("i18n system initialized", "languages", i18n.SupportedLanguages)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

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

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// WARN and ERROR records are also persisted to the event log.
	logger = slog.New(logging.NewEventLogHandler(logging.NewHandler(logLevel, cfg.LogFormat, os.Stdout), db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	sessionManager := session.New(db, cfg.IsDevelopment())
	sessions := session.NewScsStore(sessionManager)

	menuCache := cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: cfg.CacheTTLDuration(),
		MaxSize:    cfg.CacheMaxSize,
	}, logger)
	defer func() {
		if err := menuCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	menus := menu.NewCached(menu.NewProjector(), menuCache, cfg.CacheTTLDuration())

	api, err := apiclient.New(apiclient.Options{
		BaseURL:   cfg.APIBaseURL,
		Timeout:   cfg.APITimeoutDuration(),
		RetryMax:  cfg.APIRetries,
		Logger:    logger,
		UserAgent: versionInfo.UserAgent(),
	}, sessions)
	if err != nil {
		return fmt.Errorf("initializing API client: %w", err)
	}

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}

	sched := scheduler.New(db, logger, cfg.EventRetentionDays)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	defer loginProtection.Stop()

	eventService := service.NewEventService(db)

	pagesHandler, err := handler.NewPagesHandler(renderer, menus, sessions, web.Help, logger)
	if err != nil {
		return fmt.Errorf("initializing pages: %w", err)
	}
	authHandler := handler.NewAuthHandler(api, sessions, renderer, eventService, loginProtection, cfg.DemoEnabled)
	sessionHandler := handler.NewSessionHandler(sessions, menus, renderer)
	healthHandler := handler.NewHealthHandler(db, menuCache, sessions, versionInfo.Version)

	navigation := gate.New(gate.NewTable(gate.DefaultRoutes), sessions, api, pagesHandler, logger)
	navigation.LogRoutes()

	r := newRouter(routerDeps{
		SessionManager:  sessionManager,
		Sessions:        sessions,
		Navigation:      navigation,
		Pages:           pagesHandler,
		Auth:            authHandler,
		Session:         sessionHandler,
		Health:          healthHandler,
		LoginProtection: loginProtection,
		Jobs:            sched,
		StaticFS:        staticFS,
		CSRFKey:         []byte(cfg.SessionSecret),
		ServerAddr:      cfg.ServerAddr(),
		IsDev:           cfg.IsDevelopment(),
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
