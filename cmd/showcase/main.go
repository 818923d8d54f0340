// Copyright (c) 2025-2026 iVision Agency
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

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/ivision/showcase-go/internal/cache"
	"github.com/ivision/showcase-go/internal/catalog"
	"github.com/ivision/showcase-go/internal/chat"
	"github.com/ivision/showcase-go/internal/config"
	"github.com/ivision/showcase-go/internal/handler"
	"github.com/ivision/showcase-go/internal/handler/api"
	"github.com/ivision/showcase-go/internal/logging"
	"github.com/ivision/showcase-go/internal/media"
	"github.com/ivision/showcase-go/internal/middleware"
	"github.com/ivision/showcase-go/internal/render"
	"github.com/ivision/showcase-go/internal/scheduler"
	"github.com/ivision/showcase-go/internal/service"
	"github.com/ivision/showcase-go/internal/session"
	"github.com/ivision/showcase-go/internal/store"
	"github.com/ivision/showcase-go/internal/version"
	"github.com/ivision/showcase-go/internal/viewport"
	"github.com/ivision/showcase-go/web"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "showcase - iVision Agency project showcase\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHOWCASE_SESSION_SECRET   Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHOWCASE_DB_PATH          SQLite database path (default: ./data/showcase.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHOWCASE_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHOWCASE_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHOWCASE_DATABASE_URL     Postgres URL for the persistent catalog (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHOWCASE_REDIS_URL        Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SHOWCASE_GEMINI_API_KEY   API key for the VisionBot assistant (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		info := version.Get()
		_, _ = fmt.Printf("showcase %s (commit: %s, built: %s)\n", info.Version, info.GitCommit, info.BuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

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

	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
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

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
			return fmt.Errorf("seeding admin account: %w", err)
		}
		slog.Info("admin account seeded", "email", cfg.AdminEmail)
	}

	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	cacheBackend, err := cache.New(cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	})
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := cacheBackend.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	if cfg.UseRedisCache() {
		slog.Info("cache initialized", "backend", "redis", "url", cfg.RedisURL)
	} else {
		slog.Info("cache initialized", "backend", "memory")
	}

	// Catalog backend: hosted Postgres when configured, otherwise the
	// built-in demo set without persistence.
	var source catalog.DataSource
	if cfg.UseRemoteCatalog() {
		remote, err := catalog.NewRemoteDataSource(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Warn("remote catalog unavailable, falling back to demo set", "error", err)
			source = catalog.NewMemoryDataSource(catalog.FallbackProjects())
		} else {
			defer remote.Close()
			source = remote
			slog.Info("catalog backend initialized", "backend", "postgres")
		}
	} else {
		source = catalog.NewMemoryDataSource(catalog.FallbackProjects())
		slog.Info("catalog backend initialized", "backend", "memory")
	}

	validator := media.NewValidator(media.NewHTTPProber())
	catalogService := catalog.NewService(source, cacheBackend, validator, logger)

	eventService := service.NewEventService(db)

	assistant := chat.NewAssistant(chat.Options{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
	}, logger)
	if cfg.ChatEnabled() {
		slog.Info("chat assistant initialized", "model", cfg.GeminiModel)
	} else {
		slog.Info("chat assistant disabled, serving canned replies")
	}

	gate := viewport.NewGate()

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

	sched := scheduler.New(catalogService, eventService, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	r.Use(middleware.SecurityHeaders(securityConfig))
	slog.Info("security headers middleware initialized", "hsts", !cfg.IsDevelopment())

	r.Use(sessionManager.LoadAndSave)

	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())
	csrfMiddleware := middleware.CSRF(csrfConfig)
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	publicRateLimiter := middleware.NewGlobalRateLimiter(10.0, 20)

	frontendHandler := handler.NewFrontendHandler(catalogService, renderer, eventService)
	authHandler := handler.NewAuthHandler(db, renderer, sessionManager, loginProtection)
	adminHandler := handler.NewAdminHandler(catalogService, renderer, eventService)
	eventsHandler := handler.NewEventsHandler(db, renderer)
	healthHandler := handler.NewHealthHandler(db, catalogService, cacheBackend)
	apiHandler := api.NewHandler(catalogService, assistant, gate, sessionManager, eventService)

	// Health check (returns additional details for authenticated callers)
	r.With(middleware.LoadUser(sessionManager, db)).Get("/health", healthHandler.Health)

	// Public gallery
	r.Group(func(r chi.Router) {
		r.Use(middleware.LoadUser(sessionManager, db))
		r.Get(handler.RouteRoot, frontendHandler.Home)
	})

	// Contact form
	r.Group(func(r chi.Router) {
		r.Use(publicRateLimiter.HTMLMiddleware())
		r.Use(csrfMiddleware)
		r.Post("/contact", frontendHandler.Contact)
	})

	// Auth routes: publicRateLimiter on everything, loginProtection on
	// the credential POST
	r.Group(func(r chi.Router) {
		r.Use(publicRateLimiter.HTMLMiddleware())
		r.Use(csrfMiddleware)
		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)
		r.Post("/logout", authHandler.Logout)
	})

	// Admin routes
	r.Route("/admin", func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Use(middleware.Auth(sessionManager))
		r.Use(middleware.LoadUser(sessionManager, db))
		r.Use(middleware.RequireAdmin())

		r.Get("/projects", adminHandler.ProjectList)
		r.Get("/projects/new", adminHandler.ProjectNew)
		r.Post("/projects", adminHandler.ProjectCreate)
		r.Get("/projects/{id}", adminHandler.ProjectEdit)
		r.Put("/projects/{id}", adminHandler.ProjectUpdate)
		r.Post("/projects/{id}", adminHandler.ProjectUpdate) // HTML forms can't send PUT
		r.Delete("/projects/{id}", adminHandler.ProjectDelete)
		r.Post("/projects/{id}/delete", adminHandler.ProjectDelete) // HTML forms can't send DELETE

		r.Get("/events", eventsHandler.List)
	})

	// JSON API
	r.Route("/api", func(r chi.Router) {
		apiRateLimiter := middleware.NewGlobalRateLimiter(100, 200)
		r.Use(apiRateLimiter.Middleware())
		// Viewport beacons may arrive without fetch metadata
		r.Use(middleware.SkipCSRF("/api/viewport"))
		r.Use(csrfMiddleware)

		r.Get("/projects", apiHandler.ListProjects)
		r.Get("/projects/{id}", apiHandler.GetProject)
		r.Get("/stats", apiHandler.Stats)
		r.Post("/viewport", apiHandler.Viewport)
		r.Post("/chat", apiHandler.Chat)
		r.Delete("/chat", apiHandler.ResetChat)

		// Write endpoints require an authenticated admin
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(sessionManager))
			r.Use(middleware.LoadUser(sessionManager, db))
			r.Use(middleware.RequireAdmin())
			r.Post("/projects", apiHandler.CreateProject)
			r.Put("/projects/{id}", apiHandler.UpdateProject)
			r.Delete("/projects/{id}", apiHandler.DeleteProject)
		})
	})

	// Static assets: cache for 1 year
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	staticHandler := middleware.StaticCache(31536000)(http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Handle("/static/*", staticHandler)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
