// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/amprames/fuwari/internal/api"
	"github.com/amprames/fuwari/internal/browse"
	"github.com/amprames/fuwari/internal/derive"
	"github.com/amprames/fuwari/internal/events"
	"github.com/amprames/fuwari/internal/i18n"
	"github.com/amprames/fuwari/internal/loader"
	"github.com/amprames/fuwari/internal/mcpserver"
	"github.com/amprames/fuwari/internal/prefs"
	"github.com/amprames/fuwari/internal/source"
	"github.com/amprames/fuwari/internal/store"
	"github.com/amprames/fuwari/internal/urlkit"
)

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("content_path", cfg.Content.Path),
		slog.String("prefs_path", cfg.Prefs.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	svc, db, err := buildService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	// SSE broker.
	broker := events.NewBroker()
	defer broker.Close()

	// Build API router.
	apiRouter := api.NewRouter(svc, broker, cfg.Auth.AuthEnabled(), cfg.Auth.Token, http.HandlerFunc(broker.ServeHTTP))

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the content directory and reload the whole collection on change.
	if cfg.Content.Watch {
		g.Go(func() error {
			return loader.Watch(gCtx, cfg.Content.Path, 0, logger, func() {
				n, loadErr := svc.Reload(gCtx)
				if loadErr != nil {
					logger.Warn("reload after content change failed", slog.String("error", loadErr.Error()))
					return
				}
				broker.Publish(events.Event{Type: events.TypeContentReloaded, Data: map[string]int{"posts": n}})
			})
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP starts the MCP server on stdio. Logs go to stderr so they do not
// interfere with the transport.
func RunMCP(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	svc, db, err := buildService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	logger.Info("MCP server starting on stdio")
	return mcpserver.New(svc).ServeStdio()
}

// buildService wires the stores, loader, and derivation engine, and runs
// the initial collection load. The caller owns closing the returned DB.
func buildService(ctx context.Context, cfg *Config, logger *slog.Logger) (*browse.Service, io.Closer, error) {
	vis := loader.Visibility{IncludeDrafts: cfg.Content.IncludeDrafts}

	src, err := source.NewFS(cfg.Content.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("init source: %w", err)
	}

	db, err := prefs.Open(cfg.Prefs.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("init prefs: %w", err)
	}

	theme, err := store.NewThemeStore(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("init theme store: %w", err)
	}

	posts := store.NewPostStore()
	search := store.NewSearchStore()
	ui := store.NewUIStore()
	nav := store.NewNavStore()

	lang := language.Make(cfg.Content.Lang)
	translate := i18n.Translator(cfg.Content.Lang)
	urls := urlkit.NewBuilder(cfg.Content.BaseURL, translate(i18n.KeyUncategorized))

	ldr := loader.New(src, posts, translate, urls, lang, cfg.Content.Collection, logger)
	if _, err := ldr.Load(ctx, vis); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("initial load: %w", err)
	}

	eng := derive.NewEngine(lang)
	svc := browse.NewService(posts, search, theme, ui, nav, eng, ldr, urls, vis)
	return svc, db, nil
}
