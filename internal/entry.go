// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/starford/credenda/internal/api"
	"github.com/starford/credenda/internal/content"
	"github.com/starford/credenda/internal/mcpserver"
	"github.com/starford/credenda/internal/metrics"
	"github.com/starford/credenda/internal/reader"
	"github.com/starford/credenda/internal/search"
	"github.com/starford/credenda/internal/sse"
	"github.com/starford/credenda/internal/storage"
	"github.com/starford/credenda/internal/watch"
)

// Components is the wired reading core shared by every entry point.
type Components struct {
	Config   *Config
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
	Store    storage.Provider
	Reader   *reader.Service
}

// Build wires storage, fetching, search and the reader from the options.
func Build(opts ...Option) (*Components, error) {
	app := newApplication(opts)
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	cfg := app.config

	out := app.logOutput
	if out == nil {
		out = os.Stdout
	}
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	reg := app.registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	m := metrics.New(reg)

	store, err := newStore(cfg.Content)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	fetcher := content.NewFetcher(store, logger, m)
	engine := search.NewEngine(fetcher, cfg.Corpus.Size, m)

	return &Components{
		Config:   cfg,
		Logger:   logger,
		Registry: reg,
		Metrics:  m,
		Store:    store,
		Reader:   reader.NewService(fetcher, engine, logger, m),
	}, nil
}

func newStore(cfg ContentConfig) (storage.Provider, error) {
	switch cfg.Source {
	case SourceHTTP:
		return storage.NewHTTP(cfg.BaseURL, cfg.Timeout)
	default:
		return storage.NewFS(cfg.Path)
	}
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	c, err := Build(opts...)
	if err != nil {
		return err
	}
	cfg, logger := c.Config, c.Logger

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("content_source", cfg.Content.Source),
		slog.String("content_path", cfg.Content.Path),
		slog.String("content_base_url", cfg.Content.BaseURL),
		slog.Int("corpus_size", cfg.Corpus.Size),
		slog.String("log_level", cfg.App.LogLevel.String()))

	broker := sse.NewBroker(cfg.Watch.Throttle)
	defer broker.Close()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.App.HTTP.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Cache-Control", "Last-Event-ID"},
		MaxAge:         300,
	}))

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", readyHandler(c.Store))
	r.Handle("/metrics", promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{}))

	r.Mount("/api", api.NewRouter(c.Reader, broker))

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	if fs, ok := c.Store.(*storage.FS); ok && cfg.Watch.Enabled {
		g.Go(func() error {
			if err := watch.Watch(gCtx, fs, logger, broker.PublishContentEvent); err != nil {
				logger.Warn("watcher unavailable", slog.String("error", err.Error()))
			}
			return nil
		})
	} else if cfg.Watch.Enabled {
		logger.Info("watcher disabled: content source is not a local directory",
			slog.String("content_source", cfg.Content.Source))
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		// Open SSE streams only end once the broker closes them.
		broker.Close()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group so the watcher stops with the server.
var errShutdown = errors.New("shutdown")

// RunMCP serves a single reading session over stdio. Logs go to stderr
// unless WithLogOutput says otherwise, since stdout carries the protocol.
func RunMCP(_ context.Context, opts ...Option) error {
	opts = append([]Option{WithLogOutput(os.Stderr)}, opts...)
	c, err := Build(opts...)
	if err != nil {
		return err
	}
	c.Logger.Info("MCP server starting on stdio")
	return mcpserver.New(c.Reader, c.Logger).ServeStdio()
}

// readyHandler reports ready once the article index can be read.
func readyHandler(store storage.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := store.Read(r.Context(), content.IndexKey); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}
