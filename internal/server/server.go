// Package server provides the HTTP server for the SENTIFY service.
// It wires the provider clients, repositories, services and handlers,
// owns the scheduler and manages the server lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/iamyashsharma43/SENTIFY/internal/clients"
	"github.com/iamyashsharma43/SENTIFY/internal/config"
	"github.com/iamyashsharma43/SENTIFY/internal/constants"
	"github.com/iamyashsharma43/SENTIFY/internal/database"
	"github.com/iamyashsharma43/SENTIFY/internal/handlers"
	"github.com/iamyashsharma43/SENTIFY/internal/repository"
	"github.com/iamyashsharma43/SENTIFY/internal/scheduler"
	"github.com/iamyashsharma43/SENTIFY/internal/service"
	"github.com/iamyashsharma43/SENTIFY/internal/storage"
	"github.com/iamyashsharma43/SENTIFY/internal/utils/ratelimit"
	"github.com/iamyashsharma43/SENTIFY/migrations"
)

// Handlers contains all HTTP handlers for the application.
type Handlers struct {
	// Instagram serves the automation endpoints
	Instagram *handlers.InstagramHandler

	// Analysis serves free-text and patient batch analysis
	Analysis *handlers.AnalysisHandler

	// Upload serves the audio and dataset uploads
	Upload *handlers.UploadHandler

	// Health serves /health and /version
	Health *handlers.HealthHandler
}

// analysisProvider is implemented by both the Watson client and the local
// VADER analyzer.
type analysisProvider interface {
	clients.SentimentAnalyzer
	clients.Transcriber
}

// Server represents the API server.
type Server struct {
	// Config contains application configuration
	Config *config.AppConfig

	// Db provides database access
	Db *database.Pool

	// Handlers contains all HTTP request handlers
	Handlers *Handlers

	router     chi.Router
	httpServer *http.Server
	limits     *ratelimit.Store
	scheduler  *scheduler.Scheduler
	cache      *clients.ValkeyStore
}

// NewServer creates a server with every component connected: database and
// migrations, provider clients, services, handlers, scheduler and routes.
//
// Parameters:
//   - ctx: Bounds the startup connections to the database, cache and archive
//   - cfg: Application configuration
//
// Returns:
//   - A fully initialized Server ready to start
//   - An error if any component fails to initialize
func NewServer(ctx context.Context, cfg *config.AppConfig) (*Server, error) {
	s := &Server{Config: cfg}

	if err := s.setupDatabase(ctx); err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	analyzer, provider, err := s.setupAnalyzer(ctx)
	if err != nil {
		s.Db.Close()
		return nil, fmt.Errorf("failed to set up analysis provider: %w", err)
	}

	archiver, err := s.setupArchive(ctx)
	if err != nil {
		s.closeResources()
		return nil, fmt.Errorf("failed to set up upload archive: %w", err)
	}

	automation := service.NewAutomationService(clients.NewInstagramClient(&cfg.Automation, cfg.Uploads.Dir))

	s.Handlers = &Handlers{
		Instagram: handlers.NewInstagramHandler(automation),
		Analysis: handlers.NewAnalysisHandler(
			service.NewAnalysisService(analyzer, repository.NewAnalysisRepository(s.Db)),
			service.NewPatientService(
				analyzer,
				repository.NewPatientSentimentRepository(s.Db),
				service.NewRowProcessor(cfg.Batch.Concurrency),
			),
		),
		Upload: handlers.NewUploadHandler(
			service.NewTranscriptionService(provider, archiver),
			service.NewDatasetService(archiver, cfg.Uploads.LenientCSV),
			cfg.Uploads.Dir,
			cfg.Uploads.MaxSize,
		),
		Health: handlers.NewHealthHandler(s.Db, cfg.App.Version, cfg.App.Environment),
	}

	if !cfg.Scheduler.Disabled {
		s.scheduler, err = scheduler.New(cfg.Scheduler, automation)
		if err != nil {
			s.closeResources()
			return nil, fmt.Errorf("failed to set up scheduler: %w", err)
		}
	}

	s.init()
	return s, nil
}

// New creates a server around already constructed handlers. It does not
// touch the database, start the scheduler or open provider connections.
func New(cfg *config.AppConfig, h *Handlers) *Server {
	s := &Server{Config: cfg, Handlers: h}
	s.init()
	return s
}

func (s *Server) init() {
	s.limits = ratelimit.NewStore(
		ratelimit.Rate{
			RequestsPerSecond: s.Config.RateLimit.RequestsPerSecond,
			Burst:             s.Config.RateLimit.Burst,
		},
		constants.RateLimitCleanupInterval,
		constants.RateLimiterIdleExpiry,
	)

	s.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:         s.Config.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  s.Config.Server.ReadTimeout,
		WriteTimeout: s.Config.Server.WriteTimeout,
		IdleTimeout:  s.Config.Server.IdleTimeout,
	}
}

// setupDatabase connects to the store and applies pending migrations.
func (s *Server) setupDatabase(ctx context.Context) error {
	db, err := database.Connect(ctx, s.Config)
	if err != nil {
		return err
	}
	s.Db = db

	if s.Config.Database.SkipMigrate {
		log.Info().Msg("Skipping database migrations")
		return nil
	}

	if err := migrations.NewMigrator(db).RunMigrations(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	return nil
}

// setupAnalyzer builds the configured provider and, when a cache address is
// set, wraps its sentiment and emotion calls with the Valkey cache.
// Transcription always goes to the provider directly.
func (s *Server) setupAnalyzer(ctx context.Context) (clients.SentimentAnalyzer, analysisProvider, error) {
	var provider analysisProvider
	switch s.Config.Analysis.Provider {
	case constants.AnalysisProviderVader:
		log.Warn().Msg("Using the local VADER analyzer; transcription is unavailable")
		provider = clients.NewVaderAnalyzer()
	default:
		provider = clients.NewWatsonClient(&s.Config.Analysis)
	}

	if !s.Config.Cache.Enabled() {
		return provider, provider, nil
	}

	store, err := clients.NewValkeyStore(ctx, &s.Config.Cache)
	if err != nil {
		return nil, nil, err
	}
	s.cache = store

	cached := clients.NewCachedAnalyzer(provider, store, s.Config.Cache.TTL, s.Config.Cache.KeyPrefix)
	return cached, provider, nil
}

// setupArchive returns the MinIO archive when an endpoint is configured.
func (s *Server) setupArchive(ctx context.Context) (storage.Archiver, error) {
	if !s.Config.Archive.Enabled() {
		return storage.NopArchiver{}, nil
	}
	return storage.NewMinIOArchive(ctx, &s.Config.Archive)
}

// GetRouter returns the configured router.
func (s *Server) GetRouter() chi.Router {
	return s.router
}

// Start serves HTTP and runs the scheduler until SIGINT or SIGTERM, then
// shuts down gracefully.
func (s *Server) Start() error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", s.Config.Server.ServerAddress()).
			Msg("Starting server")

		serverErrors <- s.httpServer.ListenAndServe()
	}()

	if s.scheduler != nil {
		s.scheduler.Start()
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		s.closeResources()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info().
			Str("signal", sig.String()).
			Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			if closeErr := s.httpServer.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// Shutdown stops the scheduler, drains in-flight requests and releases the
// database, cache and rate limiter.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.scheduler != nil {
		s.scheduler.Stop(ctx)
	}

	err := s.httpServer.Shutdown(ctx)
	s.closeResources()
	if err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info().Msg("Server stopped gracefully")
	return nil
}

func (s *Server) closeResources() {
	if s.limits != nil {
		s.limits.Stop()
	}
	if s.cache != nil {
		s.cache.Close()
	}
	if s.Db != nil {
		s.Db.Close()
		log.Info().Msg("Database connection closed")
	}
}
