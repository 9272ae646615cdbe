package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/blog-comment-api/internal/api"
	"github.com/blog-comment-api/internal/config"
	"github.com/blog-comment-api/internal/database"
	"github.com/blog-comment-api/internal/github"
	"github.com/blog-comment-api/internal/ratelimit"
	"github.com/blog-comment-api/internal/repository"
	"github.com/blog-comment-api/internal/service"
	"github.com/blog-comment-api/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting blog comment API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}
	if err := db.RunMigrations(migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	repos := repository.New(db)

	// Initialize token verifier
	verifier := github.NewClient(cfg.GitHub.APIBaseURL, cfg.GitHub.Timeout, log)

	// Initialize services
	services := service.NewServices(repos, verifier, cfg, log)

	// Per-client write throttle
	throttle := ratelimit.NewThrottle(cfg.RateLimit.ThrottleRPS, cfg.RateLimit.ThrottleBurst)

	// Sweep idle rate-limit state in the background
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	idleTTL := 10 * cfg.RateLimit.AttemptWindow
	if cd := 10 * cfg.RateLimit.CommentCooldown; cd > idleTTL {
		idleTTL = cd
	}
	stores := append(services.Limiters(), throttle)
	ratelimit.StartJanitor(janitorCtx, cfg.RateLimit.SweepEvery, idleTTL, stores...)
	log.Info().Dur("idle_ttl", idleTTL).Msg("Rate-limit janitor started")

	// Initialize router
	router := api.NewRouter(services, cfg, db, throttle, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
