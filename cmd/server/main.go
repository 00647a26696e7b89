package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/vstepready/vstep-backend/internal/config"
	"github.com/vstepready/vstep-backend/internal/database"
	"github.com/vstepready/vstep-backend/internal/handler"
	"github.com/vstepready/vstep-backend/internal/logger"
	"github.com/vstepready/vstep-backend/internal/repository"
	"github.com/vstepready/vstep-backend/internal/router"
	"github.com/vstepready/vstep-backend/internal/service"
	"github.com/vstepready/vstep-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting VSTEP Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	examStore := repository.NewPostgresExamStore(pool)
	moderationStore := repository.NewPostgresModerationStore(pool)
	userStore := repository.NewPostgresUserStore(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, userStore)
	examService := service.NewExamService(examStore, moderationStore, rdb, log)
	moderationService := service.NewModerationService(examStore, moderationStore, rdb, log)
	bankService := service.NewBankService(examStore, rdb, log)
	mediaService := service.NewMediaService(cfg)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(authService, userStore),
		Exam:       handler.NewExamHandler(examService, bankService),
		Moderation: handler.NewModerationHandler(moderationService),
		Bank:       handler.NewBankHandler(bankService),
		Media:      handler.NewMediaHandler(mediaService),
		WS:         handler.NewWSHandler(rdb, log, cfg.AllowedOrigins),
	}

	// ─── Prewarm Redis Selection Pools ────────────────────────────────
	// Load all published exams into Redis BEFORE accepting traffic so the
	// random draw never races a cold cache.
	if err := moderationService.PrewarmSelectionPools(ctx); err != nil {
		log.Warn().Err(err).Msg("Selection pool prewarm failed")
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
