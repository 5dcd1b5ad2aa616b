package main

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

	"github.com/Dosada05/ohm-scoreboard/config"
	"github.com/Dosada05/ohm-scoreboard/db"
	"github.com/Dosada05/ohm-scoreboard/handlers"
	"github.com/Dosada05/ohm-scoreboard/live"
	"github.com/Dosada05/ohm-scoreboard/repositories"
	api "github.com/Dosada05/ohm-scoreboard/routes"
	"github.com/Dosada05/ohm-scoreboard/services"
	"github.com/Dosada05/ohm-scoreboard/storage"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

// @title Ohm Scoreboard API
// @version 1.0
// @description Регистрация игроков, приём результатов и таблица лидеров.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		slog.Error("application failed", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("application exited")
}

func run() error {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Хранилище документов: Postgres, если задан DATABASE_URL, иначе память
	var participantRepo repositories.ParticipantRepository
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(cfg.DatabaseURL, cfg.DBConnectTimeout)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer func() {
			if err := dbConn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			} else {
				logger.Info("database connection closed")
			}
		}()
		if err := db.Migrate(ctx, dbConn); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		participantRepo = repositories.NewPostgresParticipantRepository(dbConn)
		logger.Info("postgres document store ready")
	} else {
		participantRepo = repositories.NewMemoryParticipantRepository()
		logger.Warn("DATABASE_URL is not set, participants are kept in memory")
	}

	// Загрузчик снимков таблицы лидеров (Cloudflare R2), опционально
	var uploader storage.FileUploader
	if cfg.R2.Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			PublicBaseURL:   cfg.R2.PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		logger.Info("Cloudflare R2 uploader initialized", slog.String("bucket", cfg.R2.BucketName))
	}

	// Инициализация WebSocket Hub
	wsHub := live.NewHub(logger)
	go wsHub.Run()
	defer wsHub.Stop()
	logger.Info("WebSocket Hub started")

	// Инициализация сервисов
	leaderboardService := services.NewLeaderboardService(participantRepo, services.LeaderboardOptions{
		Uploader:    uploader,
		Broadcaster: wsHub,
		Fallback:    cfg.LeaderboardFallback,
	}, logger)
	participantService := services.NewParticipantService(participantRepo, leaderboardService, logger)

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Participants: handlers.NewParticipantHandler(participantService),
		Leaderboard:  handlers.NewLeaderboardHandler(leaderboardService),
		WebSocket:    handlers.NewWebSocketHandler(wsHub, leaderboardService, cfg.CORSAllowedOrigins),
		Health:       handlers.NewHealthHandler(participantRepo),
	}, api.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AdminJWTSecret: cfg.AdminJWTSecret,
		Logger:         logger,
	})
	logger.Info("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			// Если корректное завершение не удалось, закрываем принудительно.
			return errors.Join(fmt.Errorf("graceful shutdown failed: %w", err), server.Close())
		}
		logger.Info("server shutdown complete")
		return nil
	})

	return g.Wait()
}
