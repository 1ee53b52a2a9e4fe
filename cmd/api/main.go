package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lamergameryt/entrypoint/internal/app"
	"github.com/lamergameryt/entrypoint/internal/assets"
	"github.com/lamergameryt/entrypoint/internal/auth"
	"github.com/lamergameryt/entrypoint/internal/clock"
	"github.com/lamergameryt/entrypoint/internal/config"
	"github.com/lamergameryt/entrypoint/internal/storage/postgres"
	transporthttp "github.com/lamergameryt/entrypoint/internal/transport/http"
	"github.com/lamergameryt/entrypoint/migrations"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect to db")
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		logger.Fatal().Err(err).Msg("db ping")
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		logger.Fatal().Err(err).Msg("apply migrations")
	}

	clk := clock.NewSystem()
	eventRepo := postgres.NewEventRepository(pool)
	ticketRepo := postgres.NewTicketRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	eventSvc := app.NewEventService(eventRepo, clk)
	ticketSvc := app.NewTicketService(ticketRepo, eventRepo)
	userSvc := app.NewUserService(userRepo)
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTExpiration, clk)

	var bucketSvc transporthttp.AssetService
	if cfg.S3Enabled {
		awsCfg, err := awsconfig.LoadDefaultConfig(startupCtx)
		if err != nil {
			logger.Fatal().Err(err).Msg("load aws config")
		}
		presigner := s3.NewPresignClient(s3.NewFromConfig(awsCfg))
		bucketSvc = assets.NewBucketService(presigner, cfg.S3Bucket, cfg.PresignExpires)
	}

	server := transporthttp.NewServer(transporthttp.Config{
		Events:      eventSvc,
		Tickets:     ticketSvc,
		Users:       userSvc,
		Tokens:      tokens,
		Assets:      bucketSvc,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	})

	logger.Info().Str("port", cfg.Port).Msg("api listening")

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.Start(":" + cfg.Port)
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server error")
		}
	case <-stopCtx.Done():
		logger.Info().Msg("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("server shutdown error")
	}
	logger.Info().Msg("server stopped")
}
