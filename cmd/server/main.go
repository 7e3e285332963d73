package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/pattarawat/identity-api/internal/config"
	"github.com/pattarawat/identity-api/internal/handler"
	"github.com/pattarawat/identity-api/internal/middleware"
	"github.com/pattarawat/identity-api/internal/repository"
	"github.com/pattarawat/identity-api/internal/usecase"
	"github.com/pattarawat/identity-api/shared/auth"
	"github.com/pattarawat/identity-api/shared/logger"
	"github.com/pattarawat/identity-api/shared/security"
	"github.com/pattarawat/identity-api/shared/validator"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		bootstrap := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootstrap.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		log.Fatal().Err(err).Msg("failed to ping mongodb")
	}

	db := client.Database(cfg.MongoDatabase)
	userRepo := repository.NewUserMongoRepository(ctx, &log, db)

	hasher := security.NewHasher(cfg.PasswordHashCost)
	jwtAuth := auth.NewJWTAuthenticator(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiresIn)

	authUsecase := usecase.NewAuthUsecase(userRepo, hasher, jwtAuth)
	resetUsecase := usecase.NewPasswordResetUsecase(userRepo, hasher)

	v, err := validator.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build validator")
	}

	authHandler := handler.NewAuthHandler(authUsecase, resetUsecase, v)
	gate := middleware.NewAuthenticator(jwtAuth, userRepo)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.NewRouter(log, authHandler, gate),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("starting http server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http server shutdown error")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}

	log.Info().Msg("server stopped")
}
