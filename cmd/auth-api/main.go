package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/auth-api/internal/auth"
	"github.com/vasapolrittideah/auth-api/internal/config"
	"github.com/vasapolrittideah/auth-api/internal/handler"
	"github.com/vasapolrittideah/auth-api/internal/mailer"
	"github.com/vasapolrittideah/auth-api/internal/mailqueue"
	"github.com/vasapolrittideah/auth-api/internal/notifier"
	"github.com/vasapolrittideah/auth-api/internal/repository"
	"github.com/vasapolrittideah/auth-api/internal/usecase"
	"github.com/vasapolrittideah/auth-api/internal/validation"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping MongoDB")
	}

	db := mongoClient.Database(cfg.MongoDBName)

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	emailQueue := mailqueue.NewQueue(redisClient, &logger)
	smtpMailer := mailer.NewMailer(cfg.Mailer)
	go emailQueue.RunWorker(ctx, smtpMailer)

	userRepo := repository.NewUserMongoRepository(ctx, &logger, db)
	sessionRepo := repository.NewSessionMongoRepository(db)

	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer)
	authUsecase := usecase.NewAuthUsecase(userRepo, sessionRepo, jwtAuth, cfg.Token)
	passwordResetUsecase := usecase.NewPasswordResetUsecase(
		userRepo,
		notifier.NewEmailNotifier(emailQueue),
		cfg,
	)

	validator, err := validation.NewValidator()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize validator")
	}

	userHandler := handler.NewUserHandler(authUsecase, passwordResetUsecase, validator, &logger)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	userHandler.RegisterRoutes(router)

	server := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.ServerAddr).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shut down HTTP server")
	}
}
