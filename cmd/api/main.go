package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/logging"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/router"
	"github.com/pageza/recipebox/backend/internal/server"
	"github.com/pageza/recipebox/backend/internal/service"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Setup("info", true)
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Setup(cfg.LogLevel, cfg.LogPretty)
	gin.SetMode(cfg.GinMode)
	log.Info().Str("config", cfg.String()).Msg("configuration loaded")

	db, err := database.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Redis is optional; without it limits are kept in process memory
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, using in-memory rate limits")
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	opts := []service.RecipeOption{}
	s3Cfg, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		log.Warn().Err(err).Msg("object storage unavailable, export archives disabled")
	} else if s3Cfg != nil {
		opts = append(opts, service.WithArchiveStore(s3Cfg))
	}

	authService := service.NewAuthService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
	recipeService := service.NewRecipeService(db, opts...)

	engine := router.SetupRouter(router.Dependencies{
		DB:                  db,
		AuthService:         authService,
		RecipeService:       recipeService,
		CreationLimiter:     middleware.NewRecipeCreationRateLimiter(redisClient, cfg.RateLimitCreatePerHour),
		ModificationLimiter: middleware.NewRecipeModificationRateLimiter(redisClient, cfg.RateLimitModifyPerHour),
		AllowedOrigins:      cfg.CORSAllowedOrigins,
	})
	srv := server.New(cfg, engine)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("received signal")
	}

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server stopped")
}
