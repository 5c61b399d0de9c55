package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"preset-backend/config"
	_ "preset-backend/docs"
	v1 "preset-backend/internal/delivery/http/v1"
	"preset-backend/internal/matching"
	"preset-backend/internal/repository/cache"
	"preset-backend/internal/repository/postgres"
	"preset-backend/internal/usecase"
	"preset-backend/pkg/auth"
	"preset-backend/pkg/database"
	"preset-backend/pkg/logger"
	"preset-backend/pkg/redis"
	"preset-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// @title           Preset Marketplace API
// @version         1.0
// @description     Compatibility matching and gear marketplace for creative projects.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()
	logger.Log.Infow("Starting preset backend", "port", cfg.Port)

	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	dbPool, err := database.NewPostgresConnection(context.Background(), cfg.DBUrl)
	if err != nil {
		logger.Log.Errorw("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// Redis is optional: without it matching runs uncached.
	var cacheHealth func(ctx context.Context) error
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		if errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warnw("REDIS_URL not configured, match cache disabled")
		} else {
			logger.Log.Errorw("Redis unavailable, match cache disabled", "error", err)
		}
	} else {
		cacheHealth = redis.HealthCheck
		defer redis.Close()
	}

	weights := matching.DefaultWeights()
	if cfg.MatchWeightsFile != "" {
		weights, err = matching.LoadWeights(cfg.MatchWeightsFile)
		if err != nil {
			logger.Log.Errorw("Failed to load match weights", "file", cfg.MatchWeightsFile, "error", err)
			os.Exit(1)
		}
		logger.Log.Infow("Loaded match weights", "file", cfg.MatchWeightsFile)
	}

	userRepo := postgres.NewUserProfileRepository(dbPool)
	projectRepo := postgres.NewProjectRepository(dbPool)
	gearRequestRepo := postgres.NewGearRequestRepository(dbPool)
	listingRepo := postgres.NewListingRepository(dbPool)
	gearOfferRepo := postgres.NewGearOfferRepository(dbPool)
	matchCache := cache.NewMatchCache(redis.Client(), time.Duration(cfg.MatchCacheTTLSeconds)*time.Second)

	validate := validator.New()
	validation.RegisterValidators(validate)

	healthUC := usecase.NewHealthUsecase(dbPool, cacheHealth)
	matchingUC := usecase.NewMatchingUsecase(userRepo, projectRepo, gearRequestRepo, listingRepo, matchCache, weights,
		usecase.MatchingConfig{
			DefaultLimit:   cfg.MatchDefaultLimit,
			MaxLimit:       cfg.MatchMaxLimit,
			StrictCategory: cfg.MatchStrictCategory,
		})
	marketplaceUC := usecase.NewMarketplaceUsecase(userRepo, projectRepo, gearRequestRepo, listingRepo, gearOfferRepo,
		matchCache, validate, weights.Equipment.BudgetTolerance)

	var jwksProvider *auth.Provider
	if url := cfg.JWKSURL(); url != "" {
		jwksProvider = auth.NewProvider(url)
	}

	router := v1.NewRouter(v1.RouterDeps{
		HealthUC:             healthUC,
		MatchingUC:           matchingUC,
		MarketplaceUC:        marketplaceUC,
		JWTSecret:            cfg.SupabaseJWTSecret,
		JWKSProvider:         jwksProvider,
		FrontendURL:          cfg.FrontendURL,
		Release:              cfg.IsRelease(),
		Redis:                redis.Client(),
		MatchRateLimitPerMin: cfg.MatchRateLimitPerMinute,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Errorw("Listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Errorw("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
