package v1

import (
	"preset-backend/internal/delivery/http/middleware"
	"preset-backend/internal/domain"
	"preset-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	HealthUC      domain.HealthUsecase
	MatchingUC    domain.MatchingUsecase
	MarketplaceUC domain.MarketplaceUsecase
	JWTSecret     string
	JWKSProvider  *auth.Provider // nil disables RS256 tokens
	FrontendURL   string
	Release       bool
	// Redis backs the rate limiter; nil keeps counters in memory.
	Redis                *goredis.Client
	MatchRateLimitPerMin int
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// CORS must be first so preflights short-circuit.
	r.Use(middleware.CORSMiddleware(deps.FrontendURL, deps.Release))
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	health := &HealthHandler{healthUC: deps.HealthUC}
	v1.GET("/health", health.Check)
	v1.GET("/metrics", gin.WrapH(promhttp.Handler()))
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	matchLimiter := middleware.RateLimitMiddleware(deps.Redis, middleware.MatchRateLimitConfig(deps.MatchRateLimitPerMin))
	NewMatchingHandler(v1, deps.MatchingUC, matchLimiter)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWTSecret, deps.JWKSProvider))
	NewMarketplaceHandler(v1, protected, deps.MarketplaceUC)

	return r
}
