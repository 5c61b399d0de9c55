package usecase

import (
	"context"
	"time"

	"preset-backend/internal/domain"
	"preset-backend/pkg/logger"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthUsecase struct {
	db    Pinger
	cache func(ctx context.Context) error
}

// NewHealthUsecase checks the database and, when cache is non-nil, Redis.
// The cache is optional, so its failure reports "degraded" without failing the check.
func NewHealthUsecase(db Pinger, cache func(ctx context.Context) error) domain.HealthUsecase {
	return &healthUsecase{db: db, cache: cache}
}

func (u *healthUsecase) Check(ctx context.Context) (*domain.HealthStatus, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := &domain.HealthStatus{Database: "ok", Cache: "disabled"}
	healthy := true

	if err := u.db.Ping(ctx); err != nil {
		logger.Log.Errorw("Database health check failed", "error", err)
		status.Database = "unavailable"
		healthy = false
	}

	if u.cache != nil {
		status.Cache = "ok"
		if err := u.cache(ctx); err != nil {
			logger.Log.Warnw("Cache health check failed", "error", err)
			status.Cache = "degraded"
		}
	}

	return status, healthy
}
