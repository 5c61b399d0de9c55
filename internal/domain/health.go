package domain

import "context"

type HealthStatus struct {
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

type HealthUsecase interface {
	Check(ctx context.Context) (*HealthStatus, bool)
}
