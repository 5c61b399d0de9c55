package domain

import (
	"context"
	"time"
)

const (
	GearRequestOpen      = "open"
	GearRequestFulfilled = "fulfilled"

	OfferTypeRent   = "rent"
	OfferTypeSell   = "sell"
	OfferTypeBorrow = "borrow"

	OfferStatusPending = "pending"
)

type GearRequest struct {
	ID                 string           `json:"id"`
	ProjectID          string           `json:"project_id"`
	Category           string           `json:"category"`
	EquipmentSpec      *string          `json:"equipment_spec,omitempty"`
	Quantity           int              `json:"quantity"`
	BorrowPreferred    bool             `json:"borrow_preferred"`
	RetainerAcceptable bool             `json:"retainer_acceptable"`
	MaxDailyRateCents  *int64           `json:"max_daily_rate_cents,omitempty"`
	Status             string           `json:"status"`
	Project            *ProjectLocation `json:"project,omitempty"`
}

type GearOffer struct {
	ID              string    `json:"id"`
	ProjectID       string    `json:"project_id"`
	GearRequestID   *string   `json:"gear_request_id,omitempty"`
	OffererID       string    `json:"offerer_id"`
	ListingID       *string   `json:"listing_id,omitempty"`
	OfferType       string    `json:"offer_type"`
	DailyRateCents  *int64    `json:"daily_rate_cents,omitempty"`
	TotalPriceCents *int64    `json:"total_price_cents,omitempty"`
	Message         *string   `json:"message,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type GearRequestRepository interface {
	// GetByID returns the request with Project populated.
	GetByID(ctx context.Context, id string) (*GearRequest, error)
	// FetchByProject lists a project's requests; an empty status lists all.
	FetchByProject(ctx context.Context, projectID, status string) ([]GearRequest, error)
	CountByProject(ctx context.Context, projectID, status string) (int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type GearOfferRepository interface {
	Create(ctx context.Context, offer *GearOffer) error
	FetchByProject(ctx context.Context, projectID string) ([]GearOffer, error)
	ExistsPending(ctx context.Context, projectID, offererID string) (bool, error)
	CountByProject(ctx context.Context, projectID, status string) (int64, error)
}
