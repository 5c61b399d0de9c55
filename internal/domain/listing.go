package domain

import (
	"context"
	"time"
)

const (
	ListingStatusActive = "active"

	ConditionNew     = "new"
	ConditionLikeNew = "like_new"
	ConditionGood    = "good"
	ConditionFair    = "fair"
	ConditionPoor    = "poor"
)

var ListingConditions = []string{ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor}

type ListingOwner struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	DisplayName string   `json:"display_name"`
	AvatarURL   *string  `json:"avatar_url,omitempty"`
	Verified    bool     `json:"verified"`
	Rating      *float64 `json:"rating,omitempty"`
}

type Listing struct {
	ID              string       `json:"id"`
	OwnerID         string       `json:"owner_id"`
	Title           string       `json:"title"`
	Description     *string      `json:"description,omitempty"`
	Category        string       `json:"category"`
	Condition       string       `json:"condition"`
	RentDayCents    *int64       `json:"rent_day_cents,omitempty"`
	SalePriceCents  *int64       `json:"sale_price_cents,omitempty"`
	LocationCity    string       `json:"location_city,omitempty"`
	LocationCountry string       `json:"location_country,omitempty"`
	Status          string       `json:"status"`
	Owner           ListingOwner `json:"owner"`
	CreatedAt       time.Time    `json:"created_at"`
}

// ListingFilter drives the active-listing fetch. Categories are OR-ed substring
// matches; empty fields disable their filter.
type ListingFilter struct {
	Categories      []string
	City            string
	MaxRentDayCents *int64
	Limit           int
}

type ListingRepository interface {
	GetByID(ctx context.Context, id string) (*Listing, error)
	FetchActive(ctx context.Context, filter ListingFilter) ([]Listing, error)
	Create(ctx context.Context, listing *Listing) error
}
