package domain

import "context"

type ConvertListingInput struct {
	Title           string  `json:"title" validate:"required,min=3,max=200,no_emoji"`
	Description     *string `json:"description" validate:"omitempty,max=2000"`
	Condition       string  `json:"condition" validate:"required,listing_condition"`
	RentDayCents    *int64  `json:"rent_day_cents" validate:"omitempty,gt=0"`
	SalePriceCents  *int64  `json:"sale_price_cents" validate:"omitempty,gt=0"`
	LocationCity    string  `json:"location_city" validate:"max=100"`
	LocationCountry string  `json:"location_country" validate:"max=100"`
}

type GearOfferInput struct {
	GearRequestID   *string `json:"gear_request_id"`
	ListingID       *string `json:"listing_id"`
	OfferType       string  `json:"offer_type" validate:"required,offer_type"`
	DailyRateCents  *int64  `json:"daily_rate_cents"`
	TotalPriceCents *int64  `json:"total_price_cents"`
	Message         *string `json:"message" validate:"omitempty,max=1000"`
}

type GearRequestWithMatches struct {
	GearRequest
	MatchingListings  []Listing `json:"matching_listings"`
	SuggestedListings []Listing `json:"suggested_listings"`
}

type MarketplaceStats struct {
	TotalGearRequests int64 `json:"total_gear_requests"`
	FulfilledRequests int64 `json:"fulfilled_requests"`
	PendingOffers     int64 `json:"pending_offers"`
	MatchingListings  int   `json:"matching_listings"`
}

type MarketplaceUsecase interface {
	GetGearRequestsWithMatches(ctx context.Context, projectID string) ([]GearRequestWithMatches, error)
	ConvertGearRequestToListing(ctx context.Context, gearRequestID string, input *ConvertListingInput) (*Listing, error)
	LinkGearRequestToListing(ctx context.Context, gearRequestID, listingID string) (*GearOffer, error)
	CreateGearOffer(ctx context.Context, projectID string, input *GearOfferInput) (*GearOffer, error)
	ListGearOffers(ctx context.Context, projectID string) ([]GearOffer, error)
	// GetProjectMarketplaceStats reports zeros on any failure.
	GetProjectMarketplaceStats(ctx context.Context, projectID string) MarketplaceStats
}
