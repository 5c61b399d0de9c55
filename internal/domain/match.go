package domain

import "context"

// MatchResult is the per-candidate score. It is built per request and never persisted.
type MatchResult struct {
	CompatibilityScore float64  `json:"compatibility_score"`
	MatchReasons       []string `json:"match_reasons"`
}

type UserMatch struct {
	UserID          string   `json:"user_id"`
	Username        string   `json:"username"`
	DisplayName     string   `json:"display_name"`
	AvatarURL       *string  `json:"avatar_url,omitempty"`
	Verified        bool     `json:"verified"`
	Rating          *float64 `json:"rating,omitempty"`
	City            string   `json:"city,omitempty"`
	Country         string   `json:"country,omitempty"`
	Specializations []string `json:"specializations"`
	MatchResult
}

type EquipmentMatch struct {
	ListingID       string       `json:"listing_id"`
	Title           string       `json:"title"`
	Description     *string      `json:"description,omitempty"`
	Category        string       `json:"category"`
	Condition       string       `json:"condition"`
	RentDayCents    *int64       `json:"rent_day_cents,omitempty"`
	SalePriceCents  *int64       `json:"sale_price_cents,omitempty"`
	LocationCity    string       `json:"location_city,omitempty"`
	LocationCountry string       `json:"location_country,omitempty"`
	Owner           ListingOwner `json:"owner"`
	MatchResult
}

type ProjectMatch struct {
	Project
	MatchResult
}

// MatchingUsecase ranks candidates against a target.
//
// The Match* methods return typed errors (apperror.NotFound for a missing target,
// wrapped store errors otherwise). The Find* methods never fail: any error is
// logged and reported as an empty result.
type MatchingUsecase interface {
	MatchUsersForRole(ctx context.Context, roleID string, limit int) ([]UserMatch, error)
	MatchEquipmentForGearRequest(ctx context.Context, gearRequestID string, limit int) ([]EquipmentMatch, error)
	MatchProjectsForUser(ctx context.Context, userID string, limit int) ([]ProjectMatch, error)

	FindUsersForRole(ctx context.Context, roleID string, limit int) []UserMatch
	FindEquipmentForGearRequest(ctx context.Context, gearRequestID string, limit int) []EquipmentMatch
	FindProjectsForUser(ctx context.Context, userID string, limit int) []ProjectMatch
}

// Candidate sets versioned by MatchCache.
const (
	CandidateSetUsers    = "users"
	CandidateSetListings = "listings"
	CandidateSetProjects = "projects"
)

// MatchCache stores ranked results. Keys are opaque to the cache; the usecase
// folds the candidate-set version into them so Bump invalidates old entries.
type MatchCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Version(ctx context.Context, set string) (int64, error)
	Bump(ctx context.Context, set string) error
}
