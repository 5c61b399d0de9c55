package domain

import "context"

const UserStatusActive = "active"

// CandidateUser is a row of users_profile as seen by matching and marketplace code.
type CandidateUser struct {
	ID              string   `json:"id"`
	AuthUserID      string   `json:"-"`
	Username        string   `json:"username"`
	DisplayName     string   `json:"display_name"`
	AvatarURL       *string  `json:"avatar_url,omitempty"`
	City            string   `json:"city,omitempty"`
	Country         string   `json:"country,omitempty"`
	Specializations []string `json:"specializations"`
	YearsExperience *int     `json:"years_experience,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
	Verified        bool     `json:"verified"`
	Status          string   `json:"-"`
}

// CandidateFilter narrows the candidate fetch. An empty City disables the location filter.
type CandidateFilter struct {
	City  string
	Limit int
}

type UserProfileRepository interface {
	GetByID(ctx context.Context, id string) (*CandidateUser, error)
	GetByAuthUserID(ctx context.Context, authUserID string) (*CandidateUser, error)
	FetchActiveCandidates(ctx context.Context, filter CandidateFilter) ([]CandidateUser, error)
}
