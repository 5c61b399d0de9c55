package domain

import (
	"context"
	"time"
)

const (
	ProjectStatusDraft     = "draft"
	ProjectStatusPublished = "published"
	ProjectStatusCompleted = "completed"
	ProjectStatusCancelled = "cancelled"

	ProjectVisibilityPublic = "public"
)

// ProjectLocation is the slice of a project that role and gear-request matching reads.
type ProjectLocation struct {
	ID        string `json:"id"`
	CreatorID string `json:"creator_id,omitempty"`
	City      string `json:"city,omitempty"`
	Country   string `json:"country,omitempty"`
}

type RoleRequirement struct {
	ID             string           `json:"id"`
	ProjectID      string           `json:"project_id"`
	RoleName       string           `json:"role_name"`
	SkillsRequired []string         `json:"skills_required"`
	IsPaid         bool             `json:"is_paid"`
	Headcount      int              `json:"headcount"`
	Status         string           `json:"status"`
	Project        *ProjectLocation `json:"project,omitempty"`
}

type ProjectCreator struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	DisplayName string   `json:"display_name"`
	AvatarURL   *string  `json:"avatar_url,omitempty"`
	Verified    bool     `json:"verified"`
	Rating      *float64 `json:"rating,omitempty"`
}

type Project struct {
	ID          string            `json:"id"`
	CreatorID   string            `json:"creator_id"`
	Title       string            `json:"title"`
	Description *string           `json:"description,omitempty"`
	City        string            `json:"city,omitempty"`
	Country     string            `json:"country,omitempty"`
	Visibility  string            `json:"visibility"`
	Status      string            `json:"status"`
	Creator     ProjectCreator    `json:"creator"`
	Roles       []RoleRequirement `json:"collab_roles"`
	CreatedAt   time.Time         `json:"created_at"`
}

type ProjectRepository interface {
	// GetByID returns the project without roles or creator details.
	GetByID(ctx context.Context, id string) (*Project, error)
	GetRoleWithProject(ctx context.Context, roleID string) (*RoleRequirement, error)
	// FetchPublishedPublic returns public, published projects with creator and roles populated.
	FetchPublishedPublic(ctx context.Context, limit int) ([]Project, error)
}
