package postgres

import (
	"context"

	"preset-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type projectRepo struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) domain.ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT id, creator_id, title, description, COALESCE(city, ''), COALESCE(country, ''), visibility, status, created_at
		FROM collab_projects WHERE id = $1`

	var p domain.Project
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.CreatorID, &p.Title, &p.Description, &p.City, &p.Country, &p.Visibility, &p.Status, &p.CreatedAt,
	)
	if err != nil {
		return nil, mapNotFound(err)
	}
	p.Roles = []domain.RoleRequirement{}
	return &p, nil
}

func (r *projectRepo) GetRoleWithProject(ctx context.Context, roleID string) (*domain.RoleRequirement, error) {
	query := `
		SELECT
			r.id, r.project_id, r.role_name, r.skills_required, r.is_paid, COALESCE(r.headcount, 1), r.status,
			p.id, p.creator_id, COALESCE(p.city, ''), COALESCE(p.country, '')
		FROM collab_roles r
		JOIN collab_projects p ON p.id = r.project_id
		WHERE r.id = $1`

	var role domain.RoleRequirement
	var skills []string
	project := &domain.ProjectLocation{}
	err := r.db.QueryRow(ctx, query, roleID).Scan(
		&role.ID, &role.ProjectID, &role.RoleName, pq.Array(&skills), &role.IsPaid, &role.Headcount, &role.Status,
		&project.ID, &project.CreatorID, &project.City, &project.Country,
	)
	if err != nil {
		return nil, mapNotFound(err)
	}
	role.SkillsRequired = skills
	role.Project = project
	return &role, nil
}

// FetchPublishedPublic loads projects with their creator, then all of their roles in one query.
func (r *projectRepo) FetchPublishedPublic(ctx context.Context, limit int) ([]domain.Project, error) {
	query := `
		SELECT
			p.id, p.creator_id, p.title, p.description, COALESCE(p.city, ''), COALESCE(p.country, ''),
			p.visibility, p.status, p.created_at,
			u.id, u.username, COALESCE(u.display_name, u.username), u.avatar_url, u.verified, u.rating
		FROM collab_projects p
		JOIN users_profile u ON u.id = p.creator_id
		WHERE p.visibility = $1 AND p.status = $2
		ORDER BY p.created_at DESC
		LIMIT $3`

	rows, err := r.db.Query(ctx, query, domain.ProjectVisibilityPublic, domain.ProjectStatusPublished, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []domain.Project{}
	index := map[string]int{}
	ids := []string{}
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(
			&p.ID, &p.CreatorID, &p.Title, &p.Description, &p.City, &p.Country,
			&p.Visibility, &p.Status, &p.CreatedAt,
			&p.Creator.ID, &p.Creator.Username, &p.Creator.DisplayName, &p.Creator.AvatarURL, &p.Creator.Verified, &p.Creator.Rating,
		); err != nil {
			return nil, err
		}
		p.Roles = []domain.RoleRequirement{}
		index[p.ID] = len(projects)
		ids = append(ids, p.ID)
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return projects, nil
	}

	roleRows, err := r.db.Query(ctx, `
		SELECT id, project_id, role_name, skills_required, is_paid, COALESCE(headcount, 1), status
		FROM collab_roles
		WHERE project_id = ANY($1)
		ORDER BY created_at`, ids)
	if err != nil {
		return nil, err
	}
	defer roleRows.Close()

	for roleRows.Next() {
		var role domain.RoleRequirement
		var skills []string
		if err := roleRows.Scan(
			&role.ID, &role.ProjectID, &role.RoleName, pq.Array(&skills), &role.IsPaid, &role.Headcount, &role.Status,
		); err != nil {
			return nil, err
		}
		role.SkillsRequired = skills
		if i, ok := index[role.ProjectID]; ok {
			projects[i].Roles = append(projects[i].Roles, role)
		}
	}
	return projects, roleRows.Err()
}
