package postgres

import (
	"context"
	"fmt"

	"preset-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type gearRequestRepo struct {
	db *pgxpool.Pool
}

func NewGearRequestRepository(db *pgxpool.Pool) domain.GearRequestRepository {
	return &gearRequestRepo{db: db}
}

func (r *gearRequestRepo) GetByID(ctx context.Context, id string) (*domain.GearRequest, error) {
	query := `
		SELECT
			g.id, g.project_id, g.category, g.equipment_spec, g.quantity, g.borrow_preferred,
			g.retainer_acceptable, g.max_daily_rate_cents, g.status,
			p.id, p.creator_id, COALESCE(p.city, ''), COALESCE(p.country, '')
		FROM collab_gear_requests g
		JOIN collab_projects p ON p.id = g.project_id
		WHERE g.id = $1`

	var g domain.GearRequest
	project := &domain.ProjectLocation{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.ProjectID, &g.Category, &g.EquipmentSpec, &g.Quantity, &g.BorrowPreferred,
		&g.RetainerAcceptable, &g.MaxDailyRateCents, &g.Status,
		&project.ID, &project.CreatorID, &project.City, &project.Country,
	)
	if err != nil {
		return nil, mapNotFound(err)
	}
	g.Project = project
	return &g, nil
}

func (r *gearRequestRepo) FetchByProject(ctx context.Context, projectID, status string) ([]domain.GearRequest, error) {
	query := `SELECT id, project_id, category, equipment_spec, quantity, borrow_preferred, retainer_acceptable, max_daily_rate_cents, status
		FROM collab_gear_requests WHERE project_id = $1`
	args := []any{projectID}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", len(args)+1)
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []domain.GearRequest{}
	for rows.Next() {
		var g domain.GearRequest
		if err := rows.Scan(
			&g.ID, &g.ProjectID, &g.Category, &g.EquipmentSpec, &g.Quantity, &g.BorrowPreferred,
			&g.RetainerAcceptable, &g.MaxDailyRateCents, &g.Status,
		); err != nil {
			return nil, err
		}
		requests = append(requests, g)
	}
	return requests, rows.Err()
}

func (r *gearRequestRepo) CountByProject(ctx context.Context, projectID, status string) (int64, error) {
	query := `SELECT COUNT(*) FROM collab_gear_requests WHERE project_id = $1`
	args := []any{projectID}
	if status != "" {
		query += " AND status = $2"
		args = append(args, status)
	}

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *gearRequestRepo) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.Exec(ctx, `UPDATE collab_gear_requests SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
