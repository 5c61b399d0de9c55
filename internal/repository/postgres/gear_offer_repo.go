package postgres

import (
	"context"

	"preset-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type gearOfferRepo struct {
	db *pgxpool.Pool
}

func NewGearOfferRepository(db *pgxpool.Pool) domain.GearOfferRepository {
	return &gearOfferRepo{db: db}
}

func (r *gearOfferRepo) Create(ctx context.Context, o *domain.GearOffer) error {
	query := `INSERT INTO collab_gear_offers (id, project_id, gear_request_id, offerer_id, listing_id, offer_type,
			daily_rate_cents, total_price_cents, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`
	_, err := r.db.Exec(ctx, query,
		o.ID, o.ProjectID, o.GearRequestID, o.OffererID, o.ListingID, o.OfferType,
		o.DailyRateCents, o.TotalPriceCents, o.Message, o.Status, o.CreatedAt,
	)
	return err
}

func (r *gearOfferRepo) FetchByProject(ctx context.Context, projectID string) ([]domain.GearOffer, error) {
	query := `SELECT id, project_id, gear_request_id, offerer_id, listing_id, offer_type,
			daily_rate_cents, total_price_cents, message, status, created_at
		FROM collab_gear_offers WHERE project_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := []domain.GearOffer{}
	for rows.Next() {
		var o domain.GearOffer
		if err := rows.Scan(
			&o.ID, &o.ProjectID, &o.GearRequestID, &o.OffererID, &o.ListingID, &o.OfferType,
			&o.DailyRateCents, &o.TotalPriceCents, &o.Message, &o.Status, &o.CreatedAt,
		); err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

func (r *gearOfferRepo) ExistsPending(ctx context.Context, projectID, offererID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM collab_gear_offers WHERE project_id = $1 AND offerer_id = $2 AND status = $3)`,
		projectID, offererID, domain.OfferStatusPending,
	).Scan(&exists)
	return exists, err
}

func (r *gearOfferRepo) CountByProject(ctx context.Context, projectID, status string) (int64, error) {
	query := `SELECT COUNT(*) FROM collab_gear_offers WHERE project_id = $1`
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
