package postgres

import (
	"context"
	"fmt"
	"strings"

	"preset-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type listingRepo struct {
	db *pgxpool.Pool
}

func NewListingRepository(db *pgxpool.Pool) domain.ListingRepository {
	return &listingRepo{db: db}
}

const listingSelect = `
	SELECT
		l.id, l.owner_id, l.title, l.description, l.category, l.condition,
		l.rent_day_cents, l.sale_price_cents, COALESCE(l.location_city, ''), COALESCE(l.location_country, ''),
		l.status, l.created_at,
		u.id, u.username, COALESCE(u.display_name, u.username), u.avatar_url, u.verified, u.rating
	FROM listings l
	JOIN users_profile u ON u.id = l.owner_id`

func scanListing(row rowScanner) (*domain.Listing, error) {
	var l domain.Listing
	err := row.Scan(
		&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.Category, &l.Condition,
		&l.RentDayCents, &l.SalePriceCents, &l.LocationCity, &l.LocationCountry,
		&l.Status, &l.CreatedAt,
		&l.Owner.ID, &l.Owner.Username, &l.Owner.DisplayName, &l.Owner.AvatarURL, &l.Owner.Verified, &l.Owner.Rating,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *listingRepo) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	l, err := scanListing(r.db.QueryRow(ctx, listingSelect+` WHERE l.id = $1`, id))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return l, nil
}

// FetchActive returns active listings. Categories are OR-ed ILIKE filters.
func (r *listingRepo) FetchActive(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	conditions := []string{"l.status = $1"}
	args := []any{domain.ListingStatusActive}
	argIndex := 2

	var categoryConds []string
	for _, c := range filter.Categories {
		if strings.TrimSpace(c) == "" {
			continue
		}
		categoryConds = append(categoryConds, fmt.Sprintf("l.category ILIKE $%d", argIndex))
		args = append(args, containsPattern(c))
		argIndex++
	}
	if len(categoryConds) > 0 {
		conditions = append(conditions, "("+strings.Join(categoryConds, " OR ")+")")
	}

	if strings.TrimSpace(filter.City) != "" {
		conditions = append(conditions, fmt.Sprintf("l.location_city ILIKE $%d", argIndex))
		args = append(args, containsPattern(filter.City))
		argIndex++
	}

	if filter.MaxRentDayCents != nil {
		conditions = append(conditions, fmt.Sprintf("l.rent_day_cents <= $%d", argIndex))
		args = append(args, *filter.MaxRentDayCents)
		argIndex++
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY l.created_at DESC LIMIT $%d",
		listingSelect, strings.Join(conditions, " AND "), argIndex)
	args = append(args, filter.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := []domain.Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, *l)
	}
	return listings, rows.Err()
}

func (r *listingRepo) Create(ctx context.Context, l *domain.Listing) error {
	query := `INSERT INTO listings (id, owner_id, title, description, category, condition, rent_day_cents, sale_price_cents,
			location_city, location_country, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)`
	_, err := r.db.Exec(ctx, query,
		l.ID, l.OwnerID, l.Title, l.Description, l.Category, l.Condition, l.RentDayCents, l.SalePriceCents,
		l.LocationCity, l.LocationCountry, l.Status, l.CreatedAt,
	)
	return err
}
