package postgres

import (
	"context"
	"fmt"
	"strings"

	"preset-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type userProfileRepo struct {
	db *pgxpool.Pool
}

func NewUserProfileRepository(db *pgxpool.Pool) domain.UserProfileRepository {
	return &userProfileRepo{db: db}
}

const userProfileColumns = `id, user_id, username, COALESCE(display_name, username), avatar_url, verified, rating,
	COALESCE(city, ''), COALESCE(country, ''), specializations, years_experience, status`

func scanCandidateUser(row rowScanner) (*domain.CandidateUser, error) {
	var u domain.CandidateUser
	var specializations []string
	err := row.Scan(
		&u.ID, &u.AuthUserID, &u.Username, &u.DisplayName, &u.AvatarURL, &u.Verified, &u.Rating,
		&u.City, &u.Country, pq.Array(&specializations), &u.YearsExperience, &u.Status,
	)
	if err != nil {
		return nil, err
	}
	u.Specializations = specializations
	if u.Specializations == nil {
		u.Specializations = []string{}
	}
	return &u, nil
}

func (r *userProfileRepo) GetByID(ctx context.Context, id string) (*domain.CandidateUser, error) {
	query := `SELECT ` + userProfileColumns + ` FROM users_profile WHERE id = $1`
	u, err := scanCandidateUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return u, nil
}

func (r *userProfileRepo) GetByAuthUserID(ctx context.Context, authUserID string) (*domain.CandidateUser, error) {
	query := `SELECT ` + userProfileColumns + ` FROM users_profile WHERE user_id = $1`
	u, err := scanCandidateUser(r.db.QueryRow(ctx, query, authUserID))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return u, nil
}

// FetchActiveCandidates returns active profiles, optionally narrowed to a city substring.
func (r *userProfileRepo) FetchActiveCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.CandidateUser, error) {
	conditions := []string{"status = $1"}
	args := []any{domain.UserStatusActive}
	argIndex := 2

	if strings.TrimSpace(filter.City) != "" {
		conditions = append(conditions, fmt.Sprintf("city ILIKE $%d", argIndex))
		args = append(args, containsPattern(filter.City))
		argIndex++
	}

	query := fmt.Sprintf(`SELECT %s FROM users_profile WHERE %s ORDER BY created_at DESC LIMIT $%d`,
		userProfileColumns, strings.Join(conditions, " AND "), argIndex)
	args = append(args, filter.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.CandidateUser{}
	for rows.Next() {
		u, err := scanCandidateUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}
