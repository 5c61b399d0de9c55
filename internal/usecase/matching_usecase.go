package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"preset-backend/internal/domain"
	"preset-backend/internal/matching"
	"preset-backend/pkg/apperror"
	"preset-backend/pkg/logger"
	"preset-backend/pkg/metrics"
)

const (
	matcherUserRole    = "user_role"
	matcherEquipment   = "equipment"
	matcherUserProject = "user_project"
)

// MatchingConfig bounds result sizes and selects the listing category filter mode.
type MatchingConfig struct {
	DefaultLimit   int
	MaxLimit       int
	StrictCategory bool
}

type matchingUsecase struct {
	users        domain.UserProfileRepository
	projects     domain.ProjectRepository
	gearRequests domain.GearRequestRepository
	listings     domain.ListingRepository
	cache        domain.MatchCache
	weights      matching.Weights
	cfg          MatchingConfig
}

func NewMatchingUsecase(
	users domain.UserProfileRepository,
	projects domain.ProjectRepository,
	gearRequests domain.GearRequestRepository,
	listings domain.ListingRepository,
	cache domain.MatchCache,
	weights matching.Weights,
	cfg MatchingConfig,
) domain.MatchingUsecase {
	return &matchingUsecase{
		users:        users,
		projects:     projects,
		gearRequests: gearRequests,
		listings:     listings,
		cache:        cache,
		weights:      weights,
		cfg:          cfg,
	}
}

func (u *matchingUsecase) limit(requested int) int {
	if requested <= 0 && u.cfg.DefaultLimit > 0 {
		requested = u.cfg.DefaultLimit
	}
	return matching.NormalizeLimit(requested, u.cfg.MaxLimit)
}

func (u *matchingUsecase) MatchUsersForRole(ctx context.Context, roleID string, limit int) (matches []domain.UserMatch, err error) {
	defer observe(matcherUserRole, time.Now(), &err)
	limit = u.limit(limit)

	return cached(ctx, u.cache, matcherUserRole, domain.CandidateSetUsers, roleID, limit, func() ([]domain.UserMatch, error) {
		role, err := u.projects.GetRoleWithProject(ctx, roleID)
		if err != nil {
			return nil, lookupError(err, "Role not found")
		}

		filter := domain.CandidateFilter{Limit: limit * 2}
		if role.Project != nil {
			filter.City = role.Project.City
		}
		candidates, err := u.users.FetchActiveCandidates(ctx, filter)
		if err != nil {
			return nil, storeError(err)
		}
		metrics.MatchCandidatesScored.WithLabelValues(matcherUserRole).Observe(float64(len(candidates)))

		matches := make([]domain.UserMatch, 0, len(candidates))
		for _, c := range candidates {
			matches = append(matches, toUserMatch(c, matching.ScoreUserForRole(u.weights.UserRole, c, *role)))
		}
		return matching.Rank(matches, func(m domain.UserMatch) float64 { return m.CompatibilityScore }, limit), nil
	})
}

func (u *matchingUsecase) MatchEquipmentForGearRequest(ctx context.Context, gearRequestID string, limit int) (matches []domain.EquipmentMatch, err error) {
	defer observe(matcherEquipment, time.Now(), &err)
	limit = u.limit(limit)

	return cached(ctx, u.cache, matcherEquipment, domain.CandidateSetListings, gearRequestID, limit, func() ([]domain.EquipmentMatch, error) {
		req, err := u.gearRequests.GetByID(ctx, gearRequestID)
		if err != nil {
			return nil, lookupError(err, "Gear request not found")
		}

		filter := domain.ListingFilter{
			Categories: matching.CandidateCategories(req.Category, u.cfg.StrictCategory),
			Limit:      limit * 2,
		}
		if req.Project != nil {
			filter.City = req.Project.City
		}
		listings, err := u.listings.FetchActive(ctx, filter)
		if err != nil {
			return nil, storeError(err)
		}
		metrics.MatchCandidatesScored.WithLabelValues(matcherEquipment).Observe(float64(len(listings)))

		matches := make([]domain.EquipmentMatch, 0, len(listings))
		for _, l := range listings {
			matches = append(matches, toEquipmentMatch(l, matching.ScoreListingForGearRequest(u.weights.Equipment, l, *req)))
		}
		return matching.Rank(matches, func(m domain.EquipmentMatch) float64 { return m.CompatibilityScore }, limit), nil
	})
}

func (u *matchingUsecase) MatchProjectsForUser(ctx context.Context, userID string, limit int) (matches []domain.ProjectMatch, err error) {
	defer observe(matcherUserProject, time.Now(), &err)
	limit = u.limit(limit)

	return cached(ctx, u.cache, matcherUserProject, domain.CandidateSetProjects, userID, limit, func() ([]domain.ProjectMatch, error) {
		user, err := u.users.GetByID(ctx, userID)
		if err != nil {
			return nil, lookupError(err, "User not found")
		}

		projects, err := u.projects.FetchPublishedPublic(ctx, limit*2)
		if err != nil {
			return nil, storeError(err)
		}
		metrics.MatchCandidatesScored.WithLabelValues(matcherUserProject).Observe(float64(len(projects)))

		matches := make([]domain.ProjectMatch, 0, len(projects))
		for _, p := range projects {
			matches = append(matches, domain.ProjectMatch{
				Project:     p,
				MatchResult: matching.ScoreProjectForUser(u.weights.UserProject, *user, p),
			})
		}
		return matching.Rank(matches, func(m domain.ProjectMatch) float64 { return m.CompatibilityScore }, limit), nil
	})
}

func (u *matchingUsecase) FindUsersForRole(ctx context.Context, roleID string, limit int) []domain.UserMatch {
	matches, err := u.MatchUsersForRole(ctx, roleID, limit)
	if err != nil {
		logger.Log.Errorw("Error finding users for role", "role_id", roleID, "error", err)
		return []domain.UserMatch{}
	}
	return matches
}

func (u *matchingUsecase) FindEquipmentForGearRequest(ctx context.Context, gearRequestID string, limit int) []domain.EquipmentMatch {
	matches, err := u.MatchEquipmentForGearRequest(ctx, gearRequestID, limit)
	if err != nil {
		logger.Log.Errorw("Error finding equipment for gear request", "gear_request_id", gearRequestID, "error", err)
		return []domain.EquipmentMatch{}
	}
	return matches
}

func (u *matchingUsecase) FindProjectsForUser(ctx context.Context, userID string, limit int) []domain.ProjectMatch {
	matches, err := u.MatchProjectsForUser(ctx, userID, limit)
	if err != nil {
		logger.Log.Errorw("Error finding projects for user", "user_id", userID, "error", err)
		return []domain.ProjectMatch{}
	}
	return matches
}

// cached serves a ranked result from the match cache, computing and storing it
// on a miss. Cache failures degrade to computing without the cache.
func cached[T any](ctx context.Context, cache domain.MatchCache, matcher, set, targetID string, limit int, compute func() ([]T, error)) ([]T, error) {
	if cache == nil {
		return compute()
	}

	version, err := cache.Version(ctx, set)
	if err != nil {
		metrics.MatchCacheLookups.WithLabelValues(matcher, "error").Inc()
		logger.Log.Warnw("Match cache version lookup failed", "matcher", matcher, "error", err)
		return compute()
	}

	key := fmt.Sprintf("%s:%s:%d:%d", matcher, targetID, limit, version)
	var hit []T
	found, err := cache.Get(ctx, key, &hit)
	switch {
	case err != nil:
		metrics.MatchCacheLookups.WithLabelValues(matcher, "error").Inc()
		logger.Log.Warnw("Match cache read failed", "matcher", matcher, "key", key, "error", err)
	case found:
		metrics.MatchCacheLookups.WithLabelValues(matcher, "hit").Inc()
		return hit, nil
	default:
		metrics.MatchCacheLookups.WithLabelValues(matcher, "miss").Inc()
	}

	result, err := compute()
	if err != nil {
		return nil, err
	}
	if err := cache.Set(ctx, key, result); err != nil {
		logger.Log.Warnw("Match cache write failed", "matcher", matcher, "key", key, "error", err)
	}
	return result, nil
}

func observe(matcher string, start time.Time, err *error) {
	outcome := metrics.OutcomeOK
	if *err != nil {
		outcome = metrics.OutcomeError
		var appErr *apperror.AppError
		if errors.As(*err, &appErr) && appErr.Code == http.StatusNotFound {
			outcome = metrics.OutcomeNotFound
		}
	}
	metrics.MatchRequests.WithLabelValues(matcher, outcome).Inc()
	metrics.MatchDuration.WithLabelValues(matcher).Observe(time.Since(start).Seconds())
}

func lookupError(err error, notFound string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound(notFound)
	}
	return storeError(err)
}

func storeError(err error) error {
	return apperror.ServiceUnavailable("Data store unavailable", err)
}

func toUserMatch(c domain.CandidateUser, result domain.MatchResult) domain.UserMatch {
	specs := c.Specializations
	if specs == nil {
		specs = []string{}
	}
	return domain.UserMatch{
		UserID:          c.ID,
		Username:        c.Username,
		DisplayName:     c.DisplayName,
		AvatarURL:       c.AvatarURL,
		Verified:        c.Verified,
		Rating:          c.Rating,
		City:            c.City,
		Country:         c.Country,
		Specializations: specs,
		MatchResult:     result,
	}
}

func toEquipmentMatch(l domain.Listing, result domain.MatchResult) domain.EquipmentMatch {
	return domain.EquipmentMatch{
		ListingID:       l.ID,
		Title:           l.Title,
		Description:     l.Description,
		Category:        l.Category,
		Condition:       l.Condition,
		RentDayCents:    l.RentDayCents,
		SalePriceCents:  l.SalePriceCents,
		LocationCity:    l.LocationCity,
		LocationCountry: l.LocationCountry,
		Owner:           l.Owner,
		MatchResult:     result,
	}
}
