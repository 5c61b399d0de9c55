package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"preset-backend/internal/domain"
	"preset-backend/internal/matching"
	"preset-backend/internal/repository/cache"
	"preset-backend/internal/usecase"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type matchingFixture struct {
	users        *MockUserProfileRepo
	projects     *MockProjectRepo
	gearRequests *MockGearRequestRepo
	listings     *MockListingRepo
}

func newMatchingFixture() *matchingFixture {
	return &matchingFixture{
		users:        new(MockUserProfileRepo),
		projects:     new(MockProjectRepo),
		gearRequests: new(MockGearRequestRepo),
		listings:     new(MockListingRepo),
	}
}

func (f *matchingFixture) usecase(c domain.MatchCache, cfg usecase.MatchingConfig) domain.MatchingUsecase {
	return usecase.NewMatchingUsecase(f.users, f.projects, f.gearRequests, f.listings, c, matching.DefaultWeights(), cfg)
}

var defaultMatchingConfig = usecase.MatchingConfig{DefaultLimit: 10, MaxLimit: 50, StrictCategory: true}

func dublinRole() *domain.RoleRequirement {
	return &domain.RoleRequirement{
		ID:             "role-1",
		ProjectID:      "proj-1",
		RoleName:       "Photographer",
		SkillsRequired: []string{"photography", "lighting"},
		Project:        &domain.ProjectLocation{ID: "proj-1", City: "Dublin", Country: "Ireland"},
	}
}

func roleCandidates() []domain.CandidateUser {
	return []domain.CandidateUser{
		{ID: "plain", Username: "plain", City: "Dublin"},
		{ID: "junior", Username: "junior", City: "Dublin", Specializations: []string{"photography"}, YearsExperience: intPtr(1)},
		{
			ID: "senior", Username: "senior", City: "Dublin", Verified: true,
			Specializations: []string{"Photography", "Lighting"}, YearsExperience: intPtr(6), Rating: floatPtr(4.8),
		},
	}
}

func TestMatchUsersForRole(t *testing.T) {
	ctx := context.Background()

	t.Run("Should rank candidates by score and truncate to the limit", func(t *testing.T) {
		f := newMatchingFixture()
		f.projects.On("GetRoleWithProject", ctx, "role-1").Return(dublinRole(), nil)
		f.users.On("FetchActiveCandidates", ctx, domain.CandidateFilter{City: "Dublin", Limit: 4}).Return(roleCandidates(), nil)

		matches, err := f.usecase(nil, defaultMatchingConfig).MatchUsersForRole(ctx, "role-1", 2)
		require.NoError(t, err)
		require.Len(t, matches, 2)

		assert.Equal(t, "senior", matches[0].UserID)
		assert.Equal(t, 100.0, matches[0].CompatibilityScore)
		assert.Equal(t, "junior", matches[1].UserID)
		assert.Equal(t, 65.0, matches[1].CompatibilityScore)
		assert.Equal(t, matching.ReasonAvailableUser, matches[1].MatchReasons[0])
		f.users.AssertExpectations(t)
	})

	t.Run("Should default the limit and cap it at the maximum", func(t *testing.T) {
		f := newMatchingFixture()
		f.projects.On("GetRoleWithProject", ctx, "role-1").Return(dublinRole(), nil)
		f.users.On("FetchActiveCandidates", ctx, domain.CandidateFilter{City: "Dublin", Limit: 20}).Return([]domain.CandidateUser{}, nil).Once()
		f.users.On("FetchActiveCandidates", ctx, domain.CandidateFilter{City: "Dublin", Limit: 100}).Return([]domain.CandidateUser{}, nil).Once()

		uc := f.usecase(nil, defaultMatchingConfig)
		_, err := uc.MatchUsersForRole(ctx, "role-1", 0)
		require.NoError(t, err)
		_, err = uc.MatchUsersForRole(ctx, "role-1", 500)
		require.NoError(t, err)
		f.users.AssertExpectations(t)
	})

	t.Run("Should skip the city filter when the project has no city", func(t *testing.T) {
		f := newMatchingFixture()
		role := dublinRole()
		role.Project.City = ""
		f.projects.On("GetRoleWithProject", ctx, "role-1").Return(role, nil)
		f.users.On("FetchActiveCandidates", ctx, domain.CandidateFilter{Limit: 20}).Return([]domain.CandidateUser{}, nil)

		matches, err := f.usecase(nil, defaultMatchingConfig).MatchUsersForRole(ctx, "role-1", 10)
		require.NoError(t, err)
		assert.Empty(t, matches)
		f.users.AssertExpectations(t)
	})

	t.Run("Should report a missing role as not found", func(t *testing.T) {
		f := newMatchingFixture()
		f.projects.On("GetRoleWithProject", ctx, "missing").Return(nil, domain.ErrNotFound)

		uc := f.usecase(nil, defaultMatchingConfig)
		_, err := uc.MatchUsersForRole(ctx, "missing", 10)
		assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))

		found := uc.FindUsersForRole(ctx, "missing", 10)
		assert.NotNil(t, found)
		assert.Empty(t, found)
	})

	t.Run("Should report a store failure as unavailable", func(t *testing.T) {
		f := newMatchingFixture()
		f.projects.On("GetRoleWithProject", ctx, "role-1").Return(dublinRole(), nil)
		f.users.On("FetchActiveCandidates", ctx, mock.Anything).Return(nil, errStoreDown)

		uc := f.usecase(nil, defaultMatchingConfig)
		_, err := uc.MatchUsersForRole(ctx, "role-1", 10)
		assert.Equal(t, http.StatusServiceUnavailable, appErrorCode(t, err))
		assert.ErrorIs(t, err, errStoreDown)

		assert.Empty(t, uc.FindUsersForRole(ctx, "role-1", 10))
	})
}

func TestMatchEquipmentForGearRequest(t *testing.T) {
	ctx := context.Background()
	req := &domain.GearRequest{
		ID:        "gr-1",
		ProjectID: "proj-1",
		Category:  "camera",
		Status:    domain.GearRequestOpen,
		Project:   &domain.ProjectLocation{ID: "proj-1", City: "Berlin", Country: "Germany"},
	}
	listings := []domain.Listing{
		{ID: "far", Title: "Canon", Category: "camera", LocationCity: "Munich", LocationCountry: "Germany", Condition: domain.ConditionFair},
		{ID: "near", Title: "Sony", Category: "camera", LocationCity: "Berlin", Condition: domain.ConditionNew, Owner: domain.ListingOwner{Verified: true}},
	}

	t.Run("Should filter by the exact category in strict mode", func(t *testing.T) {
		f := newMatchingFixture()
		f.gearRequests.On("GetByID", ctx, "gr-1").Return(req, nil)
		f.listings.On("FetchActive", ctx, domain.ListingFilter{Categories: []string{"camera"}, City: "Berlin", Limit: 20}).Return(listings, nil)

		matches, err := f.usecase(nil, defaultMatchingConfig).MatchEquipmentForGearRequest(ctx, "gr-1", 0)
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, "near", matches[0].ListingID)
		assert.Equal(t, "far", matches[1].ListingID)
		assert.GreaterOrEqual(t, matches[0].CompatibilityScore, matches[1].CompatibilityScore)
		assert.Contains(t, matches[0].MatchReasons, "Category match")
		f.listings.AssertExpectations(t)
	})

	t.Run("Should widen the category filter in loose mode", func(t *testing.T) {
		f := newMatchingFixture()
		f.gearRequests.On("GetByID", ctx, "gr-1").Return(req, nil)
		f.listings.On("FetchActive", ctx, domain.ListingFilter{
			Categories: []string{"camera", "photography", "video", "cinematography"},
			City:       "Berlin",
			Limit:      20,
		}).Return([]domain.Listing{{ID: "video", Category: "video"}}, nil)

		cfg := defaultMatchingConfig
		cfg.StrictCategory = false
		matches, err := f.usecase(nil, cfg).MatchEquipmentForGearRequest(ctx, "gr-1", 10)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Contains(t, matches[0].MatchReasons, "Related category")
	})

	t.Run("Should collapse a missing gear request to an empty result", func(t *testing.T) {
		f := newMatchingFixture()
		f.gearRequests.On("GetByID", ctx, "missing").Return(nil, domain.ErrNotFound)

		uc := f.usecase(nil, defaultMatchingConfig)
		_, err := uc.MatchEquipmentForGearRequest(ctx, "missing", 10)
		assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
		assert.Empty(t, uc.FindEquipmentForGearRequest(ctx, "missing", 10))
	})
}

func TestMatchProjectsForUser(t *testing.T) {
	ctx := context.Background()
	user := &domain.CandidateUser{ID: "u-1", City: "Dublin", Country: "Ireland"}
	projects := []domain.Project{
		{ID: "cork", City: "Cork", Country: "Ireland"},
		{ID: "dublin", City: "Dublin", Country: "Ireland"},
	}

	t.Run("Should return only the best project when the limit is one", func(t *testing.T) {
		f := newMatchingFixture()
		f.users.On("GetByID", ctx, "u-1").Return(user, nil)
		f.projects.On("FetchPublishedPublic", ctx, 2).Return(projects, nil)

		matches, err := f.usecase(nil, defaultMatchingConfig).MatchProjectsForUser(ctx, "u-1", 1)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "dublin", matches[0].ID)
		assert.Equal(t, 40.0, matches[0].CompatibilityScore)
		assert.Equal(t, []string{matching.ReasonAvailableProject, "Same location"}, matches[0].MatchReasons)
	})

	t.Run("Should report a missing user as not found", func(t *testing.T) {
		f := newMatchingFixture()
		f.users.On("GetByID", ctx, "ghost").Return(nil, domain.ErrNotFound)

		uc := f.usecase(nil, defaultMatchingConfig)
		_, err := uc.MatchProjectsForUser(ctx, "ghost", 5)
		assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
		assert.Empty(t, uc.FindProjectsForUser(ctx, "ghost", 5))
	})
}

func TestMatchingCache(t *testing.T) {
	ctx := context.Background()

	newRedisCache := func(t *testing.T) (domain.MatchCache, *miniredis.Miniredis) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		t.Cleanup(mr.Close)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		return cache.NewMatchCache(client, time.Minute), mr
	}

	t.Run("Should serve repeated calls from the cache", func(t *testing.T) {
		f := newMatchingFixture()
		c, _ := newRedisCache(t)
		f.projects.On("GetRoleWithProject", ctx, "role-1").Return(dublinRole(), nil).Once()
		f.users.On("FetchActiveCandidates", ctx, mock.Anything).Return(roleCandidates(), nil).Once()

		uc := f.usecase(c, defaultMatchingConfig)
		first, err := uc.MatchUsersForRole(ctx, "role-1", 3)
		require.NoError(t, err)
		second, err := uc.MatchUsersForRole(ctx, "role-1", 3)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		f.users.AssertNumberOfCalls(t, "FetchActiveCandidates", 1)
	})

	t.Run("Should recompute after the candidate set version is bumped", func(t *testing.T) {
		f := newMatchingFixture()
		c, _ := newRedisCache(t)
		f.projects.On("GetRoleWithProject", ctx, "role-1").Return(dublinRole(), nil)
		f.users.On("FetchActiveCandidates", ctx, mock.Anything).Return(roleCandidates(), nil)

		uc := f.usecase(c, defaultMatchingConfig)
		_, err := uc.MatchUsersForRole(ctx, "role-1", 3)
		require.NoError(t, err)
		require.NoError(t, c.Bump(ctx, domain.CandidateSetUsers))
		_, err = uc.MatchUsersForRole(ctx, "role-1", 3)
		require.NoError(t, err)

		f.users.AssertNumberOfCalls(t, "FetchActiveCandidates", 2)
	})

	t.Run("Should fall back to scoring when the cache is down", func(t *testing.T) {
		f := newMatchingFixture()
		c, mr := newRedisCache(t)
		mr.Close()
		f.projects.On("GetRoleWithProject", ctx, "role-1").Return(dublinRole(), nil)
		f.users.On("FetchActiveCandidates", ctx, mock.Anything).Return(roleCandidates(), nil)

		matches, err := f.usecase(c, defaultMatchingConfig).MatchUsersForRole(ctx, "role-1", 3)
		require.NoError(t, err)
		assert.Len(t, matches, 3)
	})
}
