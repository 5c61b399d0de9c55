package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"preset-backend/internal/domain"
	"preset-backend/internal/matching"
	"preset-backend/internal/repository/cache"
	"preset-backend/internal/usecase"
	"preset-backend/pkg/validation"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type marketplaceFixture struct {
	users        *MockUserProfileRepo
	projects     *MockProjectRepo
	gearRequests *MockGearRequestRepo
	listings     *MockListingRepo
	offers       *MockGearOfferRepo
	cache        domain.MatchCache
	uc           domain.MarketplaceUsecase
}

func newMarketplaceFixture(t *testing.T) *marketplaceFixture {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	validate := validator.New()
	validation.RegisterValidators(validate)

	f := &marketplaceFixture{
		users:        new(MockUserProfileRepo),
		projects:     new(MockProjectRepo),
		gearRequests: new(MockGearRequestRepo),
		listings:     new(MockListingRepo),
		offers:       new(MockGearOfferRepo),
		cache:        cache.NewMatchCache(client, time.Minute),
	}
	f.uc = usecase.NewMarketplaceUsecase(f.users, f.projects, f.gearRequests, f.listings, f.offers, f.cache, validate,
		matching.DefaultWeights().Equipment.BudgetTolerance)
	return f
}

func authedCtx(authUserID string) context.Context {
	return context.WithValue(context.Background(), domain.KeyUserID, authUserID)
}

func (f *marketplaceFixture) signIn(ctx context.Context, authUserID, profileID string) {
	f.users.On("GetByAuthUserID", ctx, authUserID).Return(&domain.CandidateUser{ID: profileID, Username: profileID}, nil)
}

func cameraRequest() *domain.GearRequest {
	return &domain.GearRequest{
		ID:                "gr-1",
		ProjectID:         "proj-1",
		Category:          "camera",
		BorrowPreferred:   true,
		MaxDailyRateCents: int64Ptr(5000),
		Status:            domain.GearRequestOpen,
		Project:           &domain.ProjectLocation{ID: "proj-1", CreatorID: "creator", City: "Lisbon", Country: "Portugal"},
	}
}

func TestGetGearRequestsWithMatches(t *testing.T) {
	f := newMarketplaceFixture(t)
	ctx := context.Background()

	f.projects.On("GetByID", ctx, "proj-1").Return(&domain.Project{ID: "proj-1"}, nil)
	f.gearRequests.On("FetchByProject", ctx, "proj-1", domain.GearRequestOpen).Return([]domain.GearRequest{*cameraRequest()}, nil)
	f.listings.On("FetchActive", ctx, domain.ListingFilter{
		Categories:      []string{"camera"},
		MaxRentDayCents: int64Ptr(5000),
		Limit:           10,
	}).Return([]domain.Listing{{ID: "l-1"}, {ID: "l-2"}}, nil)
	f.listings.On("FetchActive", ctx, domain.ListingFilter{
		Categories: []string{"photography", "video", "cinematography"},
		Limit:      5,
	}).Return([]domain.Listing{{ID: "l-3"}}, nil)

	result, err := f.uc.GetGearRequestsWithMatches(ctx, "proj-1")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Len(t, result[0].MatchingListings, 2)
	assert.Len(t, result[0].SuggestedListings, 1)
	f.listings.AssertExpectations(t)
}

func TestConvertGearRequestToListing(t *testing.T) {
	input := func() *domain.ConvertListingInput {
		return &domain.ConvertListingInput{Title: "Sony FX3", Condition: domain.ConditionLikeNew, RentDayCents: int64Ptr(4500)}
	}

	t.Run("Should create an active listing owned by the creator", func(t *testing.T) {
		f := newMarketplaceFixture(t)
		ctx := authedCtx("auth-creator")
		f.signIn(ctx, "auth-creator", "creator")
		f.gearRequests.On("GetByID", ctx, "gr-1").Return(cameraRequest(), nil)
		f.listings.On("Create", ctx, mock.AnythingOfType("*domain.Listing")).Return(nil)
		f.gearRequests.On("UpdateStatus", ctx, "gr-1", domain.GearRequestFulfilled).Return(errors.New("deadlock"))

		listing, err := f.uc.ConvertGearRequestToListing(ctx, "gr-1", input())
		require.NoError(t, err, "status update failures must not fail the conversion")
		assert.Equal(t, "creator", listing.OwnerID)
		assert.Equal(t, "camera", listing.Category)
		assert.Equal(t, domain.ListingStatusActive, listing.Status)
		assert.Equal(t, "Lisbon", listing.LocationCity)
		assert.NotEmpty(t, listing.ID)

		version, err := f.cache.Version(ctx, domain.CandidateSetListings)
		require.NoError(t, err)
		assert.Equal(t, int64(1), version)
	})

	t.Run("Should forbid users other than the project creator", func(t *testing.T) {
		f := newMarketplaceFixture(t)
		ctx := authedCtx("auth-other")
		f.signIn(ctx, "auth-other", "other")
		f.gearRequests.On("GetByID", ctx, "gr-1").Return(cameraRequest(), nil)

		_, err := f.uc.ConvertGearRequestToListing(ctx, "gr-1", input())
		assert.Equal(t, http.StatusForbidden, appErrorCode(t, err))
		f.listings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject an invalid condition", func(t *testing.T) {
		f := newMarketplaceFixture(t)
		ctx := authedCtx("auth-creator")
		f.signIn(ctx, "auth-creator", "creator")
		f.gearRequests.On("GetByID", ctx, "gr-1").Return(cameraRequest(), nil)

		bad := input()
		bad.Condition = "mint"
		_, err := f.uc.ConvertGearRequestToListing(ctx, "gr-1", bad)
		assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
	})

	t.Run("Should fail when not authenticated", func(t *testing.T) {
		f := newMarketplaceFixture(t)
		_, err := f.uc.ConvertGearRequestToListing(context.Background(), "gr-1", input())
		assert.Equal(t, http.StatusUnauthorized, appErrorCode(t, err))
	})
}

func TestLinkGearRequestToListing(t *testing.T) {
	t.Run("Should create a pending rent offer from the listing owner", func(t *testing.T) {
		f := newMarketplaceFixture(t)
		ctx := authedCtx("auth-creator")
		f.signIn(ctx, "auth-creator", "creator")
		f.gearRequests.On("GetByID", ctx, "gr-1").Return(cameraRequest(), nil)
		f.listings.On("GetByID", ctx, "l-1").Return(&domain.Listing{
			ID: "l-1", OwnerID: "owner", Category: "Cinema Camera", RentDayCents: int64Ptr(5500),
			SalePriceCents: int64Ptr(250000), Status: domain.ListingStatusActive,
		}, nil)
		f.offers.On("Create", ctx, mock.AnythingOfType("*domain.GearOffer")).Return(nil)

		offer, err := f.uc.LinkGearRequestToListing(ctx, "gr-1", "l-1")
		require.NoError(t, err)
		assert.Equal(t, "owner", offer.OffererID)
		assert.Equal(t, domain.OfferTypeRent, offer.OfferType)
		assert.Equal(t, domain.OfferStatusPending, offer.Status)
		assert.Equal(t, int64(5500), *offer.DailyRateCents)
		assert.Equal(t, int64(250000), *offer.TotalPriceCents)
	})

	cases := []struct {
		name    string
		listing *domain.Listing
		reason  string
	}{
		{"category mismatch", &domain.Listing{ID: "l-1", OwnerID: "owner", Category: "audio", Status: domain.ListingStatusActive}, "Category mismatch"},
		{"price over tolerance", &domain.Listing{ID: "l-1", OwnerID: "owner", Category: "camera", RentDayCents: int64Ptr(9000), Status: domain.ListingStatusActive}, "Price exceeds budget"},
		{"inactive listing", &domain.Listing{ID: "l-1", OwnerID: "owner", Category: "camera", Status: "sold"}, "Listing not available"},
	}
	for _, tc := range cases {
		t.Run("Should reject "+tc.name, func(t *testing.T) {
			f := newMarketplaceFixture(t)
			ctx := authedCtx("auth-creator")
			f.signIn(ctx, "auth-creator", "creator")
			f.gearRequests.On("GetByID", ctx, "gr-1").Return(cameraRequest(), nil)
			f.listings.On("GetByID", ctx, "l-1").Return(tc.listing, nil)

			_, err := f.uc.LinkGearRequestToListing(ctx, "gr-1", "l-1")
			assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
			assert.EqualError(t, err, tc.reason)
			f.offers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("Should report a missing listing", func(t *testing.T) {
		f := newMarketplaceFixture(t)
		ctx := authedCtx("auth-creator")
		f.signIn(ctx, "auth-creator", "creator")
		f.gearRequests.On("GetByID", ctx, "gr-1").Return(cameraRequest(), nil)
		f.listings.On("GetByID", ctx, "nope").Return(nil, domain.ErrNotFound)

		_, err := f.uc.LinkGearRequestToListing(ctx, "gr-1", "nope")
		assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
		assert.EqualError(t, err, "Listing not found")
	})
}

func TestCreateGearOffer(t *testing.T) {
	published := &domain.Project{ID: "proj-1", CreatorID: "creator", Status: domain.ProjectStatusPublished}

	t.Run("Should reject offers on your own project", func(t *testing.T) {
		f := newMarketplaceFixture(t)
		ctx := authedCtx("auth-creator")
		f.signIn(ctx, "auth-creator", "creator")
		f.projects.On("GetByID", ctx, "proj-1").Return(published, nil)

		_, err := f.uc.CreateGearOffer(ctx, "proj-1", &domain.GearOfferInput{OfferType: domain.OfferTypeSell, TotalPriceCents: int64Ptr(100)})
		assert.EqualError(t, err, "Cannot make offers to your own project")
	})

	t.Run("Should reject offers on draft projects", func(t *testing.T) {
		f := newMarketplaceFixture(t)
		ctx := authedCtx("auth-vendor")
		f.signIn(ctx, "auth-vendor", "vendor")
		f.projects.On("GetByID", ctx, "proj-1").Return(&domain.Project{ID: "proj-1", CreatorID: "creator", Status: domain.ProjectStatusDraft}, nil)

		_, err := f.uc.CreateGearOffer(ctx, "proj-1", &domain.GearOfferInput{OfferType: domain.OfferTypeSell, TotalPriceCents: int64Ptr(100)})
		assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
		assert.Contains(t, err.Error(), "draft projects")
	})

	t.Run("Should require a daily rate for rent offers", func(t *testing.T) {
		f := newMarketplaceFixture(t)
		ctx := authedCtx("auth-vendor")
		f.signIn(ctx, "auth-vendor", "vendor")
		f.projects.On("GetByID", ctx, "proj-1").Return(published, nil)

		_, err := f.uc.CreateGearOffer(ctx, "proj-1", &domain.GearOfferInput{OfferType: domain.OfferTypeRent})
		assert.EqualError(t, err, "Daily rate is required for rent/borrow offers")
	})

	t.Run("Should reject a gear request from another project", func(t *testing.T) {
		f := newMarketplaceFixture(t)
		ctx := authedCtx("auth-vendor")
		f.signIn(ctx, "auth-vendor", "vendor")
		f.projects.On("GetByID", ctx, "proj-1").Return(published, nil)
		other := cameraRequest()
		other.ProjectID = "proj-2"
		f.gearRequests.On("GetByID", ctx, "gr-1").Return(other, nil)

		_, err := f.uc.CreateGearOffer(ctx, "proj-1", &domain.GearOfferInput{
			GearRequestID: strPtr("gr-1"), OfferType: domain.OfferTypeBorrow, DailyRateCents: int64Ptr(1000),
		})
		assert.EqualError(t, err, "Gear request does not belong to this project")
	})

	t.Run("Should reject offering someone else's listing", func(t *testing.T) {
		f := newMarketplaceFixture(t)
		ctx := authedCtx("auth-vendor")
		f.signIn(ctx, "auth-vendor", "vendor")
		f.projects.On("GetByID", ctx, "proj-1").Return(published, nil)
		f.listings.On("GetByID", ctx, "l-1").Return(&domain.Listing{ID: "l-1", OwnerID: "someone", Status: domain.ListingStatusActive}, nil)

		_, err := f.uc.CreateGearOffer(ctx, "proj-1", &domain.GearOfferInput{
			ListingID: strPtr("l-1"), OfferType: domain.OfferTypeSell, TotalPriceCents: int64Ptr(100),
		})
		assert.Equal(t, http.StatusForbidden, appErrorCode(t, err))
	})

	t.Run("Should reject a second pending offer", func(t *testing.T) {
		f := newMarketplaceFixture(t)
		ctx := authedCtx("auth-vendor")
		f.signIn(ctx, "auth-vendor", "vendor")
		f.projects.On("GetByID", ctx, "proj-1").Return(published, nil)
		f.offers.On("ExistsPending", ctx, "proj-1", "vendor").Return(true, nil)

		_, err := f.uc.CreateGearOffer(ctx, "proj-1", &domain.GearOfferInput{OfferType: domain.OfferTypeSell, TotalPriceCents: int64Ptr(100)})
		assert.Equal(t, http.StatusConflict, appErrorCode(t, err))
	})

	t.Run("Should create a pending offer", func(t *testing.T) {
		f := newMarketplaceFixture(t)
		ctx := authedCtx("auth-vendor")
		f.signIn(ctx, "auth-vendor", "vendor")
		f.projects.On("GetByID", ctx, "proj-1").Return(published, nil)
		f.gearRequests.On("GetByID", ctx, "gr-1").Return(cameraRequest(), nil)
		f.offers.On("ExistsPending", ctx, "proj-1", "vendor").Return(false, nil)
		f.offers.On("Create", ctx, mock.AnythingOfType("*domain.GearOffer")).Return(nil)

		offer, err := f.uc.CreateGearOffer(ctx, "proj-1", &domain.GearOfferInput{
			GearRequestID:  strPtr("gr-1"),
			ListingID:      strPtr(""),
			OfferType:      domain.OfferTypeRent,
			DailyRateCents: int64Ptr(4000),
			Message:        strPtr("Available all week"),
		})
		require.NoError(t, err)
		assert.Equal(t, "vendor", offer.OffererID)
		assert.Equal(t, domain.OfferStatusPending, offer.Status)
		assert.Nil(t, offer.ListingID)
		assert.Equal(t, "gr-1", *offer.GearRequestID)
		f.offers.AssertExpectations(t)
	})
}

func TestListGearOffers(t *testing.T) {
	project := &domain.Project{ID: "proj-1", CreatorID: "creator", Status: domain.ProjectStatusPublished}

	t.Run("Should only let the creator list offers", func(t *testing.T) {
		f := newMarketplaceFixture(t)
		ctx := authedCtx("auth-vendor")
		f.signIn(ctx, "auth-vendor", "vendor")
		f.projects.On("GetByID", ctx, "proj-1").Return(project, nil)

		_, err := f.uc.ListGearOffers(ctx, "proj-1")
		assert.Equal(t, http.StatusForbidden, appErrorCode(t, err))
	})

	t.Run("Should list offers for the creator", func(t *testing.T) {
		f := newMarketplaceFixture(t)
		ctx := authedCtx("auth-creator")
		f.signIn(ctx, "auth-creator", "creator")
		f.projects.On("GetByID", ctx, "proj-1").Return(project, nil)
		f.offers.On("FetchByProject", ctx, "proj-1").Return([]domain.GearOffer{{ID: "o-1"}}, nil)

		offers, err := f.uc.ListGearOffers(ctx, "proj-1")
		require.NoError(t, err)
		assert.Len(t, offers, 1)
	})
}

func TestGetProjectMarketplaceStats(t *testing.T) {
	ctx := context.Background()

	t.Run("Should aggregate counts and matching listings", func(t *testing.T) {
		f := newMarketplaceFixture(t)
		f.gearRequests.On("CountByProject", ctx, "proj-1", "").Return(int64(3), nil)
		f.gearRequests.On("CountByProject", ctx, "proj-1", domain.GearRequestFulfilled).Return(int64(1), nil)
		f.offers.On("CountByProject", ctx, "proj-1", domain.OfferStatusPending).Return(int64(2), nil)
		f.projects.On("GetByID", ctx, "proj-1").Return(&domain.Project{ID: "proj-1"}, nil)
		f.gearRequests.On("FetchByProject", ctx, "proj-1", domain.GearRequestOpen).Return([]domain.GearRequest{*cameraRequest()}, nil)
		f.listings.On("FetchActive", ctx, mock.MatchedBy(func(filter domain.ListingFilter) bool { return filter.Limit == 10 })).
			Return([]domain.Listing{{ID: "l-1"}, {ID: "l-2"}}, nil)
		f.listings.On("FetchActive", ctx, mock.MatchedBy(func(filter domain.ListingFilter) bool { return filter.Limit == 5 })).
			Return([]domain.Listing{}, nil)

		stats := f.uc.GetProjectMarketplaceStats(ctx, "proj-1")
		assert.Equal(t, domain.MarketplaceStats{TotalGearRequests: 3, FulfilledRequests: 1, PendingOffers: 2, MatchingListings: 2}, stats)
	})

	t.Run("Should report zeros when the store fails", func(t *testing.T) {
		f := newMarketplaceFixture(t)
		f.gearRequests.On("CountByProject", ctx, "proj-1", "").Return(int64(0), errStoreDown)

		assert.Equal(t, domain.MarketplaceStats{}, f.uc.GetProjectMarketplaceStats(ctx, "proj-1"))
	})
}
