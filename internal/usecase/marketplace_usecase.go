package usecase

import (
	"context"
	"time"

	"preset-backend/internal/domain"
	"preset-backend/internal/matching"
	"preset-backend/pkg/apperror"
	"preset-backend/pkg/logger"
	"preset-backend/pkg/metrics"
	"preset-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	exactMatchLimit = 10
	suggestionLimit = 5
)

type marketplaceUsecase struct {
	users           domain.UserProfileRepository
	projects        domain.ProjectRepository
	gearRequests    domain.GearRequestRepository
	listings        domain.ListingRepository
	offers          domain.GearOfferRepository
	cache           domain.MatchCache
	validate        *validator.Validate
	budgetTolerance float64
}

func NewMarketplaceUsecase(
	users domain.UserProfileRepository,
	projects domain.ProjectRepository,
	gearRequests domain.GearRequestRepository,
	listings domain.ListingRepository,
	offers domain.GearOfferRepository,
	cache domain.MatchCache,
	validate *validator.Validate,
	budgetTolerance float64,
) domain.MarketplaceUsecase {
	return &marketplaceUsecase{
		users:           users,
		projects:        projects,
		gearRequests:    gearRequests,
		listings:        listings,
		offers:          offers,
		cache:           cache,
		validate:        validate,
		budgetTolerance: budgetTolerance,
	}
}

// currentProfile resolves the authenticated subject in ctx to its profile.
func (u *marketplaceUsecase) currentProfile(ctx context.Context) (*domain.CandidateUser, error) {
	authUserID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || authUserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	profile, err := u.users.GetByAuthUserID(ctx, authUserID)
	if err != nil {
		return nil, lookupError(err, "User profile not found")
	}
	return profile, nil
}

func (u *marketplaceUsecase) GetGearRequestsWithMatches(ctx context.Context, projectID string) ([]domain.GearRequestWithMatches, error) {
	if _, err := u.projects.GetByID(ctx, projectID); err != nil {
		return nil, lookupError(err, "Project not found")
	}

	requests, err := u.gearRequests.FetchByProject(ctx, projectID, domain.GearRequestOpen)
	if err != nil {
		return nil, storeError(err)
	}

	result := make([]domain.GearRequestWithMatches, 0, len(requests))
	for _, req := range requests {
		exact := domain.ListingFilter{Categories: []string{req.Category}, Limit: exactMatchLimit}
		if req.BorrowPreferred && req.MaxDailyRateCents != nil {
			exact.MaxRentDayCents = req.MaxDailyRateCents
		}
		matches, err := u.listings.FetchActive(ctx, exact)
		if err != nil {
			return nil, storeError(err)
		}

		suggestions, err := u.listings.FetchActive(ctx, domain.ListingFilter{
			Categories: matching.BroaderCategories(req.Category),
			Limit:      suggestionLimit,
		})
		if err != nil {
			return nil, storeError(err)
		}

		result = append(result, domain.GearRequestWithMatches{
			GearRequest:       req,
			MatchingListings:  matches,
			SuggestedListings: suggestions,
		})
	}
	return result, nil
}

func (u *marketplaceUsecase) ConvertGearRequestToListing(ctx context.Context, gearRequestID string, input *domain.ConvertListingInput) (*domain.Listing, error) {
	profile, err := u.currentProfile(ctx)
	if err != nil {
		return nil, err
	}

	req, err := u.gearRequests.GetByID(ctx, gearRequestID)
	if err != nil {
		return nil, lookupError(err, "Gear request not found")
	}
	if req.Project == nil || req.Project.CreatorID != profile.ID {
		return nil, apperror.Forbidden("Only the project creator can convert this gear request")
	}

	if err := u.validate.Struct(input); err != nil {
		return nil, apperror.BadRequest(validation.JoinMessages(err))
	}

	listing := &domain.Listing{
		ID:              uuid.NewString(),
		OwnerID:         profile.ID,
		Title:           input.Title,
		Description:     input.Description,
		Category:        req.Category,
		Condition:       input.Condition,
		RentDayCents:    input.RentDayCents,
		SalePriceCents:  input.SalePriceCents,
		LocationCity:    input.LocationCity,
		LocationCountry: input.LocationCountry,
		Status:          domain.ListingStatusActive,
		Owner: domain.ListingOwner{
			ID:          profile.ID,
			Username:    profile.Username,
			DisplayName: profile.DisplayName,
			AvatarURL:   profile.AvatarURL,
			Verified:    profile.Verified,
			Rating:      profile.Rating,
		},
		CreatedAt: time.Now().UTC(),
	}
	if listing.LocationCity == "" {
		listing.LocationCity = req.Project.City
	}
	if listing.LocationCountry == "" {
		listing.LocationCountry = req.Project.Country
	}

	if err := u.listings.Create(ctx, listing); err != nil {
		return nil, apperror.Internal(err)
	}

	// The listing exists at this point; a stale request status is tolerable.
	if err := u.gearRequests.UpdateStatus(ctx, req.ID, domain.GearRequestFulfilled); err != nil {
		logger.Log.Errorw("Error updating gear request status", "gear_request_id", req.ID, "error", err)
	}
	if err := u.cache.Bump(ctx, domain.CandidateSetListings); err != nil {
		logger.Log.Warnw("Failed to bump listings cache version", "error", err)
	}

	logger.Log.Infow("Gear request converted to listing", "gear_request_id", req.ID, "listing_id", listing.ID)
	return listing, nil
}

func (u *marketplaceUsecase) LinkGearRequestToListing(ctx context.Context, gearRequestID, listingID string) (*domain.GearOffer, error) {
	profile, err := u.currentProfile(ctx)
	if err != nil {
		return nil, err
	}

	req, err := u.gearRequests.GetByID(ctx, gearRequestID)
	if err != nil {
		return nil, lookupError(err, "Gear request not found")
	}
	listing, err := u.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, lookupError(err, "Listing not found")
	}

	isCreator := req.Project != nil && req.Project.CreatorID == profile.ID
	if !isCreator && listing.OwnerID != profile.ID {
		return nil, apperror.Forbidden("Only the project creator or the listing owner can link these")
	}

	if ok, reason := matching.CheckGearCompatibility(*req, *listing, u.budgetTolerance); !ok {
		return nil, apperror.BadRequest(reason)
	}

	offerType := domain.OfferTypeSell
	if req.BorrowPreferred {
		offerType = domain.OfferTypeRent
	}
	offer := &domain.GearOffer{
		ID:              uuid.NewString(),
		ProjectID:       req.ProjectID,
		GearRequestID:   &req.ID,
		OffererID:       listing.OwnerID,
		ListingID:       &listing.ID,
		OfferType:       offerType,
		DailyRateCents:  listing.RentDayCents,
		TotalPriceCents: listing.SalePriceCents,
		Status:          domain.OfferStatusPending,
		CreatedAt:       time.Now().UTC(),
	}
	if err := u.offers.Create(ctx, offer); err != nil {
		return nil, apperror.Internal(err)
	}

	metrics.GearOffersCreated.WithLabelValues("link").Inc()
	return offer, nil
}

func (u *marketplaceUsecase) CreateGearOffer(ctx context.Context, projectID string, input *domain.GearOfferInput) (*domain.GearOffer, error) {
	profile, err := u.currentProfile(ctx)
	if err != nil {
		return nil, err
	}

	project, err := u.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, lookupError(err, "Project not found")
	}

	switch {
	case project.CreatorID == profile.ID:
		return nil, apperror.BadRequest("Cannot make offers to your own project")
	case project.Status == domain.ProjectStatusCompleted || project.Status == domain.ProjectStatusCancelled:
		return nil, apperror.BadRequest("Cannot make offers to completed or cancelled projects")
	case project.Status == domain.ProjectStatusDraft:
		return nil, apperror.BadRequest("Cannot make offers to draft projects. The project must be published first.")
	}

	if err := u.validate.Struct(input); err != nil {
		return nil, apperror.BadRequest(validation.JoinMessages(err))
	}

	switch input.OfferType {
	case domain.OfferTypeRent, domain.OfferTypeBorrow:
		if input.DailyRateCents == nil || *input.DailyRateCents <= 0 {
			return nil, apperror.BadRequest("Daily rate is required for rent/borrow offers")
		}
	case domain.OfferTypeSell:
		if input.TotalPriceCents == nil || *input.TotalPriceCents <= 0 {
			return nil, apperror.BadRequest("Total price is required for sell offers")
		}
	}

	if input.GearRequestID != nil && *input.GearRequestID != "" {
		req, err := u.gearRequests.GetByID(ctx, *input.GearRequestID)
		if err != nil {
			return nil, lookupError(err, "Gear request not found")
		}
		if req.ProjectID != projectID {
			return nil, apperror.BadRequest("Gear request does not belong to this project")
		}
		if req.Status != domain.GearRequestOpen {
			return nil, apperror.BadRequest("Gear request is not open for offers")
		}
	}

	if input.ListingID != nil && *input.ListingID != "" {
		listing, err := u.listings.GetByID(ctx, *input.ListingID)
		if err != nil {
			return nil, lookupError(err, "Listing not found")
		}
		if listing.OwnerID != profile.ID {
			return nil, apperror.Forbidden("You can only offer your own listings")
		}
		if listing.Status != domain.ListingStatusActive {
			return nil, apperror.BadRequest("Listing is not active")
		}
	}

	pending, err := u.offers.ExistsPending(ctx, projectID, profile.ID)
	if err != nil {
		return nil, storeError(err)
	}
	if pending {
		return nil, apperror.Conflict("You already have a pending offer for this project")
	}

	offer := &domain.GearOffer{
		ID:              uuid.NewString(),
		ProjectID:       projectID,
		GearRequestID:   nonEmpty(input.GearRequestID),
		OffererID:       profile.ID,
		ListingID:       nonEmpty(input.ListingID),
		OfferType:       input.OfferType,
		DailyRateCents:  input.DailyRateCents,
		TotalPriceCents: input.TotalPriceCents,
		Message:         input.Message,
		Status:          domain.OfferStatusPending,
		CreatedAt:       time.Now().UTC(),
	}
	if err := u.offers.Create(ctx, offer); err != nil {
		return nil, apperror.Internal(err)
	}

	metrics.GearOffersCreated.WithLabelValues("direct").Inc()
	logger.Log.Infow("Gear offer created", "project_id", projectID, "offer_id", offer.ID, "offer_type", offer.OfferType)
	return offer, nil
}

func (u *marketplaceUsecase) ListGearOffers(ctx context.Context, projectID string) ([]domain.GearOffer, error) {
	profile, err := u.currentProfile(ctx)
	if err != nil {
		return nil, err
	}

	project, err := u.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, lookupError(err, "Project not found")
	}
	if project.CreatorID != profile.ID {
		return nil, apperror.Forbidden("Only the project creator can view gear offers")
	}

	offers, err := u.offers.FetchByProject(ctx, projectID)
	if err != nil {
		return nil, storeError(err)
	}
	return offers, nil
}

func (u *marketplaceUsecase) GetProjectMarketplaceStats(ctx context.Context, projectID string) domain.MarketplaceStats {
	stats, err := u.projectStats(ctx, projectID)
	if err != nil {
		logger.Log.Errorw("Error getting project marketplace stats", "project_id", projectID, "error", err)
		return domain.MarketplaceStats{}
	}
	return stats
}

func (u *marketplaceUsecase) projectStats(ctx context.Context, projectID string) (domain.MarketplaceStats, error) {
	var stats domain.MarketplaceStats
	var err error

	if stats.TotalGearRequests, err = u.gearRequests.CountByProject(ctx, projectID, ""); err != nil {
		return domain.MarketplaceStats{}, err
	}
	if stats.FulfilledRequests, err = u.gearRequests.CountByProject(ctx, projectID, domain.GearRequestFulfilled); err != nil {
		return domain.MarketplaceStats{}, err
	}
	if stats.PendingOffers, err = u.offers.CountByProject(ctx, projectID, domain.OfferStatusPending); err != nil {
		return domain.MarketplaceStats{}, err
	}

	requests, err := u.GetGearRequestsWithMatches(ctx, projectID)
	if err != nil {
		return domain.MarketplaceStats{}, err
	}
	for _, r := range requests {
		stats.MatchingListings += len(r.MatchingListings)
	}
	return stats, nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
