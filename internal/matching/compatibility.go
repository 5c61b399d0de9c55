package matching

import "preset-backend/internal/domain"

// CheckGearCompatibility decides whether listing may be linked to req. The
// returned reason is empty when compatible.
func CheckGearCompatibility(req domain.GearRequest, listing domain.Listing, budgetTolerance float64) (bool, string) {
	if normalize(req.Category) != "" && normalize(listing.Category) != "" && !Overlaps(req.Category, listing.Category) {
		return false, "Category mismatch"
	}

	if req.BorrowPreferred && req.MaxDailyRateCents != nil && *req.MaxDailyRateCents > 0 &&
		listing.RentDayCents != nil && *listing.RentDayCents > 0 {
		if float64(*listing.RentDayCents) > float64(*req.MaxDailyRateCents)*budgetTolerance {
			return false, "Price exceeds budget"
		}
	}

	if listing.Status != domain.ListingStatusActive {
		return false, "Listing not available"
	}

	return true, ""
}
