package matching

import "preset-backend/internal/domain"

const ReasonAvailableEquipment = "Available equipment"

// ScoreListingForGearRequest computes the additive compatibility of a listing for
// a gear request. Price is only scored for borrow-preferred requests with a budget
// against listings that carry a daily rate.
func ScoreListingForGearRequest(w EquipmentWeights, listing domain.Listing, req domain.GearRequest) domain.MatchResult {
	var s scorecard
	s.add(w.Base, ReasonAvailableEquipment)

	if normalize(req.Category) != "" && normalize(listing.Category) != "" {
		if Overlaps(listing.Category, req.Category) {
			s.add(w.CategoryMatch, "Category match")
		} else {
			s.add(w.CategoryRelated, "Related category")
		}
	}

	if req.BorrowPreferred && req.MaxDailyRateCents != nil && *req.MaxDailyRateCents > 0 &&
		listing.RentDayCents != nil && *listing.RentDayCents > 0 {
		budget := float64(*req.MaxDailyRateCents)
		rate := float64(*listing.RentDayCents)
		switch {
		case rate <= budget:
			s.add(w.WithinBudget, "Within budget")
		case rate <= budget*w.BudgetTolerance:
			s.add(w.SlightlyOverBudget, "Slightly over budget")
		default:
			s.add(w.OverBudget, "Over budget")
		}
	}

	var projectCity, projectCountry string
	if req.Project != nil {
		projectCity, projectCountry = req.Project.City, req.Project.Country
	}
	switch {
	case Overlaps(listing.LocationCity, projectCity):
		s.add(w.SameCity, "Same location")
	case SameCountry(listing.LocationCountry, projectCountry):
		s.add(w.SameCountry, "Same country")
	}

	switch listing.Condition {
	case domain.ConditionNew, domain.ConditionLikeNew:
		s.add(w.ConditionExcellent, "Excellent condition")
	case domain.ConditionGood:
		s.add(w.ConditionGood, "Good condition")
	}

	if listing.Owner.Verified {
		s.add(w.VerifiedOwner, "Verified owner")
	}

	return s.result()
}
