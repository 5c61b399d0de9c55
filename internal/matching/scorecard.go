package matching

import (
	"math"

	"preset-backend/internal/domain"
)

type scorecard struct {
	score   float64
	reasons []string
}

func (s *scorecard) add(points float64, reason string) {
	s.score += points
	s.reasons = append(s.reasons, reason)
}

// result caps the score to [0, 100] and rounds it to two decimals.
func (s *scorecard) result() domain.MatchResult {
	score := math.Max(0, math.Min(100, s.score))
	reasons := s.reasons
	if reasons == nil {
		reasons = []string{}
	}
	return domain.MatchResult{
		CompatibilityScore: math.Round(score*100) / 100,
		MatchReasons:       reasons,
	}
}
