package matching

import (
	"fmt"

	"preset-backend/internal/domain"
)

const ReasonAvailableUser = "Available user"

// ScoreUserForRole computes the additive compatibility of user for role.
// Missing profile fields skip their term.
func ScoreUserForRole(w UserRoleWeights, user domain.CandidateUser, role domain.RoleRequirement) domain.MatchResult {
	var s scorecard
	s.add(w.Base, ReasonAvailableUser)

	required := nonBlank(role.SkillsRequired)
	if len(required) > 0 {
		matched := countMatchedSkills(required, user.Specializations)
		s.score += float64(matched) / float64(len(required)) * w.SkillsMax
		if matched > 0 {
			s.reasons = append(s.reasons, fmt.Sprintf("Has %d/%d required skills", matched, len(required)))
		}
	}

	var projectCity, projectCountry string
	if role.Project != nil {
		projectCity, projectCountry = role.Project.City, role.Project.Country
	}
	switch {
	case Overlaps(user.City, projectCity):
		s.add(w.SameCity, "Same location")
	case SameCountry(user.Country, projectCountry):
		s.add(w.SameCountry, "Same country")
	}

	if user.YearsExperience != nil {
		switch years := *user.YearsExperience; {
		case years >= w.SeniorYears:
			s.add(w.ExperienceSenior, "Experienced professional")
		case years >= w.MidYears:
			s.add(w.ExperienceMid, "Some experience")
		default:
			s.add(w.ExperienceJunior, "Beginner")
		}
	}

	if user.Rating != nil {
		switch rating := *user.Rating; {
		case rating >= w.HighRatingMin:
			s.add(w.RatingHigh, "High rating")
		case rating >= w.GoodRatingMin:
			s.add(w.RatingGood, "Good rating")
		}
	}

	if user.Verified {
		s.add(w.Verified, "Verified user")
	}

	return s.result()
}
