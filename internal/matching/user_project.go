package matching

import (
	"fmt"

	"preset-backend/internal/domain"
)

const ReasonAvailableProject = "Available project"

// ScoreProjectForUser computes how well project fits user. The skill term is the
// share of the project's distinct required skills (across all roles) that the
// user covers.
func ScoreProjectForUser(w UserProjectWeights, user domain.CandidateUser, project domain.Project) domain.MatchResult {
	var s scorecard
	s.add(w.Base, ReasonAvailableProject)

	switch {
	case Overlaps(user.City, project.City):
		s.add(w.SameCity, "Same location")
	case SameCountry(user.Country, project.Country):
		s.add(w.SameCountry, "Same country")
	}

	var all []string
	hasPaid := false
	for _, role := range project.Roles {
		all = append(all, role.SkillsRequired...)
		if role.IsPaid {
			hasPaid = true
		}
	}
	required := distinctSkills(all)
	if len(required) > 0 {
		matched := countMatchedSkills(required, user.Specializations)
		s.score += float64(matched) / float64(len(required)) * w.SkillsMax
		if matched > 0 {
			s.reasons = append(s.reasons, fmt.Sprintf("Matches %d/%d project skills", matched, len(required)))
		}
	}

	if hasPaid {
		s.add(w.PaidRoles, "Includes paid roles")
	}

	if project.Creator.Verified {
		s.add(w.VerifiedCreator, "Verified creator")
	}

	return s.result()
}
