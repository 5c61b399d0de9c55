package matching

import (
	"fmt"

	"github.com/spf13/viper"
)

// UserRoleWeights scores a candidate user against a project role.
type UserRoleWeights struct {
	Base             float64 `mapstructure:"base"`
	SkillsMax        float64 `mapstructure:"skills_max"`
	SameCity         float64 `mapstructure:"same_city"`
	SameCountry      float64 `mapstructure:"same_country"`
	ExperienceSenior float64 `mapstructure:"experience_senior"`
	ExperienceMid    float64 `mapstructure:"experience_mid"`
	ExperienceJunior float64 `mapstructure:"experience_junior"`
	SeniorYears      int     `mapstructure:"senior_years"`
	MidYears         int     `mapstructure:"mid_years"`
	RatingHigh       float64 `mapstructure:"rating_high"`
	RatingGood       float64 `mapstructure:"rating_good"`
	HighRatingMin    float64 `mapstructure:"high_rating_min"`
	GoodRatingMin    float64 `mapstructure:"good_rating_min"`
	Verified         float64 `mapstructure:"verified"`
}

// EquipmentWeights scores a marketplace listing against a gear request.
type EquipmentWeights struct {
	Base               float64 `mapstructure:"base"`
	CategoryMatch      float64 `mapstructure:"category_match"`
	CategoryRelated    float64 `mapstructure:"category_related"`
	WithinBudget       float64 `mapstructure:"within_budget"`
	SlightlyOverBudget float64 `mapstructure:"slightly_over_budget"`
	OverBudget         float64 `mapstructure:"over_budget"`
	BudgetTolerance    float64 `mapstructure:"budget_tolerance"`
	SameCity           float64 `mapstructure:"same_city"`
	SameCountry        float64 `mapstructure:"same_country"`
	ConditionExcellent float64 `mapstructure:"condition_excellent"`
	ConditionGood      float64 `mapstructure:"condition_good"`
	VerifiedOwner      float64 `mapstructure:"verified_owner"`
}

// UserProjectWeights scores a project against a user's profile.
type UserProjectWeights struct {
	Base            float64 `mapstructure:"base"`
	SameCity        float64 `mapstructure:"same_city"`
	SameCountry     float64 `mapstructure:"same_country"`
	SkillsMax       float64 `mapstructure:"skills_max"`
	PaidRoles       float64 `mapstructure:"paid_roles"`
	VerifiedCreator float64 `mapstructure:"verified_creator"`
}

type Weights struct {
	UserRole    UserRoleWeights    `mapstructure:"user_role"`
	Equipment   EquipmentWeights   `mapstructure:"equipment"`
	UserProject UserProjectWeights `mapstructure:"user_project"`
}

func DefaultWeights() Weights {
	return Weights{
		UserRole: UserRoleWeights{
			Base:             20,
			SkillsMax:        40,
			SameCity:         20,
			SameCountry:      10,
			ExperienceSenior: 15,
			ExperienceMid:    10,
			ExperienceJunior: 5,
			SeniorYears:      5,
			MidYears:         2,
			RatingHigh:       5,
			RatingGood:       3,
			HighRatingMin:    4.5,
			GoodRatingMin:    4.0,
			Verified:         5,
		},
		Equipment: EquipmentWeights{
			Base:               20,
			CategoryMatch:      30,
			CategoryRelated:    10,
			WithinBudget:       25,
			SlightlyOverBudget: 15,
			OverBudget:         5,
			BudgetTolerance:    1.2,
			SameCity:           15,
			SameCountry:        10,
			ConditionExcellent: 5,
			ConditionGood:      3,
			VerifiedOwner:      5,
		},
		UserProject: UserProjectWeights{
			Base:            10,
			SameCity:        30,
			SameCountry:     20,
			SkillsMax:       40,
			PaidRoles:       10,
			VerifiedCreator: 10,
		},
	}
}

// LoadWeights reads a YAML or JSON weight table. Keys missing from the file keep
// their default value.
func LoadWeights(path string) (Weights, error) {
	w := DefaultWeights()

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return w, fmt.Errorf("read weights file: %w", err)
	}
	if err := v.Unmarshal(&w); err != nil {
		return w, fmt.Errorf("unmarshal weights: %w", err)
	}
	return w, nil
}
