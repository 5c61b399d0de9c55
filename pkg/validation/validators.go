package validation

import (
	"slices"
	"unicode"

	"preset-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("listing_condition", ListingCondition)
	_ = v.RegisterValidation("offer_type", OfferType)
}

// NoEmoji rejects strings carrying emoji or pictographic symbols.
func NoEmoji(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		// Supplementary planes are mostly emoji.
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}

func ListingCondition(fl validator.FieldLevel) bool {
	return slices.Contains(domain.ListingConditions, fl.Field().String())
}

func OfferType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case domain.OfferTypeRent, domain.OfferTypeSell, domain.OfferTypeBorrow:
		return true
	}
	return false
}
