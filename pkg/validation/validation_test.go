package validation_test

import (
	"testing"

	"preset-backend/internal/domain"
	"preset-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func newValidator() *validator.Validate {
	v := validator.New()
	validation.RegisterValidators(v)
	return v
}

func TestConvertListingInputValidation(t *testing.T) {
	v := newValidator()

	t.Run("accepts a well-formed listing", func(t *testing.T) {
		err := v.Struct(&domain.ConvertListingInput{Title: "Sony A7 III", Condition: domain.ConditionLikeNew})
		assert.NoError(t, err)
	})

	t.Run("rejects an unknown condition", func(t *testing.T) {
		err := v.Struct(&domain.ConvertListingInput{Title: "Sony A7 III", Condition: "mint"})
		assert.Error(t, err)
		assert.Equal(t, "Condition: must be one of new, like_new, good, fair, poor", validation.JoinMessages(err))
	})

	t.Run("rejects emoji in the title", func(t *testing.T) {
		err := v.Struct(&domain.ConvertListingInput{Title: "Camera \U0001F4F7", Condition: domain.ConditionGood})
		assert.Error(t, err)
		assert.Contains(t, validation.JoinMessages(err), "Title: must not contain emoji")
	})
}

func TestGearOfferInputValidation(t *testing.T) {
	v := newValidator()

	for _, offerType := range []string{domain.OfferTypeRent, domain.OfferTypeSell, domain.OfferTypeBorrow} {
		assert.NoError(t, v.Struct(&domain.GearOfferInput{OfferType: offerType}), offerType)
	}

	err := v.Struct(&domain.GearOfferInput{OfferType: "lease"})
	assert.Equal(t, []string{"Offer type: must be one of rent, sell, borrow"}, validation.FormatValidationErrors(err))
}
