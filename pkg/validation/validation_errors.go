package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	"Title":           "Title",
	"Description":     "Description",
	"Condition":       "Condition",
	"RentDayCents":    "Daily rent",
	"SalePriceCents":  "Sale price",
	"LocationCity":    "City",
	"LocationCountry": "Country",
	"OfferType":       "Offer type",
	"DailyRateCents":  "Daily rate",
	"TotalPriceCents": "Total price",
	"Message":         "Message",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at least %s", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at most %s", label, param)
	case "gt":
		return fmt.Sprintf("%s: must be greater than %s", label, param)
	case "no_emoji":
		return fmt.Sprintf("%s: must not contain emoji or special symbols", label)
	case "listing_condition":
		return fmt.Sprintf("%s: must be one of new, like_new, good, fair, poor", label)
	case "offer_type":
		return fmt.Sprintf("%s: must be one of rent, sell, borrow", label)
	default:
		return fmt.Sprintf("%s: failed validation (%s)", label, e.Tag())
	}
}

func getFieldLabel(field string) string {
	if label, ok := FieldLabels[field]; ok {
		return label
	}
	return field
}

// JoinMessages renders formatted validation errors as a single response message.
func JoinMessages(err error) string {
	return strings.Join(FormatValidationErrors(err), "; ")
}
