package validator

import (
	"log"
	"strings"
	"time"

	"github.com/Juantrevi/next-match/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules adds the domain validation tags used by the DTOs.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A broken rule table is a startup error, not a request error.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-gender", validateGender)
	mustRegister("is-token-type", validateTokenType)
	mustRegister("is-message-container", validateMessageContainer)
	mustRegister("adult", validateAdult)
}

func validateGender(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empties
	}
	switch strings.ToLower(value) {
	case "male", "female", "non-binary", "other":
		return true
	default:
		return false
	}
}

func validateTokenType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.TokenType(value) {
	case models.TokenTypeVerification, models.TokenTypePasswordReset:
		return true
	default:
		return false
	}
}

func validateMessageContainer(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.MessageContainer(value) {
	case models.ContainerInbox, models.ContainerOutbox:
		return true
	default:
		return false
	}
}

// validateAdult accepts a date-of-birth string (2006-01-02) for a person at
// least 18 years old. Boundary is inclusive: a birthday today passes.
func validateAdult(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	dob, err := time.Parse("2006-01-02", value)
	if err != nil {
		return false
	}
	return !dob.After(time.Now().AddDate(-18, 0, 0))
}
