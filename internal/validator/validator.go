package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinema-ticket-service/internal/domain"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("ticket_type", validateTicketType)

	return validator
}

// validateTicketType catches TicketType values built in code from raw integers.
// Decoded JSON never reaches it with an unknown name since UnmarshalText fails first.
func validateTicketType(fl validator.FieldLevel) bool {
	ticketType, ok := fl.Field().Interface().(domain.TicketType)
	if !ok {
		return false
	}

	return ticketType.Valid()
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", err.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", err.Param())
	case "ticket_type":
		return "must be one of ADULT, CHILD, INFANT"
	default:
		return "is invalid"
	}
}
