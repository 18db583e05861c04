package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/services"
)

// validationMessage turns the first validator failure into a human-readable
// message for the response envelope.
func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return "Invalid request."
	}
	fe := ve[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address.", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long.", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters long.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid.", fe.Field())
	}
}

func errorsIsInternal(err error) bool {
	return errors.Is(err, services.ErrInternal) || errors.Is(err, services.ErrDelivery)
}
