package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/services"
)

// jsonOK writes the success envelope with any extra payload fields.
func jsonOK(c *fiber.Ctx, status int, message string, extra fiber.Map) error {
	payload := fiber.Map{"success": true}
	if message != "" {
		payload["message"] = message
	}
	for k, v := range extra {
		payload[k] = v
	}
	return c.Status(status).JSON(payload)
}

// jsonFail writes the failure envelope.
func jsonFail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}

// failFor maps a domain error onto its HTTP status and user-facing message.
// Unexpected errors collapse to a generic 500; the caller logs the detail.
func failFor(c *fiber.Ctx, err error) error {
	var locked *services.AccountLockedError
	var badCreds *services.InvalidCredentialsError
	var forbidden *services.ForbiddenError

	switch {
	case errors.Is(err, services.ErrDuplicateAccount):
		return jsonFail(c, fiber.StatusBadRequest, "This Email is Already in Use!")
	case errors.Is(err, services.ErrUserNotFound):
		return jsonFail(c, fiber.StatusNotFound, "User not found.")
	case errors.Is(err, services.ErrInvalidCode):
		return jsonFail(c, fiber.StatusBadRequest, "Invalid verification code!")
	case errors.Is(err, services.ErrCodeExpired):
		return jsonFail(c, fiber.StatusBadRequest, "Code has expired. Please try again.")
	case errors.Is(err, services.ErrInvalidOrExpiredCode):
		return jsonFail(c, fiber.StatusBadRequest, "Invalid or expired code!")
	case errors.As(err, &locked):
		if locked.JustLocked {
			return jsonFail(c, fiber.StatusForbidden, "Too many attempts! Account locked for 24 hours.")
		}
		return jsonFail(c, fiber.StatusForbidden,
			"Account locked. Try again after "+strconv.Itoa(locked.RemainingHours)+" hours.")
	case errors.As(err, &badCreds):
		return jsonFail(c, fiber.StatusUnauthorized,
			"Invalid password! "+strconv.Itoa(badCreds.AttemptsLeft)+" attempts left.")
	case errors.As(err, &forbidden):
		return jsonFail(c, fiber.StatusForbidden, "Forbidden! "+forbidden.Reason)
	case errors.Is(err, services.ErrPasswordMismatch):
		return jsonFail(c, fiber.StatusUnauthorized, "Old password does not match!")
	case errors.Is(err, services.ErrNoChanges):
		return jsonFail(c, fiber.StatusBadRequest, "No changes made!")
	case errors.Is(err, services.ErrInvalidID), errors.Is(err, services.ErrValidation):
		return jsonFail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrProductNotFound):
		return jsonFail(c, fiber.StatusNotFound, "Product not found.")
	case errors.Is(err, services.ErrDelivery):
		return jsonFail(c, fiber.StatusInternalServerError, "Failed to send verification email. Please try again.")
	default:
		return jsonFail(c, fiber.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}
