package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/middleware"
	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/services"
)

type updateProfileReq struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Image   string `json:"image"`
	Address string `json:"address"`
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	claims := middleware.ClaimsFrom(c)
	var req updateProfileReq
	if err := c.BodyParser(&req); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	err := h.users.UpdateProfile(c.Context(), claims.ID, services.ProfileUpdate{
		Name:    req.Name,
		Phone:   req.Phone,
		Image:   req.Image,
		Address: req.Address,
	})
	if err != nil {
		h.logDomainError("update-profile", err)
		return failFor(c, err)
	}
	return jsonOK(c, fiber.StatusOK, "Profile updated successfully!", nil)
}

type updatePasswordReq struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

func (h *Handler) UpdatePassword(c *fiber.Ctx) error {
	claims := middleware.ClaimsFrom(c)
	var req updatePasswordReq
	if err := c.BodyParser(&req); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if err := h.validate.Struct(req); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, validationMessage(err))
	}

	if err := h.users.ChangePassword(c.Context(), claims.ID, req.OldPassword, req.NewPassword); err != nil {
		h.logDomainError("update-password", err)
		return failFor(c, err)
	}
	return jsonOK(c, fiber.StatusOK, "Password updated successfully!", nil)
}
