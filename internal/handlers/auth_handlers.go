package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/services"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	auth     *services.AuthService
	users    *services.UserService
	products *services.ProductService
	validate *validator.Validate
	log      *zap.SugaredLogger
}

func New(auth *services.AuthService, users *services.UserService, products *services.ProductService, log *zap.SugaredLogger) *Handler {
	return &Handler{
		auth:     auth,
		users:    users,
		products: products,
		validate: validator.New(),
		log:      log,
	}
}

type registerReq struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if err := h.validate.Struct(req); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, validationMessage(err))
	}

	userID, err := h.auth.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.logDomainError("register", err)
		return failFor(c, err)
	}
	return jsonOK(c, fiber.StatusCreated,
		"Registration successful! An 8-character code has been sent to your email.",
		fiber.Map{"userId": userID})
}

type verifyOTPReq struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=8"`
}

func (h *Handler) VerifyOTP(c *fiber.Ctx) error {
	var req verifyOTPReq
	if err := c.BodyParser(&req); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if err := h.validate.Struct(req); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, validationMessage(err))
	}

	if err := h.auth.VerifyRegistration(c.Context(), req.Email, req.OTP); err != nil {
		h.logDomainError("verify-otp", err)
		return failFor(c, err)
	}
	return jsonOK(c, fiber.StatusOK,
		"Your email has been successfully verified. You can now log in.", nil)
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if err := h.validate.Struct(req); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, validationMessage(err))
	}

	if err := h.auth.Login(c.Context(), req.Email, req.Password); err != nil {
		h.logDomainError("login", err)
		return failFor(c, err)
	}
	return jsonOK(c, fiber.StatusOK,
		"A verification code has been sent to your email.", nil)
}

func (h *Handler) VerifyLoginOTP(c *fiber.Ctx) error {
	var req verifyOTPReq
	if err := c.BodyParser(&req); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if err := h.validate.Struct(req); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, validationMessage(err))
	}

	signed, user, err := h.auth.VerifyLogin(c.Context(), req.Email, req.OTP)
	if err != nil {
		h.logDomainError("verify-login-otp", err)
		return failFor(c, err)
	}
	return jsonOK(c, fiber.StatusOK, "Login successful!", fiber.Map{
		"token": signed,
		"user":  user,
	})
}

// logDomainError records server-side detail for unexpected failures without
// leaking it to the client.
func (h *Handler) logDomainError(op string, err error) {
	if errorsIsInternal(err) {
		h.log.Errorw("request failed", "op", op, "error", err)
	}
}
