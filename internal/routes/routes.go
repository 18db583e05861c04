package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/handlers"
)

// Setup wires the route table. authRequired guards the account and product
// mutation endpoints; rateLimit, when non-nil, throttles the auth surface.
func Setup(app *fiber.App, h *handlers.Handler, authRequired fiber.Handler, rateLimit fiber.Handler) {
	api := app.Group("/api/v1")

	users := api.Group("/users")
	if rateLimit != nil {
		users.Use(rateLimit)
	}
	users.Post("/register", h.Register)
	users.Post("/verify-otp", h.VerifyOTP)
	users.Post("/login", h.Login)
	users.Post("/verify-login-otp", h.VerifyLoginOTP)
	users.Put("/update-profile", authRequired, h.UpdateProfile)
	users.Put("/update-password", authRequired, h.UpdatePassword)

	products := api.Group("/products")
	products.Get("/", h.ListProducts)
	products.Get("/seller/:sellerId", h.SellerProducts)
	products.Patch("/analytics/:id", h.BumpAnalytics)
	products.Post("/add", authRequired, h.AddProduct)
	products.Patch("/update/:id", authRequired, h.UpdateProduct)
	products.Delete("/delete/:id", authRequired, h.DeleteProduct)
	products.Get("/:id", h.GetProduct)
}
