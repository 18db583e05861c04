package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/config"
	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/handlers"
	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/middleware"
	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/routes"
)

// New assembles the Fiber application: CORS, request logging, liveness and
// metrics endpoints, and the API route table.
func New(cfg *config.Config, h *handlers.Handler, authRequired fiber.Handler, rateLimit fiber.Handler, logger *zap.SugaredLogger) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))
	app.Use(middleware.RequestLogger(logger))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("Bazzar API is running.")
	})
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	routes.Setup(app, h, authRequired, rateLimit)

	return app
}
