package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/clock"
	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/config"
	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/database"
	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/handlers"
	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/mailer"
	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/middleware"
	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/repository"
	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/server"
	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/services"
	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/token"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logger *zap.Logger
	if cfg.App.Env == "development" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer func() { _ = logger.Sync() }()
	sugar := logger.Sugar()
	sugar.Infof("starting bazzar backend in %s environment on port %d", cfg.App.Env, cfg.App.Port)

	db, mongoClient, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, sugar)
	if err != nil {
		sugar.Fatal(err)
	}

	// Redis only backs the auth rate limiter; the API runs without it.
	var rateLimit fiber.Handler
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = database.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, sugar)
		if err != nil {
			sugar.Warnf("redis unavailable, auth rate limiting disabled: %v", err)
		} else {
			limiter := middleware.NewRateLimiter(rdb, "auth_rl", cfg.RateLimit.Limit, cfg.RateWindow)
			rateLimit = limiter.ByKey(func(c *fiber.Ctx) string { return c.IP() })
		}
	}

	userRepo := repository.NewMongoUserRepo(db, cfg.Mongo.UserCollection)
	productRepo := repository.NewMongoProductRepo(db, cfg.Mongo.ProductCollection)

	mail := mailer.NewSMTP(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, cfg.SMTP.FromName)
	tokens := token.NewManager(cfg.JWT.Secret, services.SessionTTL)
	clk := clock.New()

	authSvc := services.NewAuthService(userRepo, mail, tokens, clk, sugar)
	userSvc := services.NewUserService(userRepo, sugar)
	productSvc := services.NewProductService(productRepo, clk, sugar)

	h := handlers.New(authSvc, userSvc, productSvc, sugar)
	authRequired := middleware.RequireAuth(tokens)

	app := server.New(cfg, h, authRequired, rateLimit, sugar)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		sugar.Infof("server listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			sugar.Fatalf("server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	sugar.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		sugar.Errorf("fiber shutdown error: %v", err)
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		sugar.Errorf("mongodb disconnect error: %v", err)
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			sugar.Errorf("redis close error: %v", err)
		}
	}

	sugar.Info("graceful shutdown complete")
}
