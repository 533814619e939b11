package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/expiestack/data"
	"github.com/localnerve/expiestack/internal/config"
	"github.com/localnerve/expiestack/internal/database"
	"github.com/localnerve/expiestack/internal/handlers"
	"github.com/localnerve/expiestack/internal/integrations"
	"github.com/localnerve/expiestack/internal/logging"
	"github.com/localnerve/expiestack/internal/metrics"
	"github.com/localnerve/expiestack/internal/middleware"
	"github.com/localnerve/expiestack/internal/schema"
	"github.com/localnerve/expiestack/internal/services"
	"github.com/localnerve/expiestack/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	_ "github.com/localnerve/expiestack/docs/api" // Swagger docs
)

// @title ExpieStack API
// @version 1.0.0
// @description Productivity dashboard for real estate agents: canned responses, action items, automations and time saved
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/expiestack
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name expie_session

func main() {
	started := time.Now()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	// In-memory store and repository
	store := database.NewStore()
	defer database.Close(store)

	storage := services.NewMemStorage(store)
	auth := services.NewAuthService(storage, cfg.BcryptCost)

	if cfg.SeedDemo {
		if err := services.SeedDemo(storage, auth, data.DemoSeed, time.Now()); err != nil {
			logrus.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	validator, err := schema.New()
	if err != nil {
		logrus.Fatalf("Failed to compile request schemas: %v", err)
	}

	sessions := session.New(session.Config{
		Expiration:     cfg.SessionTTL,
		KeyLookup:      "cookie:" + cfg.SessionCookie,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		CookieSecure:   cfg.IsProduction(),
	})

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler,
		DisableStartupMessage: cfg.IsProduction(),
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prom := fiberprometheus.New("expiestack")
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)
	metrics.MustRegister(prometheus.DefaultRegisterer)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health
	app.Get("/health", func(c *fiber.Ctx) error {
		result := services.HealthCheck(store, started)
		status := fiber.StatusOK
		if result.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	})

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())
	api.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return utils.ErrorResponse(c, "Too many requests", fiber.StatusTooManyRequests, "rateLimit")
		},
	}))

	handlers.Register(api, handlers.Dependencies{
		Storage:   storage,
		Auth:      auth,
		Sessions:  sessions,
		Validator: validator,
		Assistant: integrations.NewSimulatedAssistant(cfg.SimulatedDelay),
		Messenger: integrations.NewSimulatedSlack(cfg.SimulatedDelay, cfg.SlackHistoryTTL),
	}, middleware.SessionUser(sessions, storage, cfg.DemoUserEmail))

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.ErrorResponse(c, "[404] Resource Not Found", fiber.StatusNotFound, "notFound")
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logrus.Info("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	logrus.WithFields(logrus.Fields{
		"port":        cfg.Port,
		"environment": cfg.Environment,
		"demo_user":   cfg.DemoUserEmail,
	}).Info("Starting server")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}

	logrus.Info("Server stopped")
}
