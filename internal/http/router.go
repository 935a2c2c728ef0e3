package http

import (
	"time"

	"github.com/campaign-tracker/backend/internal/auth"
	"github.com/campaign-tracker/backend/internal/config"
	"github.com/campaign-tracker/backend/internal/http/handlers"
	"github.com/campaign-tracker/backend/internal/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	User      *handlers.UserHandler
	Campaign  *handlers.CampaignHandler
	Dashboard *handlers.DashboardHandler
	Currency  *handlers.CurrencyHandler
	Meta      *handlers.MetaHandler
	WSHub     *handlers.WSHub
}

// SetupRouter mounts every route on app. rdb may be nil, which disables rate
// limiting.
func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	issuer *auth.Issuer,
	h Handlers,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	limited := func(c *fiber.Ctx) error { return c.Next() }
	if rdb != nil {
		limited = middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute, log)
	}

	api := app.Group("/api/v1")

	// Auth (public)
	api.Post("/auth/register", h.Auth.Register)
	api.Post("/auth/login", limited, h.Auth.Login)
	api.Post("/auth/refresh", limited, h.Auth.Refresh)

	// Meta (public, no auth required)
	api.Get("/meta/platforms", h.Meta.GetPlatforms)
	api.Get("/meta/statuses", h.Meta.GetStatuses)

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(issuer, log))

	// User
	protected.Get("/me", h.User.GetMe)

	// Campaigns
	protected.Get("/campaigns", h.Campaign.ListCampaigns)
	protected.Post("/campaigns", h.Campaign.CreateCampaign)
	protected.Get("/campaigns/:id", h.Campaign.GetCampaign)
	protected.Put("/campaigns/:id", h.Campaign.UpdateCampaign)
	protected.Patch("/campaigns/:id", h.Campaign.UpdateCampaign)
	protected.Delete("/campaigns/:id", h.Campaign.DeleteCampaign)
	protected.Get("/campaigns/:id/history", h.Campaign.GetHistory)

	// Dashboard and currency
	protected.Get("/dashboard", h.Dashboard.GetDashboard)
	protected.Get("/convert", limited, h.Currency.Convert)

	// WebSocket
	if h.WSHub != nil {
		app.Use("/ws", handlers.WSUpgradeMiddleware())
		app.Get("/ws", websocket.New(h.WSHub.HandleWS))
	}
}

// NewApp builds the Fiber app with the JSON error handler every route relies
// on.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		StrictRouting: false,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			msg := "internal error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}
			return c.Status(code).JSON(fiber.Map{"error": msg})
		},
	})
}
