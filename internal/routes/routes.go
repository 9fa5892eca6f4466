package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	eventHandler *handlers.EventHandler,
	photoHandler *handlers.PhotoHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// Health sits outside the rate limiter so liveness probes never share
	// budget with API traffic.
	api.Get("/health", healthHandler.Check)

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Auth — stricter rate limit on credential endpoints: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.JWTProtected(cfg), authHandler.Me)

	// Events (JWT required)
	events := api.Group("/events", middleware.JWTProtected(cfg))
	events.Post("/", eventHandler.Create)
	events.Post("/join", eventHandler.Join)
	events.Get("/", eventHandler.List)
	events.Get("/:id", eventHandler.Detail)
	events.Delete("/:id", eventHandler.Delete)

	// Photos (JWT required)
	photos := api.Group("/photos", middleware.JWTProtected(cfg))
	photos.Post("/upload/:eventId", photoHandler.Upload)
	photos.Get("/:eventId", photoHandler.List)
	photos.Delete("/:photoId", photoHandler.Delete)
}
