package handler

import (
	"github.com/Khushiyant/nibtara/internal/auth/domain"
	"github.com/Khushiyant/nibtara/internal/logger"
	"github.com/Khushiyant/nibtara/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// NewApp builds the fiber app with the central error handler, metrics and request logging.
func NewApp(log logrus.FieldLogger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "nibtara",
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(metrics.Middleware())
	app.Use(logger.RequestLogger(log))
	return app
}

// RegisterRoutes mounts the API under /api/v1. limiter may be nil. Trailing slashes are accepted
// since fiber routing is not strict by default.
func RegisterRoutes(app *fiber.App, h *AuthHandler, limiter *RateLimiter, checks ...HealthCheck) {
	throttle := func(c *fiber.Ctx) error { return c.Next() }
	if limiter != nil {
		throttle = limiter.Handler()
	}
	health := Health(checks...)

	app.Get("/health", health)
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api/v1")
	api.Get("/health", health)
	api.Post("/login", throttle, h.Login)
	api.Post("/token/refresh", throttle, h.Refresh)
	api.Post("/register/client", throttle, h.RegisterClient)

	auth := h.RequireAuth()
	api.Post("/logout", auth, h.Logout)
	api.Post("/register/lawyer", auth, h.RegisterLawyer)
	api.Post("/register/judge", auth, h.RegisterJudge)
	api.Get("/list/lawyer", auth, h.ListLawyers)
	api.Get("/list/pretrial", auth, h.ListPreTrials)
	api.Post("/advice", auth, h.RequireRole(domain.RoleLawyer, domain.RoleJudge), h.Advice)
}
