// Package router wires handlers to routes and attaches the gate stages to
// each group.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/dashon1/creatorflow-studio/internal/config"
	"github.com/dashon1/creatorflow-studio/internal/handler"
	"github.com/dashon1/creatorflow-studio/internal/middleware"
)

// Handlers collects every handler the router registers.
type Handlers struct {
	Auth         *handler.AuthHandler
	Admin        *handler.AdminHandler
	Integrations *handler.IntegrationHandler
	Workflows    *handler.WorkflowHandler
	Analytics    *handler.AnalyticsHandler
}

// Register registers all routes. Public routes carry no gate; every
// /api route past the auth endpoints runs the authentication stage, and
// the admin group additionally runs the authorization stage.
func Register(e *echo.Echo, cfg config.Config, h Handlers, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	// Credential endpoints: no gate, but rate limited to blunt
	// password-guessing runs.
	authGroup := e.Group("/api/auth", middleware.RateLimit(config.LoadRateLimitConfig(), rdb))
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)

	// Stage A only: any valid, resolvable identity.
	api := e.Group("/api", middleware.Authenticate(cfg.JWTSecret, h.Auth.Users))
	api.GET("/auth/me", h.Auth.Me)

	api.GET("/integrations", h.Integrations.List)
	api.POST("/integrations", h.Integrations.Create)
	api.DELETE("/integrations/:id", h.Integrations.Delete)

	api.GET("/workflows", h.Workflows.List)
	api.POST("/workflows", h.Workflows.Create)
	api.POST("/workflows/:id/run", h.Workflows.Run)

	api.GET("/analytics/dashboard", h.Analytics.Dashboard)
	api.POST("/analytics/track", h.Analytics.Track)

	// Stage A then stage B: admin or super_admin only.
	admin := e.Group("/api/admin",
		middleware.Authenticate(cfg.JWTSecret, h.Auth.Users),
		middleware.RequireAdmin(),
	)
	admin.GET("/users", h.Admin.ListUsers)
	admin.PUT("/users/:id", h.Admin.UpdateUser)
}
