package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gridwatch/outage-service/internal/api/http/handlers"
	"github.com/gridwatch/outage-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Areas          *handlers.AreasHandler
	Outages        *handlers.OutagesHandler
	Notifications  *handlers.NotificationsHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
	MetricsHandler fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.MetricsHandler != nil {
		app.Get("/metrics", cfg.MetricsHandler)
	}

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	adminOnly := []fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireAdmin()}

	areas := api.Group("/areas")
	areas.Post("/create", append(adminOnly, cfg.Areas.Create)...)
	areas.Get("/all", cfg.Areas.List)
	areas.Get("/:areaId", cfg.Areas.Get)
	areas.Put("/:areaId", append(adminOnly, cfg.Areas.Update)...)
	areas.Delete("/:areaId", append(adminOnly, cfg.Areas.Delete)...)

	outages := api.Group("/outages")
	outages.Post("/report", cfg.Outages.Report)
	outages.Get("/all", cfg.Outages.List)
	outages.Get("/area/:areaId", cfg.Outages.ListByArea)
	outages.Get("/status/:status", cfg.Outages.ListByStatus)
	outages.Get("/user/:userId", cfg.Outages.ListByUser)
	outages.Get("/:outageId", cfg.Outages.Get)
	outages.Put("/:outageId/status", cfg.Outages.UpdateStatus)
	outages.Delete("/:outageId", append(adminOnly, cfg.Outages.Delete)...)

	notifications := api.Group("/notifications")
	notifications.Post("/send", cfg.Notifications.Send)
	notifications.Get("/all", cfg.Notifications.ListAll)
	notifications.Get("/outage/:outageId", cfg.Notifications.ListByOutage)

	reports := api.Group("/reports")
	reports.Get("/stats", cfg.Reports.Stats)
	reports.Get("/areas", cfg.Reports.AreaStats)
}
