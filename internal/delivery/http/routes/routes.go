package routes

import (
	"jobfinder/internal/delivery/http/handler"
	"jobfinder/internal/delivery/http/middleware"
	"jobfinder/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health       *handler.HealthHandler
	jobs         *handler.JobsHandler
	applications *handler.ApplicationHandler
	realtime     *ws.Handler
	auth         *middleware.AuthMiddleware
}

func NewRegistry(
	health *handler.HealthHandler,
	jobs *handler.JobsHandler,
	applications *handler.ApplicationHandler,
	realtime *ws.Handler,
	auth *middleware.AuthMiddleware,
) *Registry {
	return &Registry{
		health:       health,
		jobs:         jobs,
		applications: applications,
		realtime:     realtime,
		auth:         auth,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
	r.registerAPI(app)
	r.registerRealtime(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")

	if r.jobs != nil {
		r.jobs.RegisterRoutes(api.Group("/jobs"))
	}
	if r.applications != nil {
		r.applications.RegisterRoutes(api.Group("/applications", r.auth.Middleware()))
	}
}

func (r *Registry) registerRealtime(app *fiber.App) {
	if r.realtime == nil {
		return
	}
	r.realtime.RegisterRoutes(app.Group("/ws", r.auth.Middleware()))
}
