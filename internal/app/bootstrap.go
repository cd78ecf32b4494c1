package app

import (
	"fmt"
	"strings"

	"jobfinder/internal/config"
	"jobfinder/internal/delivery/http/handler"
	"jobfinder/internal/delivery/http/middleware"
	"jobfinder/internal/delivery/http/routes"
	"jobfinder/internal/pkg/logger"
	"jobfinder/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

type App struct {
	Fiber *fiber.App
}

func New(cfg config.Config, log *logger.Logger, registry *routes.Registry) *App {
	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registerGlobalMiddleware(f, cfg, log)
	registry.Register(f)

	return &App{Fiber: f}
}

// Bootstrap wires the container into routes.
func Bootstrap(c *Container) *App {
	var cachePinger handler.Pinger
	if c.Cache != nil {
		cachePinger = c.Cache
	}

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB, cachePinger),
		handler.NewJobsHandler(c.JobSearch),
		handler.NewApplicationHandler(c.Applications),
		ws.NewHandler(c.Hub, c.Config.App.CORSAllowOrigins, c.Logger.With("component", "ws")),
		middleware.NewAuthMiddleware(c.Verifier),
	)
	return New(c.Config, c.Logger, registry)
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, log *logger.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(log.With("component", "http")).Middleware())
	app.Use(middleware.NewErrorMiddleware(log.With("component", "http")).Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.App.CORSAllowOrigins,
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", handler.HeaderIdempotencyKey, middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
	}))
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
