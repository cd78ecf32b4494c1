package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"jobfinder/internal/app"
	"jobfinder/internal/config"
	"jobfinder/internal/pkg/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("failed to load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg := logger.New(cfg.App.LogLevel).With("app", cfg.App.AppName, "env", cfg.App.Environment)
	defer func() { _ = lg.Sync() }()

	if err := run(cfg, lg); err != nil {
		lg.Error("server stopped with error", "err", err)
		_ = lg.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, lg *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := app.NewContainer(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer func() {
		if err := container.Close(); err != nil {
			lg.Warn("cleanup error", "err", err)
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		return err
	}

	server := app.Bootstrap(container)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("http server listening", "addr", addr)
		return server.Fiber.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	})
	g.Go(func() error {
		<-gctx.Done()
		lg.Info("shutting down", "timeout", cfg.App.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		return server.Fiber.ShutdownWithContext(shutdownCtx)
	})

	return g.Wait()
}
