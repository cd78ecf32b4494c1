package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobfinder/internal/config"
	"jobfinder/internal/database"
	"jobfinder/internal/database/migration"
	dbpostgres "jobfinder/internal/database/postgres"
	"jobfinder/internal/infrastructure/cache"
	"jobfinder/internal/infrastructure/jobsearch"
	"jobfinder/internal/pkg/auth"
	"jobfinder/internal/pkg/logger"
	"jobfinder/internal/repository"
	"jobfinder/internal/usecase"
	"jobfinder/internal/ws"
)

type Container struct {
	Config   config.Config
	Logger   *logger.Logger
	DB       database.DB
	Cache    *cache.Redis
	Provider jobsearch.Provider
	Verifier auth.Verifier
	Hub      *ws.Hub

	Applications usecase.ApplicationUsecase
	JobSearch    usecase.JobSearchUsecase
}

func NewContainer(ctx context.Context, cfg config.Config, log *logger.Logger) (*Container, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	c := &Container{Config: cfg, Logger: log, DB: db}

	if err := c.prepareSchema(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Cache = cache.NewRedis(ctx, cfg.Redis, log.With("component", "cache"))

	c.Provider, err = NewProvider(cfg.JobSearch)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("job search provider: %w", err)
	}

	c.Verifier, err = auth.NewVerifier(ctx, cfg.Auth)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("auth verifier: %w", err)
	}

	c.Hub = ws.NewHub(log.With("component", "ws"))

	repo := repository.NewPostgresApplicationRepository(db)
	c.Applications = usecase.NewApplicationUsecase(repo, c.Cache, c.Hub, cfg.Redis.TTL, log.With("component", "applications"))
	c.JobSearch = usecase.NewJobSearchUsecase(c.Provider, cfg.JobSearch.Timeout, log.With("component", "jobsearch", "provider", c.Provider.Name()))

	log.Info("container ready",
		"provider", c.Provider.Name(),
		"auth_mode", string(cfg.Auth.Mode),
		"cache", c.Cache.Available(),
	)
	return c, nil
}

func (c *Container) prepareSchema(ctx context.Context) error {
	if c.Config.Database.AutoMigrate {
		if err := (migration.Runner{}).Run(ctx, c.DB.SQLDB()); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	if err := database.EnsureTableColumns(ctx, c.DB, "applications", repository.ApplicationColumns...); err != nil {
		return fmt.Errorf("schema check: %w", err)
	}
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
