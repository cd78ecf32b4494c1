package app

import (
	"fmt"

	"jobfinder/internal/config"
	"jobfinder/internal/infrastructure/jobsearch"
	"jobfinder/internal/infrastructure/jobsearch/adzuna"
	"jobfinder/internal/infrastructure/jobsearch/jobboard"
)

func NewProvider(cfg config.JobSearchConfig) (jobsearch.Provider, error) {
	switch cfg.Provider {
	case config.ProviderAdzuna:
		c, err := adzuna.NewClient(adzuna.Config{
			AppID:    cfg.Adzuna.AppID,
			AppKey:   cfg.Adzuna.AppKey,
			Country:  cfg.Adzuna.Country,
			BaseURL:  cfg.Adzuna.BaseURL,
			PageSize: cfg.PageSize,
			Timeout:  cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.ProviderJobBoard:
		p, err := jobboard.NewProvider(jobboard.Config{
			SearchURL: cfg.JobBoard.SearchURL,
			Selectors: jobboard.Selectors{
				Item:     cfg.JobBoard.ItemSelector,
				Title:    cfg.JobBoard.TitleSelector,
				Company:  cfg.JobBoard.CompanySelector,
				Location: cfg.JobBoard.LocationSelector,
				Link:     cfg.JobBoard.LinkSelector,
			},
			UserAgent: cfg.JobBoard.UserAgent,
			Timeout:   cfg.Timeout,
			MaxItems:  cfg.PageSize,
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported job search provider %q", cfg.Provider)
	}
}
