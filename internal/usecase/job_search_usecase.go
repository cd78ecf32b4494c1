package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobfinder/internal/domain/job"
	"jobfinder/internal/infrastructure/jobsearch"
	"jobfinder/internal/pkg/logger"
)

const MsgMissingSearchFields = "Please enter both profession and location"

type JobSearchUsecase interface {
	Search(ctx context.Context, profession, location string) ([]job.Listing, error)
}

type JobSearch struct {
	provider jobsearch.Provider
	timeout  time.Duration
	logger   *logger.Logger
}

func NewJobSearchUsecase(provider jobsearch.Provider, timeout time.Duration, log *logger.Logger) *JobSearch {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &JobSearch{provider: provider, timeout: timeout, logger: log}
}

func (u *JobSearch) Search(ctx context.Context, profession, location string) ([]job.Listing, error) {
	q := job.NewQuery(profession, location)
	if !q.Valid() {
		return nil, invalid("profession", MsgMissingSearchFields)
	}
	if u.provider == nil {
		return nil, ErrUpstream
	}

	callCtx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	start := time.Now()
	listings, err := u.provider.Search(callCtx, q)
	if err != nil {
		u.logger.Warn("job search failed",
			"provider", u.provider.Name(),
			"profession", q.Profession,
			"location", q.Location,
			"duration_ms", time.Since(start).Milliseconds(),
			"err", err,
		)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", ErrUpstreamTimeout, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	if listings == nil {
		listings = []job.Listing{}
	}
	u.logger.Debug("job search completed",
		"provider", u.provider.Name(),
		"results", len(listings),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return listings, nil
}

var _ JobSearchUsecase = (*JobSearch)(nil)
