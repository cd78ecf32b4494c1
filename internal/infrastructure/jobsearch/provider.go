package jobsearch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobfinder/internal/domain/job"
)

var (
	// ErrMalformedResponse means the provider answered but the payload could not be
	// turned into a complete listing set.
	ErrMalformedResponse = errors.New("malformed provider response")
	// ErrProviderStatus means the provider answered with a non-success status.
	ErrProviderStatus = errors.New("provider returned an error status")
)

// Provider is an external job-search backend.
type Provider interface {
	Name() string
	Search(ctx context.Context, q job.Query) ([]job.Listing, error)
}

// StatusError carries the upstream status code.
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status=%d body=%s", e.Provider, e.Code, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrProviderStatus }

// Normalize trims every field and rejects listings without a title or an absolute http(s) URL.
func Normalize(l job.Listing) (job.Listing, error) {
	out := job.Listing{
		Title:    strings.TrimSpace(l.Title),
		Company:  strings.TrimSpace(l.Company),
		Location: strings.TrimSpace(l.Location),
		URL:      strings.TrimSpace(l.URL),
	}
	if out.Title == "" {
		return job.Listing{}, fmt.Errorf("%w: listing without title", ErrMalformedResponse)
	}
	if !job.IsAbsoluteHTTPURL(out.URL) {
		return job.Listing{}, fmt.Errorf("%w: listing %q has invalid url %q", ErrMalformedResponse, out.Title, out.URL)
	}
	return out, nil
}
