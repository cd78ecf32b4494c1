package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobfinder/internal/domain/job"
	"jobfinder/internal/infrastructure/jobsearch"
	"jobfinder/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobSearch_RejectsBlankInputWithoutCallingProvider(t *testing.T) {
	tests := []struct {
		name       string
		profession string
		location   string
	}{
		{name: "empty profession", profession: "", location: "Paris"},
		{name: "blank location", profession: "engineer", location: "   "},
		{name: "both empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{}
			uc := NewJobSearchUsecase(p, time.Second, logger.Nop())

			_, err := uc.Search(context.Background(), tt.profession, tt.location)
			require.ErrorIs(t, err, ErrInvalidInput)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, MsgMissingSearchFields, verr.Message)
			assert.Zero(t, p.Calls())
		})
	}
}

func TestJobSearch_ReturnsProviderListings(t *testing.T) {
	want := []job.Listing{
		{Title: "Backend Engineer", Company: "Acme", Location: "Remote", URL: "https://x.test/1"},
		{Title: "SRE", Company: "Beta", Location: "Paris", URL: "https://x.test/2"},
	}
	p := &fakeProvider{listings: want}
	uc := NewJobSearchUsecase(p, time.Second, logger.Nop())

	got, err := uc.Search(context.Background(), " engineer ", " Paris ")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, p.Calls())
}

func TestJobSearch_EmptyResultIsNotAnError(t *testing.T) {
	uc := NewJobSearchUsecase(&fakeProvider{}, time.Second, logger.Nop())

	got, err := uc.Search(context.Background(), "astronaut", "Nowhere")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestJobSearch_ProviderFailure(t *testing.T) {
	p := &fakeProvider{err: jobsearch.ErrMalformedResponse}
	uc := NewJobSearchUsecase(p, time.Second, logger.Nop())

	got, err := uc.Search(context.Background(), "engineer", "Paris")
	require.ErrorIs(t, err, ErrUpstream)
	assert.NotErrorIs(t, err, ErrUpstreamTimeout)
	assert.Nil(t, got)
}

func TestJobSearch_Timeout(t *testing.T) {
	p := &fakeProvider{block: true}
	uc := NewJobSearchUsecase(p, 20*time.Millisecond, logger.Nop())

	start := time.Now()
	_, err := uc.Search(context.Background(), "engineer", "Paris")
	require.ErrorIs(t, err, ErrUpstreamTimeout)
	assert.Less(t, time.Since(start), time.Second)
}
