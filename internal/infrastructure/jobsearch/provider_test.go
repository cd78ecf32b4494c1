package jobsearch

import (
	"errors"
	"testing"

	"jobfinder/internal/domain/job"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	got, err := Normalize(job.Listing{Title: " Backend Engineer ", Company: " Acme", Location: "Remote ", URL: " https://x.test/1 "})
	require.NoError(t, err)
	assert.Equal(t, job.Listing{Title: "Backend Engineer", Company: "Acme", Location: "Remote", URL: "https://x.test/1"}, got)

	_, err = Normalize(job.Listing{Title: "", URL: "https://x.test/1"})
	require.ErrorIs(t, err, ErrMalformedResponse)

	_, err = Normalize(job.Listing{Title: "t", URL: "/relative"})
	require.ErrorIs(t, err, ErrMalformedResponse)

	_, err = Normalize(job.Listing{Title: "t", URL: "javascript:alert(1)"})
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestStatusError(t *testing.T) {
	var err error = &StatusError{Provider: "adzuna", Code: 503, Body: "down"}
	assert.True(t, errors.Is(err, ErrProviderStatus))
	assert.Contains(t, err.Error(), "status=503")
}
