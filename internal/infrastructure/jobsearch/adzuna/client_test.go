package adzuna

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobfinder/internal/domain/job"
	"jobfinder/internal/infrastructure/jobsearch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{AppID: "id", AppKey: "key", Country: "GB", BaseURL: srv.URL + "/", PageSize: 5})
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient(Config{AppID: "id"})
	require.Error(t, err)
}

func TestSearch_MapsResultsInProviderOrder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/api/jobs/gb/search/1", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "id", q.Get("app_id"))
		assert.Equal(t, "key", q.Get("app_key"))
		assert.Equal(t, "Backend Engineer", q.Get("what"))
		assert.Equal(t, "Paris", q.Get("where"))
		assert.Equal(t, "5", q.Get("results_per_page"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":2,"results":[
			{"id":"1","title":"Backend Engineer","company":{"display_name":"Acme"},"location":{"display_name":"Paris"},"redirect_url":"https://x.test/1"},
			{"id":"2","title":"Go Developer","company":{"display_name":"Beta"},"location":{"display_name":"Paris, FR"},"redirect_url":"https://x.test/2"}
		]}`))
	})

	got, err := c.Search(context.Background(), job.NewQuery("Backend Engineer", "Paris"))
	require.NoError(t, err)
	assert.Equal(t, []job.Listing{
		{Title: "Backend Engineer", Company: "Acme", Location: "Paris", URL: "https://x.test/1"},
		{Title: "Go Developer", Company: "Beta", Location: "Paris, FR", URL: "https://x.test/2"},
	}, got)
}

func TestSearch_EmptyResultsIsNotAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"count":0,"results":[]}`))
	})

	got, err := c.Search(context.Background(), job.NewQuery("Astronaut", "Nowhere"))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearch_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{
			name: "status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "quota exceeded", http.StatusTooManyRequests)
			},
			want: jobsearch.ErrProviderStatus,
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`<html>`))
			},
			want: jobsearch.ErrMalformedResponse,
		},
		{
			name: "missing results",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"count":3}`))
			},
			want: jobsearch.ErrMalformedResponse,
		},
		{
			name: "posting without url",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"results":[{"id":"1","title":"A","redirect_url":"https://x.test/1"},{"id":"2","title":"B"}]}`))
			},
			want: jobsearch.ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			got, err := c.Search(context.Background(), job.NewQuery("Go", "Remote"))
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, got)
		})
	}
}

func TestSearch_HonorsContextDeadline(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Search(ctx, job.NewQuery("Go", "Remote"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
