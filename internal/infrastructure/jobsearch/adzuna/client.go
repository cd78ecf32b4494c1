package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"jobfinder/internal/domain/job"
	"jobfinder/internal/infrastructure/jobsearch"
)

const (
	defaultBaseURL  = "https://api.adzuna.com"
	defaultCountry  = "us"
	defaultPageSize = 20
	defaultTimeout  = 10 * time.Second
)

// Config defines Adzuna API client settings
type Config struct {
	AppID      string
	AppKey     string
	Country    string
	BaseURL    string
	PageSize   int
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client queries the Adzuna job search API
type Client struct {
	appID      string
	appKey     string
	country    string
	baseURL    string
	pageSize   int
	httpClient *http.Client
}

type searchResponse struct {
	Count   int           `json:"count"`
	Results *[]jobPosting `json:"results"`
}

type jobPosting struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Company     displayName `json:"company"`
	Location    displayName `json:"location"`
	RedirectURL string      `json:"redirect_url"`
}

type displayName struct {
	DisplayName string `json:"display_name"`
}

// NewClient instantiates an Adzuna API client
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.AppID) == "" || strings.TrimSpace(cfg.AppKey) == "" {
		return nil, fmt.Errorf("adzuna: app_id and app_key are required")
	}

	country := strings.ToLower(strings.TrimSpace(cfg.Country))
	if country == "" {
		country = defaultCountry
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		appID:      strings.TrimSpace(cfg.AppID),
		appKey:     strings.TrimSpace(cfg.AppKey),
		country:    country,
		baseURL:    baseURL,
		pageSize:   pageSize,
		httpClient: httpClient,
	}, nil
}

func (c *Client) Name() string {
	return "adzuna"
}

// Search runs one request against Adzuna and keeps the provider's ordering.
func (c *Client) Search(ctx context.Context, q job.Query) ([]job.Listing, error) {
	if c == nil || c.httpClient == nil {
		return nil, fmt.Errorf("adzuna: client is nil")
	}

	u, err := c.buildSearchURL(q)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("adzuna: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adzuna: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &jobsearch.StatusError{
			Provider: c.Name(),
			Code:     resp.StatusCode,
			Body:     strings.TrimSpace(string(body)),
		}
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("adzuna: decode response: %w: %v", jobsearch.ErrMalformedResponse, err)
	}
	if payload.Results == nil {
		return nil, fmt.Errorf("adzuna: %w: missing results", jobsearch.ErrMalformedResponse)
	}

	out := make([]job.Listing, 0, len(*payload.Results))
	for _, posting := range *payload.Results {
		listing, err := jobsearch.Normalize(job.Listing{
			Title:    posting.Title,
			Company:  posting.Company.DisplayName,
			Location: posting.Location.DisplayName,
			URL:      posting.RedirectURL,
		})
		if err != nil {
			return nil, fmt.Errorf("adzuna: posting %s: %w", posting.ID, err)
		}
		out = append(out, listing)
	}
	return out, nil
}

func (c *Client) buildSearchURL(q job.Query) (string, error) {
	if q.Profession == "" {
		return "", fmt.Errorf("adzuna: query is required")
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("adzuna: parse base url: %w", err)
	}
	u.Path = path.Join(u.Path, "v1", "api", "jobs", c.country, "search", "1")

	values := url.Values{}
	values.Set("app_id", c.appID)
	values.Set("app_key", c.appKey)
	values.Set("what", q.Profession)
	values.Set("results_per_page", fmt.Sprint(c.pageSize))
	values.Set("content-type", "application/json")
	if q.Location != "" {
		values.Set("where", q.Location)
	}

	u.RawQuery = values.Encode()
	return u.String(), nil
}

var _ jobsearch.Provider = (*Client)(nil)
