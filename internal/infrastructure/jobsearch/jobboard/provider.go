package jobboard

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobfinder/internal/domain/job"
	"jobfinder/internal/infrastructure/jobsearch"

	"github.com/gocolly/colly/v2"
)

const defaultTimeout = 10 * time.Second

// Selectors locate listing fields inside each item element.
type Selectors struct {
	Item     string
	Title    string
	Company  string
	Location string
	Link     string
}

type Config struct {
	// SearchURL contains {profession} and {location} placeholders.
	SearchURL string
	Selectors Selectors
	UserAgent string
	Timeout   time.Duration
	MaxItems  int
	Transport http.RoundTripper
}

// Provider scrapes a server-rendered job board search page.
type Provider struct {
	searchURL   string
	allowedHost string
	sel         Selectors
	userAgent   string
	timeout     time.Duration
	maxItems    int
	transport   http.RoundTripper
}

func NewProvider(cfg Config) (*Provider, error) {
	searchURL := strings.TrimSpace(cfg.SearchURL)
	if searchURL == "" {
		return nil, fmt.Errorf("jobboard: search url is required")
	}
	if !strings.Contains(searchURL, "{profession}") {
		return nil, fmt.Errorf("jobboard: search url must contain {profession}")
	}
	host := hostFromURL(strings.NewReplacer("{profession}", "x", "{location}", "x").Replace(searchURL))
	if host == "" {
		return nil, fmt.Errorf("jobboard: search url has no host")
	}
	if strings.TrimSpace(cfg.Selectors.Item) == "" || strings.TrimSpace(cfg.Selectors.Title) == "" {
		return nil, fmt.Errorf("jobboard: item and title selectors are required")
	}

	sel := cfg.Selectors
	if strings.TrimSpace(sel.Link) == "" {
		sel.Link = "a"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Provider{
		searchURL:   searchURL,
		allowedHost: host,
		sel:         sel,
		userAgent:   strings.TrimSpace(cfg.UserAgent),
		timeout:     timeout,
		maxItems:    cfg.MaxItems,
		transport:   cfg.Transport,
	}, nil
}

func (p *Provider) Name() string {
	return "jobboard"
}

func (p *Provider) Search(ctx context.Context, q job.Query) ([]job.Listing, error) {
	if p == nil {
		return nil, errors.New("jobboard: nil provider")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timeout := p.timeout
	if dl, ok := ctx.Deadline(); ok {
		if remaining := time.Until(dl); remaining < timeout {
			timeout = remaining
		}
	}

	c := colly.NewCollector(
		colly.AllowedDomains(p.allowedHost),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(timeout)
	if p.transport != nil {
		c.WithTransport(p.transport)
	}

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		if p.userAgent != "" {
			r.Headers.Set("User-Agent", p.userAgent)
		}
		r.Headers.Set("Accept", "text/html")
	})

	var (
		raw    []job.Listing
		reqErr error
	)
	c.OnHTML(p.sel.Item, func(e *colly.HTMLElement) {
		if p.maxItems > 0 && len(raw) >= p.maxItems {
			return
		}
		href := strings.TrimSpace(e.ChildAttr(p.sel.Link, "href"))
		if href == "" && e.Name == "a" {
			href = strings.TrimSpace(e.Attr("href"))
		}
		link := ""
		if href != "" {
			link = e.Request.AbsoluteURL(href)
		}
		raw = append(raw, job.Listing{
			Title:    childText(e, p.sel.Title),
			Company:  childText(e, p.sel.Company),
			Location: childText(e, p.sel.Location),
			URL:      link,
		})
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode >= 400 {
			reqErr = &jobsearch.StatusError{Provider: p.Name(), Code: r.StatusCode, Body: truncate(string(r.Body), 512)}
			return
		}
		reqErr = err
	})

	if err := c.Visit(p.buildURL(q)); err != nil && reqErr == nil {
		reqErr = err
	}
	c.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if reqErr != nil {
		if isTimeout(reqErr) {
			return nil, fmt.Errorf("jobboard: %w", context.DeadlineExceeded)
		}
		return nil, fmt.Errorf("jobboard: request failed: %w", reqErr)
	}

	out := make([]job.Listing, 0, len(raw))
	for _, l := range raw {
		listing, err := jobsearch.Normalize(l)
		if err != nil {
			return nil, fmt.Errorf("jobboard: %w", err)
		}
		out = append(out, listing)
	}
	return out, nil
}

func (p *Provider) buildURL(q job.Query) string {
	return strings.NewReplacer(
		"{profession}", url.QueryEscape(q.Profession),
		"{location}", url.QueryEscape(q.Location),
	).Replace(p.searchURL)
}

func childText(e *colly.HTMLElement, selector string) string {
	if strings.TrimSpace(selector) == "" {
		return ""
	}
	return strings.Join(strings.Fields(e.ChildText(selector)), " ")
}

func hostFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(u.Host); err == nil {
		return h
	}
	return u.Host
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}

var _ jobsearch.Provider = (*Provider)(nil)
