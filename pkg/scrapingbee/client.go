// Package scrapingbee implements the ScrapingBee rendering proxy used to
// fetch company websites that block plain HTTP clients.
package scrapingbee

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://app.scrapingbee.com/api/v1"

// Client fetches rendered page HTML through the scraping proxy.
type Client interface {
	Get(ctx context.Context, targetURL string) ([]byte, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit overrides the default request rate (2 req/s). A rate of 0
// disables throttling.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		} else {
			c.limiter = nil
		}
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a ScrapingBee client. Requests are throttled to 2 req/s
// by default to stay within the plan's concurrency limit.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			// Rendered fetches routinely take tens of seconds.
			Timeout: 90 * time.Second,
		},
		limiter: rate.NewLimiter(2, 2),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Get(ctx context.Context, targetURL string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "scrapingbee: rate limit wait")
		}
	}

	query := url.Values{
		"api_key": {c.apiKey},
		"url":     {targetURL},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "scrapingbee: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "scrapingbee: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return nil, eris.Wrap(err, "scrapingbee: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("scrapingbee: unexpected status %d", resp.StatusCode)
	}

	return body, nil
}
