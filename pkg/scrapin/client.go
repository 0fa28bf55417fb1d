// Package scrapin implements the Scrapin enrichment API used to turn a
// LinkedIn profile or a company name into a company profile.
package scrapin

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://api.scrapin.io"

// Client resolves profiles and company names into company data.
type Client interface {
	// ProfileCompany returns the company attached to a person profile.
	// A nil Company with nil error means the profile carried no company data.
	ProfileCompany(ctx context.Context, linkedInURL string) (*Company, error)

	// SearchCompany looks a company up by name. Same nil-Company contract.
	SearchCompany(ctx context.Context, name string) (*Company, error)
}

// Company is the enrichment payload the pipeline consumes.
type Company struct {
	LinkedInURL string `json:"linkedInUrl"`
	WebsiteURL  string `json:"websiteUrl"`
}

type enrichmentResponse struct {
	Company *Company `json:"company"`
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

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a Scrapin API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) ProfileCompany(ctx context.Context, linkedInURL string) (*Company, error) {
	return c.enrich(ctx, "/enrichment/profile", url.Values{
		"apikey":      {c.apiKey},
		"linkedInUrl": {linkedInURL},
	})
}

func (c *httpClient) SearchCompany(ctx context.Context, name string) (*Company, error) {
	return c.enrich(ctx, "/enrichment/company", url.Values{
		"apikey": {c.apiKey},
		"name":   {name},
	})
}

func (c *httpClient) enrich(ctx context.Context, path string, query url.Values) (*Company, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "scrapin: create request")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "scrapin: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "scrapin: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("scrapin: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result enrichmentResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "scrapin: unmarshal response")
	}

	return result.Company, nil
}
