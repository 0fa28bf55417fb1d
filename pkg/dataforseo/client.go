// Package dataforseo implements the subset of the DataForSEO SERP API used
// for founder profile lookups.
package dataforseo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

const (
	defaultBaseURL = "https://api.dataforseo.com"
	// statusOK is DataForSEO's application-level success code.
	statusOK = 20000
)

// Client performs live organic SERP queries.
type Client interface {
	SearchOrganic(ctx context.Context, task SearchTask) ([]OrganicItem, error)
}

// SearchTask is one live organic search task.
type SearchTask struct {
	Keyword      string `json:"keyword"`
	LocationCode int    `json:"location_code"`
	LanguageCode string `json:"language_code"`
	Device       string `json:"device"`
	Depth        int    `json:"depth"`
}

// OrganicItem is a single organic result.
type OrganicItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

type searchResponse struct {
	StatusCode int    `json:"status_code"`
	StatusMsg  string `json:"status_message"`
	Tasks      []struct {
		Result []struct {
			Items []OrganicItem `json:"items"`
		} `json:"result"`
	} `json:"tasks"`
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
	auth    string
	baseURL string
	http    *http.Client
}

// NewClient creates a DataForSEO client. auth is the pre-encoded basic-auth
// credential.
func NewClient(auth string, opts ...Option) Client {
	c := &httpClient{
		auth:    auth,
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

func (c *httpClient) SearchOrganic(ctx context.Context, task SearchTask) ([]OrganicItem, error) {
	if task.Device == "" {
		task.Device = "desktop"
	}

	body, err := json.Marshal([]SearchTask{task})
	if err != nil {
		return nil, eris.Wrap(err, "dataforseo: marshal task")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v3/serp/google/organic/live/advanced", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "dataforseo: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Basic "+c.auth)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "dataforseo: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "dataforseo: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("dataforseo: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result searchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "dataforseo: unmarshal response")
	}

	if result.StatusCode != statusOK {
		return nil, eris.Errorf("dataforseo: api status %d: %s", result.StatusCode, result.StatusMsg)
	}

	var items []OrganicItem
	for _, t := range result.Tasks {
		for _, r := range t.Result {
			items = append(items, r.Items...)
		}
	}
	return items, nil
}
