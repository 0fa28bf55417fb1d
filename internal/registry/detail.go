package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/net/html"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/resilience"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"

// ErrCaptcha indicates the registry served a CAPTCHA interstitial instead of
// the detail page. Retried after a longer cool-off than a generic failure.
var ErrCaptcha = eris.New("registry: captcha challenge detected")

// ErrNoDetail indicates the detail page did not contain the expected table.
var ErrNoDetail = eris.New("registry: detail table missing")

// Fetcher retrieves and flattens public registry detail pages.
type Fetcher struct {
	http      *http.Client
	detailURL string
	retry     resilience.RetryConfig
}

// NewFetcher builds a Fetcher from config. When proxy credentials are set,
// all requests are routed through the authenticated proxy.
func NewFetcher(cfg config.RegistryConfig) (*Fetcher, error) {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	transport := &http.Transport{}
	if cfg.ProxyHost != "" {
		proxyURL, err := url.Parse(fmt.Sprintf("http://%s:%s@%s", cfg.ProxyUsername, cfg.ProxyPassword, cfg.ProxyHost))
		if err != nil {
			return nil, eris.Wrap(err, "registry: parse proxy url")
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	retryDelay := time.Duration(cfg.RetryDelaySecs) * time.Second
	captchaDelay := time.Duration(cfg.CaptchaDelaySecs) * time.Second

	return &Fetcher{
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		detailURL: cfg.DetailURL,
		retry: resilience.RetryConfig{
			MaxAttempts: 2,
			Delay:       retryDelay,
			ShouldRetry: func(err error) bool {
				// Every detail-fetch failure gets the single retry; only the
				// delay differs by failure kind.
				return true
			},
			DelayFor: func(err error) time.Duration {
				if errors.Is(err, ErrCaptcha) {
					return captchaDelay
				}
				return 0
			},
			OnRetry: resilience.RetryLogger("registry", "fetch_detail"),
		},
	}, nil
}

// FetchDetail retrieves the detail page for an entity and flattens it into
// section-tagged text. Applies the single-retry policy; a second failure
// returns the last error and the caller drops the record.
func (f *Fetcher) FetchDetail(ctx context.Context, entityID string) (string, error) {
	return resilience.DoVal(ctx, f.retry, func(ctx context.Context) (string, error) {
		return f.fetchOnce(ctx, entityID)
	})
}

func (f *Fetcher) fetchOnce(ctx context.Context, entityID string) (string, error) {
	target := fmt.Sprintf(f.detailURL, url.QueryEscape(entityID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", eris.Wrap(err, "registry: create request")
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := f.http.Do(req)
	if err != nil {
		return "", resilience.NewTransientError(eris.Wrap(err, "registry: fetch detail page"), 0)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return "", resilience.NewTransientError(eris.Wrap(err, "registry: read detail page"), resp.StatusCode)
	}

	if resilience.IsTransientHTTPStatus(resp.StatusCode) {
		return "", resilience.NewTransientError(eris.Errorf("registry: status %d", resp.StatusCode), resp.StatusCode)
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return "", eris.Wrap(err, "registry: parse detail page")
	}

	if captchaPresent(doc) {
		return "", ErrCaptcha
	}

	table := findByID(doc, "table")
	if table == nil {
		return "", ErrNoDetail
	}

	return flattenDetail(table), nil
}

// captchaPresent reports whether the page carries the known CAPTCHA marker:
// an h3 heading containing "CAPTCHA Test".
func captchaPresent(doc *html.Node) bool {
	found := false
	walk(doc, func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "h3" &&
			strings.Contains(nodeText(n), "CAPTCHA Test") {
			found = true
		}
	})
	return found
}

// flattenDetail converts the detail table into section-tagged text:
// h2 rows become "=== Section ===" headers, single-cell rows become bare
// values, and key/value rows become "Key: Value" lines.
func flattenDetail(table *html.Node) string {
	var lines []string
	currentSection := ""

	walk(table, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "tr" {
			return
		}

		if h2 := findElement(n, "h2"); h2 != nil {
			currentSection = strings.TrimSpace(nodeText(h2))
			lines = append(lines, fmt.Sprintf("\n=== %s ===\n", currentSection))
			return
		}

		cells := childElements(n, "td")
		switch {
		case len(cells) == 1 && currentSection != "":
			if value := strings.TrimSpace(nodeText(cells[0])); value != "" {
				lines = append(lines, value)
			}
		case len(cells) >= 2:
			key := strings.TrimSpace(nodeText(cells[0]))
			value := strings.TrimSpace(nodeText(cells[1]))
			if key != "" && value != "" {
				lines = append(lines, fmt.Sprintf("%s: %s", key, value))
			}
		}
	})

	return strings.Join(lines, "\n")
}

func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func findByID(n *html.Node, id string) *html.Node {
	var found *html.Node
	walk(n, func(node *html.Node) {
		if found != nil || node.Type != html.ElementNode {
			return
		}
		for _, attr := range node.Attr {
			if attr.Key == "id" && attr.Val == id {
				found = node
				return
			}
		}
	})
	return found
}

func findElement(n *html.Node, name string) *html.Node {
	var found *html.Node
	walk(n, func(node *html.Node) {
		if found == nil && node.Type == html.ElementNode && node.Data == name {
			found = node
		}
	})
	return found
}

// childElements returns descendant elements with the given tag name, in
// document order.
func childElements(n *html.Node, name string) []*html.Node {
	var out []*html.Node
	walk(n, func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == name {
			out = append(out, node)
		}
	})
	return out
}

// nodeText concatenates all text descendants with single-space separators.
func nodeText(n *html.Node) string {
	var parts []string
	walk(n, func(node *html.Node) {
		if node.Type == html.TextNode {
			if t := strings.TrimSpace(node.Data); t != "" {
				parts = append(parts, t)
			}
		}
	})
	return strings.Join(parts, " ")
}
