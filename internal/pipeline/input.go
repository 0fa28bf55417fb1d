package pipeline

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
)

var (
	schemeRe = regexp.MustCompile(`^(http|https)://`)
	wwwRe    = regexp.MustCompile(`^www\..+\..+$`)
	domainRe = regexp.MustCompile(`^[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// NormalizeWebsiteURL reduces a user-supplied website value to a canonical
// scheme+host URL. Language and path variants are dropped: a full URL keeps
// only scheme and host, a www.-prefixed host gets https://, and a bare
// domain gets https://www.. Returns false when the value fits none of these
// shapes.
func NormalizeWebsiteURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	switch {
	case schemeRe.MatchString(raw):
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return "", false
		}
		return u.Scheme + "://" + u.Host, true
	case wwwRe.MatchString(raw):
		host, _, _ := strings.Cut(raw, "/")
		return "https://" + host, true
	case domainRe.MatchString(raw):
		return "https://www." + raw, true
	default:
		return "", false
	}
}

// Normalizer fixes up the website column of uploaded company rows, probing
// a guessed domain for companies that did not supply a usable URL.
type Normalizer struct {
	client *http.Client
}

// NewNormalizer returns a Normalizer. client may be nil, in which case a
// default client with a short timeout is used for domain probes.
func NewNormalizer(client *http.Client) *Normalizer {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Normalizer{client: client}
}

// NormalizeAll canonicalizes every record's website. Records without a valid
// URL fall back to probing http://<name-without-spaces>.com; if the probe
// fails the company is invalid, and after the pass a single error lists
// every invalid company so the upload can be fixed in one round.
func (n *Normalizer) NormalizeAll(ctx context.Context, recs []model.CompanyRecord) ([]model.CompanyRecord, error) {
	var invalid []string
	out := make([]model.CompanyRecord, 0, len(recs))
	for _, rec := range recs {
		if normalized, ok := NormalizeWebsiteURL(rec.Website); ok {
			rec.Website = normalized
			out = append(out, rec)
			continue
		}
		guessed, ok := n.probe(ctx, rec.Name)
		if !ok {
			invalid = append(invalid, rec.Name)
			continue
		}
		rec.Website = guessed
		out = append(out, rec)
	}
	if len(invalid) > 0 {
		return nil, eris.Errorf("pipeline: invalid or missing website URL for companies: %s", strings.Join(invalid, ", "))
	}
	return out, nil
}

// probe guesses http://<name-without-spaces>.com and checks it resolves.
// Company names that already contain a dot are ambiguous and never probed.
func (n *Normalizer) probe(ctx context.Context, companyName string) (string, bool) {
	if strings.Contains(companyName, ".") {
		return "", false
	}
	guess := "http://" + strings.ReplaceAll(strings.ToLower(companyName), " ", "") + ".com"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, guess, nil)
	if err != nil {
		return "", false
	}
	resp, err := n.client.Do(req)
	if err != nil {
		zap.L().Debug("pipeline: domain probe failed",
			zap.String("company", companyName),
			zap.String("url", guess),
			zap.Error(err))
		return "", false
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return "", false
	}
	return guess, true
}
