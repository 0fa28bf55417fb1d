package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/internal/model"
)

func TestNormalizeWebsiteURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{name: "full url keeps host only", in: "https://example.com/fr/about", want: "https://example.com", ok: true},
		{name: "http preserved", in: "http://example.com/en", want: "http://example.com", ok: true},
		{name: "www prefix", in: "www.example.com/en", want: "https://www.example.com", ok: true},
		{name: "bare domain", in: "example.com", want: "https://www.example.com", ok: true},
		{name: "bare domain with subdomain", in: "app.example.be", want: "https://www.app.example.be", ok: true},
		{name: "trims whitespace", in: "  example.com  ", want: "https://www.example.com", ok: true},
		{name: "no tld", in: "example", ok: false},
		{name: "empty", in: "", ok: false},
		{name: "garbage", in: "not a url", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeWebsiteURL(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNormalizeAll(t *testing.T) {
	n := NewNormalizer(nil)

	got, err := n.NormalizeAll(context.Background(), []model.CompanyRecord{
		{Name: "Acme", Website: "www.acme.be/nl"},
		{Name: "Beta", Website: "https://beta.be/en/home"},
	})

	require.NoError(t, err)
	assert.Equal(t, "https://www.acme.be", got[0].Website)
	assert.Equal(t, "https://beta.be", got[1].Website)
}

func TestNormalizeAllProbesMissingURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	// Redirect every probe at the test server.
	client := &http.Client{Transport: rewriteTransport{target: srv.URL}}
	n := NewNormalizer(client)

	got, err := n.NormalizeAll(context.Background(), []model.CompanyRecord{
		{Name: "Acme Software", Website: ""},
	})

	require.NoError(t, err)
	assert.Equal(t, "http://acmesoftware.com", got[0].Website)
}

func TestNormalizeAllReportsInvalidCompanies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := &http.Client{Transport: rewriteTransport{target: srv.URL}}
	n := NewNormalizer(client)

	_, err := n.NormalizeAll(context.Background(), []model.CompanyRecord{
		{Name: "Acme", Website: "www.acme.be"},
		{Name: "Ghost Co", Website: ""},
		{Name: "Vapor BV", Website: ""},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Ghost Co")
	assert.Contains(t, err.Error(), "Vapor BV")
	assert.NotContains(t, err.Error(), "Acme,")
}

func TestNormalizeAllSkipsProbeForDottedNames(t *testing.T) {
	n := NewNormalizer(&http.Client{Transport: failingTransport{}})

	_, err := n.NormalizeAll(context.Background(), []model.CompanyRecord{
		{Name: "acme.be BV", Website: ""},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "acme.be BV")
}

// rewriteTransport sends every request to the test server regardless of the
// requested host.
type rewriteTransport struct {
	target string
}

func (t rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	redirected := *req
	u := *req.URL
	u.Scheme = "http"
	u.Host = t.target[len("http://"):]
	redirected.URL = &u
	return http.DefaultTransport.RoundTrip(&redirected)
}

type failingTransport struct{}

func (failingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return nil, http.ErrHandlerTimeout
}
