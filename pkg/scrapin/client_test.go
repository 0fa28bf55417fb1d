package scrapin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileCompany(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     string
		wantCompany *Company
	}{
		{
			name:   "success with company",
			status: http.StatusOK,
			body:   `{"company": {"linkedInUrl": "https://linkedin.com/company/acme", "websiteUrl": "https://acme.be"}}`,
			wantCompany: &Company{
				LinkedInURL: "https://linkedin.com/company/acme",
				WebsiteURL:  "https://acme.be",
			},
		},
		{
			name:        "success without company data",
			status:      http.StatusOK,
			body:        `{"company": null}`,
			wantCompany: nil,
		},
		{
			name:    "http error",
			status:  http.StatusUnauthorized,
			body:    `{"error": "bad api key"}`,
			wantErr: "unexpected status 401",
		},
		{
			name:    "malformed json",
			status:  http.StatusOK,
			body:    `{broken`,
			wantErr: "unmarshal response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/enrichment/profile", r.URL.Path)
				assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
				assert.Equal(t, "https://be.linkedin.com/in/johndoe", r.URL.Query().Get("linkedInUrl"))

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient("test-key", WithBaseURL(srv.URL))
			company, err := client.ProfileCompany(context.Background(), "https://be.linkedin.com/in/johndoe")

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCompany, company)
		})
	}
}

func TestSearchCompany(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/enrichment/company", r.URL.Path)
		assert.Equal(t, "Acme Software", r.URL.Query().Get("name"))
		_, _ = w.Write([]byte(`{"company": {"linkedInUrl": "https://linkedin.com/company/acme", "websiteUrl": "https://acme.be"}}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	company, err := client.SearchCompany(context.Background(), "Acme Software")
	require.NoError(t, err)
	require.NotNil(t, company)
	assert.Equal(t, "https://acme.be", company.WebsiteURL)
}
