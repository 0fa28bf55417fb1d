package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercases", in: "Founder", want: "founder"},
		{name: "strips whitespace", in: "Acme  Software BV", want: "acmesoftwarebv"},
		{name: "strips hyphens", in: "Entre-Preneur", want: "entrepreneur"},
		{name: "strips diacritics", in: "Gründer", want: "grunder"},
		{name: "mixed", in: "Co-Fondateur à Liège", want: "cofondateuraliege"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestMatchScore(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		company     string
		wantTerms   int
		wantCompany bool
	}{
		{
			name:        "company name hit",
			title:       "Jan Peeters - CEO at Acme Software",
			description: "Building things at Acme Software in Ghent.",
			company:     "Acme Software",
			wantTerms:   0,
			wantCompany: true,
		},
		{
			name:        "multiple terms",
			title:       "Jan Peeters - Oprichter",
			description: "Serial entrepreneur and founder.",
			company:     "Acme Software",
			wantTerms:   3,
			wantCompany: false,
		},
		{
			name:        "diacritics folded",
			title:       "Jan Peeters - Grunder",
			description: "",
			company:     "Acme",
			wantTerms:   1,
			wantCompany: false,
		},
		{
			name:        "no match",
			title:       "Jan Peeters - Accountant",
			description: "Tax advisory.",
			company:     "Acme Software",
			wantTerms:   0,
			wantCompany: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms, company := matchScore(tt.title, tt.description, tt.company)
			assert.Equal(t, tt.wantTerms, terms)
			assert.Equal(t, tt.wantCompany, company)
		})
	}
}
