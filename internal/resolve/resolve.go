// Package resolve looks up founder LinkedIn profiles through SERP results
// and enriches them with company data from the Scrapin API.
package resolve

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/pkg/dataforseo"
	"github.com/sells-group/leadgen-cli/pkg/scrapin"
)

// Method records which strategy produced a resolution.
type Method string

const (
	// MethodCompanyMatch means a SERP hit mentioned the company name.
	MethodCompanyMatch Method = "company_match"
	// MethodTermMatch means a SERP hit mentioned founder role terms.
	MethodTermMatch Method = "term_match"
	// MethodCompanySearch means no SERP hit matched and the company was
	// looked up by name instead.
	MethodCompanySearch Method = "company_search"
	// MethodNone means every strategy came back empty.
	MethodNone Method = "none"
)

// Resolution is the outcome of a founder lookup. Fields the lookup could
// not establish are left empty rather than failing the record.
type Resolution struct {
	ProfileURL         string
	CompanyLinkedInURL string
	CompanyWebsite     string
	Method             Method
}

// SerpClient runs live organic searches.
type SerpClient interface {
	SearchOrganic(ctx context.Context, task dataforseo.SearchTask) ([]dataforseo.OrganicItem, error)
}

// EnrichClient fetches company data for a profile or a company name.
type EnrichClient interface {
	ProfileCompany(ctx context.Context, linkedInURL string) (*scrapin.Company, error)
	SearchCompany(ctx context.Context, name string) (*scrapin.Company, error)
}

// Resolver ties the SERP and enrichment clients together.
type Resolver struct {
	serp   SerpClient
	enrich EnrichClient
	cfg    config.SerpConfig
}

// NewResolver returns a Resolver using the given clients and SERP settings.
func NewResolver(serp SerpClient, enrich EnrichClient, cfg config.SerpConfig) *Resolver {
	return &Resolver{serp: serp, enrich: enrich, cfg: cfg}
}

// Resolve finds a LinkedIn profile for one of the company's founders.
// Each founder is searched in turn. Preference order: the first SERP hit
// mentioning the company name, then the hit with the most founder-term
// matches across all founders, then a company lookup by name. Lookup
// failures degrade to an empty Resolution; they never error.
func (r *Resolver) Resolve(ctx context.Context, companyName string, founders []string) Resolution {
	item, method := r.pickProfile(ctx, companyName, founders)
	if item == nil {
		return r.byCompanyName(ctx, companyName)
	}

	res := Resolution{ProfileURL: item.URL, Method: method}
	company, err := r.enrich.ProfileCompany(ctx, item.URL)
	if err != nil {
		zap.L().Warn("resolve: profile enrichment failed",
			zap.String("profile_url", item.URL),
			zap.Error(err))
		return res
	}
	if company != nil {
		res.CompanyLinkedInURL = company.LinkedInURL
		res.CompanyWebsite = company.WebsiteURL
	}
	return res
}

func (r *Resolver) pickProfile(ctx context.Context, companyName string, founders []string) (*dataforseo.OrganicItem, Method) {
	var best *dataforseo.OrganicItem
	bestTerms := 0
	for _, founder := range founders {
		task := dataforseo.SearchTask{
			Keyword:      fmt.Sprintf("site: %s '%s'", r.cfg.ProfileSite, founder),
			LocationCode: r.cfg.LocationCode,
			LanguageCode: r.cfg.LanguageCode,
			Depth:        r.cfg.Depth,
		}
		items, err := r.serp.SearchOrganic(ctx, task)
		if err != nil {
			zap.L().Warn("resolve: serp search failed",
				zap.String("founder", founder),
				zap.Error(err))
			continue
		}
		for i := range items {
			item := &items[i]
			if item.URL == "" {
				continue
			}
			terms, company := matchScore(item.Title, item.Description, companyName)
			if company {
				return item, MethodCompanyMatch
			}
			if terms > bestTerms {
				best, bestTerms = item, terms
			}
		}
	}
	if best != nil {
		return best, MethodTermMatch
	}
	return nil, MethodNone
}

func (r *Resolver) byCompanyName(ctx context.Context, companyName string) Resolution {
	company, err := r.enrich.SearchCompany(ctx, companyName)
	if err != nil {
		zap.L().Warn("resolve: company search failed",
			zap.String("company", companyName),
			zap.Error(err))
		return Resolution{Method: MethodNone}
	}
	if company == nil {
		return Resolution{Method: MethodNone}
	}
	return Resolution{
		CompanyLinkedInURL: company.LinkedInURL,
		CompanyWebsite:     company.WebsiteURL,
		Method:             MethodCompanySearch,
	}
}
