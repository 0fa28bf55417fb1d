// Package model defines the record types passed between pipeline stages.
package model

import "time"

// Screen is the binary software/hardware judgment for a company website.
type Screen string

const (
	ScreenUnknown          Screen = ""
	ScreenSoftware         Screen = "software"
	ScreenHardware         Screen = "hardware"
	ScreenInsufficientData Screen = "insufficient_data"
)

// ClassificationSentinel marks records where attribute extraction did not run.
type ClassificationSentinel string

const (
	SentinelNone    ClassificationSentinel = ""
	SentinelNotSaaS ClassificationSentinel = "not_saas"
	SentinelNoData  ClassificationSentinel = "no_data"
)

// NotAvailable is the per-field placeholder for attributes the classifier
// reply did not contain.
const NotAvailable = "N.A."

// Classification holds the structured attributes extracted from a company
// website, or a sentinel when extraction was skipped.
type Classification struct {
	Description  string                 `json:"description"`
	Industry     string                 `json:"industry"`
	ClientType   string                 `json:"client_type"`
	RevenueModel string                 `json:"revenue_model"`
	Region       string                 `json:"region"`
	Sentinel     ClassificationSentinel `json:"sentinel,omitempty"`
}

// SentinelClassification returns a Classification with every attribute set to
// the sentinel's display value.
func SentinelClassification(s ClassificationSentinel) Classification {
	var label string
	switch s {
	case SentinelNotSaaS:
		label = "Not SaaS"
	case SentinelNoData:
		label = "No Data"
	default:
		label = NotAvailable
	}
	return Classification{
		Description:  label,
		Industry:     label,
		ClientType:   label,
		RevenueModel: label,
		Region:       label,
		Sentinel:     s,
	}
}

// CompanyRecord is one row per registry entity, created by the registry
// filter and progressively enriched by later stages. Fields are added, never
// removed; exclusion drops the whole record.
type CompanyRecord struct {
	EntityID           string         `json:"entity_id"`
	Name               string         `json:"name"`
	Founders           []string       `json:"founders"`
	FoundingYear       int            `json:"founding_year,omitempty"`
	Email              string         `json:"email,omitempty"`
	Website            string         `json:"website,omitempty"`
	LinkedInProfile    string         `json:"linkedin_profile,omitempty"`
	LinkedInCompanyURL string         `json:"linkedin_company_url,omitempty"`
	RawDetail          string         `json:"raw_detail,omitempty"`
	Screen             Screen         `json:"screen,omitempty"`
	Classification     Classification `json:"classification"`

	// People is the free-text contacts field consumed by record expansion.
	People string `json:"people,omitempty"`
}

// ContactRecord is one outreach row per contact, derived from a
// CompanyRecord. It references its company by EntityID only.
type ContactRecord struct {
	EntityID      string `json:"entity_id"`
	CompanyName   string `json:"company_name"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	LinkedInURL   string `json:"linkedin_url"`
	CompanyDomain string `json:"company_domain"`
}

// RunStatus tracks the lifecycle of a pipeline run.
type RunStatus string

const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is one pipeline invocation recorded in the store.
type Run struct {
	ID        string     `json:"id"`
	Source    string     `json:"source"` // "zip", "csv"
	Status    RunStatus  `json:"status"`
	Result    *RunResult `json:"result,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// RunResult summarizes the outcome of a run.
type RunResult struct {
	Candidates int    `json:"candidates"`
	Screened   int    `json:"screened"`
	Resolved   int    `json:"resolved"`
	Classified int    `json:"classified"`
	Contacts   int    `json:"contacts"`
	Error      string `json:"error,omitempty"`
}
