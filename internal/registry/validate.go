package registry

import "strings"

// ExclusionReason says why a record was dropped at the detail stage.
type ExclusionReason string

const (
	ReasonNone          ExclusionReason = ""
	ReasonNoDetail      ExclusionReason = "no_detail"
	ReasonNoFounders    ExclusionReason = "no_founders"
	ReasonNameCollision ExclusionReason = "founder_name_in_company_name"
	ReasonTooOld        ExclusionReason = "founded_before_cutoff"
)

// Validate applies the inclusion rules to extracted fields. Returns the
// first matching exclusion reason, or ReasonNone when the record passes.
// The cutoff is inclusive: a company founded exactly in the cutoff year is
// kept.
func Validate(ex Extracted, foundingYearCutoff int) ExclusionReason {
	if len(ex.Founders) == 0 {
		return ReasonNoFounders
	}

	// A founder surname inside the company name marks an eponymous sole
	// proprietorship, which the campaign excludes.
	nameLower := strings.ToLower(ex.Name)
	for _, founder := range ex.Founders {
		parts := strings.Fields(founder)
		if len(parts) == 0 {
			continue
		}
		surname := strings.ToLower(parts[len(parts)-1])
		if surname != "" && strings.Contains(nameLower, surname) {
			return ReasonNameCollision
		}
	}

	if ex.FoundingYear != 0 && ex.FoundingYear < foundingYearCutoff {
		return ReasonTooOld
	}

	return ReasonNone
}
