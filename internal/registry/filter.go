// Package registry implements the business-registry stages: industry-code
// filtering of the monthly export, and per-entity detail scraping with field
// extraction and inclusion rules.
package registry

import "strings"

// ActivityRow is one row of the registry activity export: an industry code
// assigned to an entity under a specific code-scheme version.
type ActivityRow struct {
	EntityNumber string
	NaceVersion  int
	NaceCode     string
}

// FilterRules controls industry-code relevance.
type FilterRules struct {
	NaceVersion     int
	IncludePrefixes []string
	ExcludePrefixes []string
}

// FilterEntities returns the entity numbers considered relevant: restricted
// to codes under the configured scheme version, at least one code has an
// included prefix and no code has an excluded prefix. Output is deduplicated
// and preserves first-occurrence order. An entity with no rows under the
// required version is never relevant.
func FilterEntities(rows []ActivityRow, rules FilterRules) []string {
	byEntity := make(map[string][]string)
	var order []string
	seen := make(map[string]bool)

	for _, row := range rows {
		if !seen[row.EntityNumber] {
			seen[row.EntityNumber] = true
			order = append(order, row.EntityNumber)
		}
		if row.NaceVersion != rules.NaceVersion {
			continue
		}
		byEntity[row.EntityNumber] = append(byEntity[row.EntityNumber], row.NaceCode)
	}

	var relevant []string
	for _, entity := range order {
		if isRelevant(byEntity[entity], rules) {
			relevant = append(relevant, entity)
		}
	}
	return relevant
}

func isRelevant(codes []string, rules FilterRules) bool {
	hasIncluded := false
	for _, code := range codes {
		for _, p := range rules.ExcludePrefixes {
			if strings.HasPrefix(code, p) {
				return false
			}
		}
		for _, p := range rules.IncludePrefixes {
			if strings.HasPrefix(code, p) {
				hasIncluded = true
			}
		}
	}
	return hasIncluded
}
