package registry

import (
	"regexp"
	"strconv"
	"strings"
)

// Extracted holds the identity fields parsed out of a flattened detail page.
type Extracted struct {
	Name         string
	Founders     []string
	Email        string
	Website      string
	FoundingYear int
}

var (
	nameRe       = regexp.MustCompile(`Naam.*::\s*(.*)`)
	nameBoundary = regexp.MustCompile(`\s*(Sinds|Naam|Taal)\s*`)
	functionsRe  = regexp.MustCompile(`(?s)=== Functies ===(.*?)===`)
	emailRe      = regexp.MustCompile(`E-mail::\s*(\S+)`)
	websiteRe    = regexp.MustCompile(`Webadres::\s*(\S+)`)
	dotExtRe     = regexp.MustCompile(`\.\w{2,}`)
	startDateRe  = regexp.MustCompile(`Begindatum::\s*(\d{1,2}\s*[a-zA-Z]+\s*\d{4})`)
	yearRe       = regexp.MustCompile(`\d{4}`)
)

// Extract parses the flattened detail text into identity fields. Domains in
// freeMailDomains never seed a derived website. Missing fields stay zero;
// inclusion rules are applied separately by Validate.
func Extract(detail string, freeMailDomains []string) Extracted {
	var out Extracted

	out.Name = extractName(detail)
	out.Founders = extractFounders(detail)

	if m := emailRe.FindStringSubmatch(detail); m != nil && strings.Contains(m[1], "@") {
		out.Email = strings.TrimSpace(m[1])
	}

	if m := websiteRe.FindStringSubmatch(detail); m != nil && dotExtRe.MatchString(m[1]) {
		out.Website = strings.TrimSpace(m[1])
	}

	// Fall back to the email domain when the registry lists no website.
	if out.Website == "" && out.Email != "" {
		if domain := emailDomain(out.Email); domain != "" && !contains(freeMailDomains, domain) {
			out.Website = "http://www." + domain
		}
	}

	if m := startDateRe.FindStringSubmatch(detail); m != nil {
		if y := yearRe.FindString(m[1]); y != "" {
			out.FoundingYear, _ = strconv.Atoi(y)
		}
	}

	return out
}

// extractName pulls the trade or legal name, truncated at the known
// field-boundary keywords that bleed into the same table cell. Idempotent on
// already-clean input.
func extractName(detail string) string {
	m := nameRe.FindStringSubmatch(detail)
	if m == nil {
		return ""
	}
	name := strings.TrimSpace(m[1])
	if loc := nameBoundary.FindStringIndex(name); loc != nil {
		name = name[:loc[0]]
	}
	return strings.TrimSpace(name)
}

// extractFounders reads person names from the functions section, converting
// registry "Last, First" order to "First Last".
func extractFounders(detail string) []string {
	m := functionsRe.FindStringSubmatch(detail)
	if m == nil {
		return nil
	}

	var founders []string
	for _, line := range strings.Split(m[1], "\n") {
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		namePart := strings.TrimSpace(line[idx+1:])
		comma := strings.Index(namePart, ",")
		if comma < 0 {
			continue
		}
		last := strings.TrimSpace(namePart[:comma])
		first := strings.TrimSpace(namePart[comma+1:])
		founders = append(founders, first+" "+last)
	}
	return founders
}

func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return email[at+1:]
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
