package resolve

import "strings"

// founderTerms are role words that suggest a search hit belongs to a company
// founder rather than an employee or namesake. Dutch, French, German and
// English variants cover the languages Belgian profiles are written in.
var founderTerms = []string{
	"entrepreneur",
	"founder",
	"fondateur",
	"ondernemer",
	"oprichter",
	"unternehmer",
	"gründer",
}

// matchScore counts how many founder terms appear in the normalized hit
// text, and reports separately whether the company name itself appears.
// A company-name match outranks any term count.
func matchScore(title, description, companyName string) (terms int, company bool) {
	text := Normalize(title) + Normalize(description)
	for _, term := range founderTerms {
		if strings.Contains(text, Normalize(term)) {
			terms++
		}
	}
	name := Normalize(companyName)
	company = name != "" && strings.Contains(text, name)
	return terms, company
}
