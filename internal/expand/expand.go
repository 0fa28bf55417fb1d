// Package expand fans one company record out into one contact record per
// person named in its people field. Pure transformation, no I/O.
package expand

import (
	"regexp"
	"strings"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// entryRe splits a person entry into a name part and an optional
// bracketed email override, e.g. "Jan Peeters <jan@acme.be>".
var entryRe = regexp.MustCompile(`^(.*?)\s*<([^<>]+)>$`)

// person is one parsed entry from the people field.
type person struct {
	first string
	last  string
	email string // override, empty means use the company email
}

// Contacts expands a company record into contact records. Entries in the
// people field are separated by ";". An override email containing "info" is
// a generic mailbox and falls back to the company email.
func Contacts(rec model.CompanyRecord) []model.ContactRecord {
	people := parsePeople(rec.People)
	if len(people) == 0 {
		return nil
	}
	contacts := make([]model.ContactRecord, 0, len(people))
	for _, p := range people {
		email := p.email
		if email == "" {
			email = rec.Email
		}
		contacts = append(contacts, model.ContactRecord{
			EntityID:      rec.EntityID,
			CompanyName:   rec.Name,
			FirstName:     p.first,
			LastName:      p.last,
			Email:         email,
			LinkedInURL:   rec.LinkedInProfile,
			CompanyDomain: rec.Website,
		})
	}
	return contacts
}

func parsePeople(field string) []person {
	var people []person
	for _, entry := range strings.Split(field, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name := entry
		email := ""
		if m := entryRe.FindStringSubmatch(entry); m != nil {
			name = m[1]
			email = strings.TrimSpace(m[2])
		}
		if strings.Contains(strings.ToLower(email), "info") {
			email = ""
		}
		tokens := strings.Fields(name)
		if len(tokens) == 0 {
			continue
		}
		people = append(people, person{
			first: tokens[0],
			last:  strings.Join(tokens[1:], " "),
			email: email,
		})
	}
	return people
}
