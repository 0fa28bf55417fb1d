// Package export writes the enriched company and contact tables as CSV.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadgen-cli/internal/model"
)

var companyHeader = []string{
	"EntityNumber",
	"Name",
	"CBE Info",
	"Email",
	"Website URL",
	"LinkedIn URL",
	"Founders Name",
	"Founding Year",
	"GPT Description",
	"GPT Industry",
	"GPT Client Type",
	"GPT Revenue Model",
	"GPT Region",
}

var contactHeader = []string{
	"companyName",
	"firstName",
	"lastName",
	"email",
	"linkedinUrl",
	"companyDomain",
}

// WriteCompanies writes one row per enriched company.
func WriteCompanies(w io.Writer, recs []model.CompanyRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(companyHeader); err != nil {
		return eris.Wrap(err, "export: write company header")
	}
	for _, rec := range recs {
		year := ""
		if rec.FoundingYear != 0 {
			year = strconv.Itoa(rec.FoundingYear)
		}
		row := []string{
			rec.EntityID,
			rec.Name,
			rec.RawDetail,
			rec.Email,
			rec.Website,
			rec.LinkedInProfile,
			strings.Join(rec.Founders, ", "),
			year,
			rec.Classification.Description,
			rec.Classification.Industry,
			rec.Classification.ClientType,
			rec.Classification.RevenueModel,
			rec.Classification.Region,
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "export: write company row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush companies")
}

// WriteContacts writes one outreach row per contact.
func WriteContacts(w io.Writer, contacts []model.ContactRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(contactHeader); err != nil {
		return eris.Wrap(err, "export: write contact header")
	}
	for _, c := range contacts {
		row := []string{
			c.CompanyName,
			c.FirstName,
			c.LastName,
			c.Email,
			c.LinkedInURL,
			c.CompanyDomain,
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "export: write contact row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush contacts")
}
