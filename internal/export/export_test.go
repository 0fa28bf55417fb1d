package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/internal/model"
)

func TestWriteCompanies(t *testing.T) {
	var buf bytes.Buffer
	recs := []model.CompanyRecord{
		{
			EntityID:        "0123.456.789",
			Name:            "Acme Software",
			RawDetail:       "Naam:: Acme Software",
			Email:           "contact@acme.be",
			Website:         "https://www.acme.be",
			LinkedInProfile: "https://be.linkedin.com/in/jan",
			Founders:        []string{"Jan Peeters", "Marie Dupont"},
			FoundingYear:    2021,
			Classification: model.Classification{
				Description:  "Billing automation.",
				Industry:     "Fintech",
				ClientType:   "B2B",
				RevenueModel: "Subscription",
				Region:       "Benelux",
			},
		},
		{
			EntityID:       "0987.654.321",
			Name:           "Beta Labs",
			Classification: model.SentinelClassification(model.SentinelNoData),
		},
	}

	require.NoError(t, WriteCompanies(&buf, recs))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, companyHeader, rows[0])
	assert.Equal(t, []string{
		"0123.456.789", "Acme Software", "Naam:: Acme Software",
		"contact@acme.be", "https://www.acme.be", "https://be.linkedin.com/in/jan",
		"Jan Peeters, Marie Dupont", "2021",
		"Billing automation.", "Fintech", "B2B", "Subscription", "Benelux",
	}, rows[1])

	// Absent year stays empty, sentinel fills the attribute columns.
	assert.Equal(t, "", rows[2][7])
	assert.Equal(t, "No Data", rows[2][8])
}

func TestWriteContacts(t *testing.T) {
	var buf bytes.Buffer
	contacts := []model.ContactRecord{
		{
			CompanyName:   "Acme Software",
			FirstName:     "Jan",
			LastName:      "Peeters",
			Email:         "jan@acme.be",
			LinkedInURL:   "https://be.linkedin.com/in/jan",
			CompanyDomain: "https://www.acme.be",
		},
	}

	require.NoError(t, WriteContacts(&buf, contacts))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, contactHeader, rows[0])
	assert.Equal(t, []string{
		"Acme Software", "Jan", "Peeters", "jan@acme.be",
		"https://be.linkedin.com/in/jan", "https://www.acme.be",
	}, rows[1])
}

func TestWriteCompaniesEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCompanies(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
