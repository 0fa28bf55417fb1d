package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var freeMail = []string{"gmail.com", "hotmail.com", "yahoo.com"}

const sampleDetail = `
=== Algemene gegevens ===

Ondernemingsnummer:: 0123.456.789
Naam:: Acme Software Sinds 12 maart 2020
Begindatum:: 12 maart 2020
E-mail:: contact@acme.be
Webadres:: www.acme.be

=== Functies ===

Zaakvoerder: Doe , John
Bestuurder: Roe , Jane

=== Financiële gegevens ===

Jaarvergadering: juni
`

func TestExtractFields(t *testing.T) {
	ex := Extract(sampleDetail, freeMail)

	assert.Equal(t, "Acme Software", ex.Name)
	assert.Equal(t, []string{"John Doe", "Jane Roe"}, ex.Founders)
	assert.Equal(t, "contact@acme.be", ex.Email)
	assert.Equal(t, "www.acme.be", ex.Website)
	assert.Equal(t, 2020, ex.FoundingYear)
}

func TestExtractNameIdempotent(t *testing.T) {
	// Re-running extraction logic on already-clean output changes nothing.
	clean := extractName(sampleDetail)
	assert.Equal(t, "Acme Software", clean)

	again := extractName("Naam:: " + clean)
	assert.Equal(t, clean, again)
}

func TestExtractWebsiteDerivedFromEmail(t *testing.T) {
	detail := `
=== Algemene gegevens ===
Naam:: Acme
E-mail:: hello@acme.be
`
	ex := Extract(detail, freeMail)
	assert.Equal(t, "http://www.acme.be", ex.Website)
}

func TestExtractWebsiteNotDerivedFromFreeMail(t *testing.T) {
	detail := `
=== Algemene gegevens ===
Naam:: Acme
E-mail:: acme@gmail.com
`
	ex := Extract(detail, freeMail)
	assert.Equal(t, "acme@gmail.com", ex.Email)
	assert.Empty(t, ex.Website)
}

func TestExtractWebsiteRequiresDotExtension(t *testing.T) {
	detail := `
=== Algemene gegevens ===
Naam:: Acme
Webadres:: localhost
`
	ex := Extract(detail, freeMail)
	assert.Empty(t, ex.Website)
}

func TestExtractEmailRequiresAtSign(t *testing.T) {
	detail := `
=== Algemene gegevens ===
Naam:: Acme
E-mail:: not-an-email
`
	ex := Extract(detail, freeMail)
	assert.Empty(t, ex.Email)
}

func TestExtractMissingSections(t *testing.T) {
	ex := Extract("=== Algemene gegevens ===\nOndernemingsnummer:: 0123", freeMail)
	assert.Empty(t, ex.Name)
	assert.Empty(t, ex.Founders)
	assert.Zero(t, ex.FoundingYear)
}

func TestExtractFounderSingleName(t *testing.T) {
	// Entries without a comma cannot be split into first/last and are skipped.
	detail := `
=== Functies ===
Zaakvoerder: Plato
=== Einde ===
`
	ex := Extract(detail, freeMail)
	assert.Empty(t, ex.Founders)
}
