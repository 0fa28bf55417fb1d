package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const landingPage = `<html>
<head>
<title>Acme Software</title>
<meta name="description" content="Billing automation for accountants.">
</head>
<body>
<nav><a href="/en/pricing">Pricing</a></nav>
<h1>Automate your invoicing</h1>
<p>Short.</p>
<p>Acme turns bank statements into draft invoices automatically.</p>
<h2>Features</h2>
<ul>
<li>Bank sync</li>
<li>Draft <strong>invoices</strong></li>
</ul>
<p>Works for <em>every</em> accounting practice in Belgium today.</p>
<a href="https://www.acme.be/en/product">Product</a>
<a href="https://www.acme.be/">Home</a>
<a href="https://www.acme.be">Self</a>
<a href="https://other.example.com/about">Elsewhere</a>
<a href="/en/product">Relative product</a>
</body>
</html>`

func TestStructuredText(t *testing.T) {
	got := StructuredText([]byte(landingPage))

	want := "H1: Acme Software\n" +
		"DESCRIPTION: Billing automation for accountants.\n" +
		"H1: Automate your invoicing\n" +
		"PARAGRAPH: Acme turns bank statements into draft invoices automatically.\n" +
		"H2: Features\n" +
		"LIST:\n" +
		"- Bank sync\n" +
		"- Draft invoices\n" +
		"**invoices**\n" +
		"PARAGRAPH: Works for every accounting practice in Belgium today.\n" +
		"*every*"
	assert.Equal(t, want, got)
}

func TestStructuredTextEmptyPage(t *testing.T) {
	assert.Equal(t, "", StructuredText([]byte("<html><head></head><body></body></html>")))
}

func TestCollectLinks(t *testing.T) {
	got := CollectLinks([]byte(landingPage), "https://www.acme.be")

	assert.Equal(t, []string{
		"https://www.acme.be/en/pricing",
		"https://www.acme.be/en/product",
	}, got)
}

func TestCollectLinksExcludesSelfAndRoot(t *testing.T) {
	page := `<body>
<a href="https://www.acme.be">Self</a>
<a href="https://www.acme.be/">Root</a>
<a href="https://www.acme.be/about">About</a>
</body>`
	got := CollectLinks([]byte(page), "https://www.acme.be")
	assert.Equal(t, []string{"https://www.acme.be/about"}, got)
}
