package scraper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullProfileHTML = `<!DOCTYPE html>
<html><body>
<main>
  <section class="pv-top-card">
    <h1 class="text-heading-xlarge inline t-24 v-align-middle break-words">Jane&nbsp;Doe</h1>
    <div class="text-body-medium break-words">Senior Backend Engineer at Acme Systems</div>
    <span class="text-body-small inline t-black--light break-words">Lisbon, Portugal</span>
  </section>
  <section data-section="experience" id="experience-section">
    <ul>
      <li class="pvs-list__item">
        <span aria-hidden="true">Senior Backend Engineer</span>
        <span class="visually-hidden">Senior Backend Engineer</span>
        <span aria-hidden="true">Acme Systems</span>
        <span aria-hidden="true">2019 - Present</span>
      </li>
      <li class="pvs-list__item">
        <span aria-hidden="true">Software Engineer</span>
        <span aria-hidden="true">Beta Labs</span>
      </li>
    </ul>
  </section>
  <section id="about" data-section="summary">
    <h2 id="about-heading">About</h2>
    <div class="inline-show-more-text">Distributed systems person. Building data pipelines and storage engines since 2014.</div>
  </section>
</main>
</body></html>`

const minimalProfileHTML = `<html><body>
<main>
  <h1>Sam Carter</h1>
  <div class="text-body-medium">Platform Lead @ Northwind || Ex-Contoso</div>
</main>
</body></html>`

const emptyProfileHTML = `<html><body><main><h1></h1><section></section></main></body></html>`

const errorPageHTML = `<html><body><div class="error-page">Something went wrong</div></body></html>`

func fixturePage(html string) *Page {
	return &Page{
		URL:       "https://www.linkedin.com/in/jane-doe/",
		HTML:      html,
		FetchedAt: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestExtractFullProfile(t *testing.T) {
	page := fixturePage(fullProfileHTML)

	record, err := Extract(page)
	require.NoError(t, err)

	assert.Equal(t, page.URL, record.URL)
	assert.Equal(t, "Jane Doe", record.Name)
	assert.Equal(t, "Senior Backend Engineer at Acme Systems", record.Headline)
	assert.Equal(t, "Lisbon, Portugal", record.Location)
	assert.Equal(t, "Senior Backend Engineer", record.CurrentRole)
	assert.Equal(t, "Acme Systems", record.Company)
	assert.Contains(t, record.About, "Distributed systems person")
	assert.True(t, record.ScrapedAt.Equal(page.FetchedAt))
	assert.True(t, record.HasData())
}

func TestExtractHeadlineFallbackRole(t *testing.T) {
	record, err := Extract(fixturePage(minimalProfileHTML))
	require.NoError(t, err)

	assert.Equal(t, "Sam Carter", record.Name)
	assert.Equal(t, "Platform Lead", record.CurrentRole)
	assert.Equal(t, "Northwind", record.Company)
}

func TestExtractMissingFieldsAreEmpty(t *testing.T) {
	record, err := Extract(fixturePage(emptyProfileHTML))
	require.NoError(t, err)

	assert.Empty(t, record.Name)
	assert.Empty(t, record.Headline)
	assert.Empty(t, record.Location)
	assert.Empty(t, record.CurrentRole)
	assert.False(t, record.HasData())
}

func TestExtractNoProfileStructure(t *testing.T) {
	_, err := Extract(fixturePage(errorPageHTML))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExtraction)
}

func TestExtractLocationSkipsSeparators(t *testing.T) {
	page := fixturePage(`<html><body><main>
		<h1>Alex Kim</h1>
		<span class="text-body-small">•</span>
		<span class="text-body-small">Berlin, Germany</span>
	</main></body></html>`)

	record, err := Extract(page)
	require.NoError(t, err)
	assert.Equal(t, "Berlin, Germany", record.Location)
}

func TestSplitHeadline(t *testing.T) {
	cases := []struct {
		headline string
		role     string
		company  string
	}{
		{"Backend Developer at Acme", "Backend Developer", "Acme"},
		{"SWE Intern @ BigCorp", "SWE Intern", "BigCorp"},
		{"Data Engineer at Snowplow || Ex-Google", "Data Engineer", "Snowplow"},
		{"Builder | Dreamer | Doer", "", ""},
		{"Engineering Intern - Contoso", "Engineering Intern", "Contoso"},
		{"Platform Engineer at Foo at Bar", "Platform Engineer at Foo", "Bar"},
		{"CEO", "", ""},
		{"", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.headline, func(t *testing.T) {
			role, company := splitHeadline(tc.headline)
			assert.Equal(t, tc.role, role)
			assert.Equal(t, tc.company, company)
		})
	}
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Jane Doe", cleanText("  Jane  Doe \n"))
	assert.Equal(t, "", cleanText("   \n\t"))
}
