package scraper

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"linkedin-scraper/internal/models"
)

// Extract pulls the profile fields out of a captured page. Pure function
// over the HTML snapshot: no network access, no writes. Individual fields
// that cannot be found stay empty strings; ErrExtraction is returned only
// when the page carries no profile structure at all.
func Extract(page *Page) (models.ProfileRecord, error) {
	record := models.ProfileRecord{
		URL:       page.URL,
		ScrapedAt: page.FetchedAt,
	}
	if record.ScrapedAt.IsZero() {
		record.ScrapedAt = time.Now().UTC()
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return record, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	if doc.Find("h1").Length() == 0 && doc.Find("main").Length() == 0 {
		return record, fmt.Errorf("%w: no profile structure on %s", ErrExtraction, page.URL)
	}

	// LinkedIn duplicates most visible text into screen-reader spans,
	// which would double every extracted string.
	doc.Find(".visually-hidden").Remove()

	record.Name = firstText(doc, nameSelectors)
	record.Headline = firstText(doc, headlineSelectors)
	record.Location = locationText(doc)
	record.CurrentRole, record.Company = currentPosition(doc, record.Headline)
	record.About = aboutText(doc)

	return record, nil
}

// firstText returns the first non-empty match across the selector list.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if text := cleanText(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// locationText filters out the bullet separators LinkedIn mixes into the
// small-text elements next to the real location string.
func locationText(doc *goquery.Document) string {
	for _, sel := range locationSelectors {
		var found string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := cleanText(s.Text())
			if text != "" && (!strings.Contains(text, "•") || len(text) > 5) {
				found = text
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// currentPosition resolves the current role and company, preferring the
// first experience entry and falling back to headline parsing.
func currentPosition(doc *goquery.Document, headline string) (role, company string) {
	for _, sel := range experienceSelectors {
		section := doc.Find(sel).First()
		if section.Length() == 0 {
			continue
		}
		lines := experienceLines(section.Find(experienceItemSelector).First())
		if len(lines) >= 2 {
			return lines[0], lines[1]
		}
		if len(lines) == 1 {
			return lines[0], ""
		}
	}
	return splitHeadline(headline)
}

// experienceLines collects the visible text lines of one experience entry.
// Modern profile markup repeats each line inside an aria-hidden span.
func experienceLines(item *goquery.Selection) []string {
	var lines []string
	item.Find(`span[aria-hidden="true"]`).Each(func(_ int, s *goquery.Selection) {
		if text := cleanText(s.Text()); len(text) > 2 {
			lines = append(lines, text)
		}
	})
	if len(lines) == 0 {
		if text := cleanText(item.Text()); len(text) > 2 {
			lines = append(lines, text)
		}
	}
	return lines
}

var jobTitleHints = []string{"Intern", "Developer", "Engineer"}

// splitHeadline derives role and company from headlines shaped like
// "Backend Developer at Acme || Ex-Foo" or "SWE Intern @ Bar".
func splitHeadline(headline string) (role, company string) {
	if headline == "" {
		return "", ""
	}

	head := headline
	if i := strings.Index(head, " || "); i >= 0 {
		head = head[:i]
	} else if i := strings.Index(head, " | "); i >= 0 {
		head = head[:i]
	}
	head = strings.TrimSpace(head)

	for _, sep := range []string{" at ", " @ "} {
		if i := strings.LastIndex(head, sep); i >= 0 {
			return strings.TrimSpace(head[:i]), strings.TrimSpace(head[i+len(sep):])
		}
	}

	// "Engineering Intern - Acme" style, only when the left side looks
	// like a job title.
	for _, hint := range jobTitleHints {
		if strings.Contains(head, hint) {
			if i := strings.Index(head, " - "); i >= 0 {
				return strings.TrimSpace(head[:i]), strings.TrimSpace(head[i+3:])
			}
			break
		}
	}

	return "", ""
}

// aboutText skips section headers and separator fragments so only the real
// summary body survives.
func aboutText(doc *goquery.Document) string {
	for _, sel := range aboutSelectors {
		var found string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := cleanText(s.Text())
			if len(text) > 20 && !strings.Contains(firstRunes(text, 10), "About") {
				found = text
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// cleanText collapses runs of whitespace and strips the non-breaking
// spaces LinkedIn scatters through rendered text.
func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}

func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
