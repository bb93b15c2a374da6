package search

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var snippetDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`(?i)\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{1,2},?\s+\d{4}`),
	regexp.MustCompile(`(?i)\b\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{4}`),
}

// DateFromSnippet returns the first date-looking substring of a result snippet
func DateFromSnippet(snippet string) string {
	for _, p := range snippetDatePatterns {
		if m := p.FindString(snippet); m != "" {
			return m
		}
	}
	return ""
}

var elementDateSelectors = []string{"time", ".date", ".publish-date", ".timestamp", "[datetime]"}

func dateFromElement(sel *goquery.Selection) string {
	for _, s := range elementDateSelectors {
		el := sel.Find(s).First()
		if el.Length() == 0 {
			continue
		}
		if dt, ok := el.Attr("datetime"); ok && dt != "" {
			return dt
		}
		if text := strings.TrimSpace(el.Text()); text != "" {
			return text
		}
	}
	return ""
}
