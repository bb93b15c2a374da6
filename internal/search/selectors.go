package search

import "strings"

// siteSelectors locate result blocks on an outlet's own search page
type siteSelectors struct {
	container string
	title     string
	link      string
	snippet   string
}

var directSelectors = map[string]siteSelectors{
	"reuters.com": {
		container: `[data-testid="MediaStoryCard"], .search-result-indiv`,
		title:     `[data-testid="Heading"], .search-result-title`,
		link:      "a",
		snippet:   `[data-testid="Body"], .search-result-content`,
	},
	"apnews.com": {
		container: ".SearchResultsModule-results .PagePromo, .Component-root",
		title:     ".PagePromoContentIcons-text .Link, h1, h2",
		link:      "a",
		snippet:   ".PagePromo-description, .Component-root p",
	},
	"bbc.com": {
		container: ".ssrcss-1v7bkdm-PromoLink, .gs-c-promo",
		title:     ".ssrcss-fasbqe-PromoHeadline, .gs-c-promo-heading__title",
		link:      "a",
		snippet:   ".ssrcss-1f3bvyz-Summary, .gs-c-promo-summary",
	},
	"npr.org": {
		container: ".item, .story-wrap",
		title:     ".title, .story-title",
		link:      "a",
		snippet:   ".teaser, .story-text",
	},
	"cnn.com": {
		container: ".container__item, .cd__content",
		title:     ".container__headline, .cd__headline",
		link:      "a",
		snippet:   ".container__description, .cd__description",
	},
	"foxnews.com": {
		container: ".collection-article-list article, .article",
		title:     ".title, h2, h3",
		link:      "a",
		snippet:   ".dek, .excerpt",
	},
}

var defaultSelectors = siteSelectors{
	container: "article, .article, .post, .story, .news-item, .result",
	title:     "h1, h2, h3, .title, .headline",
	link:      "a",
	snippet:   "p, .excerpt, .summary, .description",
}

func selectorsFor(domain string) siteSelectors {
	if s, ok := directSelectors[strings.TrimPrefix(domain, "www.")]; ok {
		return s
	}
	return defaultSelectors
}
