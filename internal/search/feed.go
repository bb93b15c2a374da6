package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/ppiankov/crosscheck/internal/model"
)

// searchFeed scans the source's RSS or Atom feed for items sharing query terms
func (e *Engine) searchFeed(ctx context.Context, req request) ([]model.ArticleCandidate, error) {
	if req.source.FeedURL == "" {
		return nil, errSkipped
	}

	res, err := e.getter.FetchWithRetry(ctx, req.source.FeedURL)
	if err != nil {
		return nil, err
	}
	feed, err := gofeed.NewParser().ParseString(res.HTML)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return e.matchFeed(feed, req), nil
}

func (e *Engine) matchFeed(feed *gofeed.Feed, req request) []model.ArticleCandidate {
	tokens := queryTokens(req.query)
	need := min(2, len(tokens))
	if need == 0 {
		return nil
	}

	var out []model.ArticleCandidate
	for _, item := range feed.Items {
		desc := stripHTML(item.Description)
		if overlap(tokens, item.Title+" "+desc) < need {
			continue
		}

		var published string
		if item.PublishedParsed != nil {
			published = item.PublishedParsed.Format(time.DateOnly)
		}
		out = e.accept(out, model.ArticleCandidate{
			Title:            item.Title,
			URL:              item.Link,
			Snippet:          desc,
			PublishDateGuess: published,
		}, req.source.Domain)
	}
	return out
}

func queryTokens(query string) []string {
	var tokens []string
	seen := map[string]bool{}
	for _, f := range strings.Fields(strings.ToLower(query)) {
		f = strings.Trim(f, `"'.,:;!?()`)
		if len(f) < 3 || seen[f] {
			continue
		}
		seen[f] = true
		tokens = append(tokens, f)
	}
	return tokens
}

func overlap(tokens []string, text string) int {
	text = strings.ToLower(text)
	n := 0
	for _, t := range tokens {
		if strings.Contains(text, t) {
			n++
		}
	}
	return n
}

func stripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return collapseSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return collapseSpace(s)
	}
	return collapseSpace(doc.Text())
}
