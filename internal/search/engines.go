package search

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ppiankov/crosscheck/internal/model"
)

func (e *Engine) fetchDocument(ctx context.Context, rawURL string) (*goquery.Document, error) {
	res, err := e.getter.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.HTML))
	if err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return doc, nil
}

func (e *Engine) searchGoogle(ctx context.Context, req request) ([]model.ArticleCandidate, error) {
	u := fmt.Sprintf("%s?q=%s&num=10", e.cfg.GoogleURL, url.QueryEscape(siteQuery(req.query, req.source)))
	doc, err := e.fetchDocument(ctx, u)
	if err != nil {
		return nil, err
	}
	return e.parseGoogle(doc, req.source), nil
}

func (e *Engine) parseGoogle(doc *goquery.Document, source model.Source) []model.ArticleCandidate {
	var out []model.ArticleCandidate
	doc.Find(".g").Each(func(_ int, block *goquery.Selection) {
		href, _ := block.Find("a[href]").First().Attr("href")
		out = e.accept(out, model.ArticleCandidate{
			Title:   block.Find("h3").First().Text(),
			URL:     resolveLink(unwrapRedirect(href), source.Domain),
			Snippet: block.Find(".VwiC3b, .s3v9rd, .st").First().Text(),
		}, source.Domain)
	})
	return out
}

func (e *Engine) searchBing(ctx context.Context, req request) ([]model.ArticleCandidate, error) {
	u := fmt.Sprintf("%s?q=%s&count=10", e.cfg.BingURL, url.QueryEscape(siteQuery(req.query, req.source)))
	doc, err := e.fetchDocument(ctx, u)
	if err != nil {
		return nil, err
	}
	return e.parseBing(doc, req.source), nil
}

func (e *Engine) parseBing(doc *goquery.Document, source model.Source) []model.ArticleCandidate {
	var out []model.ArticleCandidate
	doc.Find(".b_algo").Each(func(_ int, block *goquery.Selection) {
		link := block.Find("h2 a").First()
		href, _ := link.Attr("href")
		out = e.accept(out, model.ArticleCandidate{
			Title:   link.Text(),
			URL:     resolveLink(href, source.Domain),
			Snippet: block.Find(".b_caption p").First().Text(),
		}, source.Domain)
	})
	return out
}

func (e *Engine) searchDirect(ctx context.Context, req request) ([]model.ArticleCandidate, error) {
	if req.source.SearchURL == "" {
		return nil, errSkipped
	}
	doc, err := e.fetchDocument(ctx, req.source.SearchURL+url.QueryEscape(req.query))
	if err != nil {
		return nil, err
	}
	return e.parseDirect(doc, req.source), nil
}

func (e *Engine) parseDirect(doc *goquery.Document, source model.Source) []model.ArticleCandidate {
	sel := selectorsFor(source.Domain)

	var out []model.ArticleCandidate
	doc.Find(sel.container).Each(func(_ int, block *goquery.Selection) {
		href, _ := block.Find(sel.link).First().Attr("href")
		out = e.accept(out, model.ArticleCandidate{
			Title:            block.Find(sel.title).First().Text(),
			URL:              resolveLink(href, source.Domain),
			Snippet:          block.Find(sel.snippet).First().Text(),
			PublishDateGuess: dateFromElement(block),
		}, source.Domain)
	})
	return out
}
