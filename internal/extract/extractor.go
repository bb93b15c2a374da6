// Package extract turns article pages into body text and metadata.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	"github.com/ppiankov/crosscheck/internal/chain"
	"github.com/ppiankov/crosscheck/internal/extract/adapters"
	"github.com/ppiankov/crosscheck/internal/fetch"
	"github.com/ppiankov/crosscheck/internal/logging"
	"github.com/ppiankov/crosscheck/internal/model"
)

// Content stages, most specific first
const (
	StageArticle     = "article"
	StageAdapter     = "adapter"
	StageRegion      = "region"
	StageReadability = "readability"
	StageParagraphs  = "paragraphs"
)

// A container yielding fewer words is a shell, not the article
const minContainerWords = 30

var (
	articleSelectors = []string{
		"article .content", ".article-content", ".post-content", ".entry-content",
		".story-body", ".article-body", ".storytext",
	}
	regionSelectors = []string{"main article", "article", "main", ".content"}

	errTooShort = errors.New("too little text")
	errNoMatch  = errors.New("no matching container")
)

// Getter fetches article pages. *fetch.Fetcher satisfies it.
type Getter interface {
	FetchArticle(ctx context.Context, rawURL string) (*fetch.Result, error)
}

// Extractor fetches pages and pulls out the article body
type Extractor struct {
	getter   Getter
	registry *adapters.Registry
	maxChars int
	logger   *slog.Logger
	now      func() time.Time
}

// New creates an extractor. maxChars <= 0 disables truncation.
func New(getter Getter, maxChars int, logger *slog.Logger) *Extractor {
	return &Extractor{
		getter:   getter,
		registry: adapters.NewRegistry(),
		maxChars: maxChars,
		logger:   logging.OrDefault(logger),
		now:      time.Now,
	}
}

type page struct {
	doc *goquery.Document
	raw string
	url *url.URL
}

// Extract fetches rawURL and extracts its content. It never fails: problems
// yield unavailable content with a zero word count.
func (e *Extractor) Extract(ctx context.Context, rawURL string) model.ScrapedContent {
	res, err := e.getter.FetchArticle(ctx, rawURL)
	if err != nil {
		e.logger.Debug("article fetch failed", "url", rawURL, "error", err)
		return e.Unavailable(rawURL, err)
	}
	return e.Parse(ctx, res.HTML, rawURL)
}

// Parse extracts content from an already fetched page
func (e *Extractor) Parse(ctx context.Context, raw, rawURL string) (content model.ScrapedContent) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("extraction panicked", "url", rawURL, "panic", r)
			content = e.Unavailable(rawURL, fmt.Errorf("extraction panic: %v", r))
		}
	}()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return e.Unavailable(rawURL, fmt.Errorf("parse html: %w", err))
	}
	parsed, _ := url.Parse(rawURL)
	meta := readMetadata(doc)

	body, stage, err := chain.FirstSuccess(ctx, page{doc: doc, raw: raw, url: parsed},
		func(s string) bool { return s != "" },
		chain.Step[page, string]{Name: StageArticle, Run: selectorStage(articleSelectors)},
		chain.Step[page, string]{Name: StageAdapter, Run: e.adapterStage(rawURL)},
		chain.Step[page, string]{Name: StageRegion, Run: selectorStage(regionSelectors)},
		chain.Step[page, string]{Name: StageReadability, Run: readabilityStage},
		chain.Step[page, string]{Name: StageParagraphs, Run: paragraphStage},
	)
	if err != nil {
		e.logger.Debug("no article text found", "url", rawURL, "error", err)
		content = e.Unavailable(rawURL, errors.New("no article text found"))
		if meta.title != "" {
			content.Title = meta.title
		}
		return content
	}

	body = truncate(body, e.maxChars)
	return model.ScrapedContent{
		URL:         rawURL,
		Title:       meta.title,
		BodyText:    body,
		WordCount:   countWords(body),
		Author:      meta.author,
		Description: meta.description,
		PublishDate: meta.publishDate,
		Method:      model.ExtractionPrimary,
		Strategy:    stage,
		ScrapedAt:   e.now(),
	}
}

// Unavailable is the placeholder content for a page that could not be read
func (e *Extractor) Unavailable(rawURL string, err error) model.ScrapedContent {
	c := model.ScrapedContent{
		URL:       rawURL,
		Title:     "Content unavailable",
		BodyText:  fmt.Sprintf("Unable to access content from %s. This may be due to paywall, geo-restrictions, or technical issues.", rawURL),
		Method:    model.ExtractionUnavailable,
		ScrapedAt: e.now(),
	}
	if err != nil {
		c.Error = err.Error()
	}
	return c
}

// selectionText gathers the text blocks of every node in sel, skipping
// nodes nested inside another match
func selectionText(sel *goquery.Selection) string {
	matched := make(map[*html.Node]bool, len(sel.Nodes))
	for _, n := range sel.Nodes {
		matched[n] = true
	}

	var blocks []string
	for _, n := range sel.Nodes {
		if hasAncestorIn(n, matched) {
			continue
		}
		blocks = append(blocks, textBlocks(n)...)
	}
	return strings.Join(blocks, "\n\n")
}

func hasAncestorIn(n *html.Node, set map[*html.Node]bool) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if set[p] {
			return true
		}
	}
	return false
}

func containerText(sel *goquery.Selection) (string, error) {
	text := selectionText(sel)
	if countWords(text) < minContainerWords {
		return "", errTooShort
	}
	return text, nil
}

// selectorStage uses the first selector that matches anything
func selectorStage(selectors []string) func(context.Context, page) (string, error) {
	return func(_ context.Context, p page) (string, error) {
		for _, s := range selectors {
			if found := p.doc.Find(s); found.Length() > 0 {
				return containerText(found)
			}
		}
		return "", errNoMatch
	}
}

func (e *Extractor) adapterStage(rawURL string) func(context.Context, page) (string, error) {
	adapter := e.registry.FindAdapter(rawURL)
	if adapter == nil {
		return nil
	}
	return func(_ context.Context, p page) (string, error) {
		found := adapter.Content(p.doc)
		if found == nil {
			return "", errNoMatch
		}
		return containerText(found)
	}
}

func readabilityStage(_ context.Context, p page) (string, error) {
	article, err := readability.FromReader(strings.NewReader(p.raw), p.url)
	if err != nil {
		return "", fmt.Errorf("readability: %w", err)
	}

	var blocks []string
	for _, line := range strings.Split(article.TextContent, "\n") {
		if line = normalizeSpace(line); len([]rune(line)) > minBlockChars {
			blocks = append(blocks, line)
		}
	}
	text := strings.Join(blocks, "\n\n")
	if countWords(text) < minContainerWords {
		return "", errTooShort
	}
	return text, nil
}

// paragraphStage is the last resort: every paragraph on the page
func paragraphStage(_ context.Context, p page) (string, error) {
	paragraphs := p.doc.Find("p").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return !insideNonContent(s.Nodes[0])
	})
	text := selectionText(paragraphs)
	if text == "" {
		return "", errNoMatch
	}
	return text, nil
}
