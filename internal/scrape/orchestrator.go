// Package scrape fans search-and-extract units out over sources and queries.
package scrape

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/ppiankov/crosscheck/internal/logging"
	"github.com/ppiankov/crosscheck/internal/model"
	"github.com/ppiankov/crosscheck/internal/search"
	"github.com/ppiankov/crosscheck/internal/worker"
)

// Pool size bounds
const (
	MinWorkers = 5
	MaxWorkers = 8
)

// Candidates tried per unit before settling for a snippet
const maxAttempts = 2

var errNoContent = errors.New("no usable content")

// Searcher finds article candidates. *search.Engine satisfies it.
type Searcher interface {
	Search(ctx context.Context, query string, source model.Source) search.Result
}

// Extractor reads article content. *extract.Extractor satisfies it.
type Extractor interface {
	Extract(ctx context.Context, rawURL string) model.ScrapedContent
}

// Orchestrator runs units concurrently and shapes the settled results
type Orchestrator struct {
	searcher  Searcher
	extractor Extractor
	cfg       model.ScrapeConfig
	logger    *slog.Logger
}

// New creates an orchestrator
func New(searcher Searcher, extractor Extractor, cfg model.ScrapeConfig, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		searcher:  searcher,
		extractor: extractor,
		cfg:       cfg,
		logger:    logging.OrDefault(logger),
	}
}

// Workers returns the configured worker count clamped to the pool bounds
func (o *Orchestrator) Workers() int {
	return min(max(o.cfg.Workers, MinWorkers), MaxWorkers)
}

// Run executes every planned unit and waits for all of them to settle. Failed
// units are logged and dropped; the rest are deduped by URL, ranked and capped.
func (o *Orchestrator) Run(ctx context.Context, queries []model.SearchQuery, sources []model.Source) []model.ScrapeUnit {
	planned := Plan(queries, sources, o.cfg.QueriesPerSource, o.cfg.MaxOperations)
	if len(planned) == 0 {
		return nil
	}

	o.logger.Info("scraping", "units", len(planned), "sources", len(sources), "workers", o.Workers())

	pool := worker.NewPool(ctx, o.Workers())
	pool.Start()
	for _, p := range planned {
		pool.Submit(&unitJob{planned: p, o: o})
	}
	results := pool.Wait()

	var settled []model.ScrapeUnit
	failed := 0
	for _, r := range results {
		if err := r.GetError(); err != nil {
			failed++
			ur, _ := r.(*unitResult)
			if ur != nil {
				o.logger.Warn("unit failed",
					"source", ur.planned.Source.Name, "query", ur.planned.Query.Text, "error", err)
			} else {
				o.logger.Warn("unit failed", "error", err)
			}
			continue
		}
		settled = append(settled, r.(*unitResult).unit)
	}

	shaped := Shape(settled, o.cfg.MaxResults)
	o.logger.Info("scraping settled", "kept", len(shaped), "succeeded", len(settled), "failed", failed)
	return shaped
}

type unitJob struct {
	planned Planned
	o       *Orchestrator
}

type unitResult struct {
	planned Planned
	unit    model.ScrapeUnit
	err     error
}

func (r *unitResult) GetError() error { return r.err }

func (j *unitJob) Execute(ctx context.Context) worker.Result {
	if j.o.cfg.UnitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.o.cfg.UnitTimeout)
		defer cancel()
	}

	start := time.Now()
	unit, err := j.o.runUnit(ctx, j.planned)
	unit.Duration = time.Since(start)
	return &unitResult{planned: j.planned, unit: unit, err: err}
}

func (o *Orchestrator) runUnit(ctx context.Context, p Planned) (model.ScrapeUnit, error) {
	if err := ctx.Err(); err != nil {
		return model.ScrapeUnit{}, err
	}

	unit := model.ScrapeUnit{Source: p.Source, Query: p.Query}
	res := o.searcher.Search(ctx, p.Query.Text, p.Source)
	if len(res.Candidates) == 0 {
		return unit, fmt.Errorf("search: %w", errNoContent)
	}

	if res.Synthetic {
		unit.Article = res.Candidates[0]
		unit.Content = snippetContent(unit.Article)
		unit.Unconfirmed = true
		return unit, nil
	}

	for i, c := range res.Candidates {
		if i >= maxAttempts {
			break
		}
		content := o.extractor.Extract(ctx, c.URL)
		if content.Usable() {
			unit.Article = c
			unit.Content = content
			return unit, nil
		}
		if ctx.Err() != nil {
			break
		}
	}

	for _, c := range res.Candidates {
		if c.Snippet != "" {
			unit.Article = c
			unit.Content = snippetContent(c)
			return unit, nil
		}
	}
	return unit, fmt.Errorf("%s: %w", res.Candidates[0].URL, errNoContent)
}

// snippetContent stands in for an article that could not be read
func snippetContent(c model.ArticleCandidate) model.ScrapedContent {
	method := model.ExtractionFallbackSnippet
	words := len(strings.Fields(c.Snippet))
	if words == 0 {
		method = model.ExtractionUnavailable
	}
	return model.ScrapedContent{
		URL:         c.URL,
		Title:       c.Title,
		BodyText:    c.Snippet,
		WordCount:   words,
		PublishDate: c.PublishDateGuess,
		Method:      method,
		Strategy:    c.Strategy,
		ScrapedAt:   time.Now(),
	}
}

func quality(u model.ScrapeUnit) int {
	switch {
	case u.Unconfirmed:
		return 2
	case u.Content.Method == model.ExtractionPrimary:
		return 0
	default:
		return 1
	}
}

// Shape drops duplicate URLs, ranks units by content quality then source
// credibility, and caps the list. Equal units keep completion order.
func Shape(units []model.ScrapeUnit, maxResults int) []model.ScrapeUnit {
	seen := make(map[string]bool, len(units))
	kept := make([]model.ScrapeUnit, 0, len(units))
	for _, u := range units {
		if u.Content.BodyText == "" {
			continue
		}
		if !u.Unconfirmed {
			if seen[u.Article.URL] {
				continue
			}
			seen[u.Article.URL] = true
		}
		kept = append(kept, u)
	}

	slices.SortStableFunc(kept, func(a, b model.ScrapeUnit) int {
		if c := cmp.Compare(quality(a), quality(b)); c != 0 {
			return c
		}
		return cmp.Compare(b.Source.CredibilityScore, a.Source.CredibilityScore)
	})

	if maxResults > 0 && len(kept) > maxResults {
		kept = kept[:maxResults]
	}
	return kept
}
