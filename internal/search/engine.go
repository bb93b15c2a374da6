// Package search finds candidate articles for a query on one source by trying
// a chain of strategies until one returns valid links.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/ppiankov/crosscheck/internal/chain"
	"github.com/ppiankov/crosscheck/internal/fetch"
	"github.com/ppiankov/crosscheck/internal/logging"
	"github.com/ppiankov/crosscheck/internal/model"
)

// Strategy names reported on candidates
const (
	StrategyGoogle   = "google"
	StrategyDirect   = "direct"
	StrategyBing     = "bing"
	StrategyFeed     = "feed"
	StrategyFallback = "fallback"
)

// Getter fetches a page with retries. *fetch.Fetcher satisfies it.
type Getter interface {
	FetchWithRetry(ctx context.Context, rawURL string) (*fetch.Result, error)
}

// Result is the outcome of searching one source
type Result struct {
	Candidates []model.ArticleCandidate
	Strategy   string
	Synthetic  bool
	Err        error // Why every strategy failed, set only when Synthetic
}

type request struct {
	query  string
	source model.Source
}

// Engine runs the strategy chain. Safe for concurrent use.
type Engine struct {
	getter Getter
	cfg    model.SearchConfig
	logger *slog.Logger
	steps  []chain.Step[request, []model.ArticleCandidate]
}

// NewEngine creates a search engine with the strategies enabled in cfg
func NewEngine(getter Getter, cfg model.SearchConfig, logger *slog.Logger) *Engine {
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = 5
	}

	e := &Engine{
		getter: getter,
		cfg:    cfg,
		logger: logging.OrDefault(logger),
	}

	if cfg.EnableGoogle {
		e.steps = append(e.steps, e.step(StrategyGoogle, e.searchGoogle))
	}
	if cfg.EnableDirect {
		e.steps = append(e.steps, e.step(StrategyDirect, e.searchDirect))
	}
	if cfg.EnableBing {
		e.steps = append(e.steps, e.step(StrategyBing, e.searchBing))
	}
	if cfg.EnableFeeds {
		e.steps = append(e.steps, e.step(StrategyFeed, e.searchFeed))
	}
	return e
}

// errSkipped marks a strategy that does not apply to a source
var errSkipped = errors.New("not applicable")

// step bounds a strategy with the per-call timeout and treats 4xx as "no results"
func (e *Engine) step(name string, run func(ctx context.Context, req request) ([]model.ArticleCandidate, error)) chain.Step[request, []model.ArticleCandidate] {
	return chain.Step[request, []model.ArticleCandidate]{
		Name: name,
		Run: func(ctx context.Context, req request) ([]model.ArticleCandidate, error) {
			if e.cfg.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
				defer cancel()
			}

			out, err := run(ctx, req)
			if err != nil && fetch.IsClientError(err) {
				return nil, nil
			}
			for i := range out {
				out[i].SourceName = req.source.Name
				out[i].Strategy = name
			}
			return out, err
		},
	}
}

// Search returns candidates from the first strategy that yields any.
// When all fail it returns one synthetic candidate for the source's search page.
func (e *Engine) Search(ctx context.Context, query string, source model.Source) Result {
	req := request{query: query, source: source}
	nonEmpty := func(c []model.ArticleCandidate) bool { return len(c) > 0 }

	candidates, strategy, err := chain.FirstSuccess(ctx, req, nonEmpty, e.steps...)
	if err == nil {
		e.logger.Debug("search succeeded",
			"source", source.Name, "strategy", strategy, "candidates", len(candidates))
		return Result{Candidates: candidates, Strategy: strategy}
	}

	e.logger.Debug("all search strategies failed", "source", source.Name, "query", query, "error", err)
	return Result{
		Candidates: []model.ArticleCandidate{e.Synthetic(query, source)},
		Strategy:   StrategyFallback,
		Synthetic:  true,
		Err:        err,
	}
}

// Synthetic builds the placeholder candidate pointing at the source's search page
func (e *Engine) Synthetic(query string, source model.Source) model.ArticleCandidate {
	return model.ArticleCandidate{
		Title:      fmt.Sprintf("%s may have coverage of this topic", source.Name),
		URL:        fmt.Sprintf("https://%s/search?q=%s", source.Domain, url.QueryEscape(query)),
		Snippet:    e.cfg.SyntheticSnippet,
		SourceName: source.Name,
		Strategy:   StrategyFallback,
		Synthetic:  true,
	}
}

// accept appends a candidate when it passes the filters and the cap allows
func (e *Engine) accept(out []model.ArticleCandidate, c model.ArticleCandidate, domain string) []model.ArticleCandidate {
	if len(out) >= e.cfg.MaxCandidates {
		return out
	}
	c.Title = collapseSpace(c.Title)
	c.Snippet = collapseSpace(c.Snippet)
	if c.Title == "" || !IsValidArticleURL(c.URL) || !onDomain(c.URL, domain) {
		return out
	}
	for _, existing := range out {
		if existing.URL == c.URL {
			return out
		}
	}
	if c.PublishDateGuess == "" {
		c.PublishDateGuess = DateFromSnippet(c.Snippet)
	}
	return append(out, c)
}

func siteQuery(query string, source model.Source) string {
	return "site:" + source.Domain + " " + query
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
