// Package pipeline coordinates one fact-check request from raw claim to formatted
// response: claim analysis, source selection, query generation, scraping, per-source
// analysis, external fact checks, aggregation and formatting.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ppiankov/crosscheck/internal/analyze"
	"github.com/ppiankov/crosscheck/internal/cache"
	"github.com/ppiankov/crosscheck/internal/catalog"
	"github.com/ppiankov/crosscheck/internal/claim"
	"github.com/ppiankov/crosscheck/internal/extract"
	"github.com/ppiankov/crosscheck/internal/factcheck"
	"github.com/ppiankov/crosscheck/internal/fetch"
	"github.com/ppiankov/crosscheck/internal/llm"
	"github.com/ppiankov/crosscheck/internal/logging"
	"github.com/ppiankov/crosscheck/internal/model"
	"github.com/ppiankov/crosscheck/internal/scrape"
	"github.com/ppiankov/crosscheck/internal/search"
	"github.com/ppiankov/crosscheck/internal/verdict"
	"github.com/ppiankov/crosscheck/internal/worker"
)

const (
	degradedConfidence = 30
	cacheCleanup       = 10 * time.Minute
)

// Scraper runs search-and-extract units. *scrape.Orchestrator satisfies it.
type Scraper interface {
	Run(ctx context.Context, queries []model.SearchQuery, sources []model.Source) []model.ScrapeUnit
}

// FactChecker queries external fact-check services. *factcheck.Client satisfies it.
type FactChecker interface {
	Check(ctx context.Context, claim string) factcheck.Report
	GoogleEnabled() bool
	ClaimBusterEnabled() bool
}

// Engine analyzes claims end to end. Safe for concurrent use.
type Engine struct {
	cfg        *model.Config
	catalog    *catalog.Catalog
	claims     *claim.Analyzer
	scraper    Scraper
	analyzer   *analyze.Analyzer
	aggregator *verdict.Aggregator
	facts      FactChecker
	cache      cache.Cache
	logger     *slog.Logger

	provider    llm.Provider
	providerSet bool
	random      verdict.RandomSource
	now         func() time.Time
	newID       func() string
}

// Option overrides a collaborator the engine would otherwise build from config
type Option func(*Engine)

// WithLogger sets the logger handed to every component
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithCatalog replaces the built-in source catalog
func WithCatalog(c *catalog.Catalog) Option {
	return func(e *Engine) { e.catalog = c }
}

// WithScraper replaces the search-and-extract orchestrator
func WithScraper(s Scraper) Option {
	return func(e *Engine) { e.scraper = s }
}

// WithProvider replaces the configured LLM provider. nil disables AI analysis.
func WithProvider(p llm.Provider) Option {
	return func(e *Engine) {
		e.provider = p
		e.providerSet = true
	}
}

// WithFactChecker replaces the external fact-check client
func WithFactChecker(f FactChecker) Option {
	return func(e *Engine) { e.facts = f }
}

// WithCache replaces the memory cache shared by pages, reviews and responses
func WithCache(c cache.Cache) Option {
	return func(e *Engine) { e.cache = c }
}

// WithRandom fixes the summary template choice
func WithRandom(r verdict.RandomSource) Option {
	return func(e *Engine) { e.random = r }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDs replaces the result ID generator
func WithIDs(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// New builds an engine and every collaborator from cfg. It fails only when the
// configured LLM provider cannot be created.
func New(cfg *model.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logging.OrDefault(e.logger)
	if e.now == nil {
		e.now = time.Now
	}
	if e.newID == nil {
		e.newID = newUUID
	}
	if e.catalog == nil {
		e.catalog = catalog.Default()
	}
	if e.cache == nil && cfg.Cache.Enabled {
		e.cache = cache.NewMemoryCache(cfg.Cache.PageTTL, cacheCleanup)
	}

	if e.scraper == nil {
		fetcher := newFetcher(cfg, e.cache, e.logger)
		searcher := search.NewEngine(fetcher, cfg.Search, e.logger)
		extractor := extract.New(fetcher, cfg.Scrape.MaxBodyChars, e.logger)
		e.scraper = scrape.New(searcher, extractor, cfg.Scrape, e.logger)
	}

	if !e.providerSet {
		provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
		if err != nil {
			return nil, fmt.Errorf("llm provider: %w", err)
		}
		e.provider = provider
	}

	if e.facts == nil {
		fcOpts := []factcheck.Option{factcheck.WithLogger(e.logger)}
		if e.cache != nil {
			fcOpts = append(fcOpts, factcheck.WithCache(e.cache, cfg.Cache.FactTTL))
		}
		e.facts = factcheck.New(cfg.FactCheck, cfg.HTTP, fcOpts...)
	}

	e.claims = claim.NewAnalyzer(e.logger)
	e.analyzer = analyze.New(e.provider, cfg.Analysis, e.logger)

	aggOpts := []verdict.Option{verdict.WithLogger(e.logger)}
	if e.random != nil {
		aggOpts = append(aggOpts, verdict.WithRandom(e.random))
	}
	e.aggregator = verdict.New(cfg.Verdict, aggOpts...)

	return e, nil
}

func newFetcher(cfg *model.Config, store cache.Cache, logger *slog.Logger) *fetch.Fetcher {
	opts := []fetch.Option{fetch.WithLogger(logger)}
	if store != nil {
		opts = append(opts, fetch.WithCache(store, cfg.Cache.PageTTL))
	}
	if cfg.HTTP.DomainRate > 0 {
		opts = append(opts, fetch.WithLimiter(worker.NewLimiter(cfg.HTTP.DomainRate, cfg.HTTP.DomainBurst)))
	}
	if cfg.HTTP.RespectRobots {
		opts = append(opts, fetch.WithRobots(fetch.NewRobotsChecker(cfg.HTTP.RobotsAgent, cfg.HTTP.UserAgent, cfg.HTTP.Timeout)))
	}
	return fetch.New(cfg.HTTP, opts...)
}

// Catalog returns the source catalog the engine selects from
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Status describes which optional collaborators are active
type Status struct {
	AIEnabled       bool   `json:"aiEnabled"`
	Provider        string `json:"provider,omitempty"`
	GoogleFactCheck bool   `json:"googleFactCheck"`
	ClaimBuster     bool   `json:"claimBuster"`

	// Cache is nil when the engine's cache does not report usage
	Cache *cache.Stats `json:"cache,omitempty"`
}

// Status reports the active collaborators
func (e *Engine) Status() Status {
	s := Status{
		AIEnabled:       e.analyzer.AIEnabled(),
		GoogleFactCheck: e.facts.GoogleEnabled(),
		ClaimBuster:     e.facts.ClaimBusterEnabled(),
	}
	if e.provider != nil {
		s.Provider = e.provider.Name()
	}
	if st, ok := e.cache.(interface{ Stats() cache.Stats }); ok {
		stats := st.Stats()
		s.Cache = &stats
	}
	return s
}

// Provider returns the LLM provider, or nil when AI analysis is off
func (e *Engine) Provider() llm.Provider {
	return e.provider
}

// SelectSources returns the balanced selection, plus fringe sources when enabled
func (e *Engine) SelectSources() []model.Source {
	per := e.cfg.Sources.MaxPerCategory
	sources := e.catalog.BalancedSelection(per)
	if e.cfg.Sources.IncludeFringe {
		fringe := e.catalog.ByCategory(model.CategoryFringe)
		if per > 0 && len(fringe) > per {
			fringe = fringe[:per]
		}
		sources = append(sources, fringe...)
	}
	return sources
}

// AnalyzeClaim runs the full pipeline. It never fails: an empty or oversized
// claim yields an ERROR response, no coverage yields a low-confidence UNVERIFIED
// response, and a panic anywhere yields a degraded UNVERIFIED response.
func (e *Engine) AnalyzeClaim(ctx context.Context, raw string) (resp *model.AnalyzeResponse) {
	start := e.now()
	claimText := strings.TrimSpace(raw)

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("claim analysis failed", "panic", r)
			resp = e.degraded(claimText, fmt.Errorf("%v", r))
		}
		if resp != nil {
			resp.AnalysisTime = e.now().Sub(start).Milliseconds()
		}
	}()

	if claimText == "" {
		return e.invalid("", "No claim was provided for analysis.",
			"🤔 EMPTY CLAIM: We can't fact-check thin air. Please provide an actual claim to analyze. #FactCheck")
	}
	if limit := e.cfg.Server.MaxClaimLength; limit > 0 && utf8.RuneCountInString(claimText) > limit {
		return e.invalid(claimText, fmt.Sprintf("The claim is longer than %d characters. Please shorten it.", limit),
			fmt.Sprintf("📏 TOO LONG: Claims are limited to %d characters. Brevity is the soul of fact-checking. #FactCheck", limit))
	}

	key := cache.Key(cache.NamespaceResponse, normalizeClaim(claimText))
	var cached model.AnalyzeResponse
	if cache.GetJSON(e.cache, key, &cached) {
		e.logger.Debug("response cache hit", "claim", claimText)
		return &cached
	}

	resp, cacheable := e.run(ctx, claimText)
	if cacheable {
		if err := cache.SetJSON(e.cache, key, resp, e.cfg.Cache.ResponseTTL); err != nil {
			e.logger.Debug("response cache write failed", "error", err)
		}
	}
	return resp
}

// run does the work. The response is cacheable only when the run finished
// within its deadline and at least one source was actually read or reviewed.
func (e *Engine) run(ctx context.Context, claimText string) (*model.AnalyzeResponse, bool) {
	if e.cfg.Engine.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Engine.Deadline)
		defer cancel()
	}

	ca := e.claims.Analyze(claimText)
	sources := e.SelectSources()
	queries := GenerateQueries(ca, e.now())
	e.logger.Info("analyzing claim",
		"type", ca.ClaimType,
		"keywords", len(ca.Keywords),
		"sources", len(sources),
		"queries", len(queries),
	)

	reports := make(chan factcheck.Report, 1)
	go func() {
		var report factcheck.Report
		defer func() {
			if r := recover(); r != nil {
				e.logger.Error("external fact check failed", "panic", r)
			}
			reports <- report
		}()
		report = e.facts.Check(ctx, claimText)
	}()

	units := e.scraper.Run(ctx, queries, sources)
	report := <-reports

	analyses := e.analyzer.AnalyzeAll(ctx, ca, units)
	analyses = append(analyses, report.Reviews...)
	complete := ctx.Err() == nil
	if !complete {
		e.logger.Warn("deadline reached, aggregating partial results", "analyses", len(analyses))
	}

	if len(analyses) == 0 {
		return e.noCoverage(claimText, ca, len(sources), report), false
	}

	v := e.aggregator.Aggregate(claimText, ca, analyses)
	v.Insights = append(v.Insights, report.Insights()...)

	e.logger.Info("claim analyzed",
		"overall", v.Overall,
		"confidence", v.Confidence,
		"units", len(units),
		"reviews", len(report.Reviews),
	)
	return e.format(claimText, ca, v, analyses), complete && hasEvidence(analyses)
}

// hasEvidence reports whether any analysis rests on content that was read.
// Unconfirmed placeholders from failed searches do not count.
func hasEvidence(analyses []model.SourceAnalysis) bool {
	for _, a := range analyses {
		switch a.Method {
		case model.MethodAI, model.MethodHeuristic, model.MethodExternal:
			return true
		}
	}
	return false
}

// invalid is the in-band ERROR response for input that cannot be analyzed
func (e *Engine) invalid(claimText, reason, summary string) *model.AnalyzeResponse {
	return &model.AnalyzeResponse{
		Claim:            claimText,
		OverallRating:    model.VerdictError,
		Confidence:       0,
		TweetableSummary: summary,
		Results:          []model.FactCheckResult{e.explanatory("Input Validator", reason, 50)},
	}
}

// noCoverage answers when no source and no external service returned anything
func (e *Engine) noCoverage(claimText string, ca model.ClaimAnalysis, sources int, report factcheck.Report) *model.AnalyzeResponse {
	conf := e.cfg.Verdict.MinConfidence
	summary := fmt.Sprintf("%s - UNVERIFIED. None of the %d sources we searched could be reached, so the jury is still out. (%d%% confidence) #FactCheck",
		verdict.ShortClaim(claimText), sources, conf)

	return &model.AnalyzeResponse{
		Claim:            claimText,
		OverallRating:    model.VerdictUnverified,
		Confidence:       conf,
		TweetableSummary: summary,
		Results: []model.FactCheckResult{
			e.explanatory("Source Coverage",
				fmt.Sprintf("No articles could be retrieved from the %d selected sources. The claim could not be checked against news coverage.", sources), 50),
		},
		Insights:  append([]string{"No source coverage could be retrieved for this claim"}, report.Insights()...),
		ClaimType: string(ca.ClaimType),
	}
}

// degraded is the DEGRADED_FALLBACK response for an unexpected failure
func (e *Engine) degraded(claimText string, err error) *model.AnalyzeResponse {
	return &model.AnalyzeResponse{
		Claim:            claimText,
		OverallRating:    model.VerdictUnverified,
		Confidence:       degradedConfidence,
		TweetableSummary: fmt.Sprintf("%s - UNVERIFIED due to technical issues. Our fact-checking engine hit a snag. (%d%% confidence) #FactCheck", verdict.ShortClaim(claimText), degradedConfidence),
		Results: []model.FactCheckResult{
			e.explanatory("System Notice",
				fmt.Sprintf("Analysis is temporarily unavailable due to: %v. This could be due to network issues, source availability or high demand.", err), 50),
			e.explanatory("Recommendation",
				"For immediate fact-checking, try reputable sources like Reuters, AP News or BBC, or dedicated fact-checkers like Snopes, PolitiFact and FactCheck.org directly.", 75),
		},
		Insights: []string{"The analysis did not complete; this verdict is a placeholder"},
		Degraded: true,
	}
}

func normalizeClaim(claim string) string {
	return strings.ToLower(strings.Join(strings.Fields(claim), " "))
}
