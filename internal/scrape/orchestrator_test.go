package scrape

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/crosscheck/internal/logging"
	"github.com/ppiankov/crosscheck/internal/model"
	"github.com/ppiankov/crosscheck/internal/search"
)

func testSources(n int) []model.Source {
	sources := make([]model.Source, n)
	for i := range sources {
		sources[i] = model.Source{
			Name:             fmt.Sprintf("Outlet %d", i),
			Domain:           fmt.Sprintf("outlet%d.com", i),
			Category:         model.CategoryCenter,
			CredibilityScore: 70 + i,
		}
	}
	return sources
}

var testQueries = []model.SearchQuery{
	{Intent: model.IntentPrimary, Text: "q-primary"},
	{Intent: model.IntentFactCheck, Text: "q-factcheck"},
	{Intent: model.IntentNews, Text: "q-news"},
}

type fakeSearcher struct {
	fn    func(query string, source model.Source) search.Result
	calls atomic.Int32
}

func (f *fakeSearcher) Search(ctx context.Context, query string, source model.Source) search.Result {
	f.calls.Add(1)
	return f.fn(query, source)
}

type fakeExtractor struct {
	fn func(rawURL string) model.ScrapedContent
}

func (f fakeExtractor) Extract(ctx context.Context, rawURL string) model.ScrapedContent {
	return f.fn(rawURL)
}

func articleFor(query string, source model.Source) search.Result {
	return search.Result{
		Strategy: search.StrategyGoogle,
		Candidates: []model.ArticleCandidate{{
			Title:      source.Name + " story",
			URL:        "https://" + source.Domain + "/news/" + query,
			Snippet:    "snippet for " + query,
			SourceName: source.Name,
			Strategy:   search.StrategyGoogle,
		}},
	}
}

func primaryContent(rawURL string) model.ScrapedContent {
	return model.ScrapedContent{URL: rawURL, BodyText: "full article text here", WordCount: 4, Method: model.ExtractionPrimary}
}

func testConfig() model.ScrapeConfig {
	return model.ScrapeConfig{
		Workers:          6,
		MaxOperations:    20,
		MaxResults:       12,
		QueriesPerSource: 2,
		UnitTimeout:      time.Second,
	}
}

func TestPlan_InterleavesAndCaps(t *testing.T) {
	sources := testSources(15)
	units := Plan(testQueries, sources, 2, 20)

	if len(units) != 20 {
		t.Fatalf("expected 20 units, got %d", len(units))
	}
	for i := 0; i < 15; i++ {
		if units[i].Source.Name != sources[i].Name {
			t.Errorf("unit %d: every source should get a first query before any second one", i)
		}
	}
	if units[0].Query.Text != "q-primary" || units[1].Query.Text != "q-news" {
		t.Errorf("sources should be offset across queries: %q, %q", units[0].Query.Text, units[1].Query.Text)
	}
	if units[15].Source.Name != sources[0].Name || units[15].Query.Text != "q-factcheck" {
		t.Errorf("second round should start over the sources: %+v", units[15])
	}
}

func TestPlan_Edges(t *testing.T) {
	if got := Plan(nil, testSources(3), 2, 20); got != nil {
		t.Errorf("no queries should plan nothing, got %d", len(got))
	}
	if got := Plan(testQueries, nil, 2, 20); got != nil {
		t.Errorf("no sources should plan nothing, got %d", len(got))
	}
	if got := Plan(testQueries[:1], testSources(2), 3, 0); len(got) != 2 {
		t.Errorf("per-source count is bounded by the query count, got %d", len(got))
	}
}

func TestWorkers_Clamped(t *testing.T) {
	tests := []struct{ in, want int }{{0, 5}, {3, 5}, {6, 6}, {8, 8}, {20, 8}}
	for _, tt := range tests {
		o := New(nil, nil, model.ScrapeConfig{Workers: tt.in}, logging.Discard())
		if got := o.Workers(); got != tt.want {
			t.Errorf("Workers(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRun_AllSettledWithPartialFailure(t *testing.T) {
	sources := testSources(5)
	searcher := &fakeSearcher{fn: func(query string, source model.Source) search.Result {
		if source.Name == "Outlet 2" {
			panic("selector exploded")
		}
		return articleFor(query, source)
	}}
	extractor := fakeExtractor{fn: func(rawURL string) model.ScrapedContent {
		if strings.Contains(rawURL, "outlet3") {
			time.Sleep(20 * time.Millisecond)
		}
		return primaryContent(rawURL)
	}}

	o := New(searcher, extractor, testConfig(), logging.Discard())
	units := o.Run(context.Background(), testQueries, sources)

	if len(units) != 8 {
		t.Fatalf("expected 8 surviving units (5 sources x 2 queries minus 2 panics), got %d", len(units))
	}
	for _, u := range units {
		if u.Source.Name == "Outlet 2" {
			t.Error("failed source should contribute nothing")
		}
		if u.Content.Method != model.ExtractionPrimary {
			t.Errorf("unexpected method %q", u.Content.Method)
		}
	}
}

func TestRun_RespectsOperationCap(t *testing.T) {
	searcher := &fakeSearcher{fn: articleFor}
	extractor := fakeExtractor{fn: primaryContent}

	o := New(searcher, extractor, testConfig(), logging.Discard())
	units := o.Run(context.Background(), testQueries, testSources(15))

	if n := searcher.calls.Load(); n != 20 {
		t.Errorf("expected 20 searches, got %d", n)
	}
	if len(units) != 12 {
		t.Errorf("expected result cap of 12, got %d", len(units))
	}
}

func TestRun_SyntheticBecomesUnconfirmed(t *testing.T) {
	var extracted atomic.Int32
	searcher := &fakeSearcher{fn: func(query string, source model.Source) search.Result {
		return search.Result{
			Strategy:  search.StrategyFallback,
			Synthetic: true,
			Candidates: []model.ArticleCandidate{{
				Title:     source.Name + " may have coverage of this topic",
				URL:       "https://" + source.Domain + "/search?q=" + query,
				Snippet:   "Search results were not available.",
				Synthetic: true,
			}},
		}
	}}
	extractor := fakeExtractor{fn: func(rawURL string) model.ScrapedContent {
		extracted.Add(1)
		return primaryContent(rawURL)
	}}

	o := New(searcher, extractor, testConfig(), logging.Discard())
	units := o.Run(context.Background(), testQueries[:1], testSources(3))

	if len(units) != 3 {
		t.Fatalf("expected 3 unconfirmed units, got %d", len(units))
	}
	for _, u := range units {
		if !u.Unconfirmed {
			t.Error("synthetic candidate should produce an unconfirmed unit")
		}
		if u.Content.Method != model.ExtractionFallbackSnippet {
			t.Errorf("method = %q, want fallback-snippet", u.Content.Method)
		}
	}
	if extracted.Load() != 0 {
		t.Error("synthetic candidates must never be fetched")
	}
}

func TestRun_SnippetFallbackWhenExtractionFails(t *testing.T) {
	searcher := &fakeSearcher{fn: articleFor}
	extractor := fakeExtractor{fn: func(rawURL string) model.ScrapedContent {
		return model.ScrapedContent{URL: rawURL, BodyText: "Unable to access content", Method: model.ExtractionUnavailable}
	}}

	o := New(searcher, extractor, testConfig(), logging.Discard())
	units := o.Run(context.Background(), testQueries[:1], testSources(1))

	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	u := units[0]
	if u.Content.Method != model.ExtractionFallbackSnippet || u.Content.BodyText != "snippet for q-primary" {
		t.Errorf("expected snippet fallback, got %+v", u.Content)
	}
	if u.Unconfirmed {
		t.Error("a real candidate is not unconfirmed")
	}
}

func TestRun_TriesSecondCandidate(t *testing.T) {
	searcher := &fakeSearcher{fn: func(query string, source model.Source) search.Result {
		return search.Result{Candidates: []model.ArticleCandidate{
			{Title: "paywalled", URL: "https://outlet0.com/news/paywalled"},
			{Title: "open", URL: "https://outlet0.com/news/open"},
		}}
	}}
	extractor := fakeExtractor{fn: func(rawURL string) model.ScrapedContent {
		if strings.HasSuffix(rawURL, "paywalled") {
			return model.ScrapedContent{URL: rawURL, Method: model.ExtractionUnavailable}
		}
		return primaryContent(rawURL)
	}}

	o := New(searcher, extractor, testConfig(), logging.Discard())
	units := o.Run(context.Background(), testQueries[:1], testSources(1))

	if len(units) != 1 || units[0].Article.Title != "open" {
		t.Fatalf("expected the second candidate, got %+v", units)
	}
}

func TestRun_NoSnippetNoContentFails(t *testing.T) {
	searcher := &fakeSearcher{fn: func(query string, source model.Source) search.Result {
		return search.Result{Candidates: []model.ArticleCandidate{{Title: "x", URL: "https://outlet0.com/news/x"}}}
	}}
	extractor := fakeExtractor{fn: func(rawURL string) model.ScrapedContent {
		return model.ScrapedContent{URL: rawURL, Method: model.ExtractionUnavailable}
	}}

	o := New(searcher, extractor, testConfig(), logging.Discard())
	if units := o.Run(context.Background(), testQueries[:1], testSources(1)); len(units) != 0 {
		t.Errorf("expected the unit to be dropped, got %d", len(units))
	}
}

func TestRun_UnitTimeoutDoesNotStallBatch(t *testing.T) {
	cfg := testConfig()
	cfg.UnitTimeout = 30 * time.Millisecond

	var mu sync.Mutex
	seen := map[string]bool{}
	searcher := &fakeSearcher{fn: articleFor}
	slowExtractor := ctxExtractor{fn: func(ctx context.Context, rawURL string) model.ScrapedContent {
		mu.Lock()
		seen[rawURL] = true
		mu.Unlock()
		if strings.Contains(rawURL, "outlet1") {
			<-ctx.Done()
			return model.ScrapedContent{URL: rawURL, Method: model.ExtractionUnavailable}
		}
		return primaryContent(rawURL)
	}}

	o := New(searcher, slowExtractor, cfg, logging.Discard())
	start := time.Now()
	units := o.Run(context.Background(), testQueries[:1], testSources(3))

	if time.Since(start) > 2*time.Second {
		t.Fatal("slow unit stalled the batch")
	}
	// outlet1 falls back to its snippet after the timeout
	if len(units) != 3 {
		t.Errorf("expected 3 units, got %d", len(units))
	}
}

type ctxExtractor struct {
	fn func(ctx context.Context, rawURL string) model.ScrapedContent
}

func (f ctxExtractor) Extract(ctx context.Context, rawURL string) model.ScrapedContent {
	return f.fn(ctx, rawURL)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	searcher := &fakeSearcher{fn: articleFor}
	o := New(searcher, fakeExtractor{fn: primaryContent}, testConfig(), logging.Discard())
	if units := o.Run(ctx, testQueries, testSources(3)); len(units) != 0 {
		t.Errorf("cancelled run should produce nothing, got %d", len(units))
	}
}

func TestShape_RanksDedupesAndCaps(t *testing.T) {
	mk := func(name string, cred int, method model.ExtractionMethod, url string, unconfirmed bool) model.ScrapeUnit {
		return model.ScrapeUnit{
			Source:      model.Source{Name: name, CredibilityScore: cred},
			Article:     model.ArticleCandidate{URL: url},
			Content:     model.ScrapedContent{BodyText: "text", WordCount: 1, Method: method},
			Unconfirmed: unconfirmed,
		}
	}

	units := []model.ScrapeUnit{
		mk("snippet-high", 95, model.ExtractionFallbackSnippet, "https://a.com/1", false),
		mk("unconfirmed", 99, model.ExtractionFallbackSnippet, "https://b.com/search?q=x", true),
		mk("primary-low", 60, model.ExtractionPrimary, "https://c.com/1", false),
		mk("primary-high", 90, model.ExtractionPrimary, "https://d.com/1", false),
		mk("duplicate", 99, model.ExtractionPrimary, "https://c.com/1", false),
		{Source: model.Source{Name: "empty"}, Article: model.ArticleCandidate{URL: "https://e.com/1"}},
	}

	got := Shape(units, 3)
	var names []string
	for _, u := range got {
		names = append(names, u.Source.Name)
	}
	want := []string{"primary-high", "primary-low", "snippet-high"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("Shape order = %v, want %v", names, want)
	}
}
