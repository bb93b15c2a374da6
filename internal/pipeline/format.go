package pipeline

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/ppiankov/crosscheck/internal/model"
)

// URL fragments that mark a listing or search page rather than an article
var searchPageMarkers = []string{
	"/search", "?q=", "?query=", "?s=", "/results", "/find",
	"search?", "search/", "/tag/", "/category/", "/archive/",
}

// IsSearchPageURL reports whether rawURL points at a search or listing page
func IsSearchPageURL(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, m := range searchPageMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// DisplayCredibility is the per-result score shown to users: the catalog
// credibility nudged by analysis confidence, article length and whether a real
// article was read. Clamped to [0,100].
func DisplayCredibility(a model.SourceAnalysis) int {
	score := float64(a.Source.CredibilityScore) + float64(a.Confidence-50)*0.2
	if a.WordCount > 200 {
		score += 10
	}
	if a.RealArticle() {
		score += 10
	}
	return int(math.Round(min(max(score, 0), 100)))
}

func resultURL(a model.SourceAnalysis) string {
	u := a.URL
	if u == "" {
		u = "#"
	}
	if IsSearchPageURL(u) && a.Source.Domain != "" {
		return a.Source.HomeURL()
	}
	return u
}

func (e *Engine) formatResult(a model.SourceAnalysis) model.FactCheckResult {
	category := a.Source.Category
	if category == "" {
		category = model.CategoryCenter
	}
	return model.FactCheckResult{
		ID:               e.newID(),
		Source:           a.Source.Name,
		Favicon:          a.Source.Favicon(),
		Summary:          a.Summary,
		URL:              resultURL(a),
		CredibilityScore: DisplayCredibility(a),
		Category:         string(category),
		Rating:           string(a.Verdict),
		PublishDate:      a.PublishDate,
		Method:           string(a.Method),
		WarningLabel:     a.Source.WarningLabel,
	}
}

func (e *Engine) format(claimText string, ca model.ClaimAnalysis, v model.Verdict, analyses []model.SourceAnalysis) *model.AnalyzeResponse {
	results := make([]model.FactCheckResult, 0, len(analyses))
	for _, a := range analyses {
		results = append(results, e.formatResult(a))
	}

	breakdown := make(map[string]int, len(v.Breakdown))
	for rv, n := range v.Breakdown {
		if n > 0 {
			breakdown[string(rv)] = n
		}
	}

	return &model.AnalyzeResponse{
		Claim:            claimText,
		OverallRating:    v.Overall,
		Confidence:       v.Confidence,
		TweetableSummary: v.ShareableSummary,
		Results:          results,
		VerdictBreakdown: breakdown,
		SourceBalance:    balanceView(v.Balance),
		Insights:         v.Insights,
		ClaimType:        string(ca.ClaimType),
		SourcesAnalyzed:  len(analyses),
	}
}

func balanceView(b model.CategoryBalance) *model.SourceBalanceView {
	view := &model.SourceBalanceView{
		Counts:      make(map[string]int, len(b.Counts)),
		Percentages: make(map[string]int, len(b.Percentages)),
	}
	for cat, n := range b.Counts {
		view.Counts[string(cat)] = n
	}
	for cat, p := range b.Percentages {
		view.Percentages[string(cat)] = p
	}
	return view
}

// explanatory builds a result that carries a message rather than a source
func (e *Engine) explanatory(source, summary string, credibility int) model.FactCheckResult {
	return model.FactCheckResult{
		ID:               e.newID(),
		Source:           source,
		Favicon:          model.FaviconURL(""),
		Summary:          summary,
		URL:              "#",
		CredibilityScore: credibility,
		Category:         string(model.CategoryCenter),
		Rating:           string(model.RawUnverified),
	}
}

func newUUID() string {
	return uuid.NewString()
}
