// Package analyze turns one scraped article into a per-source verdict on the claim.
package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/ppiankov/crosscheck/internal/llm"
	"github.com/ppiankov/crosscheck/internal/logging"
	"github.com/ppiankov/crosscheck/internal/model"
)

const systemPrompt = "You are an expert fact-checker. Analyze content objectively and provide witty but accurate summaries. Focus on factual accuracy over political bias."

// unconfirmedConfidence is the confidence given to coverage that could not be fetched
const unconfirmedConfidence = 20

// Analyzer produces a SourceAnalysis per scrape unit. The AI path is used
// when a provider is configured; the keyword heuristic covers everything else.
type Analyzer struct {
	provider llm.Provider
	cfg      model.AnalysisConfig
	logger   *slog.Logger
}

// New creates an Analyzer. A nil provider disables the AI path.
func New(provider llm.Provider, cfg model.AnalysisConfig, logger *slog.Logger) *Analyzer {
	if cfg.Workers <= 0 {
		cfg.Workers = 6
	}
	if cfg.MaxPromptChars <= 0 {
		cfg.MaxPromptChars = 4000
	}
	if cfg.AIDefaultConfidence <= 0 {
		cfg.AIDefaultConfidence = 60
	}
	return &Analyzer{
		provider: provider,
		cfg:      cfg,
		logger:   logging.OrDefault(logger),
	}
}

// AIEnabled reports whether the AI path can run
func (a *Analyzer) AIEnabled() bool {
	return a.provider != nil && a.cfg.UseAI
}

// Analyze never fails: AI errors, unparseable replies and panics all end in
// the heuristic result.
func (a *Analyzer) Analyze(ctx context.Context, claim model.ClaimAnalysis, unit model.ScrapeUnit) (result model.SourceAnalysis) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("source analysis panicked", "source", unit.Source.Name, "panic", r)
			result = safeHeuristic(claim, unit)
		}
	}()

	if unit.Unconfirmed {
		return Unconfirmed(unit)
	}

	if a.AIEnabled() && unit.Content.WordCount >= a.cfg.MinWordsForAI {
		analysis, err := a.analyzeAI(ctx, claim, unit)
		if err == nil {
			return analysis
		}
		a.logger.Warn("AI analysis failed, using heuristic",
			"source", unit.Source.Name,
			"error", err,
		)
	}

	return Heuristic(claim, unit)
}

// AnalyzeAll analyzes units concurrently. Output order matches units.
func (a *Analyzer) AnalyzeAll(ctx context.Context, claim model.ClaimAnalysis, units []model.ScrapeUnit) []model.SourceAnalysis {
	results := make([]model.SourceAnalysis, len(units))
	sem := make(chan struct{}, a.cfg.Workers)
	var wg sync.WaitGroup

	for i := range units {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = a.Analyze(ctx, claim, units[i])
		}(i)
	}
	wg.Wait()
	return results
}

func (a *Analyzer) analyzeAI(ctx context.Context, claim model.ClaimAnalysis, unit model.ScrapeUnit) (model.SourceAnalysis, error) {
	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
		System: systemPrompt,
		Prompt: buildPrompt(claim.OriginalClaim, unit, a.cfg.MaxPromptChars),
		JSON:   true,
	})
	if err != nil {
		return model.SourceAnalysis{}, fmt.Errorf("%s completion: %w", a.provider.Name(), err)
	}
	if strings.TrimSpace(resp.Text) == "" {
		return model.SourceAnalysis{}, fmt.Errorf("%s completion: empty reply", a.provider.Name())
	}

	reply := parseReply(resp.Text, a.cfg.AIDefaultConfidence)
	analysis := base(unit)
	analysis.Verdict = reply.Verdict
	analysis.Confidence = reply.Confidence
	analysis.Summary = reply.Summary
	analysis.Reasoning = reply.Reasoning
	analysis.EvidenceQuality = reply.EvidenceQuality
	analysis.Relevance = reply.Relevance
	analysis.Method = model.MethodAI
	if analysis.Summary == "" {
		analysis.Summary = summarize(unit.Source.Name, reply.Verdict, relevanceScore(reply.Relevance), reply.Confidence)
	}
	a.logger.Debug("AI analysis complete",
		"source", unit.Source.Name,
		"verdict", analysis.Verdict,
		"confidence", analysis.Confidence,
		"tokens", resp.TokensUsed,
	)
	return analysis, nil
}

func buildPrompt(claim string, unit model.ScrapeUnit, maxChars int) string {
	var b strings.Builder
	b.WriteString("FACT-CHECK ANALYSIS TASK:\n\n")
	fmt.Fprintf(&b, "CLAIM TO VERIFY: %q\n\n", claim)
	fmt.Fprintf(&b, "SOURCE: %s (%s, credibility: %d%%)\n",
		unit.Source.Name, unit.Source.Category.Label(), unit.Source.CredibilityScore)
	if unit.Content.Title != "" {
		fmt.Fprintf(&b, "ARTICLE: %s\n", unit.Content.Title)
	}
	if unit.Content.URL != "" {
		fmt.Fprintf(&b, "URL: %s\n", unit.Content.URL)
	}
	b.WriteString("\nCONTENT TO ANALYZE:\n")
	b.WriteString(excerpt(unit.Content.BodyText, maxChars))
	b.WriteString(`

INSTRUCTIONS:
1. Determine if this content supports, contradicts, or is neutral toward the claim
2. Assess the quality and relevance of the evidence presented
3. Consider the source's political lean and credibility in your analysis
4. Provide a confidence score (0-100) for your assessment
5. Use "satirical" only when the content is satire or parody of the claim

RESPOND IN THIS EXACT JSON FORMAT:
{
  "verdict": "true|mostly-true|mixed|mostly-false|false|unverified|satirical",
  "confidence": 85,
  "reasoning": "Brief explanation of your analysis",
  "summary": "One accurate sentence summarizing this source's take",
  "evidence_quality": "strong|moderate|weak|none",
  "relevance": "high|medium|low"
}`)
	return b.String()
}

func excerpt(s string, maxChars int) string {
	r := []rune(s)
	if len(r) <= maxChars {
		return s
	}
	return string(r[:maxChars]) + "..."
}

// base copies the article context shared by every analysis path
func base(unit model.ScrapeUnit) model.SourceAnalysis {
	url := unit.Content.URL
	if url == "" {
		url = unit.Article.URL
	}
	title := unit.Content.Title
	if title == "" {
		title = unit.Article.Title
	}
	date := unit.Content.PublishDate
	if date == "" {
		date = unit.Article.PublishDateGuess
	}
	return model.SourceAnalysis{
		Source:      unit.Source,
		URL:         url,
		Title:       title,
		Snippet:     unit.Article.Snippet,
		PublishDate: date,
		WordCount:   unit.Content.WordCount,
		Extraction:  unit.Content.Method,
	}
}

// Unconfirmed describes coverage that was suggested but never fetched
func Unconfirmed(unit model.ScrapeUnit) model.SourceAnalysis {
	analysis := base(unit)
	analysis.Verdict = model.RawUnverified
	analysis.Confidence = unconfirmedConfidence
	analysis.EvidenceQuality = model.EvidenceNone
	analysis.Relevance = model.RelevanceLow
	analysis.Method = model.MethodUnconfirmed
	analysis.Summary = fmt.Sprintf("%s may have covered this topic, but no article could be retrieved to confirm it.", unit.Source.Name)
	return analysis
}

func safeHeuristic(claim model.ClaimAnalysis, unit model.ScrapeUnit) (result model.SourceAnalysis) {
	defer func() {
		if r := recover(); r != nil {
			result = model.SourceAnalysis{
				Source:          unit.Source,
				URL:             unit.Article.URL,
				Verdict:         model.RawUnverified,
				Confidence:      unconfirmedConfidence,
				Summary:         summarize(unit.Source.Name, model.RawUnverified, 0, unconfirmedConfidence),
				EvidenceQuality: model.EvidenceNone,
				Relevance:       model.RelevanceLow,
				Method:          model.MethodHeuristic,
			}
		}
	}()
	return Heuristic(claim, unit)
}
