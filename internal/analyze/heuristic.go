package analyze

import (
	"math"
	"strings"

	"github.com/ppiankov/crosscheck/internal/claim"
	"github.com/ppiankov/crosscheck/internal/model"
)

var (
	supportPhrases = []string{
		"confirms", "verified", "proven", "evidence shows", "study finds",
		"research indicates", "data suggests", "experts agree", "documented",
		"established", "substantiated", "corroborated",
	}
	contradictPhrases = []string{
		"false", "incorrect", "debunked", "no evidence", "contradicts",
		"disproven", "misleading", "inaccurate", "unfounded", "refuted",
		"disputed", "challenged", "questioned",
	}
	mixedPhrases = []string{
		"partially", "some truth", "complicated", "nuanced", "context",
		"depends", "mixed evidence", "unclear", "disputed", "controversial",
	}
)

const (
	relevanceDecisive = 0.3
	relevanceMixed    = 0.2
	minConfidence     = 20
	maxConfidence     = 90
)

// Heuristic is the deterministic keyword analysis used without AI
func Heuristic(ca model.ClaimAnalysis, unit model.ScrapeUnit) model.SourceAnalysis {
	content := claim.Fold(unit.Content.Title + " " + unit.Content.BodyText)
	relevance := Relevance(ca, content)

	support := countPhrases(content, supportPhrases)
	contradict := countPhrases(content, contradictPhrases)
	mixed := countPhrases(content, mixedPhrases)

	verdict := model.RawUnverified
	confidence := 50
	evidence := model.EvidenceWeak

	switch {
	case support > contradict && support > mixed && relevance > relevanceDecisive:
		verdict = model.RawMostlyTrue
		if support > 2 {
			verdict = model.RawTrue
		}
		confidence = min(85, 60+support*8)
		evidence = strength(support)
	case contradict > support && contradict > mixed && relevance > relevanceDecisive:
		verdict = model.RawMostlyFalse
		if contradict > 2 {
			verdict = model.RawFalse
		}
		confidence = min(85, 60+contradict*8)
		evidence = strength(contradict)
	case mixed > 0 && relevance > relevanceMixed:
		verdict = model.RawMixed
		confidence = min(75, 50+mixed*6)
		evidence = model.EvidenceModerate
	case relevance < relevanceMixed:
		confidence = 30
		evidence = model.EvidenceNone
	}

	confidence = scaleConfidence(confidence, relevance, unit.Source.CredibilityScore)

	analysis := base(unit)
	analysis.Verdict = verdict
	analysis.Confidence = confidence
	analysis.EvidenceQuality = evidence
	analysis.Relevance = relevanceLabel(relevance)
	analysis.Method = model.MethodHeuristic
	analysis.Summary = summarize(unit.Source.Name, verdict, relevance, confidence)
	return analysis
}

// Relevance is the share of claim keywords present in folded content.
// A keyword counts when either its stem or its original form appears.
func Relevance(ca model.ClaimAnalysis, content string) float64 {
	if len(ca.Keywords) == 0 {
		return 0
	}
	found := 0
	for i, stem := range ca.Keywords {
		term := stem
		if i < len(ca.Terms) {
			term = ca.Terms[i]
		}
		if strings.Contains(content, stem) || strings.Contains(content, term) {
			found++
		}
	}
	return float64(found) / float64(len(ca.Keywords))
}

func countPhrases(content string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if strings.Contains(content, p) {
			n++
		}
	}
	return n
}

func strength(n int) model.EvidenceQuality {
	if n > 2 {
		return model.EvidenceStrong
	}
	return model.EvidenceModerate
}

func scaleConfidence(confidence int, relevance float64, credibility int) int {
	c := float64(confidence) * (0.4 + 0.6*relevance)
	c *= 0.8 + 0.2*float64(credibility)/100
	return clamp(int(math.Round(c)), minConfidence, maxConfidence)
}

func relevanceLabel(r float64) model.Relevance {
	switch {
	case r > 0.6:
		return model.RelevanceHigh
	case r > relevanceDecisive:
		return model.RelevanceMedium
	default:
		return model.RelevanceLow
	}
}

// relevanceScore maps a reported label back onto the heuristic scale
func relevanceScore(r model.Relevance) float64 {
	switch r {
	case model.RelevanceHigh:
		return 1
	case model.RelevanceMedium:
		return 0.5
	case model.RelevanceLow:
		return 0
	default:
		return 0
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
