package model

import "strings"

// RawVerdict is a per-source judgement
type RawVerdict string

const (
	RawTrue        RawVerdict = "true"
	RawMostlyTrue  RawVerdict = "mostly-true"
	RawMixed       RawVerdict = "mixed"
	RawMostlyFalse RawVerdict = "mostly-false"
	RawFalse       RawVerdict = "false"
	RawUnverified  RawVerdict = "unverified"
	RawSatirical   RawVerdict = "satirical"
)

// RawVerdicts lists every per-source verdict in display order
var RawVerdicts = []RawVerdict{
	RawTrue, RawMostlyTrue, RawMixed, RawMostlyFalse, RawFalse, RawUnverified, RawSatirical,
}

// ParseRawVerdict normalizes free-form model output ("Mostly True", "MOSTLY_FALSE").
func ParseRawVerdict(s string) (RawVerdict, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.NewReplacer("_", "-", " ", "-").Replace(v)
	switch RawVerdict(v) {
	case RawTrue, RawMostlyTrue, RawMixed, RawMostlyFalse, RawFalse, RawUnverified, RawSatirical:
		return RawVerdict(v), true
	}
	switch v {
	case "satire":
		return RawSatirical, true
	case "partly-true", "half-true", "partially-true":
		return RawMixed, true
	case "not-true", "untrue", "not-correct", "not-accurate", "inaccurate":
		return RawFalse, true
	case "unknown", "unclear", "unproven", "no-evidence":
		return RawUnverified, true
	}
	return RawUnverified, false
}

// Phrases that contain "true" or "correct" yet deny the claim
var denialPhrases = []string{"not true", "untrue", "isn't true", "not correct", "not accurate", "inaccurate"}

// Phrases that say nothing was found either way
var noEvidencePhrases = []string{"no evidence", "lacks evidence", "unsupported", "unproven"}

// NegatedVerdict reads denials ("Not true", "Untrue") and absence of evidence
// in lowercase text. It must run before any plain "true" substring test.
func NegatedVerdict(lower string) (RawVerdict, bool) {
	for _, p := range denialPhrases {
		if strings.Contains(lower, p) {
			if strings.Contains(lower, "mostly") {
				return RawMostlyFalse, true
			}
			return RawFalse, true
		}
	}
	for _, p := range noEvidencePhrases {
		if strings.Contains(lower, p) {
			return RawUnverified, true
		}
	}
	return "", false
}

// Leaning returns +1 for true-leaning, -1 for false-leaning and 0 otherwise
func (v RawVerdict) Leaning() int {
	switch v {
	case RawTrue, RawMostlyTrue:
		return 1
	case RawFalse, RawMostlyFalse:
		return -1
	case RawMixed, RawUnverified, RawSatirical:
		return 0
	default:
		return 0
	}
}

// EvidenceQuality grades the support found in one article
type EvidenceQuality string

const (
	EvidenceStrong   EvidenceQuality = "strong"
	EvidenceModerate EvidenceQuality = "moderate"
	EvidenceWeak     EvidenceQuality = "weak"
	EvidenceNone     EvidenceQuality = "none"
)

// Relevance grades how closely an article matches the claim
type Relevance string

const (
	RelevanceHigh   Relevance = "high"
	RelevanceMedium Relevance = "medium"
	RelevanceLow    Relevance = "low"
)

// AnalysisMethod records which path produced a SourceAnalysis
type AnalysisMethod string

const (
	MethodAI          AnalysisMethod = "ai"
	MethodHeuristic   AnalysisMethod = "heuristic"
	MethodExternal    AnalysisMethod = "external"
	MethodUnconfirmed AnalysisMethod = "unconfirmed"
)

// SourceAnalysis is the verdict of one source on the claim
type SourceAnalysis struct {
	Source          Source          `json:"source" yaml:"source"`
	Verdict         RawVerdict      `json:"verdict" yaml:"verdict"`
	Confidence      int             `json:"confidence" yaml:"confidence"` // 0-100
	Summary         string          `json:"summary" yaml:"summary"`
	Reasoning       string          `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
	EvidenceQuality EvidenceQuality `json:"evidenceQuality" yaml:"evidence_quality"`
	Relevance       Relevance       `json:"relevance" yaml:"relevance"`
	Method          AnalysisMethod  `json:"method" yaml:"method"`

	// Article context carried through to formatting
	URL         string           `json:"url" yaml:"url"`
	Title       string           `json:"title,omitempty" yaml:"title,omitempty"`
	Snippet     string           `json:"snippet,omitempty" yaml:"snippet,omitempty"`
	PublishDate string           `json:"publishDate,omitempty" yaml:"publish_date,omitempty"`
	WordCount   int              `json:"wordCount" yaml:"word_count"`
	Extraction  ExtractionMethod `json:"extraction,omitempty" yaml:"extraction,omitempty"`
}

// RealArticle reports whether the analysis is backed by fetched article text
func (a SourceAnalysis) RealArticle() bool {
	return a.Extraction == ExtractionPrimary && a.WordCount > 0
}
