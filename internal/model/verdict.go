package model

// OverallVerdict is the aggregate verdict for a claim
type OverallVerdict string

const (
	VerdictVerified       OverallVerdict = "VERIFIED"
	VerdictMostlyVerified OverallVerdict = "MOSTLY VERIFIED"
	VerdictMixed          OverallVerdict = "MIXED"
	VerdictMostlyFalse    OverallVerdict = "MOSTLY FALSE"
	VerdictFalse          OverallVerdict = "FALSE"
	VerdictUnverified     OverallVerdict = "UNVERIFIED"
	VerdictSatirical      OverallVerdict = "SATIRICAL"
	VerdictError          OverallVerdict = "ERROR"
)

// SignalType identifies a contribution to the verdict
type SignalType string

const (
	SignalTrueScore       SignalType = "true_score"
	SignalFalseScore      SignalType = "false_score"
	SignalMixedScore      SignalType = "mixed_score"
	SignalUnverifiedScore SignalType = "unverified_score"
	SignalSatire          SignalType = "satire"
	SignalSourceCount     SignalType = "source_count"
	SignalDiversity       SignalType = "category_diversity"
	SignalAdjustment      SignalType = "verdict_adjustment"
	SignalFringe          SignalType = "fringe_excluded"
)

// Signal is one transparent step in how the verdict was reached
type Signal struct {
	Type        SignalType `json:"type" yaml:"type"`
	Description string     `json:"description" yaml:"description"`
	Value       float64    `json:"value" yaml:"value"`
}

// CategoryBalance counts counted analyses per spectrum category
type CategoryBalance struct {
	Counts      map[Category]int `json:"counts" yaml:"counts"`
	Percentages map[Category]int `json:"percentages" yaml:"percentages"`
}

// Verdict is the aggregated outcome across all source analyses
type Verdict struct {
	Overall           OverallVerdict     `json:"overall" yaml:"overall"`
	Confidence        int                `json:"confidence" yaml:"confidence"` // 25-95, or 0 for ERROR
	ShareableSummary  string             `json:"shareableSummary" yaml:"shareable_summary"`
	Breakdown         map[RawVerdict]int `json:"breakdown" yaml:"breakdown"`
	Balance           CategoryBalance    `json:"balance" yaml:"balance"`
	Signals           []Signal           `json:"signals" yaml:"signals"`
	Insights          []string           `json:"insights" yaml:"insights"`
	TotalSources      int                `json:"totalSources" yaml:"total_sources"`
	CountedSources    int                `json:"countedSources" yaml:"counted_sources"`
	AverageConfidence int                `json:"averageConfidence" yaml:"average_confidence"`
}
