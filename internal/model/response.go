package model

// FactCheckResult is one source entry in the API response
type FactCheckResult struct {
	ID               string `json:"id" yaml:"id"`
	Source           string `json:"source" yaml:"source"`
	Favicon          string `json:"favicon" yaml:"favicon"`
	Summary          string `json:"summary" yaml:"summary"`
	URL              string `json:"url" yaml:"url"`
	CredibilityScore int    `json:"credibilityScore" yaml:"credibility_score"`
	Category         string `json:"category" yaml:"category"`
	Rating           string `json:"rating" yaml:"rating"`
	PublishDate      string `json:"publishDate,omitempty" yaml:"publish_date,omitempty"`
	Method           string `json:"method,omitempty" yaml:"method,omitempty"`
	WarningLabel     string `json:"warningLabel,omitempty" yaml:"warning_label,omitempty"`
}

// SourceBalanceView is the spectrum balance in the response
type SourceBalanceView struct {
	Counts      map[string]int `json:"counts" yaml:"counts"`
	Percentages map[string]int `json:"percentages" yaml:"percentages"`
}

// AnalyzeResponse is the externally visible result of analyzing one claim
type AnalyzeResponse struct {
	Claim            string             `json:"claim" yaml:"claim"`
	OverallRating    OverallVerdict     `json:"overallRating" yaml:"overall_rating"`
	Confidence       int                `json:"confidence" yaml:"confidence"`
	TweetableSummary string             `json:"tweetableSummary" yaml:"tweetable_summary"`
	Results          []FactCheckResult  `json:"results" yaml:"results"`
	AnalysisTime     int64              `json:"analysisTime" yaml:"analysis_time"` // Milliseconds
	VerdictBreakdown map[string]int     `json:"verdictBreakdown,omitempty" yaml:"verdict_breakdown,omitempty"`
	SourceBalance    *SourceBalanceView `json:"sourceBalance,omitempty" yaml:"source_balance,omitempty"`
	Insights         []string           `json:"insights,omitempty" yaml:"insights,omitempty"`
	ClaimType        string             `json:"claimType,omitempty" yaml:"claim_type,omitempty"`
	SourcesAnalyzed  int                `json:"sourcesAnalyzed" yaml:"sources_analyzed"`
	Degraded         bool               `json:"degraded,omitempty" yaml:"degraded,omitempty"`
}
