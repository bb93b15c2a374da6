package model

// ClaimType categorizes the nature of the claim
type ClaimType string

const (
	ClaimTypeStatistical ClaimType = "statistical" // Percentages, large counts
	ClaimTypeCausal      ClaimType = "causal"      // X causes / leads to Y
	ClaimTypeComparative ClaimType = "comparative" // More/less than
	ClaimTypePredictive  ClaimType = "predictive"  // Will / forecast
	ClaimTypeHistorical  ClaimType = "historical"  // Happened / in 1999
	ClaimTypeConspiracy  ClaimType = "conspiracy"  // Hoax / cover-up
	ClaimTypeScientific  ClaimType = "scientific"  // Study / research
	ClaimTypeGeneral     ClaimType = "general"
)

// EntityType classifies a named entity
type EntityType string

const (
	EntityPerson       EntityType = "person"
	EntityPlace        EntityType = "place"
	EntityOrganization EntityType = "organization"
	EntityDate         EntityType = "date"
)

// Entity is a named thing mentioned in the claim
type Entity struct {
	Type  EntityType `json:"type" yaml:"type"`
	Value string     `json:"value" yaml:"value"`
}

// Sentiment is a naive polarity estimate
type Sentiment struct {
	Score int    `json:"score" yaml:"score"`
	Label string `json:"label" yaml:"label"` // positive, negative, neutral
}

// ComplexityLevel buckets the complexity score
type ComplexityLevel string

const (
	ComplexitySimple   ComplexityLevel = "simple"
	ComplexityModerate ComplexityLevel = "moderate"
	ComplexityComplex  ComplexityLevel = "complex"
)

// Complexity describes how hard the claim is to read
type Complexity struct {
	Score         float64         `json:"score" yaml:"score"`
	Level         ComplexityLevel `json:"level" yaml:"level"`
	WordCount     int             `json:"wordCount" yaml:"word_count"`
	SentenceCount int             `json:"sentenceCount" yaml:"sentence_count"`
	ComplexWords  int             `json:"complexWords" yaml:"complex_words"`
}

// FactualIndicators are hedging and sourcing phrases found in the claim
type FactualIndicators struct {
	Certainty   []string `json:"certainty" yaml:"certainty"`
	Uncertainty []string `json:"uncertainty" yaml:"uncertainty"`
	Sources     []string `json:"sources" yaml:"sources"`
}

// TemporalContext lists time references found in the claim
type TemporalContext struct {
	ExplicitDates      []string `json:"explicitDates" yaml:"explicit_dates"`
	TimeReferences     []string `json:"timeReferences" yaml:"time_references"`
	HasTemporalContext bool     `json:"hasTemporalContext" yaml:"has_temporal_context"`
}

// ClaimAnalysis is the structured reading of a raw claim.
// It is built once per request and never modified afterwards.
type ClaimAnalysis struct {
	OriginalClaim string            `json:"originalClaim" yaml:"original_claim"`
	Keywords      []string          `json:"keywords" yaml:"keywords"` // Stems, first-seen order, at most 8
	Terms         []string          `json:"terms" yaml:"terms"`       // Unstemmed forms of Keywords
	Entities      []Entity          `json:"entities" yaml:"entities"` // At most 5
	ClaimType     ClaimType         `json:"claimType" yaml:"claim_type"`
	Sentiment     Sentiment         `json:"sentiment" yaml:"sentiment"`
	Complexity    Complexity        `json:"complexity" yaml:"complexity"`
	Indicators    FactualIndicators `json:"factualIndicators" yaml:"factual_indicators"`
	Temporal      TemporalContext   `json:"temporalContext" yaml:"temporal_context"`
	Confidence    int               `json:"confidence" yaml:"confidence"` // 20-95
	Fallback      bool              `json:"fallback,omitempty" yaml:"fallback,omitempty"`
}
