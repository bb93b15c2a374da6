package model

import "time"

// Config holds every tunable of the pipeline. It is built once and passed down.
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	HTTP      HTTPConfig      `yaml:"http" mapstructure:"http"`
	Search    SearchConfig    `yaml:"search" mapstructure:"search"`
	Scrape    ScrapeConfig    `yaml:"scrape" mapstructure:"scrape"`
	Analysis  AnalysisConfig  `yaml:"analysis" mapstructure:"analysis"`
	LLM       LLMConfig       `yaml:"llm" mapstructure:"llm"`
	FactCheck FactCheckConfig `yaml:"factcheck" mapstructure:"factcheck"`
	Verdict   VerdictConfig   `yaml:"verdict" mapstructure:"verdict"`
	Sources   SourcesConfig   `yaml:"sources" mapstructure:"sources"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Engine    EngineConfig    `yaml:"engine" mapstructure:"engine"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// ServerConfig controls the HTTP API
type ServerConfig struct {
	Port            int           `yaml:"port" mapstructure:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	AllowedOrigin   string        `yaml:"allowed_origin" mapstructure:"allowed_origin"`
	MaxClaimLength  int           `yaml:"max_claim_length" mapstructure:"max_claim_length"`
}

// HTTPConfig controls outbound fetching
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	MaxRedirects  int           `yaml:"max_redirects" mapstructure:"max_redirects"`
	MaxRetries    int           `yaml:"max_retries" mapstructure:"max_retries"`
	RetryBackoff  time.Duration `yaml:"retry_backoff" mapstructure:"retry_backoff"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	DomainRate    float64       `yaml:"domain_rate" mapstructure:"domain_rate"` // Requests per second per domain, 0 disables
	DomainBurst   int           `yaml:"domain_burst" mapstructure:"domain_burst"`
	RobotsAgent   string        `yaml:"robots_agent" mapstructure:"robots_agent"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
}

// SearchConfig controls the search strategy chain
type SearchConfig struct {
	Timeout          time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxCandidates    int           `yaml:"max_candidates" mapstructure:"max_candidates"`
	GoogleURL        string        `yaml:"google_url" mapstructure:"google_url"`
	BingURL          string        `yaml:"bing_url" mapstructure:"bing_url"`
	EnableGoogle     bool          `yaml:"enable_google" mapstructure:"enable_google"`
	EnableDirect     bool          `yaml:"enable_direct" mapstructure:"enable_direct"`
	EnableBing       bool          `yaml:"enable_bing" mapstructure:"enable_bing"`
	EnableFeeds      bool          `yaml:"enable_feeds" mapstructure:"enable_feeds"`
	SyntheticSnippet string        `yaml:"synthetic_snippet" mapstructure:"synthetic_snippet"`
}

// ScrapeConfig controls the orchestrator
type ScrapeConfig struct {
	Workers          int           `yaml:"workers" mapstructure:"workers"`
	MaxOperations    int           `yaml:"max_operations" mapstructure:"max_operations"`
	MaxResults       int           `yaml:"max_results" mapstructure:"max_results"`
	QueriesPerSource int           `yaml:"queries_per_source" mapstructure:"queries_per_source"`
	UnitTimeout      time.Duration `yaml:"unit_timeout" mapstructure:"unit_timeout"`
	MaxBodyChars     int           `yaml:"max_body_chars" mapstructure:"max_body_chars"`
}

// AnalysisConfig controls per-source analysis
type AnalysisConfig struct {
	Workers             int  `yaml:"workers" mapstructure:"workers"`
	UseAI               bool `yaml:"use_ai" mapstructure:"use_ai"`
	MinWordsForAI       int  `yaml:"min_words_for_ai" mapstructure:"min_words_for_ai"`
	MaxPromptChars      int  `yaml:"max_prompt_chars" mapstructure:"max_prompt_chars"`
	AIDefaultConfidence int  `yaml:"ai_default_confidence" mapstructure:"ai_default_confidence"`
}

// LLMConfig selects the completion provider. An empty provider disables AI analysis.
type LLMConfig struct {
	Provider    string        `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama
	Model       string        `yaml:"model" mapstructure:"model"`
	APIKey      string        `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL     string        `yaml:"base_url,omitempty" mapstructure:"base_url"`
	MaxTokens   int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64       `yaml:"temperature" mapstructure:"temperature"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// FactCheckConfig controls external fact-check services
type FactCheckConfig struct {
	GoogleAPIKey      string        `yaml:"google_api_key,omitempty" mapstructure:"google_api_key"`
	GoogleBaseURL     string        `yaml:"google_base_url" mapstructure:"google_base_url"`
	ClaimBusterAPIKey string        `yaml:"claimbuster_api_key,omitempty" mapstructure:"claimbuster_api_key"`
	ClaimBusterURL    string        `yaml:"claimbuster_url" mapstructure:"claimbuster_url"`
	MaxReviews        int           `yaml:"max_reviews" mapstructure:"max_reviews"`
	Confidence        int           `yaml:"confidence" mapstructure:"confidence"`
	Credibility       int           `yaml:"credibility" mapstructure:"credibility"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// VerdictConfig holds the aggregation weights and bounds
type VerdictConfig struct {
	TrueWeight           float64 `yaml:"true_weight" mapstructure:"true_weight"`
	MostlyTrueWeight     float64 `yaml:"mostly_true_weight" mapstructure:"mostly_true_weight"`
	MixedWeight          float64 `yaml:"mixed_weight" mapstructure:"mixed_weight"`
	UnverifiedWeight     float64 `yaml:"unverified_weight" mapstructure:"unverified_weight"`
	Threshold            float64 `yaml:"threshold" mapstructure:"threshold"`
	DominanceRatio       float64 `yaml:"dominance_ratio" mapstructure:"dominance_ratio"`
	ManySourcesBonus     int     `yaml:"many_sources_bonus" mapstructure:"many_sources_bonus"`
	SomeSourcesBonus     int     `yaml:"some_sources_bonus" mapstructure:"some_sources_bonus"`
	WideDiversityBonus   int     `yaml:"wide_diversity_bonus" mapstructure:"wide_diversity_bonus"`
	NarrowDiversityBonus int     `yaml:"narrow_diversity_bonus" mapstructure:"narrow_diversity_bonus"`
	MinConfidence        int     `yaml:"min_confidence" mapstructure:"min_confidence"`
	MaxConfidence        int     `yaml:"max_confidence" mapstructure:"max_confidence"`
	SatireMinConfidence  int     `yaml:"satire_min_confidence" mapstructure:"satire_min_confidence"`
	FringeMode           string  `yaml:"fringe_mode" mapstructure:"fringe_mode"` // annotate, weighted
	CredibilityWeighting bool    `yaml:"credibility_weighting" mapstructure:"credibility_weighting"`
}

// SourcesConfig controls source selection
type SourcesConfig struct {
	MaxPerCategory int  `yaml:"max_per_category" mapstructure:"max_per_category"`
	IncludeFringe  bool `yaml:"include_fringe" mapstructure:"include_fringe"`
}

// CacheConfig controls in-memory caching
type CacheConfig struct {
	Enabled     bool          `yaml:"enabled" mapstructure:"enabled"`
	PageTTL     time.Duration `yaml:"page_ttl" mapstructure:"page_ttl"`
	ResponseTTL time.Duration `yaml:"response_ttl" mapstructure:"response_ttl"`
	FactTTL     time.Duration `yaml:"factcheck_ttl" mapstructure:"factcheck_ttl"`
}

// EngineConfig controls the end-to-end request
type EngineConfig struct {
	Deadline time.Duration `yaml:"deadline" mapstructure:"deadline"`
}

// LogConfig controls structured logging
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // text, json
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3001,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    90 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			AllowedOrigin:   "*",
			MaxClaimLength:  1000,
		},
		HTTP: HTTPConfig{
			Timeout:       10 * time.Second,
			UserAgent:     "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
			MaxBodyBytes:  5 * 1024 * 1024,
			MaxRedirects:  3,
			MaxRetries:    2,
			RetryBackoff:  time.Second,
			RespectRobots: true,
			DomainRate:    2,
			DomainBurst:   2,
			RobotsAgent:   "crosscheck",
		},
		Search: SearchConfig{
			Timeout:          8 * time.Second,
			MaxCandidates:    5,
			GoogleURL:        "https://www.google.com/search",
			BingURL:          "https://www.bing.com/search",
			EnableGoogle:     true,
			EnableDirect:     true,
			EnableBing:       true,
			EnableFeeds:      true,
			SyntheticSnippet: "Search results were not available; this outlet may have covered the topic.",
		},
		Scrape: ScrapeConfig{
			Workers:          6,
			MaxOperations:    20,
			MaxResults:       12,
			QueriesPerSource: 2,
			UnitTimeout:      20 * time.Second,
			MaxBodyChars:     20000,
		},
		Analysis: AnalysisConfig{
			Workers:             6,
			UseAI:               true,
			MinWordsForAI:       50,
			MaxPromptChars:      4000,
			AIDefaultConfidence: 60,
		},
		LLM: LLMConfig{
			MaxTokens:   500,
			Temperature: 0.3,
			Timeout:     30 * time.Second,
		},
		FactCheck: FactCheckConfig{
			GoogleBaseURL:  "https://factchecktools.googleapis.com/v1alpha1/claims:search",
			ClaimBusterURL: "https://idir.uta.edu/claimbuster/api/v2/score/text/",
			MaxReviews:     3,
			Confidence:     85,
			Credibility:    90,
			Timeout:        8 * time.Second,
		},
		Verdict: VerdictConfig{
			TrueWeight:           4,
			MostlyTrueWeight:     3,
			MixedWeight:          2,
			UnverifiedWeight:     1,
			Threshold:            0.4,
			DominanceRatio:       1.5,
			ManySourcesBonus:     10,
			SomeSourcesBonus:     5,
			WideDiversityBonus:   8,
			NarrowDiversityBonus: 4,
			MinConfidence:        25,
			MaxConfidence:        95,
			SatireMinConfidence:  85,
			FringeMode:           "annotate",
		},
		Sources: SourcesConfig{
			MaxPerCategory: 3,
		},
		Cache: CacheConfig{
			Enabled:     true,
			PageTTL:     30 * time.Minute,
			ResponseTTL: 10 * time.Minute,
			FactTTL:     time.Hour,
		},
		Engine: EngineConfig{
			Deadline: 45 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
