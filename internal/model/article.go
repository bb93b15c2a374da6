package model

import "time"

// QueryIntent names the purpose of a generated search query
type QueryIntent string

const (
	IntentPrimary      QueryIntent = "primary"
	IntentFactCheck    QueryIntent = "factCheck"
	IntentNews         QueryIntent = "news"
	IntentRecent       QueryIntent = "recent"
	IntentVerification QueryIntent = "verification"
	IntentDebunk       QueryIntent = "debunk"
	IntentEntity       QueryIntent = "entity"
	IntentClaimType    QueryIntent = "claimType"
)

// SearchQuery is one query string with the intent that produced it
type SearchQuery struct {
	Intent QueryIntent `json:"intent" yaml:"intent"`
	Text   string      `json:"text" yaml:"text"`
}

// ArticleCandidate is a search hit not yet fetched
type ArticleCandidate struct {
	Title            string `json:"title" yaml:"title"`
	URL              string `json:"url" yaml:"url"`
	Snippet          string `json:"snippet" yaml:"snippet"`
	SourceName       string `json:"sourceName" yaml:"source_name"`
	PublishDateGuess string `json:"publishDate,omitempty" yaml:"publish_date,omitempty"`
	Strategy         string `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	Synthetic        bool   `json:"synthetic,omitempty" yaml:"synthetic,omitempty"` // Placeholder, never fetched
}

// ExtractionMethod records how the article body was obtained
type ExtractionMethod string

const (
	ExtractionPrimary         ExtractionMethod = "primary"
	ExtractionFallbackSnippet ExtractionMethod = "fallback-snippet"
	ExtractionUnavailable     ExtractionMethod = "unavailable"
)

// ScrapedContent is the extracted article. WordCount is 0 iff Method is unavailable.
type ScrapedContent struct {
	URL         string           `json:"url" yaml:"url"`
	Title       string           `json:"title" yaml:"title"`
	BodyText    string           `json:"bodyText" yaml:"body_text"`
	WordCount   int              `json:"wordCount" yaml:"word_count"`
	Author      string           `json:"author,omitempty" yaml:"author,omitempty"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	PublishDate string           `json:"publishDate,omitempty" yaml:"publish_date,omitempty"`
	Method      ExtractionMethod `json:"method" yaml:"method"`
	Strategy    string           `json:"strategy,omitempty" yaml:"strategy,omitempty"` // Which content stage matched
	Error       string           `json:"error,omitempty" yaml:"error,omitempty"`
	ScrapedAt   time.Time        `json:"scrapedAt" yaml:"scraped_at"`
}

// Usable reports whether the content carries any text
func (c ScrapedContent) Usable() bool {
	return c.Method != ExtractionUnavailable && c.WordCount > 0
}

// ScrapeUnit is one (source, query) search plus the fetched article
type ScrapeUnit struct {
	Source      Source           `json:"source" yaml:"source"`
	Query       SearchQuery      `json:"query" yaml:"query"`
	Article     ArticleCandidate `json:"article" yaml:"article"`
	Content     ScrapedContent   `json:"content" yaml:"content"`
	Unconfirmed bool             `json:"unconfirmed,omitempty" yaml:"unconfirmed,omitempty"`
	Duration    time.Duration    `json:"duration" yaml:"duration"`
}
