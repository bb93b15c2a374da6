// Package claim turns a raw claim string into a structured ClaimAnalysis.
package claim

import (
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"

	"github.com/ppiankov/crosscheck/internal/logging"
	"github.com/ppiankov/crosscheck/internal/model"
)

const (
	maxKeywords = 8
	maxEntities = 5
)

// Analyzer extracts keywords, entities and classification from claims.
// It is stateless and safe for concurrent use.
type Analyzer struct {
	logger *slog.Logger
	stem   func(string) string
	tagger func(string) []model.Entity
}

// NewAnalyzer creates a claim analyzer
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	return &Analyzer{
		logger: logging.OrDefault(logger),
		stem:   Stem,
		tagger: extractEntities,
	}
}

// Stem returns the Snowball English stem of a lowercase word
func Stem(word string) string {
	return english.Stem(word, false)
}

// Analyze never fails: an internal panic yields Fallback(claim)
func (a *Analyzer) Analyze(claim string) (result model.ClaimAnalysis) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("claim analysis failed, using fallback", "error", fmt.Sprint(r))
			result = Fallback(claim)
		}
	}()

	keywords, terms := a.extractKeywords(claim)
	result = model.ClaimAnalysis{
		OriginalClaim: claim,
		Keywords:      keywords,
		Terms:         terms,
		Entities:      a.safeEntities(claim),
		ClaimType:     ClassifyType(claim),
		Sentiment:     analyzeSentiment(claim),
		Complexity:    assessComplexity(claim),
		Indicators:    findFactualIndicators(claim),
		Temporal:      extractTemporalContext(claim),
		Confidence:    Confidence(claim),
	}

	a.logger.Debug("claim analyzed",
		"type", result.ClaimType,
		"keywords", len(result.Keywords),
		"entities", len(result.Entities),
		"complexity", result.Complexity.Level)
	return result
}

// Fallback builds the minimal analysis used when normal analysis fails
func Fallback(claim string) model.ClaimAnalysis {
	words := strings.Fields(claim)
	if len(words) > 5 {
		words = words[:5]
	}
	return model.ClaimAnalysis{
		OriginalClaim: claim,
		Keywords:      words,
		Terms:         words,
		Entities:      []model.Entity{},
		ClaimType:     model.ClaimTypeGeneral,
		Sentiment:     model.Sentiment{Label: "neutral"},
		Complexity:    model.Complexity{Level: model.ComplexityModerate, Score: 10},
		Confidence:    50,
		Fallback:      true,
	}
}

// extractKeywords returns stems and their first-seen surface forms
func (a *Analyzer) extractKeywords(claim string) ([]string, []string) {
	seen := make(map[string]bool)
	var stems, terms []string

	for _, tok := range Tokenize(claim) {
		if len(tok) <= 2 || inSet(stopWords, tok) || !isAlpha(tok) {
			continue
		}
		s := a.stem(tok)
		if seen[s] {
			continue
		}
		seen[s] = true
		stems = append(stems, s)
		terms = append(terms, tok)
		if len(stems) == maxKeywords {
			break
		}
	}
	return stems, terms
}

func (a *Analyzer) safeEntities(claim string) (entities []model.Entity) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Debug("entity extraction failed", "error", fmt.Sprint(r))
			entities = []model.Entity{}
		}
	}()
	entities = a.tagger(claim)
	if len(entities) > maxEntities {
		entities = entities[:maxEntities]
	}
	return entities
}

var typeRules = []struct {
	claimType model.ClaimType
	pattern   *regexp.Regexp
}{
	{model.ClaimTypeStatistical, regexp.MustCompile(`\d+%|\d+\s*(percent|million|billion|thousand)`)},
	{model.ClaimTypeCausal, regexp.MustCompile(`\b(causes?|leads? to|results? in|because|due to)\b`)},
	{model.ClaimTypeComparative, regexp.MustCompile(`\b(more|less|better|worse|higher|lower|increased|decreased)\s+than\b`)},
	{model.ClaimTypePredictive, regexp.MustCompile(`\b(will|going to|predicts?|forecasts?|expects?)\b`)},
	{model.ClaimTypeHistorical, regexp.MustCompile(`\b(happened|occurred|was|were|did|last year|yesterday)\b|\bin \d{4}\b`)},
	{model.ClaimTypeConspiracy, regexp.MustCompile(`\b(hoax|conspiracy|false flag|cover.?up|they don't want|hidden|secret)\b`)},
	{model.ClaimTypeScientific, regexp.MustCompile(`\b(study|studies|research|scientists?|evidence|data|proves?)\b`)},
}

// ClassifyType applies the ordered type rules; the first match wins
func ClassifyType(claim string) model.ClaimType {
	lower := strings.ToLower(claim)
	for _, rule := range typeRules {
		if rule.pattern.MatchString(lower) {
			return rule.claimType
		}
	}
	return model.ClaimTypeGeneral
}

func analyzeSentiment(claim string) model.Sentiment {
	score := 0
	for _, w := range Tokenize(claim) {
		if inSet(positiveWords, w) {
			score++
		}
		if inSet(negativeWords, w) {
			score--
		}
	}

	label := "neutral"
	switch {
	case score > 0:
		label = "positive"
	case score < 0:
		label = "negative"
	}
	return model.Sentiment{Score: score, Label: label}
}

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

func assessComplexity(claim string) model.Complexity {
	words := strings.Fields(claim)

	sentences := 0
	for _, part := range sentenceSplit.Split(claim, -1) {
		if strings.TrimSpace(part) != "" {
			sentences++
		}
	}
	if sentences == 0 {
		sentences = 1
	}

	complexWords := 0
	for _, w := range words {
		if CountSyllables(w) >= 3 {
			complexWords++
		}
	}

	avg := float64(len(words)) / float64(sentences)
	score := avg*0.4 + float64(complexWords)*0.6
	score = math.Round(score*100) / 100

	level := model.ComplexitySimple
	switch {
	case score > 15:
		level = model.ComplexityComplex
	case score > 8:
		level = model.ComplexityModerate
	}

	return model.Complexity{
		Score:         score,
		Level:         level,
		WordCount:     len(words),
		SentenceCount: sentences,
		ComplexWords:  complexWords,
	}
}

var (
	properNounPair = regexp.MustCompile(`\b[A-Z][a-z]+\s+[A-Z][a-z]+\b`)
	numericToken   = regexp.MustCompile(`\d{4}|\d+%|\$\d+`)
	hedgeWords     = regexp.MustCompile(`\b(some|many|most|often|usually|generally)\b`)
)

// Confidence scores how checkable the claim is, clamped to [20,95]
func Confidence(claim string) int {
	confidence := 50

	wordCount := len(strings.Fields(claim))
	switch {
	case wordCount > 20:
		confidence += 15
	case wordCount > 10:
		confidence += 10
	}

	if properNounPair.MatchString(claim) {
		confidence += 10
	}
	if numericToken.MatchString(claim) {
		confidence += 10
	}
	if hedgeWords.MatchString(strings.ToLower(claim)) {
		confidence -= 10
	}

	return clamp(confidence, 20, 95)
}

var (
	certaintyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(definitely|certainly|absolutely|proven|confirmed|verified)\b`),
		regexp.MustCompile(`\b(always|never|all|none|every|no one)\b`),
	}
	uncertaintyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(allegedly|reportedly|supposedly|claims?|suggests?)\b`),
		regexp.MustCompile(`\b(might|may|could|possibly|probably|likely)\b`),
	}
	sourcingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(according to|study|research|report|survey|poll)\b`),
		regexp.MustCompile(`\b(expert|scientist|doctor|professor|official)\b`),
	}
)

func findFactualIndicators(claim string) model.FactualIndicators {
	lower := strings.ToLower(claim)
	collect := func(patterns []*regexp.Regexp) []string {
		out := []string{}
		for _, p := range patterns {
			out = append(out, p.FindAllString(lower, -1)...)
		}
		return out
	}
	return model.FactualIndicators{
		Certainty:   collect(certaintyPatterns),
		Uncertainty: collect(uncertaintyPatterns),
		Sources:     collect(sourcingPatterns),
	}
}

var (
	explicitDate = regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?\b|\b\d{1,2}/\d{1,2}/\d{2,4}\b|\b\d{4}-\d{2}-\d{2}\b|\b(?:1[89]|20)\d{2}\b`)
	timeReference = regexp.MustCompile(`(?i)\b(?:today|yesterday|tomorrow|tonight|recently|currently|now|(?:last|next|this) (?:week|month|year|decade|century)|\d+ (?:days|weeks|months|years) ago)\b`)
)

func extractTemporalContext(claim string) model.TemporalContext {
	dates := explicitDate.FindAllString(claim, -1)
	refs := timeReference.FindAllString(claim, -1)
	if dates == nil {
		dates = []string{}
	}
	if refs == nil {
		refs = []string{}
	}
	return model.TemporalContext{
		ExplicitDates:      dates,
		TimeReferences:     refs,
		HasTemporalContext: len(dates) > 0 || len(refs) > 0,
	}
}

// extractEntities tags capitalized phrases, acronyms and dates
func extractEntities(claim string) []model.Entity {
	entities := []model.Entity{}
	seen := make(map[string]bool)
	add := func(t model.EntityType, v string) {
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			return
		}
		seen[key] = true
		entities = append(entities, model.Entity{Type: t, Value: v})
	}

	for _, phrase := range capitalizedPhrases(claim) {
		add(classifyPhrase(phrase.text, phrase.sentenceStart))
	}
	for _, d := range explicitDate.FindAllString(claim, -1) {
		add(model.EntityDate, d)
	}
	return entities
}

type phrase struct {
	text          string
	sentenceStart bool
}

// capitalizedPhrases groups runs of capitalized words, allowing "of" inside a run
func capitalizedPhrases(claim string) []phrase {
	var out []phrase
	var run []string
	runAtStart := false
	atStart := true

	flush := func() {
		// Drop a trailing connector
		for len(run) > 0 && run[len(run)-1] == "of" {
			run = run[:len(run)-1]
		}
		if len(run) > 0 {
			out = append(out, phrase{text: strings.Join(run, " "), sentenceStart: runAtStart})
		}
		run = nil
	}

	for _, raw := range strings.Fields(claim) {
		word := strings.TrimFunc(raw, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.'
		})
		word = strings.TrimSuffix(word, ".")
		endsClause := strings.ContainsAny(raw[len(raw)-1:], ".,;:!?")

		switch {
		case len(run) == 0 && isArticle(word):
			// "The WHO" is tagged as "WHO"
		case isCapitalized(word):
			if len(run) == 0 {
				runAtStart = atStart
			}
			run = append(run, word)
		case word == "of" && len(run) > 0:
			run = append(run, word)
		default:
			flush()
		}

		atStart = strings.ContainsAny(raw[len(raw)-1:], ".!?")
		if endsClause {
			flush()
		}
	}
	flush()
	return out
}

func isArticle(word string) bool {
	switch word {
	case "The", "A", "An":
		return true
	}
	return false
}

func isCapitalized(word string) bool {
	for _, r := range word {
		return unicode.IsUpper(r)
	}
	return false
}

var acronym = regexp.MustCompile(`^[A-Z]{2,6}$`)

func classifyPhrase(text string, sentenceStart bool) (model.EntityType, string) {
	lower := strings.ToLower(text)
	words := strings.Fields(lower)

	if inSet(knownPlaces, lower) {
		return model.EntityPlace, text
	}
	if acronym.MatchString(text) {
		return model.EntityOrganization, text
	}
	if len(words) > 1 && inSet(orgMarkers, words[len(words)-1]) {
		return model.EntityOrganization, text
	}
	if len(words) == 1 && inSet(months, lower) {
		return model.EntityDate, text
	}
	// A lone capitalized word opening a sentence is usually not a name
	if sentenceStart && len(words) == 1 {
		return "", ""
	}
	return model.EntityPerson, text
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
