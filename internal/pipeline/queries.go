package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/crosscheck/internal/model"
)

// Entity queries per claim
const maxEntityQueries = 2

// GenerateQueries builds the search queries for a claim in a fixed intent order:
// primary, factCheck, news, recent, verification, debunk, entity queries, then
// one claim-type query where the type has one. now supplies the years for the
// recent query.
func GenerateQueries(ca model.ClaimAnalysis, now time.Time) []model.SearchQuery {
	words := queryWords(ca)
	if len(words) == 0 {
		return nil
	}

	all := strings.Join(words, " ")
	year := now.Year()

	queries := []model.SearchQuery{
		{Intent: model.IntentPrimary, Text: all},
		{Intent: model.IntentFactCheck, Text: fmt.Sprintf("%q fact check", head(words, 3))},
		{Intent: model.IntentNews, Text: all + " news"},
		{Intent: model.IntentRecent, Text: fmt.Sprintf("%s %d %d", all, year, year-1)},
		{Intent: model.IntentVerification, Text: head(words, 2) + " verify truth"},
		{Intent: model.IntentDebunk, Text: head(words, 2) + " debunk false"},
	}

	n := 0
	for _, ent := range ca.Entities {
		if n >= maxEntityQueries {
			break
		}
		value := strings.TrimSpace(ent.Value)
		if value == "" {
			continue
		}
		queries = append(queries, model.SearchQuery{
			Intent: model.IntentEntity,
			Text:   fmt.Sprintf("%q %s", value, words[0]),
		})
		n++
	}

	if suffix := claimTypeSuffix(ca.ClaimType); suffix != "" {
		queries = append(queries, model.SearchQuery{Intent: model.IntentClaimType, Text: all + " " + suffix})
	}
	return queries
}

func claimTypeSuffix(t model.ClaimType) string {
	switch t {
	case model.ClaimTypeStatistical:
		return "statistics data study"
	case model.ClaimTypeScientific:
		return "study research peer review"
	case model.ClaimTypeConspiracy:
		return "conspiracy theory debunk"
	case model.ClaimTypeCausal, model.ClaimTypeComparative, model.ClaimTypePredictive,
		model.ClaimTypeHistorical, model.ClaimTypeGeneral:
		return ""
	default:
		return ""
	}
}

// queryWords prefers the unstemmed terms, which read better to search engines.
// At most five words are used.
func queryWords(ca model.ClaimAnalysis) []string {
	words := ca.Terms
	if len(words) == 0 {
		words = ca.Keywords
	}
	if len(words) > 5 {
		words = words[:5]
	}
	return words
}

func head(words []string, n int) string {
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}
