package claim

var stopWords = toSet(
	"the", "is", "are", "was", "were", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with", "by",
	"that", "this", "they", "them", "their", "there", "then", "than", "when", "where", "why", "how", "what", "who",
	"will", "would", "could", "should", "can", "may", "might", "must", "shall", "do", "does", "did", "have", "has", "had",
	"said", "says", "say", "according", "reports", "claims", "states", "news", "article",
	"its", "it's", "from", "not", "been", "being", "into", "about", "all", "any", "our", "your", "his", "her", "she",
	"him", "you", "which", "while", "also", "just", "very",
)

var positiveWords = toSet(
	"good", "great", "excellent", "amazing", "wonderful", "fantastic", "positive", "beneficial", "helpful", "successful",
)

var negativeWords = toSet(
	"bad", "terrible", "awful", "horrible", "negative", "harmful", "dangerous", "failed", "wrong", "false",
)

// Places recognized as entities even at the start of a sentence
var knownPlaces = toSet(
	"america", "united states", "us", "usa", "u.s.", "china", "russia", "ukraine", "israel", "iran", "iraq", "india",
	"pakistan", "canada", "mexico", "brazil", "argentina", "uk", "britain", "great britain", "england", "scotland",
	"ireland", "france", "germany", "italy", "spain", "japan", "korea", "north korea", "south korea", "taiwan",
	"europe", "africa", "asia", "australia", "gaza", "syria", "turkey", "egypt", "venezuela", "cuba",
	"washington", "new york", "california", "texas", "florida", "london", "paris", "beijing", "moscow", "kyiv",
	"jerusalem", "berlin", "tokyo", "chicago", "los angeles",
)

// Trailing words that mark a capitalized phrase as an organization
var orgMarkers = toSet(
	"inc", "corp", "corporation", "company", "co", "university", "institute", "department", "agency", "association",
	"organization", "party", "congress", "senate", "bank", "foundation", "council", "commission", "court", "ministry",
	"administration", "committee", "group", "times", "post", "news", "network", "union", "army", "police",
)

var months = toSet(
	"january", "february", "march", "april", "may", "june", "july", "august", "september", "october", "november",
	"december", "jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "sept", "oct", "nov", "dec",
)

func toSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

func inSet(m map[string]struct{}, w string) bool {
	_, ok := m[w]
	return ok
}
