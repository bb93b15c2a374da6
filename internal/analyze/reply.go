package analyze

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/crosscheck/internal/model"
)

// reply is the validated form of a model response
type reply struct {
	Verdict         model.RawVerdict
	Confidence      int
	Summary         string
	Reasoning       string
	EvidenceQuality model.EvidenceQuality
	Relevance       model.Relevance
}

type rawReply struct {
	Verdict         string          `json:"verdict"`
	Confidence      json.RawMessage `json:"confidence"`
	Reasoning       string          `json:"reasoning"`
	Summary         string          `json:"summary"`
	EvidenceQuality string          `json:"evidence_quality"`
	Relevance       string          `json:"relevance"`
}

var percentPattern = regexp.MustCompile(`(\d{1,3})\s*%`)

// parseReply reads the first JSON object in text, falling back to a keyword
// reading of the prose when there is none.
func parseReply(text string, defaultConfidence int) reply {
	if obj := firstJSONObject(text); obj != "" {
		var raw rawReply
		if err := json.Unmarshal([]byte(obj), &raw); err == nil {
			return validate(raw, defaultConfidence)
		}
	}
	return parseText(text, defaultConfidence)
}

func validate(raw rawReply, defaultConfidence int) reply {
	verdict, _ := model.ParseRawVerdict(raw.Verdict)
	confidence, ok := parseConfidence(raw.Confidence)
	if !ok {
		confidence = defaultConfidence
	}
	return reply{
		Verdict:         verdict,
		Confidence:      clamp(confidence, 0, 100),
		Summary:         strings.TrimSpace(raw.Summary),
		Reasoning:       strings.TrimSpace(raw.Reasoning),
		EvidenceQuality: parseEvidence(raw.EvidenceQuality),
		Relevance:       parseRelevance(raw.Relevance),
	}
}

// parseConfidence accepts 85, 85.5, "85" and "85%"
func parseConfidence(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f + 0.5), true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f + 0.5), true
}

func parseEvidence(s string) model.EvidenceQuality {
	switch model.EvidenceQuality(strings.ToLower(strings.TrimSpace(s))) {
	case model.EvidenceStrong:
		return model.EvidenceStrong
	case model.EvidenceModerate:
		return model.EvidenceModerate
	case model.EvidenceNone:
		return model.EvidenceNone
	default:
		return model.EvidenceWeak
	}
}

func parseRelevance(s string) model.Relevance {
	switch model.Relevance(strings.ToLower(strings.TrimSpace(s))) {
	case model.RelevanceHigh:
		return model.RelevanceHigh
	case model.RelevanceMedium:
		return model.RelevanceMedium
	default:
		return model.RelevanceLow
	}
}

// parseText interprets a prose reply
func parseText(text string, defaultConfidence int) reply {
	lower := strings.ToLower(text)
	hasTrue := strings.Contains(lower, "true")
	hasFalse := strings.Contains(lower, "false")
	mostly := strings.Contains(lower, "mostly")

	verdict := model.RawUnverified
	negated, isNegated := model.NegatedVerdict(lower)
	switch {
	case isNegated:
		verdict = negated
	case hasTrue && !hasFalse:
		verdict = model.RawTrue
		if mostly {
			verdict = model.RawMostlyTrue
		}
	case hasFalse && !hasTrue:
		verdict = model.RawFalse
		if mostly {
			verdict = model.RawMostlyFalse
		}
	case strings.Contains(lower, "mixed"), strings.Contains(lower, "partial"):
		verdict = model.RawMixed
	}

	confidence := defaultConfidence
	if m := percentPattern.FindAllStringSubmatch(text, -1); len(m) > 0 {
		if n, err := strconv.Atoi(m[len(m)-1][1]); err == nil {
			confidence = n
		}
	}

	summary := strings.TrimSpace(text)
	if r := []rune(summary); len(r) > 150 {
		summary = string(r[:150]) + "..."
	}

	return reply{
		Verdict:         verdict,
		Confidence:      clamp(confidence, 0, 100),
		Summary:         summary,
		EvidenceQuality: model.EvidenceWeak,
		Relevance:       model.RelevanceLow,
	}
}

// firstJSONObject returns the first balanced {...} in s, skipping braces
// inside string literals. It returns "" when no object closes.
func firstJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	for start >= 0 {
		depth := 0
		inString := false
		escaped := false
		for i := start; i < len(s); i++ {
			c := s[i]
			if inString {
				switch {
				case escaped:
					escaped = false
				case c == '\\':
					escaped = true
				case c == '"':
					inString = false
				}
				continue
			}
			switch c {
			case '"':
				inString = true
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
		next := strings.IndexByte(s[start+1:], '{')
		if next < 0 {
			return ""
		}
		start += next + 1
	}
	return ""
}
