package claim

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s and strips diacritics ("Café" -> "cafe")
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// Tokenize folds s and splits it into letter/digit runs
func Tokenize(s string) []string {
	return strings.FieldsFunc(Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return s != ""
}

var (
	syllableSuffix = regexp.MustCompile(`(?:[^laeiouy]es|ed|[^laeiouy]e)$`)
	syllableLeadY  = regexp.MustCompile(`^y`)
	syllableGroup  = regexp.MustCompile(`[aeiouy]{1,2}`)
)

// CountSyllables estimates the syllable count of an English word
func CountSyllables(word string) int {
	word = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, word)
	if len(word) <= 3 {
		return 1
	}
	word = syllableSuffix.ReplaceAllString(word, "")
	word = syllableLeadY.ReplaceAllString(word, "")
	if n := len(syllableGroup.FindAllString(word, -1)); n > 0 {
		return n
	}
	return 1
}
