package model

import (
	"fmt"
	"strings"
)

// Category places a source on the coverage spectrum
type Category string

const (
	CategoryLeft          Category = "left"
	CategoryCenter        Category = "center"
	CategoryRight         Category = "right"
	CategoryInternational Category = "international"
	CategoryFactCheck     Category = "factcheck"
	CategoryFringe        Category = "fringe"
)

// BalancedCategories is the order in which balanced selection walks the catalog.
// Fringe is never part of a balanced selection.
var BalancedCategories = []Category{
	CategoryLeft,
	CategoryCenter,
	CategoryRight,
	CategoryInternational,
	CategoryFactCheck,
}

// AllCategories lists every known category
var AllCategories = []Category{
	CategoryLeft,
	CategoryCenter,
	CategoryRight,
	CategoryInternational,
	CategoryFactCheck,
	CategoryFringe,
}

// ParseCategory converts a user-supplied string to a Category.
// "external" is accepted as an alias for factcheck.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return CategoryLeft, nil
	case "center", "centre":
		return CategoryCenter, nil
	case "right":
		return CategoryRight, nil
	case "international":
		return CategoryInternational, nil
	case "factcheck", "fact-check", "external":
		return CategoryFactCheck, nil
	case "fringe":
		return CategoryFringe, nil
	default:
		return "", fmt.Errorf("unknown category: %q", s)
	}
}

// IsSpectrum reports whether the category counts toward political balance
func (c Category) IsSpectrum() bool {
	switch c {
	case CategoryLeft, CategoryCenter, CategoryRight, CategoryInternational:
		return true
	case CategoryFactCheck, CategoryFringe:
		return false
	default:
		return false
	}
}

// Label returns a human-readable description used in prompts and summaries
func (c Category) Label() string {
	switch c {
	case CategoryLeft:
		return "left-leaning"
	case CategoryCenter:
		return "center"
	case CategoryRight:
		return "right-leaning"
	case CategoryInternational:
		return "international"
	case CategoryFactCheck:
		return "professional fact-checker"
	case CategoryFringe:
		return "fringe"
	default:
		return "unknown"
	}
}

// Source is a news outlet or fact-checker the pipeline can search
type Source struct {
	Name             string   `json:"name" yaml:"name"`
	Domain           string   `json:"domain" yaml:"domain"`
	Category         Category `json:"category" yaml:"category"`
	CredibilityScore int      `json:"credibilityScore" yaml:"credibility_score"`
	SearchURL        string   `json:"searchUrl,omitempty" yaml:"search_url,omitempty"` // Query is appended URL-escaped
	FeedURL          string   `json:"feedUrl,omitempty" yaml:"feed_url,omitempty"`
	WarningLabel     string   `json:"warningLabel,omitempty" yaml:"warning_label,omitempty"`
}

// Favicon returns the favicon URL shown next to results
func (s Source) Favicon() string {
	return FaviconURL(s.Domain)
}

// HomeURL returns the outlet's front page
func (s Source) HomeURL() string {
	return "https://" + s.Domain
}

// FaviconURL builds a favicon URL for an arbitrary domain
func FaviconURL(domain string) string {
	if domain == "" {
		domain = "example.com"
	}
	return fmt.Sprintf("https://www.google.com/s2/favicons?domain=%s&sz=32", domain)
}
