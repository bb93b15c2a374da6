// Package catalog holds the immutable list of outlets the pipeline searches.
package catalog

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/ppiankov/crosscheck/internal/model"
)

// Catalog is a read-only source list. Safe for concurrent use.
type Catalog struct {
	sources  []model.Source
	byDomain map[string]int
}

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := New(defaultSources)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog invalid: %v", err))
	}
	return c
}

// New validates sources and builds a catalog from a copy of them
func New(sources []model.Source) (*Catalog, error) {
	c := &Catalog{
		sources:  make([]model.Source, 0, len(sources)),
		byDomain: make(map[string]int, len(sources)),
	}

	for _, s := range sources {
		if s.Name == "" {
			return nil, fmt.Errorf("source with domain %q has no name", s.Domain)
		}
		domain := normalizeHost(s.Domain)
		if domain == "" {
			return nil, fmt.Errorf("source %q has no domain", s.Name)
		}
		if s.CredibilityScore < 0 || s.CredibilityScore > 100 {
			return nil, fmt.Errorf("source %q: credibility %d out of range", s.Name, s.CredibilityScore)
		}
		if _, err := model.ParseCategory(string(s.Category)); err != nil {
			return nil, fmt.Errorf("source %q: %w", s.Name, err)
		}
		if _, dup := c.byDomain[domain]; dup {
			return nil, fmt.Errorf("duplicate domain %q", domain)
		}
		s.Domain = domain
		c.byDomain[domain] = len(c.sources)
		c.sources = append(c.sources, s)
	}

	return c, nil
}

// All returns every source in catalog order
func (c *Catalog) All() []model.Source {
	out := make([]model.Source, len(c.sources))
	copy(out, c.sources)
	return out
}

// Len returns the number of sources
func (c *Catalog) Len() int {
	return len(c.sources)
}

// ByCategory returns the sources of one category in catalog order
func (c *Catalog) ByCategory(cat model.Category) []model.Source {
	var out []model.Source
	for _, s := range c.sources {
		if s.Category == cat {
			out = append(out, s)
		}
	}
	return out
}

// ByDomain finds a source by exact domain. A leading "www." is ignored.
func (c *Catalog) ByDomain(domain string) (model.Source, bool) {
	if i, ok := c.byDomain[normalizeHost(domain)]; ok {
		return c.sources[i], true
	}
	return model.Source{}, false
}

// ByURL finds the source owning a URL, matching subdomains (edition.cnn.com -> cnn.com)
func (c *Catalog) ByURL(rawURL string) (model.Source, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return model.Source{}, false
	}
	host := normalizeHost(parsed.Hostname())

	if s, ok := c.ByDomain(host); ok {
		return s, true
	}
	for _, s := range c.sources {
		if strings.HasSuffix(host, "."+s.Domain) {
			return s, true
		}
	}
	return model.Source{}, false
}

// HighCredibility returns sources scoring at least minScore
func (c *Catalog) HighCredibility(minScore int) []model.Source {
	var out []model.Source
	for _, s := range c.sources {
		if s.CredibilityScore >= minScore {
			out = append(out, s)
		}
	}
	return out
}

// BalancedSelection takes up to maxPerCategory of the most credible sources from
// each of left, center, right, international and factcheck, in that order.
// Fringe sources are never included.
func (c *Catalog) BalancedSelection(maxPerCategory int) []model.Source {
	if maxPerCategory <= 0 {
		return nil
	}

	var out []model.Source
	for _, cat := range model.BalancedCategories {
		group := c.ByCategory(cat)
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].CredibilityScore > group[j].CredibilityScore
		})
		if len(group) > maxPerCategory {
			group = group[:maxPerCategory]
		}
		out = append(out, group...)
	}
	return out
}

func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	host = strings.TrimSuffix(host, ".")
	return strings.TrimPrefix(host, "www.")
}
