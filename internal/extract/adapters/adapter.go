// Package adapters holds per-outlet knowledge of where the article body lives.
package adapters

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Adapter locates the article body for the outlets it handles
type Adapter interface {
	// Name returns the adapter name
	Name() string

	// CanHandle checks if this adapter can handle the given URL
	CanHandle(rawURL string) bool

	// Content returns the body containers, or nil when none match
	Content(doc *goquery.Document) *goquery.Selection
}

// Registry manages domain adapters
type Registry struct {
	adapters []Adapter
}

// NewRegistry creates a registry with the built-in outlet adapters
func NewRegistry() *Registry {
	registry := &Registry{}
	for _, a := range builtinSites {
		registry.Register(a)
	}
	return registry
}

// Register registers a new adapter. Earlier registrations win.
func (r *Registry) Register(adapter Adapter) {
	r.adapters = append(r.adapters, adapter)
}

// FindAdapter returns the adapter for rawURL, or nil when no outlet matches
func (r *Registry) FindAdapter(rawURL string) Adapter {
	for _, adapter := range r.adapters {
		if adapter.CanHandle(rawURL) {
			return adapter
		}
	}
	return nil
}

// SiteAdapter tries a fixed list of selectors on a set of domains
type SiteAdapter struct {
	name      string
	domains   []string
	selectors []string
}

// NewSiteAdapter creates an adapter for domains (subdomains included)
func NewSiteAdapter(name string, domains []string, selectors ...string) *SiteAdapter {
	return &SiteAdapter{name: name, domains: domains, selectors: selectors}
}

func (a *SiteAdapter) Name() string { return a.name }

func (a *SiteAdapter) CanHandle(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, d := range a.domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// Content returns the matches of the first selector that finds anything
func (a *SiteAdapter) Content(doc *goquery.Document) *goquery.Selection {
	for _, sel := range a.selectors {
		if found := doc.Find(sel); found.Length() > 0 {
			return found
		}
	}
	return nil
}
