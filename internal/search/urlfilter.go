package search

import (
	"net/url"
	"strings"
)

// Substrings that mark a URL as a listing, account or media page rather than an article
var blockedPatterns = []string{
	"/search", "?q=", "&q=", "/tag/", "/tags/", "/category/", "/categories/", "/author/", "/page/",
	"/video/", "/videos/", "/gallery/", "/galleries/", "/photos/", "/live/",
	"javascript:", "mailto:", "#",
	"/login", "/signin", "/sign-in", "/signup", "/register", "/account", "/subscribe", "/subscription", "/newsletter",
}

// Hosts of the general search engines themselves
var engineHosts = []string{"google.", "bing.com", "duckduckgo.com", "yahoo.com"}

// IsValidArticleURL rejects non-article pages and requires a path segment longer than 3 characters
func IsValidArticleURL(raw string) bool {
	if raw == "" {
		return false
	}

	lower := strings.ToLower(raw)
	for _, p := range blockedPatterns {
		if strings.Contains(lower, p) {
			return false
		}
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}

	host := strings.ToLower(parsed.Hostname())
	for _, h := range engineHosts {
		if strings.Contains(host, h) {
			return false
		}
	}

	for _, seg := range strings.Split(parsed.Path, "/") {
		if len(seg) > 3 {
			return true
		}
	}
	return false
}

// onDomain reports whether raw is hosted on domain or one of its subdomains
func onDomain(raw, domain string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	domain = strings.TrimPrefix(strings.ToLower(domain), "www.")
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// resolveLink makes href absolute against the source's domain
func resolveLink(href, domain string) string {
	href = strings.TrimSpace(href)
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	case strings.HasPrefix(href, "/"):
		return "https://" + domain + href
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	case strings.Contains(href, ":"):
		// javascript:, mailto: and other schemes are left for the filter to reject
		return href
	default:
		return "https://" + domain + "/" + href
	}
}

// unwrapRedirect extracts the target from Google's /url?q= redirect links
func unwrapRedirect(href string) string {
	if !strings.HasPrefix(href, "/url?") && !strings.Contains(href, "google.com/url?") {
		return href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := parsed.Query().Get("q"); target != "" {
		return target
	}
	if target := parsed.Query().Get("url"); target != "" {
		return target
	}
	return href
}
