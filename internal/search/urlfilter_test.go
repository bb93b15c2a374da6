package search

import "testing"

func TestIsValidArticleURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.reuters.com/world/vaccine-claims-2024/", true},
		{"http://npr.org/2024/05/01/story", true},
		{"https://www.reuters.com/", false},
		{"https://www.reuters.com/a/b/", false},
		{"https://www.reuters.com/search?query=x", false},
		{"https://www.bbc.com/news?q=vaccines", false},
		{"https://www.foxnews.com/tag/politics", false},
		{"https://www.cnn.com/author/jane-doe", false},
		{"https://www.cnn.com/videos/health/clip", false},
		{"https://www.nytimes.com/subscription/offer", false},
		{"https://www.nytimes.com/section/story#comments", false},
		{"https://www.google.com/amp/story-here", false},
		{"https://www.bing.com/news/article-x", false},
		{"javascript:void(0)", false},
		{"mailto:tips@example.com", false},
		{"ftp://files.example.com/archive/file", false},
		{"/world/relative-path", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := IsValidArticleURL(tt.url); got != tt.want {
				t.Errorf("IsValidArticleURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestOnDomain(t *testing.T) {
	tests := []struct {
		url, domain string
		want        bool
	}{
		{"https://www.reuters.com/x", "reuters.com", true},
		{"https://edition.cnn.com/x", "cnn.com", true},
		{"https://reuters.com.evil.io/x", "reuters.com", false},
		{"https://notreuters.com/x", "reuters.com", false},
		{"https://www.bbc.com/x", "www.bbc.com", true},
	}
	for _, tt := range tests {
		if got := onDomain(tt.url, tt.domain); got != tt.want {
			t.Errorf("onDomain(%q, %q) = %v, want %v", tt.url, tt.domain, got, tt.want)
		}
	}
}

func TestResolveLink(t *testing.T) {
	tests := []struct{ href, want string }{
		{"/world/story", "https://npr.org/world/story"},
		{"//cdn.npr.org/story", "https://cdn.npr.org/story"},
		{"https://npr.org/a", "https://npr.org/a"},
		{"section/story", "https://npr.org/section/story"},
		{"javascript:void(0)", "javascript:void(0)"},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := resolveLink(tt.href, "npr.org"); got != tt.want {
			t.Errorf("resolveLink(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}

func TestUnwrapRedirect(t *testing.T) {
	tests := []struct{ href, want string }{
		{"/url?q=https://www.npr.org/story&sa=U", "https://www.npr.org/story"},
		{"https://www.google.com/url?url=https://apnews.com/article/x", "https://apnews.com/article/x"},
		{"https://www.npr.org/story", "https://www.npr.org/story"},
	}
	for _, tt := range tests {
		if got := unwrapRedirect(tt.href); got != tt.want {
			t.Errorf("unwrapRedirect(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}

func TestDateFromSnippet(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Posted 3/14/2024 by staff", "3/14/2024"},
		{"Updated 2024-02-29 09:00", "2024-02-29"},
		{"Jan 5, 2023 - story text", "Jan 5, 2023"},
		{"Published 12 March 2022", "12 March 2022"},
		{"no date here", ""},
	}
	for _, tt := range tests {
		if got := DateFromSnippet(tt.in); got != tt.want {
			t.Errorf("DateFromSnippet(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
