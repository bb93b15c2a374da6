package adapters

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestRegistry_FindAdapter(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		url  string
		want string
	}{
		{"https://www.npr.org/2024/05/01/story", "npr"},
		{"https://www.reuters.com/world/story/", "reuters"},
		{"https://www.bbc.co.uk/news/world-123", "bbc"},
		{"https://edition.cnn.com/2024/health/story", "cnn"},
		{"https://example.com/story", ""},
		{"://bad", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			a := r.FindAdapter(tt.url)
			got := ""
			if a != nil {
				got = a.Name()
			}
			if got != tt.want {
				t.Errorf("FindAdapter(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestSiteAdapter_ContentSelectorOrder(t *testing.T) {
	page := `<html><body>
<div class="article-body__content"><p>second choice</p></div>
<div data-testid="ArticleBody"><p>first choice</p></div>
</body></html>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}

	a := NewRegistry().FindAdapter("https://www.reuters.com/x")
	got := strings.TrimSpace(a.Content(doc).Text())
	if got != "first choice" {
		t.Errorf("Content = %q, want the first selector's match", got)
	}
}

func TestSiteAdapter_NoMatchIsEmpty(t *testing.T) {
	doc, _ := goquery.NewDocumentFromReader(strings.NewReader("<p>nothing here</p>"))
	a := NewSiteAdapter("x", []string{"x.com"}, ".missing")
	if sel := a.Content(doc); sel != nil {
		t.Errorf("expected nil selection, got %d nodes", sel.Length())
	}
}

func TestRegistry_RegisterOrder(t *testing.T) {
	r := &Registry{}
	r.Register(NewSiteAdapter("first", []string{"example.com"}))
	r.Register(NewSiteAdapter("second", []string{"example.com"}))

	if a := r.FindAdapter("https://example.com/a"); a == nil || a.Name() != "first" {
		t.Errorf("earlier registration should win, got %v", a)
	}
}
