package extract

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/crosscheck/internal/fetch"
	"github.com/ppiankov/crosscheck/internal/logging"
	"github.com/ppiankov/crosscheck/internal/model"
)

const sentence = "The health ministry said the claim about microchips in vaccines has no scientific basis and was rejected by independent laboratories."

type fakeGetter struct {
	html string
	err  error
}

func (g fakeGetter) FetchArticle(ctx context.Context, rawURL string) (*fetch.Result, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &fetch.Result{HTML: g.html, StatusCode: 200, FinalURL: rawURL}, nil
}

func newTestExtractor(maxChars int) *Extractor {
	e := New(nil, maxChars, logging.Discard())
	e.now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }
	return e
}

func TestParse_ContentStages(t *testing.T) {
	body := "<p>" + sentence + " " + sentence + "</p>"

	tests := []struct {
		name      string
		url       string
		html      string
		wantStage string
	}{
		{
			name:      "article body container",
			url:       "https://example.com/news/story",
			html:      `<div class="article-body">` + body + `</div><main><p>main region text that should lose to the article body</p></main>`,
			wantStage: StageArticle,
		},
		{
			name:      "outlet adapter",
			url:       "https://www.reuters.com/world/story/",
			html:      `<div data-testid="ArticleBody">` + body + `</div>`,
			wantStage: StageAdapter,
		},
		{
			name:      "generic region",
			url:       "https://example.com/news/story",
			html:      `<main>` + body + `</main>`,
			wantStage: StageRegion,
		},
		{
			name:      "short container falls through to paragraphs",
			url:       "https://example.com/news/story",
			html:      `<div class="article-body"><p>Officials said the rumor had no basis in fact.</p></div>`,
			wantStage: StageParagraphs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newTestExtractor(0).Parse(context.Background(), "<html><body>"+tt.html+"</body></html>", tt.url)
			if got.Strategy != tt.wantStage {
				t.Errorf("stage = %q, want %q", got.Strategy, tt.wantStage)
			}
			if got.Method != model.ExtractionPrimary {
				t.Errorf("method = %q, want primary", got.Method)
			}
			if got.WordCount == 0 || got.WordCount != countWords(got.BodyText) {
				t.Errorf("word count %d does not match body %q", got.WordCount, got.BodyText)
			}
		})
	}
}

func TestParse_ExcludesNonContent(t *testing.T) {
	page := `<html><head><title>Vaccine claims examined</title>
<meta name="author" content="Jane Reporter">
<meta property="article:published_time" content="2024-04-30T08:00:00Z">
<meta name="description" content="A look at the microchip rumor.">
</head><body>
<div class="article-body">
<p>` + sentence + `</p>
<div class="newsletter-signup"><p>Sign up for our daily briefing delivered to your inbox.</p></div>
<div class="ad-slot"><p>Advertisement: buy the best mattress money can buy today.</p></div>
<script>var tracking = "this script text must never appear in output";</script>
<p>` + sentence + `</p>
<p>Short line.</p>
</div></body></html>`

	got := newTestExtractor(0).Parse(context.Background(), page, "https://example.com/story")

	for _, unwanted := range []string{"Sign up", "mattress", "tracking", "Short line"} {
		if strings.Contains(got.BodyText, unwanted) {
			t.Errorf("body should not contain %q: %q", unwanted, got.BodyText)
		}
	}
	if want := sentence + "\n\n" + sentence; got.BodyText != want {
		t.Errorf("body = %q", got.BodyText)
	}
	if got.Title != "Vaccine claims examined" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Author != "Jane Reporter" {
		t.Errorf("author = %q", got.Author)
	}
	if got.PublishDate != "2024-04-30T08:00:00Z" {
		t.Errorf("publish date = %q", got.PublishDate)
	}
	if got.Description != "A look at the microchip rumor." {
		t.Errorf("description = %q", got.Description)
	}
}

func TestParse_ParagraphFallbackSkipsChrome(t *testing.T) {
	page := `<html><body>
<div><p>Officials said the rumor had no basis in fact.</p><p>tiny</p></div>
<footer><p>Copyright 2024 Example Media Group, all rights reserved.</p></footer>
<div id="comments"><p>I think this article is completely wrong about it.</p></div>
</body></html>`

	got := newTestExtractor(0).Parse(context.Background(), page, "https://example.com/story")
	if got.Strategy != StageParagraphs {
		t.Fatalf("stage = %q, want paragraphs", got.Strategy)
	}
	if got.BodyText != "Officials said the rumor had no basis in fact." {
		t.Errorf("body = %q", got.BodyText)
	}
}

func TestParse_Readability(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<html><head><title>Story</title></head><body><div id="story">`)
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&b, "\n<p>Paragraph %d. %s %s</p>\n", i, sentence, sentence)
	}
	b.WriteString(`</div></body></html>`)

	got := newTestExtractor(0).Parse(context.Background(), b.String(), "https://example.com/story")
	if got.Strategy != StageReadability {
		t.Fatalf("stage = %q, want readability", got.Strategy)
	}
	if !strings.Contains(got.BodyText, "independent laboratories") {
		t.Errorf("body missing article text: %q", got.BodyText)
	}
}

func TestParse_NothingFound(t *testing.T) {
	page := `<html><head><title>Empty page</title></head><body><p>tiny</p></body></html>`

	got := newTestExtractor(0).Parse(context.Background(), page, "https://example.com/empty")
	if got.Method != model.ExtractionUnavailable || got.WordCount != 0 {
		t.Errorf("expected unavailable content, got %+v", got)
	}
	if got.Title != "Empty page" {
		t.Errorf("title should keep page metadata, got %q", got.Title)
	}
	if got.Error == "" {
		t.Error("expected an error note")
	}
	if got.Usable() {
		t.Error("unavailable content must not be usable")
	}
}

func TestParse_Truncates(t *testing.T) {
	page := `<html><body><div class="article-body"><p>` + strings.Repeat(sentence+" ", 20) + `</p></div></body></html>`

	got := newTestExtractor(200).Parse(context.Background(), page, "https://example.com/long")
	if n := len([]rune(got.BodyText)); n > 200 {
		t.Errorf("body has %d runes, want <= 200", n)
	}
	if strings.HasSuffix(got.BodyText, " ") {
		t.Error("truncated body should be trimmed")
	}
	if got.WordCount != countWords(got.BodyText) {
		t.Error("word count should describe the truncated body")
	}
}

func TestParse_MetadataFallbacks(t *testing.T) {
	page := `<html><head><meta property="og:title" content="OG Title">
<meta property="og:description" content="OG description"></head>
<body><h1>Heading</h1><span class="author"> Sam  Writer </span><time datetime="2024-01-02">Jan 2</time>
<div class="article-body"><p>` + sentence + " " + sentence + `</p></div></body></html>`

	got := newTestExtractor(0).Parse(context.Background(), page, "https://example.com/story")
	if got.Title != "OG Title" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Description != "OG description" {
		t.Errorf("description = %q", got.Description)
	}
	if got.Author != "Sam Writer" {
		t.Errorf("author = %q", got.Author)
	}
	if got.PublishDate != "2024-01-02" {
		t.Errorf("publish date = %q", got.PublishDate)
	}
}

func TestExtract_FetchFailure(t *testing.T) {
	e := newTestExtractor(0)
	e.getter = fakeGetter{err: errors.New("connection refused")}

	got := e.Extract(context.Background(), "https://example.com/story")
	if got.Method != model.ExtractionUnavailable || got.WordCount != 0 {
		t.Fatalf("expected unavailable, got %+v", got)
	}
	want := "Unable to access content from https://example.com/story. This may be due to paywall, geo-restrictions, or technical issues."
	if got.BodyText != want {
		t.Errorf("body = %q", got.BodyText)
	}
	if got.Title != "Content unavailable" || got.Error != "connection refused" {
		t.Errorf("unexpected placeholder: %+v", got)
	}
	if !got.ScrapedAt.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("scraped at = %v", got.ScrapedAt)
	}
}

func TestExtract_ThroughFetcher(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/story":
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprintf(w, `<html><head><title>Live story</title></head><body><article>
<p>%s</p><p>%s</p></article></body></html>`, sentence, sentence)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	f := fetch.New(model.HTTPConfig{Timeout: 2 * time.Second, MaxRetries: 0, UserAgent: "test"})
	e := New(f, 0, logging.Discard())

	got := e.Extract(context.Background(), server.URL+"/story")
	if got.Method != model.ExtractionPrimary || got.Title != "Live story" {
		t.Errorf("unexpected content: %+v", got)
	}

	missing := e.Extract(context.Background(), server.URL+"/gone")
	if missing.Method != model.ExtractionUnavailable {
		t.Errorf("404 should be unavailable, got %q", missing.Method)
	}
}

func TestIsNonContent(t *testing.T) {
	tests := []struct {
		class string
		want  bool
	}{
		{"ad-slot", true},
		{"social share-bar", true},
		{"site-header", true},
		{"article__related_links", true},
		{"headline", false},
		{"lead-paragraph", false},
		{"article-body__content", false},
		{"download-link", false},
	}

	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			doc := mustParse(t, `<div class="`+tt.class+`">x</div>`)
			if got := isNonContent(doc.Find("div").Nodes[0]); got != tt.want {
				t.Errorf("isNonContent(%q) = %v, want %v", tt.class, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short text", 100); got != "short text" {
		t.Errorf("short input changed: %q", got)
	}
	if got := truncate("alpha beta gamma delta", 13); got != "alpha beta" {
		t.Errorf("truncate = %q, want word boundary", got)
	}
	if got := truncate("ééééé", 3); got != "ééé" {
		t.Errorf("truncate should count runes, got %q", got)
	}
}
