package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Blocks shorter than this are captions, bylines and button labels
const minBlockChars = 20

// Elements whose boundaries end a text block
var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "main": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true, "dl": true, "dt": true, "dd": true,
	"blockquote": true, "pre": true, "figure": true, "figcaption": true,
	"table": true, "tr": true, "td": true, "th": true, "br": true, "hr": true,
	"header": true,
}

// Elements never holding article text
var skippedElements = map[string]bool{
	"script": true, "style": true, "noscript": true, "iframe": true, "svg": true,
	"nav": true, "aside": true, "footer": true, "form": true, "button": true,
	"select": true, "template": true,
}

// Class or id words marking chrome around the article
var nonContentMarkers = map[string]bool{
	"nav": true, "navigation": true, "menu": true, "sidebar": true, "footer": true, "header": true,
	"ad": true, "ads": true, "advert": true, "advertisement": true, "sponsored": true, "promo": true,
	"related": true, "comments": true, "comment": true, "social": true, "share": true, "sharing": true,
	"tags": true, "metadata": true, "widget": true, "newsletter": true, "subscribe": true,
	"subscription": true, "signup": true, "cookie": true, "popup": true, "modal": true,
}

// isNonContent matches class and id words, so "ad-slot" is excluded but "headline" is not
func isNonContent(n *html.Node) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" && attr.Key != "id" {
			continue
		}
		words := strings.FieldsFunc(strings.ToLower(attr.Val), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		for _, w := range words {
			if nonContentMarkers[w] {
				return true
			}
		}
	}
	return false
}

// textBlocks walks root and returns its visible text split at block boundaries,
// dropping non-content subtrees and blocks of minBlockChars or fewer.
func textBlocks(root *html.Node) []string {
	var blocks []string
	var buf strings.Builder

	flush := func() {
		text := normalizeSpace(buf.String())
		buf.Reset()
		if utf8.RuneCountInString(text) > minBlockChars {
			blocks = append(blocks, text)
		}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(n.Data)
			return
		case html.ElementNode:
			if skippedElements[n.Data] || isNonContent(n) {
				return
			}
		case html.CommentNode:
			return
		}

		block := n.Type == html.ElementNode && blockElements[n.Data]
		if block {
			flush()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			flush()
		}
	}

	walk(root)
	flush()
	return blocks
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func countWords(s string) int {
	return len(strings.Fields(s))
}

// truncate cuts s to at most max runes, backing up to a word boundary
func truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	cut := string([]rune(s)[:max])
	if i := strings.LastIndexAny(cut, " \n"); i > max/2 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut)
}

// insideNonContent reports whether any ancestor of n is page chrome
func insideNonContent(n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && (skippedElements[p.Data] || isNonContent(p)) {
			return true
		}
	}
	return false
}
