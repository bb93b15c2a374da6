package extract

import (
	"github.com/PuerkitoBio/goquery"
)

type metadata struct {
	title       string
	description string
	author      string
	publishDate string
}

// readMetadata reads each field from the first fallback that has a value
func readMetadata(doc *goquery.Document) metadata {
	return metadata{
		title: firstNonEmpty(
			doc.Find("title").First().Text(),
			attr(doc, `meta[property="og:title"]`, "content"),
			doc.Find("h1").First().Text(),
		),
		description: firstNonEmpty(
			attr(doc, `meta[name="description"]`, "content"),
			attr(doc, `meta[property="og:description"]`, "content"),
		),
		author: firstNonEmpty(
			attr(doc, `meta[name="author"]`, "content"),
			doc.Find(`[rel="author"]`).First().Text(),
			doc.Find(".author").First().Text(),
		),
		publishDate: firstNonEmpty(
			attr(doc, `meta[property="article:published_time"]`, "content"),
			attr(doc, `meta[name="publish-date"]`, "content"),
			attr(doc, "time[datetime]", "datetime"),
		),
	}
}

func attr(doc *goquery.Document, selector, name string) string {
	v, _ := doc.Find(selector).First().Attr(name)
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = normalizeSpace(v); v != "" {
			return v
		}
	}
	return ""
}
