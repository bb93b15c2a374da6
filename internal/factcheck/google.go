package factcheck

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ppiankov/crosscheck/internal/cache"
	"github.com/ppiankov/crosscheck/internal/model"
)

type claimSearchResponse struct {
	Claims []struct {
		Text        string `json:"text"`
		Claimant    string `json:"claimant"`
		ClaimReview []struct {
			Publisher struct {
				Name string `json:"name"`
				Site string `json:"site"`
			} `json:"publisher"`
			URL           string `json:"url"`
			Title         string `json:"title"`
			ReviewDate    string `json:"reviewDate"`
			TextualRating string `json:"textualRating"`
		} `json:"claimReview"`
	} `json:"claims"`
}

// Reviews searches published claim reviews and converts the first
// MaxReviews into factcheck-category analyses
func (c *Client) Reviews(ctx context.Context, claim string) ([]model.SourceAnalysis, error) {
	key := cache.Key(cache.NamespaceFactCheck, "google", normalizeClaim(claim))
	var cached []model.SourceAnalysis
	if cache.GetJSON(c.cache, key, &cached) {
		return cached, nil
	}

	body, err := c.do(ctx, func(ctx context.Context) (*http.Request, error) {
		q := url.Values{}
		q.Set("query", claim)
		q.Set("key", c.cfg.GoogleAPIKey)
		q.Set("languageCode", "en")
		return http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.GoogleBaseURL+"?"+q.Encode(), nil)
	})
	if err != nil {
		return nil, fmt.Errorf("claims search: %w", err)
	}

	var resp claimSearchResponse
	if err := decode(body, &resp); err != nil {
		return nil, fmt.Errorf("claims search: %w", err)
	}

	reviews := make([]model.SourceAnalysis, 0, c.cfg.MaxReviews)
	for _, cl := range resp.Claims {
		if len(reviews) >= c.cfg.MaxReviews {
			break
		}
		if len(cl.ClaimReview) == 0 {
			continue
		}
		r := cl.ClaimReview[0]

		publisher := r.Publisher.Name
		if publisher == "" {
			publisher = "Google Fact Check"
		}
		domain := r.Publisher.Site
		if domain == "" {
			domain = hostOf(r.URL)
		}
		rating := r.TextualRating
		if rating == "" {
			rating = "No rating"
		}
		date := r.ReviewDate
		if len(date) > 10 {
			date = date[:10]
		}

		reviews = append(reviews, model.SourceAnalysis{
			Source: model.Source{
				Name:             publisher,
				Domain:           domain,
				Category:         model.CategoryFactCheck,
				CredibilityScore: c.cfg.Credibility,
			},
			Verdict:         MapRating(r.TextualRating),
			Confidence:      c.cfg.Confidence,
			Summary:         fmt.Sprintf("%s: %s - %s", publisher, rating, strings.TrimSpace(cl.Text)),
			Reasoning:       "External fact-checking database result",
			EvidenceQuality: model.EvidenceStrong,
			Relevance:       model.RelevanceHigh,
			Method:          model.MethodExternal,
			URL:             r.URL,
			Title:           r.Title,
			PublishDate:     date,
			WordCount:       len(strings.Fields(cl.Text)),
		})
	}

	if err := cache.SetJSON(c.cache, key, reviews, c.cacheTTL); err != nil {
		c.logger.Debug("fact check cache write failed", "error", err)
	}
	c.logger.Debug("claim reviews found", "count", len(reviews))
	return reviews, nil
}

// MapRating maps a publisher's textual rating onto the raw verdict vocabulary
func MapRating(rating string) model.RawVerdict {
	r := strings.ToLower(strings.TrimSpace(rating))
	if r == "" {
		return model.RawUnverified
	}

	hasTrue := strings.Contains(r, "true")
	hasFalse := strings.Contains(r, "false")
	negated, isNegated := model.NegatedVerdict(r)
	switch {
	case strings.Contains(r, "satire"), strings.Contains(r, "satirical"), strings.Contains(r, "parody"):
		return model.RawSatirical
	case strings.Contains(r, "half"), strings.Contains(r, "partly"), strings.Contains(r, "partially"):
		return model.RawMixed
	case isNegated:
		return negated
	case hasTrue && !hasFalse:
		if strings.Contains(r, "mostly") {
			return model.RawMostlyTrue
		}
		return model.RawTrue
	case hasFalse && !hasTrue:
		if strings.Contains(r, "mostly") {
			return model.RawMostlyFalse
		}
		return model.RawFalse
	case strings.Contains(r, "pants on fire"), strings.Contains(r, "fake"), strings.Contains(r, "incorrect"):
		return model.RawFalse
	case strings.Contains(r, "mixed"), strings.Contains(r, "mixture"), strings.Contains(r, "misleading"):
		return model.RawMixed
	}
	return model.RawUnverified
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
