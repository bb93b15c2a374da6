package factcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ppiankov/crosscheck/internal/cache"
)

type scoreResponse struct {
	Results []struct {
		Text  string  `json:"text"`
		Score float64 `json:"score"`
	} `json:"results"`
}

// CheckWorthiness returns ClaimBuster's score for the claim in [0,1].
// It is reported as an insight, never as a verdict.
func (c *Client) CheckWorthiness(ctx context.Context, claim string) (float64, error) {
	key := cache.Key(cache.NamespaceFactCheck, "claimbuster", normalizeClaim(claim))
	var cached float64
	if cache.GetJSON(c.cache, key, &cached) {
		return cached, nil
	}

	payload, err := json.Marshal(map[string]string{"input_text": claim})
	if err != nil {
		return 0, fmt.Errorf("encode request: %w", err)
	}

	body, err := c.do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ClaimBusterURL, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-api-key", c.cfg.ClaimBusterAPIKey)
		return req, nil
	})
	if err != nil {
		return 0, fmt.Errorf("claimbuster score: %w", err)
	}

	var resp scoreResponse
	if err := decode(body, &resp); err != nil {
		return 0, fmt.Errorf("claimbuster score: %w", err)
	}
	if len(resp.Results) == 0 {
		return 0, fmt.Errorf("claimbuster score: no results")
	}

	score := min(max(resp.Results[0].Score, 0), 1)
	if err := cache.SetJSON(c.cache, key, score, c.cacheTTL); err != nil {
		c.logger.Debug("claimbuster cache write failed", "error", err)
	}
	c.logger.Debug("claimbuster scored claim", "score", score)
	return score, nil
}
