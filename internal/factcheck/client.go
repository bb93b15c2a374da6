// Package factcheck queries external fact-check services: Google Fact Check
// Tools for published reviews and ClaimBuster for check-worthiness.
package factcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ppiankov/crosscheck/internal/cache"
	"github.com/ppiankov/crosscheck/internal/fetch"
	"github.com/ppiankov/crosscheck/internal/logging"
	"github.com/ppiankov/crosscheck/internal/model"
)

const maxResponseBytes = 1 << 20

// Client talks to the external services. A missing key disables that service.
type Client struct {
	httpClient *http.Client
	cfg        model.FactCheckConfig
	retry      fetch.RetryPolicy
	cache      cache.Cache
	cacheTTL   time.Duration
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithCache caches results per claim for ttl
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(cl *Client) {
		cl.cache = c
		cl.cacheTTL = ttl
	}
}

// WithRetryPolicy replaces the default retry policy
func WithRetryPolicy(p fetch.RetryPolicy) Option {
	return func(cl *Client) { cl.retry = p }
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(h *http.Client) Option {
	return func(cl *Client) { cl.httpClient = h }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// New creates a Client. Proxies come from the outbound HTTP config.
func New(cfg model.FactCheckConfig, httpCfg model.HTTPConfig, opts ...Option) *Client {
	def := model.DefaultConfig().FactCheck
	if cfg.MaxReviews <= 0 {
		cfg.MaxReviews = def.MaxReviews
	}
	if cfg.Confidence <= 0 {
		cfg.Confidence = def.Confidence
	}
	if cfg.Credibility <= 0 {
		cfg.Credibility = def.Credibility
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.GoogleBaseURL == "" {
		cfg.GoogleBaseURL = def.GoogleBaseURL
	}
	if cfg.ClaimBusterURL == "" {
		cfg.ClaimBusterURL = def.ClaimBusterURL
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: &http.Transport{Proxy: fetch.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy)},
		},
		cfg:   cfg,
		retry: fetch.DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.OrDefault(c.logger)
	return c
}

// GoogleEnabled reports whether a Google Fact Check key is configured
func (c *Client) GoogleEnabled() bool { return c.cfg.GoogleAPIKey != "" }

// ClaimBusterEnabled reports whether a ClaimBuster key is configured
func (c *Client) ClaimBusterEnabled() bool { return c.cfg.ClaimBusterAPIKey != "" }

// Report is everything the external services said about one claim
type Report struct {
	Reviews []model.SourceAnalysis
	Score   float64 // ClaimBuster check-worthiness in [0,1]
	Scored  bool
}

// Insights renders the check-worthiness score for the verdict
func (r Report) Insights() []string {
	if !r.Scored {
		return nil
	}
	pct := r.Score * 100
	if r.Score > 0.5 {
		return []string{fmt.Sprintf("ClaimBuster check-worthiness score: %.1f%% - this claim may warrant fact-checking", pct)}
	}
	return []string{fmt.Sprintf("ClaimBuster check-worthiness score: %.1f%%", pct)}
}

// Check queries every enabled service concurrently. Failures are logged and
// leave that part of the report empty.
func (c *Client) Check(ctx context.Context, claim string) Report {
	var (
		report Report
		wg     sync.WaitGroup
	)

	if c.GoogleEnabled() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reviews, err := c.Reviews(ctx, claim)
			if err != nil {
				c.logger.Warn("google fact check failed", "error", err)
				return
			}
			report.Reviews = reviews
		}()
	}

	if c.ClaimBusterEnabled() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			score, err := c.CheckWorthiness(ctx, claim)
			if err != nil {
				c.logger.Warn("claimbuster failed", "error", err)
				return
			}
			report.Score = score
			report.Scored = true
		}()
	}

	wg.Wait()
	return report
}

func normalizeClaim(claim string) string {
	return strings.ToLower(strings.Join(strings.Fields(claim), " "))
}

// do runs req with retries and returns the body of a 2xx response
func (c *Client) do(ctx context.Context, build func(ctx context.Context) (*http.Request, error)) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	return fetch.Retry(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
		req, err := build(ctx)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
			return nil, &fetch.StatusError{Code: resp.StatusCode, Status: resp.Status}
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		return body, nil
	})
}

func decode(body []byte, dst any) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
