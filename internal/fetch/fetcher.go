// Package fetch performs timeout-bounded, retried HTTP GETs with a browser identity.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ppiankov/crosscheck/internal/cache"
	"github.com/ppiankov/crosscheck/internal/logging"
	"github.com/ppiankov/crosscheck/internal/model"
	"github.com/ppiankov/crosscheck/internal/worker"
)

// Fetcher fetches HTML content from URLs
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	retry      RetryPolicy
	cache      cache.Cache
	cacheTTL   time.Duration
	limiter    *worker.Limiter
	robots     *RobotsChecker
	logger     *slog.Logger
}

// Result contains the fetched HTML and response metadata
type Result struct {
	HTML        string `json:"html"`
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type"`
	FinalURL    string `json:"final_url"`
	FromCache   bool   `json:"-"`
}

// Option configures optional Fetcher collaborators
type Option func(*Fetcher)

// WithCache caches successful page bodies for ttl
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(f *Fetcher) {
		f.cache = c
		f.cacheTTL = ttl
	}
}

// WithLimiter applies per-domain politeness before every request
func WithLimiter(l *worker.Limiter) Option {
	return func(f *Fetcher) { f.limiter = l }
}

// WithRobots gates FetchArticle on robots.txt
func WithRobots(r *RobotsChecker) Option {
	return func(f *Fetcher) { f.robots = r }
}

// WithRetryPolicy replaces the default retry policy
func WithRetryPolicy(p RetryPolicy) Option {
	return func(f *Fetcher) { f.retry = p }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) { f.logger = l }
}

// New creates a Fetcher from the HTTP section of the config
func New(cfg model.HTTPConfig, opts ...Option) *Fetcher {
	maxRedirects := cfg.MaxRedirects
	if maxRedirects <= 0 {
		maxRedirects = 3
	}
	maxBytes := cfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}

	retry := DefaultRetryPolicy()
	if cfg.MaxRetries >= 0 {
		retry.MaxRetries = cfg.MaxRetries
	}
	if cfg.RetryBackoff > 0 {
		retry.Backoff = cfg.RetryBackoff
	}

	f := &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy:               NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  maxBytes,
		retry:     retry,
	}

	for _, opt := range opts {
		opt(f)
	}
	f.logger = logging.OrDefault(f.logger)
	return f
}

// Fetch performs a single GET. Non-2xx responses return a *StatusError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, rawURL); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &Result{
		HTML:        string(body),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		FinalURL:    resp.Request.URL.String(),
	}, nil
}

// FetchWithRetry fetches through the cache and retries transient failures
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (*Result, error) {
	key := cache.Key(cache.NamespacePage, rawURL)
	var cached Result
	if cache.GetJSON(f.cache, key, &cached) {
		cached.FromCache = true
		return &cached, nil
	}

	attempt := 0
	result, err := Retry(ctx, f.retry, func(ctx context.Context) (*Result, error) {
		attempt++
		if attempt > 1 {
			f.logger.Debug("retrying fetch", "url", rawURL, "attempt", attempt)
		}
		return f.Fetch(ctx, rawURL)
	})
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(f.cache, key, result, f.cacheTTL); err != nil {
		f.logger.Debug("page cache write failed", "url", rawURL, "error", err)
	}
	return result, nil
}

// FetchArticle is FetchWithRetry gated on robots.txt when a checker is configured
func (f *Fetcher) FetchArticle(ctx context.Context, rawURL string) (*Result, error) {
	if f.robots != nil {
		allowed, delay, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, fmt.Errorf("%s: %w", rawURL, ErrDisallowed)
		}
		if delay > 0 && f.limiter != nil {
			if err := f.limiter.WaitWithDelay(ctx, rawURL, delay); err != nil {
				return nil, fmt.Errorf("crawl delay: %w", err)
			}
		}
	}
	return f.FetchWithRetry(ctx, rawURL)
}
