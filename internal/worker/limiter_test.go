package worker

import (
	"context"
	"testing"
	"time"
)

func TestNewLimiterDefaultsBurst(t *testing.T) {
	tests := []struct {
		burst int
		want  int
	}{
		{2, 2},
		{0, 5},
		{-1, 5},
	}
	for _, tt := range tests {
		if got := NewLimiter(2, tt.burst).defaultBurst; got != tt.want {
			t.Errorf("NewLimiter(2, %d).defaultBurst = %d, want %d", tt.burst, got, tt.want)
		}
	}
}

func TestLimiterPerOutletBuckets(t *testing.T) {
	limiter := NewLimiter(0.1, 1)

	if !limiter.Allow("https://www.reuters.com/world/some-story") {
		t.Fatal("first request to reuters should pass")
	}
	if limiter.Allow("https://reuters.com/markets/other-story") {
		t.Error("www and bare host should share one bucket")
	}
	if limiter.Allow("https://REUTERS.com:443/x") {
		t.Error("case and port should not create a new bucket")
	}
	if !limiter.Allow("https://apnews.com/article/x") {
		t.Error("a different outlet should have its own bucket")
	}
}

func TestLimiterInvalidURL(t *testing.T) {
	limiter := NewLimiter(1, 1)
	if limiter.Allow("://missing-scheme") {
		t.Error("invalid URL should not be allowed")
	}
	if err := limiter.Wait(context.Background(), "://missing-scheme"); err == nil {
		t.Error("Wait should fail for an invalid URL")
	}
}

func TestLimiterZeroRateIsUnlimited(t *testing.T) {
	limiter := NewLimiter(0, 1)
	for i := 0; i < 20; i++ {
		if !limiter.Allow("https://bbc.com/news") {
			t.Fatalf("request %d rejected by an unlimited limiter", i)
		}
	}
}

func TestLimiterSetDomainRate(t *testing.T) {
	limiter := NewLimiter(100, 10)
	limiter.SetDomainRate("www.slow-outlet.com", 0.1, 1)

	if !limiter.Allow("https://slow-outlet.com/a") {
		t.Fatal("first request should use the burst")
	}
	if limiter.Allow("https://slow-outlet.com/b") {
		t.Error("second request should be throttled by the domain override")
	}
	if !limiter.Allow("https://npr.org/a") {
		t.Error("other outlets keep the default rate")
	}
}

func TestLimiterWaitHonoursContext(t *testing.T) {
	limiter := NewLimiter(0.1, 1)
	url := "https://snopes.com/fact-check/x"
	if err := limiter.Wait(context.Background(), url); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := limiter.Wait(ctx, url); err == nil {
		t.Error("second wait should fail once the context expires")
	}
}

func TestLimiterWaitWithDelay(t *testing.T) {
	limiter := NewLimiter(100, 1)

	start := time.Now()
	if err := limiter.WaitWithDelay(context.Background(), "https://npr.org", 30*time.Millisecond); err != nil {
		t.Fatalf("WaitWithDelay: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("returned after %v, want at least 30ms", elapsed)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := limiter.WaitWithDelay(ctx, "https://npr.org", time.Second); err == nil {
		t.Error("cancelled context should abort the delay")
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.theguardian.com/world", "theguardian.com"},
		{"http://APNEWS.com:8080/x", "apnews.com"},
		{"https://factcheck.org", "factcheck.org"},
	}
	for _, tt := range tests {
		got, err := extractDomain(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("extractDomain(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}
