package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

var errOutletDown = errors.New("outlet unavailable")

// unitResult stands in for a scrape unit outcome
type unitResult struct {
	outlet string
	err    error
}

func (r *unitResult) GetError() error { return r.err }

// unitJob simulates fetching one outlet's coverage
type unitJob struct {
	outlet  string
	latency time.Duration
	fail    bool
	panics  bool
	running *int32
	peak    *int32
}

func (j *unitJob) Execute(ctx context.Context) Result {
	if j.running != nil {
		n := atomic.AddInt32(j.running, 1)
		defer atomic.AddInt32(j.running, -1)
		for {
			p := atomic.LoadInt32(j.peak)
			if n <= p || atomic.CompareAndSwapInt32(j.peak, p, n) {
				break
			}
		}
	}
	if j.panics {
		panic("selector table corrupted for " + j.outlet)
	}
	if j.latency > 0 {
		t := time.NewTimer(j.latency)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return &unitResult{outlet: j.outlet, err: ctx.Err()}
		}
	}
	if j.fail {
		return &unitResult{outlet: j.outlet, err: errOutletDown}
	}
	return &unitResult{outlet: j.outlet}
}

func TestNewPoolClampsWorkers(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{6, 6},
		{1, 1},
		{0, 1},
		{-3, 1},
	}
	for _, tt := range tests {
		if got := NewPool(context.Background(), tt.in).workers; got != tt.want {
			t.Errorf("NewPool(%d).workers = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPoolSettlesEveryUnit(t *testing.T) {
	pool := NewPool(context.Background(), 3)
	pool.Start()

	outlets := []string{"reuters.com", "apnews.com", "bbc.com", "npr.org", "foxnews.com", "snopes.com"}
	for i, o := range outlets {
		pool.Submit(&unitJob{outlet: o, fail: i%3 == 0, latency: time.Millisecond})
	}

	results := pool.Wait()
	if len(results) != len(outlets) {
		t.Fatalf("got %d results, want %d", len(results), len(outlets))
	}

	seen := make(map[string]bool)
	failed := 0
	for _, r := range results {
		u := r.(*unitResult)
		seen[u.outlet] = true
		if errors.Is(u.err, errOutletDown) {
			failed++
		}
	}
	if len(seen) != len(outlets) {
		t.Errorf("saw %d distinct outlets", len(seen))
	}
	if failed != 2 {
		t.Errorf("failed = %d, want 2", failed)
	}
}

func TestPoolBoundsConcurrency(t *testing.T) {
	const workers = 4
	pool := NewPool(context.Background(), workers)
	pool.Start()

	var running, peak int32
	for i := 0; i < 24; i++ {
		pool.Submit(&unitJob{outlet: "outlet", latency: 5 * time.Millisecond, running: &running, peak: &peak})
	}
	pool.Wait()

	if p := atomic.LoadInt32(&peak); p > workers {
		t.Errorf("peak concurrency %d exceeds %d workers", p, workers)
	}
}

func TestPoolPanicBecomesResult(t *testing.T) {
	pool := NewPool(context.Background(), 2)
	pool.Start()
	pool.Submit(&unitJob{outlet: "broken.example", panics: true})
	pool.Submit(&unitJob{outlet: "reuters.com"})

	results := pool.Wait()
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	var panicked *PanicResult
	for _, r := range results {
		if p, ok := r.(*PanicResult); ok {
			panicked = p
		}
	}
	if panicked == nil {
		t.Fatal("panic was not converted into a result")
	}
	if panicked.GetError() == nil {
		t.Error("panic result should carry an error")
	}
}

func TestPoolDeadlineCancelsSlowUnits(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	pool := NewPool(ctx, 2)
	pool.Start()
	pool.Submit(&unitJob{outlet: "fast.example"})
	pool.Submit(&unitJob{outlet: "slow.example", latency: time.Second})

	start := time.Now()
	results := pool.Wait()
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Wait took %v; slow unit was not cancelled", elapsed)
	}

	for _, r := range results {
		u := r.(*unitResult)
		if u.outlet == "slow.example" && !errors.Is(u.err, context.DeadlineExceeded) {
			t.Errorf("slow unit error = %v, want deadline exceeded", u.err)
		}
	}
}

func TestPoolManySubmissionsDoNotBlock(t *testing.T) {
	pool := NewPool(context.Background(), 2)
	pool.Start()

	done := make(chan int)
	go func() {
		for i := 0; i < 200; i++ {
			pool.Submit(&unitJob{outlet: "outlet"})
		}
		done <- len(pool.Wait())
	}()

	select {
	case n := <-done:
		if n != 200 {
			t.Errorf("got %d results, want 200", n)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("pool deadlocked")
	}
}

func TestPoolSubmitAfterShutdownReturns(t *testing.T) {
	pool := NewPool(context.Background(), 2)
	pool.Start()
	pool.Shutdown()

	done := make(chan struct{})
	go func() {
		pool.Submit(&unitJob{outlet: "late.example"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit after Shutdown blocked")
	}
}

func TestPoolCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool(ctx, 2)
	pool.Submit(&unitJob{outlet: "never.example"})

	if results := pool.Wait(); len(results) != 0 {
		t.Errorf("got %d results from a cancelled pool", len(results))
	}
}

func TestResultCollectorCopies(t *testing.T) {
	c := NewResultCollector()
	c.Add(&unitResult{outlet: "a"})
	c.Add(&unitResult{outlet: "b", err: errOutletDown})

	first := c.Results()
	first[0] = nil
	second := c.Results()
	if len(second) != 2 || second[0] == nil {
		t.Errorf("Results should return a copy, got %v", second)
	}
}
