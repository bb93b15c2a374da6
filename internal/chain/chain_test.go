package chain

import (
	"context"
	"errors"
	"testing"
)

func TestFirstSuccess(t *testing.T) {
	boom := errors.New("boom")
	fail := Step[string, []string]{Name: "fail", Run: func(context.Context, string) ([]string, error) {
		return nil, boom
	}}
	empty := Step[string, []string]{Name: "empty", Run: func(context.Context, string) ([]string, error) {
		return nil, nil
	}}
	hit := Step[string, []string]{Name: "hit", Run: func(_ context.Context, q string) ([]string, error) {
		return []string{q}, nil
	}}
	nonEmpty := func(v []string) bool { return len(v) > 0 }

	tests := []struct {
		name     string
		steps    []Step[string, []string]
		wantStep string
		wantErr  bool
	}{
		{"first step wins", []Step[string, []string]{hit, fail}, "hit", false},
		{"falls through errors", []Step[string, []string]{fail, hit}, "hit", false},
		{"rejects empty", []Step[string, []string]{empty, hit}, "hit", false},
		{"all fail", []Step[string, []string]{fail, empty}, "", true},
		{"no steps", nil, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, step, err := FirstSuccess(context.Background(), "q", nonEmpty, tt.steps...)
			if tt.wantErr {
				if !errors.Is(err, ErrNoResult) {
					t.Fatalf("expected ErrNoResult, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if step != tt.wantStep {
				t.Errorf("step = %q, want %q", step, tt.wantStep)
			}
			if len(got) != 1 || got[0] != "q" {
				t.Errorf("result = %v", got)
			}
		})
	}
}

func TestFirstSuccessJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	_, _, err := FirstSuccess(context.Background(), 0, nil,
		Step[int, int]{Name: "a", Run: func(context.Context, int) (int, error) { return 0, boom }},
	)
	if !errors.Is(err, boom) {
		t.Errorf("joined error should wrap step error, got %v", err)
	}
}

func TestFirstSuccessStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	_, _, err := FirstSuccess(ctx, 0, nil,
		Step[int, int]{Name: "a", Run: func(context.Context, int) (int, error) { called = true; return 1, nil }},
	)
	if called {
		t.Error("step should not run after cancellation")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in error, got %v", err)
	}
}
