package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// noSleep records requested waits without waiting.
type noSleep struct{ waits []time.Duration }

func (n *noSleep) sleep(ctx context.Context, d time.Duration) error {
	n.waits = append(n.waits, d)
	return ctx.Err()
}

func newTestRetry(inner Provider, attempts int) (*RetryProvider, *noSleep) {
	r := WithRetry(inner, RetryConfig{
		MaxAttempts: attempts,
		InitialWait: 100 * time.Millisecond,
		MaxWait:     time.Second,
		Multiplier:  2,
	})
	ns := &noSleep{}
	r.sleep = ns.sleep
	return r, ns
}

func TestRetry_SucceedsAfterTransient(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Err: &ErrRateLimit{RetryAfter: 3 * time.Second}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	r, ns := newTestRetry(mock, 3)

	if _, err := r.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(mock.Calls()); got != 3 {
		t.Fatalf("expected 3 calls, got %d", got)
	}
	if len(ns.waits) != 2 {
		t.Fatalf("expected 2 waits, got %d", len(ns.waits))
	}
	if ns.waits[1] != 3*time.Second {
		t.Fatalf("expected Retry-After to be honoured, got %s", ns.waits[1])
	}
}

func TestRetry_GivesUp(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Err: &ErrProviderUnavailable{}},
	)
	r, ns := newTestRetry(mock, 2)

	_, err := r.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if len(ns.waits) != 1 {
		t.Fatalf("expected no wait after the last attempt, got %d waits", len(ns.waits))
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrInvalidResponse{Err: errors.New("bad")}},
		MockResponse{Err: &ErrInvalidResponse{Err: errors.New("bad again")}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	r, _ := newTestRetry(mock, 5)

	_, err := r.Generate(context.Background(), Request{})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
	if got := len(mock.Calls()); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
}

func TestRetry_NotRetried(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"max tokens", &ErrMaxTokensExceeded{}},
		{"canceled", context.Canceled},
		{"deadline", context.DeadlineExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(MockResponse{Err: tt.err}, MockResponse{Content: json.RawMessage(`{}`)})
			r, _ := newTestRetry(mock, 3)

			_, err := r.Generate(context.Background(), Request{})
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
			if got := len(mock.Calls()); got != 1 {
				t.Fatalf("expected 1 call, got %d", got)
			}
		})
	}
}

func TestRetry_ContextCancelledDuringWait(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{}}, MockResponse{Content: json.RawMessage(`{}`)})
	r, _ := newTestRetry(mock, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBackoff_Bounds(t *testing.T) {
	r, _ := newTestRetry(NewMockProvider(), 3)
	for attempt := range 6 {
		d := r.backoff(attempt, errors.New("x"))
		if d < 0 || d > 1200*time.Millisecond {
			t.Fatalf("attempt %d: backoff %s out of bounds", attempt, d)
		}
	}
}

func TestWithTimeout(t *testing.T) {
	mock := NewMockProvider()
	if WithTimeout(mock, 0) != Provider(mock) {
		t.Fatal("expected zero timeout to return the provider unchanged")
	}
	if _, ok := WithTimeout(mock, time.Second).(*TimeoutProvider); !ok {
		t.Fatal("expected a TimeoutProvider")
	}
}
