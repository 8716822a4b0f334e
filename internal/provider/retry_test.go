package provider

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

var okParagraph = json.RawMessage(`{"paragraph":"Typing is fun."}`)

func TestRetry_TransientThenSuccess(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("slow down")}},
		MockResponse{Content: okParagraph},
	)
	resp, err := WithRetry(mock, retryConfig()).Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != string(okParagraph) {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestRetry_AllAttemptsFail(t *testing.T) {
	mock := NewMockProvider()
	_, err := WithRetry(mock, retryConfig()).Generate(context.Background(), Request{})
	var unavailable *ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestRetry_NotRetried(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"max tokens", &ErrMaxTokensExceeded{}},
		{"unauthorized", &ErrUnauthorized{Err: errors.New("bad key")}},
		{"canceled", context.Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(MockResponse{Err: tt.err}, MockResponse{Content: okParagraph})
			if _, err := WithRetry(mock, retryConfig()).Generate(context.Background(), Request{}); err == nil {
				t.Fatal("expected error")
			}
			if mock.CallCount() != 1 {
				t.Fatalf("expected 1 call, got %d", mock.CallCount())
			}
		})
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	invalid := &ErrInvalidResponse{Err: errors.New("bad json")}
	mock := NewMockProvider(
		MockResponse{Err: invalid},
		MockResponse{Err: invalid},
		MockResponse{Content: okParagraph},
	)
	cfg := retryConfig()
	cfg.MaxAttempts = 5
	if _, err := WithRetry(mock, cfg).Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error after second invalid response")
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_ContextCancelledDuringBackoff(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: time.Hour, Err: errors.New("429")}},
		MockResponse{Content: okParagraph},
	)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := WithRetry(mock, retryConfig()).Generate(ctx, Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestRetry_ZeroAttemptsMeansOne(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: okParagraph})
	if _, err := WithRetry(mock, RetryConfig{}).Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBackoffBounds(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: time.Second, Multiplier: 2}}
	for attempt := 0; attempt < 8; attempt++ {
		wait := r.backoff(attempt, errors.New("x"))
		if wait < 0 || wait > 1200*time.Millisecond {
			t.Fatalf("attempt %d: wait %s out of bounds", attempt, wait)
		}
	}
	if got := r.backoff(0, &ErrRateLimit{RetryAfter: 3 * time.Second}); got != 3*time.Second {
		t.Fatalf("expected RetryAfter to win, got %s", got)
	}
}
