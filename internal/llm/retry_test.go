package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryPolicy_FirstAttemptSucceeds(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}

	calls := 0
	out, err := policy.Do(context.Background(), func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "ok" {
		t.Errorf("out = %q, want ok", out)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryPolicy_RecoversAfterTransientFailure(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}

	calls := 0
	out, err := policy.Do(context.Background(), func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("rate limited")
		}
		return "recovered", nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "recovered" {
		t.Errorf("out = %q, want recovered", out)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryPolicy_BoundsAttempts(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}

	calls := 0
	serviceErr := errors.New("service unavailable")
	_, err := policy.Do(context.Background(), func(ctx context.Context) (string, error) {
		calls++
		return "", serviceErr
	})

	if calls != 3 {
		t.Errorf("calls = %d, want exactly 3", calls)
	}
	if !errors.Is(err, serviceErr) {
		t.Errorf("expected wrapped service error, got %v", err)
	}
}

func TestRetryPolicy_ZeroAttemptsStillCallsOnce(t *testing.T) {
	policy := RetryPolicy{}

	calls := 0
	_, err := policy.Do(context.Background(), func(ctx context.Context) (string, error) {
		calls++
		return "", errors.New("boom")
	})

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if err == nil {
		t.Error("expected error")
	}
}

func TestRetryPolicy_HonorsCancellation(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 5, BaseDelay: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	done := make(chan error, 1)
	go func() {
		_, err := policy.Do(ctx, func(ctx context.Context) (string, error) {
			calls++
			return "", errors.New("always fails")
		})
		done <- err
	}()

	// Let the first attempt fail, then cancel during the backoff sleep
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("retry did not return after cancellation")
	}

	if calls != 1 {
		t.Errorf("calls = %d, want 1 (cancelled during backoff)", calls)
	}
}
