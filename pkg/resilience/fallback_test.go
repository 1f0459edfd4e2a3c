package resilience

import (
	"context"
	"errors"
	"testing"
)

func TestFallback_SuccessPassesThrough(t *testing.T) {
	fallback, err := NewFallback[string](FallbackConfig[string]{
		Recover: func(context.Context, error) (string, error) {
			t.Error("recovery must not run on success")
			return "", nil
		},
		Handle: isTransient,
	})
	if err != nil {
		t.Fatalf("NewFallback() error = %v", err)
	}

	result, err := fallback.Execute(context.Background(), func(context.Context) (string, error) {
		return "ok", nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result != "ok" {
		t.Errorf("expected %q, got %q", "ok", result)
	}
}

func TestFallback_RecoversDesignatedFailure(t *testing.T) {
	recoveries := 0
	var recoveredCause error
	fallback, err := NewFallback[string](FallbackConfig[string]{
		Recover: func(_ context.Context, cause error) (string, error) {
			recoveries++
			recoveredCause = cause
			return "", nil // degraded substitute: empty payload
		},
		Handle: isTransient,
	})
	if err != nil {
		t.Fatalf("NewFallback() error = %v", err)
	}

	result, err := fallback.Execute(context.Background(), func(context.Context) (string, error) {
		return "", errTransient
	})

	if err != nil {
		t.Errorf("expected recovery to suppress the failure, got %v", err)
	}
	if result != "" {
		t.Errorf("expected the substitute result, got %q", result)
	}
	if recoveries != 1 {
		t.Errorf("expected exactly 1 recovery, got %d", recoveries)
	}
	if recoveredCause != errTransient { //nolint:errorlint // identity is the contract
		t.Errorf("recovery received %v, want the original failure", recoveredCause)
	}
}

func TestFallback_NonDesignatedFailurePropagates(t *testing.T) {
	fallback, err := NewFallback[string](FallbackConfig[string]{
		Recover: func(context.Context, error) (string, error) {
			t.Error("recovery must not run for non-designated failures")
			return "", nil
		},
		Handle: isTransient,
	})
	if err != nil {
		t.Fatalf("NewFallback() error = %v", err)
	}

	_, err = fallback.Execute(context.Background(), func(context.Context) (string, error) {
		return "", errPermanent
	})

	if err != errPermanent { //nolint:errorlint // identity is the contract
		t.Errorf("expected the failure unchanged, got %v", err)
	}
}

func TestFallback_RecoveryFailurePropagates(t *testing.T) {
	errRecovery := errors.New("dead-letter enqueue failed")
	fallback, err := NewFallback[string](FallbackConfig[string]{
		Recover: func(context.Context, error) (string, error) {
			return "", errRecovery
		},
		Handle: isTransient,
	})
	if err != nil {
		t.Fatalf("NewFallback() error = %v", err)
	}

	_, err = fallback.Execute(context.Background(), func(context.Context) (string, error) {
		return "", errTransient
	})

	if !errors.Is(err, errRecovery) {
		t.Errorf("expected the recovery failure, got %v", err)
	}
}

func TestFallback_RecoveryHonorsContext(t *testing.T) {
	fallback, err := NewFallback[string](FallbackConfig[string]{
		Recover: func(ctx context.Context, _ error) (string, error) {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "substitute", nil
		},
		Handle: isTransient,
	})
	if err != nil {
		t.Fatalf("NewFallback() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = fallback.Execute(ctx, func(context.Context) (string, error) {
		return "", errTransient
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled from recovery, got %v", err)
	}
}

func TestFallback_MetricsRecorded(t *testing.T) {
	metrics := &fakeMetrics{}
	fallback, err := NewFallback[string](FallbackConfig[string]{
		Recover: func(context.Context, error) (string, error) {
			return "substitute", nil
		},
		Handle:  isTransient,
		Metrics: metrics,
	})
	if err != nil {
		t.Fatalf("NewFallback() error = %v", err)
	}

	_, _ = fallback.Execute(context.Background(), func(context.Context) (string, error) {
		return "", errTransient
	})

	if len(metrics.recoveries) != 1 || !metrics.recoveries[0] {
		t.Errorf("expected one successful recovery recorded, got %v", metrics.recoveries)
	}
}

func TestNewFallback_MissingRecover(t *testing.T) {
	_, err := NewFallback[string](FallbackConfig[string]{})
	if err == nil {
		t.Error("NewFallback without Recover expected error, got nil")
	}
}
