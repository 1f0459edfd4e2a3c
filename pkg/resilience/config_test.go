package resilience

import (
	"context"
	"testing"
	"time"
)

func TestRetryConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  RetryConfig
		wantErr bool
	}{
		{
			name: "valid config",
			config: RetryConfig{
				MaxAttempts: 5,
				Backoff:     Linear(300 * time.Millisecond),
			},
			wantErr: false,
		},
		{
			name:    "single attempt is valid",
			config:  RetryConfig{MaxAttempts: 1},
			wantErr: false,
		},
		{
			name:    "zero attempts",
			config:  RetryConfig{MaxAttempts: 0},
			wantErr: true,
		},
		{
			name:    "negative attempts",
			config:  RetryConfig{MaxAttempts: -3},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFallbackConfig_Validate(t *testing.T) {
	valid := FallbackConfig[string]{
		Recover: func(context.Context, error) (string, error) { return "", nil },
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}

	missing := FallbackConfig[string]{}
	if err := missing.Validate(); err == nil {
		t.Error("Validate() without Recover expected error, got nil")
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()

	if cfg.MaxAttempts != 5 {
		t.Errorf("expected MaxAttempts=5, got %d", cfg.MaxAttempts)
	}
	if cfg.Backoff == nil {
		t.Fatal("expected a backoff calculator")
	}
	if got := cfg.Backoff(1); got != 300*time.Millisecond {
		t.Errorf("expected 300ms after the first failure, got %v", got)
	}
	if got := cfg.Backoff(4); got != 1200*time.Millisecond {
		t.Errorf("expected 1200ms after the fourth failure, got %v", got)
	}
}

func TestFixedDelayRetryConfig(t *testing.T) {
	cfg := FixedDelayRetryConfig()

	if cfg.MaxAttempts != 3 {
		t.Errorf("expected MaxAttempts=3, got %d", cfg.MaxAttempts)
	}
	if cfg.Backoff == nil {
		t.Fatal("expected a backoff calculator")
	}
	for _, attempt := range []int{1, 2, 7} {
		if got := cfg.Backoff(attempt); got != 500*time.Millisecond {
			t.Errorf("expected 500ms at attempt %d, got %v", attempt, got)
		}
	}
}
