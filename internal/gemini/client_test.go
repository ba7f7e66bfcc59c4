package gemini

import (
	"context"
	"testing"
	"time"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), Config{})
	if err == nil {
		t.Fatalf("expected error when API key is missing")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("k")
	if cfg.Model != "gemini-3-flash-preview" {
		t.Fatalf("unexpected default model %q", cfg.Model)
	}
	if cfg.Timeout != 2*time.Minute {
		t.Fatalf("unexpected default timeout %v", cfg.Timeout)
	}
}
