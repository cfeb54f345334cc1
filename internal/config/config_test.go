package config

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDurationRoundTrip(t *testing.T) {
	d := Duration(90 * time.Second)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"1m30s"` {
		t.Errorf("marshaled = %s, want \"1m30s\"", data)
	}

	var back Duration
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", time.Duration(back), time.Duration(d))
	}
}

func TestDurationRejectsGarbage(t *testing.T) {
	var d Duration
	if err := json.Unmarshal([]byte(`"not a duration"`), &d); err == nil {
		t.Error("garbage duration accepted")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Fetch.MaxConcurrent != 5 {
		t.Errorf("MaxConcurrent = %d, want 5", cfg.Fetch.MaxConcurrent)
	}
	if cfg.Fetch.MaxAttempts != 4 {
		t.Errorf("MaxAttempts = %d, want 4", cfg.Fetch.MaxAttempts)
	}
	if time.Duration(cfg.CacheTTL) != 24*time.Hour {
		t.Errorf("CacheTTL = %v, want 24h", time.Duration(cfg.CacheTTL))
	}
	if len(cfg.FeedSources) == 0 {
		t.Error("no default feed sources")
	}
}

func TestConfigJSONRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var back Config
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back.Fetch.RetryBaseDelay != cfg.Fetch.RetryBaseDelay {
		t.Errorf("RetryBaseDelay = %v, want %v", back.Fetch.RetryBaseDelay, cfg.Fetch.RetryBaseDelay)
	}
	if len(back.FeedSources) != len(cfg.FeedSources) {
		t.Errorf("FeedSources count = %d, want %d", len(back.FeedSources), len(cfg.FeedSources))
	}
}
