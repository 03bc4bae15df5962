package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Source.Provider != "stdin" {
		t.Errorf("expected default source stdin, got %q", cfg.Source.Provider)
	}
	if !cfg.Engine.VideoFeed {
		t.Error("expected video feed mode by default")
	}
	if cfg.Engine.SimilarityThreshold != 50 {
		t.Errorf("expected similarity threshold 50, got %d", cfg.Engine.SimilarityThreshold)
	}
	if cfg.Engine.TrustworthyThreshold != 20 {
		t.Errorf("expected trustworthy threshold 20, got %v", cfg.Engine.TrustworthyThreshold)
	}
	if cfg.Engine.MaxCacheSize != 20 {
		t.Errorf("expected max cache size 20, got %d", cfg.Engine.MaxCacheSize)
	}
	if cfg.Engine.MinLongReceiptSize != 20 {
		t.Errorf("expected min long receipt size 20, got %d", cfg.Engine.MinLongReceiptSize)
	}
	if cfg.Engine.MinDurationBeforeInvalidate != 3*time.Second {
		t.Errorf("expected 3s invalidation window, got %v", cfg.Engine.MinDurationBeforeInvalidate)
	}
	if cfg.Engine.MinSkewSamples != 3 {
		t.Errorf("expected min skew samples 3, got %d", cfg.Engine.MinSkewSamples)
	}
	if cfg.Output.Format != "stdout" || cfg.Output.Verbosity != "standard" {
		t.Errorf("unexpected output defaults: %+v", cfg.Output)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level info, got %q", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TALLY_SOURCE", "file")
	t.Setenv("TALLY_SOURCE_PATH", "/tmp/session.ndjson")
	t.Setenv("TALLY_SOURCE_INTERVAL", "100ms")
	t.Setenv("TALLY_VIDEO_FEED", "false")
	t.Setenv("TALLY_SIMILARITY_THRESHOLD", "60")
	t.Setenv("TALLY_TRUSTWORTHY_THRESHOLD", "35.5")
	t.Setenv("TALLY_INVALIDATE_AFTER", "5s")
	t.Setenv("TALLY_OUTPUT", "file")
	t.Setenv("TALLY_OUTPUT_PATH", "/tmp/out.ndjson")

	cfg := Load()
	if cfg.Source.Provider != "file" || cfg.Source.Path != "/tmp/session.ndjson" {
		t.Errorf("unexpected source config: %+v", cfg.Source)
	}
	if cfg.Source.Interval != 100*time.Millisecond {
		t.Errorf("expected 100ms interval, got %v", cfg.Source.Interval)
	}
	if cfg.Engine.VideoFeed {
		t.Error("expected video feed disabled")
	}
	if cfg.Engine.SimilarityThreshold != 60 || cfg.Engine.TrustworthyThreshold != 35.5 {
		t.Errorf("unexpected thresholds: %+v", cfg.Engine)
	}
	if cfg.Engine.MinDurationBeforeInvalidate != 5*time.Second {
		t.Errorf("expected 5s invalidation window, got %v", cfg.Engine.MinDurationBeforeInvalidate)
	}
	if cfg.Output.Format != "file" || cfg.Output.Path != "/tmp/out.ndjson" {
		t.Errorf("unexpected output config: %+v", cfg.Output)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("TALLY_SIMILARITY_THRESHOLD", "not-a-number")
	t.Setenv("TALLY_VIDEO_FEED", "maybe")
	t.Setenv("TALLY_INVALIDATE_AFTER", "soon")

	cfg := Load()
	if cfg.Engine.SimilarityThreshold != 50 {
		t.Errorf("expected fallback threshold 50, got %d", cfg.Engine.SimilarityThreshold)
	}
	if !cfg.Engine.VideoFeed {
		t.Error("expected fallback video feed true")
	}
	if cfg.Engine.MinDurationBeforeInvalidate != 3*time.Second {
		t.Errorf("expected fallback 3s, got %v", cfg.Engine.MinDurationBeforeInvalidate)
	}
}
