package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all Tally configuration.
type Config struct {
	Source   SourceConfig
	Engine   EngineConfig
	Output   OutputConfig
	LogLevel string
}

// SourceConfig holds frame-source settings.
type SourceConfig struct {
	Provider string // "stdin" or "file"
	Path     string // session file for the file source
	Interval time.Duration
}

// EngineConfig holds the consensus and skew-estimation settings.
type EngineConfig struct {
	VideoFeed                   bool // continuous feed: 3 scans per line; discrete captures: 1
	SimilarityThreshold         int
	TrustworthyThreshold        float64
	MaxCacheSize                int
	MinLongReceiptSize          int
	MinDurationBeforeInvalidate time.Duration
	MinSkewSamples              int
	StopWhenValid               bool
}

// OutputConfig holds snapshot destination settings.
type OutputConfig struct {
	Format    string // "stdout" or "file"
	Path      string // for the file output
	Verbosity string // "minimal", "standard", "full"
	Pretty    bool
}

// Load reads configuration from environment variables with defaults
// matching the consensus engine's standard thresholds.
func Load() Config {
	return Config{
		Source: SourceConfig{
			Provider: getenv("TALLY_SOURCE", "stdin"),
			Path:     os.Getenv("TALLY_SOURCE_PATH"),
			Interval: getenvDuration("TALLY_SOURCE_INTERVAL", 0),
		},
		Engine: EngineConfig{
			VideoFeed:                   getenvBool("TALLY_VIDEO_FEED", true),
			SimilarityThreshold:         getenvInt("TALLY_SIMILARITY_THRESHOLD", 50),
			TrustworthyThreshold:        getenvFloat("TALLY_TRUSTWORTHY_THRESHOLD", 20),
			MaxCacheSize:                getenvInt("TALLY_MAX_CACHE_SIZE", 20),
			MinLongReceiptSize:          getenvInt("TALLY_MIN_LONG_RECEIPT_SIZE", 20),
			MinDurationBeforeInvalidate: getenvDuration("TALLY_INVALIDATE_AFTER", 3*time.Second),
			MinSkewSamples:              getenvInt("TALLY_MIN_SKEW_SAMPLES", 3),
			StopWhenValid:               getenvBool("TALLY_STOP_WHEN_VALID", false),
		},
		Output: OutputConfig{
			Format:    getenv("TALLY_OUTPUT", "stdout"),
			Path:      os.Getenv("TALLY_OUTPUT_PATH"),
			Verbosity: getenv("TALLY_VERBOSITY", "standard"),
			Pretty:    getenvBool("TALLY_PRETTY", false),
		},
		LogLevel: getenv("TALLY_LOG_LEVEL", "info"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
