package receipt

import (
	"log/slog"
	"time"
)

type options struct {
	videoFeed            bool
	similarityThreshold  *int
	trustworthyThreshold *float64
	maxCacheSize         *int
	minLongReceiptSize   *int
	invalidateAfter      *time.Duration
	minSkewSamples       int
	logger               *slog.Logger
}

// Option configures a Session.
type Option func(*options)

// WithVideoFeed selects the evidence policy: a continuous video feed
// requires 3 readings per line, discrete multi-image capture only 1.
// Default: true (video feed).
func WithVideoFeed(video bool) Option {
	return func(o *options) { o.videoFeed = video }
}

// WithSimilarityThreshold sets the minimum 0-100 product-text
// agreement for a reading to join an existing line cluster. Inclusive.
// Default: 50.
func WithSimilarityThreshold(t int) Option {
	return func(o *options) { o.similarityThreshold = &t }
}

// WithTrustworthyThreshold sets the minimum 0-100 vote agreement for a
// cluster's winner to appear in snapshots. Default: 20.
func WithTrustworthyThreshold(t float64) Option {
	return func(o *options) { o.trustworthyThreshold = &t }
}

// WithMaxCacheSize bounds how many readings each line cluster retains;
// the oldest is evicted beyond it. Default: 20.
func WithMaxCacheSize(n int) Option {
	return func(o *options) { o.maxCacheSize = &n }
}

// WithMinLongReceiptSize sets the position count at which a receipt is
// accepted on fewer repeated readings per line. Default: 20.
func WithMinLongReceiptSize(n int) Option {
	return func(o *options) { o.minLongReceiptSize = &n }
}

// WithInvalidateAfter sets how long an uncorroborated line cluster may
// wait for further evidence before it is discarded. Default: 3s.
func WithInvalidateAfter(d time.Duration) Option {
	return func(o *options) { o.invalidateAfter = &d }
}

// WithMinSkewSamples sets the minimum points per receipt edge for the
// skew estimate. Default: 3.
func WithMinSkewSamples(n int) Option {
	return func(o *options) { o.minSkewSamples = n }
}

// WithLogger injects the session's logger. Default: slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.logger = log }
}

func defaultOptions() options {
	return options{
		videoFeed:      true,
		minSkewSamples: 3,
	}
}
