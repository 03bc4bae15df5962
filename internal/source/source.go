// Package source defines where frame readings come from. The
// recognizer pipeline runs out of process; its per-frame output
// reaches the engine as NDJSON, either live over a pipe or replayed
// from a recorded session file.
package source

import (
	"context"
	"time"

	"github.com/crimson-sun/tally/internal/model"
)

// Source is a provider of frame readings.
type Source interface {
	// Stream sends frame readings as they become available. The
	// channel closes when the source is exhausted or ctx is done.
	Stream(ctx context.Context, cfg Config) (<-chan model.FrameReading, error)
}

// Config holds source-specific settings.
type Config struct {
	// Path is the NDJSON session file for file sources.
	Path string

	// Interval paces replay from recorded sessions; zero replays as
	// fast as the consumer reads.
	Interval time.Duration
}
