// Package file replays a recorded scanning session from an NDJSON
// file, one frame reading per line.
package file

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/crimson-sun/tally/internal/model"
	"github.com/crimson-sun/tally/internal/source"
)

func init() {
	source.Register("file", func() source.Source { return New() })
}

// maxLineSize bounds a single frame's JSON. A dense receipt frame with
// full geometry stays well under this.
const maxLineSize = 1 << 20

// Source reads frame readings from an NDJSON file.
type Source struct{}

// New creates a file source.
func New() *Source { return &Source{} }

// Stream opens cfg.Path and sends one frame per line. Malformed lines
// are logged and skipped — a corrupt frame should not end the session.
// When cfg.Interval is set, frames are paced to simulate a live feed.
func (s *Source) Stream(ctx context.Context, cfg source.Config) (<-chan model.FrameReading, error) {
	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("file source: open %s: %w", cfg.Path, err)
	}

	ch := make(chan model.FrameReading)
	go func() {
		defer close(ch)
		defer f.Close()

		sc := bufio.NewScanner(f)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		lineNo := 0
		for sc.Scan() {
			lineNo++
			line := sc.Bytes()
			if len(line) == 0 {
				continue
			}
			var frame model.FrameReading
			if err := json.Unmarshal(line, &frame); err != nil {
				slog.Warn("file source: skipping malformed frame",
					"path", cfg.Path, "line", lineNo, "err", err)
				continue
			}
			select {
			case <-ctx.Done():
				return
			case ch <- frame:
			}
			if cfg.Interval > 0 {
				select {
				case <-ctx.Done():
					return
				case <-time.After(cfg.Interval):
				}
			}
		}
		if err := sc.Err(); err != nil {
			slog.Error("file source: read failed", "path", cfg.Path, "err", err)
		}
	}()
	return ch, nil
}
