// Package stdin streams frame readings from standard input, the live
// transport when the recognizer pipes directly into the engine.
package stdin

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/crimson-sun/tally/internal/model"
	"github.com/crimson-sun/tally/internal/source"
)

func init() {
	source.Register("stdin", func() source.Source { return New(os.Stdin) })
}

const maxLineSize = 1 << 20

// Source reads NDJSON frame readings from a reader, one per line.
type Source struct {
	r io.Reader
}

// New creates a stdin source over r.
func New(r io.Reader) *Source { return &Source{r: r} }

// Stream sends one frame per input line until EOF or ctx is done.
// Malformed lines are logged and skipped.
func (s *Source) Stream(ctx context.Context, _ source.Config) (<-chan model.FrameReading, error) {
	ch := make(chan model.FrameReading)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(s.r)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for sc.Scan() {
			line := sc.Bytes()
			if len(line) == 0 {
				continue
			}
			var frame model.FrameReading
			if err := json.Unmarshal(line, &frame); err != nil {
				slog.Warn("stdin source: skipping malformed frame", "err", err)
				continue
			}
			select {
			case <-ctx.Done():
				return
			case ch <- frame:
			}
		}
		if err := sc.Err(); err != nil {
			slog.Error("stdin source: read failed", "err", err)
		}
	}()
	return ch, nil
}
