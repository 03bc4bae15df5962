// Package pipeline connects a frame source, a scanning session, and a
// snapshot output into a processing loop.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crimson-sun/tally/internal/engine"
	"github.com/crimson-sun/tally/internal/output"
	"github.com/crimson-sun/tally/internal/source"
)

// Pipeline feeds frames from a source through the session and writes
// each completed snapshot. Frames arriving while a pass is in flight
// are dropped by the session's busy guard; the pipeline only logs them.
type Pipeline struct {
	source  source.Source
	session *engine.Session
	out     output.Output
	log     *slog.Logger

	// StopWhenValid ends the run as soon as a snapshot validates,
	// mirroring a scanner that stops once it has a confirmed receipt.
	StopWhenValid bool
}

// New creates a Pipeline from the given components.
func New(src source.Source, session *engine.Session, out output.Output, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{source: src, session: session, out: out, log: log}
}

// Run processes frames until the source is exhausted, the context is
// cancelled, or (with StopWhenValid) a snapshot validates. The final
// snapshot state is logged on exit.
func (p *Pipeline) Run(ctx context.Context, cfg source.Config) error {
	ch, err := p.source.Stream(ctx, cfg)
	if err != nil {
		return fmt.Errorf("pipeline stream: %w", err)
	}

	frames, dropped := 0, 0
	defer func() {
		snap := p.session.Snapshot()
		p.log.Info("session finished",
			"frames", frames,
			"dropped", dropped,
			"positions", len(snap.Positions),
			"valid", snap.Valid,
			"calculated", snap.FormattedTotal(),
			"skewDegrees", p.session.Skew())
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case frame, ok := <-ch:
			if !ok {
				return nil
			}
			frames++
			snap, processed := p.session.Process(frame)
			if !processed {
				dropped++
				continue
			}
			if err := p.out.Write(ctx, snap); err != nil {
				return fmt.Errorf("pipeline output: %w", err)
			}
			if p.StopWhenValid && snap.Valid {
				return nil
			}
		}
	}
}

// Close shuts down the output.
func (p *Pipeline) Close() error {
	return p.out.Close()
}
