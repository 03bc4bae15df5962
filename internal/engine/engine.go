// Package engine runs one receipt scanning session: it feeds frames
// through the consensus cache's apply → merge → normalize → validate
// pass and hands out immutable snapshots.
package engine

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/crimson-sun/tally/internal/engine/cache"
	"github.com/crimson-sun/tally/internal/engine/skew"
	"github.com/crimson-sun/tally/internal/model"
)

// Session owns the consensus state for one receipt scan. It is not
// reentrant: while a frame is in flight, overlapping frames are
// dropped rather than queued, and callers get the last completed
// snapshot unchanged. One consistent pass beats frame rate.
type Session struct {
	mu    sync.Mutex // held for the duration of one pass
	cache *cache.Cache
	log   *slog.Logger

	minSkewSamples int
	clock          time.Time        // latest frame timestamp seen
	now            func() time.Time // fallback for untimestamped frames

	last atomic.Pointer[model.ReceiptSnapshot]
}

// NewSession creates a session with the given consensus configuration.
// A nil logger falls back to slog.Default.
func NewSession(cfg cache.Config, minSkewSamples int, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	s := &Session{
		cache:          cache.New(cfg, log),
		log:            log,
		minSkewSamples: minSkewSamples,
		now:            time.Now,
	}
	s.last.Store(&model.ReceiptSnapshot{})
	return s
}

// Process runs one full consensus pass over the frame and returns the
// resulting snapshot. When a pass is already in flight the frame is
// dropped: the last completed snapshot is returned with ok=false.
func (s *Session) Process(frame model.FrameReading) (model.ReceiptSnapshot, bool) {
	if !s.mu.TryLock() {
		s.log.Warn("frame dropped, pass in flight", "timestamp", frame.Timestamp)
		return *s.last.Load(), false
	}
	defer s.mu.Unlock()

	prevValid := s.last.Load().Valid

	// Staleness is measured on the stream's own clock, not the wall
	// clock: a replayed recording carries frame timestamps arbitrarily
	// far in the past.
	if frame.Timestamp.After(s.clock) {
		s.clock = frame.Timestamp
	}
	clock := s.clock
	if clock.IsZero() {
		clock = s.now()
	}

	s.cache.Apply(frame)
	snap := s.cache.Merge(clock)
	s.cache.Normalize(&snap)
	s.cache.Validate(&snap)
	s.last.Store(&snap)

	if snap.Valid != prevValid {
		s.log.Info("receipt validity changed",
			"valid", snap.Valid,
			"positions", len(snap.Positions),
			"calculated", snap.FormattedTotal())
	}
	return snap, true
}

// Snapshot returns the last completed snapshot without processing.
func (s *Session) Snapshot() model.ReceiptSnapshot {
	return *s.last.Load()
}

// Skew estimates the receipt's rotation angle, in degrees, from the
// current winning positions' line geometry. Returns 0 when there is
// not enough evidence. Typically fed back upstream for re-cropping.
func (s *Session) Skew() float64 {
	return skew.Estimate(s.last.Load().Positions, s.minSkewSamples)
}

// Reset discards all session state for a new scan.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Reset()
	s.clock = time.Time{}
	s.last.Store(&model.ReceiptSnapshot{})
}
