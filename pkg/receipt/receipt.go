package receipt

import (
	"github.com/crimson-sun/tally/internal/engine"
	"github.com/crimson-sun/tally/internal/engine/cache"
)

// Session accumulates frames for one receipt scan. Feed frames with
// Process until a snapshot validates, then Reset for the next receipt.
//
// A session is not reentrant: a frame arriving while another is being
// processed is dropped and the last snapshot is returned unchanged.
type Session struct {
	inner *engine.Session
}

// New creates a Session. Defaults match a continuous video feed; see
// the Options for discrete-capture mode and threshold tuning.
func New(opts ...Option) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	cfg := cache.Default(o.videoFeed)
	if o.similarityThreshold != nil {
		cfg.SimilarityThreshold = *o.similarityThreshold
	}
	if o.trustworthyThreshold != nil {
		cfg.TrustworthyThreshold = *o.trustworthyThreshold
	}
	if o.maxCacheSize != nil {
		cfg.MaxCacheSize = *o.maxCacheSize
	}
	if o.minLongReceiptSize != nil {
		cfg.MinLongReceiptSize = *o.minLongReceiptSize
	}
	if o.invalidateAfter != nil {
		cfg.MinDurationBeforeInvalidate = *o.invalidateAfter
	}

	return &Session{inner: engine.NewSession(cfg, o.minSkewSamples, o.logger)}
}

// Process ingests one frame and returns the resulting snapshot.
// ok is false when the frame was dropped because a pass was already
// in flight; the returned snapshot is then the last completed one.
func (s *Session) Process(frame Frame) (Snapshot, bool) {
	snap, ok := s.inner.Process(frameToModel(frame))
	return snapshotFromModel(snap), ok
}

// Snapshot returns the last completed snapshot without processing.
func (s *Session) Snapshot() Snapshot {
	return snapshotFromModel(s.inner.Snapshot())
}

// SkewAngle estimates the receipt's rotation in degrees from the
// current winning positions' geometry. 0 means straight or not enough
// evidence.
func (s *Session) SkewAngle() float64 {
	return s.inner.Skew()
}

// Reset discards all accumulated state for a new scan.
func (s *Session) Reset() {
	s.inner.Reset()
}
