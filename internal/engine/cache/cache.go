// Package cache implements the cross-frame consensus cache: it
// clusters repeated observations of the same receipt line into
// position groups, evicts noise, and reduces the groups to a single
// validated receipt snapshot.
package cache

import (
	"log/slog"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crimson-sun/tally/internal/engine/group"
	"github.com/crimson-sun/tally/internal/engine/similarity"
	"github.com/crimson-sun/tally/internal/model"
)

// Config holds the consensus thresholds. All fields are caller-supplied
// at session start; see Default for the standard values.
type Config struct {
	// SimilarityThreshold is the minimum 0-100 product-text agreement
	// for a candidate to join an existing group. Inclusive.
	SimilarityThreshold int

	// TrustworthyThreshold is the minimum 0-100 vote agreement for a
	// group's winner to appear in the snapshot.
	TrustworthyThreshold float64

	// MaxCacheSize bounds each group's member count; the oldest member
	// is evicted beyond it.
	MaxCacheSize int

	// MinScans is the member count a group needs before it counts as
	// evidence: 3 for a continuous video feed, 1 for discrete captures.
	MinScans int

	// MinLongReceiptSize is the position count at which a receipt is
	// accepted on fewer repeated observations per line.
	MinLongReceiptSize int

	// MinDurationBeforeInvalidate is how long a group below MinScans
	// may wait for corroboration before it is discarded as noise.
	MinDurationBeforeInvalidate time.Duration
}

// Default returns the standard configuration. videoFeed selects the
// MinScans policy for a continuous feed versus discrete captures.
func Default(videoFeed bool) Config {
	minScans := 1
	if videoFeed {
		minScans = 3
	}
	return Config{
		SimilarityThreshold:         50,
		TrustworthyThreshold:        20,
		MaxCacheSize:                20,
		MinScans:                    minScans,
		MinLongReceiptSize:          20,
		MinDurationBeforeInvalidate: 3 * time.Second,
	}
}

var sqrt2 = decimal.NewFromFloat(math.Sqrt2)

// Cache accumulates observations across frames. Groups live in an
// ID-keyed arena; observations refer to their owner by ID only. Not
// safe for concurrent use — the session serializes access.
type Cache struct {
	cfg Config
	log *slog.Logger

	nextID uint64
	order  []uint64 // group IDs in creation order
	groups map[uint64]*group.Group

	// Singleton fields, last-write-wins across frames.
	store        string
	purchaseDate time.Time
	totalLabel   string
	total        *model.Amount
}

// New creates an empty cache with the given configuration.
func New(cfg Config, log *slog.Logger) *Cache {
	if log == nil {
		log = slog.Default()
	}
	return &Cache{
		cfg:    cfg,
		log:    log,
		nextID: 1,
		groups: make(map[uint64]*group.Group),
	}
}

// Len returns the number of live position groups.
func (c *Cache) Len() int { return len(c.groups) }

// Group returns the group with the given arena ID, or nil.
func (c *Cache) Group(id uint64) *group.Group { return c.groups[id] }

// Reset discards all accumulated state for a new scanning session.
func (c *Cache) Reset() {
	c.nextID = 1
	c.order = nil
	c.groups = make(map[uint64]*group.Group)
	c.store = ""
	c.purchaseDate = time.Time{}
	c.totalLabel = ""
	c.total = nil
}

// Apply ingests one frame's partial reading. Each candidate either
// joins the group it best agrees with (at or above the similarity
// threshold) or opens a new group. Groups already holding a reading
// from the candidate's frame are excluded from matching.
func (c *Cache) Apply(frame model.FrameReading) {
	if frame.Store != "" {
		c.store = frame.Store
	}
	if !frame.PurchaseDate.IsZero() {
		c.purchaseDate = frame.PurchaseDate
	}
	if frame.TotalLabel != "" {
		c.totalLabel = frame.TotalLabel
	}
	if frame.Total != nil {
		t := *frame.Total
		c.total = &t
	}

	for i := range frame.Positions {
		obs := frame.Positions[i] // copy; the arena owns its own instances
		c.assign(&obs)
	}
}

func (c *Cache) assign(obs *model.Observation) {
	var best *group.Group
	bestScore := -1
	for _, id := range c.order {
		g := c.groups[id]
		if m := g.MemberAt(obs.Timestamp); m != nil {
			// A group can hold one reading per frame. When the
			// colliding member agrees with the candidate this frame is
			// being reprocessed: drop it rather than fork a duplicate
			// group.
			if similarity.Ratio(m.Product, obs.Product) >= c.cfg.SimilarityThreshold {
				c.log.Debug("duplicate frame reading dropped",
					"product", obs.Product, "group", g.ID())
				return
			}
			continue
		}
		if _, s := g.MostSimilar(obs); s > bestScore {
			best, bestScore = g, s
		}
	}

	if best != nil && bestScore >= c.cfg.SimilarityThreshold {
		obs.Op = model.OpUpdated
		best.Add(obs)
		best.MostTrustworthy(nil, false)
		c.log.Debug("observation joined group",
			"product", obs.Product, "group", best.ID(), "score", bestScore)
		return
	}

	obs.Op = model.OpAdded
	g := group.New(c.nextID, c.cfg.MaxCacheSize)
	c.nextID++
	g.Add(obs)
	g.MostTrustworthy(nil, false)
	c.groups[g.ID()] = g
	c.order = append(c.order, g.ID())
	c.log.Debug("observation opened group", "product", obs.Product, "group", g.ID())
}

// Merge rebuilds the receipt snapshot from the current groups. now is
// the staleness reference, normally the stream's latest frame
// timestamp. Groups that stayed below
// MinScans for MinDurationBeforeInvalidate are discarded. The scan
// stops early as soon as the running total matches the printed total;
// otherwise, when the total overshoots the printed total by more than
// a factor of √2, the least-trustworthy positions are dropped until it
// no longer exceeds it.
func (c *Cache) Merge(now time.Time) model.ReceiptSnapshot {
	snap := model.ReceiptSnapshot{
		Store:        c.store,
		PurchaseDate: c.purchaseDate,
		TotalLabel:   c.totalLabel,
		Total:        c.total,
		Calculated:   decimal.Zero,
	}

	var stale []uint64
	matched := false
	for _, id := range c.order {
		g := c.groups[id]
		if g.Len() < c.cfg.MinScans {
			if oldest := g.OldestTimestamp(); !oldest.IsZero() &&
				now.Sub(oldest) >= c.cfg.MinDurationBeforeInvalidate {
				stale = append(stale, id)
			}
			continue
		}
		w := g.MostTrustworthy(nil, false)
		if w == nil || w.Trustworthiness < c.cfg.TrustworthyThreshold {
			continue
		}
		snap.Positions = append(snap.Positions, *w)
		snap.Calculated = snap.Calculated.Add(w.Price)
		if sameTotal(snap.Calculated, c.total) {
			matched = true
			break
		}
	}

	for _, id := range stale {
		c.remove(id)
		c.log.Debug("group discarded as stale", "group", id)
	}

	if !matched && c.total != nil &&
		snap.Calculated.GreaterThan(c.total.Value.Mul(sqrt2)) {
		c.prune(&snap)
	}
	return snap
}

// prune drops the weakest-evidence positions until the calculated
// total no longer exceeds the printed total, or nothing remains.
func (c *Cache) prune(snap *model.ReceiptSnapshot) {
	for snap.Calculated.GreaterThan(c.total.Value) && len(snap.Positions) > 0 {
		weakest := 0
		for i := range snap.Positions {
			if snap.Positions[i].Trustworthiness < snap.Positions[weakest].Trustworthiness {
				weakest = i
			}
		}
		dropped := snap.Positions[weakest]
		snap.Calculated = snap.Calculated.Sub(dropped.Price)
		snap.Positions = append(snap.Positions[:weakest], snap.Positions[weakest+1:]...)
		c.log.Debug("position pruned for sum consistency",
			"product", dropped.Product, "trustworthiness", dropped.Trustworthiness)
	}
}

func (c *Cache) remove(id uint64) {
	delete(c.groups, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// sameTotal compares a calculated total against a printed total at
// display precision. Formatted-string equality, not raw numeric
// equality, so floating rounding at two decimals is tolerated.
func sameTotal(calc decimal.Decimal, printed *model.Amount) bool {
	return printed != nil && calc.StringFixed(2) == printed.Value.StringFixed(2)
}
