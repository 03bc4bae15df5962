// Package group implements the position group: an ordered, bounded
// cluster of observations believed to be repeated readings of one
// physical receipt line across frames.
package group

import (
	"time"

	"github.com/crimson-sun/tally/internal/engine/similarity"
	"github.com/crimson-sun/tally/internal/model"
)

// Group holds the observations of one receipt line in arrival order.
// Invariant: no two members share a timestamp (one reading per frame).
type Group struct {
	id      uint64
	maxSize int
	members []*model.Observation
}

// New creates an empty group with the given arena ID and size bound.
func New(id uint64, maxSize int) *Group {
	return &Group{id: id, maxSize: maxSize}
}

// ID returns the group's arena ID.
func (g *Group) ID() uint64 { return g.id }

// Len returns the number of member observations.
func (g *Group) Len() int { return len(g.members) }

// Members returns the member observations in arrival order.
func (g *Group) Members() []*model.Observation { return g.members }

// MemberAt returns the member read at exactly t, or nil. Guards
// against the same frame being offered to a group twice.
func (g *Group) MemberAt(t time.Time) *model.Observation {
	for _, m := range g.members {
		if m.Timestamp.Equal(t) {
			return m
		}
	}
	return nil
}

// Add appends an observation, claiming it for this group. When the
// size bound is exceeded the member with the oldest timestamp is
// evicted.
func (g *Group) Add(obs *model.Observation) {
	obs.GroupID = g.id
	g.members = append(g.members, obs)
	if g.maxSize > 0 && len(g.members) > g.maxSize {
		oldest := 0
		for i, m := range g.members {
			if m.Timestamp.Before(g.members[oldest].Timestamp) {
				oldest = i
			}
		}
		g.members = append(g.members[:oldest], g.members[oldest+1:]...)
	}
}

// MostSimilar returns the member whose product text best matches the
// candidate, with the score. Ties keep the first-encountered member.
// Returns (nil, 0) for an empty group.
func (g *Group) MostSimilar(candidate *model.Observation) (*model.Observation, int) {
	var best *model.Observation
	bestScore := -1
	for _, m := range g.members {
		if s := similarity.Score(*m, *candidate); s > bestScore {
			best, bestScore = m, s
		}
	}
	if best == nil {
		return nil, 0
	}
	return best, bestScore
}

// MostTrustworthy runs a majority vote over the members' (product,
// formatted price) pairs and returns the first member of the winning
// pair, with its Trustworthiness set to occurrences/len × 100.
//
// Frequency ties resolve to the pair that entered the group first
// (stable insertion order), keeping the vote deterministic.
//
// With priceRequired and a non-nil def, the vote narrows to members
// whose formatted price equals def's, so only the product text is open
// to revision; if no member qualifies, def is returned unchanged.
func (g *Group) MostTrustworthy(def *model.Observation, priceRequired bool) *model.Observation {
	type tally struct {
		count int
		first *model.Observation
	}
	votes := make(map[string]*tally)
	var order []string
	for _, m := range g.members {
		if priceRequired && def != nil && m.PriceText != def.PriceText {
			continue
		}
		key := m.Product + "\x00" + m.PriceText
		t, ok := votes[key]
		if !ok {
			t = &tally{first: m}
			votes[key] = t
			order = append(order, key)
		}
		t.count++
	}
	if len(order) == 0 {
		return def
	}
	best := votes[order[0]]
	for _, key := range order[1:] {
		if votes[key].count > best.count {
			best = votes[key]
		}
	}
	winner := best.first
	winner.Trustworthiness = float64(best.count) / float64(len(g.members)) * 100
	return winner
}

// OldestTimestamp returns the minimum timestamp among members, or the
// zero time for an empty group.
func (g *Group) OldestTimestamp() time.Time {
	var oldest time.Time
	for i, m := range g.members {
		if i == 0 || m.Timestamp.Before(oldest) {
			oldest = m.Timestamp
		}
	}
	return oldest
}
