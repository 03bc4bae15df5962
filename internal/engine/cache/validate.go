package cache

import "github.com/crimson-sun/tally/internal/model"

// Validate sets the snapshot's validity flags.
//
// A snapshot is valid when the calculated total matches the printed
// total and either every contributing group has accumulated MinScans
// readings, or the receipt is long enough that sheer position volume
// corroborates it.
func (c *Cache) Validate(snap *model.ReceiptSnapshot) {
	snap.CorrectSum = sameTotal(snap.Calculated, snap.Total)

	snap.EnoughScans = true
	for i := range snap.Positions {
		g := c.groups[snap.Positions[i].GroupID]
		if g == nil || g.Len() < c.cfg.MinScans {
			snap.EnoughScans = false
			break
		}
	}

	snap.LongReceipt = len(snap.Positions) >= c.cfg.MinLongReceiptSize
	snap.Valid = snap.CorrectSum && (snap.EnoughScans || snap.LongReceipt)
}
