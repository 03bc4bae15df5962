// Package receipt turns a noisy frame-by-frame stream of recognized
// receipt lines into one stable, validated receipt record.
//
// Each camera frame yields an independent, error-prone partial reading
// of the receipt. A Session clusters repeated readings of the same
// physical line, votes on the winning (product, price) pair per
// cluster, reconciles the summed prices against the printed total, and
// declares the result valid only when enough independent evidence has
// accumulated.
//
// Typical use:
//
//	session := receipt.New(receipt.WithVideoFeed(true))
//	for frame := range frames {
//		snap, ok := session.Process(frame)
//		if ok && snap.Valid {
//			break // confirmed receipt
//		}
//	}
//
// Sessions also estimate the receipt's rotation angle from the layout
// of recognized lines (SkewAngle), which callers can feed back into
// image deskewing upstream.
package receipt
