// Package skew estimates the rotation angle of a scanned receipt from
// the spatial layout of its recognized line items. The left edge of
// the product column and the right edge of the price column each get a
// confidence-weighted least-squares line; the fitted slopes convert to
// a single deskew angle.
package skew

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/crimson-sun/tally/internal/model"
)

const (
	// DefaultMinSamples is the minimum point count per side.
	DefaultMinSamples = 3

	// snapBelow: angles smaller than this are treated as straight.
	snapBelow = 0.5
	// disagreeAbove: when the two sides differ by more than this, the
	// smaller-magnitude side wins (less apparent tilt, fewer outliers).
	disagreeAbove = 2.0
)

// Estimate returns the deskew angle in degrees for the given
// positions, or 0 when there is not enough evidence. Positions without
// geometry on a side are skipped for that side; a side with fewer than
// minSamples points (or a degenerate fit) contributes no angle.
func Estimate(positions []model.Observation, minSamples int) float64 {
	if minSamples <= 0 {
		minSamples = DefaultMinSamples
	}

	var leftX, leftY, leftW []float64
	var rightX, rightY, rightW []float64
	for i := range positions {
		w := clampWeight(positions[i].Confidence)
		if q := positions[i].ProductLine; !q.IsZero() {
			p := q.Leading()
			leftX, leftY, leftW = append(leftX, p.X), append(leftY, p.Y), append(leftW, w)
		}
		if q := positions[i].PriceLine; !q.IsZero() {
			p := q.Trailing()
			rightX, rightY, rightW = append(rightX, p.X), append(rightY, p.Y), append(rightW, w)
		}
	}

	left, okL := fitSide(leftX, leftY, leftW, minSamples)
	right, okR := fitSide(rightX, rightY, rightW, minSamples)

	var angle float64
	switch {
	case okL && okR:
		if math.Abs(left-right) > disagreeAbove {
			angle = left
			if math.Abs(right) < math.Abs(left) {
				angle = right
			}
		} else {
			angle = (left + right) / 2
		}
	case okL:
		angle = left
	case okR:
		angle = right
	default:
		return 0
	}

	if math.Abs(angle) < snapBelow {
		return 0
	}
	return angle
}

// fitSide fits x = a·y + b by weighted least squares and returns the
// slope converted to degrees. Degenerate fits (collinear-in-y points,
// NaN slope) report no fit rather than failing.
func fitSide(xs, ys, ws []float64, minSamples int) (float64, bool) {
	if len(xs) < minSamples {
		return 0, false
	}
	_, a := stat.LinearRegression(ys, xs, ws, false)
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0, false
	}
	return math.Atan(a) * 180 / math.Pi, true
}

// clampWeight maps a recognizer confidence to a fit weight in [1,100],
// so even a zero-confidence reading keeps nonzero influence and the
// weight sum can never degenerate.
func clampWeight(confidence int) float64 {
	if confidence < 1 {
		return 1
	}
	if confidence > 100 {
		return 100
	}
	return float64(confidence)
}
