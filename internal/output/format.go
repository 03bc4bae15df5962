package output

import "github.com/crimson-sun/tally/internal/model"

// Verbosity controls how much of each snapshot reaches a sink.
type Verbosity int

const (
	// Minimal keeps product, price, totals, and validity flags.
	Minimal Verbosity = iota
	// Standard additionally keeps confidence, trustworthiness, and
	// the raw product text, but drops line geometry.
	Standard
	// Full keeps everything, including bounding geometry.
	Full
)

// ParseVerbosity maps a string to a Verbosity. Unknown strings
// default to Standard.
func ParseVerbosity(s string) Verbosity {
	switch s {
	case "minimal":
		return Minimal
	case "full":
		return Full
	default:
		return Standard
	}
}

// FormatSnapshot returns a copy of the snapshot with position fields
// stripped according to verbosity. Stripped fields zero out and drop
// from the JSON via omitempty/omitzero.
func FormatSnapshot(s model.ReceiptSnapshot, verbosity Verbosity) model.ReceiptSnapshot {
	if verbosity == Full {
		return s
	}
	positions := make([]model.Observation, len(s.Positions))
	copy(positions, s.Positions)
	for i := range positions {
		positions[i].ProductLine = model.Quad{}
		positions[i].PriceLine = model.Quad{}
		if verbosity == Minimal {
			positions[i].RawProduct = ""
			positions[i].Confidence = 0
			positions[i].Trustworthiness = 0
			positions[i].Op = ""
		}
	}
	s.Positions = positions
	return s
}
