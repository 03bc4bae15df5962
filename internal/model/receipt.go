package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptSnapshot is the consensus engine's output — the best current
// reading of the whole receipt. Rebuilt as a fresh value on every merge
// and never mutated after emission; the next frame supersedes it.
type ReceiptSnapshot struct {
	Store        string          `json:"store,omitempty"`
	PurchaseDate time.Time       `json:"purchaseDate,omitzero"`
	Positions    []Observation   `json:"positions"`
	TotalLabel   string          `json:"totalLabel,omitempty"`
	Total        *Amount         `json:"total,omitempty"` // printed total, if one was read
	Calculated   decimal.Decimal `json:"calculatedTotal"` // sum of position prices

	// Valid is the overall verdict; the component flags expose the
	// breakdown so callers can drive scanning hints.
	Valid       bool `json:"valid"`
	CorrectSum  bool `json:"correctSum"`
	EnoughScans bool `json:"enoughScans"`
	LongReceipt bool `json:"longReceipt"`
}

// FormattedTotal returns the calculated total at display precision.
func (s ReceiptSnapshot) FormattedTotal() string {
	return s.Calculated.StringFixed(2)
}
