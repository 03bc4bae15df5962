package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Op describes how the last Apply classified an observation.
type Op string

const (
	// OpAdded means the observation opened a new position group.
	OpAdded Op = "added"
	// OpUpdated means the observation joined an existing position group.
	OpUpdated Op = "updated"
)

// Amount is a monetary value together with its display-precision text.
// Totals are compared by formatted text, never by raw numeric equality,
// so the text must round-trip the recognizer's display precision.
type Amount struct {
	Value decimal.Decimal `json:"value"`
	Text  string          `json:"text"`
}

// Observation is one frame's reading of a single receipt line item.
// Produced by the upstream recognizer, mutated only by group voting
// (Trustworthiness) and by normalization (Product).
type Observation struct {
	Product    string          `json:"product"`              // canonicalized product text
	RawProduct string          `json:"rawProduct,omitempty"` // as recognized, pre-canonicalization
	Price      decimal.Decimal `json:"price"`
	PriceText  string          `json:"priceText"`
	Confidence int             `json:"confidence"` // recognizer confidence, 0-100
	Timestamp  time.Time       `json:"timestamp"`  // frame capture time

	// Trustworthiness is the percentage agreement of this reading's
	// (product, price) pair within its group. Set by the group vote.
	Trustworthiness float64 `json:"trustworthiness"`

	// GroupID identifies the owning position group in the cache's
	// arena. Zero means not yet assigned.
	GroupID uint64 `json:"-"`

	Op Op `json:"op,omitempty"`

	ProductLine Quad `json:"productLine,omitzero"`
	PriceLine   Quad `json:"priceLine,omitzero"`
}

// FrameReading is one camera frame's partial reading of the receipt:
// zero or more line-item candidates plus optional singleton fields.
// This is the NDJSON wire type produced by the recognizer pipeline.
type FrameReading struct {
	Timestamp    time.Time     `json:"timestamp"`
	Positions    []Observation `json:"positions"`
	Store        string        `json:"store,omitempty"`
	PurchaseDate time.Time     `json:"purchaseDate,omitzero"`
	TotalLabel   string        `json:"totalLabel,omitempty"`
	Total        *Amount       `json:"total,omitempty"`
}
