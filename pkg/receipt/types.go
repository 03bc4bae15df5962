package receipt

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/crimson-sun/tally/internal/model"
)

// Point is a 2D point in image coordinates.
type Point struct {
	X, Y float64
}

// Quad is the bounding quadrilateral of a recognized text line.
type Quad struct {
	TopLeft, TopRight, BottomRight, BottomLeft Point
}

// Item is one candidate line item within a frame: the upstream layout
// step has already paired a product text with a price.
type Item struct {
	Product    string
	RawProduct string
	Price      decimal.Decimal
	PriceText  string // price at display precision, e.g. "1.29"
	Confidence int    // recognizer confidence, 0-100
	Timestamp  time.Time

	ProductLine Quad // geometry of the product text line
	PriceLine   Quad // geometry of the price text line
}

// Frame is one camera frame's partial reading of the receipt.
// Singleton fields are optional; the latest non-empty value wins
// across frames.
type Frame struct {
	Timestamp    time.Time
	Items        []Item
	Store        string
	PurchaseDate time.Time
	TotalLabel   string
	Total        *decimal.Decimal
	TotalText    string
}

// Position is a winning line item in a snapshot.
type Position struct {
	Product         string
	Price           decimal.Decimal
	PriceText       string
	Confidence      int
	Trustworthiness float64 // vote agreement within the item's group, 0-100
	Timestamp       time.Time
}

// Snapshot is the best current reading of the whole receipt. It is a
// value: later frames produce new snapshots, never mutate old ones.
type Snapshot struct {
	Store           string
	PurchaseDate    time.Time
	Positions       []Position
	TotalLabel      string
	Total           *decimal.Decimal // printed total, if one was read
	CalculatedTotal decimal.Decimal  // sum of position prices

	Valid       bool
	CorrectSum  bool
	EnoughScans bool
	LongReceipt bool
}

func frameToModel(f Frame) model.FrameReading {
	frame := model.FrameReading{
		Timestamp:    f.Timestamp,
		Store:        f.Store,
		PurchaseDate: f.PurchaseDate,
		TotalLabel:   f.TotalLabel,
	}
	if f.Total != nil {
		text := f.TotalText
		if text == "" {
			text = f.Total.StringFixed(2)
		}
		frame.Total = &model.Amount{Value: *f.Total, Text: text}
	}
	frame.Positions = make([]model.Observation, len(f.Items))
	for i, it := range f.Items {
		ts := it.Timestamp
		if ts.IsZero() {
			ts = f.Timestamp
		}
		priceText := it.PriceText
		if priceText == "" {
			priceText = it.Price.StringFixed(2)
		}
		frame.Positions[i] = model.Observation{
			Product:     it.Product,
			RawProduct:  it.RawProduct,
			Price:       it.Price,
			PriceText:   priceText,
			Confidence:  it.Confidence,
			Timestamp:   ts,
			ProductLine: quadToModel(it.ProductLine),
			PriceLine:   quadToModel(it.PriceLine),
		}
	}
	return frame
}

func snapshotFromModel(s model.ReceiptSnapshot) Snapshot {
	snap := Snapshot{
		Store:           s.Store,
		PurchaseDate:    s.PurchaseDate,
		TotalLabel:      s.TotalLabel,
		CalculatedTotal: s.Calculated,
		Valid:           s.Valid,
		CorrectSum:      s.CorrectSum,
		EnoughScans:     s.EnoughScans,
		LongReceipt:     s.LongReceipt,
	}
	if s.Total != nil {
		v := s.Total.Value
		snap.Total = &v
	}
	snap.Positions = make([]Position, len(s.Positions))
	for i, p := range s.Positions {
		snap.Positions[i] = Position{
			Product:         p.Product,
			Price:           p.Price,
			PriceText:       p.PriceText,
			Confidence:      p.Confidence,
			Trustworthiness: p.Trustworthiness,
			Timestamp:       p.Timestamp,
		}
	}
	return snap
}

func quadToModel(q Quad) model.Quad {
	return model.Quad{
		TopLeft:     model.Point{X: q.TopLeft.X, Y: q.TopLeft.Y},
		TopRight:    model.Point{X: q.TopRight.X, Y: q.TopRight.Y},
		BottomRight: model.Point{X: q.BottomRight.X, Y: q.BottomRight.Y},
		BottomLeft:  model.Point{X: q.BottomLeft.X, Y: q.BottomLeft.Y},
	}
}
