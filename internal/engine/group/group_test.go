package group

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crimson-sun/tally/internal/model"
)

var t0 = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func obs(product, priceText string, offset time.Duration) *model.Observation {
	price, _ := decimal.NewFromString(priceText)
	return &model.Observation{
		Product:   product,
		Price:     price,
		PriceText: priceText,
		Timestamp: t0.Add(offset),
	}
}

func TestAddClaimsObservation(t *testing.T) {
	g := New(7, 20)
	o := obs("MILK 1L", "1.29", 0)
	g.Add(o)
	if o.GroupID != 7 {
		t.Fatalf("expected GroupID 7, got %d", o.GroupID)
	}
	if g.Len() != 1 {
		t.Fatalf("expected 1 member, got %d", g.Len())
	}
}

func TestAddEvictsOldestBeyondBound(t *testing.T) {
	g := New(1, 3)
	for i := 0; i < 4; i++ {
		g.Add(obs("MILK 1L", "1.29", time.Duration(i)*time.Second))
	}
	if g.Len() != 3 {
		t.Fatalf("expected bound of 3 members, got %d", g.Len())
	}
	if got := g.OldestTimestamp(); !got.Equal(t0.Add(time.Second)) {
		t.Fatalf("expected oldest member evicted, oldest now %v", got)
	}
}

func TestMemberAt(t *testing.T) {
	g := New(1, 20)
	g.Add(obs("MILK 1L", "1.29", 0))
	if g.MemberAt(t0) == nil {
		t.Fatal("expected member at t0")
	}
	if g.MemberAt(t0.Add(time.Second)) != nil {
		t.Fatal("expected no member at t0+1s")
	}
}

func TestMostSimilarPicksBestAndKeepsFirstOnTie(t *testing.T) {
	g := New(1, 20)
	first := obs("MILK 1L", "1.29", 0)
	second := obs("MILK 1L", "1.29", time.Second)
	bread := obs("BREAD", "2.49", 2*time.Second)
	g.Add(first)
	g.Add(second)
	g.Add(bread)

	m, score := g.MostSimilar(obs("MILK 1L", "1.29", 3*time.Second))
	if score != 100 {
		t.Fatalf("expected score 100, got %d", score)
	}
	if m != first {
		t.Fatal("expected first-encountered member to win the tie")
	}
}

func TestMostSimilarEmptyGroup(t *testing.T) {
	g := New(1, 20)
	if m, score := g.MostSimilar(obs("MILK 1L", "1.29", 0)); m != nil || score != 0 {
		t.Fatalf("expected (nil, 0) for empty group, got (%v, %d)", m, score)
	}
}

func TestMostTrustworthyUnanimous(t *testing.T) {
	g := New(1, 20)
	for i := 0; i < 3; i++ {
		g.Add(obs("MILK 1L", "1.29", time.Duration(i)*time.Second))
	}
	w := g.MostTrustworthy(nil, false)
	if w == nil {
		t.Fatal("expected a winner")
	}
	if w.Trustworthiness != 100 {
		t.Fatalf("expected trustworthiness 100, got %v", w.Trustworthiness)
	}
}

func TestMostTrustworthyMajority(t *testing.T) {
	g := New(1, 20)
	g.Add(obs("MILK 1L", "1.29", 0))
	g.Add(obs("MILK 1L", "1.29", time.Second))
	g.Add(obs("MILK 1L X", "1.29", 2*time.Second))

	w := g.MostTrustworthy(nil, false)
	if w.Product != "MILK 1L" {
		t.Fatalf("expected majority reading, got %q", w.Product)
	}
	if w.Trustworthiness < 66 || w.Trustworthiness > 67 {
		t.Fatalf("expected trustworthiness ≈66, got %v", w.Trustworthiness)
	}
}

func TestMostTrustworthyTieKeepsFirstInserted(t *testing.T) {
	g := New(1, 20)
	g.Add(obs("MILK 1L", "1.29", 0))
	g.Add(obs("MILK 1L X", "1.29", time.Second))

	w := g.MostTrustworthy(nil, false)
	if w.Product != "MILK 1L" {
		t.Fatalf("expected first-inserted pair on tie, got %q", w.Product)
	}
	if w.Trustworthiness != 50 {
		t.Fatalf("expected trustworthiness 50, got %v", w.Trustworthiness)
	}
}

func TestMostTrustworthyPriceRequired(t *testing.T) {
	g := New(1, 20)
	g.Add(obs("MILK 1L", "1.29", 0))
	g.Add(obs("MILK 1L", "1.29", time.Second))
	// Misread price dominates by count but must not win when the vote
	// is narrowed to the reference price.
	g.Add(obs("MILK 1L B", "7.29", 2*time.Second))
	g.Add(obs("MILK 1L B", "7.29", 3*time.Second))
	g.Add(obs("MILK 1L B", "7.29", 4*time.Second))

	def := obs("MILK 1L", "1.29", 5*time.Second)
	w := g.MostTrustworthy(def, true)
	if w.PriceText != "1.29" || w.Product != "MILK 1L" {
		t.Fatalf("expected vote narrowed to price 1.29, got (%q, %q)", w.Product, w.PriceText)
	}
}

func TestMostTrustworthyPriceRequiredNoMatchReturnsDefault(t *testing.T) {
	g := New(1, 20)
	g.Add(obs("MILK 1L", "1.29", 0))

	def := obs("MILK 1L", "9.99", time.Second)
	if w := g.MostTrustworthy(def, true); w != def {
		t.Fatal("expected default observation back when no member matches the price")
	}
}

func TestMostTrustworthyEmptyGroup(t *testing.T) {
	g := New(1, 20)
	if w := g.MostTrustworthy(nil, false); w != nil {
		t.Fatalf("expected nil for empty group, got %v", w)
	}
}

func TestTrustworthinessBounds(t *testing.T) {
	g := New(1, 20)
	products := []string{"MILK 1L", "MILK 1L", "MILK 1L X", "MILK 1I", "MILK 1L"}
	for i, p := range products {
		g.Add(obs(p, "1.29", time.Duration(i)*time.Second))
	}
	w := g.MostTrustworthy(nil, false)
	if w.Trustworthiness < 0 || w.Trustworthiness > 100 {
		t.Fatalf("trustworthiness out of [0,100]: %v", w.Trustworthiness)
	}
}

func TestOldestTimestampEmptyGroup(t *testing.T) {
	g := New(1, 20)
	if !g.OldestTimestamp().IsZero() {
		t.Fatal("expected zero time for empty group")
	}
}
