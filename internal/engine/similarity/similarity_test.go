package similarity

import (
	"testing"
	"time"

	"github.com/crimson-sun/tally/internal/model"
)

var t0 = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func obs(product string, offset time.Duration) model.Observation {
	return model.Observation{Product: product, Timestamp: t0.Add(offset)}
}

func TestScoreIdenticalTextDifferentFrames(t *testing.T) {
	a := obs("MILK 1L", 0)
	b := obs("MILK 1L", time.Second)
	if got := Score(a, b); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}

func TestScoreSameTimestampIsZero(t *testing.T) {
	// An observation cannot corroborate itself within one frame.
	a := obs("MILK 1L", 0)
	b := obs("MILK 1L", 0)
	if got := Score(a, b); got != 0 {
		t.Fatalf("expected self-match guard to yield 0, got %d", got)
	}
}

func TestScoreUnrelatedTextIsLow(t *testing.T) {
	a := obs("MILK 1L", 0)
	b := obs("TOOTHPASTE", time.Second)
	if got := Score(a, b); got >= 50 {
		t.Fatalf("expected score below grouping threshold, got %d", got)
	}
}

func TestRatioTrailingNoiseStillSimilar(t *testing.T) {
	got := Ratio("MILK 1L", "MILK 1L X")
	if got < 50 || got >= 100 {
		t.Fatalf("expected partial agreement in [50,100), got %d", got)
	}
}

func TestPartialRatioSharedPrefix(t *testing.T) {
	// Same leading product name, trailing OCR noise.
	if got := PartialRatio("FRESH MILK 1L A9X", "FRESH MILK 1L"); got != 100 {
		t.Fatalf("expected 100 for shared prefix, got %d", got)
	}
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"MILK 1L", "milk 1l"},
		{"  Milk   1L ", "milk 1l"},
		{"Café Crème", "cafe creme"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Canonical(tt.in); got != tt.want {
			t.Errorf("Canonical(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRatioCanonicalizes(t *testing.T) {
	// Case and accent differences are recognizer jitter, not
	// disagreement.
	if got := Ratio("CAFÉ CRÈME", "cafe creme"); got != 100 {
		t.Fatalf("expected 100 across case/accent variants, got %d", got)
	}
}
