package cache

import (
	"strings"
	"unicode"

	"github.com/crimson-sun/tally/internal/engine/similarity"
	"github.com/crimson-sun/tally/internal/model"
)

// Normalize rewrites each snapshot position's product text from the
// agreement within its group, suppressing OCR tail noise (promo codes,
// stray glyphs) while keeping at least a two-token product name.
//
// For each position: the group's canonical reading for the position's
// price is looked up; members whose text fully partial-matches the
// canonical at the same price are "agreeing observations". The
// canonical text is cut to the shortest agreeing token count when that
// is shorter and still leaves more than two tokens, then trailing
// noise tokens are dropped under the same floor.
func (c *Cache) Normalize(snap *model.ReceiptSnapshot) {
	for i := range snap.Positions {
		pos := &snap.Positions[i]
		g := c.groups[pos.GroupID]
		if g == nil {
			continue
		}
		canon := g.MostTrustworthy(pos, true)
		if canon == nil {
			continue
		}

		tokens := strings.Fields(canon.Product)
		keep := len(tokens)
		for _, m := range g.Members() {
			if m.PriceText != pos.PriceText {
				continue
			}
			if similarity.PartialRatio(canon.Product, m.Product) != 100 {
				continue
			}
			if n := len(strings.Fields(m.Product)); n < keep && n > 2 {
				keep = n
			}
		}
		tokens = tokens[:keep]

		for len(tokens) > 2 && noiseToken(tokens[len(tokens)-1]) {
			tokens = tokens[:len(tokens)-1]
		}
		pos.Product = strings.Join(tokens, " ")
	}
}

// noiseToken reports whether a trailing token carries no product
// meaning: it has no letters, and any digits it carries belong to a
// price or discount fragment (currency or percent symbol present).
func noiseToken(tok string) bool {
	hasLetter, hasDigit := false, false
	for _, r := range tok {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if hasLetter {
		return false
	}
	if !hasDigit {
		return true
	}
	return strings.ContainsAny(tok, "€$£¢%")
}
