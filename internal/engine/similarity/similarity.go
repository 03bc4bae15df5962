// Package similarity scores the agreement between two product-text
// readings on a 0-100 scale. All scoring runs over canonicalized text
// so case, accents, and whitespace differences introduced by the
// recognizer do not count as disagreement.
package similarity

import (
	"strings"
	"unicode"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"golang.org/x/text/unicode/norm"

	"github.com/crimson-sun/tally/internal/model"
)

// Score returns the similarity between two observations' product texts
// in [0,100]. Two observations at the same instant are defined to have
// similarity 0: the same frame cannot corroborate itself.
func Score(a, b model.Observation) int {
	if a.Timestamp.Equal(b.Timestamp) {
		return 0
	}
	return Ratio(a.Product, b.Product)
}

// Ratio is the edit-distance-derived agreement of two strings in [0,100].
func Ratio(a, b string) int {
	return fuzzy.Ratio(Canonical(a), Canonical(b))
}

// PartialRatio is the best-substring agreement of two strings in [0,100].
// A shared leading product name with differing trailing noise scores 100.
func PartialRatio(a, b string) int {
	return fuzzy.PartialRatio(Canonical(a), Canonical(b))
}

// Canonical lowercases, strips combining marks, and collapses runs of
// whitespace to single spaces.
func Canonical(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if unicode.In(r, unicode.Mn) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
