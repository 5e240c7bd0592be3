// pkg/anomaly/similarity.go
package anomaly

import (
	"math"
	"regexp"
	"strings"
)

var tokenPattern = regexp.MustCompile(`\b[a-z0-9']+\b`)

// termVector is a term-frequency vector with its precomputed norm.
type termVector struct {
	counts map[string]float64
	norm   float64
}

func newTermVector(text string) termVector {
	counts := make(map[string]float64)
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		counts[tok]++
	}

	var sumSq float64
	for _, n := range counts {
		sumSq += n * n
	}

	return termVector{counts: counts, norm: math.Sqrt(sumSq)}
}

// cosine returns the cosine similarity of two vectors, 0 when either
// is empty.
func (v termVector) cosine(other termVector) float64 {
	if v.norm == 0 || other.norm == 0 {
		return 0
	}

	// Iterate the smaller map.
	a, b := v, other
	if len(b.counts) < len(a.counts) {
		a, b = b, a
	}

	var dot float64
	for tok, n := range a.counts {
		dot += n * b.counts[tok]
	}

	return dot / (v.norm * other.norm)
}
