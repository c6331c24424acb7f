// Package similarity produces a 0-100 content-similarity score between
// two course descriptions. Two interchangeable strategies exist behind
// the Scorer interface: a semantic embedding comparison and a lexical
// TF-IDF comparison for local use without a model service.
package similarity

import (
	"context"
	"math"
)

// Scorer computes a similarity score in [0,100] between two texts.
type Scorer interface {
	Score(ctx context.Context, a, b string) (float64, error)
}

// round2 rounds to two decimals and clamps into [0,100]. Cosine can go
// slightly negative on near-orthogonal vectors; the contract floor is 0.
func round2(x float64) float64 {
	v := math.Round(x*100) / 100
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func cosine32(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		af, bf := float64(a[i]), float64(b[i])
		dot += af * bf
		na += af * af
		nb += bf * bf
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
