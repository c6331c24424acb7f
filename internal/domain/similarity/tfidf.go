package similarity

import (
	"context"
	"math"
	"strings"

	"github.com/credeq/credeq/internal/domain/textnorm"
)

// TFIDFScorer scores texts by cosine similarity of TF-IDF vectors built
// from the two-document corpus {a, b}. It needs no external service and
// is the strategy of choice for local runs and tests.
type TFIDFScorer struct{}

// NewTFIDFScorer creates a lexical scorer.
func NewTFIDFScorer() *TFIDFScorer {
	return &TFIDFScorer{}
}

// Score vectorizes both normalized texts over their shared vocabulary
// and returns the rescaled cosine similarity. An empty side scores 0.0.
func (s *TFIDFScorer) Score(_ context.Context, a, b string) (float64, error) {
	ta := tokenize(a)
	tb := tokenize(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0, nil
	}

	ca := counts(ta)
	cb := counts(tb)

	// Smoothed inverse document frequency over the two-document corpus:
	// idf = ln((1+n)/(1+df)) + 1 with n = 2.
	idf := func(term string) float64 {
		df := 0
		if ca[term] > 0 {
			df++
		}
		if cb[term] > 0 {
			df++
		}
		return math.Log(3.0/float64(1+df)) + 1
	}

	vocab := make(map[string]struct{}, len(ca)+len(cb))
	for t := range ca {
		vocab[t] = struct{}{}
	}
	for t := range cb {
		vocab[t] = struct{}{}
	}

	var dot, na, nb float64
	for term := range vocab {
		w := idf(term)
		wa := float64(ca[term]) * w
		wb := float64(cb[term]) * w
		dot += wa * wb
		na += wa * wa
		nb += wb * wb
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}

	return round2(dot / (math.Sqrt(na) * math.Sqrt(nb)) * 100), nil
}

// tokenize normalizes text and splits it into terms of at least two
// characters, mirroring the word-boundary tokenization the lexical
// baseline was tuned against.
func tokenize(text string) []string {
	fields := strings.Fields(textnorm.Normalize(text))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= 2 {
			terms = append(terms, f)
		}
	}
	return terms
}

func counts(terms []string) map[string]int {
	c := make(map[string]int, len(terms))
	for _, t := range terms {
		c[t]++
	}
	return c
}
