package similarity

import (
	"context"
	"fmt"

	"github.com/credeq/credeq/internal/domain/textnorm"
)

// Embedder turns text into a fixed-length dense vector. Implementations
// must be deterministic for identical input and defined for the empty
// string.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// EmbeddingScorer scores texts by cosine similarity of their embeddings.
type EmbeddingScorer struct {
	embedder Embedder
}

// NewEmbeddingScorer creates a scorer backed by the given embedder.
func NewEmbeddingScorer(embedder Embedder) *EmbeddingScorer {
	return &EmbeddingScorer{embedder: embedder}
}

// Score normalizes both texts, embeds them and returns the rescaled
// cosine similarity. Missing text means "no match", not an error, so an
// empty side scores 0.0 without touching the embedder.
func (s *EmbeddingScorer) Score(ctx context.Context, a, b string) (float64, error) {
	na := textnorm.Normalize(a)
	nb := textnorm.Normalize(b)
	if na == "" || nb == "" {
		return 0, nil
	}

	va, err := s.embedder.Embed(ctx, na)
	if err != nil {
		return 0, fmt.Errorf("embed first text: %w", err)
	}
	vb, err := s.embedder.Embed(ctx, nb)
	if err != nil {
		return 0, fmt.Errorf("embed second text: %w", err)
	}

	return round2(cosine32(va, vb) * 100), nil
}
