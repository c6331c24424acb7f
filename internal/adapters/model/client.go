// Package model hosts the clients for the embedding and generative
// text collaborators. Both are process-wide singletons created at
// startup and shared read-only across requests; a concurrency gate
// bounds in-flight calls so concurrent HTTP requests cannot stampede
// the model server.
package model

import (
	"context"
)

// Embedder produces a fixed-length dense vector for a text. Identical
// input must yield identical output, and the empty string is defined.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Generator produces a bounded completion for a prompt. Decoding is
// greedy, so repeated calls on identical input are reproducible.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// gate bounds concurrent calls against the model API.
type gate struct {
	slots chan struct{}
}

func newGate(capacity int) *gate {
	if capacity < 1 {
		capacity = 1
	}
	return &gate{slots: make(chan struct{}, capacity)}
}

// acquire blocks until a slot is free or ctx is done.
func (g *gate) acquire(ctx context.Context) error {
	select {
	case g.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *gate) release() {
	<-g.slots
}
