// Package cache memoizes embedding vectors for normalized texts.
//
// Course descriptions repeat across applications (the target
// institution's syllabi especially), and embedding is the slowest call
// in the pipeline, so a small bounded cache in front of the embedder
// removes most repeat work. The cache is shared across concurrent
// requests and guarded by a single RWMutex; vectors are stored as-is
// and must be treated as read-only by callers.
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"sync"

	"github.com/credeq/credeq/pkg/metrics"
)

// defaultMaxSize bounds the number of cached vectors.
const defaultMaxSize = 10_000

// Embedder is the upstream the cache fronts.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Option applies a configuration option to the EmbedCache.
type Option func(*EmbedCache)

// WithMaxSize bounds the cache. Zero or negative means unbounded.
func WithMaxSize(size int) Option {
	return func(c *EmbedCache) {
		c.maxSize = size
	}
}

// EmbedCache implements Embedder with memoization.
type EmbedCache struct {
	mu       sync.RWMutex
	upstream Embedder
	vectors  map[string][]float32
	maxSize  int
}

// New creates a cache fronting the given embedder.
func New(upstream Embedder, opts ...Option) *EmbedCache {
	c := &EmbedCache{
		upstream: upstream,
		vectors:  make(map[string][]float32),
		maxSize:  defaultMaxSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Embed returns the cached vector for text or asks the upstream.
// Failed upstream calls are not cached.
func (c *EmbedCache) Embed(ctx context.Context, text string) ([]float32, error) {
	key := cacheKey(text)

	c.mu.RLock()
	vec, ok := c.vectors[key]
	c.mu.RUnlock()
	if ok {
		metrics.RecordCacheHit()
		return vec, nil
	}
	metrics.RecordCacheMiss()

	vec, err := c.upstream.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	// Another request may have filled the entry while we embedded;
	// overwriting with an identical vector is harmless.
	if c.maxSize > 0 && len(c.vectors) >= c.maxSize {
		c.evictOne()
	}
	c.vectors[key] = vec
	size := len(c.vectors)
	c.mu.Unlock()

	metrics.UpdateCacheSize(size)
	return vec, nil
}

// Size returns the current number of cached vectors.
func (c *EmbedCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vectors)
}

// evictOne drops an arbitrary entry. Vectors carry no recency
// semantics, so map iteration order is as good a victim as any.
// Caller must hold the write lock.
func (c *EmbedCache) evictOne() {
	for k := range c.vectors {
		delete(c.vectors, k)
		return
	}
}

func cacheKey(text string) string {
	sum := sha1.Sum([]byte(text)) //nolint:gosec // cache key, not security
	return hex.EncodeToString(sum[:])
}
