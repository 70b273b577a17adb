// Package embedcache memoizes embedding vectors keyed by normalized text, so
// repeated guesses and the daily answer's probes cost one upstream call each.
package embedcache

import (
	"context"
	"sync"

	"tuneguess/api/internal/score"
)

// Cache stores vectors by normalized-text key. Implementations may be
// process-local or backed by the database; a miss is never an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]float64, bool)
	Put(ctx context.Context, key string, vec []float64)
}

type cachingEmbedder struct {
	inner score.Embedder
	cache Cache
}

// Wrap returns an Embedder that consults cache before the inner service and
// back-fills it afterwards. The upstream call stays batched: only the misses
// go over the wire, in their original order.
func Wrap(inner score.Embedder, cache Cache) score.Embedder {
	return &cachingEmbedder{inner: inner, cache: cache}
}

func (c *cachingEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	var missing []string
	var missingIdx []int
	for i, t := range texts {
		key := score.Normalize(t)
		if vec, ok := c.cache.Get(ctx, key); ok {
			out[i] = vec
			continue
		}
		missing = append(missing, t)
		missingIdx = append(missingIdx, i)
	}
	if len(missing) == 0 {
		return out, nil
	}

	vecs, err := c.inner.Embed(ctx, missing)
	if err != nil {
		return nil, err
	}
	for j, i := range missingIdx {
		if j >= len(vecs) {
			break
		}
		out[i] = vecs[j]
		c.cache.Put(ctx, score.Normalize(texts[i]), vecs[j])
	}
	return out, nil
}

// Memory is a process-local Cache, safe for concurrent use.
type Memory struct {
	mu sync.RWMutex
	m  map[string][]float64
}

func NewMemory() *Memory {
	return &Memory{m: make(map[string][]float64)}
}

func (c *Memory) Get(_ context.Context, key string) ([]float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	vec, ok := c.m[key]
	return vec, ok
}

func (c *Memory) Put(_ context.Context, key string, vec []float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = vec
}
