package cache

import (
	"context"
	"fmt"
	"sync"

	"protein-annotator/internal/source"

	"github.com/rs/zerolog/log"
)

// AnnotationCache keeps structure annotations in memory in front of a lookup.
// Entries do not expire; once maxEntries is reached the oldest entry is evicted.
type AnnotationCache struct {
	next       source.AnnotationLookup
	maxEntries int
	mu         sync.RWMutex
	memory     map[string]string // structure key → raw annotation report
	order      []string          // insertion order, oldest first
}

// NewAnnotationCache wraps next with an in-memory cache holding at most
// maxEntries annotations. maxEntries <= 0 means unbounded.
func NewAnnotationCache(next source.AnnotationLookup, maxEntries int) *AnnotationCache {
	return &AnnotationCache{
		next:       next,
		maxEntries: maxEntries,
		memory:     make(map[string]string),
	}
}

// Get retrieves a cached annotation. Returns empty string and false if not found.
func (c *AnnotationCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.memory[key]
	return v, ok
}

// Set stores an annotation.
func (c *AnnotationCache) Set(key, report string) {
	c.mu.Lock()
	c.store(key, report)
	c.mu.Unlock()
}

// store must be called with mu held.
func (c *AnnotationCache) store(key, report string) {
	if _, ok := c.memory[key]; !ok {
		c.order = append(c.order, key)
	}
	c.memory[key] = report

	for c.maxEntries > 0 && len(c.order) > c.maxEntries {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.memory, oldest)
		log.Debug().Str("structure", oldest).Msg("Evicted annotation")
	}
}

// Preload seeds the cache, e.g. with annotations already on disk.
func (c *AnnotationCache) Preload(reports map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, v := range reports {
		c.store(k, v)
	}
	log.Info().Int("count", len(reports)).Msg("Preloaded annotation cache")
}

// Len returns the number of cached annotations.
func (c *AnnotationCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.memory)
}

// Annotation returns the cached report for key, fetching and storing it on a miss.
// Failed lookups are not cached.
func (c *AnnotationCache) Annotation(ctx context.Context, key string) (string, error) {
	if v, ok := c.Get(key); ok {
		log.Debug().Str("structure", key).Msg("Annotation cache hit")
		return v, nil
	}

	report, err := c.next.Annotation(ctx, key)
	if err != nil {
		return "", fmt.Errorf("annotation %s: %w", key, err)
	}

	c.Set(key, report)
	return report, nil
}
