// Package cache holds the resolution cache: TTL-bounded storage of
// resolution results keyed by the normalized identity+grade tuple. Failures
// are cached alongside successes so unresolvable identities are not
// re-queried within the TTL.
package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/slabwatch/slabwatch/internal/domain"
	"github.com/slabwatch/slabwatch/internal/parse"
)

// Store is the resolution cache interface. A Get miss and a backend error
// look the same to the resolver: it proceeds to the sources.
type Store interface {
	Get(ctx context.Context, key string) (domain.ResolutionResult, bool)
	Put(ctx context.Context, key string, res domain.ResolutionResult)
}

// Key builds the cache key from the normalized identity+grade tuple.
func Key(id domain.CardIdentity, grade domain.GradeInfo) string {
	fields := []string{
		strings.ToLower(id.Sport),
		fmt.Sprintf("%d", id.Year),
		strings.ToLower(strings.TrimSpace(id.SetName)),
		strings.ToLower(strings.TrimSpace(id.InsertLine)),
		parse.NormalizeCardNumber(id.CardNumber),
		strings.ToLower(strings.TrimSpace(id.Parallel)),
		fmt.Sprintf("%t", id.IsAutograph),
		strings.ToUpper(strings.TrimSpace(grade.Authority)),
		fmt.Sprintf("%g", grade.NumericGrade),
		strings.ToLower(strings.TrimSpace(grade.RawLabel)),
	}
	return "resolution:" + strings.Join(fields, "|")
}

type entry struct {
	result  domain.ResolutionResult
	written time.Time
}

// TTLCache is the in-memory store. Entries are immutable once inserted;
// collisions are last-writer-wins because quotes for the same key are
// expected to be equal. Size is capped by evicting the oldest insertions.
type TTLCache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	order      []string
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewTTLCache creates an in-memory resolution cache. maxEntries <= 0 means
// a default cap of 10000.
func NewTTLCache(ttl time.Duration, maxEntries int) *TTLCache {
	if maxEntries <= 0 {
		maxEntries = 10000
	}
	return &TTLCache{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the cached result if present and unexpired.
func (c *TTLCache) Get(_ context.Context, key string) (domain.ResolutionResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.ResolutionResult{}, false
	}
	if c.now().Sub(e.written) > c.ttl {
		return domain.ResolutionResult{}, false
	}
	return e.result, true
}

// Put stores a resolution result, evicting the oldest entries past the cap.
func (c *TTLCache) Put(_ context.Context, key string, res domain.ResolutionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = entry{result: res, written: c.now()}

	for len(c.entries) > c.maxEntries && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

// CleanExpired drops expired entries and returns how many were removed.
func (c *TTLCache) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	cleaned := 0
	now := c.now()
	kept := c.order[:0]
	for _, key := range c.order {
		e, ok := c.entries[key]
		if !ok {
			continue
		}
		if now.Sub(e.written) > c.ttl {
			delete(c.entries, key)
			cleaned++
			continue
		}
		kept = append(kept, key)
	}
	c.order = kept
	return cleaned
}

// Len returns the live entry count, expired entries included until cleaned.
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
