package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"floodguard/internal/domain/entity"
	"floodguard/internal/domain/model"
)

// memoryEntry is a cached assessment with its storage timestamp
type memoryEntry struct {
	assessment entity.RiskAssessment
	storedAt   time.Time
}

// MemoryAssessmentCache is the in-process AssessmentCache used when Redis is
// disabled. Expiry is checked on read; Sweep drops aged entries so the map
// does not hold stale data between reads.
type MemoryAssessmentCache struct {
	mutex   sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	hits    int
	misses  int
	now     func() time.Time
}

// NewMemoryAssessmentCache creates an in-process assessment cache with the
// given entry TTL
func NewMemoryAssessmentCache(ttl time.Duration) *MemoryAssessmentCache {
	return &MemoryAssessmentCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached assessment for a location name
func (c *MemoryAssessmentCache) Get(_ context.Context, location string) (*entity.RiskAssessment, bool, error) {
	c.mutex.RLock()
	entry, found := c.entries[location]
	c.mutex.RUnlock()

	if !found || c.now().Sub(entry.storedAt) >= c.ttl {
		c.mutex.Lock()
		c.misses++
		c.mutex.Unlock()
		return nil, false, nil
	}

	c.mutex.Lock()
	c.hits++
	c.mutex.Unlock()

	assessment := entry.assessment
	return &assessment, true, nil
}

// Put stores a fresh assessment under the location name
func (c *MemoryAssessmentCache) Put(_ context.Context, location string, assessment *entity.RiskAssessment) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[location] = memoryEntry{
		assessment: *assessment,
		storedAt:   c.now(),
	}
	return nil
}

// Sweep removes expired entries and returns how many were dropped
func (c *MemoryAssessmentCache) Sweep() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	removed := 0
	for location, entry := range c.entries {
		if c.now().Sub(entry.storedAt) >= c.ttl {
			delete(c.entries, location)
			removed++
		}
	}
	return removed
}

// Stats returns cache hit and miss counts
func (c *MemoryAssessmentCache) Stats() (hits, misses int) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.hits, c.misses
}

// Health reports the cache component health
func (c *MemoryAssessmentCache) Health(_ context.Context) model.ComponentHealthStatus {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return model.ComponentHealthStatus{
		Status: model.StatusUp,
		Details: map[string]string{
			"type":    "memory",
			"entries": strconv.Itoa(len(c.entries)),
			"ttl":     c.ttl.String(),
		},
	}
}

var _ AssessmentCache = (*MemoryAssessmentCache)(nil)
