package memory

import (
	"context"
	"sync"

	"github.com/aretw0/dfacheck/pkg/domain"
)

// Cache implements ports.VerdictCache in memory.
// Safe for concurrent use.
type Cache struct {
	data map[string]domain.Verdict
	mu   sync.RWMutex
}

// NewCache creates a new in-memory verdict cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]domain.Verdict),
	}
}

// Get retrieves a verdict.
func (c *Cache) Get(ctx context.Context, key string) (domain.Verdict, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.data[key]
	if !ok {
		return domain.Verdict{}, domain.ErrVerdictNotFound
	}
	return v, nil
}

// Put stores a verdict. Verdict is a plain value, so no copy is needed.
func (c *Cache) Put(ctx context.Context, key string, v domain.Verdict) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = v
	return nil
}

// Delete removes a verdict.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// Len returns the number of cached verdicts.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
