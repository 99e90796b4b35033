package card

import (
	"sync"
	"time"

	"github.com/lox/barocast/internal/metrics"
)

// Cache holds the last rendered card. An entry is valid until its TTL expires
// or a snapshot with a different computation time is requested.
type Cache struct {
	mu        sync.RWMutex
	key       time.Time
	data      []byte
	expiresAt time.Time
	ttl       time.Duration
	now       func() time.Time
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, now: time.Now}
}

func (c *Cache) Get(key time.Time) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.data == nil || !c.key.Equal(key) || c.now().After(c.expiresAt) {
		return nil, false
	}
	return c.data, true
}

func (c *Cache) Set(key time.Time, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.key = key
	c.data = data
	c.expiresAt = c.now().Add(c.ttl)
}

// Render returns the cached card for data's snapshot, rendering it on a miss.
func (c *Cache) Render(data Data) ([]byte, error) {
	if data.Snapshot != nil {
		if png, ok := c.Get(data.Snapshot.ComputedAt); ok {
			metrics.CardRenders.WithLabelValues("hit").Inc()
			return png, nil
		}
	}

	png, err := Render(data)
	if err != nil {
		metrics.CardRenders.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.CardRenders.WithLabelValues("miss").Inc()
	c.Set(data.Snapshot.ComputedAt, png)
	return png, nil
}
