package api

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/okian/matchdb/pkg/metrics"
)

// responseCache keeps encoded response bodies. The store never changes
// after startup, so entries are valid for the life of the process. A nil
// lru disables caching.
type responseCache struct {
	lru     *lru.Cache[string, []byte]
	metrics *metrics.Manager
}

func newResponseCache(size int, m *metrics.Manager) *responseCache {
	c := &responseCache{metrics: m}
	if size <= 0 {
		return c
	}
	l, err := lru.New[string, []byte](size)
	if err != nil {
		return c
	}
	c.lru = l
	return c
}

func (c *responseCache) get(key string) ([]byte, bool) {
	if c.lru == nil {
		return nil, false
	}
	body, ok := c.lru.Get(key)
	if ok {
		c.metrics.RecordCacheHit()
	} else {
		c.metrics.RecordCacheMiss()
	}
	return body, ok
}

func (c *responseCache) add(key string, body []byte) {
	if c.lru == nil {
		return
	}
	c.lru.Add(key, body)
	c.metrics.UpdateCacheEntries(c.lru.Len())
}

func (c *responseCache) len() int {
	if c.lru == nil {
		return 0
	}
	return c.lru.Len()
}
