package cache

import (
	"fmt"
	"time"

	"mediquick-api/internal/domain/entity"

	gocache "github.com/patrickmn/go-cache"
)

// QueryCache keeps recent lab test query results in process memory.
type QueryCache struct {
	store *gocache.Cache
}

func NewQueryCache(ttl time.Duration) *QueryCache {
	return &QueryCache{store: gocache.New(ttl, 2*ttl)}
}

func (c *QueryCache) Get(key string) ([]entity.LabTest, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}
	tests, ok := v.([]entity.LabTest)
	return tests, ok
}

func (c *QueryCache) Set(key string, tests []entity.LabTest) {
	c.store.SetDefault(key, tests)
}

// Invalidate drops every cached result.
func (c *QueryCache) Invalidate() {
	c.store.Flush()
}

func PopularKey(limit int) string {
	return fmt.Sprintf("lab_tests:popular:%d", limit)
}

func FeaturedKey(limit int) string {
	return fmt.Sprintf("lab_tests:featured:%d", limit)
}
