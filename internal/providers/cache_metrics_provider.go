package providers

import (
	"cft/internal/structures"
)

// instrumentedCache wraps a cache with hit/miss metrics.
type instrumentedCache struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
}

func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if !conf.Cache.Enabled || !conf.Metrics.Enabled {
		return inner
	}
	return &instrumentedCache{inner: inner, metrics: metrics}
}

func (c *instrumentedCache) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		c.metrics.IncCacheHits()
	} else {
		c.metrics.IncCacheMisses()
	}
	return val, ok
}

func (c *instrumentedCache) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

func (c *instrumentedCache) Purge() {
	c.inner.Purge()
}
