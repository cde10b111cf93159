package httpcache

import (
	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/errors"
)

// NewAdapter builds the adapter the config names. An empty adapter
// name means caching is off and the caller should not wrap handlers.
func NewAdapter(cfg common.Config) (Adapter, error) {
	switch cfg.HTTPCacheAdapter {
	case common.HTTPCacheMemoryAdapterName:
		size := cfg.HTTPCachePoolSize
		adapter := NewMemCacheAdapter(size)
		return adapter, nil
	case common.HTTPCacheRedisAdapterName:
		opt := &RedisRingOptions{Addrs: cfg.HTTPCacheRedisAddrs}
		adapter := NewRedisCacheAdapter(opt)
		return adapter, nil
	default:
		return nil, errors.HTTPCacheAdapterNotFound
	}
}
