package common

const (
	// DefaultOperationsLimit is the maximum number of operations a
	// single envelope may carry.
	DefaultOperationsLimit int = 100

	// HTTPCachePoolSize is the default size of the in-memory HTTP
	// response cache.
	HTTPCachePoolSize int = 10000

	HTTPCacheMemoryAdapterName = "mem"
	HTTPCacheRedisAdapterName  = "redis"
)
