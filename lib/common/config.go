package common

//
// Config carries the limits and shared settings every node component
// receives at startup. It is built once in the command layer and
// passed down, never mutated afterwards.
//
type Config struct {
	OpsLimit int

	NetworkID []byte

	RateLimitRuleAPI RateLimitRule

	HTTPCacheAdapter    string
	HTTPCachePoolSize   int
	HTTPCacheRedisAddrs map[string]string
}

func NewConfig(networkID []byte) Config {
	p := Config{}

	p.OpsLimit = DefaultOperationsLimit
	p.NetworkID = networkID

	p.RateLimitRuleAPI = NewRateLimitRule(RateLimitAPI)

	p.HTTPCachePoolSize = HTTPCachePoolSize

	return p
}
