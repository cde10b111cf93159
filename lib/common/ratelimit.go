package common

import (
	"github.com/ulule/limiter"
)

var (
	// RateLimitAPI is the default rate limit for the client-facing API.
	RateLimitAPI, _ = limiter.NewRateFromFormatted("100-S")
)

// RateLimitRule is the set of limits applied by the rate-limiting
// middleware. `Default` applies to every client. `ByIPAddress` can
// loosen or tighten the limit for well known addresses.
type RateLimitRule struct {
	Default     limiter.Rate
	ByIPAddress map[string]limiter.Rate
}

func NewRateLimitRule(rate limiter.Rate) RateLimitRule {
	return RateLimitRule{
		Default:     rate,
		ByIPAddress: map[string]limiter.Rate{},
	}
}
