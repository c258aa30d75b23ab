package config

import "time"

// CacheConfig defines settings for the response cache middleware.
// When Enabled is false or no Redis client is configured, caching is
// disabled.  Only GET responses are cached; TTL keeps availability
// data fresh enough for seat selection while absorbing browse bursts.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string // key namespace
	MaxBodyBytes int    // responses larger than this are not cached
}

// LoadCacheConfig reads cache settings from the environment, using
// defaults when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		TTL:          envDur("CACHE_TTL", 5*time.Second),
		Prefix:       envStr("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}
