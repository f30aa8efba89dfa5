package constants

import (
	"time"
)

// Redis Cache Configuration
// Pattern: spotly:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: never changes once written)
const (
	TTL_STATIC_LONG = 24 * time.Hour
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX     = "spotly"
	RATELIMIT_PREFIX = CACHE_PREFIX + ":ratelimit:"
)

// ================== SPOTS MODULE ==================

// Spot identity (id <-> name) is immutable, so it can live for a long time.
// Slot availability is never cached; it is always read from the store.
const (
	CACHE_KEY_SPOT_REF_BY_NAME = CACHE_PREFIX + ":spots:ref:name:" // + spot-name
)

const (
	TTL_SPOT_REF = TTL_STATIC_LONG
)

// ================== HELPER FUNCTIONS ==================

// BuildSpotRefKey -> "spotly:spots:ref:name:Summer Fair"
func BuildSpotRefKey(name string) string {
	return CACHE_KEY_SPOT_REF_BY_NAME + name
}

// BuildRateLimitKey -> "spotly:ratelimit:10.0.0.1:reserve"
func BuildRateLimitKey(clientIP, limitType string) string {
	return RATELIMIT_PREFIX + clientIP + ":" + limitType
}
