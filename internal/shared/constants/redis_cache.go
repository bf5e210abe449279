package constants

import "time"

// Redis key namespace and TTLs.
// Pattern: ledgerly:{module}:{operation}:{identifier}

const (
	CACHE_PREFIX = "ledgerly"
)

// ================== AUTH MODULE ==================

// Auth Cache Keys
const (
	CACHE_KEY_USER_IDENTITY = CACHE_PREFIX + ":auth:identity:uuid:" // + user-id
)

// Auth Cache TTLs
const (
	TTL_USER_IDENTITY = 5 * time.Minute
)

// BuildUserIdentityKey constructs the cache key for a guard-resolved
// user identity.
func BuildUserIdentityKey(userID string) string {
	return CACHE_KEY_USER_IDENTITY + userID
}
