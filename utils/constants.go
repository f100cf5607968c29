package utils

import "time"

// AuthCachePrefix namespaces verified-token entries in the auth cache DB.
const AuthCachePrefix = "quotecompare:auth:"

// DefaultAuthCacheTTL bounds a cached verification when no TTL is configured.
// Entries never outlive the token's own expiry.
const DefaultAuthCacheTTL = 10 * time.Minute

// MockRoleHeader lets local development pick a role when tokens are decoded
// without verification.
const MockRoleHeader = "X-Mock-Role"
