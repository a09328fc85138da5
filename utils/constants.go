// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// DoctorCachePrefix is the prefix used for cached doctor public profiles.
const DoctorCachePrefix = "doctor:"

// DoctorCacheTTL is the time-to-live for cached doctor public profiles.
const DoctorCacheTTL = 5 * time.Minute
