// File: utils/constants.go
package utils

import "time"

// ScoreCachePrefix is the prefix used for Redis reliability score cache keys.
const ScoreCachePrefix = "reliability:score:"

// ScoreCacheTTL is the time-to-live for cached reliability scores.
const ScoreCacheTTL = 15 * time.Minute
