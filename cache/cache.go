package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// RateLimiterCache holds one *rate.Limiter per client IP. Idle entries expire.
var RateLimiterCache = cache.New(10*time.Minute, 20*time.Minute)
