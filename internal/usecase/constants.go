package usecase

import "time"

const (
	// itemsCacheKey is the cache key for the full item listing.
	itemsCacheKey = "items:list"

	// itemsCacheTTL bounds staleness of the cached item listing. Stock
	// counts shown in listings may lag by up to this much; purchase
	// decisions never read the cache.
	itemsCacheTTL = 30 * time.Second
)
