package redisx

import (
	"fmt"
	"time"
)

const (
	// Category list cache: categories -> JSON array
	KeyCategories = "categories"

	// Dedup event processing: dedup:{service}:{event_id}
	keyDedup = "dedup:%s:%s"

	// Trending sorted sets, scored by units purchased.
	KeyTrendingProducts   = "trending:products"
	KeyTrendingCategories = "trending:categories"
)

var (
	TTLCategories = 10 * time.Minute
	TTLDedup      = 48 * time.Hour
)

func DedupKey(service, eventID string) string {
	return fmt.Sprintf(keyDedup, service, eventID)
}
