// Package cache is the read-through layer in front of the Mongo
// aggregations. Only derived data goes in here; a cold cache is never
// an error.
package cache

import (
	"context"
	"time"
)

// Cache stores JSON-encoded values under string keys. GetJSON reports
// hit=false for both a missing key and an undecodable value.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
