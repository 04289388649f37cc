package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for short-lived in-memory caching
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, ttl time.Duration)
	Delete(key string)
	Clear()
}

// Key generates a stable cache key from an arbitrary string (e.g. a search query)
func Key(s string) string {
	hash := sha256.Sum256([]byte(s))
	return "veritas:v1:" + hex.EncodeToString(hash[:])
}
