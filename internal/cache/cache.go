package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/feedguard/feedguard/internal/model"
)

// Cache defines the interface for recommendation caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from the content title and category. Two items
// with the same title and category share alternatives.
func Key(title string, category model.Category) string {
	hash := sha256.Sum256([]byte(title + "|" + string(category)))
	return "feedguard:v1:" + hex.EncodeToString(hash[:])
}

// FromConfig builds the cache stack described by the config: layered when a
// disk directory is set, memory-only otherwise, and a no-op cache when
// caching is disabled. Callers always get a usable Cache.
func FromConfig(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return NoopCache{}
	}
	if cfg.Dir != "" {
		return NewLayeredCache(cfg.MemoryTTL, cfg.Dir, cfg.DiskTTL)
	}
	return NewMemoryCache(cfg.MemoryTTL, 10*time.Minute)
}

// NoopCache satisfies Cache while storing nothing
type NoopCache struct{}

func (NoopCache) Get(string) ([]byte, bool)               { return nil, false }
func (NoopCache) Set(string, []byte, time.Duration) error { return nil }
func (NoopCache) Delete(string) error                     { return nil }
func (NoopCache) Clear() error                            { return nil }
