package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var (
	// ErrCacheMiss is returned when a key is absent or expired
	ErrCacheMiss = errors.New("cache miss")
	// ErrCacheDisabled is returned when cache operations are attempted but cache is disabled
	ErrCacheDisabled = errors.New("cache is disabled")
)

// Store is a key/value cache with per-entry TTL. The in-process Memory
// store is the default; Redis backs it in multi-instance deployments.
type Store interface {
	Get(key string) (string, error)
	Set(key string, value interface{}, ttl time.Duration) error
	Delete(key string) error
	Exists(key string) (bool, error)
	Close() error
	Health(ctx context.Context) error
}

// HashKey produces a stable short key from its parts
func HashKey(parts ...string) string {
	sum := md5.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

// GetJSON retrieves a JSON-encoded value from the store
func GetJSON(s Store, key string, dest interface{}) error {
	if s == nil {
		return ErrCacheDisabled
	}
	raw, err := s.Get(key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), dest)
}

// SetJSON stores a value JSON-encoded with the given TTL
func SetJSON(s Store, key string, value interface{}, ttl time.Duration) error {
	if s == nil {
		return ErrCacheDisabled
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Set(key, string(raw), ttl)
}
