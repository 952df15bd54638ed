// Package diskcache provides an expiring key/value store persisted under the
// application cache directory. Each key is stored as its own JSON envelope
// file carrying the value and an optional expiry timestamp.
package diskcache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store is the capability surface the protocol client depends on. Tests
// substitute an in-memory implementation.
type Store interface {
	// Get returns the stored value for key, or false when the key is absent
	// or expired.
	Get(key string) ([]byte, bool)
	// Set stores value under key. Values must be valid JSON; a zero ttl
	// means the entry never expires.
	Set(key string, value []byte, ttl time.Duration) error
	// Delete removes the entry for key if present.
	Delete(key string) error
	// Clear removes every entry.
	Clear() error
}

// Cache keys used across the application.
const (
	KeyAccessToken = "access-token"
	KeyAuth        = "auth"
	KeyPresets     = "presets"
)

// DefaultTTL is the expiry applied to cached API responses.
const DefaultTTL = 24 * time.Hour

// Disk is a Store backed by one file per key.
type Disk struct {
	dir string
}

var _ Store = (*Disk)(nil)

// Open prepares a disk store rooted at dir, creating it as needed. An empty
// dir resolves to <user cache dir>/darkroom.
func Open(dir string) (*Disk, error) {
	resolved := strings.TrimSpace(dir)
	if resolved == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("resolve cache dir: %w", err)
		}
		resolved = filepath.Join(base, "darkroom")
	}
	if err := os.MkdirAll(resolved, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Disk{dir: resolved}, nil
}

// Dir returns the directory the store writes into.
func (d *Disk) Dir() string {
	return d.dir
}

type envelope struct {
	ExpiresAt int64           `json:"expires_at"` // unix seconds, zero means no expiry
	Value     json.RawMessage `json:"value"`
}

func (d *Disk) path(key string) string {
	return filepath.Join(d.dir, key+".json")
}

// Get implements Store. Expired entries are deleted on read.
func (d *Disk) Get(key string) ([]byte, bool) {
	bytes, err := os.ReadFile(d.path(key))
	if err != nil {
		return nil, false
	}
	var env envelope
	if err := json.Unmarshal(bytes, &env); err != nil {
		return nil, false
	}
	if env.ExpiresAt > 0 && time.Now().Unix() >= env.ExpiresAt {
		_ = os.Remove(d.path(key))
		return nil, false
	}
	return env.Value, true
}

// Set implements Store.
func (d *Disk) Set(key string, value []byte, ttl time.Duration) error {
	env := envelope{Value: json.RawMessage(value)}
	if ttl > 0 {
		env.ExpiresAt = time.Now().Add(ttl).Unix()
	}
	bytes, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	if err := os.WriteFile(d.path(key), bytes, 0o600); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Delete implements Store.
func (d *Disk) Delete(key string) error {
	err := os.Remove(d.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}

// Clear implements Store.
func (d *Disk) Clear() error {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return fmt.Errorf("read cache dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(d.dir, entry.Name())); err != nil {
			return fmt.Errorf("clear cache entry %s: %w", entry.Name(), err)
		}
	}
	return nil
}
