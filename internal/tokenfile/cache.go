package tokenfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache persists a previously obtained bearer token as plain JSON on disk.
// It is a best-effort convenience for command-line consumers, never a source
// of truth; the auth service can revoke or expire the token at any time.
type Cache struct {
	path string
}

type record struct {
	Token     string `json:"token"`
	CreatedAt string `json:"createdAt"`
}

func NewCache(path string) *Cache {
	return &Cache{path: path}
}

// Load returns the cached token, or "" when no cache file exists.
func (c *Cache) Load() (string, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read token cache: %w", err)
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return "", fmt.Errorf("parse token cache: %w", err)
	}
	return rec.Token, nil
}

// Save writes the token, creating the parent directory when needed.
func (c *Cache) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("create token cache dir: %w", err)
	}
	rec := record{Token: token, CreatedAt: time.Now().UTC().Format(time.RFC3339)}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return fmt.Errorf("write token cache: %w", err)
	}
	return nil
}

// Clear removes the cache file; a missing file is not an error.
func (c *Cache) Clear() error {
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token cache: %w", err)
	}
	return nil
}
