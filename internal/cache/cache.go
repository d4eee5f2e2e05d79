// Package cache stores compiled template output keyed by source content,
// so unchanged .vex files are not re-emitted on every build or watch cycle.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Cache is a content-addressed artifact store with an in-memory index
// persisted to disk.
type Cache struct {
	mu      sync.RWMutex
	dir     string
	index   *Index
	maxAge  time.Duration
	maxSize int64
}

// Index tracks all cached entries.
type Index struct {
	Version string            `json:"version"`
	Entries map[string]*Entry `json:"entries"`
	Updated time.Time         `json:"updated"`
}

// Entry is a single cached compile output.
type Entry struct {
	Key        string    `json:"key"`
	Hash       string    `json:"hash"`
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	Source     string    `json:"source,omitempty"`
	Created    time.Time `json:"created"`
	LastAccess time.Time `json:"last_access"`
}

// Config holds cache configuration.
type Config struct {
	Dir     string        // Cache directory (default: $HOME/.cache/condex)
	MaxSize int64         // Maximum cache size in bytes (default: 64 MB)
	MaxAge  time.Duration // Maximum entry age (default: 7 days)
}

// DefaultConfig returns the default cache configuration.
func DefaultConfig() Config {
	homeDir, _ := os.UserHomeDir()
	return Config{
		Dir:     filepath.Join(homeDir, ".cache", "condex"),
		MaxSize: 64 << 20,
		MaxAge:  7 * 24 * time.Hour,
	}
}

// New opens (or creates) a cache at config.Dir.
func New(config Config) (*Cache, error) {
	if config.Dir == "" {
		config = DefaultConfig()
	}

	if err := os.MkdirAll(config.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	c := &Cache{
		dir:     config.Dir,
		maxAge:  config.MaxAge,
		maxSize: config.MaxSize,
		index: &Index{
			Version: "1.0",
			Entries: make(map[string]*Entry),
			Updated: time.Now(),
		},
	}

	if err := c.loadIndex(); err != nil {
		// Missing or corrupted index, start fresh.
		c.index = &Index{
			Version: "1.0",
			Entries: make(map[string]*Entry),
			Updated: time.Now(),
		}
	}

	return c, nil
}

// Get retrieves a cached compile output.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	entry, exists := c.index.Entries[key]
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}
	if c.maxAge > 0 && time.Since(entry.Created) > c.maxAge {
		c.Delete(key)
		return nil, false
	}

	data, err := os.ReadFile(entry.Path)
	if err != nil {
		c.Delete(key)
		return nil, false
	}

	c.mu.Lock()
	entry.LastAccess = time.Now()
	c.mu.Unlock()

	return data, true
}

// Put stores a compile output under key. source records the template file
// the output was compiled from, for invalidation on change events.
func (c *Cache) Put(key string, data []byte, source string) error {
	hash := hashBytes(data)

	c.mu.RLock()
	if existing, ok := c.index.Entries[key]; ok && existing.Hash == hash {
		c.mu.RUnlock()
		return nil
	}
	c.mu.RUnlock()

	if err := c.ensureSpace(int64(len(data))); err != nil {
		return err
	}

	filename := fmt.Sprintf("%s_%s", sanitizeKey(key), hash[:8])
	path := filepath.Join(c.dir, "artifacts", filename)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create artifacts directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	entry := &Entry{
		Key:        key,
		Hash:       hash,
		Path:       path,
		Size:       int64(len(data)),
		Source:     source,
		Created:    time.Now(),
		LastAccess: time.Now(),
	}

	c.mu.Lock()
	if old, ok := c.index.Entries[key]; ok {
		removeFile(old.Path)
	}
	c.index.Entries[key] = entry
	c.index.Updated = time.Now()
	c.mu.Unlock()

	return c.saveIndex()
}

// Delete removes an entry from the cache.
func (c *Cache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.index.Entries[key]
	if !ok {
		return nil
	}
	removeFile(entry.Path)
	delete(c.index.Entries, key)
	c.index.Updated = time.Now()
	return c.saveIndexNoLock()
}

// InvalidateBySource removes entries compiled from the given source file.
func (c *Cache) InvalidateBySource(source string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for key, entry := range c.index.Entries {
		if entry.Source == source {
			removeFile(entry.Path)
			delete(c.index.Entries, key)
			count++
		}
	}
	if count > 0 {
		c.index.Updated = time.Now()
		c.saveIndexNoLock()
	}
	return count
}

// Clear removes all cached entries.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.RemoveAll(filepath.Join(c.dir, "artifacts")); err != nil {
		return fmt.Errorf("failed to clear artifacts: %w", err)
	}
	c.index = &Index{
		Version: "1.0",
		Entries: make(map[string]*Entry),
		Updated: time.Now(),
	}
	return c.saveIndexNoLock()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.index.Entries)
}

func hashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Key generates a cache key from inputs.
func Key(inputs ...string) string {
	h := sha256.New()
	for _, input := range inputs {
		h.Write([]byte(input))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) loadIndex() error {
	data, err := os.ReadFile(filepath.Join(c.dir, "index.json"))
	if err != nil {
		return err
	}
	var index Index
	if err := json.Unmarshal(data, &index); err != nil {
		return err
	}
	if index.Entries == nil {
		index.Entries = make(map[string]*Entry)
	}
	c.index = &index
	return nil
}

func (c *Cache) saveIndex() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.saveIndexNoLock()
}

// Caller must hold at least a read lock.
func (c *Cache) saveIndexNoLock() error {
	data, err := json.MarshalIndent(c.index, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, "index.json"), data, 0644)
}

// ensureSpace evicts least recently used entries until needed bytes fit.
func (c *Cache) ensureSpace(needed int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxSize <= 0 {
		return nil
	}

	total := needed
	for _, entry := range c.index.Entries {
		total += entry.Size
	}

	for total > c.maxSize && len(c.index.Entries) > 0 {
		var evictKey string
		var evict *Entry
		for key, entry := range c.index.Entries {
			if evict == nil || entry.LastAccess.Before(evict.LastAccess) {
				evictKey = key
				evict = entry
			}
		}
		removeFile(evict.Path)
		delete(c.index.Entries, evictKey)
		total -= evict.Size
	}
	return nil
}

func removeFile(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: failed to remove cache file %s: %v\n", path, err)
	}
}

func sanitizeKey(key string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "_",
	)
	sanitized := replacer.Replace(key)
	if len(sanitized) > 100 {
		sanitized = sanitized[:100]
	}
	return sanitized
}
