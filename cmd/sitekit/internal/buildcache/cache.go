// Package buildcache keeps compiled wasm binaries keyed by the sources that
// produced them, so unchanged rebuilds in the dev loop are a file copy.
package buildcache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const indexFile = "index.json"

// Cache is a size-bounded directory of build artifacts
type Cache struct {
	mu      sync.Mutex
	dir     string
	maxSize int64
	index   *Index
	stats   Stats
}

// Index tracks all cached entries
type Index struct {
	Version string            `json:"version"`
	Entries map[string]*Entry `json:"entries"`
	Updated time.Time         `json:"updated"`
}

// Entry is a single cached artifact
type Entry struct {
	Key         string    `json:"key"`
	File        string    `json:"file"`
	Size        int64     `json:"size"`
	Created     time.Time `json:"created"`
	LastAccess  time.Time `json:"last_access"`
	AccessCount int       `json:"access_count"`
}

// Stats counts cache traffic for the current process
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	TotalSize int64 `json:"total_size"`
	Entries   int   `json:"entries"`
}

// Config holds cache configuration
type Config struct {
	Dir     string // Cache directory
	MaxSize int64  // Maximum cache size in bytes, 0 for no limit
}

// DefaultMaxSize bounds the cache at a handful of wasm binaries
const DefaultMaxSize = 256 << 20

// New opens or creates the cache in config.Dir
func New(config Config) (*Cache, error) {
	if config.Dir == "" {
		return nil, fmt.Errorf("cache directory is required")
	}
	if err := os.MkdirAll(config.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	c := &Cache{dir: config.Dir, maxSize: config.MaxSize}
	if err := c.loadIndex(); err != nil {
		// Index doesn't exist or is corrupted, start fresh
		c.index = newIndex()
	}
	for _, e := range c.index.Entries {
		c.stats.TotalSize += e.Size
	}
	c.stats.Entries = len(c.index.Entries)
	return c, nil
}

func newIndex() *Index {
	return &Index{Version: "1", Entries: make(map[string]*Entry), Updated: time.Now()}
}

// Get returns the artifact stored under key
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.index.Entries[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}

	data, err := os.ReadFile(filepath.Join(c.dir, entry.File))
	if err != nil {
		// The file went away underneath us
		c.dropLocked(key, entry)
		c.stats.Misses++
		return nil, false
	}

	entry.LastAccess = time.Now()
	entry.AccessCount++
	c.stats.Hits++
	c.saveIndexLocked()
	return data, true
}

// Put stores data under key, evicting least recently used entries to stay
// within the size limit
func (c *Cache) Put(key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.index.Entries[key]; ok {
		c.dropLocked(key, old)
	}
	c.ensureSpaceLocked(int64(len(data)))

	file := sanitizeKey(key) + ".bin"
	if err := os.WriteFile(filepath.Join(c.dir, file), data, 0644); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}

	now := time.Now()
	c.index.Entries[key] = &Entry{
		Key:        key,
		File:       file,
		Size:       int64(len(data)),
		Created:    now,
		LastAccess: now,
	}
	c.stats.TotalSize += int64(len(data))
	c.stats.Entries = len(c.index.Entries)
	return c.saveIndexLocked()
}

// Clear removes every entry
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.index.Entries {
		c.dropLocked(key, e)
	}
	return c.saveIndexLocked()
}

// Stats returns a snapshot of the cache counters
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Key generates a cache key from inputs
func Key(inputs ...string) string {
	h := sha256.New()
	for _, input := range inputs {
		h.Write([]byte(input))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// SourceKey hashes the build settings together with the names and contents of
// every Go source under root plus go.mod and go.sum. Hidden, vendor and
// underscore-prefixed directories are skipped, as the go tool does.
func SourceKey(root string, settings ...string) (string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		name := info.Name()
		if info.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor" || name == "node_modules" || name == "testdata") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go") {
			files = append(files, path)
		} else if path == filepath.Join(root, "go.mod") || path == filepath.Join(root, "go.sum") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to scan sources: %w", err)
	}
	sort.Strings(files)

	h := sha256.New()
	for _, s := range settings {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		rel, _ := filepath.Rel(root, file)
		h.Write([]byte(filepath.ToSlash(rel)))
		h.Write([]byte{0})
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (c *Cache) loadIndex() error {
	data, err := os.ReadFile(filepath.Join(c.dir, indexFile))
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

func (c *Cache) saveIndexLocked() error {
	c.index.Updated = time.Now()
	data, err := json.MarshalIndent(c.index, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, indexFile), data, 0644)
}

func (c *Cache) ensureSpaceLocked(needed int64) {
	// If maxSize is 0 or negative, no limit
	if c.maxSize <= 0 {
		return
	}

	for c.stats.TotalSize+needed > c.maxSize && len(c.index.Entries) > 0 {
		var evictKey string
		var evict *Entry
		for key, e := range c.index.Entries {
			if evict == nil || e.LastAccess.Before(evict.LastAccess) {
				evictKey, evict = key, e
			}
		}
		c.dropLocked(evictKey, evict)
		c.stats.Evictions++
	}
}

func (c *Cache) dropLocked(key string, e *Entry) {
	os.Remove(filepath.Join(c.dir, e.File))
	delete(c.index.Entries, key)
	c.stats.TotalSize -= e.Size
	c.stats.Entries = len(c.index.Entries)
}

func sanitizeKey(key string) string {
	// Replace problematic characters for filesystem
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

	// Limit length
	if len(sanitized) > 100 {
		sanitized = sanitized[:100]
	}
	return sanitized
}
