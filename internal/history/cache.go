// Package history records what a student searched for. Signed-in searches
// go to the backend; every search also lands in a small local cache that
// serves anonymous users and backend outages.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// MaxLocalEntries bounds the local cache.
const MaxLocalEntries = 10

// Entry is one search, newest first wherever lists are returned.
type Entry struct {
	ID        string    `json:"id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
	Query     string    `json:"query"`
	CreatedAt time.Time `json:"created_at"`
}

// LocalCache is a JSON file holding the most recent searches. The file is
// rewritten wholesale on every change.
type LocalCache struct {
	mu      sync.Mutex
	path    string
	entries []Entry
	now     func() time.Time
}

// NewLocalCache returns a cache backed by path. Call Load to read it.
func NewLocalCache(path string) *LocalCache {
	return &LocalCache{path: path, now: time.Now}
}

// Load reads the cache file. A missing file is an empty cache.
func (c *LocalCache) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		c.entries = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("read history cache: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse history cache: %w", err)
	}
	if len(entries) > MaxLocalEntries {
		entries = entries[:MaxLocalEntries]
	}
	c.entries = entries
	return nil
}

// Push puts query at the front, removing an older copy of the same query,
// and keeps at most MaxLocalEntries.
func (c *LocalCache) Push(query string) (Entry, error) {
	query = strings.TrimSpace(query)
	c.mu.Lock()
	defer c.mu.Unlock()

	e := Entry{Query: query, CreatedAt: c.now().UTC()}
	next := make([]Entry, 0, MaxLocalEntries)
	next = append(next, e)
	for _, old := range c.entries {
		if strings.EqualFold(old.Query, query) {
			continue
		}
		if len(next) == MaxLocalEntries {
			break
		}
		next = append(next, old)
	}

	if err := c.write(next); err != nil {
		return Entry{}, err
	}
	c.entries = next
	return e, nil
}

// Remove drops every entry for query.
func (c *LocalCache) Remove(query string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		if !strings.EqualFold(e.Query, strings.TrimSpace(query)) {
			next = append(next, e)
		}
	}
	if len(next) == len(c.entries) {
		return nil
	}
	if err := c.write(next); err != nil {
		return err
	}
	c.entries = next
	return nil
}

// Entries returns a copy of the cache, newest first.
func (c *LocalCache) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Entry(nil), c.entries...)
}

func (c *LocalCache) write(entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create history cache dir: %w", err)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history cache: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write history cache: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("rename history cache: %w", err)
	}
	return nil
}

// DefaultCachePath returns $SKILLBOOST_HISTORY_CACHE, or
// $XDG_CACHE_HOME/skillboost/history.json.
func DefaultCachePath() (string, error) {
	if p := os.Getenv("SKILLBOOST_HISTORY_CACHE"); p != "" {
		return p, nil
	}
	dir := os.Getenv("XDG_CACHE_HOME")
	if dir == "" {
		var err error
		dir, err = os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("resolve cache dir: %w", err)
		}
	}
	return filepath.Join(dir, "skillboost", "history.json"), nil
}
