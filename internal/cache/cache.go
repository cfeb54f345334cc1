// Package cache provides a SQLite-backed document cache keyed by normalized
// URL. Entries carry the fetch timestamp and expire after a fixed TTL.
package cache

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one cached document.
type Entry struct {
	URL       string
	Content   string
	FetchedAt time.Time
}

// Cache is the shared document cache. All methods are safe for concurrent
// use.
type Cache struct {
	db  *sql.DB
	mu  sync.RWMutex
	ttl time.Duration
}

// Open creates a Cache at the given database path with the given TTL.
// Uses WAL mode for file-based databases; ":memory:" works for tests.
func Open(dbPath string, ttl time.Duration) (*Cache, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// Shared cache so all pooled connections see the same database
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	c := &Cache{db: db, ttl: ttl}

	if err := c.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return c, nil
}

func (c *Cache) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		url TEXT PRIMARY KEY,
		content TEXT NOT NULL,
		fetched_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_documents_fetched ON documents(fetched_at);
	`

	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db.Close()
}

// TTL returns the configured entry time-to-live.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get returns the live entry for url. An entry older than the TTL is treated
// as absent. The second return value is false when no live entry exists.
func (c *Cache) Get(url string) (Entry, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var entry Entry
	var fetchedAt int64
	err := c.db.QueryRow(
		"SELECT url, content, fetched_at FROM documents WHERE url = ?", url,
	).Scan(&entry.URL, &entry.Content, &fetchedAt)
	if err == sql.ErrNoRows {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}

	entry.FetchedAt = time.Unix(fetchedAt, 0)
	if time.Since(entry.FetchedAt) > c.ttl {
		return Entry{}, false, nil
	}
	return entry, true, nil
}

// Put stores content for url with the current timestamp, replacing any
// previous entry. Expired entries are swept opportunistically on each insert.
func (c *Cache) Put(url, content string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	_, err := c.db.Exec(
		"INSERT OR REPLACE INTO documents (url, content, fetched_at) VALUES (?, ?, ?)",
		url, content, now.Unix(),
	)
	if err != nil {
		return err
	}

	// Lazy sweep: drop anything past the TTL while we hold the write lock.
	cutoff := now.Add(-c.ttl).Unix()
	_, err = c.db.Exec("DELETE FROM documents WHERE fetched_at < ?", cutoff)
	return err
}

// GetOrFetch returns the live cached entry for url, or runs fetch, stores the
// result, and returns it. The bool reports whether the entry came from cache.
// Fetch errors are returned without touching stored state.
//
// Not single-flight: concurrent callers for the same missing URL each run
// fetch and the last write wins. The research orchestrator dedupes URLs per
// task before fetching, so a URL reaches the cache at most once per task.
func (c *Cache) GetOrFetch(ctx context.Context, url string, fetch func(ctx context.Context) (string, error)) (Entry, bool, error) {
	entry, ok, err := c.Get(url)
	if err != nil {
		return Entry{}, false, err
	}
	if ok {
		return entry, true, nil
	}

	content, err := fetch(ctx)
	if err != nil {
		return Entry{}, false, err
	}

	if err := c.Put(url, content); err != nil {
		return Entry{}, false, err
	}
	return Entry{URL: url, Content: content, FetchedAt: time.Now()}, false, nil
}

// Len returns the number of stored entries, expired ones included.
// Intended for stats and tests.
func (c *Cache) Len() (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var n int
	err := c.db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&n)
	return n, err
}
