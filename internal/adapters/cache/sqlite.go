// Package cache stores extracted wiki pages in a local SQLite database.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mplewis/dominion-strategy-wiki/internal/ports"
)

// DefaultTTL is how long a cached page stays fresh.
const DefaultTTL = 7 * 24 * time.Hour

const schema = `
CREATE TABLE IF NOT EXISTS pages (
	url       TEXT PRIMARY KEY,
	content   TEXT NOT NULL,
	cached_at INTEGER NOT NULL,
	size      INTEGER NOT NULL
);`

// SQLiteCache implements ports.PageCache.
type SQLiteCache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// DefaultPath is cache.db under the user cache directory.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate cache dir: %w", err)
	}
	return filepath.Join(dir, "dominion-strategy-wiki", "cache.db"), nil
}

// Open creates or opens the cache at path.
func Open(path string, ttl time.Duration) (*SQLiteCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SQLiteCache{db: db, ttl: ttl, now: time.Now}, nil
}

func (c *SQLiteCache) Close() error { return c.db.Close() }

func (c *SQLiteCache) Get(ctx context.Context, url string) (ports.CachedPage, bool, error) {
	var (
		page     = ports.CachedPage{URL: url}
		cachedAt int64
	)
	err := c.db.QueryRowContext(ctx,
		`SELECT content, cached_at, size FROM pages WHERE url = ?`, url,
	).Scan(&page.Content, &cachedAt, &page.Size)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.CachedPage{}, false, nil
	}
	if err != nil {
		return ports.CachedPage{}, false, fmt.Errorf("read cache: %w", err)
	}

	page.CachedAt = time.UnixMilli(cachedAt).UTC()
	if c.now().After(page.CachedAt.Add(c.ttl)) {
		return ports.CachedPage{}, false, nil
	}
	return page, true, nil
}

func (c *SQLiteCache) Put(ctx context.Context, url, content string) (ports.CachedPage, error) {
	page := ports.CachedPage{
		URL:      url,
		Content:  content,
		CachedAt: c.now().UTC().Truncate(time.Millisecond),
		Size:     len(content),
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO pages (url, content, cached_at, size) VALUES (?, ?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET content = excluded.content, cached_at = excluded.cached_at, size = excluded.size`,
		page.URL, page.Content, page.CachedAt.UnixMilli(), page.Size,
	)
	if err != nil {
		return ports.CachedPage{}, fmt.Errorf("write cache: %w", err)
	}
	return page, nil
}

func (c *SQLiteCache) Stats(ctx context.Context) (ports.CacheStats, error) {
	var st ports.CacheStats
	err := c.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(size), 0) FROM pages`,
	).Scan(&st.Pages, &st.Bytes)
	if err != nil {
		return ports.CacheStats{}, fmt.Errorf("cache stats: %w", err)
	}
	return st, nil
}
