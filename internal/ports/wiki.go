package ports

import (
	"context"
	"time"

	"github.com/mplewis/dominion-strategy-wiki/internal/domain"
)

// GalleryFetcher downloads a wiki page and returns only its cards gallery
// section as a standalone HTML document.
type GalleryFetcher interface {
	CardsGallery(ctx context.Context, url string) (string, error)
}

// CachedPage is a page stored by a PageCache.
type CachedPage struct {
	URL      string    `json:"url"`
	Content  string    `json:"-"`
	CachedAt time.Time `json:"cachedAt"`
	Size     int       `json:"size"`
}

// CacheStats summarizes a PageCache.
type CacheStats struct {
	Pages int   `json:"pages"`
	Bytes int64 `json:"bytes"`
}

// PageCache stores extracted pages keyed by URL. Get reports ok=false for
// missing or expired entries.
type PageCache interface {
	Get(ctx context.Context, url string) (page CachedPage, ok bool, err error)
	Put(ctx context.Context, url, content string) (CachedPage, error)
	Stats(ctx context.Context) (CacheStats, error)
}

// SetCatalog lists the expansions known to the tool.
type SetCatalog interface {
	Sets(ctx context.Context) ([]domain.CardSet, error)
	Set(ctx context.Context, id string) (domain.CardSet, error)
	ExpansionLinks(ctx context.Context) ([]domain.ExpansionLink, error)
}
