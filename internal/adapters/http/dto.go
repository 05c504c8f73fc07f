package http

import (
	"time"

	"github.com/mplewis/dominion-strategy-wiki/internal/app"
	"github.com/mplewis/dominion-strategy-wiki/internal/domain"
	"github.com/mplewis/dominion-strategy-wiki/internal/ports"
)

// Envelope wraps every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type PageResponse struct {
	Set      domain.CardSet `json:"set"`
	HTML     string         `json:"html"`
	CachedAt time.Time      `json:"cachedAt"`
}

type SortedPageResponse struct {
	Set       domain.CardSet       `json:"set"`
	HTML      string               `json:"html"`
	Galleries []app.GallerySummary `json:"galleries"`
}

type OptionResponse struct {
	domain.Option
	Value bool `json:"value"`
}

type OptionRequest struct {
	Value bool `json:"value"`
}

type StatusResponse struct {
	Cache ports.CacheStats `json:"cache"`
	Watch any              `json:"watch,omitempty"`
}
