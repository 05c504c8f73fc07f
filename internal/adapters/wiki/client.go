package wiki

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mplewis/dominion-strategy-wiki/internal/domain"
)

const maxPageBytes = 8 << 20

// Client implements ports.GalleryFetcher against a MediaWiki site.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *slog.Logger
}

func NewClient(httpClient *http.Client, baseURL, userAgent string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		logger:     logger,
	}
}

// BaseURL is the wiki root relative links are resolved against.
func (c *Client) BaseURL() string { return c.baseURL }

// CardsGallery downloads url and extracts its cards gallery section.
func (c *Client) CardsGallery(ctx context.Context, url string) (string, error) {
	raw, err := c.fetch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUpstreamWiki, err)
	}
	out, err := ExtractCardsGallery(raw, c.baseURL)
	if err != nil {
		return "", err
	}
	c.logger.DebugContext(ctx, "extracted cards gallery", "url", url, "bytes", len(out))
	return out, nil
}

func (c *Client) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream status %d", resp.StatusCode)
	}
	return string(body), nil
}
