package app

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mplewis/dominion-strategy-wiki/internal/domain"
	"github.com/mplewis/dominion-strategy-wiki/internal/ports"
)

// Page is the cards gallery of one expansion.
type Page struct {
	Set     domain.CardSet
	URL     string
	Content string
	Cached  ports.CachedPage
}

// SortRequest asks for a set's gallery rendered in a given order.
type SortRequest struct {
	SetID     string
	GroupSets bool
	Refresh   bool
	// Prefs supplies the initial sort order and the card border option.
	Prefs ports.Preferences
}

// GallerySummary describes one sorted gallery.
type GallerySummary struct {
	ID        string          `json:"id"`
	SortBy    string          `json:"sortBy"`
	GroupSets bool            `json:"groupSets"`
	SameCost  bool            `json:"sameCost"`
	SameSet   bool            `json:"sameSet"`
	Cards     []CardSummary   `json:"cards"`
	Controls  domain.Controls `json:"controls"`
}

// CardSummary is a sorted card without its element.
type CardSummary struct {
	Name string          `json:"name"`
	Kind domain.CardKind `json:"kind"`
	Set  string          `json:"set"`
	Cost string          `json:"cost"`
}

// SortedPage is a gallery page after server-side sorting.
type SortedPage struct {
	Set       domain.CardSet
	HTML      string
	Galleries []GallerySummary
}

// PageService serves expansion galleries scraped from the wiki.
type PageService[E any] struct {
	catalog     ports.SetCatalog
	fetcher     ports.GalleryFetcher
	cache       ports.PageCache
	parse       ports.DocumentParser[E]
	baseURL     string
	concurrency int
	logger      *slog.Logger
}

func NewPageService[E any](
	catalog ports.SetCatalog,
	fetcher ports.GalleryFetcher,
	cache ports.PageCache,
	parse ports.DocumentParser[E],
	baseURL string,
	concurrency int,
	logger *slog.Logger,
) *PageService[E] {
	if concurrency < 1 {
		concurrency = 1
	}
	return &PageService[E]{
		catalog:     catalog,
		fetcher:     fetcher,
		cache:       cache,
		parse:       parse,
		baseURL:     baseURL,
		concurrency: concurrency,
		logger:      logger,
	}
}

func (s *PageService[E]) Sets(ctx context.Context) ([]domain.CardSet, error) {
	return s.catalog.Sets(ctx)
}

func (s *PageService[E]) ExpansionLinks(ctx context.Context) ([]domain.ExpansionLink, error) {
	return s.catalog.ExpansionLinks(ctx)
}

// Page returns the cards gallery of setID, from the cache unless refresh is set.
func (s *PageService[E]) Page(ctx context.Context, setID string, refresh bool) (Page, error) {
	set, err := s.catalog.Set(ctx, setID)
	if err != nil {
		return Page{}, err
	}
	url := s.baseURL + "/index.php/" + set.Page

	if !refresh {
		cached, ok, err := s.cache.Get(ctx, url)
		if err != nil {
			s.logger.WarnContext(ctx, "cache read failed, fetching", "url", url, "error", err)
		} else if ok {
			return Page{Set: set, URL: url, Content: cached.Content, Cached: cached}, nil
		}
	}

	s.logger.InfoContext(ctx, "fetching gallery from wiki", "set", set.ID, "url", url)
	content, err := s.fetcher.CardsGallery(ctx, url)
	if err != nil {
		return Page{}, fmt.Errorf("fetch %s: %w", set.ID, err)
	}

	stored, err := s.cache.Put(ctx, url, content)
	if err != nil {
		return Page{}, fmt.Errorf("cache %s: %w", set.ID, err)
	}
	return Page{Set: set, URL: url, Content: content, Cached: stored}, nil
}

// SortedPage renders a set's gallery with its galleries sorted as the
// request's preferences dictate.
func (s *PageService[E]) SortedPage(ctx context.Context, req SortRequest) (SortedPage, error) {
	page, err := s.Page(ctx, req.SetID, req.Refresh)
	if err != nil {
		return SortedPage{}, err
	}

	doc, err := s.parse(page.Content)
	if err != nil {
		return SortedPage{}, fmt.Errorf("parse %s: %w", req.SetID, err)
	}

	sorter := NewSorter[E](doc, req.Prefs, s.logger)
	if err := sorter.Init(ctx); err != nil {
		return SortedPage{}, err
	}
	if req.GroupSets {
		for _, id := range sorter.Registry().IDs() {
			if _, err := sorter.Apply(id, domain.ControlSet); err != nil {
				return SortedPage{}, err
			}
		}
	}

	summaries := make([]GallerySummary, 0, sorter.Registry().Len())
	for _, id := range sorter.Registry().IDs() {
		scan, err := sorter.SortGallery(id)
		if err != nil {
			return SortedPage{}, err
		}
		g, _ := sorter.Registry().Get(id)
		summaries = append(summaries, summarize(*g, scan))
	}

	if border, err := req.Prefs.Bool(ctx, domain.OptionCardBorder); err == nil && border {
		doc.ApplyBorders(domain.CardBorderPX)
	}

	html, err := doc.Render()
	if err != nil {
		return SortedPage{}, fmt.Errorf("render %s: %w", req.SetID, err)
	}
	return SortedPage{Set: page.Set, HTML: html, Galleries: summaries}, nil
}

func summarize[E any](g domain.Gallery, scan domain.Scan[E]) GallerySummary {
	cards := make([]CardSummary, len(scan.Cards))
	for i, c := range scan.Cards {
		cost := "-"
		if c.Cost != nil {
			cost = c.Cost.String()
		}
		cards[i] = CardSummary{Name: c.Name, Kind: c.Kind, Set: c.Set, Cost: cost}
	}
	return GallerySummary{
		ID:        g.ID,
		SortBy:    g.SortBy.String(),
		GroupSets: g.GroupSets,
		SameCost:  scan.SameCost,
		SameSet:   scan.SameSet,
		Cards:     cards,
		Controls:  domain.ControlsFor(g, scan),
	}
}

// CostClasses collects every distinct cost class used across all set
// galleries, ordered the way a cost sort would order them.
func (s *PageService[E]) CostClasses(ctx context.Context, refresh bool) ([]string, error) {
	sets, err := s.catalog.Sets(ctx)
	if err != nil {
		return nil, err
	}

	var (
		mu    sync.Mutex
		found = make(map[string]struct{})
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, set := range sets {
		set := set
		g.Go(func() error {
			page, err := s.Page(gctx, set.ID, refresh)
			if err != nil {
				return err
			}
			doc, err := s.parse(page.Content)
			if err != nil {
				return fmt.Errorf("parse %s: %w", set.ID, err)
			}
			var local []string
			for _, el := range doc.CostElements(doc.Root()) {
				for _, cl := range doc.Classes(el) {
					if domain.IsCostToken(cl) {
						local = append(local, cl)
					}
				}
			}
			mu.Lock()
			for _, cl := range local {
				found[cl] = struct{}{}
			}
			mu.Unlock()
			s.logger.DebugContext(gctx, "collected cost classes", "set", set.ID, "classes", len(local))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(found))
	for cl := range found {
		out = append(out, cl)
	}
	SortCostClasses(out)
	return out, nil
}

// SortCostClasses orders cost class tokens by the cost they encode, breaking
// ties by the token text.
func SortCostClasses(classes []string) {
	slices.SortFunc(classes, func(a, b string) int {
		ca, _ := domain.ParseCostString(a)
		cb, _ := domain.ParseCostString(b)
		if c := domain.CompareCardCosts(ca, cb); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}
