package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mplewis/dominion-strategy-wiki/internal/adapters/prefs"
	"github.com/mplewis/dominion-strategy-wiki/internal/app"
	"github.com/mplewis/dominion-strategy-wiki/internal/domain"
	"github.com/mplewis/dominion-strategy-wiki/internal/ports"
)

// Service is what the handlers need from the page service.
type Service interface {
	Sets(ctx context.Context) ([]domain.CardSet, error)
	ExpansionLinks(ctx context.Context) ([]domain.ExpansionLink, error)
	Page(ctx context.Context, setID string, refresh bool) (app.Page, error)
	SortedPage(ctx context.Context, req app.SortRequest) (app.SortedPage, error)
	CostClasses(ctx context.Context, refresh bool) ([]string, error)
}

// WatchStats reports file watcher activity; nil when watching is off.
type WatchStats func() any

type Handler struct {
	svc   Service
	cache ports.PageCache
	watch WatchStats
}

func NewHandler(svc Service, cache ports.PageCache, watch WatchStats) *Handler {
	return &Handler{svc: svc, cache: cache, watch: watch}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.GET("/api/status", h.Status)
	e.GET("/api/card-sets", h.CardSets)
	e.GET("/api/expansions", h.Expansions)
	e.GET("/api/wiki/:setId", h.WikiPage)
	e.GET("/api/wiki/:setId/sorted", h.SortedWikiPage)
	e.GET("/api/cost-classes", h.CostClasses)
	e.GET("/api/options", h.Options)
	e.PUT("/api/options/:key", h.SetOption)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) Status(c echo.Context) error {
	stats, err := h.cache.Stats(c.Request().Context())
	if err != nil {
		return mapError(c, err)
	}
	resp := StatusResponse{Cache: stats}
	if h.watch != nil {
		resp.Watch = h.watch()
	}
	return ok(c, resp)
}

func (h *Handler) CardSets(c echo.Context) error {
	sets, err := h.svc.Sets(c.Request().Context())
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, sets)
}

func (h *Handler) Expansions(c echo.Context) error {
	links, err := h.svc.ExpansionLinks(c.Request().Context())
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, links)
}

func (h *Handler) WikiPage(c echo.Context) error {
	page, err := h.svc.Page(c.Request().Context(), c.Param("setId"), c.QueryParam("refresh") == "true")
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, PageResponse{Set: page.Set, HTML: page.Content, CachedAt: page.Cached.CachedAt})
}

// SortedWikiPage sorts the galleries of a set page. Without ?sort= the
// visitor's cardSortByCost cookie decides.
func (h *Handler) SortedWikiPage(c echo.Context) error {
	var p ports.Preferences = prefs.FromEcho(c)
	if raw := c.QueryParam("sort"); raw != "" {
		sortBy, err := domain.ParseSortBy(raw)
		if err != nil {
			return mapError(c, err)
		}
		p = prefs.SortOverride{Preferences: p, ByCost: sortBy == domain.SortByCost}
	}

	group := false
	if raw := c.QueryParam("group"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, Envelope{Error: "group must be a boolean"})
		}
		group = parsed
	}

	page, err := h.svc.SortedPage(c.Request().Context(), app.SortRequest{
		SetID:     c.Param("setId"),
		GroupSets: group,
		Refresh:   c.QueryParam("refresh") == "true",
		Prefs:     p,
	})
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, SortedPageResponse{Set: page.Set, HTML: page.HTML, Galleries: page.Galleries})
}

func (h *Handler) CostClasses(c echo.Context) error {
	classes, err := h.svc.CostClasses(c.Request().Context(), c.QueryParam("refresh") == "true")
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, classes)
}

func (h *Handler) Options(c echo.Context) error {
	p := prefs.FromEcho(c)
	opts := domain.Options()
	out := make([]OptionResponse, len(opts))
	for i, o := range opts {
		v, err := p.Bool(c.Request().Context(), o.Key)
		if err != nil {
			return mapError(c, err)
		}
		out[i] = OptionResponse{Option: o, Value: v}
	}
	return ok(c, out)
}

func (h *Handler) SetOption(c echo.Context) error {
	var req OptionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Envelope{Error: "body must be {\"value\": bool}"})
	}
	key := c.Param("key")
	if err := prefs.FromEcho(c).SetBool(c.Request().Context(), key, req.Value); err != nil {
		return mapError(c, err)
	}
	opt, _ := domain.LookupOption(key)
	return ok(c, OptionResponse{Option: opt, Value: req.Value})
}

func ok(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get(ctxRequestID).(string)

	switch {
	case errors.Is(err, domain.ErrUnknownSet), errors.Is(err, domain.ErrUnknownOption):
		return c.JSON(http.StatusNotFound, Envelope{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidSortOrder):
		return c.JSON(http.StatusBadRequest, Envelope{Error: err.Error()})
	case errors.Is(err, domain.ErrUpstreamWiki), errors.Is(err, domain.ErrSectionNotFound):
		slog.Error("upstream wiki failure", "request_id", requestID, "error", err)
		return c.JSON(http.StatusBadGateway, Envelope{Error: err.Error()})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, Envelope{Error: "internal error"})
	}
}
