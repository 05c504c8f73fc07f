package prefs_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mplewis/dominion-strategy-wiki/internal/adapters/prefs"
	"github.com/mplewis/dominion-strategy-wiki/internal/domain"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := prefs.NewMemory()

	v, err := m.Bool(ctx, domain.OptionShowExpansions)
	require.NoError(t, err)
	assert.True(t, v, "default applies when unset")

	require.NoError(t, m.SetBool(ctx, domain.OptionShowExpansions, false))
	v, err = m.Bool(ctx, domain.OptionShowExpansions)
	require.NoError(t, err)
	assert.False(t, v)

	_, err = m.Bool(ctx, "darkMode")
	assert.True(t, errors.Is(err, domain.ErrUnknownOption))
	assert.True(t, errors.Is(m.SetBool(ctx, "darkMode", true), domain.ErrUnknownOption))
}

func newContext(cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestCookies_Bool(t *testing.T) {
	ctx := context.Background()
	c, _ := newContext(
		&http.Cookie{Name: "option_cardSortByCost", Value: "1"},
		&http.Cookie{Name: "option_showExpansions", Value: "0"},
		&http.Cookie{Name: "option_cardBorder", Value: "garbage"},
	)
	p := prefs.FromEcho(c)

	tests := map[string]bool{
		domain.OptionCardSortByCost:      true,
		domain.OptionShowExpansions:      false,
		domain.OptionCardBorder:          false,
		domain.OptionNavboxOnHoverImages: false,
	}
	for key, want := range tests {
		got, err := p.Bool(ctx, key)
		require.NoError(t, err, key)
		assert.Equal(t, want, got, key)
	}

	_, err := p.Bool(ctx, "darkMode")
	assert.True(t, errors.Is(err, domain.ErrUnknownOption))
}

func TestCookies_DefaultWithoutCookie(t *testing.T) {
	c, _ := newContext()
	v, err := prefs.FromEcho(c).Bool(context.Background(), domain.OptionShowExpansions)
	require.NoError(t, err)
	assert.True(t, v)
}

func TestCookies_SetBool(t *testing.T) {
	c, rec := newContext()
	before := time.Now()

	require.NoError(t, prefs.FromEcho(c).SetBool(context.Background(), domain.OptionCardBorder, true))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	ck := cookies[0]
	assert.Equal(t, "option_cardBorder", ck.Name)
	assert.Equal(t, "1", ck.Value)
	assert.Equal(t, "/", ck.Path)
	assert.Equal(t, http.SameSiteStrictMode, ck.SameSite)
	assert.WithinDuration(t, before.Add(domain.CookieExpiry), ck.Expires, 2*time.Second)

	c, rec = newContext()
	assert.True(t, errors.Is(prefs.FromEcho(c).SetBool(context.Background(), "darkMode", true), domain.ErrUnknownOption))
	assert.Empty(t, rec.Result().Cookies())
}

func TestSortOverride(t *testing.T) {
	ctx := context.Background()
	m := prefs.NewMemory()
	require.NoError(t, m.SetBool(ctx, domain.OptionCardBorder, true))

	o := prefs.SortOverride{Preferences: m, ByCost: true}

	v, err := o.Bool(ctx, domain.OptionCardSortByCost)
	require.NoError(t, err)
	assert.True(t, v)

	v, err = o.Bool(ctx, domain.OptionCardBorder)
	require.NoError(t, err)
	assert.True(t, v, "other options pass through")

	stored, err := m.Bool(ctx, domain.OptionCardSortByCost)
	require.NoError(t, err)
	assert.False(t, stored, "override does not write through")
}
