package prefs

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mplewis/dominion-strategy-wiki/internal/domain"
)

// Cookies reads options from the request's option_<key> cookies and writes
// them back on the response, the same cookies the wiki scripts use.
type Cookies struct {
	c   echo.Context
	now func() time.Time
}

func FromEcho(c echo.Context) *Cookies {
	return &Cookies{c: c, now: time.Now}
}

func (p *Cookies) Bool(_ context.Context, key string) (bool, error) {
	opt, err := domain.LookupOption(key)
	if err != nil {
		return false, err
	}
	ck, err := p.c.Cookie(domain.CookieName(key))
	if err != nil {
		return opt.Default, nil
	}
	return domain.DecodeOption(ck.Value, opt.Default), nil
}

func (p *Cookies) SetBool(_ context.Context, key string, v bool) error {
	if _, err := domain.LookupOption(key); err != nil {
		return err
	}
	p.c.SetCookie(&http.Cookie{
		Name:     domain.CookieName(key),
		Value:    domain.EncodeOption(v),
		Path:     "/",
		Expires:  p.now().Add(domain.CookieExpiry),
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}
