package domain

import (
	"fmt"
	"strings"
)

// CardKind separates ordinary cards from landscapes (events, projects, ways...).
type CardKind string

const (
	KindCard      CardKind = "C"
	KindLandscape CardKind = "L"
)

// SortBy is the user-selected ordering of a gallery.
type SortBy int

const (
	SortByName SortBy = iota
	SortByCost
)

func (s SortBy) String() string {
	if s == SortByCost {
		return "cost"
	}
	return "name"
}

// ParseSortBy accepts "name" or "cost" in any case.
func ParseSortBy(raw string) (SortBy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "name":
		return SortByName, nil
	case "cost":
		return SortByCost, nil
	default:
		return SortByName, fmt.Errorf("%w: %q", ErrInvalidSortOrder, raw)
	}
}

// SortByFromCost maps the "sort by cost" preference to a SortBy.
func SortByFromCost(byCost bool) SortBy {
	if byCost {
		return SortByCost
	}
	return SortByName
}

// Card is one displayed card. Element is an opaque handle owned by whoever
// renders the gallery; it is carried through sorting untouched.
type Card[E any] struct {
	Kind    CardKind  `json:"kind"`
	Name    string    `json:"name"`
	Set     string    `json:"set"`
	Cost    *CardCost `json:"cost,omitempty"`
	Element E         `json:"-"`
}

// CardSet is an expansion with its own gallery page on the wiki.
type CardSet struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Page string `json:"page" yaml:"page"`
}

// ExpansionLink is a sidebar link to an expansion page.
type ExpansionLink struct {
	Page  string `json:"page" yaml:"page"`
	Label string `json:"label" yaml:"label"`
}
