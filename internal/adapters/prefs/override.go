package prefs

import (
	"context"

	"github.com/mplewis/dominion-strategy-wiki/internal/domain"
	"github.com/mplewis/dominion-strategy-wiki/internal/ports"
)

// SortOverride answers the sort-by-cost option from a fixed value and defers
// every other option to the wrapped store.
type SortOverride struct {
	ports.Preferences
	ByCost bool
}

func (o SortOverride) Bool(ctx context.Context, key string) (bool, error) {
	if key == domain.OptionCardSortByCost {
		return o.ByCost, nil
	}
	return o.Preferences.Bool(ctx, key)
}
