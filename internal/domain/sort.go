package domain

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortCards returns a new slice ordered by kind, then set (when groupSets),
// then cost (when sorting by cost), then name. cards is not modified.
func SortCards[E any](cards []Card[E], sortBy SortBy, groupSets bool) []Card[E] {
	sorted := slices.Clone(cards)
	// Collators keep scratch buffers, so each call gets its own.
	col := collate.New(language.English)

	slices.SortStableFunc(sorted, func(a, b Card[E]) int {
		if a.Kind != b.Kind {
			if a.Kind == KindLandscape {
				return 1
			}
			return -1
		}

		if groupSets {
			if c := compareText(col, a.Set, b.Set); c != 0 {
				return c
			}
		}

		if sortBy == SortByCost {
			if c := CompareCardCosts(costOrZero(a.Cost), costOrZero(b.Cost)); c != 0 {
				return c
			}
		}

		return compareText(col, a.Name, b.Name)
	})
	return sorted
}

func costOrZero(c *CardCost) CardCost {
	if c == nil {
		return ZeroCost
	}
	return *c
}

// compareText orders like a browser's localeCompare, falling back to byte
// order so distinct strings never compare equal.
func compareText(col *collate.Collator, a, b string) int {
	if c := col.CompareString(a, b); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
