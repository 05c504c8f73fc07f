package domain_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mplewis/dominion-strategy-wiki/internal/domain"
)

// Every cost class found on the expansion pages of the wiki, in cost order.
var wikiCostClasses = []string{
	"cost",
	"cost$00",
	"cost$00*",
	"cost$0004D",
	"cost$0005D",
	"cost$0006D",
	"cost$0008D",
	"cost$00P",
	"cost$01",
	"cost$02",
	"cost$02*",
	"cost$02+",
	"cost$02P",
	"cost$03",
	"cost$03*",
	"cost$03+",
	"cost$03P",
	"cost$04",
	"cost$04*",
	"cost$04+",
	"cost$0403D",
	"cost$04P",
	"cost$05",
	"cost$05*",
	"cost$06",
	"cost$06*",
	"cost$06P",
	"cost$07",
	"cost$07*",
	"cost$08",
	"cost$08*",
	"cost$0808D",
	"cost$09",
	"cost$10",
	"cost$11",
	"cost$14",
}

func coin(n int) *int { return &n }

func mustParse(t *testing.T, tokens ...string) domain.CardCost {
	t.Helper()
	cost, ok := domain.ParseCostString(tokens...)
	require.True(t, ok, "no cost in %v", tokens)
	return cost
}

func TestParseCostString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  domain.CardCost
	}{
		{"simple coin cost", "cost$05", domain.CardCost{CoinCost: coin(5)}},
		{"potion cost", "cost$03P", domain.CardCost{CoinCost: coin(3), HasPotion: true}},
		{"plus modifier", "cost$02+", domain.CardCost{CoinCost: coin(2), Modifier: domain.ModifierPlus}},
		{"star modifier", "cost$06*", domain.CardCost{CoinCost: coin(6), Modifier: domain.ModifierStar}},
		{"debt only", "cost$0008D", domain.CardCost{CoinCost: coin(0), DebtCost: 8}},
		{"coin and debt", "cost$0403D", domain.CardCost{CoinCost: coin(4), DebtCost: 3}},
		{"no coin marker", "cost", domain.CardCost{}},
		{"explicit zero", "cost$00", domain.CardCost{CoinCost: coin(0)}},
		{"currency without digits", "cost$", domain.CardCost{CoinCost: coin(0)}},
		{"case insensitive", "COST$04p", domain.CardCost{CoinCost: coin(4), HasPotion: true}},
		{"lowercase debt", "cost$0808d", domain.CardCost{CoinCost: coin(8), DebtCost: 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParse(t, tt.input)
			assert.Truef(t, got.Equal(tt.want), "got %+v want %+v", got, tt.want)
		})
	}
}

func TestParseCostString_NoCoinIsNotZero(t *testing.T) {
	none := mustParse(t, "cost")
	zero := mustParse(t, "cost$00")

	assert.Nil(t, none.CoinCost)
	require.NotNil(t, zero.CoinCost)
	assert.Equal(t, 0, *zero.CoinCost)
	assert.False(t, none.Equal(zero))
}

func TestParseCostString_FirstMatchWins(t *testing.T) {
	got := mustParse(t, "landscape", "cost$05", "cost$03", "set09")
	require.NotNil(t, got.CoinCost)
	assert.Equal(t, 5, *got.CoinCost)

	got = mustParse(t, "nonsense", "cost$05", "set09")
	assert.True(t, got.Equal(domain.CardCost{CoinCost: coin(5)}))
}

func TestParseCostString_NoMatch(t *testing.T) {
	for _, tokens := range [][]string{
		nil,
		{"landscape", "cardname", "set09"},
		{"cost$5"},
		{"cost$055"},
		{"cost$05X"},
		{"xcost$05"},
		{"cost$05P "},
		{"cost$04+*"},
		{"cardcost"},
	} {
		_, ok := domain.ParseCostString(tokens...)
		assert.False(t, ok, "%v", tokens)
	}
}

func TestParseCostString_AllWikiClasses(t *testing.T) {
	for _, cl := range wikiCostClasses {
		assert.True(t, domain.IsCostToken(cl), cl)
		_, ok := domain.ParseCostString(cl)
		assert.True(t, ok, cl)
	}
}

func TestParseCostString_Idempotent(t *testing.T) {
	for _, cl := range wikiCostClasses {
		first := mustParse(t, cl)
		again := mustParse(t, cl)
		assert.True(t, first.Equal(again), cl)

		// The canonical token parses back to the same cost.
		roundTrip := mustParse(t, first.Token())
		assert.Truef(t, first.Equal(roundTrip), "%s -> %s", cl, first.Token())
	}
}

func TestCompareCardCosts_Pairs(t *testing.T) {
	tests := []struct {
		name   string
		before string
		after  string
	}{
		{"coin costs numerically", "cost$04", "cost$05"},
		{"potion after plain", "cost$03", "cost$03P"},
		{"plus after fixed", "cost$02", "cost$02+"},
		{"star before plus", "cost$06*", "cost$06+"},
		{"debt after zero coin", "cost$00", "cost$0008D"},
		{"coin and debt after coin", "cost$04", "cost$0403D"},
		{"costless before zero", "cost", "cost$00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustParse(t, tt.before)
			b := mustParse(t, tt.after)
			assert.Negative(t, domain.CompareCardCosts(a, b))
			assert.Positive(t, domain.CompareCardCosts(b, a))
		})
	}
}

func TestCompareCardCosts_WikiOrder(t *testing.T) {
	shuffled := slices.Clone(wikiCostClasses)
	slices.Reverse(shuffled)
	shuffled[3], shuffled[20] = shuffled[20], shuffled[3]

	slices.SortStableFunc(shuffled, func(a, b string) int {
		return domain.CompareCardCosts(mustParse(t, a), mustParse(t, b))
	})
	assert.Equal(t, wikiCostClasses, shuffled)
}

func TestCompareCardCosts_StrictWeakOrder(t *testing.T) {
	costs := make([]domain.CardCost, 0, len(wikiCostClasses)+2)
	for _, cl := range wikiCostClasses {
		costs = append(costs, mustParse(t, cl))
	}
	costs = append(costs, domain.ZeroCost, mustParse(t, "cost*"))

	sign := func(n int) int {
		switch {
		case n < 0:
			return -1
		case n > 0:
			return 1
		}
		return 0
	}

	for _, a := range costs {
		assert.Zero(t, domain.CompareCardCosts(a, a))
		for _, b := range costs {
			ab := sign(domain.CompareCardCosts(a, b))
			ba := sign(domain.CompareCardCosts(b, a))
			assert.Equal(t, -ab, ba, "antisymmetry %s %s", a.Token(), b.Token())
			assert.Equal(t, a.Equal(b), ab == 0, "equality %s %s", a.Token(), b.Token())

			for _, c := range costs {
				if ab <= 0 && sign(domain.CompareCardCosts(b, c)) <= 0 {
					assert.LessOrEqual(t, domain.CompareCardCosts(a, c), 0,
						"transitivity %s %s %s", a.Token(), b.Token(), c.Token())
				}
			}
		}
	}
}

func TestCardCost_String(t *testing.T) {
	tests := map[string]string{
		"cost":       "-",
		"cost$00":    "$0",
		"cost$04+":   "$4+",
		"cost$03P":   "$3P",
		"cost$0403D": "$4 3D",
		"cost08D":    "8D",
	}
	for in, want := range tests {
		assert.Equal(t, want, mustParse(t, in).String(), in)
	}
}
