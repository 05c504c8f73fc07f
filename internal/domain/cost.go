package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Modifier annotates a cost as variable ("*") or as a minimum ("+").
type Modifier string

const (
	ModifierNone Modifier = ""
	ModifierStar Modifier = "*"
	ModifierPlus Modifier = "+"
)

// CardCost is the structured form of a cost class such as "cost$0403D".
// A nil CoinCost means the class carried no "$" marker at all, which is not
// the same thing as an explicit zero coin cost.
type CardCost struct {
	CoinCost  *int     `json:"coinCost"`
	DebtCost  int      `json:"debtCost"`
	HasPotion bool     `json:"hasPotion"`
	Modifier  Modifier `json:"modifier,omitempty"`
}

// ZeroCost stands in for cards whose cost could not be determined.
var ZeroCost = CardCost{CoinCost: coins(0)}

var reCost = regexp.MustCompile(`(?i)^cost(\$)?(\d\d)?([*+])?((\d\d)[Dd])?([Pp])?$`)

func coins(n int) *int { return &n }

// IsCostToken reports whether token is written in cost class syntax.
func IsCostToken(token string) bool {
	return reCost.MatchString(token)
}

// ParseCostString returns the cost encoded by the first token in cost class
// syntax. Later matching tokens are ignored. ok is false when nothing matches.
func ParseCostString(tokens ...string) (cost CardCost, ok bool) {
	for _, tok := range tokens {
		m := reCost.FindStringSubmatch(tok)
		if m == nil {
			continue
		}
		if m[1] != "" {
			coin := 0
			if m[2] != "" {
				coin, _ = strconv.Atoi(m[2])
			}
			cost.CoinCost = coins(coin)
		}
		if m[5] != "" {
			cost.DebtCost, _ = strconv.Atoi(m[5])
		}
		cost.HasPotion = m[6] != ""
		cost.Modifier = Modifier(m[3])
		return cost, true
	}
	return CardCost{}, false
}

// CompareCardCosts orders costs by coin (costless first), potion, debt and
// finally modifier. It does not look at anything else.
func CompareCardCosts(a, b CardCost) int {
	switch {
	case a.CoinCost == nil && b.CoinCost != nil:
		return -1
	case a.CoinCost != nil && b.CoinCost == nil:
		return 1
	case a.CoinCost != nil && *a.CoinCost != *b.CoinCost:
		return *a.CoinCost - *b.CoinCost
	}

	if a.HasPotion != b.HasPotion {
		if a.HasPotion {
			return 1
		}
		return -1
	}

	if a.DebtCost != b.DebtCost {
		return a.DebtCost - b.DebtCost
	}

	// "*" before "+" is a historical ordering; keep it lexical.
	return strings.Compare(string(a.Modifier), string(b.Modifier))
}

// Equal reports field-wise equality.
func (c CardCost) Equal(o CardCost) bool {
	if (c.CoinCost == nil) != (o.CoinCost == nil) {
		return false
	}
	if c.CoinCost != nil && *c.CoinCost != *o.CoinCost {
		return false
	}
	return c.DebtCost == o.DebtCost && c.HasPotion == o.HasPotion && c.Modifier == o.Modifier
}

// Token renders the cost back into class form, e.g. "cost$0403D".
func (c CardCost) Token() string {
	var b strings.Builder
	b.WriteString("cost")
	if c.CoinCost != nil {
		fmt.Fprintf(&b, "$%02d", *c.CoinCost)
	}
	b.WriteString(string(c.Modifier))
	if c.DebtCost > 0 {
		fmt.Fprintf(&b, "%02dD", c.DebtCost)
	}
	if c.HasPotion {
		b.WriteString("P")
	}
	return b.String()
}

// String renders the cost the way it is printed on a card: "$4+", "$4 3D", "$3P".
func (c CardCost) String() string {
	var parts []string
	if c.CoinCost != nil {
		coin := fmt.Sprintf("$%d%s", *c.CoinCost, c.Modifier)
		if c.HasPotion {
			coin += "P"
		}
		parts = append(parts, coin)
	} else if c.HasPotion {
		parts = append(parts, "P")
	}
	if c.DebtCost > 0 {
		parts = append(parts, fmt.Sprintf("%dD", c.DebtCost))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
