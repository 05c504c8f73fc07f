package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Keys of the site options shown in the wiki sidebar.
const (
	OptionCardSortByCost      = "cardSortByCost"
	OptionCardBorder          = "cardBorder"
	OptionNavboxOnHoverImages = "navboxOnHoverImages"
	OptionShowExpansions      = "showExpansions"
)

const (
	// CardBorderPX is the border width applied when card borders are enabled.
	CardBorderPX = 11
	// CookieExpiry is how long a stored option lives.
	CookieExpiry = 365 * 24 * time.Hour
)

// Option is a boolean user preference persisted per browser.
type Option struct {
	Key         string `json:"key"`
	DisplayText string `json:"displayText"`
	Default     bool   `json:"default"`
}

var siteOptions = []Option{
	{Key: OptionCardSortByCost, DisplayText: "Sort by Cost", Default: false},
	{Key: OptionCardBorder, DisplayText: "Card Border", Default: false},
	{Key: OptionNavboxOnHoverImages, DisplayText: "Navbox On-Hover Images", Default: false},
	{Key: OptionShowExpansions, DisplayText: "Show Expansions", Default: true},
}

// Options returns every known site option in sidebar order.
func Options() []Option {
	out := make([]Option, len(siteOptions))
	copy(out, siteOptions)
	return out
}

// LookupOption finds an option by key.
func LookupOption(key string) (Option, error) {
	for _, o := range siteOptions {
		if o.Key == key {
			return o, nil
		}
	}
	return Option{}, fmt.Errorf("%w: %s", ErrUnknownOption, key)
}

// CookieName is the cookie that stores an option.
func CookieName(key string) string { return "option_" + key }

// EncodeOption renders an option value for storage.
func EncodeOption(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// DecodeOption reads a stored value: empty means def, a positive integer is
// true, anything else is false.
func DecodeOption(raw string, def bool) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(leadingInt(raw))
	if err != nil {
		return false
	}
	return n > 0
}

// leadingInt mimics parseInt: the optional sign and digits at the start.
func leadingInt(s string) string {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}

var borderPadding = []struct {
	size    int
	padding int
}{
	{75, 4},
	{100, 5},
	{120, 6},
	{150, 8},
	{160, 9},
	{320, 11},
	{math.MaxInt, 21},
}

// BorderPadding maps an image width to the border padding that fits it.
func BorderPadding(width int) int {
	for _, m := range borderPadding {
		if width <= m.size {
			return m.padding
		}
	}
	return borderPadding[len(borderPadding)-1].padding
}
