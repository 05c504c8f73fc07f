package domain

import (
	"regexp"
	"slices"
	"strings"
)

// Class names used by the gallery templates on the wiki.
const (
	ClassCardCost     = "cardcost"
	ClassLandscape    = "landscape"
	ClassStartSort    = "startsort"
	ClassActiveSwitch = "switchsort-active"

	CursorPointer = "pointer"
	CursorDefault = "default"
)

// Control is one of the three sort switches rendered above a gallery.
type Control string

const (
	ControlName Control = "sortbyname"
	ControlCost Control = "sortbycost"
	ControlSet  Control = "sortbyset"
)

var (
	reSet    = regexp.MustCompile(`(?i)^set(\d\d)$`)
	reSortBy = regexp.MustCompile(`(?i)^sortby`)
	reSortID = regexp.MustCompile(`(?i)^sortid`)
)

// ScannedCard is what a renderer reports for one cost-bearing element.
// Name is empty when the element has no titled anchor.
type ScannedCard struct {
	Name    string
	Classes []string
}

// Scan is the result of one pass over a gallery.
type Scan[E any] struct {
	Cards    []Card[E]
	SameCost bool
	SameSet  bool
}

// ScanCards builds cards from elems in a single pass, tracking whether every
// card carries the same cost class and the same set class as the first one.
func ScanCards[E any](elems []E, view func(E) ScannedCard) Scan[E] {
	scan := Scan[E]{
		Cards:    make([]Card[E], 0, len(elems)),
		SameCost: true,
		SameSet:  true,
	}
	var firstCost, firstSet string

	for i, el := range elems {
		sc := view(el)
		card := Card[E]{Kind: KindCard, Name: sc.Name, Element: el}
		if slices.Contains(sc.Classes, ClassLandscape) {
			card.Kind = KindLandscape
		}
		if cost, ok := ParseCostString(sc.Classes...); ok {
			card.Cost = &cost
		}

		for _, cl := range sc.Classes {
			if IsCostToken(cl) {
				if i == 0 {
					firstCost = cl
				} else if cl != firstCost {
					scan.SameCost = false
				}
			}
			if m := reSet.FindStringSubmatch(cl); m != nil {
				card.Set = m[1]
				if i == 0 {
					firstSet = cl
				} else if cl != firstSet {
					scan.SameSet = false
				}
			}
		}
		scan.Cards = append(scan.Cards, card)
	}
	return scan
}

// ControlState is how a single switch should be presented. An empty Cursor
// leaves the current cursor alone.
type ControlState struct {
	Hidden bool   `json:"hidden"`
	Active bool   `json:"active"`
	Cursor string `json:"cursor,omitempty"`
}

// Controls holds the presentation of all three switches of a gallery.
type Controls struct {
	Name ControlState `json:"name"`
	Cost ControlState `json:"cost"`
	Set  ControlState `json:"set"`
}

// ControlsFor derives switch presentation from gallery state and a scan.
// Name/cost switches disappear when every card costs the same; the set
// switch disappears when every card is from the same set.
func ControlsFor[E any](g Gallery, scan Scan[E]) Controls {
	var c Controls
	switch {
	case scan.SameCost:
		c.Name = ControlState{Hidden: true}
		c.Cost = ControlState{Hidden: true}
	case g.SortBy == SortByName:
		c.Name = ControlState{Active: true, Cursor: CursorDefault}
		c.Cost = ControlState{Cursor: CursorPointer}
	default:
		c.Name = ControlState{Cursor: CursorPointer}
		c.Cost = ControlState{Active: true, Cursor: CursorDefault}
	}

	if scan.SameSet {
		c.Set = ControlState{Hidden: true}
	} else {
		c.Set = ControlState{Active: g.GroupSets, Cursor: CursorPointer}
	}
	return c
}

// Gallery is the sort state of one gallery on a page.
type Gallery struct {
	ID        string `json:"id"`
	SortBy    SortBy `json:"sortBy"`
	GroupSets bool   `json:"groupSets"`
}

// Apply handles a click on control and reports whether the state changed.
// Name and cost switch the mode; set toggles grouping.
func (g *Gallery) Apply(control Control) bool {
	switch control {
	case ControlName:
		if g.SortBy != SortByName {
			g.SortBy = SortByName
			return true
		}
	case ControlCost:
		if g.SortBy != SortByCost {
			g.SortBy = SortByCost
			return true
		}
	case ControlSet:
		g.GroupSets = !g.GroupSets
		return true
	}
	return false
}

// ParseControlClasses extracts the sortby* and sortid* classes of a clicked
// switch. The last match of each wins.
func ParseControlClasses(classes []string) (control Control, sortID string, ok bool) {
	for _, cl := range classes {
		if reSortBy.MatchString(cl) {
			control = Control(cl)
		}
		if reSortID.MatchString(cl) {
			sortID = cl
		}
	}
	return control, sortID, control != "" && sortID != ""
}

// SortID returns the last sortid* class, or "" when there is none.
func SortID(classes []string) string {
	id := ""
	for _, cl := range classes {
		if reSortID.MatchString(cl) {
			id = cl
		}
	}
	return id
}

// HasClass reports whether class is in classes.
func HasClass(classes []string, class string) bool {
	return slices.Contains(classes, class)
}

// Fields splits a class attribute into tokens.
func Fields(classAttr string) []string {
	return strings.Fields(classAttr)
}

// Registry holds one Gallery per id, in registration order. It belongs to a
// single page and is discarded with it.
type Registry struct {
	order     []string
	galleries map[string]*Gallery
}

func NewRegistry() *Registry {
	return &Registry{galleries: make(map[string]*Gallery)}
}

// Register adds g unless its id is already known, in which case the existing
// entry is returned and added is false.
func (r *Registry) Register(g Gallery) (entry *Gallery, added bool) {
	if existing, ok := r.galleries[g.ID]; ok {
		return existing, false
	}
	entry = &g
	r.galleries[g.ID] = entry
	r.order = append(r.order, g.ID)
	return entry, true
}

func (r *Registry) Get(id string) (*Gallery, bool) {
	g, ok := r.galleries[id]
	return g, ok
}

// IDs returns gallery ids in registration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) Len() int { return len(r.order) }
