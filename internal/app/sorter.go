package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mplewis/dominion-strategy-wiki/internal/domain"
	"github.com/mplewis/dominion-strategy-wiki/internal/ports"
)

type galleryElements[E any] struct {
	container E
	controls  map[domain.Control]E
}

// Sorter keeps the galleries of one document ordered according to their
// sort state. It is not safe for concurrent use; a document's events are
// handled one at a time.
type Sorter[E any] struct {
	doc      ports.GalleryDocument[E]
	prefs    ports.Preferences
	logger   *slog.Logger
	registry *domain.Registry
	elems    map[string]galleryElements[E]
}

func NewSorter[E any](doc ports.GalleryDocument[E], prefs ports.Preferences, logger *slog.Logger) *Sorter[E] {
	return &Sorter[E]{
		doc:      doc,
		prefs:    prefs,
		logger:   logger,
		registry: domain.NewRegistry(),
		elems:    make(map[string]galleryElements[E]),
	}
}

// Registry exposes the gallery states for inspection.
func (s *Sorter[E]) Registry() *domain.Registry { return s.registry }

// Init registers every gallery in the document and sorts each once. A
// gallery id seen twice keeps its first container.
func (s *Sorter[E]) Init(ctx context.Context) error {
	for _, container := range s.doc.Containers() {
		id := domain.SortID(s.doc.Classes(container))
		if _, known := s.registry.Get(id); known {
			continue
		}

		byCost, err := s.prefs.Bool(ctx, domain.OptionCardSortByCost)
		if err != nil {
			s.logger.WarnContext(ctx, "read sort preference, using name order", "gallery", id, "error", err)
			byCost = false
		}
		s.registry.Register(domain.Gallery{ID: id, SortBy: domain.SortByFromCost(byCost)})

		ge := galleryElements[E]{container: container, controls: make(map[domain.Control]E, 3)}
		for _, c := range []domain.Control{domain.ControlName, domain.ControlCost, domain.ControlSet} {
			if el, ok := s.doc.Control(c, id); ok {
				ge.controls[c] = el
			}
		}
		if el, ok := ge.controls[domain.ControlSet]; ok {
			s.doc.ApplyControl(el, domain.ControlState{Cursor: domain.CursorPointer})
		}
		s.elems[id] = ge
	}

	for _, id := range s.registry.IDs() {
		if _, err := s.SortGallery(id); err != nil {
			return err
		}
	}
	return nil
}

// SortGallery reorders the cards of gallery id and updates its switches.
func (s *Sorter[E]) SortGallery(id string) (domain.Scan[E], error) {
	g, ok := s.registry.Get(id)
	if !ok {
		return domain.Scan[E]{}, fmt.Errorf("%w: %q", domain.ErrGalleryNotFound, id)
	}
	ge := s.elems[id]

	scan := domain.ScanCards(s.doc.CostElements(ge.container), func(el E) domain.ScannedCard {
		return domain.ScannedCard{Name: s.doc.Title(el), Classes: s.doc.Classes(el)}
	})

	sorted := domain.SortCards(scan.Cards, g.SortBy, g.GroupSets)
	for _, c := range sorted {
		s.doc.AppendChild(ge.container, c.Element)
	}
	scan.Cards = sorted

	controls := domain.ControlsFor(*g, scan)
	s.applyControl(ge, domain.ControlName, controls.Name)
	s.applyControl(ge, domain.ControlCost, controls.Cost)
	s.applyControl(ge, domain.ControlSet, controls.Set)

	s.logger.Debug("sorted gallery",
		"gallery", id,
		"sort_by", g.SortBy.String(),
		"group_sets", g.GroupSets,
		"cards", len(sorted),
	)
	return scan, nil
}

func (s *Sorter[E]) applyControl(ge galleryElements[E], c domain.Control, state domain.ControlState) {
	if el, ok := ge.controls[c]; ok {
		s.doc.ApplyControl(el, state)
	}
}

// Click handles a click on a switch carrying the given classes. It reports
// whether the gallery was re-sorted.
func (s *Sorter[E]) Click(classes []string) (bool, error) {
	control, id, ok := domain.ParseControlClasses(classes)
	if !ok {
		return false, nil
	}
	return s.Apply(id, control)
}

// Apply feeds control into gallery id's state machine and re-sorts on change.
func (s *Sorter[E]) Apply(id string, control domain.Control) (bool, error) {
	g, ok := s.registry.Get(id)
	if !ok {
		return false, fmt.Errorf("%w: %q", domain.ErrGalleryNotFound, id)
	}
	if !g.Apply(control) {
		return false, nil
	}
	if _, err := s.SortGallery(id); err != nil {
		return false, err
	}
	return true, nil
}

// ApplySortByCost switches every gallery to the given mode, re-sorting only
// those that change.
func (s *Sorter[E]) ApplySortByCost(byCost bool) error {
	sortBy := domain.SortByFromCost(byCost)
	for _, id := range s.registry.IDs() {
		g, _ := s.registry.Get(id)
		if g.SortBy == sortBy {
			continue
		}
		g.SortBy = sortBy
		if _, err := s.SortGallery(id); err != nil {
			return err
		}
	}
	return nil
}
