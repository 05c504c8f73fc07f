package catalog

import (
	"context"
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mplewis/dominion-strategy-wiki/internal/domain"
)

//go:embed data/catalog.yaml
var catalogFS embed.FS

type catalogFile struct {
	Sets           []domain.CardSet       `yaml:"sets"`
	ExpansionLinks []domain.ExpansionLink `yaml:"expansionLinks"`
}

// EmbeddedStore serves the expansion list compiled into the binary.
type EmbeddedStore struct {
	once sync.Once
	data catalogFile
	byID map[string]domain.CardSet
	err  error
}

func NewEmbeddedStore() *EmbeddedStore {
	return &EmbeddedStore{}
}

func (s *EmbeddedStore) init() {
	raw, err := catalogFS.ReadFile("data/catalog.yaml")
	if err != nil {
		s.err = fmt.Errorf("read embedded catalog: %w", err)
		return
	}
	if err := yaml.Unmarshal(raw, &s.data); err != nil {
		s.err = fmt.Errorf("parse embedded catalog: %w", err)
		return
	}
	s.byID = make(map[string]domain.CardSet, len(s.data.Sets))
	for _, set := range s.data.Sets {
		s.byID[set.ID] = set
	}
}

func (s *EmbeddedStore) Sets(_ context.Context) ([]domain.CardSet, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.CardSet, len(s.data.Sets))
	copy(out, s.data.Sets)
	return out, nil
}

func (s *EmbeddedStore) Set(_ context.Context, id string) (domain.CardSet, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return domain.CardSet{}, s.err
	}
	set, ok := s.byID[id]
	if !ok {
		return domain.CardSet{}, fmt.Errorf("%w: %s", domain.ErrUnknownSet, id)
	}
	return set, nil
}

func (s *EmbeddedStore) ExpansionLinks(_ context.Context) ([]domain.ExpansionLink, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.ExpansionLink, len(s.data.ExpansionLinks))
	copy(out, s.data.ExpansionLinks)
	return out, nil
}
