// Package prefs holds the stores behind site options.
package prefs

import (
	"context"
	"sync"

	"github.com/mplewis/dominion-strategy-wiki/internal/domain"
)

// Memory keeps option values in process. Unset options read as their default.
type Memory struct {
	mu     sync.RWMutex
	values map[string]bool
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]bool)}
}

func (m *Memory) Bool(_ context.Context, key string) (bool, error) {
	opt, err := domain.LookupOption(key)
	if err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return opt.Default, nil
}

func (m *Memory) SetBool(_ context.Context, key string, v bool) error {
	if _, err := domain.LookupOption(key); err != nil {
		return err
	}
	m.mu.Lock()
	m.values[key] = v
	m.mu.Unlock()
	return nil
}
