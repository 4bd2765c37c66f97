package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory chart store for development and testing.
type MemoryStore struct {
	mu     sync.RWMutex
	charts map[string]*Chart
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{charts: make(map[string]*Chart)}
}

// Get retrieves a chart by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Chart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ch, ok := s.charts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyChart(ch), nil
}

// List returns all charts ordered by creation time, oldest first.
// Ties break on ID so the order is stable.
func (s *MemoryStore) List(ctx context.Context) ([]*Chart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	charts := make([]*Chart, 0, len(s.charts))
	for _, ch := range s.charts {
		charts = append(charts, copyChart(ch))
	}
	sort.Slice(charts, func(i, j int) bool {
		if !charts[i].CreatedAt.Equal(charts[j].CreatedAt) {
			return charts[i].CreatedAt.Before(charts[j].CreatedAt)
		}
		return charts[i].ID < charts[j].ID
	})
	return charts, nil
}

// Create stores a new chart.
func (s *MemoryStore) Create(ctx context.Context, ch *Chart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepareCreate(ch)
	if _, ok := s.charts[ch.ID]; ok {
		return ErrExists
	}
	s.charts[ch.ID] = copyChart(ch)
	return nil
}

// Update replaces a stored chart.
func (s *MemoryStore) Update(ctx context.Context, ch *Chart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.charts[ch.ID]
	if !ok {
		return ErrNotFound
	}
	ch.CreatedAt = cur.CreatedAt
	ch.UpdatedAt = nowUTC()
	s.charts[ch.ID] = copyChart(ch)
	return nil
}

// Delete removes a chart.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.charts[id]; !ok {
		return ErrNotFound
	}
	delete(s.charts, id)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// copyChart clones a chart so callers cannot mutate stored state.
func copyChart(ch *Chart) *Chart {
	cp := *ch
	cp.Source = make([]byte, len(ch.Source))
	copy(cp.Source, ch.Source)
	return &cp
}

var _ Store = (*MemoryStore)(nil)
