// Package memory is an in-memory Store used by tests and the memory backend.
package memory

import (
	"context"
	"fmt"
	"sync"

	"expenses/internal/core"
	"expenses/internal/store"
)

type Store struct {
	mu    sync.Mutex
	items []core.Record
}

func New() *Store {
	return &Store{}
}

// Append stores the record in insertion order.
func (s *Store) Append(_ context.Context, r core.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, r)
	return nil
}

// Delete removes the first record equal to r in all six fields.
func (s *Store) Delete(_ context.Context, r core.Record) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.items {
		if it == r {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ListPeriod(_ context.Context, month, year string) ([]store.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []store.Entry
	for _, it := range s.items {
		if it.Month == month && it.Year == year {
			out = append(out, store.Entry{
				Day:         it.Day,
				Category:    it.Category,
				Value:       it.Value,
				Description: it.Description,
			})
		}
	}
	return out, nil
}

func (s *Store) CumulativeUntil(_ context.Context, month, year string) (map[string]store.CategoryTotals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := store.CumulativeSkeleton(month, year)
	for _, it := range s.items {
		totals, ok := out[it.Month+"|"+it.Year]
		if !ok {
			continue // target period or outside the walked span
		}
		amount, err := it.Amount()
		if err != nil {
			return nil, fmt.Errorf("stored value %q: %w", it.Value, err)
		}
		totals[it.Category] = totals[it.Category].Add(amount)
	}
	return out, nil
}

// Len reports the number of stored records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
