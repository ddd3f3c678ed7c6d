package filecache

import (
	"iter"
	"maps"
	"slices"
	"sync"
)

// Store is the in-memory id → item map behind a Cache.
//
// Iteration is ordered by id so that snapshots, and therefore saved files,
// are deterministic.
type Store[T Item] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewStore returns an empty store.
func NewStore[T Item]() *Store[T] {
	return &Store[T]{items: make(map[string]T)}
}

// Add inserts item, replacing any item with the same id. Items with an empty
// id are kept in memory but skipped by Save.
func (s *Store[T]) Add(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID()] = item
}

// Get returns the item for id, if present.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	return item, ok
}

// Delete removes and returns the item for id. The bool is false when no such
// item exists.
func (s *Store[T]) Delete(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if ok {
		delete(s.items, id)
	}
	return item, ok
}

// Len returns the number of items.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Clear removes every item.
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]T)
}

// Items iterates over a snapshot of the store in id order. Mutating the
// store while iterating is allowed and does not affect the iteration.
func (s *Store[T]) Items() iter.Seq2[string, T] {
	ids, items := s.snapshot()
	return func(yield func(string, T) bool) {
		for i, id := range ids {
			if !yield(id, items[i]) {
				return
			}
		}
	}
}

// List returns a copy of all items in id order.
func (s *Store[T]) List() []T {
	_, items := s.snapshot()
	return items
}

func (s *Store[T]) snapshot() ([]string, []T) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := slices.Sorted(maps.Keys(s.items))
	items := make([]T, len(ids))
	for i, id := range ids {
		items[i] = s.items[id]
	}
	return ids, items
}

// swap replaces the contents of s with those of other.
func (s *Store[T]) swap(other *Store[T]) {
	other.mu.RLock()
	items := other.items
	other.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
}
