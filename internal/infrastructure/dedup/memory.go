// Package dedup provides seen-identifier stores backing the deduplication
// stage: in-memory for tests and single runs, SQLite for state that survives
// runs, Redis for sets shared between workers.
package dedup

import (
	"context"
	"sync"

	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/ports"
)

// MemoryStore keeps the seen set in process memory. State does not survive
// the process; use the SQLite or Redis store for cross-run persistence.
type MemoryStore struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

var _ ports.DedupStore = (*MemoryStore)(nil)

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{seen: map[string]struct{}{}}
}

// Seen reports whether the key was previously recorded.
func (s *MemoryStore) Seen(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[key]
	return ok, nil
}

// Record adds the key, reporting whether it was newly added.
func (s *MemoryStore) Record(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[key]; ok {
		return false, nil
	}
	s.seen[key] = struct{}{}
	return true, nil
}

// Save is a no-op for the in-memory store.
func (s *MemoryStore) Save(context.Context) error { return nil }

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
