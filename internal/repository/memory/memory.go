// Package memory implements the snapshot substrate in process memory. It is
// used by tests and by hosts that want an ephemeral, per-run session.
package memory

import (
	"context"
	"sync"

	"github.com/anafit/fitcore/internal/domain"
)

// Store is a mutex-guarded in-memory snapshot store.
type Store struct {
	mu        sync.Mutex
	snapshots map[string][]byte
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{snapshots: map[string][]byte{}}
}

func (s *Store) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.snapshots[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *Store) Save(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	s.snapshots[key] = stored
	return nil
}
