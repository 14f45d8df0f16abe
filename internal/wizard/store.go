package wizard

import (
	"sync"

	"github.com/google/uuid"
)

// store holds live wizard instances keyed by id. Wizards are in-memory
// only; durable state lives in the persistence gateway.
type store struct {
	mu      sync.RWMutex
	wizards map[uuid.UUID]*wizard
}

func newStore() *store {
	return &store{wizards: make(map[uuid.UUID]*wizard)}
}

func (s *store) add(w *wizard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wizards[w.id] = w
}

func (s *store) get(id uuid.UUID) (*wizard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.wizards[id]
	if !ok {
		return nil, ErrNotFound
	}
	return w, nil
}

func (s *store) remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.wizards, id)
}
