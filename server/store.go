package server

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/explore"
)

// ErrNotFound indicates an unknown simulation id.
var ErrNotFound = errors.New("server: simulation not found")

// session is one simulation and the lock that serializes access to it.
type session struct {
	mu sync.Mutex
	c  *explore.Controller
}

// store maps simulation ids to sessions.
type store struct {
	mu   sync.RWMutex
	sims map[uuid.UUID]*session
}

func newStore() *store {
	return &store{sims: make(map[uuid.UUID]*session)}
}

func (s *store) put(id uuid.UUID, c *explore.Controller) {
	s.mu.Lock()
	s.sims[id] = &session{c: c}
	s.mu.Unlock()
}

func (s *store) get(id uuid.UUID) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sims[id]
	if !ok {
		return nil, ErrNotFound
	}

	return sess, nil
}

func (s *store) remove(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sims[id]; !ok {
		return ErrNotFound
	}
	delete(s.sims, id)

	return nil
}

func (s *store) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sims)
}
