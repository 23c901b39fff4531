package cart

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrCartNotFound is returned when looking up an unknown cart id.
var ErrCartNotFound = errors.New("cart not found")

// Store keeps live carts in memory keyed by id. Carts are created per
// intended purchase and discarded by the caller after checkout.
type Store struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]*Cart
}

// NewStore returns an empty cart store.
func NewStore() *Store {
	return &Store{carts: make(map[uuid.UUID]*Cart)}
}

// Create registers a fresh cart and returns its id.
func (s *Store) Create() (uuid.UUID, *Cart) {
	id := uuid.New()
	c := New()
	s.mu.Lock()
	s.carts[id] = c
	s.mu.Unlock()
	return id, c
}

// Get looks up a cart by id.
func (s *Store) Get(id uuid.UUID) (*Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[id]
	if !ok {
		return nil, ErrCartNotFound
	}
	return c, nil
}

// Delete removes a cart, typically after a successful checkout.
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.carts, id)
	s.mu.Unlock()
}
