package customer

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrAccountNotFound is returned when looking up an unknown account id.
var ErrAccountNotFound = errors.New("customer not found")

// Store keeps customer accounts in memory keyed by id. Accounts outlive
// individual checkouts; the engine debits them through the shared reference.
type Store struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*Account
}

// NewStore returns an empty account store.
func NewStore() *Store {
	return &Store{accounts: make(map[uuid.UUID]*Account)}
}

// Put registers an account and returns its id.
func (s *Store) Put(a *Account) uuid.UUID {
	id := uuid.New()
	s.mu.Lock()
	s.accounts[id] = a
	s.mu.Unlock()
	return id
}

// Get looks up an account by id.
func (s *Store) Get(id uuid.UUID) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return a, nil
}
