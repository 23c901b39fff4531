package catalog

import (
	"errors"
	"sync"
)

var (
	// ErrDuplicateProduct is returned when adding a name that already exists.
	ErrDuplicateProduct = errors.New("product already exists")
	// ErrProductNotFound is returned when looking up an unknown name.
	ErrProductNotFound = errors.New("product not found")
)

// Store holds catalog entries in memory, keyed by name. Products stay shared
// mutable references: the checkout engine reduces stock through the same
// pointers handed out here.
type Store struct {
	mu    sync.RWMutex
	byKey map[string]*Product
	order []string
}

// NewStore returns an empty catalog store.
func NewStore() *Store {
	return &Store{byKey: make(map[string]*Product)}
}

// Put registers a product under its name.
func (s *Store) Put(p *Product) error {
	if p == nil {
		return errors.New("nil product")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byKey[p.Name()]; exists {
		return ErrDuplicateProduct
	}
	s.byKey[p.Name()] = p
	s.order = append(s.order, p.Name())
	return nil
}

// Get looks up a product by name.
func (s *Store) Get(name string) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byKey[name]
	if !ok {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// List returns all products in insertion order.
func (s *Store) List() []*Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Product, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.byKey[name])
	}
	return out
}
