package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Store keeps one cart per customer for the lifetime of the process. HTTP
// handlers run concurrently, so access is serialized here even though each
// cart has a single owner.
type Store struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]*Cart
}

// NewStore creates an empty cart store
func NewStore() *Store {
	return &Store{carts: make(map[uuid.UUID]*Cart)}
}

// Get returns the customer's cart, creating an empty one on first use
func (s *Store) Get(userID uuid.UUID) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	if !ok {
		c = New()
		s.carts[userID] = c
	}
	return c
}

// Drop removes the customer's cart entirely. Used on logout.
func (s *Store) Drop(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}
