package cache

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/swiftbasket/backend/internal/domain/cart"
	"github.com/swiftbasket/backend/internal/domain/shared"
)

// MemoryCartStore is an in-memory cart.Repository. It serves session
// and user keys alike, which makes it handy for tests and for running
// without Redis in development.
type MemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string]map[uuid.UUID]int
}

// NewMemoryCartStore creates an empty in-memory cart store
func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{
		carts: make(map[string]map[uuid.UUID]int),
	}
}

// Get returns the cart's lines
func (s *MemoryCartStore) Get(ctx context.Context, key cart.Key) ([]cart.Line, error) {
	mapKey, err := memoryKey(key)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]cart.Line, 0, len(s.carts[mapKey]))
	for productID, quantity := range s.carts[mapKey] {
		lines = append(lines, cart.Line{ProductID: productID, Quantity: quantity})
	}
	return lines, nil
}

// Add folds quantity into the cart under the store's lock
func (s *MemoryCartStore) Add(ctx context.Context, key cart.Key, productID uuid.UUID, quantity int) error {
	mapKey, err := memoryKey(key)
	if err != nil {
		return err
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.carts[mapKey] == nil {
		s.carts[mapKey] = make(map[uuid.UUID]int)
	}
	s.carts[mapKey][productID] += quantity
	return nil
}

// SetQuantity overwrites the line's quantity; zero or less removes it
func (s *MemoryCartStore) SetQuantity(ctx context.Context, key cart.Key, productID uuid.UUID, quantity int) error {
	mapKey, err := memoryKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		delete(s.carts[mapKey], productID)
		return nil
	}
	if s.carts[mapKey] == nil {
		s.carts[mapKey] = make(map[uuid.UUID]int)
	}
	s.carts[mapKey][productID] = quantity
	return nil
}

// Remove deletes the line for the product
func (s *MemoryCartStore) Remove(ctx context.Context, key cart.Key, productID uuid.UUID) error {
	mapKey, err := memoryKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts[mapKey], productID)
	return nil
}

// Clear drops the whole cart
func (s *MemoryCartStore) Clear(ctx context.Context, key cart.Key) error {
	mapKey, err := memoryKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, mapKey)
	return nil
}

func memoryKey(key cart.Key) (string, error) {
	if err := key.Validate(); err != nil {
		return "", err
	}
	if key.IsAnonymous() {
		return "session:" + key.SessionID, nil
	}
	return "user:" + key.UserID.String(), nil
}

var _ cart.Repository = (*MemoryCartStore)(nil)
