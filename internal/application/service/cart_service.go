package service

import (
	"sync"

	"github.com/kanhaiyya/billing-api/internal/domain/entity"
	"github.com/kanhaiyya/billing-api/pkg/apperror"
)

// CartService keeps the in-progress selection for each table in memory.
// Carts are working state, not records: they are never persisted, and a
// restart starts every table empty. Lines keep insertion order so receipts
// list items in the order they were rung up; setting an existing item's
// quantity updates it in place without moving it.
type CartService struct {
	mu    sync.RWMutex
	carts map[string]*tableCart
}

type tableCart struct {
	quantities map[string]int
	order      []string
}

// NewCartService creates a new cart service
func NewCartService() *CartService {
	return &CartService{carts: make(map[string]*tableCart)}
}

// SetQuantity sets the quantity for an item on a table's cart.
// Quantity 0 removes the line (a no-op when the line does not exist);
// a negative quantity is rejected and leaves the cart untouched.
func (s *CartService) SetQuantity(tableID, itemName string, quantity int) error {
	if quantity < 0 {
		return apperror.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[tableID]
	if !ok {
		if quantity == 0 {
			return nil
		}
		cart = &tableCart{quantities: make(map[string]int)}
		s.carts[tableID] = cart
	}

	_, exists := cart.quantities[itemName]

	if quantity == 0 {
		if !exists {
			return nil
		}
		delete(cart.quantities, itemName)
		for i, name := range cart.order {
			if name == itemName {
				cart.order = append(cart.order[:i], cart.order[i+1:]...)
				break
			}
		}
		return nil
	}

	if !exists {
		cart.order = append(cart.order, itemName)
	}
	cart.quantities[itemName] = quantity
	return nil
}

// Snapshot returns a detached copy of a table's cart in insertion order.
// An unknown table yields an empty snapshot, not an error.
func (s *CartService) Snapshot(tableID string) entity.CartSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := entity.CartSnapshot{TableID: tableID}
	cart, ok := s.carts[tableID]
	if !ok {
		return snapshot
	}

	snapshot.Lines = make([]entity.CartLine, 0, len(cart.order))
	for _, name := range cart.order {
		snapshot.Lines = append(snapshot.Lines, entity.CartLine{
			ItemName: name,
			Quantity: cart.quantities[name],
		})
	}
	return snapshot
}

// Clear empties a table's cart. Clearing an unknown or already-empty
// table is a no-op.
func (s *CartService) Clear(tableID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, tableID)
}

// Tables returns the IDs of tables that currently have a non-empty cart.
func (s *CartService) Tables() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tables := make([]string, 0, len(s.carts))
	for id := range s.carts {
		tables = append(tables, id)
	}
	return tables
}
