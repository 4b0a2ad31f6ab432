package cart

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"vesta-storefront/internal/session"
)

// sessionKey is the session attribute the serialized cart lives under.
const sessionKey = "carrito"

// Store is the per-session cart. All state lives in the injected session
// store; every operation takes the session id explicitly. Two racing requests
// of the same session resolve last-write-wins on the underlying store, which
// is acceptable for a browser-driven client.
type Store struct {
	sessions session.Store
}

func NewStore(sessions session.Store) *Store {
	return &Store{sessions: sessions}
}

func (s *Store) load(ctx context.Context, sessionID string) ([]LineItem, error) {
	var items []LineItem
	if err := s.sessions.Get(ctx, sessionID, sessionKey, &items); err != nil {
		if errors.Is(err, session.ErrNoValue) {
			return []LineItem{}, nil
		}
		return nil, err
	}
	return items, nil
}

func (s *Store) save(ctx context.Context, sessionID string, items []LineItem) error {
	return s.sessions.Set(ctx, sessionID, sessionKey, items)
}

// Add puts one unit of the product in the cart. An existing line for the same
// product gains quantity instead of duplicating the row.
func (s *Store) Add(ctx context.Context, sessionID string, item LineItem) error {
	items, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}

	found := false
	for idx := range items {
		if items[idx].ProductID == item.ProductID {
			items[idx].Quantity++
			found = true
			break
		}
	}

	if !found {
		item.Quantity = 1
		items = append(items, item)
	}

	return s.save(ctx, sessionID, items)
}

// Remove drops the line at the given display position. An out-of-bounds index
// is a no-op, not an error.
func (s *Store) Remove(ctx context.Context, sessionID string, index int) error {
	items, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}

	if index < 0 || index >= len(items) {
		return nil
	}

	items = append(items[:index], items[index+1:]...)
	return s.save(ctx, sessionID, items)
}

// Items returns a snapshot of the cart in insertion order.
func (s *Store) Items(ctx context.Context, sessionID string) ([]LineItem, error) {
	return s.load(ctx, sessionID)
}

// Total sums the subtotals of the current cart contents.
func (s *Store) Total(ctx context.Context, sessionID string) (decimal.Decimal, error) {
	items, err := s.load(ctx, sessionID)
	if err != nil {
		return decimal.Zero, err
	}
	return Total(items), nil
}

// Clear empties the cart. Called only after a confirmed checkout or on
// explicit session termination.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	return s.save(ctx, sessionID, []LineItem{})
}
