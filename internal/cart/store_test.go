package cart

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"vesta-storefront/internal/session"
)

type memoryStore struct {
	values map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: make(map[string][]byte)}
}

func (m *memoryStore) Get(_ context.Context, sessionID, key string, dest interface{}) error {
	raw, ok := m.values[sessionID+":"+key]
	if !ok {
		return session.ErrNoValue
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryStore) Set(_ context.Context, sessionID, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[sessionID+":"+key] = raw
	return nil
}

func (m *memoryStore) Delete(_ context.Context, sessionID, key string) error {
	delete(m.values, sessionID+":"+key)
	return nil
}

func (m *memoryStore) Destroy(_ context.Context, sessionID string) error {
	for k := range m.values {
		if strings.HasPrefix(k, sessionID+":") {
			delete(m.values, k)
		}
	}
	return nil
}

func price(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestRepeatedAddsAccumulateQuantity(t *testing.T) {
	store := NewStore(newMemoryStore())
	ctx := context.Background()

	item := LineItem{ProductID: "P1", Name: "Seguro Hogar", UnitPrice: price("12.50")}
	for i := 0; i < 3; i++ {
		if err := store.Add(ctx, "s1", item); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	items, err := store.Items(ctx, "s1")
	if err != nil {
		t.Fatalf("items failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one line, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", items[0].Quantity)
	}
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	store := NewStore(newMemoryStore())
	ctx := context.Background()

	for _, id := range []string{"P3", "P1", "P2"} {
		if err := store.Add(ctx, "s1", LineItem{ProductID: id, UnitPrice: price("1")}); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	items, err := store.Items(ctx, "s1")
	if err != nil {
		t.Fatalf("items failed: %v", err)
	}

	got := []string{items[0].ProductID, items[1].ProductID, items[2].ProductID}
	want := []string{"P3", "P1", "P2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestRemoveOutOfBoundsIsNoOp(t *testing.T) {
	store := NewStore(newMemoryStore())
	ctx := context.Background()

	if err := store.Add(ctx, "s1", LineItem{ProductID: "P1", UnitPrice: price("5")}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	for _, index := range []int{-1, 1, 99} {
		if err := store.Remove(ctx, "s1", index); err != nil {
			t.Fatalf("remove(%d) returned error: %v", index, err)
		}
	}

	items, err := store.Items(ctx, "s1")
	if err != nil {
		t.Fatalf("items failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("cart length changed: %d", len(items))
	}
}

func TestRemoveDropsItemAtPosition(t *testing.T) {
	store := NewStore(newMemoryStore())
	ctx := context.Background()

	for _, id := range []string{"P1", "P2", "P3"} {
		if err := store.Add(ctx, "s1", LineItem{ProductID: id, UnitPrice: price("1")}); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	if err := store.Remove(ctx, "s1", 1); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	items, _ := store.Items(ctx, "s1")
	if len(items) != 2 || items[0].ProductID != "P1" || items[1].ProductID != "P3" {
		t.Fatalf("unexpected cart after remove: %+v", items)
	}
}

func TestTotalSumsSubtotals(t *testing.T) {
	store := NewStore(newMemoryStore())
	ctx := context.Background()

	total, err := store.Total(ctx, "s1")
	if err != nil {
		t.Fatalf("total failed: %v", err)
	}
	if !total.IsZero() {
		t.Fatalf("expected zero total for empty cart, got %s", total)
	}

	if err := store.Add(ctx, "s1", LineItem{ProductID: "P1", UnitPrice: price("12.50")}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := store.Add(ctx, "s1", LineItem{ProductID: "P1", UnitPrice: price("12.50")}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := store.Add(ctx, "s1", LineItem{ProductID: "P2", UnitPrice: price("0.99")}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	total, err = store.Total(ctx, "s1")
	if err != nil {
		t.Fatalf("total failed: %v", err)
	}
	if !total.Equal(price("25.99")) {
		t.Fatalf("expected total 25.99, got %s", total)
	}
}

func TestSessionsNeverObserveEachOther(t *testing.T) {
	store := NewStore(newMemoryStore())
	ctx := context.Background()

	if err := store.Add(ctx, "s1", LineItem{ProductID: "P1", UnitPrice: price("3")}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	items, err := store.Items(ctx, "s2")
	if err != nil {
		t.Fatalf("items failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("session s2 sees s1 items: %+v", items)
	}
}

func TestClearEmptiesCart(t *testing.T) {
	store := NewStore(newMemoryStore())
	ctx := context.Background()

	if err := store.Add(ctx, "s1", LineItem{ProductID: "P1", UnitPrice: price("3")}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := store.Clear(ctx, "s1"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	items, _ := store.Items(ctx, "s1")
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %+v", items)
	}
}

func TestSubtotalNeverNegative(t *testing.T) {
	item := LineItem{ProductID: "P1", UnitPrice: price("10"), Quantity: 0}
	if !item.Subtotal().IsZero() {
		t.Fatalf("expected zero subtotal for zero quantity, got %s", item.Subtotal())
	}

	item = LineItem{ProductID: "P1", UnitPrice: price("-4"), Quantity: 2}
	if item.Subtotal().IsNegative() {
		t.Fatalf("subtotal went negative: %s", item.Subtotal())
	}
}
