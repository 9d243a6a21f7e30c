package cart

import (
	"math"
	"reflect"
	"testing"

	"github.com/starsoft-labs/nft-market-api/models"
)

func TestAddItemMergesQuantityFirstWriteWins(t *testing.T) {
	s := NewStore()
	s.AddItem(models.Item{ID: "1", Name: "orb", Price: 2.5}, 0)
	s.AddItem(models.Item{ID: "1", Name: "renamed orb", Price: 9.9}, 3)

	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("expected one line, got %v", items)
	}
	line := items[0]
	if line.Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", line.Quantity)
	}
	// The first add keeps the line's display fields and price.
	if line.Name != "orb" || line.Price != 2.5 {
		t.Fatalf("expected first write to win, got %+v", line)
	}
}

func TestAddItemRejectsInvalidInput(t *testing.T) {
	s := NewStore()
	s.AddItem(models.Item{ID: "keep", Price: 1}, 1)
	before := s.Items()

	s.AddItem(models.Item{ID: "   ", Price: 1}, 1)
	s.AddItem(models.Item{ID: "neg", Price: -0.5}, 1)

	if got := s.Items(); !reflect.DeepEqual(got, before) {
		t.Fatalf("invalid adds must not change state: %v vs %v", got, before)
	}
}

func TestAddItemPreservesInsertionOrder(t *testing.T) {
	s := NewStore()
	s.AddItem(models.Item{ID: "a", Price: 1}, 1)
	s.AddItem(models.Item{ID: "b", Price: 1}, 1)
	s.AddItem(models.Item{ID: "a", Price: 1}, 1) // bumps, keeps position

	items := s.Items()
	if len(items) != 2 || items[0].ID != "a" || items[1].ID != "b" {
		t.Fatalf("expected order [a b], got %v", items)
	}
	if items[0].Quantity != 2 {
		t.Fatalf("expected a at quantity 2, got %d", items[0].Quantity)
	}
}

func TestAddItemHugeQuantityStaysPositive(t *testing.T) {
	s := NewStore()
	s.AddItem(models.Item{ID: "x", Price: 1}, 1e30)

	line, ok := s.LineByID("x")
	if !ok {
		t.Fatalf("expected line present")
	}
	if line.Quantity < 1 {
		t.Fatalf("quantity must stay >= 1, got %d", line.Quantity)
	}
	if line.Quantity != math.MaxInt {
		t.Fatalf("expected clamp to MaxInt, got %d", line.Quantity)
	}
	if s.Count() < 1 {
		t.Fatalf("count must not go negative, got %d", s.Count())
	}
}

func TestDecreaseQuantityRemovesAtOne(t *testing.T) {
	s := NewStore()
	s.AddItem(models.Item{ID: "x", Price: 1}, 2)

	s.DecreaseQuantity("x")
	if line, ok := s.LineByID("x"); !ok || line.Quantity != 1 {
		t.Fatalf("expected quantity 1, got %v (ok=%v)", line, ok)
	}

	s.DecreaseQuantity("x")
	if _, ok := s.LineByID("x"); ok {
		t.Fatalf("expected line removed at quantity 1, still present")
	}
}

func TestIncreaseAndRemove(t *testing.T) {
	s := NewStore()
	s.AddItem(models.Item{ID: "x", Price: 2}, 1)

	s.IncreaseQuantity("x")
	s.IncreaseQuantity("unknown") // no-op
	if line, _ := s.LineByID("x"); line.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", line.Quantity)
	}

	s.RemoveItem("unknown") // no-op
	s.RemoveItem("")        // no-op
	s.RemoveItem("x")
	if len(s.Items()) != 0 {
		t.Fatalf("expected empty cart, got %v", s.Items())
	}
}

func TestSelectors(t *testing.T) {
	s := NewStore()
	s.AddItem(models.Item{ID: "a", Price: 2.5}, 2)
	s.AddItem(models.Item{ID: "b", Price: 1}, 3)

	if got := s.Count(); got != 5 {
		t.Fatalf("expected count 5, got %d", got)
	}
	if got := s.TotalValue(); got != 8 {
		t.Fatalf("expected total 8, got %v", got)
	}
	if _, ok := s.LineByID("missing"); ok {
		t.Fatalf("expected miss for unknown id")
	}
}

func TestHydrateReplacesState(t *testing.T) {
	s := NewStore()
	s.AddItem(models.Item{ID: "old", Price: 1}, 1)

	s.Hydrate([]any{
		map[string]any{"id": "x", "price": "2.7", "quantity": "3.9"},
	})

	items := s.Items()
	if len(items) != 1 || items[0].ID != "x" || items[0].Price != 2.7 || items[0].Quantity != 3 {
		t.Fatalf("unexpected hydrated state: %v", items)
	}

	s.Hydrate("garbage")
	if len(s.Items()) != 0 {
		t.Fatalf("expected empty cart after hydrating garbage, got %v", s.Items())
	}
}

func TestSubscribeNotifiesOnlyOnChange(t *testing.T) {
	s := NewStore()
	var calls int
	unsubscribe := s.Subscribe(func([]models.CartLine) { calls++ })

	s.AddItem(models.Item{ID: "a", Price: 1}, 1) // change
	s.AddItem(models.Item{ID: " ", Price: 1}, 1) // rejected, no notify
	s.RemoveItem("missing")                      // no-op, no notify
	s.Clear()                                    // change
	s.Clear()                                    // already empty, no notify

	if calls != 2 {
		t.Fatalf("expected 2 notifications, got %d", calls)
	}

	unsubscribe()
	s.AddItem(models.Item{ID: "b", Price: 1}, 1)
	if calls != 2 {
		t.Fatalf("expected no notifications after unsubscribe, got %d", calls)
	}
}

func TestListenerMayReadStore(t *testing.T) {
	s := NewStore()
	var seenCount int
	s.Subscribe(func([]models.CartLine) {
		seenCount = s.Count()
	})

	s.AddItem(models.Item{ID: "a", Price: 1}, 2)
	if seenCount != 2 {
		t.Fatalf("expected listener to read count 2, got %d", seenCount)
	}
}
