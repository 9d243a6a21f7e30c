package storage

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/starsoft-labs/nft-market-api/cart"
	"github.com/starsoft-labs/nft-market-api/models"
)

// envelope is the serialized shape kept in the durable slot. The items key
// is the contract: a stored payload without it is treated as empty on load.
type envelope struct {
	Items []models.CartLine `json:"items"`
}

// Bridge mirrors one cart store into one durable slot. Mirroring is one-way
// and best-effort: the initial load feeds the slot's raw contents through
// the cart sanitizer, and every later store change is written back only when
// the serialized payload differs from the last successful write.
type Bridge struct {
	store *cart.Store
	slot  Slot

	mu          sync.Mutex
	lastWritten string
	detach      func()
}

func NewBridge(store *cart.Store, slot Slot) *Bridge {
	return &Bridge{store: store, slot: slot}
}

// Start performs the one-time initial load, then attaches the store
// subscription. Hydration is skipped entirely when the slot has nothing
// usable, so an empty slot causes no state transition at all.
func (b *Bridge) Start() {
	if raw := b.loadRaw(); len(raw) > 0 {
		b.store.Hydrate(raw)
	}

	b.mu.Lock()
	b.lastWritten = serialize(b.store.Items())
	b.mu.Unlock()

	b.detach = b.store.Subscribe(b.persist)
}

// Stop detaches the store subscription. The bridge holds exactly one
// subscription between Start and Stop.
func (b *Bridge) Stop() {
	if b.detach != nil {
		b.detach()
		b.detach = nil
	}
}

// loadRaw reads the slot and unwraps the items array. Missing, unreadable,
// or structurally invalid payloads all come back as empty, never as an
// error.
func (b *Bridge) loadRaw() []any {
	payload, ok := b.slot.Read()
	if !ok || payload == "" {
		return nil
	}

	var decoded any
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return nil
	}
	record, ok := decoded.(map[string]any)
	if !ok {
		return nil
	}
	items, ok := record["items"].([]any)
	if !ok {
		return nil
	}
	return items
}

// persist re-reads the store rather than trusting the notification snapshot,
// so overlapping notifications cannot write a stale state last.
func (b *Bridge) persist([]models.CartLine) {
	payload := serialize(b.store.Items())

	b.mu.Lock()
	defer b.mu.Unlock()
	if payload == b.lastWritten {
		return
	}
	if err := b.slot.Write(payload); err != nil {
		// Best-effort: quota errors, disabled storage and the like must
		// never reach the cart's callers.
		log.Printf("⚠️ Cart persistence write failed: %v", err)
		return
	}
	b.lastWritten = payload
}

func serialize(lines []models.CartLine) string {
	if lines == nil {
		lines = []models.CartLine{}
	}
	data, err := json.Marshal(envelope{Items: lines})
	if err != nil {
		return `{"items":[]}`
	}
	return string(data)
}
