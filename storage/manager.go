package storage

import (
	"sync"

	"gorm.io/gorm"

	"github.com/starsoft-labs/nft-market-api/cart"
)

// slotKeyPrefix versions the stored payload format so it can migrate later
// without clashing with older rows.
const slotKeyPrefix = "cart_v1:"

// Manager owns the per-guest cart stores and their persistence bridges.
// Stores are created lazily on first access and live for the rest of the
// process; each one gets exactly one bridge.
type Manager struct {
	newSlot func(key string) Slot

	mu    sync.Mutex
	carts map[string]*managedCart
}

type managedCart struct {
	store  *cart.Store
	bridge *Bridge
}

func NewManager(db *gorm.DB) *Manager {
	return NewManagerWithSlots(func(key string) Slot {
		return NewGormSlot(db, key)
	})
}

// NewManagerWithSlots builds a manager over a custom slot constructor.
func NewManagerWithSlots(newSlot func(key string) Slot) *Manager {
	return &Manager{newSlot: newSlot, carts: make(map[string]*managedCart)}
}

// Cart returns the store for one guest, creating and hydrating it on first
// use.
func (m *Manager) Cart(guestID string) *cart.Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if managed, ok := m.carts[guestID]; ok {
		return managed.store
	}

	store := cart.NewStore()
	bridge := NewBridge(store, m.newSlot(slotKeyPrefix+guestID))
	bridge.Start()
	m.carts[guestID] = &managedCart{store: store, bridge: bridge}
	return store
}

// Shutdown detaches every bridge.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, managed := range m.carts {
		managed.bridge.Stop()
	}
}
