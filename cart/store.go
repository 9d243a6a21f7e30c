package cart

import (
	"strings"
	"sync"

	"github.com/starsoft-labs/nft-market-api/models"
)

// Listener receives a snapshot of the cart lines after every state change.
// Listeners are invoked outside the store lock, so they may call back into
// the store's read methods.
type Listener func(lines []models.CartLine)

// Store is the single writer for one guest's cart. All mutations go through
// reducer-style methods; invalid input leaves the state untouched and
// produces no notification. Reads return copies, so callers never observe a
// partially applied change.
type Store struct {
	mu        sync.Mutex
	lines     []models.CartLine
	listeners map[int]Listener
	nextID    int
}

func NewStore() *Store {
	return &Store{listeners: make(map[int]Listener)}
}

// Subscribe registers a listener for state changes and returns the function
// that detaches it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// AddItem appends a new line or bumps the quantity of an existing one. The
// first add wins the line's position and display fields; later adds of the
// same id only increase its quantity. A blank id or invalid price rejects
// the whole action.
func (s *Store) AddItem(item models.Item, quantity float64) {
	id := strings.TrimSpace(item.ID)
	price, ok := normalizePrice(item.Price)
	if id == "" || !ok {
		return
	}
	qty := normalizeQuantity(quantity)

	s.mutate(func() bool {
		if line := s.findLocked(id); line != nil {
			line.Quantity += qty
			return true
		}
		s.lines = append(s.lines, models.CartLine{
			ID:          id,
			Name:        item.Name,
			Description: item.Description,
			Price:       price,
			Image:       item.Image,
			Quantity:    qty,
		})
		return true
	})
}

// RemoveItem drops the line with the matching id, if any.
func (s *Store) RemoveItem(id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}

	s.mutate(func() bool {
		for i, line := range s.lines {
			if line.ID == id {
				s.lines = append(s.lines[:i], s.lines[i+1:]...)
				return true
			}
		}
		return false
	})
}

// IncreaseQuantity bumps the matching line's quantity by exactly 1.
func (s *Store) IncreaseQuantity(id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}

	s.mutate(func() bool {
		line := s.findLocked(id)
		if line == nil {
			return false
		}
		line.Quantity++
		return true
	})
}

// DecreaseQuantity lowers the matching line's quantity by 1. A line at
// quantity 1 is removed entirely; quantity never reaches 0.
func (s *Store) DecreaseQuantity(id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}

	s.mutate(func() bool {
		for i, line := range s.lines {
			if line.ID != id {
				continue
			}
			if line.Quantity <= 1 {
				s.lines = append(s.lines[:i], s.lines[i+1:]...)
			} else {
				s.lines[i].Quantity--
			}
			return true
		}
		return false
	})
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mutate(func() bool {
		if len(s.lines) == 0 {
			return false
		}
		s.lines = nil
		return true
	})
}

// Hydrate replaces the whole cart with the sanitized derivation of an
// untrusted payload, typically the raw array read back from storage.
func (s *Store) Hydrate(raw any) {
	lines := SanitizeLines(raw)

	s.mutate(func() bool {
		s.lines = lines
		return true
	})
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

// Count is the total number of units in the cart.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// TotalValue is the cart's financial total (price times quantity, summed).
func (s *Store) TotalValue() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, line := range s.lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// LineByID looks up a single line by id.
func (s *Store) LineByID(id string) (models.CartLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, line := range s.lines {
		if line.ID == id {
			return line, true
		}
	}
	return models.CartLine{}, false
}

// mutate runs one reducer step under the lock and, when it reports a change,
// notifies listeners with a snapshot after the lock is released.
func (s *Store) mutate(step func() bool) {
	s.mu.Lock()
	changed := step()
	var snapshot []models.CartLine
	var notify []Listener
	if changed {
		snapshot = s.copyLocked()
		for _, fn := range s.listeners {
			notify = append(notify, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range notify {
		fn(snapshot)
	}
}

func (s *Store) findLocked(id string) *models.CartLine {
	for i := range s.lines {
		if s.lines[i].ID == id {
			return &s.lines[i]
		}
	}
	return nil
}

func (s *Store) copyLocked() []models.CartLine {
	snapshot := make([]models.CartLine, len(s.lines))
	copy(snapshot, s.lines)
	return snapshot
}
