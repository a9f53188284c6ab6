package cart

import (
	"encoding/json"
	"io"
	"log"

	"github.com/DanillS/doors-web/internal/domain"
	"github.com/DanillS/doors-web/internal/localstore"
)

// StorageKey is the local-store key the cart snapshot persists under.
const StorageKey = "door-cart"

// Store owns the in-session cart. All mutation goes through its
// methods; every mutation persists the full snapshot. A Store is not
// safe for concurrent use, matching the single-writer ownership of the
// storefront session.
type Store struct {
	kv         localstore.KV
	logger     *log.Logger
	lines      []domain.CartLine
	restoreErr error
}

// NewStore builds a Store and restores the persisted snapshot. A
// corrupt snapshot resets the cart to empty; the decode error is logged
// and kept for callers that want to surface a warning (RestoreErr).
func NewStore(kv localstore.KV, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Store{kv: kv, logger: logger}
	s.restore()
	return s
}

// RestoreErr reports the decode error from the initial restore, if any.
// A non-nil value means the persisted cart was discarded.
func (s *Store) RestoreErr() error {
	return s.restoreErr
}

// Add puts quantity units of door into the cart. If a line for the same
// door ID already exists its quantity is incremented and the line total
// recomputed; otherwise a new line is appended. Quantity is expected to
// be positive; callers are responsible for not passing non-positive
// values.
func (s *Store) Add(door domain.Door, quantity int) {
	s.AddVariant(door, nil, quantity)
}

// AddVariant is Add with an explicitly selected color variant recorded
// on newly created lines.
func (s *Store) AddVariant(door domain.Door, variant *domain.ColorVariant, quantity int) {
	for i := range s.lines {
		if s.lines[i].ID == door.ID {
			s.lines[i].Quantity += quantity
			s.lines[i].TotalPrice = door.Price * int64(s.lines[i].Quantity)
			s.persist()
			return
		}
	}
	s.lines = append(s.lines, domain.CartLine{
		Door:            door,
		Quantity:        quantity,
		TotalPrice:      door.Price * int64(quantity),
		SelectedVariant: variant,
	})
	s.persist()
}

// Remove deletes the line for doorID. Removing an absent door is a no-op.
func (s *Store) Remove(doorID int64) {
	for i := range s.lines {
		if s.lines[i].ID == doorID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			break
		}
	}
	s.persist()
}

// UpdateQuantity sets the quantity for doorID, recomputing the line
// total. A quantity below 1 removes the line entirely. Absent IDs are a
// no-op.
func (s *Store) UpdateQuantity(doorID int64, quantity int) {
	if quantity < 1 {
		s.Remove(doorID)
		return
	}
	for i := range s.lines {
		if s.lines[i].ID == doorID {
			s.lines[i].Quantity = quantity
			s.lines[i].TotalPrice = s.lines[i].Price * int64(quantity)
			break
		}
	}
	s.persist()
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.lines = nil
	s.persist()
}

// TotalItems is the sum of all line quantities.
func (s *Store) TotalItems() int {
	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice is the sum of unit price times quantity over all lines.
func (s *Store) TotalPrice() int64 {
	var total int64
	for _, line := range s.lines {
		total += line.Price * int64(line.Quantity)
	}
	return total
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) restore() {
	raw, err := s.kv.Get(StorageKey)
	if err != nil {
		s.logger.Printf("cart: read %s: %v", StorageKey, err)
		return
	}
	if len(raw) == 0 {
		return
	}
	lines, err := decodeLines(raw)
	if err != nil {
		s.restoreErr = &localstore.DecodeError{Key: StorageKey, Err: err}
		s.logger.Printf("cart: %v, starting empty", s.restoreErr)
		return
	}
	s.lines = lines
}

func (s *Store) persist() {
	raw, err := json.Marshal(s.lines)
	if err != nil {
		s.logger.Printf("cart: encode snapshot: %v", err)
		return
	}
	if err := s.kv.Put(StorageKey, raw); err != nil {
		s.logger.Printf("cart: persist %s: %v", StorageKey, err)
	}
}
