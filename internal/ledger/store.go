package ledger

import (
	"encoding/json"
	"io"
	"log"
	"time"

	"github.com/DanillS/doors-web/internal/domain"
	"github.com/DanillS/doors-web/internal/localstore"
)

// Local-store keys for the two independently persisted collections.
const (
	FavoritesKey = "door-favorites"
	OrdersKey    = "door-orders"
)

// OrderDraft is the caller-supplied part of an order. ID, CreatedAt and
// the default status are assigned by AddOrder.
type OrderDraft struct {
	Items         []domain.CartLine `json:"items"`
	TotalAmount   int64             `json:"totalAmount"`
	PaymentMethod string            `json:"paymentMethod,omitempty"`
	Status        string            `json:"status,omitempty"`
}

// Store owns the liked-doors set and the append-only order ledger.
// Favorites and orders persist under separate keys and are restored
// independently; a corrupt snapshot resets just its own collection.
// Not safe for concurrent use.
type Store struct {
	kv     localstore.KV
	logger *log.Logger
	now    func() time.Time

	favorites  []domain.Door
	orders     []domain.Order
	lastID     int64
	restoreErr error
}

// NewStore builds a Store and restores both collections.
func NewStore(kv localstore.KV, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Store{kv: kv, logger: logger, now: time.Now}
	s.restore()
	return s
}

// RestoreErr reports the first decode error hit during restore, if any.
func (s *Store) RestoreErr() error {
	return s.restoreErr
}

// ToggleFavorite removes door from the favorites when present, adds it
// when absent. Calling it twice returns the set to its original state.
func (s *Store) ToggleFavorite(door domain.Door) {
	for i := range s.favorites {
		if s.favorites[i].ID == door.ID {
			s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
			s.persistFavorites()
			return
		}
	}
	s.favorites = append(s.favorites, door)
	s.persistFavorites()
}

// IsFavorite reports membership by door ID.
func (s *Store) IsFavorite(doorID int64) bool {
	for i := range s.favorites {
		if s.favorites[i].ID == doorID {
			return true
		}
	}
	return false
}

// RemoveFromFavorites drops doorID from the set; absent IDs are a no-op.
func (s *Store) RemoveFromFavorites(doorID int64) {
	for i := range s.favorites {
		if s.favorites[i].ID == doorID {
			s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
			break
		}
	}
	s.persistFavorites()
}

// ClearFavorites empties the set.
func (s *Store) ClearFavorites() {
	s.favorites = nil
	s.persistFavorites()
}

// Favorites returns a copy of the favorite doors in insertion order.
func (s *Store) Favorites() []domain.Door {
	out := make([]domain.Door, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// AddOrder builds an Order from the draft, prepends it to the ledger
// and persists. The ID is the creation time in milliseconds, bumped
// when two orders land in the same millisecond so IDs stay strictly
// increasing. Status defaults to pending when the draft leaves it empty.
func (s *Store) AddOrder(draft OrderDraft) domain.Order {
	created := s.now()
	id := created.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	status := draft.Status
	if status == "" {
		status = domain.OrderStatusPending
	}

	order := domain.Order{
		ID:            id,
		Items:         draft.Items,
		TotalAmount:   draft.TotalAmount,
		PaymentMethod: draft.PaymentMethod,
		Status:        status,
		CreatedAt:     created,
	}
	s.orders = append([]domain.Order{order}, s.orders...)
	s.persistOrders()
	return order
}

// Orders returns a copy of the ledger, newest first.
func (s *Store) Orders() []domain.Order {
	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Order returns the ledger entry with the given ID.
func (s *Store) Order(id int64) (*domain.Order, error) {
	for i := range s.orders {
		if s.orders[i].ID == id {
			order := s.orders[i]
			return &order, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) restore() {
	if raw := s.read(FavoritesKey); len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.favorites); err != nil {
			s.favorites = nil
			s.keepRestoreErr(FavoritesKey, err)
		}
	}
	if raw := s.read(OrdersKey); len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.orders); err != nil {
			s.orders = nil
			s.keepRestoreErr(OrdersKey, err)
		}
	}
	for _, o := range s.orders {
		if o.ID > s.lastID {
			s.lastID = o.ID
		}
	}
}

func (s *Store) keepRestoreErr(key string, err error) {
	decodeErr := &localstore.DecodeError{Key: key, Err: err}
	s.logger.Printf("ledger: %v, starting empty", decodeErr)
	if s.restoreErr == nil {
		s.restoreErr = decodeErr
	}
}

func (s *Store) read(key string) []byte {
	raw, err := s.kv.Get(key)
	if err != nil {
		s.logger.Printf("ledger: read %s: %v", key, err)
		return nil
	}
	return raw
}

func (s *Store) persistFavorites() {
	s.persist(FavoritesKey, s.favorites)
}

func (s *Store) persistOrders() {
	s.persist(OrdersKey, s.orders)
}

func (s *Store) persist(key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.logger.Printf("ledger: encode %s: %v", key, err)
		return
	}
	if err := s.kv.Put(key, raw); err != nil {
		s.logger.Printf("ledger: persist %s: %v", key, err)
	}
}
