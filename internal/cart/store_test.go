package cart

import (
	"errors"
	"testing"

	"github.com/DanillS/doors-web/internal/domain"
	"github.com/DanillS/doors-web/internal/localstore"
)

type memKV struct {
	data   map[string][]byte
	getErr error
	putErr error
	puts   int
}

func newMemKV() *memKV {
	return &memKV{data: map[string][]byte{}}
}

func (m *memKV) Get(key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.data[key], nil
}

func (m *memKV) Put(key string, value []byte) error {
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func door(id int64, price int64) domain.Door {
	return domain.Door{ID: id, Name: "Дверь", Price: price, IsActive: true}
}

func TestAddMergesSameDoor(t *testing.T) {
	s := NewStore(newMemKV(), nil)
	s.Add(door(1, 5000), 2)
	s.Add(door(1, 5000), 3)

	lines := s.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", lines[0].Quantity)
	}
	if lines[0].TotalPrice != 25000 {
		t.Fatalf("expected line total 25000, got %d", lines[0].TotalPrice)
	}
}

func TestEndToEndScenario(t *testing.T) {
	s := NewStore(newMemKV(), nil)
	if s.TotalItems() != 0 || s.TotalPrice() != 0 {
		t.Fatalf("expected empty cart totals, got %d/%d", s.TotalItems(), s.TotalPrice())
	}

	s.Add(door(1, 5000), 2)
	if s.TotalItems() != 2 {
		t.Fatalf("expected 2 items, got %d", s.TotalItems())
	}
	if s.TotalPrice() != 10000 {
		t.Fatalf("expected total 10000, got %d", s.TotalPrice())
	}

	s.UpdateQuantity(1, 1)
	if s.TotalPrice() != 5000 {
		t.Fatalf("expected total 5000, got %d", s.TotalPrice())
	}

	s.Remove(1)
	if len(s.Lines()) != 0 || s.TotalItems() != 0 || s.TotalPrice() != 0 {
		t.Fatalf("expected empty cart after remove")
	}
}

func TestUpdateQuantityBelowOneRemoves(t *testing.T) {
	for _, qty := range []int{0, -1} {
		s := NewStore(newMemKV(), nil)
		s.Add(door(1, 5000), 2)
		s.UpdateQuantity(1, qty)
		if len(s.Lines()) != 0 {
			t.Fatalf("quantity %d: expected line removed", qty)
		}
	}
}

func TestUpdateQuantityAbsentIDIsNoop(t *testing.T) {
	s := NewStore(newMemKV(), nil)
	s.Add(door(1, 5000), 2)
	s.UpdateQuantity(99, 4)
	if got := s.TotalItems(); got != 2 {
		t.Fatalf("expected 2 items, got %d", got)
	}
}

func TestRemoveAbsentIDIsNoop(t *testing.T) {
	s := NewStore(newMemKV(), nil)
	s.Add(door(1, 5000), 1)
	s.Remove(99)
	if len(s.Lines()) != 1 {
		t.Fatalf("expected line untouched")
	}
}

func TestAddVariantRecordsSelection(t *testing.T) {
	s := NewStore(newMemKV(), nil)
	v := &domain.ColorVariant{Name: "Орех", Hex: "#8B5A2B", IsActive: true}
	s.AddVariant(door(1, 5000), v, 1)

	lines := s.Lines()
	if lines[0].SelectedVariant == nil || lines[0].SelectedVariant.Name != "Орех" {
		t.Fatalf("expected selected variant on line, got %+v", lines[0])
	}
}

func TestMutationsPersistAndRestore(t *testing.T) {
	kv := newMemKV()
	s := NewStore(kv, nil)
	s.Add(door(1, 5000), 2)
	s.Add(door(2, 8900), 1)
	s.UpdateQuantity(1, 3)

	if kv.puts != 3 {
		t.Fatalf("expected 3 persisted snapshots, got %d", kv.puts)
	}

	restored := NewStore(kv, nil)
	if err := restored.RestoreErr(); err != nil {
		t.Fatalf("unexpected restore error: %v", err)
	}
	if restored.TotalItems() != 4 {
		t.Fatalf("expected 4 items after restore, got %d", restored.TotalItems())
	}
	if restored.TotalPrice() != 3*5000+8900 {
		t.Fatalf("unexpected restored total %d", restored.TotalPrice())
	}
}

func TestRestoreCorruptSnapshotStartsEmpty(t *testing.T) {
	kv := newMemKV()
	kv.data[StorageKey] = []byte(`{"not":"a list"`)

	s := NewStore(kv, nil)
	if len(s.Lines()) != 0 {
		t.Fatalf("expected empty cart")
	}
	var decodeErr *localstore.DecodeError
	if !errors.As(s.RestoreErr(), &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", s.RestoreErr())
	}
	if decodeErr.Key != StorageKey {
		t.Fatalf("unexpected key %q", decodeErr.Key)
	}
}

func TestRestoreLegacyClientSnapshot(t *testing.T) {
	kv := newMemKV()
	// The old client serialized numbers loosely: floats and strings.
	kv.data[StorageKey] = []byte(`[
		{"id": 3, "name": "Дверь раздвижная 'Токио'", "price": 15600.0,
		 "quantity": "2", "totalPrice": "31200", "images": ["/doors/door3.jpg"]}
	]`)

	s := NewStore(kv, nil)
	if err := s.RestoreErr(); err != nil {
		t.Fatalf("unexpected restore error: %v", err)
	}
	lines := s.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 2 || lines[0].Price != 15600 {
		t.Fatalf("unexpected line %+v", lines[0])
	}
	if s.TotalPrice() != 31200 {
		t.Fatalf("expected total 31200, got %d", s.TotalPrice())
	}
}

func TestPersistFailureLeavesStateUsable(t *testing.T) {
	kv := newMemKV()
	kv.putErr = errors.New("disk full")

	s := NewStore(kv, nil)
	s.Add(door(1, 5000), 1)
	if s.TotalItems() != 1 {
		t.Fatalf("expected in-memory state despite persist failure")
	}
}
