package collections

import "testing"

// TestHashMapInsertLookup tests basic insert/lookup round-tripping.
func TestHashMapInsertLookup(t *testing.T) {
	m := NewHashMap[string](8)

	m.Insert(1, "alice")
	m.Insert(2, "bob")

	if v := m.Lookup(1); v == nil || *v != "alice" {
		t.Fatalf("expected alice, got %v", v)
	}
	if v := m.Lookup(2); v == nil || *v != "bob" {
		t.Fatalf("expected bob, got %v", v)
	}
	if v := m.Lookup(3); v != nil {
		t.Fatalf("expected nil for missing key, got %v", v)
	}
	if m.Len() != 2 {
		t.Fatalf("expected len 2, got %d", m.Len())
	}
}

// TestHashMapLinearProbing tests that colliding keys land in distinct
// slots via linear probing.
func TestHashMapLinearProbing(t *testing.T) {
	m := NewHashMap[int](4)

	// Keys 1 and 5 collide at slot 1 in a 4-slot table.
	m.Insert(1, 100)
	m.Insert(5, 500)

	if v := m.Lookup(1); v == nil || *v != 100 {
		t.Fatalf("expected 100, got %v", v)
	}
	if v := m.Lookup(5); v == nil || *v != 500 {
		t.Fatalf("expected 500, got %v", v)
	}
}

// TestHashMapRemove tests that removal frees the slot and lookups miss
// afterward.
func TestHashMapRemove(t *testing.T) {
	m := NewHashMap[int](4)
	m.Insert(7, 1)
	m.Remove(7)

	if v := m.Lookup(7); v != nil {
		t.Fatalf("expected nil after remove, got %v", v)
	}
	if m.Len() != 0 {
		t.Fatalf("expected len 0 after remove, got %d", m.Len())
	}

	// Slot should be reusable.
	m.Insert(7, 2)
	if v := m.Lookup(7); v == nil || *v != 2 {
		t.Fatalf("expected 2 after reinsert, got %v", v)
	}
}

// TestHashMapOverflowPanics tests that inserting past capacity aborts.
func TestHashMapOverflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on overflow")
		}
	}()

	m := NewHashMap[int](1)
	m.Insert(1, 1)
	m.Insert(2, 2)
}

// TestHashMapForEachSkipsEmpty tests that ForEach only visits occupied
// slots.
func TestHashMapForEachSkipsEmpty(t *testing.T) {
	m := NewHashMap[int](8)
	m.Insert(3, 30)
	m.Insert(4, 40)
	m.Remove(4)

	seen := map[uint64]int{}
	m.ForEach(func(key uint64, v *int) {
		seen[key] = *v
	})

	if len(seen) != 1 || seen[3] != 30 {
		t.Fatalf("expected only key 3, got %v", seen)
	}
}
