package collections

import "testing"

// TestListInsertForEach tests basic insertion and iteration order.
func TestListInsertForEach(t *testing.T) {
	l := NewList[int](4)
	l.Insert(10)
	l.Insert(20)
	l.Insert(30)

	var got []int
	l.ForEach(func(i int, v *int) { got = append(got, *v) })

	want := []int{10, 20, 30}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

// TestListRemoveAtIsLazy tests that RemoveAt tombstones without
// shrinking until Compact runs.
func TestListRemoveAtIsLazy(t *testing.T) {
	l := NewList[int](4)
	l.Insert(1)
	l.Insert(2)
	l.Insert(3)

	l.RemoveAt(1)

	if l.Len() != 2 {
		t.Fatalf("expected len 2 after lazy remove, got %d", l.Len())
	}

	var got []int
	l.ForEach(func(i int, v *int) { got = append(got, *v) })
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("expected [1 3], got %v", got)
	}
}

// TestListCompact tests that Compact closes gaps and frees capacity
// for reuse.
func TestListCompact(t *testing.T) {
	l := NewList[int](3)
	l.Insert(1)
	l.Insert(2)
	l.Insert(3)
	l.RemoveAt(0)
	l.Compact()

	if l.Len() != 2 {
		t.Fatalf("expected len 2 after compact, got %d", l.Len())
	}

	// Capacity freed by compaction should be usable again.
	l.Insert(4)
	var got []int
	l.ForEach(func(i int, v *int) { got = append(got, *v) })
	want := []int{2, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

// TestListOverflowPanics tests that inserting past capacity aborts.
func TestListOverflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on overflow")
		}
	}()

	l := NewList[int](1)
	l.Insert(1)
	l.Insert(2)
}
