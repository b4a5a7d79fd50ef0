package collections

import "testing"

// TestCircularBufferPushPop tests basic FIFO ordering.
func TestCircularBufferPushPop(t *testing.T) {
	buf := NewCircularBuffer[int](4)

	buf.PushBack(1)
	buf.PushBack(2)
	buf.PushBack(3)

	if buf.Len() != 3 {
		t.Fatalf("expected len 3, got %d", buf.Len())
	}
	if got := buf.PopFront(); got != 1 {
		t.Errorf("expected front 1, got %d", got)
	}
	if got := buf.PopFront(); got != 2 {
		t.Errorf("expected front 2, got %d", got)
	}
	if buf.Len() != 1 {
		t.Fatalf("expected len 1, got %d", buf.Len())
	}
}

// TestCircularBufferWrap tests that the buffer wraps around its
// backing array without losing ordering.
func TestCircularBufferWrap(t *testing.T) {
	buf := NewCircularBuffer[int](3)

	buf.PushBack(1)
	buf.PushBack(2)
	buf.PopFront()
	buf.PushBack(3)
	buf.PushBack(4)

	if buf.Len() != 3 {
		t.Fatalf("expected len 3, got %d", buf.Len())
	}
	want := []int{2, 3, 4}
	for i, w := range want {
		if got := buf.At(i); got != w {
			t.Errorf("At(%d) = %d, want %d", i, got, w)
		}
	}
}

// TestCircularBufferOverflowPanics tests that pushing past capacity
// aborts, per the buffer-exhaustion error handling design.
func TestCircularBufferOverflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on overflow")
		}
	}()

	buf := NewCircularBuffer[int](2)
	buf.PushBack(1)
	buf.PushBack(2)
	buf.PushBack(3)
}

// TestCircularBufferFull tests the Full predicate at capacity boundaries.
func TestCircularBufferFull(t *testing.T) {
	buf := NewCircularBuffer[int](2)
	if buf.Full() {
		t.Fatal("empty buffer should not be full")
	}
	buf.PushBack(1)
	buf.PushBack(2)
	if !buf.Full() {
		t.Fatal("buffer at capacity should be full")
	}
	buf.PopFront()
	if buf.Full() {
		t.Fatal("buffer below capacity should not be full")
	}
}
