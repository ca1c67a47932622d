package tile

import "testing"

func ids(ts []*Tile) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}

func TestQueueFIFO(t *testing.T) {
	a, b, c := New("a", 1, 1, Normal), New("b", 1, 1, Normal), New("c", 1, 1, Normal)
	q := NewQueue([]*Tile{a, b, c})

	if q.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", q.Len())
	}
	for _, want := range []*Tile{a, b, c} {
		got, ok := q.PopFront()
		if !ok || got != want {
			t.Fatalf("PopFront() = %v, %v; want %v", got, ok, want)
		}
	}
	if _, ok := q.PopFront(); ok {
		t.Error("PopFront() on empty queue should fail")
	}
	if _, ok := q.PeekFront(); ok {
		t.Error("PeekFront() on empty queue should fail")
	}
}

func TestQueuePushFront(t *testing.T) {
	a, b, c := New("a", 1, 1, Normal), New("b", 1, 1, Normal), New("c", 1, 1, Normal)
	q := NewQueue([]*Tile{a, b})

	// push onto a queue with no consumed head
	q.PushFront(c)
	if got := ids(q.Tiles()); len(got) != 3 || got[0] != "c" || got[1] != "a" || got[2] != "b" {
		t.Fatalf("Tiles() = %v, want [c a b]", got)
	}

	// push into the slot freed by PopFront
	front, _ := q.PopFront()
	q.PushFront(front)
	if f, _ := q.PeekFront(); f != c {
		t.Errorf("PeekFront() = %v, want c", f)
	}

	q.PushBack(New("d", 1, 1, Normal))
	if got := ids(q.Tiles()); got[len(got)-1] != "d" {
		t.Errorf("PushBack did not append: %v", got)
	}
}

func TestQueueDoesNotAliasInput(t *testing.T) {
	in := []*Tile{New("a", 1, 1, Normal), New("b", 1, 1, Normal)}
	q := NewQueue(in)
	q.PopFront()
	q.PushFront(New("x", 1, 1, Normal))

	if in[0].ID != "a" || in[1].ID != "b" {
		t.Errorf("input slice was modified: %v", ids(in))
	}
}

func TestQueueZeroValue(t *testing.T) {
	var q Queue
	if !q.Empty() {
		t.Error("zero Queue should be empty")
	}
	q.PushFront(New("a", 1, 1, Normal))
	if got, ok := q.PopFront(); !ok || got.ID != "a" {
		t.Errorf("PopFront() = %v, %v", got, ok)
	}
}
