package tile

// Queue is a double-ended queue of tiles. The placement engine drains it
// from the front and pushes deferred or evicted tiles back onto the front.
//
// The zero value is an empty queue ready to use.
type Queue struct {
	items []*Tile
	head  int
}

// NewQueue returns a queue holding a copy of tiles in order. The caller's
// slice is never modified.
func NewQueue(tiles []*Tile) *Queue {
	items := make([]*Tile, len(tiles))
	copy(items, tiles)
	return &Queue{items: items}
}

// Len returns the number of queued tiles.
func (q *Queue) Len() int { return len(q.items) - q.head }

// Empty reports whether the queue has no tiles left.
func (q *Queue) Empty() bool { return q.Len() == 0 }

// PeekFront returns the front tile without removing it.
func (q *Queue) PeekFront() (*Tile, bool) {
	if q.Empty() {
		return nil, false
	}
	return q.items[q.head], true
}

// PopFront removes and returns the front tile.
func (q *Queue) PopFront() (*Tile, bool) {
	if q.Empty() {
		return nil, false
	}
	t := q.items[q.head]
	q.items[q.head] = nil
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return t, true
}

// PushFront puts t at the front of the queue.
func (q *Queue) PushFront(t *Tile) {
	if q.head > 0 {
		q.head--
		q.items[q.head] = t
		return
	}
	q.items = append(q.items, nil)
	copy(q.items[1:], q.items)
	q.items[0] = t
}

// PushBack appends t to the end of the queue.
func (q *Queue) PushBack(t *Tile) {
	q.items = append(q.items, t)
}

// Tiles returns the queued tiles in order.
func (q *Queue) Tiles() []*Tile {
	out := make([]*Tile, q.Len())
	copy(out, q.items[q.head:])
	return out
}
