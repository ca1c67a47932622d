package placement

import (
	"github.com/matzehuels/jewelry/pkg/grid"
	"github.com/matzehuels/jewelry/pkg/tile"
)

// SelectNextItem pops the tile that should occupy (row, col), reordering the
// queue when the front tile is huge and cannot go here. It returns nil when
// the position should stay empty; the deferred huge tile is then back at the
// front of the queue. The queue must not be empty.
func SelectNextItem(q *tile.Queue, g *grid.Grid, row, col, columns int) (*tile.Tile, error) {
	t, ok := q.PopFront()
	if !ok {
		return nil, nil
	}
	if !t.IsHuge() {
		return t, nil
	}

	properColumn := col > 0 && col < columns-1
	tooFewColumns := columns < 3

	if properColumn || tooFewColumns {
		fits, err := SpaceForHugeDiamond(g, row, col)
		if err != nil {
			return nil, err
		}
		if fits {
			return t, nil
		}
	}

	// let the next normal tile go first
	if next, ok := q.PopFront(); ok {
		if !next.IsHuge() {
			q.PushFront(t)
			return next, nil
		}
		q.PushFront(next)
	}

	// a later row will have a proper position
	if !tooFewColumns {
		q.PushFront(t)
		return nil, nil
	}

	fits, err := SpaceForHugeDiamond(g, row, col)
	if err != nil {
		return nil, err
	}
	if !fits {
		q.PushFront(t)
		return nil, nil
	}
	return t, nil
}

// SpaceForHugeDiamond reports whether a huge tile at (row, col) would keep
// its footprint clear of every other huge tile's footprint.
//
// In an even column the left neighbour may be unset or hold a normal tile
// (which will be evicted), and the cells right of and below (row, col) must
// be empty. In an odd column the three cells below must be empty.
func SpaceForHugeDiamond(g *grid.Grid, row, col int) (bool, error) {
	if col%2 == 0 {
		left, err := g.Get(row, col-1)
		if err != nil {
			return false, err
		}
		leftOK := left.IsEmpty() || (left.Kind == grid.Occupied && !left.Tile.IsHuge())
		if !leftOK {
			return false, nil
		}
		return allEmpty(g, grid.Key{Row: row, Col: col + 1}, grid.Key{Row: row + 1, Col: col})
	}

	return allEmpty(g,
		grid.Key{Row: row + 1, Col: col - 1},
		grid.Key{Row: row + 1, Col: col},
		grid.Key{Row: row + 1, Col: col + 1},
	)
}

func allEmpty(g *grid.Grid, keys ...grid.Key) (bool, error) {
	for _, k := range keys {
		empty, err := g.IsEmpty(k.Row, k.Col)
		if err != nil || !empty {
			return false, err
		}
	}
	return true, nil
}
