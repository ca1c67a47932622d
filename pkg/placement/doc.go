// Package placement implements the diamond grid placement engine.
//
// # Overview
//
// The engine drains an ordered queue of tiles into a [grid.Grid], scanning
// rows top to bottom and columns left to right. Every scan position receives
// the next suitable tile, or is marked as clearance when no tile fits there.
// Each placed tile gets its grid cell, its pixel position (column × tile
// width, row × tile height) and an offset flag for odd columns.
//
// # Huge tiles
//
// A huge tile takes one cell plus a three-cell clearance footprint whose
// shape depends on the column parity:
//
//	even column c:   (row, c-1)  (row, c+1)  (row+1, c)
//	odd column c:    (row+1, c-1)  (row+1, c)  (row+1, c+1)
//
// A normal tile already sitting left of an even-column huge tile is evicted
// and pushed back to the front of the queue. When a huge tile cannot be
// placed at the current position the engine first tries to swap it with the
// next normal tile, then defers it to a later position. With fewer than three
// columns no proper position exists, so the huge tile is placed at the first
// position where its footprint does not collide with another one.
//
// Footprints of two huge tiles never overlap.
//
// # Last-line reordering
//
// When [WithLastLineReorder] is enabled and the remaining queue fits in one
// row, that row is scanned even columns first, then odd columns, which
// spreads a partial trailing row across the grid.
//
// # Usage
//
//	engine := placement.New(placement.WithLastLineReorder(true))
//	pass, err := engine.Layout(tiles, 4, nil)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(pass.ContentHeight)
//
// The engine is deterministic: the same tiles, column count and stamp rules
// always produce the same coordinates. An Engine holds no per-pass state and
// may be shared between goroutines as long as each pass works on its own tiles.
package placement
