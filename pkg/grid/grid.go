// Package grid provides the sparse occupancy store used by the diamond grid
// placement engine.
//
// A [Grid] maps (row, column) cells to one of three states: empty, reserved
// as clearance, or occupied by a tile. Only cells that have been written are
// stored, so a grid costs memory proportional to the placed tiles rather than
// to its area.
//
// # Columns
//
// The column count is fixed at construction. Writes outside [0, columnCount)
// are silently dropped; the placement engine relies on this when a huge
// tile's footprint hangs over the grid edge. Reads outside that range always
// return an empty cell.
//
// # Stamp rules
//
// A grid may carry [StampRule]s that force regions to read as Clearance.
// Rules are evaluated lazily: the first read of an unset cell consults the
// rules in order, and if one fires the cell is stored as Clearance. A
// malformed rule is reported by the read that first consults it.
//
// A Grid is single-use: build one per layout pass and discard it afterwards.
package grid

import (
	"sort"

	"github.com/matzehuels/jewelry/pkg/errors"
	"github.com/matzehuels/jewelry/pkg/tile"
)

// Kind is the state of a grid cell.
type Kind int

const (
	// Empty cells hold nothing.
	Empty Kind = iota
	// Clearance cells are reserved and stay visually empty.
	Clearance
	// Occupied cells hold a placed tile.
	Occupied
)

func (k Kind) String() string {
	switch k {
	case Clearance:
		return "clearance"
	case Occupied:
		return "occupied"
	default:
		return "empty"
	}
}

// Cell is the content of one grid position.
type Cell struct {
	Kind Kind
	Tile *tile.Tile // non-nil only when Kind is Occupied
}

// ClearanceCell is the reserved-cell value.
var ClearanceCell = Cell{Kind: Clearance}

// OccupiedBy returns a cell holding t.
func OccupiedBy(t *tile.Tile) Cell { return Cell{Kind: Occupied, Tile: t} }

// IsEmpty reports whether the cell holds nothing.
func (c Cell) IsEmpty() bool { return c.Kind == Empty }

// IsClearance reports whether the cell is reserved.
func (c Cell) IsClearance() bool { return c.Kind == Clearance }

// Key addresses a grid cell.
type Key struct {
	Row, Col int
}

// Grid is a sparse (row, column) occupancy store.
type Grid struct {
	cells   map[Key]Cell
	columns int
	height  int
	rules   []StampRule
}

// New creates an empty grid with the given column count and stamp rules.
// Rules are not validated here; see [ValidateRules].
func New(columns int, rules ...StampRule) *Grid {
	return &Grid{
		cells:   make(map[Key]Cell),
		columns: columns,
		rules:   rules,
	}
}

// InBounds reports whether col is a valid column index.
func (g *Grid) InBounds(col int) bool { return col >= 0 && col < g.columns }

// Get returns the content of (row, col). An unset cell covered by a stamp
// rule is materialized as Clearance.
func (g *Grid) Get(row, col int) (Cell, error) {
	if !g.InBounds(col) {
		return Cell{}, nil
	}
	if c, ok := g.cells[Key{row, col}]; ok {
		return c, nil
	}
	for i, r := range g.rules {
		fired, err := r.Fires(row, col)
		if err != nil {
			return Cell{}, errors.Wrap(errors.ErrCodeInvalidStampRule, err, "stamp rule %d", i)
		}
		if fired {
			g.Set(row, col, ClearanceCell)
			return ClearanceCell, nil
		}
	}
	return Cell{}, nil
}

// IsEmpty reports whether (row, col) reads as empty.
func (g *Grid) IsEmpty(row, col int) (bool, error) {
	c, err := g.Get(row, col)
	if err != nil {
		return false, err
	}
	return c.IsEmpty(), nil
}

// Set stores c at (row, col). Out-of-range columns are ignored.
func (g *Grid) Set(row, col int, c Cell) {
	if !g.InBounds(col) {
		return
	}
	g.cells[Key{row, col}] = c
	if row+1 > g.height {
		g.height = row + 1
	}
}

// Height returns one more than the highest row ever written.
func (g *Grid) Height() int { return g.height }

// ColumnCount returns the fixed column count.
func (g *Grid) ColumnCount() int { return g.columns }

// Rules returns the grid's stamp rules.
func (g *Grid) Rules() []StampRule { return g.rules }

// Rows returns the stored cells as a dense Height × ColumnCount matrix.
// It reads only stored values and never materializes stamp rules.
func (g *Grid) Rows() [][]Cell {
	rows := make([][]Cell, g.height)
	for r := range rows {
		rows[r] = make([]Cell, g.columns)
	}
	for k, c := range g.cells {
		if k.Row >= 0 {
			rows[k.Row][k.Col] = c
		}
	}
	return rows
}

// Keys returns the keys of all stored cells in row-major order.
func (g *Grid) Keys() []Key {
	keys := make([]Key, 0, len(g.cells))
	for k := range g.cells {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Row != keys[j].Row {
			return keys[i].Row < keys[j].Row
		}
		return keys[i].Col < keys[j].Col
	})
	return keys
}
