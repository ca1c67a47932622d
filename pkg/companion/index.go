package companion

import (
	"math"

	"github.com/matzehuels/jewelry/pkg/tile"
)

// Entry is one tile in the host's linear, row-major ordering together with
// its screen position and the grid slot the host derived for it.
type Entry struct {
	Tile     *tile.Tile
	Position tile.Position
	GridCol  int
	GridRow  int
}

type slot struct{ col, row int }

// Index is the row/column lookup over a linear sequence of entries.
type Index struct {
	entries []*Entry
	slots   map[slot]*Entry
}

// NewIndex indexes entries by their (GridCol, GridRow). When two entries
// claim the same slot the first one wins.
func NewIndex(entries []*Entry) *Index {
	idx := &Index{
		entries: entries,
		slots:   make(map[slot]*Entry, len(entries)),
	}
	for _, e := range entries {
		k := slot{e.GridCol, e.GridRow}
		if _, taken := idx.slots[k]; !taken {
			idx.slots[k] = e
		}
	}
	return idx
}

// BuildIndex assembles entries the way the host grid does: each tile spans
// round(width / columnWidth) columns (at least one), spans accumulate along
// a row, and the row wraps once the accumulated span reaches columns. The
// provisional position of each entry is the tile's current position.
func BuildIndex(tiles []*tile.Tile, columnWidth float64, columns int) *Index {
	entries := make([]*Entry, 0, len(tiles))
	col, row := 0, 0
	for _, t := range tiles {
		entries = append(entries, &Entry{
			Tile:     t,
			Position: t.Position(),
			GridCol:  col,
			GridRow:  row,
		})
		col += span(t.Width, columnWidth)
		if col >= columns {
			col = 0
			row++
		}
	}
	return NewIndex(entries)
}

func span(width, columnWidth float64) int {
	if columnWidth <= 0 {
		return 1
	}
	n := int(math.Round(width / columnWidth))
	if n < 1 {
		return 1
	}
	return n
}

// Entries returns the entries in sequence order.
func (idx *Index) Entries() []*Entry { return idx.entries }

// Len returns the number of entries.
func (idx *Index) Len() int { return len(idx.entries) }

// At returns the entry whose slot is (col, row).
func (idx *Index) At(col, row int) (*Entry, bool) {
	e, ok := idx.slots[slot{col, row}]
	return e, ok
}

// Apply writes every entry's position back onto its tile.
func (idx *Index) Apply() {
	for _, e := range idx.entries {
		if e.Tile != nil {
			e.Tile.SetPosition(e.Position)
		}
	}
}
