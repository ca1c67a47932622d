package placement

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jewelry/pkg/errors"
	"github.com/matzehuels/jewelry/pkg/grid"
	"github.com/matzehuels/jewelry/pkg/tile"
)

// Engine places tiles onto a grid.
type Engine struct {
	lastLineReorder bool
	logger          *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLastLineReorder enables the even-then-odd column scan for the final row.
func WithLastLineReorder(on bool) Option {
	return func(e *Engine) { e.lastLineReorder = on }
}

// WithLogger sets the logger used for debug tracing of deferrals and evictions.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine. By default the last row is scanned in natural order
// and nothing is logged.
func New(opts ...Option) *Engine {
	e := &Engine{logger: log.NewWithOptions(io.Discard, log.Options{})}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Pass is the outcome of one placement pass.
type Pass struct {
	Grid          *grid.Grid
	TileWidth     float64
	TileHeight    float64
	ContentHeight float64 // Grid height in rows × TileHeight
}

// Rows returns the grid height in rows.
func (p *Pass) Rows() int { return p.Grid.Height() }

// Layout validates the stamp rules, builds a fresh grid and places tiles on
// it. The uniform tile size is sampled with [SampleSize]. A malformed stamp
// rule, or one reaching below [grid.MaxStampRow], aborts the pass before any
// tile is touched.
func (e *Engine) Layout(tiles []*tile.Tile, columns int, rules []grid.StampRule) (*Pass, error) {
	if err := errors.ValidateColumns(columns); err != nil {
		return nil, err
	}
	if err := grid.ValidateRules(rules); err != nil {
		return nil, err
	}

	w, h := SampleSize(tiles)
	g := grid.New(columns, rules...)
	if err := e.PrepareGrid(tiles, w, h, g); err != nil {
		return nil, err
	}
	return &Pass{
		Grid:          g,
		TileWidth:     w,
		TileHeight:    h,
		ContentHeight: float64(g.Height()) * h,
	}, nil
}

// SampleSize returns the uniform cell size: the size of the first non-huge
// tile, or of the first tile when every tile is huge.
func SampleSize(tiles []*tile.Tile) (width, height float64) {
	for _, t := range tiles {
		if !t.IsHuge() {
			return t.Width, t.Height
		}
	}
	if len(tiles) > 0 {
		return tiles[0].Width, tiles[0].Height
	}
	return 0, 0
}

// PrepareGrid places every tile onto g, writing each tile's row, column,
// pixel position and offset flag. The tiles slice itself is not modified.
func (e *Engine) PrepareGrid(tiles []*tile.Tile, tileWidth, tileHeight float64, g *grid.Grid) error {
	if err := grid.ValidateRowLimit(g.Rules(), grid.MaxStampRow(len(tiles))); err != nil {
		return err
	}
	columns := g.ColumnCount()
	if err := errors.ValidateColumns(columns); err != nil {
		return err
	}

	q := tile.NewQueue(tiles)
	for row := 0; !q.Empty(); row++ {
		for _, col := range e.columnOrder(q.Len(), columns) {
			if err := e.fill(q, g, row, col, tileWidth, tileHeight); err != nil {
				return err
			}
		}
	}

	e.logger.Debug("placed tiles", "tiles", len(tiles), "columns", columns, "rows", g.Height())
	return nil
}

// columnOrder returns the scan order for a row. The final row, when enabled,
// visits even columns before odd ones.
func (e *Engine) columnOrder(remaining, columns int) []int {
	order := make([]int, 0, columns)
	if e.lastLineReorder && remaining <= columns {
		for col := 0; col < columns; col += 2 {
			order = append(order, col)
		}
		for col := 1; col < columns; col += 2 {
			order = append(order, col)
		}
		return order
	}
	for col := 0; col < columns; col++ {
		order = append(order, col)
	}
	return order
}

// fill decides the content of (row, col).
func (e *Engine) fill(q *tile.Queue, g *grid.Grid, row, col int, tileWidth, tileHeight float64) error {
	cell, err := g.Get(row, col)
	if err != nil {
		return err
	}
	if cell.IsClearance() || q.Empty() {
		return nil
	}

	t, err := SelectNextItem(q, g, row, col, g.ColumnCount())
	if err != nil {
		return err
	}
	if t == nil {
		g.Set(row, col, grid.ClearanceCell)
		return nil
	}

	if t.IsHuge() {
		if err := e.clearFootprint(q, g, row, col); err != nil {
			return err
		}
	}

	t.Row, t.Col = row, col
	t.X = float64(col) * tileWidth
	t.Y = float64(row) * tileHeight
	t.Offset = col%2 == 1
	g.Set(row, col, grid.OccupiedBy(t))
	return nil
}

// clearFootprint reserves the clearance cells of a huge tile placed at
// (row, col), evicting a normal left neighbour in even columns.
func (e *Engine) clearFootprint(q *tile.Queue, g *grid.Grid, row, col int) error {
	if col%2 == 0 {
		left, err := g.Get(row, col-1)
		if err != nil {
			return err
		}
		if left.Kind == grid.Occupied {
			e.logger.Debug("evicting tile", "tile", left.Tile.ID, "row", row, "col", col-1)
			q.PushFront(left.Tile)
		}
		g.Set(row, col-1, grid.ClearanceCell)
		g.Set(row, col+1, grid.ClearanceCell)
		g.Set(row+1, col, grid.ClearanceCell)
		return nil
	}

	g.Set(row+1, col-1, grid.ClearanceCell)
	g.Set(row+1, col, grid.ClearanceCell)
	g.Set(row+1, col+1, grid.ClearanceCell)
	return nil
}
