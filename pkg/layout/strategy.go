// Package layout connects the diamond grid algorithm to a host tiling engine.
//
// A host engine computes column widths, animates transitions and inserts
// elements; it asks a [Strategy] where tiles go. The host calls
// [Strategy.ComputePositions] once per layout pass with the full tile list,
// then asks [Strategy.PositionOf] for each tile while it positions elements.
//
// [Jewelry] is the diamond grid strategy: it runs the placement engine,
// assembles the host's row-major slot index and moves companion tiles next
// to their huge tiles.
package layout

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jewelry/pkg/companion"
	"github.com/matzehuels/jewelry/pkg/errors"
	"github.com/matzehuels/jewelry/pkg/grid"
	"github.com/matzehuels/jewelry/pkg/placement"
	"github.com/matzehuels/jewelry/pkg/tile"
)

// Strategy computes tile positions on behalf of a host engine.
type Strategy interface {
	// ComputePositions lays out tiles and records their final positions.
	ComputePositions(tiles []*tile.Tile, ctx Context) (*Result, error)

	// PositionOf returns the position recorded for t by the last pass.
	PositionOf(t *tile.Tile) (tile.Position, bool)
}

// Context carries the host's grid parameters for one pass.
type Context struct {
	Columns         int
	ColumnWidth     float64 // Width of one column; defaults to the sampled tile width
	Stamps          []grid.StampRule
	LastLineReorder bool
	Logger          *log.Logger
}

// Result describes a completed pass.
type Result struct {
	Grid          *grid.Grid
	Rows          int
	TileWidth     float64
	TileHeight    float64
	ContentHeight float64 // Height every host column should be set to
	Relocation    companion.Report
}

// Jewelry is the diamond grid Strategy. It is safe for concurrent use;
// each call to ComputePositions replaces the recorded positions.
type Jewelry struct {
	mu        sync.RWMutex
	positions map[string]tile.Position
}

// NewJewelry creates a diamond grid strategy.
func NewJewelry() *Jewelry {
	return &Jewelry{positions: make(map[string]tile.Position)}
}

var _ Strategy = (*Jewelry)(nil)

// ComputePositions places tiles, relocates companions and records each
// tile's final position. Tiles are mutated in place. Positions are recorded
// by tile ID, so IDs must be unique within the pass.
func (j *Jewelry) ComputePositions(tiles []*tile.Tile, ctx Context) (*Result, error) {
	if err := uniqueIDs(tiles); err != nil {
		return nil, err
	}
	logger := ctx.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	engine := placement.New(
		placement.WithLastLineReorder(ctx.LastLineReorder),
		placement.WithLogger(logger),
	)
	pass, err := engine.Layout(tiles, ctx.Columns, ctx.Stamps)
	if err != nil {
		return nil, err
	}

	columnWidth := ctx.ColumnWidth
	if columnWidth <= 0 {
		columnWidth = pass.TileWidth
	}
	idx := companion.BuildIndex(tiles, columnWidth, ctx.Columns)
	report := companion.NewRelocator(logger).Relocate(idx)
	idx.Apply()

	positions := make(map[string]tile.Position, len(tiles))
	for _, t := range tiles {
		positions[t.ID] = t.Position()
	}
	j.mu.Lock()
	j.positions = positions
	j.mu.Unlock()

	return &Result{
		Grid:          pass.Grid,
		Rows:          pass.Rows(),
		TileWidth:     pass.TileWidth,
		TileHeight:    pass.TileHeight,
		ContentHeight: pass.ContentHeight,
		Relocation:    report,
	}, nil
}

func uniqueIDs(tiles []*tile.Tile) error {
	seen := make(map[string]struct{}, len(tiles))
	for _, t := range tiles {
		if _, dup := seen[t.ID]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate tile id %q", t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}

// PositionOf returns the precomputed position of t.
func (j *Jewelry) PositionOf(t *tile.Tile) (tile.Position, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	p, ok := j.positions[t.ID]
	return p, ok
}
