// Package pipeline runs diamond grid layout passes for the CLI and the API.
//
// A pass turns a tile set into a [Result]: every tile's grid slot and
// pixel position, the grid snapshot and the content height the host should
// give every column. The [Runner] wraps the pass with caching so repeated
// requests for the same tiles and options return the stored result.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	set, err := io.ReadTileSetFile("tiles.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Layout(ctx, set, pipeline.Options{Columns: 5})
//
// Options left at zero fall back to the tile set's own grid parameters and
// then to the package defaults.
package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jewelry/pkg/cache"
	"github.com/matzehuels/jewelry/pkg/errors"
	"github.com/matzehuels/jewelry/pkg/grid"
	jio "github.com/matzehuels/jewelry/pkg/io"
	"github.com/matzehuels/jewelry/pkg/tile"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultColumns is the column count when neither options nor tile set set one.
const DefaultColumns = 4

// Grid snapshot markers. Occupied cells hold the tile ID.
const (
	CellEmpty     = ""
	CellClearance = "*"
)

// =============================================================================
// Options
// =============================================================================

// Options configures a layout pass. It supports JSON for API requests and
// TOML for config files.
type Options struct {
	Columns         int              `json:"columns,omitempty" toml:"columns"`
	ColumnWidth     float64          `json:"column_width,omitempty" toml:"column_width"`
	LastLineReorder bool             `json:"last_line_reorder,omitempty" toml:"last_line_reorder"`
	Stamps          []grid.StampRule `json:"stamps,omitempty" toml:"stamp"`
	Refresh         bool             `json:"refresh,omitempty" toml:"-"` // Skip cache lookup

	Logger *log.Logger `json:"-" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ApplyTileSet fills unset grid parameters from set.
func (o *Options) ApplyTileSet(set *jio.TileSet) {
	if set == nil {
		return
	}
	if o.Columns == 0 {
		o.Columns = set.Columns
	}
	if o.ColumnWidth == 0 {
		o.ColumnWidth = set.ColumnWidth
	}
	if len(o.Stamps) == 0 {
		o.Stamps = set.Stamps
	}
}

// ValidateAndSetDefaults applies defaults and rejects malformed options.
// Stamp rules are checked here so a bad rule fails before any tile moves.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Columns == 0 {
		o.Columns = DefaultColumns
	}
	if err := errors.ValidateColumns(o.Columns); err != nil {
		return err
	}
	if o.ColumnWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "column width cannot be negative, got %g", o.ColumnWidth)
	}
	if err := grid.ValidateRules(o.Stamps); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// LayoutKeyOpts returns cache key options for the pass.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Columns:         o.Columns,
		ColumnWidth:     o.ColumnWidth,
		LastLineReorder: o.LastLineReorder,
	}
}

// =============================================================================
// Result
// =============================================================================

// Result is the outcome of one layout pass.
type Result struct {
	PassID        string      `json:"pass_id" yaml:"pass_id"`
	Columns       int         `json:"columns" yaml:"columns"`
	Rows          int         `json:"rows" yaml:"rows"`
	TileWidth     float64     `json:"tile_width" yaml:"tile_width"`
	TileHeight    float64     `json:"tile_height" yaml:"tile_height"`
	ContentHeight float64     `json:"content_height" yaml:"content_height"`
	Tiles         []Placement `json:"tiles" yaml:"tiles"`
	Grid          [][]string  `json:"grid" yaml:"grid"`
	Relocated     int         `json:"relocated" yaml:"relocated"`
	Skipped       []string    `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	CacheHit      bool        `json:"cache_hit" yaml:"cache_hit"`
}

// Placement is one tile's final slot and screen position.
type Placement struct {
	ID     string         `json:"id" yaml:"id"`
	Class  tile.SizeClass `json:"class" yaml:"class"`
	Row    int            `json:"row" yaml:"row"`
	Col    int            `json:"col" yaml:"col"`
	X      float64        `json:"x" yaml:"x"`
	Y      float64        `json:"y" yaml:"y"`
	Offset bool           `json:"offset" yaml:"offset"`
}

// Placement returns the placement for id.
func (r *Result) Placement(id string) (Placement, bool) {
	for _, p := range r.Tiles {
		if p.ID == id {
			return p, true
		}
	}
	return Placement{}, false
}

// snapshot renders g as rows of tile IDs and cell markers.
func snapshot(g *grid.Grid) [][]string {
	rows := g.Rows()
	out := make([][]string, len(rows))
	for r, row := range rows {
		out[r] = make([]string, len(row))
		for c, cell := range row {
			switch cell.Kind {
			case grid.Occupied:
				out[r][c] = cell.Tile.ID
			case grid.Clearance:
				out[r][c] = CellClearance
			default:
				out[r][c] = CellEmpty
			}
		}
	}
	return out
}
