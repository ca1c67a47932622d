// Package companion moves companion tiles next to the huge tile they belong to.
//
// After placement the host lays tiles out in a linear, row-major sequence.
// A companion tile always directly follows its huge tile in that sequence;
// this package swaps the companion's screen position with the slot
// diagonally adjacent to the huge tile:
//
//	huge in even column c at row r:  target (c+1, r-1)
//	huge in odd column c at row r:   target (c+1, r+1)
//
// Only screen positions move. Grid slots stay where the host put them.
//
// Problems are recovered locally: a companion without a preceding huge tile
// (PROTOCOL_VIOLATION) or with a target outside the grid (OUT_OF_BOUNDS) is
// logged, reported and left at its default slot.
package companion

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jewelry/pkg/errors"
	"github.com/matzehuels/jewelry/pkg/tile"
)

// Report summarizes one relocation pass.
type Report struct {
	Relocated int     `json:"relocated"`
	Skipped   []error `json:"-"`
}

// SkippedMessages returns the skipped errors as strings.
func (r Report) SkippedMessages() []string {
	out := make([]string, len(r.Skipped))
	for i, err := range r.Skipped {
		out[i] = err.Error()
	}
	return out
}

// Relocator runs the companion post-pass.
type Relocator struct {
	Logger *log.Logger
}

// NewRelocator creates a relocator logging to l, or nowhere when l is nil.
func NewRelocator(l *log.Logger) *Relocator {
	if l == nil {
		l = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Relocator{Logger: l}
}

// Target returns the slot a companion of a huge tile at (col, row) moves to.
func Target(col, row int) (int, int) {
	if col%2 == 0 {
		return col + 1, row - 1
	}
	return col + 1, row + 1
}

// Relocate swaps each companion's position with its target slot's position.
func (r *Relocator) Relocate(idx *Index) Report {
	logger := r.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	var rep Report
	entries := idx.Entries()

	for i, e := range entries {
		if e.Tile == nil || e.Tile.Class != tile.Companion {
			continue
		}

		if i == 0 || entries[i-1].Tile == nil || !entries[i-1].Tile.IsHuge() {
			err := errors.New(errors.ErrCodeProtocolViolation,
				"companion %q is not preceded by a huge tile", e.Tile.ID)
			skip(logger, &rep, err, e)
			continue
		}

		huge := entries[i-1]
		col, row := Target(huge.GridCol, huge.GridRow)
		target, ok := idx.At(col, row)
		if !ok {
			err := errors.New(errors.ErrCodeOutOfBounds,
				"companion %q: no slot at column %d, row %d", e.Tile.ID, col, row)
			skip(logger, &rep, err, e)
			continue
		}

		e.Position, target.Position = target.Position, e.Position
		rep.Relocated++
		logger.Debug("relocated companion", "tile", e.Tile.ID, "huge", huge.Tile.ID, "col", col, "row", row)
	}
	return rep
}

func skip(logger *log.Logger, rep *Report, err *errors.Error, e *Entry) {
	rep.Skipped = append(rep.Skipped, err)
	logger.Warn("companion relocation skipped",
		"code", err.Code,
		"tile", e.Tile.ID,
		"col", e.GridCol,
		"row", e.GridRow)
}
