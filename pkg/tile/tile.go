// Package tile defines the tiles packed by the diamond grid layout and the
// double-ended queue the placement engine drains during a pass.
//
// A tile is either [Normal] (one grid cell), [Huge] (one grid cell plus a
// three-cell clearance footprint) or [Companion] (a dependent tile that must
// directly follow a Huge tile in queue order and is later moved next to it).
//
// Tiles are mutable: the placement engine writes Row, Col, X, Y and Offset
// during a pass. Callers own the tiles and read the results afterwards.
package tile

import (
	"fmt"
	"strings"
)

// SizeClass distinguishes ordinary tiles from huge tiles and their companions.
type SizeClass int

const (
	// Normal occupies exactly one grid cell.
	Normal SizeClass = iota
	// Huge occupies one grid cell and reserves a parity-dependent footprint.
	Huge
	// Companion belongs to the Huge tile immediately preceding it.
	Companion
)

var classNames = [...]string{
	Normal:    "normal",
	Huge:      "huge",
	Companion: "companion",
}

// String returns the lowercase name of the class.
func (c SizeClass) String() string {
	if c >= 0 && int(c) < len(classNames) {
		return classNames[c]
	}
	return fmt.Sprintf("SizeClass(%d)", int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c SizeClass) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(classNames) {
		return nil, fmt.Errorf("unknown size class %d", int(c))
	}
	return []byte(classNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The empty string decodes
// to Normal so size class can be omitted in tile-set files.
func (c *SizeClass) UnmarshalText(b []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	if s == "" {
		*c = Normal
		return nil
	}
	for i, name := range classNames {
		if name == s {
			*c = SizeClass(i)
			return nil
		}
	}
	return fmt.Errorf("unknown size class %q (want normal, huge or companion)", s)
}

// Position is a top-left pixel coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Tile is a single rectangular element of the grid.
type Tile struct {
	ID     string
	Width  float64 // Pixel width as measured by the host
	Height float64 // Pixel height as measured by the host
	Class  SizeClass

	// Assigned by the placement engine.
	Row, Col int
	X, Y     float64
	// Offset is set for tiles in odd columns. The host uses it for styling.
	Offset bool
}

// New returns a tile with the given identity, size and class.
func New(id string, width, height float64, class SizeClass) *Tile {
	return &Tile{ID: id, Width: width, Height: height, Class: class}
}

// IsHuge reports whether the tile needs a clearance footprint.
// Companion tiles are placed like normal ones.
func (t *Tile) IsHuge() bool { return t.Class == Huge }

// Position returns the tile's assigned pixel position.
func (t *Tile) Position() Position { return Position{X: t.X, Y: t.Y} }

// SetPosition assigns the tile's pixel position.
func (t *Tile) SetPosition(p Position) {
	t.X, t.Y = p.X, p.Y
}

// Reset clears everything the placement engine assigned.
func (t *Tile) Reset() {
	t.Row, t.Col = 0, 0
	t.X, t.Y = 0, 0
	t.Offset = false
}

func (t *Tile) String() string {
	return fmt.Sprintf("%s(%s)", t.ID, t.Class)
}
