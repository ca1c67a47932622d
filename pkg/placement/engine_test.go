package placement

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/jewelry/pkg/errors"
	"github.com/matzehuels/jewelry/pkg/grid"
	"github.com/matzehuels/jewelry/pkg/tile"
)

const (
	cellW = 100.0
	cellH = 80.0
)

// makeTiles builds tiles from a compact sequence such as "N0 N1 H2 C3".
func makeTiles(seq string) []*tile.Tile {
	var out []*tile.Tile
	for _, f := range strings.Fields(seq) {
		class := tile.Normal
		width := cellW
		switch f[0] {
		case 'H':
			class = tile.Huge
			width = 2 * cellW
		case 'C':
			class = tile.Companion
		}
		out = append(out, tile.New(f, width, cellH, class))
	}
	return out
}

func byID(tiles []*tile.Tile) map[string]*tile.Tile {
	m := make(map[string]*tile.Tile, len(tiles))
	for _, t := range tiles {
		m[t.ID] = t
	}
	return m
}

func assertAt(t *testing.T, tl *tile.Tile, row, col int) {
	t.Helper()
	assert.Equal(t, row, tl.Row, "%s row", tl.ID)
	assert.Equal(t, col, tl.Col, "%s col", tl.ID)
	assert.Equal(t, float64(col)*cellW, tl.X, "%s x", tl.ID)
	assert.Equal(t, float64(row)*cellH, tl.Y, "%s y", tl.ID)
	assert.Equal(t, col%2 == 1, tl.Offset, "%s offset", tl.ID)
}

// footprint returns the in-range clearance cells of a huge tile at (row, col).
func footprint(row, col, columns int) []grid.Key {
	var keys []grid.Key
	if col%2 == 0 {
		keys = []grid.Key{{Row: row, Col: col - 1}, {Row: row, Col: col + 1}, {Row: row + 1, Col: col}}
	} else {
		keys = []grid.Key{{Row: row + 1, Col: col - 1}, {Row: row + 1, Col: col}, {Row: row + 1, Col: col + 1}}
	}
	out := keys[:0]
	for _, k := range keys {
		if k.Col >= 0 && k.Col < columns {
			out = append(out, k)
		}
	}
	return out
}

func TestAllNormalTilesFillRowMajor(t *testing.T) {
	for _, columns := range []int{1, 2, 3, 4, 7} {
		t.Run(fmt.Sprintf("columns=%d", columns), func(t *testing.T) {
			tiles := makeTiles("N0 N1 N2 N3 N4 N5 N6 N7 N8 N9 N10")
			pass, err := New().Layout(tiles, columns, nil)
			require.NoError(t, err)

			for i, tl := range tiles {
				assertAt(t, tl, i/columns, i%columns)
			}
			wantRows := (len(tiles) + columns - 1) / columns
			assert.Equal(t, wantRows, pass.Rows())
			assert.Equal(t, float64(wantRows)*cellH, pass.ContentHeight)
		})
	}
}

func TestHugeFootprintOddColumn(t *testing.T) {
	tiles := makeTiles("N0 H1")
	pass, err := New().Layout(tiles, 5, nil)
	require.NoError(t, err)

	h := byID(tiles)["H1"]
	assertAt(t, h, 0, 1)

	var clearance []grid.Key
	for _, k := range pass.Grid.Keys() {
		c, err := pass.Grid.Get(k.Row, k.Col)
		require.NoError(t, err)
		if c.IsClearance() {
			clearance = append(clearance, k)
		}
	}
	assert.Equal(t, []grid.Key{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}}, clearance)

	own, err := pass.Grid.Get(0, 1)
	require.NoError(t, err)
	assert.Same(t, h, own.Tile)
}

func TestHugeFootprintEvenColumnEvictsLeftNeighbour(t *testing.T) {
	tiles := makeTiles("N0 N1 H2")
	pass, err := New().Layout(tiles, 5, nil)
	require.NoError(t, err)
	m := byID(tiles)

	assertAt(t, m["H2"], 0, 2)
	for _, k := range footprint(0, 2, 5) {
		c, err := pass.Grid.Get(k.Row, k.Col)
		require.NoError(t, err)
		assert.True(t, c.IsClearance(), "cell %v", k)
	}

	// N1 was evicted from (0,1) and re-placed at the next free slot
	assert.Equal(t, 0, m["N0"].Col)
	assertAt(t, m["N1"], 0, 4)
}

func TestEndToEndScenario(t *testing.T) {
	tiles := makeTiles("N0 N1 H2 N3 N4 N5 N6 N7")
	pass, err := New().Layout(tiles, 4, nil)
	require.NoError(t, err)
	m := byID(tiles)

	rows := pass.Grid.Rows()
	require.Len(t, rows, 3)
	assert.Same(t, m["N0"], rows[0][0].Tile)
	assert.True(t, rows[0][1].IsClearance())
	assert.Same(t, m["H2"], rows[0][2].Tile)
	assert.True(t, rows[0][3].IsClearance())

	assertAt(t, m["N1"], 1, 0)
	assertAt(t, m["N3"], 1, 1)
	assert.True(t, rows[1][2].IsClearance())
	assertAt(t, m["N4"], 1, 3)

	assertAt(t, m["N5"], 2, 0)
	assertAt(t, m["N6"], 2, 1)
	assertAt(t, m["N7"], 2, 2)
}

func TestLastLineReorder(t *testing.T) {
	tiles := makeTiles("N0 N1 H2 N3 N4 N5 N6 N7")
	_, err := New(WithLastLineReorder(true)).Layout(tiles, 4, nil)
	require.NoError(t, err)
	m := byID(tiles)

	// rows above the last are unaffected
	assertAt(t, m["H2"], 0, 2)
	assertAt(t, m["N4"], 1, 3)

	// the trailing three tiles go to even columns first
	assertAt(t, m["N5"], 2, 0)
	assertAt(t, m["N6"], 2, 2)
	assertAt(t, m["N7"], 2, 1)
}

func TestLastLineReorderSingleRow(t *testing.T) {
	tiles := makeTiles("N0 N1 N2")
	_, err := New(WithLastLineReorder(true)).Layout(tiles, 5, nil)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2, 4}, []int{tiles[0].Col, tiles[1].Col, tiles[2].Col})
}

func TestHugeSwapsWithNextNormal(t *testing.T) {
	tiles := makeTiles("H0 N1 N2")
	_, err := New().Layout(tiles, 4, nil)
	require.NoError(t, err)
	m := byID(tiles)

	assertAt(t, m["N1"], 0, 0)
	assertAt(t, m["H0"], 0, 1)
	// (0,2) is free of H0's odd-column footprint
	assertAt(t, m["N2"], 0, 2)
}

func TestConsecutiveHugeTilesDefer(t *testing.T) {
	tiles := makeTiles("H0 H1")
	pass, err := New().Layout(tiles, 4, nil)
	require.NoError(t, err)
	m := byID(tiles)

	assertAt(t, m["H0"], 0, 1)
	assertAt(t, m["H1"], 2, 1)
	assert.Equal(t, 4, pass.Rows())

	c, err := pass.Grid.Get(0, 0)
	require.NoError(t, err)
	assert.True(t, c.IsClearance(), "deferral leaves an intentional gap")
}

func TestTooFewColumnsForcePlacesHuge(t *testing.T) {
	tests := []struct {
		name    string
		columns int
		seq     string
		wantRow map[string]int
		wantCol map[string]int
	}{
		{
			name:    "single column",
			columns: 1,
			seq:     "H0 N1",
			wantRow: map[string]int{"H0": 0, "N1": 2},
			wantCol: map[string]int{"H0": 0, "N1": 0},
		},
		{
			name:    "two columns",
			columns: 2,
			seq:     "H0 N1",
			wantRow: map[string]int{"H0": 0, "N1": 1},
			wantCol: map[string]int{"H0": 0, "N1": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := makeTiles(tt.seq)
			_, err := New().Layout(tiles, tt.columns, nil)
			require.NoError(t, err)
			for id, tl := range byID(tiles) {
				assertAt(t, tl, tt.wantRow[id], tt.wantCol[id])
			}
		})
	}
}

func TestStampRuleClearsRegion(t *testing.T) {
	tiles := makeTiles("N0 N1 N2 N3")
	rules := []grid.StampRule{{EndRow: grid.Int(1), EndColumn: grid.Int(2)}}
	_, err := New().Layout(tiles, 4, rules)
	require.NoError(t, err)
	m := byID(tiles)

	assertAt(t, m["N0"], 0, 3)
	assertAt(t, m["N1"], 1, 3)
	assertAt(t, m["N2"], 2, 0)
	assertAt(t, m["N3"], 2, 1)
}

func TestMalformedStampRuleAbortsBeforePlacement(t *testing.T) {
	tests := []struct {
		name string
		rule grid.StampRule
	}{
		{"missing row", grid.StampRule{Column: grid.Int(0)}},
		{"startRow", grid.StampRule{StartRow: grid.Int(0), EndRow: grid.Int(1)}},
		{"negative row", grid.StampRule{Row: grid.Int(-1)}},
		{"endRow past limit", grid.StampRule{EndRow: grid.Int(grid.MaxStampRow(2) + 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := makeTiles("N0 N1")
			tiles[1].X = -1

			_, err := New().Layout(tiles, 3, []grid.StampRule{tt.rule})
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidStampRule))
			assert.Equal(t, -1.0, tiles[1].X, "no tile may be touched")

			g := grid.New(3, tt.rule)
			err = New().PrepareGrid(tiles, cellW, cellH, g)
			require.Error(t, err)
			assert.Equal(t, 0, g.Height())
		})
	}
}

func TestDeepStampRuleRejectedWithoutScanning(t *testing.T) {
	tiles := makeTiles("N0")
	g := grid.New(errors.MaxColumns, grid.StampRule{EndRow: grid.Int(40000)})

	err := New().PrepareGrid(tiles, cellW, cellH, g)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidStampRule, errors.GetCode(err))
	assert.Equal(t, 0, g.Height())
	assert.Empty(t, g.Rows())
}

func TestStampRuleAtLimitStillPlaces(t *testing.T) {
	tiles := makeTiles("N0 N1")
	limit := grid.MaxStampRow(len(tiles))
	pass, err := New().Layout(tiles, 2, []grid.StampRule{{EndRow: grid.Int(limit)}})
	require.NoError(t, err)

	assertAt(t, tiles[0], limit+1, 0)
	assertAt(t, tiles[1], limit+1, 1)
	assert.Equal(t, limit+2, pass.Rows())
}

func TestInvalidColumnCount(t *testing.T) {
	_, err := New().Layout(makeTiles("N0"), 0, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestEmptyInput(t *testing.T) {
	pass, err := New().Layout(nil, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, pass.Rows())
	assert.Zero(t, pass.ContentHeight)
}

func TestSampleSizeSkipsHugeTiles(t *testing.T) {
	w, h := SampleSize(makeTiles("H0 N1"))
	assert.Equal(t, cellW, w)
	assert.Equal(t, cellH, h)

	w, _ = SampleSize(makeTiles("H0"))
	assert.Equal(t, 2*cellW, w)
}

func TestLayoutIsDeterministic(t *testing.T) {
	seq := "N0 H1 C2 N3 N4 H5 H6 N7 C8 N9 N10 H11 N12"
	first := makeTiles(seq)
	second := makeTiles(seq)

	_, err := New(WithLastLineReorder(true)).Layout(first, 5, nil)
	require.NoError(t, err)
	_, err = New(WithLastLineReorder(true)).Layout(second, 5, nil)
	require.NoError(t, err)

	for i := range first {
		assert.Equal(t, first[i].Position(), second[i].Position(), first[i].ID)
		assert.Equal(t, first[i].Offset, second[i].Offset, first[i].ID)
	}
}

// randomSeq returns n tiles with roughly one huge tile in four, each huge
// tile sometimes followed by a companion.
func randomSeq(r *rand.Rand, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		switch x := r.Intn(8); {
		case x < 2:
			fmt.Fprintf(&b, "H%d ", i)
			if r.Intn(2) == 0 && i+1 < n {
				i++
				fmt.Fprintf(&b, "C%d ", i)
			}
		default:
			fmt.Fprintf(&b, "N%d ", i)
		}
	}
	return b.String()
}

func TestPlacementInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for iter := 0; iter < 200; iter++ {
		columns := 1 + r.Intn(7)
		seq := randomSeq(r, 1+r.Intn(30))
		reorder := r.Intn(2) == 0

		t.Run(fmt.Sprintf("%d/cols=%d", iter, columns), func(t *testing.T) {
			tiles := makeTiles(seq)
			pass, err := New(WithLastLineReorder(reorder)).Layout(tiles, columns, nil)
			require.NoError(t, err, seq)
			g := pass.Grid

			// every tile ends up on its own cell
			for _, tl := range tiles {
				c, err := g.Get(tl.Row, tl.Col)
				require.NoError(t, err)
				require.Equal(t, grid.Occupied, c.Kind, "%s in %q", tl.ID, seq)
				require.Same(t, tl, c.Tile, "%s in %q", tl.ID, seq)
				require.True(t, tl.Col >= 0 && tl.Col < columns)
			}

			// footprints of huge tiles are disjoint and fully reserved
			claimed := make(map[grid.Key]string)
			for _, tl := range tiles {
				if !tl.IsHuge() {
					continue
				}
				if columns >= 3 {
					require.True(t, tl.Col > 0 && tl.Col < columns-1, "%s at improper column %d", tl.ID, tl.Col)
				}
				for _, k := range footprint(tl.Row, tl.Col, columns) {
					owner, taken := claimed[k]
					require.False(t, taken, "%s and %s share %v in %q", owner, tl.ID, k, seq)
					claimed[k] = tl.ID

					c, err := g.Get(k.Row, k.Col)
					require.NoError(t, err)
					require.True(t, c.IsClearance(), "%v of %s in %q", k, tl.ID, seq)
				}
			}

			// height is one past the last non-empty row
			maxRow := -1
			for _, k := range g.Keys() {
				c, _ := g.Get(k.Row, k.Col)
				if !c.IsEmpty() && k.Row > maxRow {
					maxRow = k.Row
				}
			}
			require.Equal(t, maxRow+1, g.Height())
		})
	}
}
