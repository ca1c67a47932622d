package companion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/jewelry/pkg/tile"
)

func TestBuildIndexWrapsRows(t *testing.T) {
	tiles := []*tile.Tile{
		tile.New("a", 100, 80, tile.Normal),
		tile.New("h", 200, 80, tile.Huge),
		tile.New("c", 100, 80, tile.Companion),
		tile.New("d", 100, 80, tile.Normal),
		tile.New("e", 104, 80, tile.Normal),
	}
	tiles[3].X, tiles[3].Y = 300, 80

	idx := BuildIndex(tiles, 100, 4)
	require.Equal(t, 5, idx.Len())

	want := [][2]int{{0, 0}, {1, 0}, {3, 0}, {0, 1}, {1, 1}}
	for i, e := range idx.Entries() {
		assert.Equal(t, want[i], [2]int{e.GridCol, e.GridRow}, e.Tile.ID)
	}

	e, ok := idx.At(0, 1)
	require.True(t, ok)
	assert.Equal(t, "d", e.Tile.ID)
	assert.Equal(t, tile.Position{X: 300, Y: 80}, e.Position)

	_, ok = idx.At(2, 0)
	assert.False(t, ok, "the huge tile's second column is not a slot of its own")
}

func TestBuildIndexZeroColumnWidth(t *testing.T) {
	tiles := []*tile.Tile{
		tile.New("a", 200, 80, tile.Huge),
		tile.New("b", 100, 80, tile.Normal),
	}
	idx := BuildIndex(tiles, 0, 2)
	b, ok := idx.At(1, 0)
	require.True(t, ok)
	assert.Equal(t, "b", b.Tile.ID)
}

func TestNewIndexFirstEntryWins(t *testing.T) {
	a := &Entry{Tile: tile.New("a", 1, 1, tile.Normal)}
	b := &Entry{Tile: tile.New("b", 1, 1, tile.Normal)}
	idx := NewIndex([]*Entry{a, b})

	e, ok := idx.At(0, 0)
	require.True(t, ok)
	assert.Same(t, a, e)
}

func TestIndexApply(t *testing.T) {
	tl := tile.New("a", 100, 80, tile.Normal)
	idx := NewIndex([]*Entry{{Tile: tl, Position: tile.Position{X: 7, Y: 9}}})
	idx.Apply()
	assert.Equal(t, tile.Position{X: 7, Y: 9}, tl.Position())
}
