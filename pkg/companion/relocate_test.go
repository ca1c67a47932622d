package companion

import (
	"bytes"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/jewelry/pkg/errors"
	"github.com/matzehuels/jewelry/pkg/tile"
)

func entry(id string, class tile.SizeClass, col, row int, x, y float64) *Entry {
	return &Entry{
		Tile:     tile.New(id, 100, 100, class),
		Position: tile.Position{X: x, Y: y},
		GridCol:  col,
		GridRow:  row,
	}
}

func TestTarget(t *testing.T) {
	col, row := Target(2, 3)
	assert.Equal(t, []int{3, 2}, []int{col, row}, "even column goes up")

	col, row = Target(1, 3)
	assert.Equal(t, []int{2, 4}, []int{col, row}, "odd column goes down")
}

func TestRelocateOddColumnSwaps(t *testing.T) {
	huge := entry("h", tile.Huge, 1, 0, 100, 0)
	comp := entry("c", tile.Companion, 2, 0, 200, 0)
	other := entry("o", tile.Normal, 2, 1, 250, 90)

	idx := NewIndex([]*Entry{huge, comp, other})
	rep := NewRelocator(nil).Relocate(idx)

	assert.Equal(t, 1, rep.Relocated)
	assert.Empty(t, rep.Skipped)
	assert.Equal(t, tile.Position{X: 250, Y: 90}, comp.Position)
	assert.Equal(t, tile.Position{X: 200, Y: 0}, other.Position)
	assert.Equal(t, tile.Position{X: 100, Y: 0}, huge.Position)

	// grid bookkeeping is untouched
	assert.Equal(t, 2, comp.GridCol)
	assert.Equal(t, 0, comp.GridRow)
	e, ok := idx.At(2, 1)
	require.True(t, ok)
	assert.Same(t, other, e)
}

func TestRelocateEvenColumnAtTopIsOutOfBounds(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel})

	huge := entry("h", tile.Huge, 2, 0, 200, 0)
	comp := entry("c", tile.Companion, 3, 0, 300, 0)

	rep := NewRelocator(logger).Relocate(NewIndex([]*Entry{huge, comp}))

	assert.Zero(t, rep.Relocated)
	require.Len(t, rep.Skipped, 1)
	assert.True(t, errors.Is(rep.Skipped[0], errors.ErrCodeOutOfBounds))
	assert.Equal(t, tile.Position{X: 300, Y: 0}, comp.Position)
	assert.Contains(t, buf.String(), "OUT_OF_BOUNDS")
}

func TestRelocateEvenColumnGoesUp(t *testing.T) {
	above := entry("a", tile.Normal, 3, 0, 300, 0)
	huge := entry("h", tile.Huge, 2, 1, 200, 90)
	comp := entry("c", tile.Companion, 3, 1, 300, 90)

	rep := NewRelocator(nil).Relocate(NewIndex([]*Entry{above, huge, comp}))

	assert.Equal(t, 1, rep.Relocated)
	assert.Equal(t, tile.Position{X: 300, Y: 0}, comp.Position)
	assert.Equal(t, tile.Position{X: 300, Y: 90}, above.Position)
}

func TestRelocateProtocolViolation(t *testing.T) {
	tests := []struct {
		name    string
		entries []*Entry
	}{
		{
			name:    "companion first",
			entries: []*Entry{entry("c", tile.Companion, 0, 0, 0, 0), entry("n", tile.Normal, 1, 0, 100, 0)},
		},
		{
			name: "companion after normal",
			entries: []*Entry{
				entry("h", tile.Huge, 0, 0, 0, 0),
				entry("n", tile.Normal, 1, 0, 100, 0),
				entry("c", tile.Companion, 2, 0, 200, 0),
				entry("x", tile.Normal, 1, 1, 100, 90),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := make([]tile.Position, len(tt.entries))
			for i, e := range tt.entries {
				before[i] = e.Position
			}

			rep := NewRelocator(nil).Relocate(NewIndex(tt.entries))

			require.Len(t, rep.Skipped, 1)
			assert.True(t, errors.Is(rep.Skipped[0], errors.ErrCodeProtocolViolation))
			for i, e := range tt.entries {
				assert.Equal(t, before[i], e.Position, e.Tile.ID)
			}
		})
	}
}

func TestRelocateContinuesAfterSkip(t *testing.T) {
	entries := []*Entry{
		entry("c0", tile.Companion, 0, 0, 0, 0),
		entry("h", tile.Huge, 1, 0, 100, 0),
		entry("c1", tile.Companion, 2, 0, 200, 0),
		entry("n", tile.Normal, 2, 1, 200, 90),
	}
	rep := NewRelocator(nil).Relocate(NewIndex(entries))

	assert.Equal(t, 1, rep.Relocated)
	assert.Len(t, rep.Skipped, 1)
	assert.Len(t, rep.SkippedMessages(), 1)
	assert.Equal(t, tile.Position{X: 200, Y: 90}, entries[2].Position)
}

func TestZeroRelocatorIsSharable(t *testing.T) {
	var r Relocator

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			huge := entry("h", tile.Huge, 1, 0, 100, 0)
			comp := entry("c", tile.Companion, 2, 0, 200, 0)
			other := entry("o", tile.Normal, 2, 1, 250, 90)
			rep := r.Relocate(NewIndex([]*Entry{huge, comp, other}))
			assert.Equal(t, 1, rep.Relocated)
		}()
	}
	wg.Wait()

	assert.Nil(t, r.Logger, "relocate must not install a logger on the receiver")
}
