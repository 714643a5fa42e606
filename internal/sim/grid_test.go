package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridWrap(t *testing.T) {
	g := Grid{Tiles: 10}
	assert.Equal(t, Cell{0, 0, 5}, g.Wrap(Cell{10, 0, 5}))
	assert.Equal(t, Cell{9, 1, 9}, g.Wrap(Cell{-1, 1, -1}))
	assert.Equal(t, Cell{3, 2, 4}, g.Wrap(Cell{3, 2, 4}), "vertical axis is not wrapped")
	assert.False(t, g.Contains(Cell{3, 2, 4}))
}

func TestGridIndexCoversVolume(t *testing.T) {
	g := Grid{Tiles: 5}
	seen := make(map[int]bool, g.Volume())
	for y := 0; y < Height; y++ {
		for z := 0; z < g.Tiles; z++ {
			for x := 0; x < g.Tiles; x++ {
				c := Cell{x, y, z}
				i := g.Index(c)
				assert.GreaterOrEqual(t, i, 0)
				assert.Less(t, i, g.Volume())
				assert.False(t, seen[i])
				seen[i] = true
				assert.Equal(t, c, g.CellAt(i))
			}
		}
	}
	assert.Len(t, seen, g.Volume())
}

func TestDirections(t *testing.T) {
	for d := Up; d <= Back; d++ {
		assert.Equal(t, d, d.Opposite().Opposite(), d.String())
		assert.Equal(t, Cell{}, d.Step().Add(d.Opposite().Step()), d.String())
		assert.Equal(t, d.Vertical(), d.Step().Y != 0, d.String())
	}
	assert.Equal(t, Cell{X: 1}, Right.Step())
	assert.Equal(t, Cell{Z: 1}, Up.Step())
	assert.Equal(t, "invalid", Direction(42).String())
}
