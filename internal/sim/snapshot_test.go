package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotDoesNotAlias(t *testing.T) {
	s := newPlaying(t, TwoPlayerConfig(), 41)
	putApple(s, Cell{0, 1, 0})

	var snap Snapshot
	s.Snapshot(&snap)
	require.Len(t, snap.Snakes, 2)
	assert.Equal(t, s.Snakes[0].Body(), snap.Snakes[0].Body)
	assert.Equal(t, Cell{0, 1, 0}, snap.Apple)
	assert.Equal(t, 10, snap.Tiles)
	assert.Equal(t, PhasePlaying, snap.Phase)
	assert.Equal(t, 2, snap.Score)
	assert.Equal(t, 2, snap.Alive)

	before := append([]Cell(nil), snap.Snakes[0].Body...)
	s.AdvanceTick()
	assert.Equal(t, before, snap.Snakes[0].Body)

	s.Snapshot(&snap)
	assert.Equal(t, s.Snakes[0].Body(), snap.Snakes[0].Body)
}
