package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlaying(t *testing.T, cfg Config, seed uint64) *State {
	t.Helper()
	require.NoError(t, cfg.Validate())
	s := New(cfg, NewRand(seed))
	require.True(t, s.Start())
	return s
}

// place overwrites a snake's body and heading.
func place(sn *Snake, dir Direction, cells ...Cell) {
	sn.body = append(sn.body[:0], cells...)
	sn.Alive = true
	sn.Direction = dir
	sn.LastDirection = dir
	if !dir.Vertical() {
		sn.LastPlaneDirection = dir
	}
}

func putApple(s *State, c Cell) {
	s.Apple = c
	s.HasApple = true
}

func TestTickMovesOneCell(t *testing.T) {
	s := newPlaying(t, DefaultConfig(), 1)
	sn := s.Snakes[0]
	place(sn, Right, Cell{4, 0, 5}, Cell{5, 0, 5}, Cell{6, 0, 5})
	putApple(s, Cell{0, 1, 0})

	s.AdvanceTick()

	assert.Equal(t, []Cell{{5, 0, 5}, {6, 0, 5}, {7, 0, 5}}, sn.Body())
	assert.Equal(t, 3, sn.Size())
	assert.Equal(t, PhasePlaying, s.Phase)
	assert.Equal(t, Right, sn.LastDirection)
	assert.Equal(t, Right, sn.LastPlaneDirection)
}

func TestTickWrapsThroughWalls(t *testing.T) {
	cases := []struct {
		name string
		dir  Direction
		head Cell
		want Cell
	}{
		{"right edge", Right, Cell{9, 0, 5}, Cell{0, 0, 5}},
		{"left edge", Left, Cell{0, 0, 5}, Cell{9, 0, 5}},
		{"up edge", Up, Cell{5, 1, 9}, Cell{5, 1, 0}},
		{"down edge", Down, Cell{5, 0, 0}, Cell{5, 0, 9}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.GrowGrid = false
			s := newPlaying(t, cfg, 2)
			sn := s.Snakes[0]
			tail := s.Grid.Wrap(tc.head.Add(tc.dir.Opposite().Step()))
			place(sn, tc.dir, tail, tc.head)
			putApple(s, Cell{3, 1, 3})

			s.AdvanceTick()

			require.Equal(t, PhasePlaying, s.Phase)
			assert.Equal(t, tc.want, sn.Head())
			for _, c := range sn.Body() {
				assert.True(t, s.Grid.Contains(c), "cell %v out of bounds", c)
			}
		})
	}
}

func TestTickEatsApple(t *testing.T) {
	s := newPlaying(t, DefaultConfig(), 3)
	sn := s.Snakes[0]
	place(sn, Right, Cell{4, 0, 5}, Cell{5, 0, 5}, Cell{6, 0, 5})
	putApple(s, Cell{7, 0, 5})

	s.AdvanceTick()

	assert.Equal(t, []Cell{{4, 0, 5}, {5, 0, 5}, {6, 0, 5}, {7, 0, 5}}, sn.Body())
	require.True(t, s.HasApple)
	assert.False(t, sn.Occupies(s.Apple))
	assert.True(t, s.Grid.Contains(s.Apple))
}

func TestVerticalMoves(t *testing.T) {
	t.Run("climb from the floor", func(t *testing.T) {
		s := newPlaying(t, DefaultConfig(), 4)
		sn := s.Snakes[0]
		place(sn, Right, Cell{5, 0, 5}, Cell{6, 0, 5})
		putApple(s, Cell{0, 0, 0})
		sn.Direction = Front

		s.AdvanceTick()

		assert.Equal(t, Cell{6, 1, 5}, sn.Head())
		assert.Equal(t, Front, sn.LastDirection)
		assert.Equal(t, Right, sn.LastPlaneDirection)
	})

	t.Run("illegal exit falls back to plane direction", func(t *testing.T) {
		s := newPlaying(t, DefaultConfig(), 5)
		sn := s.Snakes[0]
		place(sn, Up, Cell{5, 1, 4}, Cell{5, 1, 5})
		putApple(s, Cell{0, 0, 0})
		sn.Direction = Front

		s.AdvanceTick()

		assert.Equal(t, Cell{5, 1, 6}, sn.Head())
		assert.Equal(t, Up, sn.Direction)
		assert.Equal(t, Up, sn.LastDirection)
	})

	t.Run("cannot dig below the floor", func(t *testing.T) {
		s := newPlaying(t, DefaultConfig(), 6)
		sn := s.Snakes[0]
		place(sn, Left, Cell{5, 0, 5}, Cell{4, 0, 5})
		putApple(s, Cell{0, 1, 0})
		sn.Direction = Back

		s.AdvanceTick()

		assert.Equal(t, Cell{3, 0, 5}, sn.Head())
	})
}

func TestSelfCollisionEndsGame(t *testing.T) {
	s := newPlaying(t, DefaultConfig(), 7)
	sn := s.Snakes[0]
	body := []Cell{{3, 0, 5}, {4, 0, 5}, {4, 0, 4}, {5, 0, 4}, {5, 0, 5}}
	place(sn, Up, body...)
	putApple(s, Cell{0, 1, 0})
	sn.Direction = Left

	s.AdvanceTick()

	assert.Equal(t, PhaseEnding, s.Phase)
	assert.False(t, sn.Alive)
	assert.Equal(t, body, sn.Body(), "a dead snake does not move")
	assert.Equal(t, s.Config.DeathTickWait, s.TickWait)
}

func TestMovingIntoVacatedTailIsSafe(t *testing.T) {
	s := newPlaying(t, DefaultConfig(), 8)
	sn := s.Snakes[0]
	place(sn, Down, Cell{4, 0, 4}, Cell{4, 0, 5}, Cell{5, 0, 5}, Cell{5, 0, 4})
	putApple(s, Cell{0, 1, 0})
	sn.Direction = Left

	s.AdvanceTick()

	assert.Equal(t, PhasePlaying, s.Phase)
	assert.True(t, sn.Alive)
	assert.Equal(t, Cell{4, 0, 4}, sn.Head())
}

func TestEndingShrinksPausesAndRespawns(t *testing.T) {
	for _, mode := range []Respawn{RespawnInPlace, RespawnAtStart} {
		cfg := DefaultConfig()
		cfg.Respawn = mode
		s := newPlaying(t, cfg, 9)
		sn := s.Snakes[0]
		place(sn, Right, Cell{1, 0, 2}, Cell{2, 0, 2}, Cell{3, 0, 2})
		sn.die(cfg.StartSize)
		s.Phase = PhaseEnding
		s.TickWait = 0.1

		for want := 2; want >= 0; want-- {
			s.AdvanceTick()
			assert.Equal(t, want, sn.Size())
			assert.Equal(t, PhaseEnding, s.Phase)
		}
		assert.InDelta(t, 0.1*0.95*0.95*0.95, s.TickWait, 1e-9)

		s.AdvanceTick()
		assert.Equal(t, PhaseEnding, s.Phase)
		assert.Equal(t, 0, sn.Size())
		assert.Equal(t, 2.0, s.TickWait)

		s.AdvanceTick()
		assert.Equal(t, PhasePlaying, s.Phase)
		assert.Equal(t, cfg.StartSize, sn.Size())
		assert.Equal(t, cfg.TickWait, s.TickWait)
		assert.True(t, sn.Alive)
		if mode == RespawnInPlace {
			assert.Equal(t, []Cell{{1, 0, 2}, {2, 0, 2}, {3, 0, 2}}, sn.Body())
		} else {
			assert.Equal(t, []Cell{{5, 0, 5}, {6, 0, 5}, {7, 0, 5}}, sn.Body())
		}
		require.True(t, s.HasApple)
		assert.False(t, sn.Occupies(s.Apple))
	}
}

func TestRespawnToMenu(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MenuOnRespawn = true
	s := newPlaying(t, cfg, 10)
	s.Snakes[0].die(cfg.StartSize)
	s.Phase = PhaseEnding
	for i := 0; i < 5; i++ {
		s.AdvanceTick()
	}
	assert.Equal(t, PhaseMenu, s.Phase)

	s.AdvanceTick()
	assert.Equal(t, PhaseMenu, s.Phase, "menu does not tick")

	require.True(t, s.Start())
	assert.Equal(t, PhasePlaying, s.Phase)
}

func TestPauseResumesEnding(t *testing.T) {
	s := newPlaying(t, DefaultConfig(), 11)
	s.Snakes[0].die(3)
	s.Phase = PhaseEnding

	require.True(t, s.Pause())
	assert.False(t, s.Pause())
	s.AdvanceTick()
	assert.Equal(t, 3, s.Snakes[0].Size())

	require.True(t, s.Start())
	assert.Equal(t, PhaseEnding, s.Phase)
}

func TestTwoSnakes(t *testing.T) {
	t.Run("running into the other body kills only the runner", func(t *testing.T) {
		s := newPlaying(t, TwoPlayerConfig(), 12)
		a, b := s.Snakes[0], s.Snakes[1]
		place(a, Right, Cell{2, 0, 2}, Cell{3, 0, 2})
		place(b, Up, Cell{4, 0, 1}, Cell{4, 0, 2}, Cell{4, 0, 3})
		putApple(s, Cell{9, 1, 9})

		s.AdvanceTick()

		assert.False(t, a.Alive)
		assert.True(t, b.Alive)
		assert.Equal(t, []Cell{{4, 0, 2}, {4, 0, 3}, {4, 0, 4}}, b.Body())
		assert.Equal(t, PhasePlaying, s.Phase)

		// The survivor keeps playing; the dead body stays an obstacle.
		s.AdvanceTick()
		assert.True(t, b.Alive)
		assert.Equal(t, []Cell{{2, 0, 2}, {3, 0, 2}}, a.Body())
	})

	t.Run("the other tail is not vacated for the runner", func(t *testing.T) {
		s := newPlaying(t, TwoPlayerConfig(), 13)
		a, b := s.Snakes[0], s.Snakes[1]
		place(a, Right, Cell{2, 0, 2}, Cell{3, 0, 2})
		place(b, Up, Cell{4, 0, 2}, Cell{4, 0, 3})
		putApple(s, Cell{9, 1, 9})

		s.AdvanceTick()

		assert.False(t, a.Alive)
		assert.True(t, b.Alive)
	})

	t.Run("head to head kills both", func(t *testing.T) {
		s := newPlaying(t, TwoPlayerConfig(), 14)
		a, b := s.Snakes[0], s.Snakes[1]
		place(a, Right, Cell{2, 0, 2}, Cell{3, 0, 2})
		place(b, Left, Cell{6, 0, 2}, Cell{5, 0, 2})
		putApple(s, Cell{9, 1, 9})

		s.AdvanceTick()

		assert.False(t, a.Alive)
		assert.False(t, b.Alive)
		assert.Equal(t, PhaseEnding, s.Phase)

		s.AdvanceTick()
		assert.Equal(t, PhaseEnding, s.Phase)
		assert.Equal(t, 1, a.Size())
		assert.Equal(t, 1, b.Size())
		assert.Equal(t, s.Config.DeathTickWait, s.TickWait, "two-player shrink keeps a fixed pace")
	})

	t.Run("respawn restores both at their start rows", func(t *testing.T) {
		s := newPlaying(t, TwoPlayerConfig(), 15)
		for _, sn := range s.Snakes {
			sn.die(1)
		}
		s.Phase = PhaseEnding
		for i := 0; i < 3; i++ {
			s.AdvanceTick()
		}
		require.Equal(t, PhasePlaying, s.Phase)
		assert.Equal(t, []Cell{{5, 0, 5}}, s.Snakes[0].Body())
		assert.Equal(t, []Cell{{5, 0, 7}}, s.Snakes[1].Body())
		assert.Equal(t, 2, s.AliveCount())
	})
}

func TestGridGrowsAsSnakeFillsIt(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tiles = 4
	cfg.MaxTiles = 5
	cfg.StartSize = 2
	s := newPlaying(t, cfg, 16)
	sn := s.Snakes[0]
	place(sn, Right, Cell{0, 0, 0}, Cell{1, 0, 0}, Cell{2, 0, 0}, Cell{3, 0, 0}, Cell{3, 0, 1})
	sn.Direction = Left
	sn.LastDirection = Up
	putApple(s, Cell{2, 0, 1})

	s.AdvanceTick()

	assert.Equal(t, 6, sn.Size())
	assert.Equal(t, 5, s.Grid.Tiles)
	require.True(t, s.HasApple)
	assert.False(t, sn.Occupies(s.Apple))

	// Already at the cap.
	sn.Direction = Left
	putApple(s, Cell{1, 0, 1})
	s.AdvanceTick()
	assert.Equal(t, 5, s.Grid.Tiles)
}

func TestRandomPlayKeepsInvariants(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		cfg := DefaultConfig()
		if seed%2 == 0 {
			cfg = TwoPlayerConfig()
		}
		s := newPlaying(t, cfg, seed)
		rng := NewRand(seed * 7919)
		for tick := 0; tick < 500; tick++ {
			for id := range s.Snakes {
				if rng.Intn(3) == 0 {
					s.SetPendingDirection(id, Direction(rng.Intn(6)))
				}
			}

			phase := s.Phase
			sizes := make([]int, len(s.Snakes))
			heads := make([]Cell, len(s.Snakes))
			for i, sn := range s.Snakes {
				sizes[i] = sn.Size()
				if sn.Size() > 0 {
					heads[i] = sn.Head()
				}
			}
			apple := s.Apple

			s.AdvanceTick()

			for i, sn := range s.Snakes {
				assert.LessOrEqual(t, sn.Size(), sn.Capacity())
				for _, c := range sn.Body() {
					require.True(t, s.Grid.Contains(c), "seed %d tick %d: %v out of bounds", seed, tick, c)
				}
				if phase != PhasePlaying || !sn.Alive {
					continue
				}
				if sn.Head() == apple {
					assert.Equal(t, sizes[i]+1, sn.Size())
				} else {
					assert.Equal(t, sizes[i], sn.Size())
					assert.Equal(t, 1, stepDistance(s.Grid, heads[i], sn.Head()))
				}
			}
			if s.Phase == PhasePlaying && s.HasApple {
				assert.True(t, cellFree(s.Apple, s.Snakes), "seed %d tick %d: apple on a body", seed, tick)
			}
		}
	}
}

// stepDistance counts the axes on which a and b differ, treating wrapped
// neighbours as one apart.
func stepDistance(g Grid, a, b Cell) int {
	near := func(p, q, n int) int {
		d := p - q
		if d < 0 {
			d = -d
		}
		if n > 0 && d == n-1 {
			d = 1
		}
		return d
	}
	return near(a.X, b.X, g.Tiles) + near(a.Y, b.Y, 0) + near(a.Z, b.Z, g.Tiles)
}

func TestTickEmitsCues(t *testing.T) {
	s := New(DefaultConfig(), NewRand(17))
	s.Events = NewEventBus()
	var got []Cue
	s.Events.SubscribeAll(func(e Event) { got = append(got, e.Cue) })

	s.AdvanceTick()
	assert.Empty(t, got)

	require.True(t, s.Start())
	sn := s.Snakes[0]
	place(sn, Right, Cell{4, 0, 5}, Cell{5, 0, 5}, Cell{6, 0, 5})
	putApple(s, Cell{7, 0, 5})
	s.AdvanceTick()

	place(sn, Up, Cell{3, 0, 5}, Cell{4, 0, 5}, Cell{4, 0, 4}, Cell{5, 0, 4}, Cell{5, 0, 5})
	sn.Direction = Left
	putApple(s, Cell{0, 1, 0})
	s.AdvanceTick()
	s.AdvanceTick()

	assert.Equal(t, []Cue{CueStart, CueApple, CueMove, CueDeath, CueMove, CueHit}, got)
}
