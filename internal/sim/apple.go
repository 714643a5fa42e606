package sim

import "github.com/kamstrup/intmap"

// appleAttempts bounds the rejection sampling before falling back to an
// explicit scan of the free cells.
const appleAttempts = 64

// cellFree reports whether no snake, dead or alive, covers c.
func cellFree(c Cell, snakes []*Snake) bool {
	for _, s := range snakes {
		if s.Occupies(c) {
			return false
		}
	}
	return true
}

func randomCell(g Grid, rng *Rand) Cell {
	return Cell{X: rng.Intn(g.Tiles), Y: rng.Intn(Height), Z: rng.Intn(g.Tiles)}
}

// occupancy maps the grid index of every body cell to its owner.
type occupancy struct {
	m *intmap.Map[int, int]
}

func newOccupancy(capacity int) *occupancy {
	return &occupancy{m: intmap.New[int, int](capacity)}
}

func (o *occupancy) fill(g Grid, snakes []*Snake) int {
	o.m.Clear()
	n := 0
	for _, s := range snakes {
		for _, c := range s.Body() {
			if !g.Contains(c) {
				continue
			}
			i := g.Index(c)
			if _, ok := o.m.Get(i); !ok {
				n++
			}
			o.m.Put(i, s.ID)
		}
	}
	return n
}

func (o *occupancy) taken(i int) bool {
	_, ok := o.m.Get(i)
	return ok
}

// placeApple picks a uniformly random free cell. It returns false when the
// grid is full.
func placeApple(g Grid, snakes []*Snake, rng *Rand, occ *occupancy) (Cell, bool) {
	for i := 0; i < appleAttempts; i++ {
		c := randomCell(g, rng)
		if cellFree(c, snakes) {
			return c, true
		}
	}

	used := occ.fill(g, snakes)
	free := g.Volume() - used
	if free <= 0 {
		return Cell{}, false
	}
	pick := rng.Intn(free)
	for i := 0; i < g.Volume(); i++ {
		if occ.taken(i) {
			continue
		}
		if pick == 0 {
			return g.CellAt(i), true
		}
		pick--
	}
	return Cell{}, false
}
