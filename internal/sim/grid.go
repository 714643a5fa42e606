package sim

// Height is the number of vertical layers. Layer 0 rests on the floor.
const Height = 2

// Cell is a tile coordinate. X and Z are horizontal, Y is the layer.
type Cell struct {
	X, Y, Z int
}

func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

type Direction uint8

const (
	Up Direction = iota
	Right
	Down
	Left
	Front // up one layer
	Back  // down one layer
)

var directionNames = [...]string{"up", "right", "down", "left", "front", "back"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "invalid"
}

// Vertical reports whether d moves between layers.
func (d Direction) Vertical() bool { return d == Front || d == Back }

func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Right:
		return Left
	case Left:
		return Right
	case Front:
		return Back
	}
	return Front
}

// Step returns the unit offset for d.
func (d Direction) Step() Cell {
	switch d {
	case Up:
		return Cell{Z: 1}
	case Down:
		return Cell{Z: -1}
	case Right:
		return Cell{X: 1}
	case Left:
		return Cell{X: -1}
	case Front:
		return Cell{Y: 1}
	case Back:
		return Cell{Y: -1}
	}
	return Cell{}
}

// Grid is the playfield: a Tiles x Height x Tiles box whose horizontal
// axes wrap around.
type Grid struct {
	Tiles int
}

// Wrap teleports horizontal coordinates through the walls.
// The vertical axis is left untouched.
func (g Grid) Wrap(c Cell) Cell {
	c.X = wrap(c.X, g.Tiles)
	c.Z = wrap(c.Z, g.Tiles)
	return c
}

func (g Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.Tiles &&
		c.Z >= 0 && c.Z < g.Tiles &&
		c.Y >= 0 && c.Y < Height
}

// Volume is the number of cells in the grid.
func (g Grid) Volume() int { return g.Tiles * g.Tiles * Height }

// Index maps an in-bounds cell to [0, Volume).
func (g Grid) Index(c Cell) int {
	return (c.Y*g.Tiles+c.Z)*g.Tiles + c.X
}

// CellAt is the inverse of Index.
func (g Grid) CellAt(i int) Cell {
	x := i % g.Tiles
	i /= g.Tiles
	z := i % g.Tiles
	return Cell{X: x, Y: i / g.Tiles, Z: z}
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
