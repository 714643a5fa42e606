package sim

// Snake is an ordered run of cells. Index 0 is the tail, the last index
// is the head. The body never grows past the capacity it was built with.
type Snake struct {
	ID    int
	Alive bool

	Direction          Direction // pending heading for the next tick
	LastDirection      Direction // heading applied on the previous tick
	LastPlaneDirection Direction // last horizontal heading applied

	body    []Cell
	remains []Cell // head-most cells at the moment of death
}

// NewSnake lays out a snake of size cells ending at head, extending
// backwards against dir.
func NewSnake(id int, head Cell, dir Direction, size, capacity int) *Snake {
	s := &Snake{
		ID:      id,
		body:    make([]Cell, 0, capacity),
		remains: make([]Cell, 0, size),
	}
	s.reset(head, dir, size)
	return s
}

func (s *Snake) reset(head Cell, dir Direction, size int) {
	back := dir.Opposite().Step()
	s.body = s.body[:size]
	c := head
	for i := size - 1; i >= 0; i-- {
		s.body[i] = c
		c = c.Add(back)
	}
	s.Alive = true
	s.Direction = dir
	s.LastDirection = dir
	if !dir.Vertical() {
		s.LastPlaneDirection = dir
	}
}

// revive restores the cells recorded at death.
func (s *Snake) revive() {
	s.body = append(s.body[:0], s.remains...)
	s.Alive = true
}

func (s *Snake) Size() int { return len(s.body) }

func (s *Snake) Capacity() int { return cap(s.body) }

// Body returns the live cells, tail first. The slice is owned by the snake.
func (s *Snake) Body() []Cell { return s.body }

func (s *Snake) Head() Cell { return s.body[len(s.body)-1] }

func (s *Snake) Occupies(c Cell) bool {
	for _, b := range s.body {
		if b == c {
			return true
		}
	}
	return false
}

// advance drops the tail and appends head.
func (s *Snake) advance(head Cell) {
	n := len(s.body)
	copy(s.body, s.body[1:])
	s.body[n-1] = head
}

// grow appends head without dropping the tail.
func (s *Snake) grow(head Cell) bool {
	if len(s.body) == cap(s.body) {
		return false
	}
	s.body = append(s.body, head)
	return true
}

// shrink removes the tail-most segment.
func (s *Snake) shrink() {
	if len(s.body) == 0 {
		return
	}
	copy(s.body, s.body[1:])
	s.body = s.body[:len(s.body)-1]
}

func (s *Snake) die(keep int) {
	s.Alive = false
	n := len(s.body)
	if keep > n {
		keep = n
	}
	s.remains = append(s.remains[:0], s.body[n-keep:]...)
}

// hitsSelf reports whether head lands on the body, ignoring the tail
// cell that is vacated this tick.
func (s *Snake) hitsSelf(head Cell) bool {
	for _, b := range s.body[1:] {
		if b == head {
			return true
		}
	}
	return false
}

// correctedDirection returns the heading to apply this tick: a vertical
// move leaving [0, Height) falls back to the last plane direction.
func (s *Snake) correctedDirection() Direction {
	y := s.Head().Y
	if (s.Direction == Front && y >= Height-1) || (s.Direction == Back && y <= 0) {
		return s.LastPlaneDirection
	}
	return s.Direction
}
