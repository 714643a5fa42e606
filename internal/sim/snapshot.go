package sim

// SnakeView is the render-side copy of one snake.
type SnakeView struct {
	ID    int
	Body  []Cell // tail first
	Alive bool
}

// Snapshot is everything a frame needs to draw the world and the HUD.
// It never aliases State memory.
type Snapshot struct {
	Snakes   []SnakeView
	Apple    Cell
	HasApple bool
	Tiles    int
	Phase    Phase
	Score    int
	Alive    int
}

// Snapshot copies the world into dst, reusing its buffers.
func (s *State) Snapshot(dst *Snapshot) {
	if cap(dst.Snakes) < len(s.Snakes) {
		dst.Snakes = make([]SnakeView, len(s.Snakes))
	}
	dst.Snakes = dst.Snakes[:len(s.Snakes)]
	for i, sn := range s.Snakes {
		v := &dst.Snakes[i]
		v.ID = sn.ID
		v.Alive = sn.Alive
		v.Body = append(v.Body[:0], sn.Body()...)
	}
	dst.Apple = s.Apple
	dst.HasApple = s.HasApple
	dst.Tiles = s.Grid.Tiles
	dst.Phase = s.Phase
	dst.Score = s.Score()
	dst.Alive = s.AliveCount()
}
