package sim

// move is one snake's plan for the current tick.
type move struct {
	snake *Snake
	dir   Direction
	head  Cell
	dead  bool
}

// AdvanceTick runs one simulation step. It does nothing in the menu.
func (s *State) AdvanceTick() {
	switch s.Phase {
	case PhasePlaying:
		s.tickPlaying()
	case PhaseEnding:
		s.tickEnding()
	default:
		return
	}
	s.Ticks++
}

func (s *State) tickPlaying() {
	moves := s.moves[:0]
	for _, sn := range s.Snakes {
		if !sn.Alive || sn.Size() == 0 {
			continue
		}
		dir := sn.correctedDirection()
		sn.Direction = dir
		head := s.Grid.Wrap(sn.Head().Add(dir.Step()))
		moves = append(moves, move{snake: sn, dir: dir, head: head})
	}
	s.moves = moves

	// Collisions are judged against the bodies as they were before anyone moved.
	for i := range moves {
		m := &moves[i]
		if m.snake.hitsSelf(m.head) {
			m.dead = true
			continue
		}
		for _, other := range s.Snakes {
			if other != m.snake && other.Occupies(m.head) {
				m.dead = true
				break
			}
		}
	}
	for i := range moves {
		for j := i + 1; j < len(moves); j++ {
			if moves[i].head == moves[j].head && !moves[i].dead && !moves[j].dead {
				moves[i].dead = true
				moves[j].dead = true
			}
		}
	}

	var eater *Snake
	for i := range moves {
		m := &moves[i]
		sn := m.snake
		if m.dead {
			sn.die(s.Config.StartSize)
			s.emit(CueDeath, sn.ID, m.head)
			continue
		}
		if s.HasApple && m.head == s.Apple {
			if !sn.grow(m.head) {
				sn.advance(m.head)
			}
			eater = sn
			s.emit(CueApple, sn.ID, m.head)
		} else {
			sn.advance(m.head)
		}
		sn.LastDirection = m.dir
		if !m.dir.Vertical() {
			sn.LastPlaneDirection = m.dir
		}
	}

	if eater != nil {
		s.growGrid(eater)
		s.rollApple()
	} else if !s.HasApple {
		// A full grid may have freed up.
		s.rollApple()
	}
	s.emit(CueMove, -1, Cell{})

	if len(s.Snakes) > 0 && s.AliveCount() == 0 {
		s.Phase = PhaseEnding
		s.TickWait = s.Config.DeathTickWait
		s.paused = false
	}
}

// growGrid widens the playfield once a snake covers a third of the floor.
func (s *State) growGrid(sn *Snake) {
	if !s.Config.GrowGrid || s.Grid.Tiles >= s.Config.MaxTiles {
		return
	}
	if sn.Size() > s.Grid.Tiles*s.Grid.Tiles/3 {
		s.Grid.Tiles++
	}
}

// tickEnding shrinks every snake by one segment per tick, then holds for
// one pause tick, then respawns.
func (s *State) tickEnding() {
	if s.paused {
		s.respawn()
		return
	}
	shrunk := false
	for _, sn := range s.Snakes {
		if sn.Size() > 0 {
			sn.shrink()
			shrunk = true
		}
	}
	if shrunk {
		s.TickWait *= s.Config.ShrinkFactor
		s.emit(CueHit, -1, Cell{})
		return
	}
	s.paused = true
	s.TickWait = s.Config.PauseTickWait
}

func (s *State) respawn() {
	s.paused = false
	inPlace := s.Config.Respawn == RespawnInPlace && s.remainsDisjoint()
	for i, sn := range s.Snakes {
		if inPlace && len(sn.remains) > 0 {
			sn.revive()
			continue
		}
		head, dir := s.spawnPoint(i)
		sn.reset(head, dir, s.Config.StartSize)
	}

	s.TickWait = s.Config.TickWait
	if !s.HasApple || !cellFree(s.Apple, s.Snakes) {
		s.rollApple()
	}
	s.resume = PhasePlaying
	if s.Config.MenuOnRespawn {
		s.Phase = PhaseMenu
		return
	}
	s.Phase = PhasePlaying
	s.emit(CueStart, -1, Cell{})
}

// remainsDisjoint reports whether the recorded death cells of all snakes
// can be revived without overlapping each other.
func (s *State) remainsDisjoint() bool {
	for i, a := range s.Snakes {
		for _, b := range s.Snakes[i+1:] {
			for _, c := range a.remains {
				for _, d := range b.remains {
					if c == d {
						return false
					}
				}
			}
		}
	}
	return true
}
