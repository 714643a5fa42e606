package sim

// SetPendingDirection queues d for snake id's next tick. Reversals and
// vertical moves off the top or bottom layer are ignored. It reports
// whether the heading was accepted.
func (s *State) SetPendingDirection(id int, d Direction) bool {
	if s.Phase != PhasePlaying || d > Back {
		return false
	}
	sn := s.Snake(id)
	if sn == nil || !sn.Alive || sn.Size() == 0 {
		return false
	}
	if d == sn.LastDirection.Opposite() {
		return false
	}
	y := sn.Head().Y
	if (d == Front && y >= Height-1) || (d == Back && y <= 0) {
		return false
	}
	sn.Direction = d
	return true
}

// ToggleVertical climbs from the floor layer or drops from the top one.
func (s *State) ToggleVertical(id int) bool {
	sn := s.Snake(id)
	if sn == nil || sn.Size() == 0 {
		return false
	}
	if sn.Head().Y == 0 {
		return s.SetPendingDirection(id, Front)
	}
	return s.SetPendingDirection(id, Back)
}
