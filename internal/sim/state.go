package sim

type Phase int

const (
	PhaseMenu    Phase = iota
	PhasePlaying       // snakes move
	PhaseEnding        // shrink-out after every snake died
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseEnding:
		return "ending"
	}
	return "unknown"
}

// State is the whole simulated world. The game loop owns it; AdvanceTick
// is the only mutator besides the input methods.
type State struct {
	Config Config
	Grid   Grid
	Phase  Phase
	Snakes []*Snake

	Apple    Cell
	HasApple bool

	// TickWait is the current interval between ticks in seconds.
	TickWait float64

	// Ticks counts AdvanceTick calls that did something.
	Ticks uint64

	Events *EventBus

	paused bool  // hold tick after the shrink-out
	resume Phase // phase Start returns to
	moves  []move
	rng    *Rand
	occ    *occupancy
}

// New builds a session in the menu phase. The caller is expected to have
// validated cfg.
func New(cfg Config, rng *Rand) *State {
	s := &State{
		Config:   cfg,
		Grid:     Grid{Tiles: cfg.Tiles},
		Phase:    PhaseMenu,
		TickWait: cfg.TickWait,
		resume:   PhasePlaying,
		rng:      rng,
		occ:      newOccupancy(cfg.Capacity()),
	}
	capacity := cfg.Capacity()
	for i := 0; i < cfg.Players; i++ {
		head, dir := s.spawnPoint(i)
		s.Snakes = append(s.Snakes, NewSnake(i, head, dir, cfg.StartSize, capacity))
	}
	s.rollApple()
	return s
}

// spawnPoint places player i on every other row from the middle of the
// grid, heading right.
func (s *State) spawnPoint(i int) (Cell, Direction) {
	mid := s.Config.Tiles / 2
	return Cell{X: mid + s.Config.StartSize - 1, Y: 0, Z: mid + 2*i}, Right
}

// Start leaves the menu. It reports whether the phase changed.
func (s *State) Start() bool {
	if s.Phase != PhaseMenu {
		return false
	}
	s.Phase = s.resume
	s.emit(CueStart, -1, Cell{})
	return true
}

// Pause returns to the menu. A shrink-out in progress picks up where it
// left off once play resumes.
func (s *State) Pause() bool {
	if s.Phase == PhaseMenu {
		return false
	}
	s.resume = s.Phase
	s.Phase = PhaseMenu
	return true
}

func (s *State) Snake(id int) *Snake {
	if id < 0 || id >= len(s.Snakes) {
		return nil
	}
	return s.Snakes[id]
}

// AliveCount returns how many snakes are still moving.
func (s *State) AliveCount() int {
	n := 0
	for _, sn := range s.Snakes {
		if sn.Alive {
			n++
		}
	}
	return n
}

// Score is the size of the only snake, or the sum over all snakes.
func (s *State) Score() int {
	n := 0
	for _, sn := range s.Snakes {
		n += sn.Size()
	}
	return n
}

func (s *State) rollApple() {
	s.Apple, s.HasApple = placeApple(s.Grid, s.Snakes, s.rng, s.occ)
}

func (s *State) emit(c Cue, snake int, at Cell) {
	s.Events.Emit(Event{Cue: c, Snake: snake, At: at})
}
