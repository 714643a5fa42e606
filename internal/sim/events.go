package sim

// Cue names a sound the simulator wants played. Cues are fire-and-forget.
type Cue int

const (
	CueMove Cue = iota
	CueApple
	CueHit
	CueDeath
	CueStart
)

type Event struct {
	Cue   Cue
	Snake int // -1 when the event is not tied to a snake
	At    Cell
}

type EventHandler func(Event)

type EventBus struct {
	handlers map[Cue][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[Cue][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(c Cue, fn EventHandler) {
	eb.handlers[c] = append(eb.handlers[c], fn)
}

// SubscribeAll registers fn for every cue.
func (eb *EventBus) SubscribeAll(fn EventHandler) {
	for c := CueMove; c <= CueStart; c++ {
		eb.Subscribe(c, fn)
	}
}

func (eb *EventBus) Emit(e Event) {
	if eb == nil {
		return
	}
	for _, fn := range eb.handlers[e.Cue] {
		fn(e)
	}
}
