package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"snakinator/internal/sim"
)

// Binding maps one player's keys to grid headings.
type Binding struct {
	Keys     map[glfw.Key]sim.Direction
	Vertical glfw.Key
}

// Bindings per player id. Up and Down are swapped on the keyboard so that
// W moves away from the camera.
var Bindings = []Binding{
	{
		Keys: map[glfw.Key]sim.Direction{
			glfw.KeyS: sim.Up,
			glfw.KeyW: sim.Down,
			glfw.KeyD: sim.Right,
			glfw.KeyA: sim.Left,
		},
		Vertical: glfw.KeyE,
	},
	{
		Keys: map[glfw.Key]sim.Direction{
			glfw.KeyK: sim.Up,
			glfw.KeyI: sim.Down,
			glfw.KeyL: sim.Right,
			glfw.KeyJ: sim.Left,
		},
		Vertical: glfw.KeyO,
	},
}

// Action is what a frame of input asks of the loop.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionMute
)

type Input struct {
	prevKeys    map[glfw.Key]bool
	prevCursorX float64
	prevCursorY float64
	dragging    bool
	anyKey      bool
}

func NewInput() *Input {
	return &Input{
		prevKeys: make(map[glfw.Key]bool),
	}
}

// Attach records every non-Escape key press so the menu can start on
// any key.
func (in *Input) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Press && key != glfw.KeyEscape {
			in.anyKey = true
		}
	})
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Update applies this frame's keys to the simulation and reports a loop
// action. Accepted turns hurry the clock.
func (in *Input) Update(window *glfw.Window, state *sim.State, clock *sim.Clock) Action {
	anyKey := in.anyKey
	in.anyKey = false

	// Poll every bound key so edge state stays current across phases.
	escape := in.JustPressed(window, glfw.KeyEscape)
	mute := in.JustPressed(window, glfw.KeyM)
	type turn struct {
		id  int
		dir sim.Direction
	}
	var turns []turn
	var climbs []int
	for id, b := range Bindings {
		for key, dir := range b.Keys {
			if in.JustPressed(window, key) {
				turns = append(turns, turn{id, dir})
			}
		}
		if in.JustPressed(window, b.Vertical) {
			climbs = append(climbs, id)
		}
	}

	if mute {
		return ActionMute
	}

	switch state.Phase {
	case sim.PhaseMenu:
		if escape {
			return ActionQuit
		}
		if anyKey {
			state.Start()
			clock.Reset(glfw.GetTime())
		}
		return ActionNone
	case sim.PhasePlaying, sim.PhaseEnding:
		if escape {
			state.Pause()
			return ActionNone
		}
	}

	for _, t := range turns {
		if state.SetPendingDirection(t.id, t.dir) {
			clock.Hurry(TurnHurry)
		}
	}
	for _, id := range climbs {
		if state.ToggleVertical(id) {
			clock.Hurry(TurnHurry)
		}
	}
	return ActionNone
}

// UpdateDrag feeds left-button cursor motion to the camera.
func (in *Input) UpdateDrag(window *glfw.Window, cam *Camera) {
	cx, cy := window.GetCursorPos()
	down := window.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press
	if down && in.dragging {
		cam.Drag(cx-in.prevCursorX, cy-in.prevCursorY)
	}
	in.dragging = down
	in.prevCursorX, in.prevCursorY = cx, cy
}
