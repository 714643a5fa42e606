package game

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"snakinator/internal/sim"
)

// Death shake, in world units and seconds.
const (
	deathShake     = 0.12
	deathShakeTime = 0.4
)

func RunDesktop() {
	runtime.LockOSThread()

	settings, err := LoadSettings()
	if err != nil {
		panic(err)
	}

	window, err := initWindow()
	if err != nil {
		panic(err)
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		panic(fmt.Errorf("gl init: %w", err))
	}

	audio, err := NewAudio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "audio init failed (continuing without sound): %v\n", err)
		audio = nil
	}
	defer audio.Close()

	// GL state.
	gl.Disable(gl.CULL_FACE)
	gl.DepthFunc(gl.LESS)

	rend, err := NewRenderer()
	if err != nil {
		panic(fmt.Errorf("renderer: %w", err))
	}
	defer rend.Destroy()

	state := sim.New(settings.Sim, sim.NewRand(settings.Seed))
	bus := sim.NewEventBus()
	state.Events = bus

	cam := NewCamera(state.Grid.Tiles, settings.Seed^0xCA3E7A)
	bus.Subscribe(sim.CueDeath, func(sim.Event) {
		cam.AddShake(deathShake, deathShakeTime)
	})
	audio.Attach(bus)
	audio.StartSong()

	input := NewInput()
	input.Attach(window)

	var (
		clock sim.Clock
		snap  sim.Snapshot
	)
	last := glfw.GetTime()
	clock.Reset(last)
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > 0.1 {
			dt = 0.1
		}

		glfw.PollEvents()
		switch input.Update(window, state, &clock) {
		case ActionQuit:
			window.SetShouldClose(true)
			continue
		case ActionMute:
			audio.ToggleMute()
		}
		input.UpdateDrag(window, &cam)

		if state.Phase != sim.PhaseMenu && clock.Due(now, state.TickWait) {
			state.AdvanceTick()
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		state.Snapshot(&snap)
		cam.Fit(snap.Tiles)
		cam.Update(dt)

		rend.BeginFrame(fbW, fbH)
		rend.DrawWorld(&snap, &cam, now, fbW, fbH)
		rend.EndScene(fbW, fbH)

		// HUD at full resolution, no shake.
		RenderHUD(rend, &snap, audio.Muted(), fbW, fbH, now)

		window.SwapBuffers()
	}
}
