package game

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"snakinator/internal/sim"
)

const WindowTitle = "SNAKINATOR"

// Window defaults.
const (
	WindowWidth  = 1024
	WindowHeight = 768
)

// Lowres is the fraction of the framebuffer the 3D scene is rendered at
// before being blown up with nearest filtering.
const Lowres = 0.3

// Camera defaults. Angles are radians.
const (
	CameraFOV       = 0.7853982 // pi/4
	CameraFOVStep   = CameraFOV / 20
	CameraNear      = 0.01
	CameraFar       = 100
	CameraDragScale = 0.010
)

// Keyboard hurries the next tick by this much after a turn.
const TurnHurry = 0.5

// Settings is the resolved runtime configuration.
type Settings struct {
	Sim  sim.Config
	Seed uint64
}

// LoadSettings reads SNAKE_* environment overrides on top of the defaults:
//
//	SNAKE_SEED     RNG seed (default: clock)
//	SNAKE_PLAYERS  1 or 2
//	SNAKE_TILES    starting grid side
//	SNAKE_TICK     seconds between ticks
func LoadSettings() (Settings, error) {
	s := Settings{Sim: sim.DefaultConfig(), Seed: uint64(time.Now().UnixNano())}

	if v := os.Getenv("SNAKE_PLAYERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return s, fmt.Errorf("SNAKE_PLAYERS: %w", err)
		}
		if n == 2 {
			s.Sim = sim.TwoPlayerConfig()
		} else {
			s.Sim.Players = n
		}
	}
	if v := os.Getenv("SNAKE_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return s, fmt.Errorf("SNAKE_SEED: %w", err)
		}
		s.Seed = seed
	}
	if v := os.Getenv("SNAKE_TILES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return s, fmt.Errorf("SNAKE_TILES: %w", err)
		}
		s.Sim.Tiles = n
		if s.Sim.MaxTiles < n {
			s.Sim.MaxTiles = n
		}
	}
	if v := os.Getenv("SNAKE_TICK"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return s, fmt.Errorf("SNAKE_TICK: %w", err)
		}
		s.Sim.TickWait = f
	}

	if err := s.Sim.Validate(); err != nil {
		return s, fmt.Errorf("config: %w", err)
	}
	return s, nil
}
