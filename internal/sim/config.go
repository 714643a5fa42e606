package sim

import (
	"errors"
	"fmt"
)

// Respawn selects where snakes reappear after the shrink-out.
type Respawn int

const (
	// RespawnInPlace rebuilds each snake from the head-most cells it had
	// when it died, keeping its heading.
	RespawnInPlace Respawn = iota
	// RespawnAtStart rebuilds the initial layout.
	RespawnAtStart
)

// Config holds the tunables of a session. Times are in seconds.
type Config struct {
	Players   int
	Tiles     int
	MaxTiles  int  // upper bound for Tiles when GrowGrid is set
	GrowGrid  bool // widen the grid as the snake fills it
	StartSize int

	TickWait      float64 // interval between ticks while playing
	DeathTickWait float64 // interval right after a fatal collision
	PauseTickWait float64 // hold once every snake has shrunk away
	ShrinkFactor  float64 // TickWait multiplier per shrink tick

	Respawn       Respawn
	MenuOnRespawn bool
}

// DefaultConfig is the single-player game.
func DefaultConfig() Config {
	return Config{
		Players:       1,
		Tiles:         10,
		MaxTiles:      25,
		GrowGrid:      true,
		StartSize:     3,
		TickWait:      0.4,
		DeathTickWait: 0.1,
		PauseTickWait: 2.0,
		ShrinkFactor:  0.95,
		Respawn:       RespawnAtStart,
	}
}

// TwoPlayerConfig is the versus game: two single-cell snakes on a fixed grid.
func TwoPlayerConfig() Config {
	return Config{
		Players:       2,
		Tiles:         10,
		MaxTiles:      10,
		StartSize:     1,
		TickWait:      0.3,
		DeathTickWait: 0.1,
		PauseTickWait: 2.0,
		ShrinkFactor:  1.0,
		Respawn:       RespawnAtStart,
	}
}

// Capacity is the maximum body length any snake can reach.
func (c Config) Capacity() int {
	t := c.Tiles
	if c.GrowGrid && c.MaxTiles > t {
		t = c.MaxTiles
	}
	return t * t * Height
}

func (c Config) Validate() error {
	if c.Players < 1 {
		return errors.New("at least one player is required")
	}
	if c.Tiles < 2 {
		return fmt.Errorf("tiles %d: grid too small", c.Tiles)
	}
	if c.GrowGrid && c.MaxTiles < c.Tiles {
		return fmt.Errorf("max tiles %d below tiles %d", c.MaxTiles, c.Tiles)
	}
	if c.StartSize < 1 || c.Tiles/2+c.StartSize > c.Tiles {
		return fmt.Errorf("start size %d does not fit a %d grid", c.StartSize, c.Tiles)
	}
	// Players start on every other row from the middle of the grid.
	if c.Tiles/2+2*(c.Players-1) >= c.Tiles {
		return fmt.Errorf("%d players do not fit a %d grid", c.Players, c.Tiles)
	}
	if c.TickWait <= 0 || c.DeathTickWait <= 0 || c.PauseTickWait <= 0 {
		return errors.New("tick intervals must be positive")
	}
	if c.ShrinkFactor <= 0 {
		return errors.New("shrink factor must be positive")
	}
	return nil
}
