package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"snakinator/internal/sim"
)

// Camera looks at the middle of the grid from above and to the side. Its
// goal framing widens as the grid grows; the eye drifts slowly on top.
type Camera struct {
	Pos    mgl32.Vec3 // eye, world units (one tile = 1)
	Center mgl32.Vec3 // look-at point
	FOV    float32    // vertical, radians

	goalPos    mgl32.Vec3
	goalCenter mgl32.Vec3
	goalFOV    float32
	tiles      int

	// Screen shake.
	ShakeTimer     float64
	ShakeIntensity float64
	shake          mgl32.Vec3
	rng            *sim.Rand
}

func NewCamera(tiles int, seed uint64) Camera {
	t := float32(tiles)
	c := Camera{
		Pos:    mgl32.Vec3{t * 0.6, t * 1.5, t * 1.3},
		Center: mgl32.Vec3{t / 2, 0.5, t / 2},
		FOV:    CameraFOV,
		tiles:  tiles,
		rng:    sim.NewRand(seed),
	}
	c.goalPos = c.Pos
	c.goalCenter = c.Center
	c.goalFOV = c.FOV
	return c
}

// Fit retargets the framing when the grid changed size.
func (c *Camera) Fit(tiles int) {
	if tiles == c.tiles {
		return
	}
	grow := tiles - c.tiles
	c.tiles = tiles
	t := float32(tiles)
	c.goalPos = mgl32.Vec3{t * 0.6, t * 1.7, t * 1.6}
	c.goalCenter = mgl32.Vec3{t / 2, 0.5, t / 2}
	c.goalFOV += CameraFOVStep * float32(grow)
}

// Drag nudges the eye by a mouse delta in window pixels.
func (c *Camera) Drag(dx, dy float64) {
	k := float32(CameraDragScale) * float32(c.tiles) / 10
	d := mgl32.Vec3{-float32(dx) * k, -float32(dy) * k * 0.1, float32(dy) * k}
	c.Pos = c.Pos.Add(d)
	c.goalPos = c.goalPos.Add(d)
}

// AddShake triggers screen shake with given intensity and duration.
func (c *Camera) AddShake(intensity, duration float64) {
	if intensity > c.ShakeIntensity {
		c.ShakeIntensity = intensity
	}
	if duration > c.ShakeTimer {
		c.ShakeTimer = duration
	}
}

// Update eases toward the goal framing and advances drift and shake.
func (c *Camera) Update(dt float64) {
	step := float32(dt) * 0.6
	for i := 0; i < 3; i++ {
		if c.Pos[i] < c.goalPos[i] {
			c.Pos[i] = approach(c.Pos[i], c.goalPos[i], step)
		}
		c.Center[i] = approach(c.Center[i], c.goalCenter[i], step*0.1)
	}
	c.FOV = approach(c.FOV, c.goalFOV, float32(dt)*0.06)

	if c.ShakeTimer <= 0 {
		c.shake = mgl32.Vec3{}
		c.ShakeIntensity = 0
		return
	}
	c.ShakeTimer = math.Max(0, c.ShakeTimer-dt)
	t := c.ShakeTimer
	mag := float32(c.ShakeIntensity * (t / (t + 0.08)))
	c.shake = mgl32.Vec3{
		(float32(c.rng.Intn(2001))/1000 - 1) * mag,
		(float32(c.rng.Intn(2001))/1000 - 1) * mag,
		(float32(c.rng.Intn(2001))/1000 - 1) * mag,
	}
}

// eye is the position with drift and shake applied.
func (c *Camera) eye(now float64) mgl32.Vec3 {
	k := float32(c.tiles) / 10
	drift := mgl32.Vec3{
		float32(math.Cos(now*math.Pi/6)) * 0.34 * k,
		float32(math.Cos(now*math.Pi/4)) * 1.5 * k,
		-float32(math.Cos(now*math.Pi/9)) * 1.2 * k,
	}
	return c.Pos.Add(drift).Add(c.shake)
}

func (c *Camera) View(now float64) mgl32.Mat4 {
	return mgl32.LookAtV(c.eye(now), c.Center, mgl32.Vec3{0, 1, 0})
}

func (c *Camera) Projection(fbW, fbH int) mgl32.Mat4 {
	aspect := float32(fbW) / float32(max(fbH, 1))
	return mgl32.Perspective(c.FOV, aspect, CameraNear, CameraFar)
}
