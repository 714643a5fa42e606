package sim

// Clock gates simulation ticks against wall-clock time so the render loop
// can run at display rate. Times are in seconds.
type Clock struct {
	last float64
}

// Due reports whether more than wait seconds passed since the last tick,
// and if so marks now as the last tick. At most one tick fires per call.
func (c *Clock) Due(now, wait float64) bool {
	if now-c.last > wait {
		c.last = now
		return true
	}
	return false
}

// Hurry pulls the next tick forward by d seconds.
func (c *Clock) Hurry(d float64) { c.last -= d }

// Reset makes now the last tick.
func (c *Clock) Reset(now float64) { c.last = now }
