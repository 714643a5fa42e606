package game

import "math"

// approach moves cur toward target by at most maxDelta.
func approach(cur, target, maxDelta float32) float32 {
	if cur < target {
		cur += maxDelta
		if cur > target {
			cur = target
		}
		return cur
	}
	if cur > target {
		cur -= maxDelta
		if cur < target {
			cur = target
		}
	}
	return cur
}

// wave is a sine wobble used to animate HUD text.
func wave(now, freq, intensity, delay float64) float64 {
	return math.Sin((now-delay)*freq) * intensity
}
