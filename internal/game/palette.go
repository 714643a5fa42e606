package game

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

// Vec returns the colour as normalised floats for a uniform.
func (c RGB) Vec() (float32, float32, float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255
}

func (c RGB) Add(dr, dg, db int) RGB {
	return RGB{R: clampU8(int(c.R) + dr), G: clampU8(int(c.G) + dg), B: clampU8(int(c.B) + db)}
}

func clampU8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

var Palette = struct {
	Background RGB
	Floor      RGB
	Shadow     RGB
	Apple      RGB
	Snakes     [2]RGB
	TitleLight RGB
	TitleDark  RGB
	Score      RGB
}{
	Background: RGB{R: 186, G: 160, B: 222}, // pastel purple
	Floor:      RGB{R: 250, G: 237, B: 89},
	Shadow:     RGB{R: 178, G: 178, B: 51},
	Apple:      RGB{R: 204, G: 0, B: 51},
	Snakes: [2]RGB{
		{R: 103, G: 36, B: 150},
		{R: 48, G: 36, B: 82},
	},
	TitleLight: RGB{R: 170, G: 230, B: 170},
	TitleDark:  RGB{R: 30, G: 120, B: 50},
	Score:      RGB{R: 103, G: 36, B: 150},
}

// segmentColor darkens body segments slightly toward the tail.
func segmentColor(base RGB, i, size int) RGB {
	d := -(size - i) * 3 / 4
	return base.Add(d, d, d)
}
