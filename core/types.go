package core

import (
	"github.com/rudraojhaif/AetherGL/math"
)

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)

// Lerp linearly interpolates between two colors. Alpha is forced to 1;
// the renderer treats all light and sky colors as opaque.
func (c Color) Lerp(other Color, t float32) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: 1,
	}
}

// Scale multiplies the RGB channels by s, leaving alpha untouched.
func (c Color) Scale(s float32) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A}
}

// Vertex is the interleaved GPU vertex layout shared by every mesh in the
// engine. Field order matters: the renderer derives attribute offsets from it.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
}
