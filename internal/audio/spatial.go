package audio

import "math"

// PanEpsilon is the smallest pan magnitude that switches playback to the
// spatial path. Anything closer to zero plays as plain stereo.
const PanEpsilon = 0.01

// Point is a position on the horizontal plane around the listener.
// X grows to the right, Y grows forward.
type Point struct {
	X, Y float64
}

func (p Point) distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Layout places a virtual emitter relative to a listener with two ears.
type Layout struct {
	Listener Point
	LeftEar  Point
	RightEar Point
	Emitter  Point
}

// SpatialLayout builds the geometry for a pan value. The listener sits at the
// origin with ears one unit to each side; the emitter is one unit ahead and
// shifted sideways by pan, clamped to [-1, 1].
func SpatialLayout(pan float64) Layout {
	pan = math.Max(-1, math.Min(1, pan))
	return Layout{
		Listener: Point{0, 0},
		LeftEar:  Point{-1, 0},
		RightEar: Point{1, 0},
		Emitter:  Point{pan, 1},
	}
}

// Gains returns per-ear gains from inverse-square falloff, normalized so the
// nearer ear is at unity.
func (l Layout) Gains() (left, right float64) {
	dl := l.Emitter.distance(l.LeftEar)
	dr := l.Emitter.distance(l.RightEar)

	left = 1 / (dl * dl)
	right = 1 / (dr * dr)

	peak := math.Max(left, right)
	return left / peak, right / peak
}

// Balance converts the layout into a value for effects.Pan, which moves that
// share of the quieter channel into the louder one: -1 is full left, 1 is
// full right.
func (l Layout) Balance() float64 {
	left, right := l.Gains()
	if right >= left {
		return 1 - left
	}
	return right - 1
}
