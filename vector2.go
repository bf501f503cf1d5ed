package walkabout

import "math"

type Vector2 struct {
	X float64
	Y float64
}

func (v Vector2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns a unit vector in the direction of v, or the zero vector
// when v has no length.
func (v Vector2) Normalize() Vector2 {
	magnitude := v.Length()

	if magnitude == 0 {
		return Vector2{X: 0, Y: 0}
	}

	return Vector2{X: v.X / magnitude, Y: v.Y / magnitude}
}
