package gesture

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrDegenerateGeometry is returned when a frame or screen dimension would make
// the coordinate mapping divide by zero or produce non-finite values.
var ErrDegenerateGeometry = errors.New("degenerate geometry")

// Size is a width and height in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Validate rejects sizes that cannot be used as a divisor or scale factor.
func (s Size) Validate() error {
	if !positiveFinite(s.Width) || !positiveFinite(s.Height) {
		return fmt.Errorf("%w: size %vx%v", ErrDegenerateGeometry, s.Width, s.Height)
	}
	return nil
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Point is a 2D position in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func distance(a, b Point) float64 {
	return floats.Distance([]float64{a.X, a.Y}, []float64{b.X, b.Y}, 2)
}
