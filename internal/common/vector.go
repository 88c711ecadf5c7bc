package common

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// Bounds is an axis-aligned box: [minX, maxX, minY, maxY, minZ, maxZ].
type Bounds [6]float64

// CubeBounds returns a cube of the given side length centred at the origin.
func CubeBounds(side float64) Bounds {
	h := side / 2
	return Bounds{-h, h, -h, h, -h, h}
}

// Contains reports whether v lies inside the box, edges included.
func (b Bounds) Contains(v r3.Vec) bool {
	return v.X >= b[0] && v.X <= b[1] &&
		v.Y >= b[2] && v.Y <= b[3] &&
		v.Z >= b[4] && v.Z <= b[5]
}

// NewRandomVector creates a vector with random coordinates within given bounds.
func NewRandomVector(rng *rand.Rand, bounds Bounds) (r3.Vec, error) {
	var c [3]float64
	for i := 0; i < 3; i++ {
		min := bounds[i*2]
		max := bounds[i*2+1]
		if min > max {
			return r3.Vec{}, fmt.Errorf("bounds axis %d is inverted: min %.3f > max %.3f", i, min, max)
		}
		c[i] = min + rng.Float64()*(max-min)
	}
	return r3.Vec{X: c[0], Y: c[1], Z: c[2]}, nil
}

// PlanarRadius returns the distance of v from the y axis, i.e. sqrt(x² + z²).
func PlanarRadius(v r3.Vec) float64 {
	return math.Hypot(v.X, v.Z)
}

// IsFinite reports whether every coordinate of v is a finite number.
func IsFinite(v r3.Vec) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// FormatVector renders v with limited precision for log output.
func FormatVector(v r3.Vec) string {
	return fmt.Sprintf("[%.3f, %.3f, %.3f]", v.X, v.Y, v.Z)
}
