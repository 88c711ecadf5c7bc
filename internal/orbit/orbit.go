// Package orbit computes positions on planar circular orbits.
//
// Angles are derived from absolute time, not from accumulated frame deltas:
// the angle at time now is now*speed, so a position depends only on its
// inputs and is recomputed from scratch on every call.
package orbit

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Position returns the point at the given orbital distance from the origin
// after now milliseconds at speed radians per millisecond. The orbit lies in
// the y = 0 plane.
func Position(distance, speed, now float64) r3.Vec {
	t := now * speed
	return r3.Vec{
		X: distance * math.Cos(t),
		Z: distance * math.Sin(t),
	}
}

// Around returns the point on a circle of the given radius centred on center.
// Only x and z are offset; the centre's y is kept.
func Around(center r3.Vec, radius, speed, now float64) r3.Vec {
	return r3.Add(center, Position(radius, speed, now))
}

// Period returns the time needed for one full revolution at speed.
// A body with zero speed never completes one and gets +Inf.
func Period(speed float64) float64 {
	if speed == 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi / math.Abs(speed)
}

// Angle returns the orbital angle at now, normalized to [0, 2π).
func Angle(speed, now float64) float64 {
	a := math.Mod(now*speed, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
