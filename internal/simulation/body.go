package simulation

import (
	"fmt"
	"math"
	"strings"

	"solar-system-sim/internal/orbit"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

// Body is an object on a circular orbit around the origin. The sun is a Body
// with zero distance.
type Body struct {
	id         string
	name       string
	distance   float64 // orbit radius
	speed      float64 // radians per millisecond
	position   r3.Vec
	appearance Appearance
	ring       *Ring
}

// NewBody creates a body at its position for time zero.
func NewBody(name string, distance, speed float64, look Appearance) (*Body, error) {
	if err := validateOrbit(name, distance, speed, look); err != nil {
		return nil, err
	}
	b := &Body{
		id:         newID(name),
		name:       name,
		distance:   distance,
		speed:      speed,
		appearance: look,
	}
	b.Update(0)
	return b, nil
}

// ID returns the unique identifier of the body.
func (b *Body) ID() string {
	return b.id
}

// Name returns the name of the body.
func (b *Body) Name() string {
	return b.name
}

// Position returns the current position of the body.
func (b *Body) Position() r3.Vec {
	return b.position
}

// Distance returns the orbit radius.
func (b *Body) Distance() float64 {
	return b.distance
}

// Speed returns the angular speed in radians per millisecond.
func (b *Body) Speed() float64 {
	return b.speed
}

// Appearance returns how the body is drawn.
func (b *Body) Appearance() Appearance {
	return b.appearance
}

// Ring returns the attached ring, or nil.
func (b *Body) Ring() *Ring {
	return b.ring
}

// SetRing attaches a ring to the body, replacing any previous one.
func (b *Body) SetRing(r *Ring) error {
	if r != nil && (r.Radius <= 0 || r.Tube <= 0 || r.RadialSegments < 2 || r.TubularSegments < 3) {
		return fmt.Errorf("%w: ring of %s: radius %.3f tube %.3f segments %dx%d",
			ErrInvalidBody, b.name, r.Radius, r.Tube, r.RadialSegments, r.TubularSegments)
	}
	b.ring = r
	return nil
}

// Update places the body on its orbit for the absolute time now.
func (b *Body) Update(now float64) {
	b.position = orbit.Position(b.distance, b.speed, now)
}

func newID(name string) string {
	return fmt.Sprintf("%s-%s", strings.ToLower(name), uuid.NewString()[:8])
}

func validateOrbit(name string, distance, speed float64, look Appearance) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidBody)
	case distance < 0 || math.IsNaN(distance) || math.IsInf(distance, 0):
		return fmt.Errorf("%w: %s: orbital distance must be finite and non-negative, got %v", ErrInvalidBody, name, distance)
	case math.IsNaN(speed) || math.IsInf(speed, 0):
		return fmt.Errorf("%w: %s: angular speed must be finite, got %v", ErrInvalidBody, name, speed)
	case look.Radius < 0:
		return fmt.Errorf("%w: %s: radius must be non-negative, got %v", ErrInvalidBody, name, look.Radius)
	}
	return nil
}
