package simulation

import (
	"fmt"

	"solar-system-sim/internal/orbit"

	"gonum.org/v1/gonum/spatial/r3"
)

// Moon orbits the current position of a parent object instead of the origin.
type Moon struct {
	id         string
	name       string
	parent     CelestialObject
	offset     float64 // radius around the parent
	speed      float64
	position   r3.Vec
	appearance Appearance
}

// NewMoon creates a moon orbiting parent at the given offset radius.
func NewMoon(name string, parent CelestialObject, offset, speed float64, look Appearance) (*Moon, error) {
	if parent == nil {
		return nil, fmt.Errorf("%w: %s has no parent", ErrUnknownParent, name)
	}
	if err := validateOrbit(name, offset, speed, look); err != nil {
		return nil, err
	}
	m := &Moon{
		id:         newID(name),
		name:       name,
		parent:     parent,
		offset:     offset,
		speed:      speed,
		appearance: look,
	}
	m.Update(0)
	return m, nil
}

func (m *Moon) ID() string             { return m.id }
func (m *Moon) Name() string           { return m.name }
func (m *Moon) Position() r3.Vec       { return m.position }
func (m *Moon) Appearance() Appearance { return m.appearance }

// Parent returns the object the moon circles.
func (m *Moon) Parent() CelestialObject {
	return m.parent
}

// Offset returns the radius of the orbit around the parent.
func (m *Moon) Offset() float64 {
	return m.offset
}

// Update places the moon around the parent's current position. The parent
// must already be updated for the same now.
func (m *Moon) Update(now float64) {
	m.position = orbit.Around(m.parent.Position(), m.offset, m.speed, now)
}
