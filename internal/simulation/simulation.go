package simulation

import (
	"fmt"
	"log/slog"
	"math"

	"solar-system-sim/internal/common"
	"solar-system-sim/internal/orbit"

	"gonum.org/v1/gonum/spatial/r3"
)

// System holds every orbiting object of the scene in update order.
// Parents are always added, and therefore updated, before their moons.
type System struct {
	objects []CelestialObject
	byID    map[string]CelestialObject
	byName  map[string]CelestialObject

	// now passed to the last Update, in milliseconds
	lastUpdate float64
}

// NewSystem creates an empty system.
func NewSystem() *System {
	return &System{
		byID:   make(map[string]CelestialObject),
		byName: make(map[string]CelestialObject),
	}
}

// AddObject adds an object to the system. A moon is only accepted once its
// parent is part of the system.
func (s *System) AddObject(obj CelestialObject) error {
	id := obj.ID()
	if _, exists := s.byID[id]; exists {
		return fmt.Errorf("%w: object with ID %s already exists", ErrDuplicateObject, id)
	}
	if _, exists := s.byName[obj.Name()]; exists {
		return fmt.Errorf("%w: object named %s already exists", ErrDuplicateObject, obj.Name())
	}
	if m, ok := obj.(*Moon); ok {
		if p, known := s.byID[m.Parent().ID()]; !known || p != m.Parent() {
			return fmt.Errorf("%w: %s orbits %s which is not in the system", ErrUnknownParent, m.Name(), m.Parent().Name())
		}
	}
	s.objects = append(s.objects, obj)
	s.byID[id] = obj
	s.byName[obj.Name()] = obj
	return nil
}

// Lookup returns an object by name.
func (s *System) Lookup(name string) (CelestialObject, bool) {
	obj, ok := s.byName[name]
	return obj, ok
}

// Objects returns all objects in update order.
func (s *System) Objects() []CelestialObject {
	out := make([]CelestialObject, len(s.objects))
	copy(out, s.objects)
	return out
}

// Bodies returns the objects orbiting the origin.
func (s *System) Bodies() []*Body {
	var bodies []*Body
	for _, obj := range s.objects {
		if b, ok := obj.(*Body); ok {
			bodies = append(bodies, b)
		}
	}
	return bodies
}

// Moons returns the objects orbiting another object.
func (s *System) Moons() []*Moon {
	var moons []*Moon
	for _, obj := range s.objects {
		if m, ok := obj.(*Moon); ok {
			moons = append(moons, m)
		}
	}
	return moons
}

// Len returns the number of objects.
func (s *System) Len() int {
	return len(s.objects)
}

// Update recomputes every position for the absolute time now, in
// milliseconds. Positions are never accumulated, so two calls with the same
// now produce identical results.
func (s *System) Update(now float64) {
	s.lastUpdate = now
	for _, obj := range s.objects {
		obj.Update(now)
	}
}

// LastUpdate returns the time passed to the most recent Update.
func (s *System) LastUpdate() float64 {
	return s.lastUpdate
}

// LogState logs the current position of every object.
func (s *System) LogState(logger *slog.Logger) {
	logger.Info("system state", "time_ms", s.lastUpdate, "objects", len(s.objects))
	for _, obj := range s.objects {
		attrs := []any{
			"name", obj.Name(),
			"id", obj.ID(),
			"position", common.FormatVector(obj.Position()),
		}
		switch v := obj.(type) {
		case *Body:
			attrs = append(attrs,
				"distance", v.Distance(),
				"angle_deg", orbit.Angle(v.Speed(), s.lastUpdate)*180/math.Pi,
				"period_ms", orbit.Period(v.Speed()),
			)
			if v.Ring() != nil {
				attrs = append(attrs, "ring_radius", v.Ring().Radius)
			}
			if fit, err := s.fitOrbit(v); err == nil {
				attrs = append(attrs, "fitted_radius", fit.Radius, "fit_residual", fit.ResidualError)
			}
		case *Moon:
			attrs = append(attrs, "parent", v.Parent().Name(), "offset", v.Offset())
		}
		logger.Debug("object", attrs...)
	}
}

// orbitSamples is the number of positions sampled over one period when
// checking an orbit.
const orbitSamples = 8

// fitOrbit samples one revolution of b and fits a circle through it.
func (s *System) fitOrbit(b *Body) (orbit.Circle, error) {
	if b.Distance() == 0 || b.Speed() == 0 {
		return orbit.Circle{}, fmt.Errorf("%s does not orbit", b.Name())
	}
	period := orbit.Period(b.Speed())
	times := make([]float64, orbitSamples)
	for i := range times {
		times[i] = s.lastUpdate + period*float64(i)/orbitSamples
	}
	samples, err := s.Trace(b.Name(), times)
	if err != nil {
		return orbit.Circle{}, err
	}
	return orbit.FitCircle(samples)
}

// Trace returns the positions the named object takes at each of times. The
// system is left as it was after the last Update.
func (s *System) Trace(name string, times []float64) ([]r3.Vec, error) {
	obj, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("no object named %s", name)
	}
	restore := s.lastUpdate
	out := make([]r3.Vec, 0, len(times))
	for _, t := range times {
		s.Update(t)
		out = append(out, obj.Position())
	}
	s.Update(restore)
	return out, nil
}
