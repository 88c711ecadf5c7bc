// Package scene assembles the solar system from configuration.
package scene

import (
	"fmt"
	"math/rand"

	"solar-system-sim/internal/config"
	"solar-system-sim/internal/simulation"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"
)

// PointLight radiates from Position with inverse-power falloff.
type PointLight struct {
	Position  r3.Vec
	Color     colorful.Color
	Intensity float64
	Distance  float64 // cutoff range, 0 for none
	Decay     float64
}

// AmbientLight lights every surface evenly.
type AmbientLight struct {
	Color     colorful.Color
	Intensity float64
}

// CameraSetup is the initial camera placement.
type CameraSetup struct {
	FOV, Near, Far float64
	Distance       float64
	Damping        float64
	MinDistance    float64
	MaxDistance    float64
}

// Scene is built once at startup; afterwards only body positions change.
type Scene struct {
	System     *simulation.System
	Sun        *simulation.Body
	Stars      *simulation.StarField
	StarColor  colorful.Color
	Background string
	Light      PointLight
	Ambient    AmbientLight
	Camera     CameraSetup
}

// Build creates the sun, planets, moon, ring, stars and lights described by cfg.
// cfg must have passed Validate.
func Build(cfg config.Config, rng *rand.Rand) (*Scene, error) {
	sys := simulation.NewSystem()

	sun, err := simulation.NewBody(config.SunName, 0, 0, simulation.Appearance{
		Radius:            cfg.Sun.Radius,
		Segments:          cfg.Sun.Segments,
		Texture:           cfg.Sun.Texture,
		Color:             config.MustColor(cfg.Sun.Color),
		Emissive:          config.MustColor(cfg.Sun.Emissive),
		EmissiveIntensity: cfg.Sun.EmissiveIntensity,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create sun: %w", err)
	}
	if err := sys.AddObject(sun); err != nil {
		return nil, err
	}

	for _, p := range cfg.Planets {
		body, err := simulation.NewBody(p.Name, p.Distance, p.Speed, simulation.Appearance{
			Radius:   p.Radius,
			Segments: p.Segments,
			Texture:  p.Texture,
			Color:    config.MustColor(p.Color),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create planet: %w", err)
		}
		if err := sys.AddObject(body); err != nil {
			return nil, err
		}
	}

	if cfg.Ring.Planet != "" {
		if err := attachRing(sys, cfg.Ring); err != nil {
			return nil, err
		}
	}

	if cfg.Moon.Name != "" {
		parent, ok := sys.Lookup(cfg.Moon.Parent)
		if !ok {
			return nil, fmt.Errorf("%w: moon %s orbits %s", simulation.ErrUnknownParent, cfg.Moon.Name, cfg.Moon.Parent)
		}
		moon, err := simulation.NewMoon(cfg.Moon.Name, parent, cfg.Moon.Offset, cfg.Moon.Speed, simulation.Appearance{
			Radius:   cfg.Moon.Radius,
			Segments: cfg.Moon.Segments,
			Texture:  cfg.Moon.Texture,
			Color:    config.MustColor(cfg.Moon.Color),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create moon: %w", err)
		}
		if err := sys.AddObject(moon); err != nil {
			return nil, err
		}
	}

	stars, err := simulation.NewStarField(rng, cfg.Stars.Count, cfg.Stars.Extent)
	if err != nil {
		return nil, err
	}

	return &Scene{
		System:     sys,
		Sun:        sun,
		Stars:      stars,
		StarColor:  config.MustColor(cfg.Stars.Color),
		Background: cfg.Assets.Background,
		Light: PointLight{
			Color:     config.MustColor(cfg.Light.Point.Color),
			Intensity: cfg.Light.Point.Intensity,
			Distance:  cfg.Light.Point.Distance,
			Decay:     cfg.Light.Point.Decay,
		},
		Ambient: AmbientLight{
			Color:     config.MustColor(cfg.Light.Ambient.Color),
			Intensity: cfg.Light.Ambient.Intensity,
		},
		Camera: CameraSetup{
			FOV:         cfg.Camera.FOV,
			Near:        cfg.Camera.Near,
			Far:         cfg.Camera.Far,
			Distance:    cfg.Camera.Distance,
			Damping:     cfg.Camera.Damping,
			MinDistance: cfg.Camera.MinDistance,
			MaxDistance: cfg.Camera.MaxDistance,
		},
	}, nil
}

func attachRing(sys *simulation.System, rc config.Ring) error {
	obj, ok := sys.Lookup(rc.Planet)
	if !ok {
		return fmt.Errorf("%w: ring attached to %s", simulation.ErrUnknownParent, rc.Planet)
	}
	body, ok := obj.(*simulation.Body)
	if !ok {
		return fmt.Errorf("%w: ring parent %s is not a planet", simulation.ErrInvalidBody, rc.Planet)
	}
	return body.SetRing(&simulation.Ring{
		Radius:          rc.Radius,
		Tube:            rc.Tube,
		RadialSegments:  rc.RadialSegments,
		TubularSegments: rc.TubularSegments,
		Tilt:            rc.Tilt,
		Texture:         rc.Texture,
		Color:           config.MustColor(rc.Color),
		Opacity:         rc.Opacity,
	})
}

// Surface is a texture together with the colour drawn in its place when the
// texture cannot be loaded.
type Surface struct {
	Texture string
	Color   colorful.Color
}

// Surfaces returns the surfaces of every object and ring, without
// duplicates. The background is not included.
func (s *Scene) Surfaces() []Surface {
	seen := map[Surface]bool{}
	var out []Surface
	add := func(sf Surface) {
		if !seen[sf] {
			seen[sf] = true
			out = append(out, sf)
		}
	}
	for _, obj := range s.System.Objects() {
		look := obj.Appearance()
		add(Surface{Texture: look.Texture, Color: look.Color})
		if b, ok := obj.(*simulation.Body); ok && b.Ring() != nil {
			add(Surface{Texture: b.Ring().Texture, Color: b.Ring().Color})
		}
	}
	return out
}
