package simulation

import (
	"errors"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrInvalidBody is returned when a body is constructed with parameters
	// that cannot describe a circular orbit.
	ErrInvalidBody = errors.New("invalid body")
	// ErrDuplicateObject is returned when an id or name is already taken.
	ErrDuplicateObject = errors.New("duplicate object")
	// ErrUnknownParent is returned when a moon is added before its parent.
	ErrUnknownParent = errors.New("unknown parent")
)

// CelestialObject defines the interface for any object within the system.
type CelestialObject interface {
	// ID returns the unique identifier of the object.
	ID() string
	// Name returns the human readable name, unique within a system.
	Name() string
	// Position returns the position computed by the last Update.
	Position() r3.Vec
	// Update recomputes the position for the absolute time now, in milliseconds.
	Update(now float64)
	// Appearance returns how the object is drawn.
	Appearance() Appearance
}

// Appearance holds the visual attributes of a spherical object.
type Appearance struct {
	// Radius of the rendered sphere, in world units.
	Radius float64
	// Segments is the number of width and height segments of the sphere mesh.
	Segments int
	// Texture is the image path, relative to the asset directory.
	Texture string
	// Color is used in place of the texture when it cannot be loaded.
	Color colorful.Color
	// Emissive light given off by the surface, scaled by EmissiveIntensity.
	Emissive          colorful.Color
	EmissiveIntensity float64
}

// Ring is a torus decoration attached to a body. It follows its body and is
// never updated on its own.
type Ring struct {
	Radius          float64
	Tube            float64
	RadialSegments  int
	TubularSegments int
	// Tilt is the rotation about the x axis, in radians.
	Tilt    float64
	Texture string
	Color   colorful.Color
	// Opacity multiplies the texture alpha.
	Opacity float64
}
