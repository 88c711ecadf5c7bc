package visualization

import (
	"math"

	"solar-system-sim/internal/scene"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// Lighting combines one point light and one ambient light.
type Lighting struct {
	Point   scene.PointLight
	Ambient scene.AmbientLight
}

// Falloff returns the point light attenuation at distance d: an inverse
// power of d that fades smoothly to zero at the light's cutoff distance.
func (l Lighting) Falloff(d float64) float64 {
	f := 1 / math.Max(math.Pow(d, l.Point.Decay), 0.01)
	if l.Point.Distance > 0 {
		r := d / l.Point.Distance
		cut := clamp(1-r*r*r*r, 0, 1)
		f *= cut * cut
	}
	return f
}

// Shade returns the light reaching a surface point with the given normal,
// plus the surface's own emission, clamped to [0, 1] per channel.
func (l Lighting) Shade(pos, normal mgl64.Vec3, emissive colorful.Color, emissiveIntensity float64) colorful.Color {
	light := scaleColor(l.Ambient.Color, l.Ambient.Intensity)

	lp := mgl64.Vec3{l.Point.Position.X, l.Point.Position.Y, l.Point.Position.Z}
	toLight := lp.Sub(pos)
	if d := toLight.Len(); d > 0 {
		lambert := math.Max(0, normal.Dot(toLight.Mul(1/d)))
		if lambert > 0 {
			irradiance := lambert * l.Point.Intensity * l.Falloff(d) / math.Pi
			light = addColor(light, scaleColor(l.Point.Color, irradiance))
		}
	}

	light = addColor(light, scaleColor(emissive, emissiveIntensity))
	return light.Clamped()
}

func scaleColor(c colorful.Color, k float64) colorful.Color {
	return colorful.Color{R: c.R * k, G: c.G * k, B: c.B * k}
}

func addColor(a, b colorful.Color) colorful.Color {
	return colorful.Color{R: a.R + b.R, G: a.G + b.G, B: a.B + b.B}
}
