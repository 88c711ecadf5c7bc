package visualization

import (
	"math"

	"solar-system-sim/internal/scene"

	"github.com/go-gl/mathgl/mgl64"
)

// minPolar keeps the camera off the poles, where the up vector degenerates.
const minPolar = 1e-3

// zoomStep is the radius factor of one wheel notch.
const zoomStep = 0.95

var worldUp = mgl64.Vec3{0, 1, 0}

// OrbitCamera circles a target point. Input adds pending motion that is
// applied a fraction at a time in Update, which gives the camera inertia.
type OrbitCamera struct {
	Target mgl64.Vec3

	radius float64
	theta  float64 // azimuth around y, 0 looks from +z
	phi    float64 // polar angle from +y

	fov       float64
	damping   float64
	minRadius float64
	maxRadius float64

	deltaTheta float64
	deltaPhi   float64
	pan        mgl64.Vec3
	scale      float64
}

// NewOrbitCamera places the camera on the +z axis at the configured distance.
func NewOrbitCamera(setup scene.CameraSetup) *OrbitCamera {
	c := &OrbitCamera{
		radius:    setup.Distance,
		phi:       math.Pi / 2,
		fov:       setup.FOV,
		damping:   setup.Damping,
		minRadius: setup.MinDistance,
		maxRadius: setup.MaxDistance,
		scale:     1,
	}
	if c.damping <= 0 || c.damping > 1 {
		c.damping = 1
	}
	return c
}

// Rotate queues a rotation for a pointer drag of dx, dy pixels. A drag
// across the full viewport height turns the camera once around.
func (c *OrbitCamera) Rotate(dx, dy, viewportHeight float64) {
	if viewportHeight <= 0 {
		return
	}
	c.deltaTheta -= 2 * math.Pi * dx / viewportHeight
	c.deltaPhi -= 2 * math.Pi * dy / viewportHeight
}

// Zoom moves the camera toward the target for positive steps and away for
// negative ones.
func (c *OrbitCamera) Zoom(steps float64) {
	c.scale *= math.Pow(zoomStep, steps)
}

// Pan queues a sideways move of the target so that the scene follows a drag
// of dx, dy pixels.
func (c *OrbitCamera) Pan(dx, dy, viewportHeight float64) {
	if viewportHeight <= 0 {
		return
	}
	perPixel := 2 * c.radius * tanHalf(c.fov) / viewportHeight
	right, up := c.basis()
	c.pan = c.pan.Sub(right.Mul(dx * perPixel)).Add(up.Mul(dy * perPixel))
}

// Update applies a damped share of the pending motion. Call it once per tick.
func (c *OrbitCamera) Update() {
	c.theta += c.deltaTheta * c.damping
	c.phi = clamp(c.phi+c.deltaPhi*c.damping, minPolar, math.Pi-minPolar)
	c.radius = clamp(c.radius*c.scale, c.minRadius, c.maxRadius)
	c.Target = c.Target.Add(c.pan.Mul(c.damping))

	keep := 1 - c.damping
	c.deltaTheta *= keep
	c.deltaPhi *= keep
	c.pan = c.pan.Mul(keep)
	c.scale = 1
}

// Eye returns the camera position.
func (c *OrbitCamera) Eye() mgl64.Vec3 {
	s := math.Sin(c.phi)
	return c.Target.Add(mgl64.Vec3{
		c.radius * s * math.Sin(c.theta),
		c.radius * math.Cos(c.phi),
		c.radius * s * math.Cos(c.theta),
	})
}

// Up returns the world up vector used to orient the view.
func (c *OrbitCamera) Up() mgl64.Vec3 {
	return worldUp
}

// Radius returns the distance between the camera and its target.
func (c *OrbitCamera) Radius() float64 {
	return c.radius
}

// Angles returns the azimuth and polar angle in radians.
func (c *OrbitCamera) Angles() (theta, phi float64) {
	return c.theta, c.phi
}

// Settled reports whether no queued motion remains above tolerance.
func (c *OrbitCamera) Settled(tol float64) bool {
	return math.Abs(c.deltaTheta) < tol && math.Abs(c.deltaPhi) < tol && c.pan.Len() < tol
}

func (c *OrbitCamera) basis() (right, up mgl64.Vec3) {
	forward := c.Target.Sub(c.Eye()).Normalize()
	right = forward.Cross(worldUp).Normalize()
	up = right.Cross(forward)
	return right, up
}

func tanHalf(fovDeg float64) float64 {
	return math.Tan(mgl64.DegToRad(fovDeg) / 2)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
