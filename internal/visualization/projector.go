package visualization

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"
)

// Projector maps world coordinates onto the screen.
type Projector interface {
	// Project returns the screen position in pixels as x and y, and the
	// distance in front of the camera as z. ok is false for points behind
	// the near plane.
	Project(world r3.Vec) (screen mgl64.Vec3, ok bool)
}

// PerspectiveProjector is a pinhole camera with a vertical field of view.
type PerspectiveProjector struct {
	fov  float64 // degrees
	near float64
	far  float64

	width  float64
	height float64

	eye      mgl64.Vec3
	view     mgl64.Mat4
	viewProj mgl64.Mat4
}

// NewPerspectiveProjector creates a projector looking from +z at the origin.
func NewPerspectiveProjector(fov, near, far float64) *PerspectiveProjector {
	p := &PerspectiveProjector{fov: fov, near: near, far: far, width: 1, height: 1}
	p.LookAt(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	return p
}

// SetViewport sets the screen size in pixels.
func (p *PerspectiveProjector) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.width = float64(width)
	p.height = float64(height)
	p.rebuild()
}

// LookAt places the camera.
func (p *PerspectiveProjector) LookAt(eye, target, up mgl64.Vec3) {
	p.eye = eye
	p.view = mgl64.LookAtV(eye, target, up)
	p.rebuild()
}

func (p *PerspectiveProjector) rebuild() {
	proj := mgl64.Perspective(mgl64.DegToRad(p.fov), p.width/p.height, p.near, p.far)
	p.viewProj = proj.Mul4(p.view)
}

// Eye returns the camera position.
func (p *PerspectiveProjector) Eye() mgl64.Vec3 {
	return p.eye
}

// Project implements Projector.
func (p *PerspectiveProjector) Project(world r3.Vec) (mgl64.Vec3, bool) {
	return p.ProjectVec(mgl64.Vec3{world.X, world.Y, world.Z})
}

// ProjectVec is Project for mathgl vectors.
func (p *PerspectiveProjector) ProjectVec(world mgl64.Vec3) (mgl64.Vec3, bool) {
	clip := p.viewProj.Mul4x1(world.Vec4(1))
	w := clip[3]
	if w < p.near {
		return mgl64.Vec3{}, false
	}
	ndcX := clip[0] / w
	ndcY := clip[1] / w
	return mgl64.Vec3{
		(ndcX + 1) * 0.5 * p.width,
		(1 - ndcY) * 0.5 * p.height,
		w,
	}, true
}

// PixelsPerUnit returns how many pixels one world unit spans at the given
// distance from the camera.
func (p *PerspectiveProjector) PixelsPerUnit(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	f := 1 / tanHalf(p.fov)
	return f * p.height * 0.5 / depth
}
