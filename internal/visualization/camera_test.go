package visualization

import (
	"math"
	"testing"

	"solar-system-sim/internal/scene"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func testCameraSetup() scene.CameraSetup {
	return scene.CameraSetup{FOV: 75, Near: 0.1, Far: 2000, Distance: 60, Damping: 0.05, MinDistance: 5, MaxDistance: 400}
}

func TestOrbitCameraStartsOnPositiveZ(t *testing.T) {
	c := NewOrbitCamera(testCameraSetup())
	eye := c.Eye()
	assert.InDelta(t, 0, eye[0], 1e-9)
	assert.InDelta(t, 0, eye[1], 1e-9)
	assert.InDelta(t, 60, eye[2], 1e-9)
}

func TestOrbitCameraRotationIsDamped(t *testing.T) {
	c := NewOrbitCamera(testCameraSetup())
	c.Rotate(-720, 0, 720) // one full turn queued
	c.Update()
	theta, _ := c.Angles()
	assert.InDelta(t, 2*math.Pi*0.05, theta, 1e-9)
	assert.False(t, c.Settled(1e-3))

	for i := 0; i < 1000; i++ {
		c.Update()
	}
	theta, _ = c.Angles()
	assert.InDelta(t, 2*math.Pi, theta, 1e-6)
	assert.True(t, c.Settled(1e-9))
	assert.InDelta(t, 60, c.Eye().Len(), 1e-9)
}

func TestOrbitCameraPolarIsClamped(t *testing.T) {
	c := NewOrbitCamera(testCameraSetup())
	c.Rotate(0, 1e6, 720)
	for i := 0; i < 200; i++ {
		c.Update()
	}
	_, phi := c.Angles()
	assert.GreaterOrEqual(t, phi, minPolar)
	assert.LessOrEqual(t, phi, math.Pi-minPolar)
}

func TestOrbitCameraZoom(t *testing.T) {
	c := NewOrbitCamera(testCameraSetup())
	c.Zoom(1)
	c.Update()
	assert.InDelta(t, 60*zoomStep, c.Radius(), 1e-9)

	c.Zoom(-2)
	c.Update()
	assert.InDelta(t, 60/zoomStep, c.Radius(), 1e-9)

	c.Zoom(1000)
	c.Update()
	assert.Equal(t, 5.0, c.Radius())
	c.Zoom(-1000)
	c.Update()
	assert.Equal(t, 400.0, c.Radius())
}

func TestOrbitCameraPanMovesTargetSideways(t *testing.T) {
	c := NewOrbitCamera(testCameraSetup())
	c.Pan(100, 0, 720)
	for i := 0; i < 1000; i++ {
		c.Update()
	}
	// dragging right moves the view target toward -x when looking down -z
	assert.Less(t, c.Target[0], 0.0)
	assert.InDelta(t, 0, c.Target[1], 1e-9)
	assert.InDelta(t, 0, c.Target[2], 1e-9)
	want := 100 * 2 * 60 * tanHalf(75) / 720
	assert.InDelta(t, -want, c.Target[0], 1e-6)
	assert.InDelta(t, 60, c.Eye().Sub(c.Target).Len(), 1e-9)
}

func TestControlsDragAndWheel(t *testing.T) {
	c := NewOrbitCamera(testCameraSetup())
	var ctl controls
	ctl.apply(PointerState{X: 10, Y: 10}, c, 720)
	ctl.apply(PointerState{X: 10, Y: 10, Left: true}, c, 720) // press, no motion yet
	ctl.apply(PointerState{X: 100, Y: 10, Left: true}, c, 720)
	c.Update()
	theta, _ := c.Angles()
	assert.Less(t, theta, 0.0)

	ctl.apply(PointerState{X: 500, Y: 500}, c, 720) // released: jump ignored
	for i := 0; i < 1000; i++ {
		c.Update()
	}
	theta, _ = c.Angles()
	assert.InDelta(t, -2*math.Pi*90/720, theta, 1e-9)

	ctl.apply(PointerState{X: 500, Y: 500, WheelY: 1}, c, 720)
	c.Update()
	assert.InDelta(t, 60*zoomStep, c.Radius(), 1e-9)
}

func TestOrbitCameraUp(t *testing.T) {
	c := NewOrbitCamera(testCameraSetup())
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, c.Up())
}
