package visualization

// PointerState is a snapshot of the mouse for one tick.
type PointerState struct {
	X, Y        int
	Left, Right bool
	// WheelY is positive when scrolling up.
	WheelY float64
}

// controls turns pointer snapshots into camera motion: left drag rotates,
// right drag pans, the wheel zooms.
type controls struct {
	lastX, lastY int
	dragging     bool
}

func (c *controls) apply(p PointerState, cam *OrbitCamera, viewportHeight float64) {
	pressed := p.Left || p.Right
	if pressed && c.dragging {
		dx := float64(p.X - c.lastX)
		dy := float64(p.Y - c.lastY)
		if p.Left {
			cam.Rotate(dx, dy, viewportHeight)
		} else {
			cam.Pan(dx, dy, viewportHeight)
		}
	}
	c.dragging = pressed
	c.lastX, c.lastY = p.X, p.Y

	if p.WheelY != 0 {
		cam.Zoom(p.WheelY)
	}
}
