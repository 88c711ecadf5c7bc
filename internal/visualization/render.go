package visualization

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"strings"

	"solar-system-sim/internal/common"
	"solar-system-sim/internal/scene"
	"solar-system-sim/internal/simulation"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	starWorldSize = 0.5 // star square edge, in world units
	minStarPixels = 1.0
	maxStarPixels = 4.0
)

// ebitenutil debug font metrics
const (
	debugGlyphWidth = 6
	debugLineHeight = 16
	hudPadding      = 2
)

var (
	clearColor    = color.RGBA{0, 0, 0, 255}
	hudPanelColor = color.RGBA{0, 0, 0, 160}
)

// Renderer implements ebiten.Game interface for visualization.
type Renderer struct {
	scene     *scene.Scene
	clock     simulation.Clock
	textures  *TextureSet
	camera    *OrbitCamera
	projector *PerspectiveProjector
	frame     *frameBuilder
	controls  controls
	logger    *slog.Logger

	// unit spheres keyed by segment count, rings keyed by their body
	spheres map[int]*Mesh
	rings   map[*simulation.Ring]*Mesh

	showHUD bool

	screenWidth  int
	screenHeight int
}

// NewRenderer creates a new Ebiten renderer. Meshes are built here, once.
func NewRenderer(sc *scene.Scene, clock simulation.Clock, textures *TextureSet, showHUD bool, logger *slog.Logger) (*Renderer, error) {
	r := &Renderer{
		scene:     sc,
		clock:     clock,
		textures:  textures,
		camera:    NewOrbitCamera(sc.Camera),
		projector: NewPerspectiveProjector(sc.Camera.FOV, sc.Camera.Near, sc.Camera.Far),
		logger:    logger,
		spheres:   make(map[int]*Mesh),
		rings:     make(map[*simulation.Ring]*Mesh),
		showHUD:   showHUD,
	}
	r.frame = newFrameBuilder(Lighting{Point: sc.Light, Ambient: sc.Ambient}, textures.Size)

	for _, obj := range sc.System.Objects() {
		seg := obj.Appearance().Segments
		if _, ok := r.spheres[seg]; !ok {
			m, err := NewSphere(1, seg, seg)
			if err != nil {
				return nil, fmt.Errorf("failed to build mesh for %s: %w", obj.Name(), err)
			}
			r.spheres[seg] = m
		}
		if b, ok := obj.(*simulation.Body); ok && b.Ring() != nil {
			ring := b.Ring()
			m, err := NewTorus(ring.Radius, ring.Tube, ring.RadialSegments, ring.TubularSegments)
			if err != nil {
				return nil, fmt.Errorf("failed to build ring of %s: %w", b.Name(), err)
			}
			r.rings[ring] = m
		}
	}
	return r, nil
}

// Update is called every tick. Positions are recomputed from the clock's
// absolute time, then pointer input moves the camera.
func (r *Renderer) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		r.showHUD = !r.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		r.scene.System.LogState(r.logger)
	}

	r.scene.System.Update(r.clock.NowMillis())

	x, y := ebiten.CursorPosition()
	_, wheelY := ebiten.Wheel()
	r.controls.apply(PointerState{
		X:      x,
		Y:      y,
		Left:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Right:  ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		WheelY: wheelY,
	}, r.camera, float64(r.screenHeight))
	r.camera.Update()
	return nil
}

// Draw is called every frame to render the scene.
func (r *Renderer) Draw(screen *ebiten.Image) {
	r.projector.SetViewport(r.screenWidth, r.screenHeight)
	r.projector.LookAt(r.camera.Eye(), r.camera.Target, r.camera.Up())

	r.drawBackground(screen)

	r.frame.reset()
	r.collectStars()
	r.collectBodies()
	for _, b := range r.frame.build() {
		img := r.textures.Get(b.texture)
		if img == nil {
			continue
		}
		screen.DrawTriangles(b.vertices, b.indices, img, &ebiten.DrawTrianglesOptions{
			Filter: ebiten.FilterLinear,
		})
	}

	if r.showHUD {
		r.drawDebugInfo(screen)
	}
}

// drawBackground stretches the background texture over the whole screen,
// keeping its aspect ratio and cropping the overflow.
func (r *Renderer) drawBackground(screen *ebiten.Image) {
	screen.Fill(clearColor)
	bg := r.textures.Background()
	if bg == nil {
		return
	}
	bw, bh := float64(bg.Bounds().Dx()), float64(bg.Bounds().Dy())
	sw, sh := float64(r.screenWidth), float64(r.screenHeight)
	scale := math.Max(sw/bw, sh/bh)
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((sw-bw*scale)/2, (sh-bh*scale)/2)
	screen.DrawImage(bg, op)
}

func (r *Renderer) collectStars() {
	for _, s := range r.scene.Stars.Stars {
		world := mgl64.Vec3{s.X, s.Y, s.Z}
		r.frame.addPoint(world, r.scene.StarColor, starWorldSize, minStarPixels, maxStarPixels, r.projector)
	}
}

func (r *Renderer) collectBodies() {
	for _, obj := range r.scene.System.Objects() {
		look := obj.Appearance()
		pos := obj.Position()
		center := mgl64.Vec3{pos.X, pos.Y, pos.Z}
		r.frame.addMesh(drawable{
			mesh:              r.spheres[look.Segments],
			position:          center,
			scale:             look.Radius,
			rotation:          mgl64.Ident3(),
			texture:           r.textures.Key(look.Texture, look.Color),
			emissive:          look.Emissive,
			emissiveIntensity: look.EmissiveIntensity,
			opacity:           1,
		}, r.projector)

		b, ok := obj.(*simulation.Body)
		if !ok || b.Ring() == nil {
			continue
		}
		ring := b.Ring()
		r.frame.addMesh(drawable{
			mesh:     r.rings[ring],
			position: center,
			scale:    1,
			rotation: mgl64.Rotate3DX(ring.Tilt),
			texture:  r.textures.Key(ring.Texture, ring.Color),
			opacity:  ring.Opacity,
		}, r.projector)
	}
}

func (r *Renderer) drawDebugInfo(screen *ebiten.Image) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "FPS: %.1f, TPS: %.1f\n", ebiten.ActualFPS(), ebiten.ActualTPS())
	fmt.Fprintf(&sb, "Time: %.0f ms\n", r.scene.System.LastUpdate())
	theta, phi := r.camera.Angles()
	fmt.Fprintf(&sb, "Camera: distance %.1f, azimuth %.1f, polar %.1f\n",
		r.camera.Radius(), mgl64.RadToDeg(theta), mgl64.RadToDeg(phi))
	fmt.Fprintf(&sb, "Triangles: %d\n", r.frame.triangleCount())
	for _, obj := range r.scene.System.Objects() {
		fmt.Fprintf(&sb, "  %-8s %s r=%.2f\n", obj.Name(), common.FormatVector(obj.Position()), common.PlanarRadius(obj.Position()))
	}
	sb.WriteString("Drag: rotate (left) / pan (right), wheel: zoom, H: HUD, L: log state, Esc: quit")

	w, h := hudPanelSize(sb.String())
	vector.DrawFilledRect(screen, 0, 0, w, h, hudPanelColor, false)
	ebitenutil.DebugPrint(screen, sb.String())

	for _, l := range bodyLabels(r.scene.System.Objects(), r.projector) {
		ebitenutil.DebugPrintAt(screen, l.text, l.x, l.y)
	}
}

// hudPanelSize returns the size of the backdrop behind text printed with
// ebitenutil's debug font.
func hudPanelSize(text string) (w, h float32) {
	lines := strings.Split(text, "\n")
	longest := 0
	for _, l := range lines {
		longest = max(longest, len(l))
	}
	return float32(longest*debugGlyphWidth + 2*hudPadding), float32(len(lines)*debugLineHeight + 2*hudPadding)
}

type label struct {
	text string
	x, y int
}

// bodyLabels places each object's name next to its projected centre.
// Objects behind the camera get no label.
func bodyLabels(objs []simulation.CelestialObject, p Projector) []label {
	var out []label
	for _, obj := range objs {
		s, ok := p.Project(obj.Position())
		if !ok {
			continue
		}
		out = append(out, label{text: obj.Name(), x: int(s.X()) + 4, y: int(s.Y()) + 4})
	}
	return out
}

// Layout is called when the window size changes.
func (r *Renderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	r.screenWidth = outsideWidth
	r.screenHeight = outsideHeight
	return r.screenWidth, r.screenHeight
}
