package visualization

import (
	"cmp"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// maxBatchVertices keeps every batch addressable with uint16 indices.
const maxBatchVertices = math.MaxUint16 - 2

// whiteTexture is the key of the plain texture used by untextured geometry.
const whiteTexture = ""

// drawable is one mesh instance placed in the world.
type drawable struct {
	mesh     *Mesh
	position mgl64.Vec3
	scale    float64
	rotation mgl64.Mat3
	texture  string

	emissive          colorful.Color
	emissiveIntensity float64
	opacity           float64
}

type triangle struct {
	verts   [3]ebiten.Vertex
	depth   float64
	texture string
}

// batch is a run of triangles sharing one texture, ready for DrawTriangles.
type batch struct {
	texture  string
	vertices []ebiten.Vertex
	indices  []uint16
}

type projectedVertex struct {
	screen mgl64.Vec3
	ok     bool
	world  mgl64.Vec3
	normal mgl64.Vec3
	color  colorful.Color
}

// frameBuilder collects the triangles of one frame and orders them back to
// front. Its buffers are reused between frames.
type frameBuilder struct {
	lighting Lighting
	// sizeOf returns the pixel size of a texture.
	sizeOf func(texture string) (w, h float64)

	tris    []triangle
	scratch []projectedVertex
	batches []batch
}

func newFrameBuilder(lighting Lighting, sizeOf func(string) (float64, float64)) *frameBuilder {
	return &frameBuilder{lighting: lighting, sizeOf: sizeOf}
}

func (f *frameBuilder) reset() {
	f.tris = f.tris[:0]
}

// addMesh transforms, lights and projects a mesh instance. Triangles with a
// vertex behind the near plane are dropped, and so are back faces unless the
// mesh is double sided.
func (f *frameBuilder) addMesh(d drawable, proj *PerspectiveProjector) {
	eye := proj.Eye()
	texW, texH := f.sizeOf(d.texture)

	if cap(f.scratch) < len(d.mesh.Vertices) {
		f.scratch = make([]projectedVertex, len(d.mesh.Vertices))
	}
	pv := f.scratch[:len(d.mesh.Vertices)]
	for i, v := range d.mesh.Vertices {
		world := d.position.Add(d.rotation.Mul3x1(v.Pos.Mul(d.scale)))
		normal := d.rotation.Mul3x1(v.Normal)
		if d.mesh.DoubleSided && normal.Dot(eye.Sub(world)) < 0 {
			normal = normal.Mul(-1)
		}
		screen, ok := proj.ProjectVec(world)
		pv[i] = projectedVertex{screen: screen, ok: ok, world: world, normal: normal}
		if ok {
			pv[i].color = f.lighting.Shade(world, normal, d.emissive, d.emissiveIntensity)
		}
	}

	idx := d.mesh.Indices
	for t := 0; t+2 < len(idx); t += 3 {
		a, b, c := pv[idx[t]], pv[idx[t+1]], pv[idx[t+2]]
		if !a.ok || !b.ok || !c.ok {
			continue
		}
		if !d.mesh.DoubleSided {
			n := a.normal.Add(b.normal).Add(c.normal)
			centroid := a.world.Add(b.world).Add(c.world).Mul(1.0 / 3)
			if n.Dot(eye.Sub(centroid)) <= 0 {
				continue
			}
		}
		tri := triangle{
			depth:   (a.screen[2] + b.screen[2] + c.screen[2]) / 3,
			texture: d.texture,
		}
		for k, p := range [3]projectedVertex{a, b, c} {
			mv := d.mesh.Vertices[idx[t+k]]
			tri.verts[k] = ebiten.Vertex{
				DstX:   float32(p.screen[0]),
				DstY:   float32(p.screen[1]),
				SrcX:   float32(mv.U * texW),
				SrcY:   float32(mv.V * texH),
				ColorR: float32(p.color.R),
				ColorG: float32(p.color.G),
				ColorB: float32(p.color.B),
				ColorA: float32(d.opacity),
			}
		}
		f.tris = append(f.tris, tri)
	}
}

// addPoint adds a screen-aligned square centred on a world position. Its edge
// is worldSize units seen at the point's depth, kept within [minPx, maxPx].
func (f *frameBuilder) addPoint(world mgl64.Vec3, c colorful.Color, worldSize, minPx, maxPx float64, proj *PerspectiveProjector) {
	s, ok := proj.ProjectVec(world)
	if !ok {
		return
	}
	sizePx := clamp(proj.PixelsPerUnit(s[2])*worldSize, minPx, maxPx)
	texW, texH := f.sizeOf(whiteTexture)
	h := float32(sizePx / 2)
	x, y := float32(s[0]), float32(s[1])
	vert := func(dx, dy float32, u, v float64) ebiten.Vertex {
		return ebiten.Vertex{
			DstX: x + dx, DstY: y + dy,
			SrcX: float32(u * texW), SrcY: float32(v * texH),
			ColorR: float32(c.R), ColorG: float32(c.G), ColorB: float32(c.B), ColorA: 1,
		}
	}
	tl, tr := vert(-h, -h, 0, 0), vert(h, -h, 1, 0)
	bl, br := vert(-h, h, 0, 1), vert(h, h, 1, 1)
	f.tris = append(f.tris,
		triangle{verts: [3]ebiten.Vertex{tl, tr, br}, depth: s[2], texture: whiteTexture},
		triangle{verts: [3]ebiten.Vertex{tl, br, bl}, depth: s[2], texture: whiteTexture},
	)
}

// build sorts the collected triangles back to front and groups consecutive
// triangles with the same texture into batches.
func (f *frameBuilder) build() []batch {
	slices.SortStableFunc(f.tris, func(a, b triangle) int {
		return cmp.Compare(b.depth, a.depth)
	})

	f.batches = f.batches[:0]
	var cur *batch
	for i := range f.tris {
		t := &f.tris[i]
		if cur == nil || cur.texture != t.texture || len(cur.vertices)+3 > maxBatchVertices {
			cur = f.nextBatch(t.texture)
		}
		base := uint16(len(cur.vertices))
		cur.vertices = append(cur.vertices, t.verts[:]...)
		cur.indices = append(cur.indices, base, base+1, base+2)
	}
	return f.batches
}

// nextBatch appends an empty batch, reusing the buffers of the batch that
// held the same slot in an earlier frame.
func (f *frameBuilder) nextBatch(texture string) *batch {
	n := len(f.batches)
	if n < cap(f.batches) {
		f.batches = f.batches[:n+1]
	} else {
		f.batches = append(f.batches, batch{})
	}
	b := &f.batches[n]
	b.texture = texture
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
	return b
}

// triangleCount returns the number of triangles collected so far.
func (f *frameBuilder) triangleCount() int {
	return len(f.tris)
}
